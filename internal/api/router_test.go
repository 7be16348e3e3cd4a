package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/nudge-api/internal/platform/memory"
	"github.com/phrazzld/nudge-api/internal/service"
)

// newTestServer spins up the full router on a memory backend.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := memory.NewStore()
	svc, err := service.NewTrackerService(
		memory.NewLogStore(s),
		memory.NewReminderStore(s),
		memory.NewAssetStore(s),
		slog.Default(),
	)
	require.NoError(t, err)

	server := httptest.NewServer(NewRouter(svc))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeDashboard(t *testing.T, resp *http.Response) DashboardResponse {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out DashboardResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateLogReturnsDashboardWithDerivedReminder(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/logs", CreateLogRequest{
		Title:      "Renewed car insurance",
		Category:   "finance",
		OccurredAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	dashboard := decodeDashboard(t, resp)
	require.Len(t, dashboard.RecentLogs, 1)
	require.Len(t, dashboard.Reminders, 1)
	assert.Equal(t, "Renew: Renewed car insurance", dashboard.Reminders[0].Title)
	assert.Equal(t, "pending", dashboard.Reminders[0].Status)
	require.NotNil(t, dashboard.Reminders[0].LinkedLogID)
	assert.Equal(t, dashboard.RecentLogs[0].ID, *dashboard.Reminders[0].LinkedLogID)
}

func TestCreateLogValidation(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/logs", CreateLogRequest{
		Title:      "Something",
		Category:   "gardening",
		OccurredAt: time.Now().UTC(),
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateMissingReminderReturnsNotFound(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	payload, err := json.Marshal(NudgeRequest{
		Title: "ghost",
		DueAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	req, err := http.NewRequest(
		http.MethodPut,
		server.URL+"/api/reminders/6f1b0a9e-4a86-4b41-9a62-54a3f3f5a111",
		bytes.NewReader(payload),
	)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMalformedPathUUIDReturnsBadRequest(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/reminders/not-a-uuid", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReminderLifecycleOverHTTP(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/reminders", NudgeRequest{
		Title: "Renew passport",
		DueAt: time.Now().UTC().Add(72 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	dashboard := decodeDashboard(t, resp)
	require.Len(t, dashboard.Reminders, 1)
	id := dashboard.Reminders[0].ID

	// Pin, then complete.
	resp = postJSON(t, server.URL+"/api/reminders/"+id+"/pin", struct{}{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dashboard = decodeDashboard(t, resp)
	assert.True(t, dashboard.Reminders[0].IsPinned)

	resp = postJSON(t, server.URL+"/api/reminders/"+id+"/complete", struct{}{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dashboard = decodeDashboard(t, resp)
	assert.Equal(t, "completed", dashboard.Reminders[0].Status)

	// Status commands on missing reminders are no-ops, not errors.
	resp = postJSON(t, server.URL+"/api/reminders/6f1b0a9e-4a86-4b41-9a62-54a3f3f5a111/complete", struct{}{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Clone yields a second, pending, unpinned reminder.
	resp = postJSON(t, server.URL+"/api/reminders/"+id+"/clone", struct{}{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dashboard = decodeDashboard(t, resp)
	require.Len(t, dashboard.Reminders, 2)
}

func TestAssetEndpointsReturnAssetList(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/assets", AssetRequest{
		Title: "example.com",
		Type:  "Domain",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var assets []AssetResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&assets))
	_ = resp.Body.Close()
	require.Len(t, assets, 1)
	assert.Equal(t, "Domain", assets[0].Type)
	assert.Equal(t, "active", assets[0].Status)
	assert.Equal(t, "Personal", assets[0].Category)

	// Invalid type is rejected at the boundary.
	resp = postJSON(t, server.URL+"/api/assets", AssetRequest{
		Title: "mystery",
		Type:  "Gadget",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
