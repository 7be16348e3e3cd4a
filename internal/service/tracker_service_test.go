package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/nudge-api/internal/domain"
	"github.com/phrazzld/nudge-api/internal/platform/memory"
)

// newTestService wires a TrackerService onto a fresh in-memory backend.
func newTestService(t *testing.T) TrackerService {
	t.Helper()
	s := memory.NewStore()
	svc, err := NewTrackerService(
		memory.NewLogStore(s),
		memory.NewReminderStore(s),
		memory.NewAssetStore(s),
		slog.Default(),
	)
	require.NoError(t, err)
	return svc
}

func TestNewTrackerServiceValidation(t *testing.T) {
	t.Parallel()
	s := memory.NewStore()
	logs := memory.NewLogStore(s)
	reminders := memory.NewReminderStore(s)
	assets := memory.NewAssetStore(s)

	_, err := NewTrackerService(nil, reminders, assets, slog.Default())
	assert.Error(t, err)

	_, err = NewTrackerService(logs, nil, assets, slog.Default())
	assert.Error(t, err)

	_, err = NewTrackerService(logs, reminders, nil, slog.Default())
	assert.Error(t, err)

	// A nil logger is tolerated.
	svc, err := NewTrackerService(logs, reminders, assets, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestLogEventCreatesDerivedReminder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)
	occurredAt := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	log, err := svc.LogEvent(ctx, "Renewed car insurance", domain.LogCategoryFinance, occurredAt)
	require.NoError(t, err)
	require.NotNil(t, log)

	data, err := svc.GetDashboardData(ctx)
	require.NoError(t, err)
	require.Len(t, data.RecentLogs, 1)
	require.Len(t, data.Reminders, 1)

	derived := data.Reminders[0]
	assert.Equal(t, "Renew: Renewed car insurance", derived.Title)
	assert.Equal(t, time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC), derived.DueAt)
	assert.Equal(t, domain.ReminderStatusPending, derived.Status)
	assert.Equal(t, domain.DefaultReminderCategory, derived.Category)
	require.NotNil(t, derived.LinkedLogID)
	assert.Equal(t, log.ID, *derived.LinkedLogID)
}

func TestLogEventWithoutSuggestion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	log, err := svc.LogEvent(ctx, "Had lunch with friends", domain.LogCategorySocial, time.Now().UTC())
	require.NoError(t, err)
	require.NotNil(t, log)

	data, err := svc.GetDashboardData(ctx)
	require.NoError(t, err)
	assert.Len(t, data.RecentLogs, 1)
	assert.Empty(t, data.Reminders)
}

func TestLogEventRejectsUnknownCategory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	log, err := svc.LogEvent(ctx, "Something", "gardening", time.Now().UTC())
	require.Error(t, err)
	assert.Nil(t, log)
	assert.ErrorIs(t, err, domain.ErrInvalidLogCategory)
}

func TestCreateAndUpdateNudge(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)
	dueAt := time.Now().UTC().Add(72 * time.Hour)

	created, err := svc.CreateNudge(ctx, NudgeParams{
		Title:             "Renew passport",
		DueAt:             dueAt,
		Category:          "travel",
		RemindBeforeValue: 2,
		RemindBeforeUnit:  domain.OffsetUnitWeeks,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "travel", created.Category)

	newDueAt := dueAt.Add(24 * time.Hour)
	updated, err := svc.UpdateNudge(ctx, created.ID, NudgeParams{
		Title:             "Renew passport urgently",
		DueAt:             newDueAt,
		Category:          "travel",
		RemindBeforeValue: 1,
		RemindBeforeUnit:  domain.OffsetUnitDays,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renew passport urgently", updated.Title)
	assert.True(t, updated.DueAt.Equal(newDueAt))
	// Round-trip invariants: identity and creation time survive, status
	// and pin state are untouched.
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.Equal(t, domain.ReminderStatusPending, updated.Status)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdateNudgeMissingSurfacesNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.UpdateNudge(ctx, uuid.New(), NudgeParams{
		Title: "ghost",
		DueAt: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, ErrReminderNotFound)
}

func TestDeleteOperationsAreIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	assert.NoError(t, svc.DeleteLog(ctx, uuid.New()))
	assert.NoError(t, svc.DeleteLogs(ctx, []uuid.UUID{uuid.New(), uuid.New()}))
	assert.NoError(t, svc.DeleteReminder(ctx, uuid.New()))
	assert.NoError(t, svc.DeleteReminders(ctx, []uuid.UUID{uuid.New()}))
	assert.NoError(t, svc.DeleteAsset(ctx, uuid.New()))
	assert.NoError(t, svc.DeleteAssets(ctx, []uuid.UUID{uuid.New()}))
}

func TestCompleteAndRevertReminder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.CreateNudge(ctx, NudgeParams{Title: "Water plants", DueAt: time.Now().UTC()})
	require.NoError(t, err)

	require.NoError(t, svc.CompleteReminder(ctx, created.ID))
	reminders, err := svc.ListReminders(ctx, nil)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, domain.ReminderStatusCompleted, reminders[0].Status)

	require.NoError(t, svc.RevertReminder(ctx, created.ID))
	reminders, err = svc.ListReminders(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ReminderStatusPending, reminders[0].Status)
}

func TestStatusCommandsOnMissingReminderAreSilent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)
	ghost := uuid.New()

	assert.NoError(t, svc.CompleteReminder(ctx, ghost))
	assert.NoError(t, svc.RevertReminder(ctx, ghost))
	assert.NoError(t, svc.UpdateReminderStatus(ctx, ghost, domain.ReminderStatusSnoozed))
	assert.NoError(t, svc.TogglePin(ctx, ghost))

	clone, err := svc.CloneReminder(ctx, ghost)
	assert.NoError(t, err)
	assert.Nil(t, clone)
}

func TestUpdateReminderStatusRejectsUnknownStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.CreateNudge(ctx, NudgeParams{Title: "Pay rent", DueAt: time.Now().UTC()})
	require.NoError(t, err)

	err = svc.UpdateReminderStatus(ctx, created.ID, "done")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidReminderStatus)
}

func TestTogglePinIsAnInvolution(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.CreateNudge(ctx, NudgeParams{Title: "Call mom", DueAt: time.Now().UTC()})
	require.NoError(t, err)
	assert.False(t, created.IsPinned)

	require.NoError(t, svc.TogglePin(ctx, created.ID))
	reminders, err := svc.ListReminders(ctx, nil)
	require.NoError(t, err)
	assert.True(t, reminders[0].IsPinned)

	require.NoError(t, svc.TogglePin(ctx, created.ID))
	reminders, err = svc.ListReminders(ctx, nil)
	require.NoError(t, err)
	assert.False(t, reminders[0].IsPinned)
}

func TestCloneReminder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)
	dueAt := time.Now().UTC().Add(24 * time.Hour)

	created, err := svc.CreateNudge(ctx, NudgeParams{
		Title:    "Backup laptop",
		DueAt:    dueAt,
		Category: "tech",
	})
	require.NoError(t, err)
	require.NoError(t, svc.TogglePin(ctx, created.ID))
	require.NoError(t, svc.CompleteReminder(ctx, created.ID))

	clone, err := svc.CloneReminder(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, clone)

	assert.NotEqual(t, created.ID, clone.ID)
	assert.Equal(t, "Backup laptop (Copy)", clone.Title)
	assert.Equal(t, "tech", clone.Category)
	assert.True(t, clone.DueAt.Equal(dueAt))
	assert.Equal(t, domain.ReminderStatusPending, clone.Status)
	assert.False(t, clone.IsPinned)
	assert.Nil(t, clone.LinkedLogID)

	reminders, err := svc.ListReminders(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, reminders, 2)
}

func TestReorderReminders(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)
	now := time.Now().UTC()

	a, err := svc.CreateNudge(ctx, NudgeParams{Title: "A", DueAt: now.Add(1 * time.Hour)})
	require.NoError(t, err)
	b, err := svc.CreateNudge(ctx, NudgeParams{Title: "B", DueAt: now.Add(2 * time.Hour)})
	require.NoError(t, err)
	c, err := svc.CreateNudge(ctx, NudgeParams{Title: "C", DueAt: now.Add(3 * time.Hour)})
	require.NoError(t, err)

	require.NoError(t, svc.ReorderReminders(ctx, []uuid.UUID{c.ID, a.ID, b.ID}))

	reminders, err := svc.ListReminders(ctx, nil)
	require.NoError(t, err)
	require.Len(t, reminders, 3)
	assert.Equal(t, "C", reminders[0].Title)
	assert.Equal(t, "A", reminders[1].Title)
	assert.Equal(t, "B", reminders[2].Title)
}

func TestListRemindersByStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)
	now := time.Now().UTC()

	pending, err := svc.CreateNudge(ctx, NudgeParams{Title: "still open", DueAt: now})
	require.NoError(t, err)
	done, err := svc.CreateNudge(ctx, NudgeParams{Title: "finished", DueAt: now})
	require.NoError(t, err)
	require.NoError(t, svc.CompleteReminder(ctx, done.ID))

	status := domain.ReminderStatusPending
	reminders, err := svc.ListReminders(ctx, &status)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, pending.ID, reminders[0].ID)
}

func TestGetDashboardDataLimitsRecentLogs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)
	now := time.Now().UTC()

	for i := 0; i < 7; i++ {
		_, err := svc.LogEvent(ctx, "Had lunch", domain.LogCategorySocial, now.Add(-time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}

	data, err := svc.GetDashboardData(ctx)
	require.NoError(t, err)
	assert.Len(t, data.RecentLogs, 5)
	// Most recent first.
	assert.True(t, data.RecentLogs[0].OccurredAt.After(data.RecentLogs[1].OccurredAt))
}

func TestAssetLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)
	expiresAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	created, err := svc.CreateAsset(ctx, AssetParams{
		Title:     "example.com",
		Type:      domain.AssetTypeDomain,
		ExpiresAt: &expiresAt,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAssetCategory, created.Category)
	assert.Equal(t, domain.AssetStatusActive, created.Status)

	updated, err := svc.UpdateAsset(ctx, created.ID, AssetParams{
		Title:      "example.com",
		Type:       domain.AssetTypeDomain,
		Category:   "Work",
		Identifier: "registrar account 42",
		ExpiresAt:  &expiresAt,
	})
	require.NoError(t, err)
	assert.Equal(t, "Work", updated.Category)
	assert.Equal(t, "registrar account 42", updated.Identifier)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))

	cancelled, err := svc.UpdateAssetStatus(ctx, created.ID, domain.AssetStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.AssetStatusCancelled, cancelled.Status)

	require.NoError(t, svc.DeleteAsset(ctx, created.ID))
	assets, err := svc.ListAssets(ctx)
	require.NoError(t, err)
	assert.Empty(t, assets)
}

func TestAssetUpdatesSurfaceNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.UpdateAsset(ctx, uuid.New(), AssetParams{Title: "ghost", Type: domain.AssetTypeOther})
	assert.ErrorIs(t, err, ErrAssetNotFound)

	_, err = svc.UpdateAssetStatus(ctx, uuid.New(), domain.AssetStatusExpired)
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestReorderAssets(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	a, err := svc.CreateAsset(ctx, AssetParams{Title: "A", Type: domain.AssetTypeOther})
	require.NoError(t, err)
	b, err := svc.CreateAsset(ctx, AssetParams{Title: "B", Type: domain.AssetTypeOther})
	require.NoError(t, err)

	require.NoError(t, svc.ReorderAssets(ctx, []uuid.UUID{b.ID, a.ID}))

	assets, err := svc.ListAssets(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "B", assets[0].Title)
	assert.Equal(t, "A", assets[1].Title)
}
