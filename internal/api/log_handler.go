package api

import (
	"net/http"

	"github.com/phrazzld/nudge-api/internal/api/shared"
	"github.com/phrazzld/nudge-api/internal/domain"
	"github.com/phrazzld/nudge-api/internal/platform/logger"
	"github.com/phrazzld/nudge-api/internal/service"
)

// LogHandler handles life-log HTTP requests. Every mutation responds
// with the refreshed dashboard snapshot so clients never need a
// follow-up read.
type LogHandler struct {
	trackerService service.TrackerService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(trackerService service.TrackerService) *LogHandler {
	return &LogHandler{trackerService: trackerService}
}

// GetDashboard handles GET /api/dashboard requests.
func (h *LogHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	h.respondWithDashboard(w, r, http.StatusOK)
}

// CreateLog handles POST /api/logs requests. Recording a log runs the
// nudge predictor, so the returned dashboard may contain a new derived
// reminder.
func (h *LogHandler) CreateLog(w http.ResponseWriter, r *http.Request) {
	var req CreateLogRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	log := logger.FromContext(r.Context())

	_, err := h.trackerService.LogEvent(r.Context(), req.Title, domain.LogCategory(req.Category), req.OccurredAt)
	if err != nil {
		log.Error("failed to record life log", "error", err)
		HandleAPIError(w, r, err, "Failed to record log")
		return
	}

	h.respondWithDashboard(w, r, http.StatusCreated)
}

// DeleteLog handles DELETE /api/logs/{id} requests. Deleting an absent
// log still succeeds.
func (h *LogHandler) DeleteLog(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.trackerService.DeleteLog(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete log")
		return
	}

	h.respondWithDashboard(w, r, http.StatusOK)
}

// BatchDeleteLogs handles POST /api/logs/batch-delete requests.
func (h *LogHandler) BatchDeleteLogs(w http.ResponseWriter, r *http.Request) {
	var req BatchDeleteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.trackerService.DeleteLogs(r.Context(), req.IDs); err != nil {
		HandleAPIError(w, r, err, "Failed to delete logs")
		return
	}

	h.respondWithDashboard(w, r, http.StatusOK)
}

// respondWithDashboard loads the current dashboard snapshot and writes it
// with the given status code.
func (h *LogHandler) respondWithDashboard(w http.ResponseWriter, r *http.Request, status int) {
	data, err := h.trackerService.GetDashboardData(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load dashboard")
		return
	}
	shared.RespondWithJSON(w, r, status, dashboardToDTOResponse(data))
}
