package api

import (
	"net/http"

	"github.com/phrazzld/nudge-api/internal/api/shared"
	"github.com/phrazzld/nudge-api/internal/domain"
	"github.com/phrazzld/nudge-api/internal/platform/logger"
	"github.com/phrazzld/nudge-api/internal/service"
)

// ReminderHandler handles reminder HTTP requests. Mutations respond with
// the refreshed dashboard snapshot.
type ReminderHandler struct {
	trackerService service.TrackerService
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(trackerService service.TrackerService) *ReminderHandler {
	return &ReminderHandler{trackerService: trackerService}
}

// ListReminders handles GET /api/reminders requests. An optional status
// query parameter filters the collection.
func (h *ReminderHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	var status *domain.ReminderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.ReminderStatus(raw)
		if !domain.IsValidReminderStatus(s) {
			HandleAPIError(w, r, domain.ErrInvalidReminderStatus, "")
			return
		}
		status = &s
	}

	reminders, err := h.trackerService.ListReminders(r.Context(), status)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list reminders")
		return
	}

	out := make([]ReminderResponse, 0, len(reminders))
	for _, reminder := range reminders {
		out = append(out, reminderToDTOResponse(reminder))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// CreateReminder handles POST /api/reminders requests.
func (h *ReminderHandler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	var req NudgeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	_, err := h.trackerService.CreateNudge(r.Context(), nudgeParamsFromRequest(req))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create reminder")
		return
	}

	h.respondWithDashboard(w, r, http.StatusCreated)
}

// UpdateReminder handles PUT /api/reminders/{id} requests.
func (h *ReminderHandler) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	var req NudgeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.trackerService.UpdateNudge(r.Context(), id, nudgeParamsFromRequest(req)); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithDashboard(w, r, http.StatusOK)
}

// DeleteReminder handles DELETE /api/reminders/{id} requests. Deleting
// an absent reminder still succeeds.
func (h *ReminderHandler) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.trackerService.DeleteReminder(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete reminder")
		return
	}

	h.respondWithDashboard(w, r, http.StatusOK)
}

// BatchDeleteReminders handles POST /api/reminders/batch-delete requests.
func (h *ReminderHandler) BatchDeleteReminders(w http.ResponseWriter, r *http.Request) {
	var req BatchDeleteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.trackerService.DeleteReminders(r.Context(), req.IDs); err != nil {
		HandleAPIError(w, r, err, "Failed to delete reminders")
		return
	}

	h.respondWithDashboard(w, r, http.StatusOK)
}

// UpdateStatus handles PATCH /api/reminders/{id}/status requests. A
// missing reminder is not an error; the dashboard simply comes back
// unchanged.
func (h *ReminderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateReminderStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.trackerService.UpdateReminderStatus(r.Context(), id, domain.ReminderStatus(req.Status)); err != nil {
		HandleAPIError(w, r, err, "Failed to update reminder status")
		return
	}

	h.respondWithDashboard(w, r, http.StatusOK)
}

// CompleteReminder handles POST /api/reminders/{id}/complete requests.
func (h *ReminderHandler) CompleteReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.trackerService.CompleteReminder(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to complete reminder")
		return
	}

	h.respondWithDashboard(w, r, http.StatusOK)
}

// RevertReminder handles POST /api/reminders/{id}/revert requests.
func (h *ReminderHandler) RevertReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.trackerService.RevertReminder(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to revert reminder")
		return
	}

	h.respondWithDashboard(w, r, http.StatusOK)
}

// TogglePin handles POST /api/reminders/{id}/pin requests.
func (h *ReminderHandler) TogglePin(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.trackerService.TogglePin(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to toggle pin")
		return
	}

	h.respondWithDashboard(w, r, http.StatusOK)
}

// CloneReminder handles POST /api/reminders/{id}/clone requests.
func (h *ReminderHandler) CloneReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	log := logger.FromContext(r.Context())

	clone, err := h.trackerService.CloneReminder(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to clone reminder")
		return
	}
	if clone == nil {
		log.Debug("clone requested for missing reminder", "reminder_id", id)
	}

	h.respondWithDashboard(w, r, http.StatusOK)
}

// ReorderReminders handles POST /api/reminders/reorder requests.
func (h *ReminderHandler) ReorderReminders(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.trackerService.ReorderReminders(r.Context(), req.IDs); err != nil {
		HandleAPIError(w, r, err, "Failed to reorder reminders")
		return
	}

	h.respondWithDashboard(w, r, http.StatusOK)
}

// respondWithDashboard loads the current dashboard snapshot and writes it
// with the given status code.
func (h *ReminderHandler) respondWithDashboard(w http.ResponseWriter, r *http.Request, status int) {
	data, err := h.trackerService.GetDashboardData(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load dashboard")
		return
	}
	shared.RespondWithJSON(w, r, status, dashboardToDTOResponse(data))
}

// nudgeParamsFromRequest converts a NudgeRequest to service params.
func nudgeParamsFromRequest(req NudgeRequest) service.NudgeParams {
	return service.NudgeParams{
		Title:             req.Title,
		DueAt:             req.DueAt,
		Category:          req.Category,
		RemindBeforeValue: req.RemindBeforeValue,
		RemindBeforeUnit:  domain.OffsetUnit(req.RemindBeforeUnit),
	}
}
