package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/nudge-api/internal/domain"
	"github.com/phrazzld/nudge-api/internal/service"
)

// Common request/response structures

// CreateLogRequest defines the payload for recording a life event.
type CreateLogRequest struct {
	Title      string    `json:"title"       validate:"required,min=1"`
	Category   string    `json:"category"    validate:"required,oneof=maintenance health finance social misc"`
	OccurredAt time.Time `json:"occurred_at" validate:"required"`
}

// NudgeRequest defines the payload for creating or updating a reminder.
// Category and remind-before fields are optional; empty values take the
// documented defaults ("general" and days).
type NudgeRequest struct {
	Title             string    `json:"title"               validate:"required,min=1"`
	DueAt             time.Time `json:"due_at"              validate:"required"`
	Category          string    `json:"category"`
	RemindBeforeValue int       `json:"remind_before_value" validate:"gte=0"`
	RemindBeforeUnit  string    `json:"remind_before_unit"  validate:"omitempty,oneof=minutes hours days weeks"`
}

// UpdateReminderStatusRequest defines the payload for the status endpoint.
type UpdateReminderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed snoozed missed"`
}

// AssetRequest defines the payload for creating or updating a digital asset.
type AssetRequest struct {
	Title      string     `json:"title"      validate:"required,min=1"`
	Type       string     `json:"type"       validate:"required,oneof=Domain Subscription License Warranty Certificate Other"`
	Category   string     `json:"category"`
	Identifier string     `json:"identifier"`
	Metadata   string     `json:"metadata"`
	ExpiresAt  *time.Time `json:"expires_at"`
	RemindAt   *time.Time `json:"remind_at"`
}

// UpdateAssetStatusRequest defines the payload for the asset status endpoint.
type UpdateAssetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active expired cancelled"`
}

// BatchDeleteRequest defines the payload for the batch-delete endpoints.
type BatchDeleteRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}

// ReorderRequest defines the payload for the reorder endpoints. IDs are
// applied in order; entities omitted from the list keep their relative
// position after the listed ones.
type ReorderRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required"`
}

// LifeLogResponse represents the response data for a life log.
type LifeLogResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Notes      string    `json:"notes,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ReminderResponse represents the response data for a reminder.
type ReminderResponse struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Category          string     `json:"category"`
	DueAt             time.Time  `json:"due_at"`
	RemindBeforeValue int        `json:"remind_before_value"`
	RemindBeforeUnit  string     `json:"remind_before_unit"`
	Status            string     `json:"status"`
	IsPinned          bool       `json:"is_pinned"`
	DisplayOrder      int        `json:"display_order"`
	LinkedLogID       *string    `json:"linked_log_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// AssetResponse represents the response data for a digital asset.
type AssetResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Type         string     `json:"type"`
	Category     string     `json:"category"`
	Identifier   string     `json:"identifier,omitempty"`
	Metadata     string     `json:"metadata,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	RemindAt     *time.Time `json:"remind_at,omitempty"`
	Status       string     `json:"status"`
	DisplayOrder int        `json:"display_order"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DashboardResponse is the snapshot returned by the dashboard endpoint
// and by every mutating log and reminder endpoint.
type DashboardResponse struct {
	RecentLogs []LifeLogResponse  `json:"recent_logs"`
	Reminders  []ReminderResponse `json:"reminders"`
}

// logToDTOResponse converts a domain.LifeLog to a LifeLogResponse
func logToDTOResponse(log *domain.LifeLog) LifeLogResponse {
	return LifeLogResponse{
		ID:         log.ID.String(),
		Title:      log.Title,
		Category:   string(log.Category),
		Notes:      log.Notes,
		OccurredAt: log.OccurredAt,
		CreatedAt:  log.CreatedAt,
		UpdatedAt:  log.UpdatedAt,
	}
}

// reminderToDTOResponse converts a domain.Reminder to a ReminderResponse
func reminderToDTOResponse(reminder *domain.Reminder) ReminderResponse {
	var linkedLogID *string
	if reminder.LinkedLogID != nil {
		s := reminder.LinkedLogID.String()
		linkedLogID = &s
	}
	return ReminderResponse{
		ID:                reminder.ID.String(),
		Title:             reminder.Title,
		Category:          reminder.Category,
		DueAt:             reminder.DueAt,
		RemindBeforeValue: reminder.RemindBeforeValue,
		RemindBeforeUnit:  string(reminder.RemindBeforeUnit),
		Status:            string(reminder.Status),
		IsPinned:          reminder.IsPinned,
		DisplayOrder:      reminder.DisplayOrder,
		LinkedLogID:       linkedLogID,
		CreatedAt:         reminder.CreatedAt,
		UpdatedAt:         reminder.UpdatedAt,
	}
}

// assetToDTOResponse converts a domain.DigitalAsset to an AssetResponse
func assetToDTOResponse(asset *domain.DigitalAsset) AssetResponse {
	return AssetResponse{
		ID:           asset.ID.String(),
		Title:        asset.Title,
		Type:         string(asset.Type),
		Category:     asset.Category,
		Identifier:   asset.Identifier,
		Metadata:     asset.Metadata,
		ExpiresAt:    asset.ExpiresAt,
		RemindAt:     asset.RemindAt,
		Status:       string(asset.Status),
		DisplayOrder: asset.DisplayOrder,
		CreatedAt:    asset.CreatedAt,
		UpdatedAt:    asset.UpdatedAt,
	}
}

// dashboardToDTOResponse converts a service.DashboardData to a DashboardResponse
func dashboardToDTOResponse(data *service.DashboardData) DashboardResponse {
	logs := make([]LifeLogResponse, 0, len(data.RecentLogs))
	for _, l := range data.RecentLogs {
		logs = append(logs, logToDTOResponse(l))
	}
	reminders := make([]ReminderResponse, 0, len(data.Reminders))
	for _, r := range data.Reminders {
		reminders = append(reminders, reminderToDTOResponse(r))
	}
	return DashboardResponse{
		RecentLogs: logs,
		Reminders:  reminders,
	}
}

// assetsToDTOResponse converts a slice of assets to response DTOs
func assetsToDTOResponse(assets []*domain.DigitalAsset) []AssetResponse {
	out := make([]AssetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, assetToDTOResponse(a))
	}
	return out
}
