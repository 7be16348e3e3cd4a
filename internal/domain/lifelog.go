package domain

import (
	"time"

	"github.com/google/uuid"
)

// LogCategory classifies a life log entry.
type LogCategory string

// Possible life log categories
const (
	LogCategoryMaintenance LogCategory = "maintenance"
	LogCategoryHealth      LogCategory = "health"
	LogCategoryFinance     LogCategory = "finance"
	LogCategorySocial      LogCategory = "social"
	LogCategoryMisc        LogCategory = "misc"
)

// LifeLog records something that already happened at a specific point in
// time. OccurredAt is the event time and is distinct from CreatedAt, which
// is when the entry was recorded.
type LifeLog struct {
	ID         uuid.UUID   `json:"id"`
	Title      string      `json:"title"`
	Category   LogCategory `json:"category"`
	Notes      string      `json:"notes,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// NewLifeLog creates a new LifeLog with a generated ID and fresh
// creation/update timestamps. Titles are not validated here; empty titles
// are accepted and input validation is the caller's responsibility.
// Returns an error only if the category is not a known value.
func NewLifeLog(title string, category LogCategory, occurredAt time.Time, notes string) (*LifeLog, error) {
	if !IsValidLogCategory(category) {
		return nil, ErrInvalidLogCategory
	}

	now := time.Now().UTC()
	return &LifeLog{
		ID:         uuid.New(),
		Title:      title,
		Category:   category,
		Notes:      notes,
		OccurredAt: occurredAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Validate checks the LifeLog's type constraints.
func (l *LifeLog) Validate() error {
	if l.ID == uuid.Nil {
		return ErrInvalidID
	}
	if !IsValidLogCategory(l.Category) {
		return ErrInvalidLogCategory
	}
	return nil
}

// Touch refreshes the update timestamp. Every field-level mutation must be
// followed by a Touch before the entity is persisted.
func (l *LifeLog) Touch() {
	l.UpdatedAt = time.Now().UTC()
}

// IsValidLogCategory reports whether category is a known LogCategory.
func IsValidLogCategory(category LogCategory) bool {
	switch category {
	case LogCategoryMaintenance, LogCategoryHealth, LogCategoryFinance,
		LogCategorySocial, LogCategoryMisc:
		return true
	default:
		return false
	}
}
