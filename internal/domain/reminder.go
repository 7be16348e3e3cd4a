package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReminderStatus represents the lifecycle state of a reminder.
type ReminderStatus string

// Possible reminder status values. Snoozed and missed are reserved states:
// they are legitimate values with no named command producing them in this
// core, reachable only through a direct status set.
const (
	ReminderStatusPending   ReminderStatus = "pending"
	ReminderStatusCompleted ReminderStatus = "completed"
	ReminderStatusSnoozed   ReminderStatus = "snoozed"
	ReminderStatusMissed    ReminderStatus = "missed"
)

// OffsetUnit is the unit of a remind-before offset.
type OffsetUnit string

// Possible remind-before units
const (
	OffsetUnitMinutes OffsetUnit = "minutes"
	OffsetUnitHours   OffsetUnit = "hours"
	OffsetUnitDays    OffsetUnit = "days"
	OffsetUnitWeeks   OffsetUnit = "weeks"
)

// Default values applied by NewReminder when the caller passes zero values.
const (
	DefaultReminderCategory = "general"
	DefaultOffsetUnit       = OffsetUnitDays
)

// Reminder is a scheduled nudge, either created directly or derived from a
// logged life event. DisplayOrder is a relative sort key among reminders of
// the same collection; absolute values are an implementation detail
// reassigned on every reorder. LinkedLogID is an informational
// back-reference to the originating log and implies no ownership.
// RecurrenceRuleID is reserved for a future recurring-series feature and
// has no producer in this core.
type Reminder struct {
	ID                uuid.UUID      `json:"id"`
	Title             string         `json:"title"`
	Category          string         `json:"category"`
	DueAt             time.Time      `json:"due_at"`
	RemindBeforeValue int            `json:"remind_before_value"`
	RemindBeforeUnit  OffsetUnit     `json:"remind_before_unit"`
	Status            ReminderStatus `json:"status"`
	IsPinned          bool           `json:"is_pinned"`
	DisplayOrder      int            `json:"display_order"`
	LinkedLogID       *uuid.UUID     `json:"linked_log_id,omitempty"`
	RecurrenceRuleID  *uuid.UUID     `json:"recurrence_rule_id,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// NewReminder creates a new pending Reminder with a generated ID and fresh
// timestamps. An empty category defaults to "general" and an empty
// remind-before unit defaults to days, matching the defaults of the
// createNudge operation. No further validation is performed.
func NewReminder(
	title string,
	dueAt time.Time,
	category string,
	remindBeforeValue int,
	remindBeforeUnit OffsetUnit,
	linkedLogID *uuid.UUID,
) *Reminder {
	if category == "" {
		category = DefaultReminderCategory
	}
	if remindBeforeUnit == "" {
		remindBeforeUnit = DefaultOffsetUnit
	}

	now := time.Now().UTC()
	return &Reminder{
		ID:                uuid.New(),
		Title:             title,
		Category:          category,
		DueAt:             dueAt,
		RemindBeforeValue: remindBeforeValue,
		RemindBeforeUnit:  remindBeforeUnit,
		Status:            ReminderStatusPending,
		IsPinned:          false,
		DisplayOrder:      0,
		LinkedLogID:       linkedLogID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Complete returns a copy of the reminder with status completed and a
// refreshed update timestamp. The receiver is not mutated, preserving
// value semantics for concurrent readers.
func (r Reminder) Complete() Reminder {
	r.Status = ReminderStatusCompleted
	r.UpdatedAt = time.Now().UTC()
	return r
}

// Clone returns a new independent Reminder copying the title (suffixed
// " (Copy)"), due date, category, and remind-before settings. The clone
// gets a fresh identity and timestamps, pending status, and is never
// pinned. LinkedLogID and RecurrenceRuleID are deliberately not copied.
func (r *Reminder) Clone() *Reminder {
	return NewReminder(
		r.Title+" (Copy)",
		r.DueAt,
		r.Category,
		r.RemindBeforeValue,
		r.RemindBeforeUnit,
		nil,
	)
}

// Touch refreshes the update timestamp.
func (r *Reminder) Touch() {
	r.UpdatedAt = time.Now().UTC()
}

// Validate checks the Reminder's type constraints.
func (r *Reminder) Validate() error {
	if r.ID == uuid.Nil {
		return ErrInvalidID
	}
	if !IsValidReminderStatus(r.Status) {
		return ErrInvalidReminderStatus
	}
	if !IsValidOffsetUnit(r.RemindBeforeUnit) {
		return ErrInvalidOffsetUnit
	}
	return nil
}

// IsValidReminderStatus reports whether status is a known ReminderStatus.
func IsValidReminderStatus(status ReminderStatus) bool {
	switch status {
	case ReminderStatusPending, ReminderStatusCompleted,
		ReminderStatusSnoozed, ReminderStatusMissed:
		return true
	default:
		return false
	}
}

// IsValidOffsetUnit reports whether unit is a known OffsetUnit.
func IsValidOffsetUnit(unit OffsetUnit) bool {
	switch unit {
	case OffsetUnitMinutes, OffsetUnitHours, OffsetUnitDays, OffsetUnitWeeks:
		return true
	default:
		return false
	}
}
