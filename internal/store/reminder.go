package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/nudge-api/internal/domain"
)

// ReminderStore defines the interface for reminder persistence.
//
// The canonical collection order is displayOrder ascending, then pinned
// first, then dueAt ascending. GetAll, GetPending, and GetByStatus all
// return reminders in this order.
type ReminderStore interface {
	// Save persists a reminder using insert-or-replace semantics.
	Save(ctx context.Context, reminder *domain.Reminder) error

	// Update saves changes to an existing reminder.
	// Returns ErrReminderNotFound if the reminder does not exist.
	Update(ctx context.Context, reminder *domain.Reminder) error

	// GetByID retrieves a reminder by its unique ID.
	// Returns ErrReminderNotFound if the reminder does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reminder, error)

	// Delete removes a reminder by ID. Deleting an absent ID is not an
	// error; the contract is "ensure absent".
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteMany removes all reminders whose IDs appear in ids. Absent
	// IDs are ignored.
	DeleteMany(ctx context.Context, ids []uuid.UUID) error

	// GetAll returns every reminder in canonical order.
	GetAll(ctx context.Context) ([]*domain.Reminder, error)

	// GetPending returns pending reminders in canonical order.
	GetPending(ctx context.Context) ([]*domain.Reminder, error)

	// GetByStatus returns reminders with the given status in canonical order.
	GetByStatus(ctx context.Context, status domain.ReminderStatus) ([]*domain.Reminder, error)

	// UpdateStatus sets the status of an existing reminder and refreshes
	// its update timestamp. Returns ErrReminderNotFound if the reminder
	// does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReminderStatus) error

	// MarkComplete sets the status of an existing reminder to completed.
	// Returns ErrReminderNotFound if the reminder does not exist.
	MarkComplete(ctx context.Context, id uuid.UUID) error

	// Reorder assigns displayOrder = positional index for each ID in ids,
	// as a single all-or-nothing batch. IDs not present in the collection
	// are ignored; reminders omitted from ids keep their previous order
	// values.
	Reorder(ctx context.Context, ids []uuid.UUID) error
}
