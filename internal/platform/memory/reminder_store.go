package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/nudge-api/internal/domain"
	"github.com/phrazzld/nudge-api/internal/store"
)

// ReminderStore implements store.ReminderStore on an in-memory Store.
type ReminderStore struct {
	s *Store
}

// NewReminderStore creates a reminder repository backed by the given store.
func NewReminderStore(s *Store) *ReminderStore {
	if s == nil {
		panic("store cannot be nil")
	}
	return &ReminderStore{s: s}
}

// Ensure ReminderStore implements store.ReminderStore
var _ store.ReminderStore = (*ReminderStore)(nil)

// Save implements store.ReminderStore.Save with upsert semantics.
func (rs *ReminderStore) Save(ctx context.Context, reminder *domain.Reminder) error {
	if err := reminder.Validate(); err != nil {
		return err
	}

	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()
	rs.s.reminders[reminder.ID] = cloneReminder(reminder)
	return nil
}

// Update implements store.ReminderStore.Update.
func (rs *ReminderStore) Update(ctx context.Context, reminder *domain.Reminder) error {
	if err := reminder.Validate(); err != nil {
		return err
	}

	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()
	if _, ok := rs.s.reminders[reminder.ID]; !ok {
		return store.ErrReminderNotFound
	}
	rs.s.reminders[reminder.ID] = cloneReminder(reminder)
	return nil
}

// GetByID implements store.ReminderStore.GetByID.
func (rs *ReminderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reminder, error) {
	rs.s.mu.RLock()
	defer rs.s.mu.RUnlock()
	reminder, ok := rs.s.reminders[id]
	if !ok {
		return nil, store.ErrReminderNotFound
	}
	return cloneReminder(reminder), nil
}

// Delete implements store.ReminderStore.Delete. Absent IDs are not an error.
func (rs *ReminderStore) Delete(ctx context.Context, id uuid.UUID) error {
	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()
	delete(rs.s.reminders, id)
	return nil
}

// DeleteMany implements store.ReminderStore.DeleteMany.
func (rs *ReminderStore) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()
	for _, id := range ids {
		delete(rs.s.reminders, id)
	}
	return nil
}

// GetAll implements store.ReminderStore.GetAll in canonical order.
func (rs *ReminderStore) GetAll(ctx context.Context) ([]*domain.Reminder, error) {
	rs.s.mu.RLock()
	defer rs.s.mu.RUnlock()

	reminders := make([]*domain.Reminder, 0, len(rs.s.reminders))
	for _, r := range rs.s.reminders {
		reminders = append(reminders, cloneReminder(r))
	}
	sortCanonical(reminders)
	return reminders, nil
}

// GetPending implements store.ReminderStore.GetPending.
func (rs *ReminderStore) GetPending(ctx context.Context) ([]*domain.Reminder, error) {
	return rs.GetByStatus(ctx, domain.ReminderStatusPending)
}

// GetByStatus implements store.ReminderStore.GetByStatus.
func (rs *ReminderStore) GetByStatus(ctx context.Context, status domain.ReminderStatus) ([]*domain.Reminder, error) {
	rs.s.mu.RLock()
	defer rs.s.mu.RUnlock()

	reminders := make([]*domain.Reminder, 0)
	for _, r := range rs.s.reminders {
		if r.Status == status {
			reminders = append(reminders, cloneReminder(r))
		}
	}
	sortCanonical(reminders)
	return reminders, nil
}

// UpdateStatus implements store.ReminderStore.UpdateStatus.
func (rs *ReminderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReminderStatus) error {
	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()
	reminder, ok := rs.s.reminders[id]
	if !ok {
		return store.ErrReminderNotFound
	}
	reminder.Status = status
	reminder.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkComplete implements store.ReminderStore.MarkComplete.
func (rs *ReminderStore) MarkComplete(ctx context.Context, id uuid.UUID) error {
	return rs.UpdateStatus(ctx, id, domain.ReminderStatusCompleted)
}

// Reorder implements store.ReminderStore.Reorder. The whole batch is
// applied under a single lock acquisition, so it is all-or-nothing with
// respect to other operations on this store.
func (rs *ReminderStore) Reorder(ctx context.Context, ids []uuid.UUID) error {
	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()
	for index, id := range ids {
		if reminder, ok := rs.s.reminders[id]; ok {
			reminder.DisplayOrder = index
		}
	}
	return nil
}

// sortCanonical sorts reminders by displayOrder ascending, then pinned
// first, then dueAt ascending.
func sortCanonical(reminders []*domain.Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool {
		a, b := reminders[i], reminders[j]
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		return a.DueAt.Before(b.DueAt)
	})
}
