package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/phrazzld/nudge-api/internal/domain"
	"github.com/phrazzld/nudge-api/internal/store"
)

// ReminderStore implements store.ReminderStore on Redis.
type ReminderStore struct {
	c collection
}

// NewReminderStore creates a Redis-backed reminder repository.
func NewReminderStore(client *redis.Client) *ReminderStore {
	if client == nil {
		panic("client cannot be nil")
	}
	return &ReminderStore{c: collection{client: client, prefix: "reminder", setKey: "reminders"}}
}

// Ensure ReminderStore implements store.ReminderStore
var _ store.ReminderStore = (*ReminderStore)(nil)

// Save implements store.ReminderStore.Save with upsert semantics.
func (s *ReminderStore) Save(ctx context.Context, reminder *domain.Reminder) error {
	if err := reminder.Validate(); err != nil {
		return err
	}
	return s.c.save(ctx, reminder.ID.String(), reminder)
}

// Update implements store.ReminderStore.Update.
func (s *ReminderStore) Update(ctx context.Context, reminder *domain.Reminder) error {
	if err := reminder.Validate(); err != nil {
		return err
	}
	if err := s.c.update(ctx, reminder.ID.String(), reminder); err != nil {
		if errors.Is(err, errMissing) {
			return store.ErrReminderNotFound
		}
		return err
	}
	return nil
}

// GetByID implements store.ReminderStore.GetByID.
func (s *ReminderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reminder, error) {
	var reminder domain.Reminder
	if err := s.c.get(ctx, id.String(), &reminder); err != nil {
		if errors.Is(err, errMissing) {
			return nil, store.ErrReminderNotFound
		}
		return nil, err
	}
	return &reminder, nil
}

// Delete implements store.ReminderStore.Delete. Absent IDs are not an error.
func (s *ReminderStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.c.deleteMany(ctx, []string{id.String()})
}

// DeleteMany implements store.ReminderStore.DeleteMany.
func (s *ReminderStore) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	return s.c.deleteMany(ctx, uuidStrings(ids))
}

// GetAll implements store.ReminderStore.GetAll in canonical order.
func (s *ReminderStore) GetAll(ctx context.Context) ([]*domain.Reminder, error) {
	return s.fetch(ctx, nil)
}

// GetPending implements store.ReminderStore.GetPending.
func (s *ReminderStore) GetPending(ctx context.Context) ([]*domain.Reminder, error) {
	return s.GetByStatus(ctx, domain.ReminderStatusPending)
}

// GetByStatus implements store.ReminderStore.GetByStatus.
func (s *ReminderStore) GetByStatus(ctx context.Context, status domain.ReminderStatus) ([]*domain.Reminder, error) {
	return s.fetch(ctx, func(r *domain.Reminder) bool { return r.Status == status })
}

// fetch loads reminders, optionally filtered, in canonical order:
// displayOrder ascending, then pinned first, then dueAt ascending.
func (s *ReminderStore) fetch(ctx context.Context, keep func(*domain.Reminder) bool) ([]*domain.Reminder, error) {
	reminders := []*domain.Reminder{}
	err := s.c.all(ctx, func(data []byte) error {
		var reminder domain.Reminder
		if err := json.Unmarshal(data, &reminder); err != nil {
			return err
		}
		if keep == nil || keep(&reminder) {
			reminders = append(reminders, &reminder)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

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
	return reminders, nil
}

// UpdateStatus implements store.ReminderStore.UpdateStatus.
func (s *ReminderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReminderStatus) error {
	reminder, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	reminder.Status = status
	reminder.UpdatedAt = time.Now().UTC()
	return s.c.save(ctx, id.String(), reminder)
}

// MarkComplete implements store.ReminderStore.MarkComplete.
func (s *ReminderStore) MarkComplete(ctx context.Context, id uuid.UUID) error {
	return s.UpdateStatus(ctx, id, domain.ReminderStatusCompleted)
}

// Reorder implements store.ReminderStore.Reorder. The rewritten blobs are
// queued and applied with a single transactional pipeline so the batch is
// all-or-nothing.
func (s *ReminderStore) Reorder(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	pipe := s.c.client.TxPipeline()
	for index, id := range ids {
		var reminder domain.Reminder
		if err := s.c.get(ctx, id.String(), &reminder); err != nil {
			if errors.Is(err, errMissing) {
				continue
			}
			return err
		}
		reminder.DisplayOrder = index
		data, err := json.Marshal(&reminder)
		if err != nil {
			return err
		}
		pipe.Set(ctx, s.c.key(id.String()), data, 0)
	}

	_, err := pipe.Exec(ctx)
	return err
}
