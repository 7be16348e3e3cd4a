package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/phrazzld/nudge-api/internal/domain"
	"github.com/phrazzld/nudge-api/internal/store"
)

// LogStore implements store.LogStore on an in-memory Store.
type LogStore struct {
	s *Store
}

// NewLogStore creates a log repository backed by the given store.
func NewLogStore(s *Store) *LogStore {
	if s == nil {
		panic("store cannot be nil")
	}
	return &LogStore{s: s}
}

// Ensure LogStore implements store.LogStore
var _ store.LogStore = (*LogStore)(nil)

// Save implements store.LogStore.Save with upsert semantics.
func (ls *LogStore) Save(ctx context.Context, log *domain.LifeLog) error {
	if err := log.Validate(); err != nil {
		return err
	}

	ls.s.mu.Lock()
	defer ls.s.mu.Unlock()
	ls.s.logs[log.ID] = cloneLog(log)
	return nil
}

// Update implements store.LogStore.Update.
func (ls *LogStore) Update(ctx context.Context, log *domain.LifeLog) error {
	if err := log.Validate(); err != nil {
		return err
	}

	ls.s.mu.Lock()
	defer ls.s.mu.Unlock()
	if _, ok := ls.s.logs[log.ID]; !ok {
		return store.ErrLogNotFound
	}
	ls.s.logs[log.ID] = cloneLog(log)
	return nil
}

// GetByID implements store.LogStore.GetByID.
func (ls *LogStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.LifeLog, error) {
	ls.s.mu.RLock()
	defer ls.s.mu.RUnlock()
	log, ok := ls.s.logs[id]
	if !ok {
		return nil, store.ErrLogNotFound
	}
	return cloneLog(log), nil
}

// Delete implements store.LogStore.Delete. Absent IDs are not an error.
func (ls *LogStore) Delete(ctx context.Context, id uuid.UUID) error {
	ls.s.mu.Lock()
	defer ls.s.mu.Unlock()
	delete(ls.s.logs, id)
	return nil
}

// DeleteMany implements store.LogStore.DeleteMany.
func (ls *LogStore) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	ls.s.mu.Lock()
	defer ls.s.mu.Unlock()
	for _, id := range ids {
		delete(ls.s.logs, id)
	}
	return nil
}

// GetAll implements store.LogStore.GetAll, ordered by occurredAt descending.
func (ls *LogStore) GetAll(ctx context.Context) ([]*domain.LifeLog, error) {
	ls.s.mu.RLock()
	defer ls.s.mu.RUnlock()

	logs := make([]*domain.LifeLog, 0, len(ls.s.logs))
	for _, l := range ls.s.logs {
		logs = append(logs, cloneLog(l))
	}
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].OccurredAt.After(logs[j].OccurredAt)
	})
	return logs, nil
}

// GetRecent implements store.LogStore.GetRecent.
func (ls *LogStore) GetRecent(ctx context.Context, limit int) ([]*domain.LifeLog, error) {
	logs, err := ls.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if limit < 0 {
		limit = 0
	}
	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}
