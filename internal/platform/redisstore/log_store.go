package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/phrazzld/nudge-api/internal/domain"
	"github.com/phrazzld/nudge-api/internal/store"
)

// LogStore implements store.LogStore on Redis.
type LogStore struct {
	c collection
}

// NewLogStore creates a Redis-backed log repository.
func NewLogStore(client *redis.Client) *LogStore {
	if client == nil {
		panic("client cannot be nil")
	}
	return &LogStore{c: collection{client: client, prefix: "log", setKey: "logs"}}
}

// Ensure LogStore implements store.LogStore
var _ store.LogStore = (*LogStore)(nil)

// Save implements store.LogStore.Save with upsert semantics.
func (s *LogStore) Save(ctx context.Context, log *domain.LifeLog) error {
	if err := log.Validate(); err != nil {
		return err
	}
	return s.c.save(ctx, log.ID.String(), log)
}

// Update implements store.LogStore.Update.
func (s *LogStore) Update(ctx context.Context, log *domain.LifeLog) error {
	if err := log.Validate(); err != nil {
		return err
	}
	if err := s.c.update(ctx, log.ID.String(), log); err != nil {
		if errors.Is(err, errMissing) {
			return store.ErrLogNotFound
		}
		return err
	}
	return nil
}

// GetByID implements store.LogStore.GetByID.
func (s *LogStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.LifeLog, error) {
	var log domain.LifeLog
	if err := s.c.get(ctx, id.String(), &log); err != nil {
		if errors.Is(err, errMissing) {
			return nil, store.ErrLogNotFound
		}
		return nil, err
	}
	return &log, nil
}

// Delete implements store.LogStore.Delete. Absent IDs are not an error.
func (s *LogStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.c.deleteMany(ctx, []string{id.String()})
}

// DeleteMany implements store.LogStore.DeleteMany.
func (s *LogStore) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	return s.c.deleteMany(ctx, uuidStrings(ids))
}

// GetAll implements store.LogStore.GetAll, ordered by occurredAt descending.
func (s *LogStore) GetAll(ctx context.Context) ([]*domain.LifeLog, error) {
	logs := []*domain.LifeLog{}
	err := s.c.all(ctx, func(data []byte) error {
		var log domain.LifeLog
		if err := json.Unmarshal(data, &log); err != nil {
			return err
		}
		logs = append(logs, &log)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].OccurredAt.After(logs[j].OccurredAt)
	})
	return logs, nil
}

// GetRecent implements store.LogStore.GetRecent.
func (s *LogStore) GetRecent(ctx context.Context, limit int) ([]*domain.LifeLog, error) {
	logs, err := s.GetAll(ctx)
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

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
