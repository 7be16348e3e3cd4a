// Package memory provides an in-memory implementation of the store
// contracts. It backs the "memory" storage driver and serves as the test
// fixture for the service and API layers.
//
// All state lives in an explicit Store object passed into the repository
// constructors; there is no ambient global. Lifecycle is scoped to
// whoever created the Store (the process for the demo driver, the test
// for fixtures).
package memory

import (
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/nudge-api/internal/domain"
)

// Store holds the shared in-memory state for all three repositories.
// A single mutex serializes access; the memory backend makes no claim of
// fine-grained concurrency beyond what the storage layer must provide.
type Store struct {
	mu        sync.RWMutex
	logs      map[uuid.UUID]*domain.LifeLog
	reminders map[uuid.UUID]*domain.Reminder
	assets    map[uuid.UUID]*domain.DigitalAsset
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		logs:      make(map[uuid.UUID]*domain.LifeLog),
		reminders: make(map[uuid.UUID]*domain.Reminder),
		assets:    make(map[uuid.UUID]*domain.DigitalAsset),
	}
}

// Entities are copied on every write and read so callers never share
// memory with the store. This mirrors the isolation a real database
// round-trip provides and keeps value semantics intact for tests.

func cloneLog(l *domain.LifeLog) *domain.LifeLog {
	c := *l
	return &c
}

func cloneReminder(r *domain.Reminder) *domain.Reminder {
	c := *r
	if r.LinkedLogID != nil {
		id := *r.LinkedLogID
		c.LinkedLogID = &id
	}
	if r.RecurrenceRuleID != nil {
		id := *r.RecurrenceRuleID
		c.RecurrenceRuleID = &id
	}
	return &c
}

func cloneAsset(a *domain.DigitalAsset) *domain.DigitalAsset {
	c := *a
	if a.ExpiresAt != nil {
		t := *a.ExpiresAt
		c.ExpiresAt = &t
	}
	if a.RemindAt != nil {
		t := *a.RemindAt
		c.RemindAt = &t
	}
	return &c
}
