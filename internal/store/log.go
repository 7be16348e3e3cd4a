package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/nudge-api/internal/domain"
)

// LogStore defines the interface for life log persistence.
type LogStore interface {
	// Save persists a log using insert-or-replace semantics: an existing
	// log with the same ID is overwritten, otherwise a new row is created.
	Save(ctx context.Context, log *domain.LifeLog) error

	// Update saves changes to an existing log.
	// Returns ErrLogNotFound if the log does not exist.
	Update(ctx context.Context, log *domain.LifeLog) error

	// GetByID retrieves a log by its unique ID.
	// Returns ErrLogNotFound if the log does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LifeLog, error)

	// Delete removes a log by ID. Deleting an absent ID is not an error;
	// the contract is "ensure absent".
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteMany removes all logs whose IDs appear in ids. Absent IDs
	// are ignored.
	DeleteMany(ctx context.Context, ids []uuid.UUID) error

	// GetAll returns every log ordered by occurredAt descending.
	GetAll(ctx context.Context) ([]*domain.LifeLog, error)

	// GetRecent returns the first limit logs of GetAll.
	GetRecent(ctx context.Context, limit int) ([]*domain.LifeLog, error)
}
