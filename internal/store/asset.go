package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/nudge-api/internal/domain"
)

// AssetStore defines the interface for digital asset persistence.
type AssetStore interface {
	// Save persists an asset using insert-or-replace semantics.
	Save(ctx context.Context, asset *domain.DigitalAsset) error

	// Update saves changes to an existing asset.
	// Returns ErrAssetNotFound if the asset does not exist.
	Update(ctx context.Context, asset *domain.DigitalAsset) error

	// GetByID retrieves an asset by its unique ID.
	// Returns ErrAssetNotFound if the asset does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DigitalAsset, error)

	// Delete removes an asset by ID. Deleting an absent ID is not an
	// error; the contract is "ensure absent".
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteMany removes all assets whose IDs appear in ids. Absent IDs
	// are ignored.
	DeleteMany(ctx context.Context, ids []uuid.UUID) error

	// GetAll returns every asset ordered by displayOrder ascending, then
	// createdAt ascending.
	GetAll(ctx context.Context) ([]*domain.DigitalAsset, error)

	// Reorder assigns displayOrder = positional index for each ID in ids
	// as a single all-or-nothing batch, with the same ignore/retain
	// semantics as ReminderStore.Reorder.
	Reorder(ctx context.Context, ids []uuid.UUID) error
}
