package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/phrazzld/nudge-api/internal/domain"
	"github.com/phrazzld/nudge-api/internal/store"
)

// AssetStore implements store.AssetStore on an in-memory Store.
type AssetStore struct {
	s *Store
}

// NewAssetStore creates an asset repository backed by the given store.
func NewAssetStore(s *Store) *AssetStore {
	if s == nil {
		panic("store cannot be nil")
	}
	return &AssetStore{s: s}
}

// Ensure AssetStore implements store.AssetStore
var _ store.AssetStore = (*AssetStore)(nil)

// Save implements store.AssetStore.Save with upsert semantics.
func (as *AssetStore) Save(ctx context.Context, asset *domain.DigitalAsset) error {
	if err := asset.Validate(); err != nil {
		return err
	}

	as.s.mu.Lock()
	defer as.s.mu.Unlock()
	as.s.assets[asset.ID] = cloneAsset(asset)
	return nil
}

// Update implements store.AssetStore.Update.
func (as *AssetStore) Update(ctx context.Context, asset *domain.DigitalAsset) error {
	if err := asset.Validate(); err != nil {
		return err
	}

	as.s.mu.Lock()
	defer as.s.mu.Unlock()
	if _, ok := as.s.assets[asset.ID]; !ok {
		return store.ErrAssetNotFound
	}
	as.s.assets[asset.ID] = cloneAsset(asset)
	return nil
}

// GetByID implements store.AssetStore.GetByID.
func (as *AssetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.DigitalAsset, error) {
	as.s.mu.RLock()
	defer as.s.mu.RUnlock()
	asset, ok := as.s.assets[id]
	if !ok {
		return nil, store.ErrAssetNotFound
	}
	return cloneAsset(asset), nil
}

// Delete implements store.AssetStore.Delete. Absent IDs are not an error.
func (as *AssetStore) Delete(ctx context.Context, id uuid.UUID) error {
	as.s.mu.Lock()
	defer as.s.mu.Unlock()
	delete(as.s.assets, id)
	return nil
}

// DeleteMany implements store.AssetStore.DeleteMany.
func (as *AssetStore) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	as.s.mu.Lock()
	defer as.s.mu.Unlock()
	for _, id := range ids {
		delete(as.s.assets, id)
	}
	return nil
}

// GetAll implements store.AssetStore.GetAll, ordered by displayOrder
// ascending, then createdAt ascending.
func (as *AssetStore) GetAll(ctx context.Context) ([]*domain.DigitalAsset, error) {
	as.s.mu.RLock()
	defer as.s.mu.RUnlock()

	assets := make([]*domain.DigitalAsset, 0, len(as.s.assets))
	for _, a := range as.s.assets {
		assets = append(assets, cloneAsset(a))
	}
	sort.SliceStable(assets, func(i, j int) bool {
		a, b := assets[i], assets[j]
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return assets, nil
}

// Reorder implements store.AssetStore.Reorder.
func (as *AssetStore) Reorder(ctx context.Context, ids []uuid.UUID) error {
	as.s.mu.Lock()
	defer as.s.mu.Unlock()
	for index, id := range ids {
		if asset, ok := as.s.assets[id]; ok {
			asset.DisplayOrder = index
		}
	}
	return nil
}
