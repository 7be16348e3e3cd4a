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

// AssetStore implements store.AssetStore on Redis.
type AssetStore struct {
	c collection
}

// NewAssetStore creates a Redis-backed asset repository.
func NewAssetStore(client *redis.Client) *AssetStore {
	if client == nil {
		panic("client cannot be nil")
	}
	return &AssetStore{c: collection{client: client, prefix: "asset", setKey: "assets"}}
}

// Ensure AssetStore implements store.AssetStore
var _ store.AssetStore = (*AssetStore)(nil)

// Save implements store.AssetStore.Save with upsert semantics.
func (s *AssetStore) Save(ctx context.Context, asset *domain.DigitalAsset) error {
	if err := asset.Validate(); err != nil {
		return err
	}
	return s.c.save(ctx, asset.ID.String(), asset)
}

// Update implements store.AssetStore.Update.
func (s *AssetStore) Update(ctx context.Context, asset *domain.DigitalAsset) error {
	if err := asset.Validate(); err != nil {
		return err
	}
	if err := s.c.update(ctx, asset.ID.String(), asset); err != nil {
		if errors.Is(err, errMissing) {
			return store.ErrAssetNotFound
		}
		return err
	}
	return nil
}

// GetByID implements store.AssetStore.GetByID.
func (s *AssetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.DigitalAsset, error) {
	var asset domain.DigitalAsset
	if err := s.c.get(ctx, id.String(), &asset); err != nil {
		if errors.Is(err, errMissing) {
			return nil, store.ErrAssetNotFound
		}
		return nil, err
	}
	return &asset, nil
}

// Delete implements store.AssetStore.Delete. Absent IDs are not an error.
func (s *AssetStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.c.deleteMany(ctx, []string{id.String()})
}

// DeleteMany implements store.AssetStore.DeleteMany.
func (s *AssetStore) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	return s.c.deleteMany(ctx, uuidStrings(ids))
}

// GetAll implements store.AssetStore.GetAll, ordered by displayOrder
// ascending, then createdAt ascending.
func (s *AssetStore) GetAll(ctx context.Context) ([]*domain.DigitalAsset, error) {
	assets := []*domain.DigitalAsset{}
	err := s.c.all(ctx, func(data []byte) error {
		var asset domain.DigitalAsset
		if err := json.Unmarshal(data, &asset); err != nil {
			return err
		}
		assets = append(assets, &asset)
		return nil
	})
	if err != nil {
		return nil, err
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

// Reorder implements store.AssetStore.Reorder with the same transactional
// pipeline semantics as the reminder store.
func (s *AssetStore) Reorder(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	pipe := s.c.client.TxPipeline()
	for index, id := range ids {
		var asset domain.DigitalAsset
		if err := s.c.get(ctx, id.String(), &asset); err != nil {
			if errors.Is(err, errMissing) {
				continue
			}
			return err
		}
		asset.DisplayOrder = index
		data, err := json.Marshal(&asset)
		if err != nil {
			return err
		}
		pipe.Set(ctx, s.c.key(id.String()), data, 0)
	}

	_, err := pipe.Exec(ctx)
	return err
}
