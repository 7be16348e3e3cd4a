package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/phrazzld/nudge-api/internal/domain"
	"github.com/phrazzld/nudge-api/internal/platform/logger"
	"github.com/phrazzld/nudge-api/internal/store"
)

// AssetStore implements the store.AssetStore interface using a PostgreSQL
// database as the storage backend.
type AssetStore struct {
	db     store.DBTX
	sqlDB  *sql.DB
	logger *slog.Logger
}

// NewAssetStore creates a new PostgreSQL implementation of the AssetStore
// interface. If logger is nil, a default logger is used.
func NewAssetStore(db *sql.DB, logger *slog.Logger) *AssetStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AssetStore{
		db:     db,
		sqlDB:  db,
		logger: logger.With(slog.String("component", "asset_store")),
	}
}

// Ensure AssetStore implements store.AssetStore
var _ store.AssetStore = (*AssetStore)(nil)

// Save implements store.AssetStore.Save as an insert-or-replace by
// identity.
func (s *AssetStore) Save(ctx context.Context, asset *domain.DigitalAsset) error {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	if err := asset.Validate(); err != nil {
		lg.Warn("asset validation failed during save",
			slog.String("error", err.Error()),
			slog.String("asset_id", asset.ID.String()))
		return err
	}

	query := `
		INSERT INTO digital_assets (id, title, type, category, identifier, metadata,
			expires_at, remind_at, status, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			type = EXCLUDED.type,
			category = EXCLUDED.category,
			identifier = EXCLUDED.identifier,
			metadata = EXCLUDED.metadata,
			expires_at = EXCLUDED.expires_at,
			remind_at = EXCLUDED.remind_at,
			status = EXCLUDED.status,
			display_order = EXCLUDED.display_order,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		asset.ID,
		asset.Title,
		asset.Type,
		asset.Category,
		nullString(asset.Identifier),
		nullString(asset.Metadata),
		nullTime(asset.ExpiresAt),
		nullTime(asset.RemindAt),
		asset.Status,
		asset.DisplayOrder,
		asset.CreatedAt,
		asset.UpdatedAt,
	)

	if err != nil {
		lg.Error("failed to save asset",
			slog.String("error", err.Error()),
			slog.String("asset_id", asset.ID.String()))
		return err
	}

	lg.Debug("asset saved",
		slog.String("asset_id", asset.ID.String()),
		slog.String("type", string(asset.Type)))
	return nil
}

// Update implements store.AssetStore.Update.
// Returns store.ErrAssetNotFound if the asset does not exist.
func (s *AssetStore) Update(ctx context.Context, asset *domain.DigitalAsset) error {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	if err := asset.Validate(); err != nil {
		lg.Warn("asset validation failed during update",
			slog.String("error", err.Error()),
			slog.String("asset_id", asset.ID.String()))
		return err
	}

	query := `
		UPDATE digital_assets
		SET title = $1, type = $2, category = $3, identifier = $4, metadata = $5,
			expires_at = $6, remind_at = $7, status = $8, display_order = $9, updated_at = $10
		WHERE id = $11
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		asset.Title,
		asset.Type,
		asset.Category,
		nullString(asset.Identifier),
		nullString(asset.Metadata),
		nullTime(asset.ExpiresAt),
		nullTime(asset.RemindAt),
		asset.Status,
		asset.DisplayOrder,
		asset.UpdatedAt,
		asset.ID,
	)
	if err != nil {
		lg.Error("failed to update asset",
			slog.String("error", err.Error()),
			slog.String("asset_id", asset.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		lg.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("asset_id", asset.ID.String()))
		return err
	}
	if rowsAffected == 0 {
		lg.Debug("asset not found for update", slog.String("asset_id", asset.ID.String()))
		return store.ErrAssetNotFound
	}

	return nil
}

// GetByID implements store.AssetStore.GetByID.
// Returns store.ErrAssetNotFound if the asset does not exist.
func (s *AssetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.DigitalAsset, error) {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, type, category, identifier, metadata, expires_at, remind_at,
			status, display_order, created_at, updated_at
		FROM digital_assets
		WHERE id = $1
	`

	asset, err := scanAsset(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			lg.Debug("asset not found", slog.String("asset_id", id.String()))
			return nil, store.ErrAssetNotFound
		}
		lg.Error("failed to get asset by ID",
			slog.String("error", err.Error()),
			slog.String("asset_id", id.String()))
		return nil, err
	}

	return asset, nil
}

// Delete implements store.AssetStore.Delete. Deleting an absent ID is not
// an error.
func (s *AssetStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DeleteMany(ctx, []uuid.UUID{id})
}

// DeleteMany implements store.AssetStore.DeleteMany.
func (s *AssetStore) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	if len(ids) == 0 {
		return nil
	}

	query, args, err := psql.Delete("digital_assets").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return store.NewStoreError("asset", "delete", "failed to build query", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		lg.Error("failed to delete assets",
			slog.String("error", err.Error()),
			slog.Int("count", len(ids)))
		return err
	}

	lg.Debug("assets deleted", slog.Int("count", len(ids)))
	return nil
}

// GetAll implements store.AssetStore.GetAll, ordered by displayOrder
// ascending, then createdAt ascending.
func (s *AssetStore) GetAll(ctx context.Context) ([]*domain.DigitalAsset, error) {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, type, category, identifier, metadata, expires_at, remind_at,
			status, display_order, created_at, updated_at
		FROM digital_assets
		ORDER BY display_order ASC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		lg.Error("failed to query assets", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			lg.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	assets := []*domain.DigitalAsset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			lg.Error("failed to scan asset row", slog.String("error", err.Error()))
			return nil, err
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		lg.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return assets, nil
}

// Reorder implements store.AssetStore.Reorder with the same transactional
// batch semantics as the reminder store.
func (s *AssetStore) Reorder(ctx context.Context, ids []uuid.UUID) error {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	if len(ids) == 0 {
		return nil
	}
	if s.sqlDB == nil {
		return store.NewStoreError("asset", "reorder", "store has no transaction-capable handle", nil)
	}

	err := store.RunInTransaction(ctx, s.sqlDB, func(ctx context.Context, tx *sql.Tx) error {
		return applyOrder(ctx, tx, "digital_assets", ids)
	})
	if err != nil {
		lg.Error("failed to reorder assets",
			slog.String("error", err.Error()),
			slog.Int("count", len(ids)))
		return err
	}

	lg.Debug("assets reordered", slog.Int("count", len(ids)))
	return nil
}

func scanAsset(row rowScanner) (*domain.DigitalAsset, error) {
	var asset domain.DigitalAsset
	var identifier, metadata sql.NullString
	var expiresAt, remindAt sql.NullTime

	err := row.Scan(
		&asset.ID,
		&asset.Title,
		&asset.Type,
		&asset.Category,
		&identifier,
		&metadata,
		&expiresAt,
		&remindAt,
		&asset.Status,
		&asset.DisplayOrder,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	asset.Identifier = identifier.String
	asset.Metadata = metadata.String
	if expiresAt.Valid {
		t := expiresAt.Time
		asset.ExpiresAt = &t
	}
	if remindAt.Valid {
		t := remindAt.Time
		asset.RemindAt = &t
	}
	return &asset, nil
}
