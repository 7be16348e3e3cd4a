package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/phrazzld/nudge-api/internal/domain"
	"github.com/phrazzld/nudge-api/internal/platform/logger"
	"github.com/phrazzld/nudge-api/internal/store"
)

// psql builds queries with PostgreSQL dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// LogStore implements the store.LogStore interface using a PostgreSQL
// database as the storage backend.
type LogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewLogStore creates a new PostgreSQL implementation of the LogStore
// interface. It accepts a database connection or transaction managed by
// the caller. If logger is nil, a default logger is used.
func NewLogStore(db store.DBTX, logger *slog.Logger) *LogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LogStore{
		db:     db,
		logger: logger.With(slog.String("component", "log_store")),
	}
}

// Ensure LogStore implements store.LogStore
var _ store.LogStore = (*LogStore)(nil)

// Save implements store.LogStore.Save as an insert-or-replace by identity.
func (s *LogStore) Save(ctx context.Context, log *domain.LifeLog) error {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	if err := log.Validate(); err != nil {
		lg.Warn("log validation failed during save",
			slog.String("error", err.Error()),
			slog.String("log_id", log.ID.String()))
		return err
	}

	query := `
		INSERT INTO life_logs (id, title, category, notes, occurred_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			notes = EXCLUDED.notes,
			occurred_at = EXCLUDED.occurred_at,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		log.ID,
		log.Title,
		log.Category,
		nullString(log.Notes),
		log.OccurredAt,
		log.CreatedAt,
		log.UpdatedAt,
	)

	if err != nil {
		lg.Error("failed to save log",
			slog.String("error", err.Error()),
			slog.String("log_id", log.ID.String()))
		return err
	}

	lg.Debug("log saved",
		slog.String("log_id", log.ID.String()),
		slog.String("category", string(log.Category)))
	return nil
}

// Update implements store.LogStore.Update.
// Returns store.ErrLogNotFound if the log does not exist.
func (s *LogStore) Update(ctx context.Context, log *domain.LifeLog) error {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	if err := log.Validate(); err != nil {
		lg.Warn("log validation failed during update",
			slog.String("error", err.Error()),
			slog.String("log_id", log.ID.String()))
		return err
	}

	query := `
		UPDATE life_logs
		SET title = $1, category = $2, notes = $3, occurred_at = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		log.Title,
		log.Category,
		nullString(log.Notes),
		log.OccurredAt,
		log.UpdatedAt,
		log.ID,
	)
	if err != nil {
		lg.Error("failed to update log",
			slog.String("error", err.Error()),
			slog.String("log_id", log.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		lg.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("log_id", log.ID.String()))
		return err
	}
	if rowsAffected == 0 {
		lg.Debug("log not found for update", slog.String("log_id", log.ID.String()))
		return store.ErrLogNotFound
	}

	return nil
}

// GetByID implements store.LogStore.GetByID.
// Returns store.ErrLogNotFound if the log does not exist.
func (s *LogStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.LifeLog, error) {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, category, notes, occurred_at, created_at, updated_at
		FROM life_logs
		WHERE id = $1
	`

	log, err := scanLog(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			lg.Debug("log not found", slog.String("log_id", id.String()))
			return nil, store.ErrLogNotFound
		}
		lg.Error("failed to get log by ID",
			slog.String("error", err.Error()),
			slog.String("log_id", id.String()))
		return nil, err
	}

	return log, nil
}

// Delete implements store.LogStore.Delete. Deleting an absent ID is not
// an error.
func (s *LogStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DeleteMany(ctx, []uuid.UUID{id})
}

// DeleteMany implements store.LogStore.DeleteMany.
func (s *LogStore) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	if len(ids) == 0 {
		return nil
	}

	query, args, err := psql.Delete("life_logs").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return store.NewStoreError("log", "delete", "failed to build query", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		lg.Error("failed to delete logs",
			slog.String("error", err.Error()),
			slog.Int("count", len(ids)))
		return err
	}

	lg.Debug("logs deleted", slog.Int("count", len(ids)))
	return nil
}

// GetAll implements store.LogStore.GetAll, ordered by occurredAt descending.
func (s *LogStore) GetAll(ctx context.Context) ([]*domain.LifeLog, error) {
	return s.queryLogs(ctx, 0)
}

// GetRecent implements store.LogStore.GetRecent.
func (s *LogStore) GetRecent(ctx context.Context, limit int) ([]*domain.LifeLog, error) {
	if limit <= 0 {
		return []*domain.LifeLog{}, nil
	}
	return s.queryLogs(ctx, limit)
}

// queryLogs fetches logs in occurredAt-descending order, optionally
// limited. limit <= 0 means no limit.
func (s *LogStore) queryLogs(ctx context.Context, limit int) ([]*domain.LifeLog, error) {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	builder := psql.Select("id", "title", "category", "notes", "occurred_at", "created_at", "updated_at").
		From("life_logs").
		OrderBy("occurred_at DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, store.NewStoreError("log", "query", "failed to build query", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		lg.Error("failed to query logs", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			lg.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	logs := []*domain.LifeLog{}
	for rows.Next() {
		log, err := scanLog(rows)
		if err != nil {
			lg.Error("failed to scan log row", slog.String("error", err.Error()))
			return nil, err
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		lg.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return logs, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLog(row rowScanner) (*domain.LifeLog, error) {
	var log domain.LifeLog
	var notes sql.NullString

	err := row.Scan(
		&log.ID,
		&log.Title,
		&log.Category,
		&notes,
		&log.OccurredAt,
		&log.CreatedAt,
		&log.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	log.Notes = notes.String
	return &log, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
