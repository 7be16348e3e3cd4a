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

// canonicalReminderOrder is the collection ordering shared by GetAll,
// GetPending, and GetByStatus.
var canonicalReminderOrder = []string{"display_order ASC", "is_pinned DESC", "due_at ASC"}

const reminderColumns = `id, title, category, due_at, remind_before_value, remind_before_unit,
		status, is_pinned, display_order, linked_log_id, recurrence_rule_id, created_at, updated_at`

// ReminderStore implements the store.ReminderStore interface using a
// PostgreSQL database as the storage backend.
//
// Reorder requires a transaction; construct the store with a *sql.DB
// handle (the sqlDB field) for that operation to be available.
type ReminderStore struct {
	db     store.DBTX
	sqlDB  *sql.DB
	logger *slog.Logger
}

// NewReminderStore creates a new PostgreSQL implementation of the
// ReminderStore interface. If logger is nil, a default logger is used.
func NewReminderStore(db *sql.DB, logger *slog.Logger) *ReminderStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReminderStore{
		db:     db,
		sqlDB:  db,
		logger: logger.With(slog.String("component", "reminder_store")),
	}
}

// Ensure ReminderStore implements store.ReminderStore
var _ store.ReminderStore = (*ReminderStore)(nil)

// Save implements store.ReminderStore.Save as an insert-or-replace by
// identity.
func (s *ReminderStore) Save(ctx context.Context, reminder *domain.Reminder) error {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	if err := reminder.Validate(); err != nil {
		lg.Warn("reminder validation failed during save",
			slog.String("error", err.Error()),
			slog.String("reminder_id", reminder.ID.String()))
		return err
	}

	query := `
		INSERT INTO reminders (id, title, category, due_at, remind_before_value, remind_before_unit,
			status, is_pinned, display_order, linked_log_id, recurrence_rule_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			due_at = EXCLUDED.due_at,
			remind_before_value = EXCLUDED.remind_before_value,
			remind_before_unit = EXCLUDED.remind_before_unit,
			status = EXCLUDED.status,
			is_pinned = EXCLUDED.is_pinned,
			display_order = EXCLUDED.display_order,
			linked_log_id = EXCLUDED.linked_log_id,
			recurrence_rule_id = EXCLUDED.recurrence_rule_id,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		reminder.ID,
		reminder.Title,
		reminder.Category,
		reminder.DueAt,
		reminder.RemindBeforeValue,
		reminder.RemindBeforeUnit,
		reminder.Status,
		reminder.IsPinned,
		reminder.DisplayOrder,
		nullUUID(reminder.LinkedLogID),
		nullUUID(reminder.RecurrenceRuleID),
		reminder.CreatedAt,
		reminder.UpdatedAt,
	)

	if err != nil {
		lg.Error("failed to save reminder",
			slog.String("error", err.Error()),
			slog.String("reminder_id", reminder.ID.String()))
		return err
	}

	lg.Debug("reminder saved",
		slog.String("reminder_id", reminder.ID.String()),
		slog.String("status", string(reminder.Status)))
	return nil
}

// Update implements store.ReminderStore.Update.
// Returns store.ErrReminderNotFound if the reminder does not exist.
func (s *ReminderStore) Update(ctx context.Context, reminder *domain.Reminder) error {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	if err := reminder.Validate(); err != nil {
		lg.Warn("reminder validation failed during update",
			slog.String("error", err.Error()),
			slog.String("reminder_id", reminder.ID.String()))
		return err
	}

	query := `
		UPDATE reminders
		SET title = $1, category = $2, due_at = $3, remind_before_value = $4,
			remind_before_unit = $5, status = $6, is_pinned = $7, display_order = $8,
			linked_log_id = $9, recurrence_rule_id = $10, updated_at = $11
		WHERE id = $12
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		reminder.Title,
		reminder.Category,
		reminder.DueAt,
		reminder.RemindBeforeValue,
		reminder.RemindBeforeUnit,
		reminder.Status,
		reminder.IsPinned,
		reminder.DisplayOrder,
		nullUUID(reminder.LinkedLogID),
		nullUUID(reminder.RecurrenceRuleID),
		reminder.UpdatedAt,
		reminder.ID,
	)
	if err != nil {
		lg.Error("failed to update reminder",
			slog.String("error", err.Error()),
			slog.String("reminder_id", reminder.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		lg.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("reminder_id", reminder.ID.String()))
		return err
	}
	if rowsAffected == 0 {
		lg.Debug("reminder not found for update",
			slog.String("reminder_id", reminder.ID.String()))
		return store.ErrReminderNotFound
	}

	return nil
}

// GetByID implements store.ReminderStore.GetByID.
// Returns store.ErrReminderNotFound if the reminder does not exist.
func (s *ReminderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reminder, error) {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE id = $1`

	reminder, err := scanReminder(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			lg.Debug("reminder not found", slog.String("reminder_id", id.String()))
			return nil, store.ErrReminderNotFound
		}
		lg.Error("failed to get reminder by ID",
			slog.String("error", err.Error()),
			slog.String("reminder_id", id.String()))
		return nil, err
	}

	return reminder, nil
}

// Delete implements store.ReminderStore.Delete. Deleting an absent ID is
// not an error.
func (s *ReminderStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DeleteMany(ctx, []uuid.UUID{id})
}

// DeleteMany implements store.ReminderStore.DeleteMany.
func (s *ReminderStore) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	if len(ids) == 0 {
		return nil
	}

	query, args, err := psql.Delete("reminders").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return store.NewStoreError("reminder", "delete", "failed to build query", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		lg.Error("failed to delete reminders",
			slog.String("error", err.Error()),
			slog.Int("count", len(ids)))
		return err
	}

	lg.Debug("reminders deleted", slog.Int("count", len(ids)))
	return nil
}

// GetAll implements store.ReminderStore.GetAll in canonical order.
func (s *ReminderStore) GetAll(ctx context.Context) ([]*domain.Reminder, error) {
	return s.queryReminders(ctx, nil)
}

// GetPending implements store.ReminderStore.GetPending.
func (s *ReminderStore) GetPending(ctx context.Context) ([]*domain.Reminder, error) {
	return s.GetByStatus(ctx, domain.ReminderStatusPending)
}

// GetByStatus implements store.ReminderStore.GetByStatus.
func (s *ReminderStore) GetByStatus(ctx context.Context, status domain.ReminderStatus) ([]*domain.Reminder, error) {
	return s.queryReminders(ctx, sq.Eq{"status": status})
}

// queryReminders fetches reminders in canonical order, optionally
// filtered.
func (s *ReminderStore) queryReminders(ctx context.Context, where any) ([]*domain.Reminder, error) {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	builder := psql.Select(
		"id", "title", "category", "due_at", "remind_before_value", "remind_before_unit",
		"status", "is_pinned", "display_order", "linked_log_id", "recurrence_rule_id",
		"created_at", "updated_at").
		From("reminders").
		OrderBy(canonicalReminderOrder...)
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, store.NewStoreError("reminder", "query", "failed to build query", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		lg.Error("failed to query reminders", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			lg.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	reminders := []*domain.Reminder{}
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			lg.Error("failed to scan reminder row", slog.String("error", err.Error()))
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	if err := rows.Err(); err != nil {
		lg.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return reminders, nil
}

// UpdateStatus implements store.ReminderStore.UpdateStatus.
// Returns store.ErrReminderNotFound if the reminder does not exist.
func (s *ReminderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReminderStatus) error {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE reminders
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		lg.Error("failed to update reminder status",
			slog.String("error", err.Error()),
			slog.String("reminder_id", id.String()),
			slog.String("status", string(status)))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		lg.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("reminder_id", id.String()))
		return err
	}
	if rowsAffected == 0 {
		lg.Debug("reminder not found for status update",
			slog.String("reminder_id", id.String()))
		return store.ErrReminderNotFound
	}

	lg.Debug("reminder status updated",
		slog.String("reminder_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

// MarkComplete implements store.ReminderStore.MarkComplete.
func (s *ReminderStore) MarkComplete(ctx context.Context, id uuid.UUID) error {
	return s.UpdateStatus(ctx, id, domain.ReminderStatusCompleted)
}

// Reorder implements store.ReminderStore.Reorder. All displayOrder
// updates are applied in a single transaction; a failure on any row rolls
// the whole batch back. IDs without a matching row affect nothing.
func (s *ReminderStore) Reorder(ctx context.Context, ids []uuid.UUID) error {
	lg := logger.FromContextOrDefault(ctx, s.logger)

	if len(ids) == 0 {
		return nil
	}
	if s.sqlDB == nil {
		return store.NewStoreError("reminder", "reorder", "store has no transaction-capable handle", nil)
	}

	err := store.RunInTransaction(ctx, s.sqlDB, func(ctx context.Context, tx *sql.Tx) error {
		return applyOrder(ctx, tx, "reminders", ids)
	})
	if err != nil {
		lg.Error("failed to reorder reminders",
			slog.String("error", err.Error()),
			slog.Int("count", len(ids)))
		return err
	}

	lg.Debug("reminders reordered", slog.Int("count", len(ids)))
	return nil
}

// applyOrder sets display_order to the positional index of each ID, one
// statement per ID inside the caller's transaction.
func applyOrder(ctx context.Context, db store.DBTX, table string, ids []uuid.UUID) error {
	stmt := `UPDATE ` + table + ` SET display_order = $1 WHERE id = $2`
	for index, id := range ids {
		if _, err := db.ExecContext(ctx, stmt, index, id); err != nil {
			return err
		}
	}
	return nil
}

func scanReminder(row rowScanner) (*domain.Reminder, error) {
	var reminder domain.Reminder
	var linkedLogID, recurrenceRuleID uuid.NullUUID

	err := row.Scan(
		&reminder.ID,
		&reminder.Title,
		&reminder.Category,
		&reminder.DueAt,
		&reminder.RemindBeforeValue,
		&reminder.RemindBeforeUnit,
		&reminder.Status,
		&reminder.IsPinned,
		&reminder.DisplayOrder,
		&linkedLogID,
		&recurrenceRuleID,
		&reminder.CreatedAt,
		&reminder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if linkedLogID.Valid {
		id := linkedLogID.UUID
		reminder.LinkedLogID = &id
	}
	if recurrenceRuleID.Valid {
		id := recurrenceRuleID.UUID
		reminder.RecurrenceRuleID = &id
	}
	return &reminder, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
