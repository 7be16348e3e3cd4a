package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/nudge-api/internal/domain"
	"github.com/phrazzld/nudge-api/internal/domain/nudge"
	"github.com/phrazzld/nudge-api/internal/platform/logger"
	"github.com/phrazzld/nudge-api/internal/store"
)

// NudgeParams carries the caller-settable fields of a reminder. Zero
// values for Category and RemindBeforeUnit get the documented defaults
// ("general" and days).
type NudgeParams struct {
	Title             string
	DueAt             time.Time
	Category          string
	RemindBeforeValue int
	RemindBeforeUnit  domain.OffsetUnit
}

// AssetParams carries the caller-settable fields of a digital asset.
type AssetParams struct {
	Title      string
	Type       domain.AssetType
	Category   string
	Identifier string
	Metadata   string
	ExpiresAt  *time.Time
	RemindAt   *time.Time
}

// DashboardData is the snapshot returned to callers after dashboard
// queries and most mutations: the five most recently occurred logs plus
// the full reminder collection, each in its repository's canonical order.
type DashboardData struct {
	RecentLogs []*domain.LifeLog  `json:"recent_logs"`
	Reminders  []*domain.Reminder `json:"reminders"`
}

// recentLogCount is how many logs the dashboard shows.
const recentLogCount = 5

// TrackerService orchestrates entity creation, runs the nudge predictor,
// applies status and ordering transitions, and assembles dashboard views.
// It is the sole owner of cross-entity consistency; all mutations funnel
// through it.
type TrackerService interface {
	// LogEvent creates and persists a life log, then runs the nudge
	// predictor. A suggestion yields a derived reminder linked back to
	// the log, with category "general" and a zero remind-before offset.
	// The derived-reminder write is best-effort: it is not transactional
	// with the log write, so a reminder failure can leave the log
	// persisted without one.
	LogEvent(ctx context.Context, title string, category domain.LogCategory, occurredAt time.Time) (*domain.LifeLog, error)

	// CreateNudge constructs and persists a new reminder.
	CreateNudge(ctx context.Context, params NudgeParams) (*domain.Reminder, error)

	// UpdateNudge mutates the caller-settable fields of an existing
	// reminder, preserving creation time, status, pin, display order,
	// and log linkage. Returns ErrReminderNotFound if absent.
	UpdateNudge(ctx context.Context, id uuid.UUID, params NudgeParams) (*domain.Reminder, error)

	// DeleteLog / DeleteLogs / DeleteReminder / DeleteReminders remove
	// entities idempotently: absent IDs are not an error.
	DeleteLog(ctx context.Context, id uuid.UUID) error
	DeleteLogs(ctx context.Context, ids []uuid.UUID) error
	DeleteReminder(ctx context.Context, id uuid.UUID) error
	DeleteReminders(ctx context.Context, ids []uuid.UUID) error

	// UpdateReminderStatus sets the status unconditionally; the state
	// machine's named commands are CompleteReminder and RevertReminder,
	// and this escape hatch is how the reserved snoozed/missed states
	// are reached. A missing ID is a silent no-op.
	UpdateReminderStatus(ctx context.Context, id uuid.UUID, status domain.ReminderStatus) error

	// CompleteReminder transitions pending → completed.
	// A missing ID is a silent no-op.
	CompleteReminder(ctx context.Context, id uuid.UUID) error

	// RevertReminder transitions completed → pending.
	// A missing ID is a silent no-op.
	RevertReminder(ctx context.Context, id uuid.UUID) error

	// TogglePin flips the pinned flag. A missing ID is a silent no-op.
	TogglePin(ctx context.Context, id uuid.UUID) error

	// CloneReminder creates an independent unpinned pending copy of an
	// existing reminder. A missing ID is a silent no-op returning
	// (nil, nil).
	CloneReminder(ctx context.Context, id uuid.UUID) (*domain.Reminder, error)

	// ReorderReminders assigns display order by position in ids, as one
	// atomic batch.
	ReorderReminders(ctx context.Context, ids []uuid.UUID) error

	// ListReminders returns the full collection, or only the reminders
	// with the given status when status is non-nil.
	ListReminders(ctx context.Context, status *domain.ReminderStatus) ([]*domain.Reminder, error)

	// GetDashboardData assembles the dashboard snapshot.
	GetDashboardData(ctx context.Context) (*DashboardData, error)

	// Asset operations mirror reminder CRUD and reorder, without any
	// status machine: asset status changes only by explicit command and
	// is never evaluated against the clock.
	CreateAsset(ctx context.Context, params AssetParams) (*domain.DigitalAsset, error)
	UpdateAsset(ctx context.Context, id uuid.UUID, params AssetParams) (*domain.DigitalAsset, error)
	UpdateAssetStatus(ctx context.Context, id uuid.UUID, status domain.AssetStatus) (*domain.DigitalAsset, error)
	DeleteAsset(ctx context.Context, id uuid.UUID) error
	DeleteAssets(ctx context.Context, ids []uuid.UUID) error
	ReorderAssets(ctx context.Context, ids []uuid.UUID) error
	ListAssets(ctx context.Context) ([]*domain.DigitalAsset, error)
}

// trackerServiceImpl implements the TrackerService interface.
type trackerServiceImpl struct {
	logs      store.LogStore
	reminders store.ReminderStore
	assets    store.AssetStore
	logger    *slog.Logger
}

// NewTrackerService creates a new TrackerService.
// It returns an error if any of the required dependencies are nil.
func NewTrackerService(
	logs store.LogStore,
	reminders store.ReminderStore,
	assets store.AssetStore,
	logger *slog.Logger,
) (TrackerService, error) {
	if logs == nil {
		return nil, &TrackerServiceError{Operation: "create_service", Message: "logs store cannot be nil"}
	}
	if reminders == nil {
		return nil, &TrackerServiceError{Operation: "create_service", Message: "reminders store cannot be nil"}
	}
	if assets == nil {
		return nil, &TrackerServiceError{Operation: "create_service", Message: "assets store cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &trackerServiceImpl{
		logs:      logs,
		reminders: reminders,
		assets:    assets,
		logger:    logger.With("component", "tracker_service"),
	}, nil
}

// LogEvent creates a life log and, when the predictor matches, a derived
// reminder linked back to it.
func (s *trackerServiceImpl) LogEvent(
	ctx context.Context,
	title string,
	category domain.LogCategory,
	occurredAt time.Time,
) (*domain.LifeLog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	lifeLog, err := domain.NewLifeLog(title, category, occurredAt, "")
	if err != nil {
		log.Warn("failed to create log object",
			"error", err,
			"category", category)
		return nil, newServiceError("log_event", "failed to create log object", err)
	}

	if err := s.logs.Save(ctx, lifeLog); err != nil {
		log.Error("failed to save log",
			"error", err,
			"log_id", lifeLog.ID)
		return nil, newServiceError("log_event", "failed to save log", err)
	}

	suggestion := nudge.Predict(lifeLog)
	if suggestion != nil {
		logID := lifeLog.ID
		reminder := domain.NewReminder(suggestion.Title, suggestion.DueAt, "", 0, "", &logID)
		if err := s.reminders.Save(ctx, reminder); err != nil {
			// The log is already persisted; the derived reminder is a
			// best-effort projection, so the orphaned log stays.
			log.Error("failed to save derived reminder",
				"error", err,
				"log_id", lifeLog.ID,
				"reminder_id", reminder.ID)
			return nil, newServiceError("log_event", "failed to save derived reminder", err)
		}
		log.Info("derived reminder created",
			"log_id", lifeLog.ID,
			"reminder_id", reminder.ID,
			"due_at", reminder.DueAt)
	}

	log.Info("life log created",
		"log_id", lifeLog.ID,
		"category", category,
		"suggested", suggestion != nil)
	return lifeLog, nil
}

// CreateNudge constructs and persists a new reminder.
func (s *trackerServiceImpl) CreateNudge(ctx context.Context, params NudgeParams) (*domain.Reminder, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	reminder := domain.NewReminder(
		params.Title,
		params.DueAt,
		params.Category,
		params.RemindBeforeValue,
		params.RemindBeforeUnit,
		nil,
	)
	if err := s.reminders.Save(ctx, reminder); err != nil {
		log.Error("failed to save reminder",
			"error", err,
			"reminder_id", reminder.ID)
		return nil, newServiceError("create_nudge", "failed to save reminder", err)
	}

	log.Info("reminder created", "reminder_id", reminder.ID)
	return reminder, nil
}

// UpdateNudge mutates the named fields of an existing reminder in place.
func (s *trackerServiceImpl) UpdateNudge(ctx context.Context, id uuid.UUID, params NudgeParams) (*domain.Reminder, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrReminderNotFound) {
			return nil, ErrReminderNotFound
		}
		log.Error("failed to retrieve reminder for update",
			"error", err,
			"reminder_id", id)
		return nil, newServiceError("update_nudge", "failed to retrieve reminder", err)
	}

	existing.Title = params.Title
	existing.DueAt = params.DueAt
	existing.Category = params.Category
	existing.RemindBeforeValue = params.RemindBeforeValue
	existing.RemindBeforeUnit = params.RemindBeforeUnit
	existing.Touch()

	if err := s.reminders.Update(ctx, existing); err != nil {
		log.Error("failed to update reminder",
			"error", err,
			"reminder_id", id)
		return nil, newServiceError("update_nudge", "failed to update reminder", err)
	}

	log.Info("reminder updated", "reminder_id", id)
	return existing, nil
}

// DeleteLog removes a log; absent IDs are not an error.
func (s *trackerServiceImpl) DeleteLog(ctx context.Context, id uuid.UUID) error {
	if err := s.logs.Delete(ctx, id); err != nil {
		return newServiceError("delete_log", "failed to delete log", err)
	}
	return nil
}

// DeleteLogs removes a set of logs; absent IDs are ignored.
func (s *trackerServiceImpl) DeleteLogs(ctx context.Context, ids []uuid.UUID) error {
	if err := s.logs.DeleteMany(ctx, ids); err != nil {
		return newServiceError("delete_logs", "failed to delete logs", err)
	}
	return nil
}

// DeleteReminder removes a reminder; absent IDs are not an error.
func (s *trackerServiceImpl) DeleteReminder(ctx context.Context, id uuid.UUID) error {
	if err := s.reminders.Delete(ctx, id); err != nil {
		return newServiceError("delete_reminder", "failed to delete reminder", err)
	}
	return nil
}

// DeleteReminders removes a set of reminders; absent IDs are ignored.
func (s *trackerServiceImpl) DeleteReminders(ctx context.Context, ids []uuid.UUID) error {
	if err := s.reminders.DeleteMany(ctx, ids); err != nil {
		return newServiceError("delete_reminders", "failed to delete reminders", err)
	}
	return nil
}

// UpdateReminderStatus sets the status unconditionally. The store's
// not-found error is deliberately swallowed: a status set on a missing
// ID is a silent no-op.
func (s *trackerServiceImpl) UpdateReminderStatus(ctx context.Context, id uuid.UUID, status domain.ReminderStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.IsValidReminderStatus(status) {
		return newServiceError("update_reminder_status", "invalid status", domain.ErrInvalidReminderStatus)
	}

	if err := s.reminders.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, store.ErrReminderNotFound) {
			log.Debug("status update on missing reminder ignored", "reminder_id", id)
			return nil
		}
		log.Error("failed to update reminder status",
			"error", err,
			"reminder_id", id,
			"status", status)
		return newServiceError("update_reminder_status", "failed to update status", err)
	}
	return nil
}

// CompleteReminder runs the pending → completed command.
func (s *trackerServiceImpl) CompleteReminder(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.reminders.MarkComplete(ctx, id); err != nil {
		if errors.Is(err, store.ErrReminderNotFound) {
			log.Debug("complete on missing reminder ignored", "reminder_id", id)
			return nil
		}
		log.Error("failed to complete reminder", "error", err, "reminder_id", id)
		return newServiceError("complete_reminder", "failed to complete reminder", err)
	}
	return nil
}

// RevertReminder runs the completed → pending command.
func (s *trackerServiceImpl) RevertReminder(ctx context.Context, id uuid.UUID) error {
	return s.UpdateReminderStatus(ctx, id, domain.ReminderStatusPending)
}

// TogglePin flips the pinned flag of a reminder. A missing ID is a
// silent no-op.
func (s *trackerServiceImpl) TogglePin(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrReminderNotFound) {
			log.Debug("pin toggle on missing reminder ignored", "reminder_id", id)
			return nil
		}
		log.Error("failed to retrieve reminder for pin toggle",
			"error", err,
			"reminder_id", id)
		return newServiceError("toggle_pin", "failed to retrieve reminder", err)
	}

	existing.IsPinned = !existing.IsPinned
	existing.Touch()

	if err := s.reminders.Update(ctx, existing); err != nil {
		log.Error("failed to update reminder pin",
			"error", err,
			"reminder_id", id)
		return newServiceError("toggle_pin", "failed to update reminder", err)
	}

	log.Info("reminder pin toggled", "reminder_id", id, "pinned", existing.IsPinned)
	return nil
}

// CloneReminder creates an independent copy of an existing reminder. A
// missing ID is a silent no-op returning (nil, nil).
func (s *trackerServiceImpl) CloneReminder(ctx context.Context, id uuid.UUID) (*domain.Reminder, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrReminderNotFound) {
			log.Debug("clone of missing reminder ignored", "reminder_id", id)
			return nil, nil
		}
		log.Error("failed to retrieve reminder for clone",
			"error", err,
			"reminder_id", id)
		return nil, newServiceError("clone_reminder", "failed to retrieve reminder", err)
	}

	clone := existing.Clone()
	if err := s.reminders.Save(ctx, clone); err != nil {
		log.Error("failed to save cloned reminder",
			"error", err,
			"source_id", id,
			"clone_id", clone.ID)
		return nil, newServiceError("clone_reminder", "failed to save clone", err)
	}

	log.Info("reminder cloned", "source_id", id, "clone_id", clone.ID)
	return clone, nil
}

// ReorderReminders applies the caller's full ordering as one atomic batch.
func (s *trackerServiceImpl) ReorderReminders(ctx context.Context, ids []uuid.UUID) error {
	if err := s.reminders.Reorder(ctx, ids); err != nil {
		return newServiceError("reorder_reminders", "failed to reorder reminders", err)
	}
	return nil
}

// ListReminders returns the full or status-filtered reminder collection.
func (s *trackerServiceImpl) ListReminders(ctx context.Context, status *domain.ReminderStatus) ([]*domain.Reminder, error) {
	var (
		reminders []*domain.Reminder
		err       error
	)
	if status == nil {
		reminders, err = s.reminders.GetAll(ctx)
	} else {
		reminders, err = s.reminders.GetByStatus(ctx, *status)
	}
	if err != nil {
		return nil, newServiceError("list_reminders", "failed to list reminders", err)
	}
	return reminders, nil
}

// GetDashboardData assembles the dashboard snapshot: the five most
// recently occurred logs plus the full reminder collection.
func (s *trackerServiceImpl) GetDashboardData(ctx context.Context) (*DashboardData, error) {
	recentLogs, err := s.logs.GetRecent(ctx, recentLogCount)
	if err != nil {
		return nil, newServiceError("get_dashboard", "failed to load recent logs", err)
	}

	reminders, err := s.reminders.GetAll(ctx)
	if err != nil {
		return nil, newServiceError("get_dashboard", "failed to load reminders", err)
	}

	return &DashboardData{
		RecentLogs: recentLogs,
		Reminders:  reminders,
	}, nil
}

// CreateAsset constructs and persists a new digital asset.
func (s *trackerServiceImpl) CreateAsset(ctx context.Context, params AssetParams) (*domain.DigitalAsset, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	asset, err := domain.NewDigitalAsset(
		params.Title,
		params.Type,
		params.Category,
		params.Identifier,
		params.Metadata,
		params.ExpiresAt,
		params.RemindAt,
	)
	if err != nil {
		return nil, newServiceError("create_asset", "failed to create asset object", err)
	}

	if err := s.assets.Save(ctx, asset); err != nil {
		log.Error("failed to save asset", "error", err, "asset_id", asset.ID)
		return nil, newServiceError("create_asset", "failed to save asset", err)
	}

	log.Info("asset created", "asset_id", asset.ID, "type", asset.Type)
	return asset, nil
}

// UpdateAsset mutates the caller-settable fields of an existing asset.
// Returns ErrAssetNotFound if absent.
func (s *trackerServiceImpl) UpdateAsset(ctx context.Context, id uuid.UUID, params AssetParams) (*domain.DigitalAsset, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.IsValidAssetType(params.Type) {
		return nil, newServiceError("update_asset", "invalid asset type", domain.ErrInvalidAssetType)
	}

	existing, err := s.assets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrAssetNotFound) {
			return nil, ErrAssetNotFound
		}
		log.Error("failed to retrieve asset for update", "error", err, "asset_id", id)
		return nil, newServiceError("update_asset", "failed to retrieve asset", err)
	}

	existing.Title = params.Title
	existing.Type = params.Type
	existing.Category = params.Category
	existing.Identifier = params.Identifier
	existing.Metadata = params.Metadata
	existing.ExpiresAt = params.ExpiresAt
	existing.RemindAt = params.RemindAt
	existing.Touch()

	if err := s.assets.Update(ctx, existing); err != nil {
		log.Error("failed to update asset", "error", err, "asset_id", id)
		return nil, newServiceError("update_asset", "failed to update asset", err)
	}

	log.Info("asset updated", "asset_id", id)
	return existing, nil
}

// UpdateAssetStatus sets the asset status by explicit command; the core
// never transitions it on its own. Returns ErrAssetNotFound if absent.
func (s *trackerServiceImpl) UpdateAssetStatus(ctx context.Context, id uuid.UUID, status domain.AssetStatus) (*domain.DigitalAsset, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.IsValidAssetStatus(status) {
		return nil, newServiceError("update_asset_status", "invalid status", domain.ErrInvalidAssetStatus)
	}

	existing, err := s.assets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrAssetNotFound) {
			return nil, ErrAssetNotFound
		}
		log.Error("failed to retrieve asset for status update", "error", err, "asset_id", id)
		return nil, newServiceError("update_asset_status", "failed to retrieve asset", err)
	}

	existing.Status = status
	existing.Touch()

	if err := s.assets.Update(ctx, existing); err != nil {
		log.Error("failed to update asset status", "error", err, "asset_id", id)
		return nil, newServiceError("update_asset_status", "failed to update asset", err)
	}

	log.Info("asset status updated", "asset_id", id, "status", status)
	return existing, nil
}

// DeleteAsset removes an asset; absent IDs are not an error.
func (s *trackerServiceImpl) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	if err := s.assets.Delete(ctx, id); err != nil {
		return newServiceError("delete_asset", "failed to delete asset", err)
	}
	return nil
}

// DeleteAssets removes a set of assets; absent IDs are ignored.
func (s *trackerServiceImpl) DeleteAssets(ctx context.Context, ids []uuid.UUID) error {
	if err := s.assets.DeleteMany(ctx, ids); err != nil {
		return newServiceError("delete_assets", "failed to delete assets", err)
	}
	return nil
}

// ReorderAssets applies the caller's full ordering as one atomic batch.
func (s *trackerServiceImpl) ReorderAssets(ctx context.Context, ids []uuid.UUID) error {
	if err := s.assets.Reorder(ctx, ids); err != nil {
		return newServiceError("reorder_assets", "failed to reorder assets", err)
	}
	return nil
}

// ListAssets returns the full asset collection in canonical order.
func (s *trackerServiceImpl) ListAssets(ctx context.Context) ([]*domain.DigitalAsset, error) {
	assets, err := s.assets.GetAll(ctx)
	if err != nil {
		return nil, newServiceError("list_assets", "failed to list assets", err)
	}
	return assets, nil
}
