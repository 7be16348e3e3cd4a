package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/phrazzld/nudge-api/internal/api"
	"github.com/phrazzld/nudge-api/internal/config"
	"github.com/phrazzld/nudge-api/internal/platform/logger"
	"github.com/phrazzld/nudge-api/internal/platform/memory"
	"github.com/phrazzld/nudge-api/internal/platform/postgres"
	"github.com/phrazzld/nudge-api/internal/platform/redisstore"
	"github.com/phrazzld/nudge-api/internal/service"
	"github.com/phrazzld/nudge-api/internal/store"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// termination signal.
const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)

	stores, cleanup, err := openStores(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	trackerService, err := service.NewTrackerService(stores.logs, stores.reminders, stores.assets, log)
	if err != nil {
		return fmt.Errorf("create tracker service: %w", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(trackerService),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			"addr", addr,
			"driver", cfg.Storage.Driver)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-done:
		log.Info("shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// backendStores groups the three repository implementations for one
// storage driver.
type backendStores struct {
	logs      store.LogStore
	reminders store.ReminderStore
	assets    store.AssetStore
}

// openStores builds the store set for the configured driver and returns
// a cleanup function closing any held connections.
func openStores(ctx context.Context, cfg *config.Config, log *slog.Logger) (backendStores, func(), error) {
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := postgres.Open(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return backendStores{}, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := postgres.RunMigrations(db); err != nil {
			_ = db.Close()
			return backendStores{}, nil, fmt.Errorf("run migrations: %w", err)
		}
		return backendStores{
			logs:      postgres.NewLogStore(db, log),
			reminders: postgres.NewReminderStore(db, log),
			assets:    postgres.NewAssetStore(db, log),
		}, func() { _ = db.Close() }, nil

	case "redis":
		client, err := redisstore.NewClient(ctx, cfg.Storage.RedisAddr, cfg.Storage.RedisDB)
		if err != nil {
			return backendStores{}, nil, fmt.Errorf("open redis: %w", err)
		}
		return backendStores{
			logs:      redisstore.NewLogStore(client),
			reminders: redisstore.NewReminderStore(client),
			assets:    redisstore.NewAssetStore(client),
		}, func() { _ = client.Close() }, nil

	case "memory":
		s := memory.NewStore()
		return backendStores{
			logs:      memory.NewLogStore(s),
			reminders: memory.NewReminderStore(s),
			assets:    memory.NewAssetStore(s),
		}, func() {}, nil

	default:
		return backendStores{}, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
