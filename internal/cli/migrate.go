package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phrazzld/nudge-api/internal/config"
	"github.com/phrazzld/nudge-api/internal/platform/logger"
	"github.com/phrazzld/nudge-api/internal/platform/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if cfg.Storage.Driver != "postgres" {
		return fmt.Errorf("migrate requires the postgres driver, got %q", cfg.Storage.Driver)
	}

	log := logger.Setup(cfg.Server.LogLevel)

	db, err := postgres.Open(cmd.Context(), cfg.Storage.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := postgres.RunMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	log.Info("migrations applied")
	return nil
}
