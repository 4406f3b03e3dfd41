package cmd

import (
	"fmt"

	"github.com/huangsam/devpulse/internal/contract"
	"github.com/huangsam/devpulse/internal/reportstore"
	"github.com/huangsam/devpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// migrateSetup loads the minimal configuration needed to run migrations.
// It deliberately skips store initialization so migrations can run on a
// fresh database.
func migrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	backend := schema.DatabaseBackend(backendStr)
	if backendStr == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend %q", backendStr)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	return nil
}

// migrateSetupWrapper wraps migrateSetup to provide PreRunE for the migrate command.
func migrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return migrateSetup()
}

// migrateCmd runs database migrations for the report store.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run report store schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the report store.

Migrations allow:
- Upgrading to new schema versions when devpulse is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate the SQLite store to the latest version (default)
  devpulse migrate --store-backend sqlite

  # Migrate to specific version
  devpulse migrate --store-backend sqlite --target-version 1

  # Rollback to initial state
  devpulse migrate --store-backend sqlite --target-version 0`,
	PreRunE: migrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := reportstore.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
