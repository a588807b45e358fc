package cmd

import (
	"fmt"
	"os"

	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/eastside-atlas/velocity/internal/framestore"
	"github.com/eastside-atlas/velocity/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeConfig reads the backend settings without building the atlas.
func storeConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("store-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// storeSetup loads minimal configuration and opens the frame store.
func storeSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := storeConfig()
	if err != nil {
		return err
	}
	if err := framestore.InitStore(backend, connStr); err != nil {
		return err
	}
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// storeMigrateSetup loads the backend settings without opening the store,
// so that migrations can run on a fresh database.
func storeMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := storeConfig()
	if err != nil {
		return err
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	return nil
}

// storeCmd focused on the frame archive.
//
// Note: store subcommands skip sharedSetup since they never need the dataset.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the archive of recorded frames",
	Long: `Manage the frame archive filled by 'velocity frame --record' and POST /api/v1/frames.

Each archived run stores:
- Run metadata (timestamp, year, parameters)
- One row per region with DVI, band, map fill and socioeconomic snapshot

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show archive statistics
  export  - Export runs and region frames to Parquet
  clear   - Remove all archived frames
  migrate - Run database schema migrations`,
}

// storeStatusCmd shows archive status.
var storeStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display archive statistics and connection details",
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := framestore.Manager.GetFrameStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		framestore.PrintStoreStatus(os.Stdout, status)
	},
}

// storeExportCmd exports archived frames to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archived frames to Parquet for BI tools and analytics",
	Long: `Export all archived frames to two Parquet files:
- <output-file>.frame_runs.parquet
- <output-file>.region_frames.parquet

Requires: --output-file parameter

Examples:
  velocity store export --output-file frames
  duckdb -c "SELECT region, year, dvi FROM read_parquet('frames.region_frames.parquet')"`,
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := framestore.ExportFrames(os.Stdout, framestore.Manager.GetFrameStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export frames", err)
		}
	},
}

// storeClearCmd clears the archive.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all archived frames",
	Long: `Delete all archived runs and region frames.

WARNING: This action cannot be undone. Consider exporting data first.`,
	PreRunE: storeMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := framestore.ClearStore(cfg.StoreBackend, cfg.StoreDBConnect, cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear frame store", err)
		}
		fmt.Println("Frame store cleared successfully.")
	},
}

// storeMigrateCmd runs database migrations for the frame archive.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the frame archive.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  velocity store migrate

  # Rollback to the initial state
  velocity store migrate --target-version 0`,
	PreRunE: storeMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		res, err := framestore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, viper.GetInt("target-version"))
		if err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		fmt.Println(res.String())
	},
}
