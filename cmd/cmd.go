// Package cmd defines the command-line interface for velocity.
package cmd

import (
	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/eastside-atlas/velocity/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(regionCmd)
	rootCmd.AddCommand(frameCmd)
	rootCmd.AddCommand(timeseriesCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(changeCmd)
	rootCmd.AddCommand(bandsCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(storeCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("year", "y", contract.DefaultYear, "Calendar year to evaluate")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory with dvi.json, socio.json and regions.json (default: built-in dataset)")
	rootCmd.PersistentFlags().String("new-development", "", "Comma-separated regions to treat as greenfield, in addition to the dataset flags")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Frame archive backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of frameCmd to Viper
	frameCmd.Flags().Bool("record", false, "Archive the computed frame in the frame store")
	if err := viper.BindPFlags(frameCmd.Flags()); err != nil {
		contract.LogFatal("Error binding frame flags", err)
	}

	// Bind all flags of timeseriesCmd to Viper
	timeseriesCmd.Flags().String("years", "", "Comma-separated years, or one of chart, snap, play (default: chart)")
	if err := viper.BindPFlags(timeseriesCmd.Flags()); err != nil {
		contract.LogFatal("Error binding timeseries flags", err)
	}

	// Local flags that are never read from config or env
	classifyCmd.Flags().Bool("greenfield", false, "Classify the value as belonging to a new-development region")
	changeCmd.Flags().Bool("higher-is-worse", false, "Treat an increase as unfavorable")

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultAddr, "Address for the HTTP API to listen on")
	serveCmd.Flags().Bool("access-log", true, "Log every request to stderr")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
