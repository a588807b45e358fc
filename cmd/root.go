package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/eastside-atlas/velocity/core"
	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/eastside-atlas/velocity/internal/dataset"
	"github.com/eastside-atlas/velocity/internal/framestore"
	"github.com/eastside-atlas/velocity/internal/outwriter"
	"github.com/eastside-atlas/velocity/schema"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// atlas is built once by sharedSetup and shared by all commands.
var atlas *core.Atlas

// dataSource labels where the dataset came from.
var dataSource string

// writer renders results to stdout or the configured output file.
var writer = outwriter.NewOutWriter()

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "velocity",
	Short: "Explore the Displacement Velocity Index of Austin neighborhoods.",
	Long: `Velocity interpolates the Displacement Velocity Index (DVI) and the socioeconomic
profile of Austin neighborhoods for any year between 1990 and 2025, and classifies
each neighborhood into a displacement band with its map colors.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in .env, config file and ENV variables if set.
func initConfig() {
	// A missing .env file is the common case.
	_ = godotenv.Load()

	setConfigFile()

	// Set environment variable prefix
	viper.SetEnvPrefix("VELOCITY")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("year", contract.DefaultYear)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("store-backend", schema.SQLiteBackend)
	viper.SetDefault("store-db-connect", "")
	viper.SetDefault("color", "yes")
	viper.SetDefault("addr", contract.DefaultAddr)
}

// setConfigFile points Viper at the explicit config file or the default search paths.
func setConfigFile() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".velocity") // Name of config file (without extension)
	viper.SetConfigType("yaml")      // We'll use YAML format
	viper.AddConfigPath(".")         // Look in the current directory
	viper.AddConfigPath("$HOME")     // Look in the home directory
}

// loadConfigFile reads the config file when present.
func loadConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// sharedSetup unmarshals config, runs validation and builds the atlas.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	color.NoColor = !cfg.UseColors

	// 4. Load the dataset and build both engines. Bad data fails here, not mid-query.
	ds, source, err := dataset.LoadOrDefault(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	a, err := core.NewAtlas(ds, core.WithNewDevelopment(cfg.NewDevelopment...))
	if err != nil {
		return fmt.Errorf("failed to build atlas from %s: %w", source, err)
	}
	atlas, dataSource = a, source

	// 5. Initialize the frame archive only when a frame will be recorded.
	if cfg.Record {
		if err := framestore.InitStore(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
			return err
		}
	}
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// serviceSetup runs sharedSetup and opens the frame archive for long-running servers.
// An unreachable archive only disables recording.
func serviceSetup(cmd *cobra.Command, args []string) error {
	if err := sharedSetup(rootCtx, cmd, args); err != nil {
		return err
	}
	if err := framestore.InitStore(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		contract.LogWarn("Frame recording disabled", err)
	}
	return nil
}

// resolveRegion maps a user-supplied region name to its canonical name.
func resolveRegion(name string) string {
	canonical, ok := atlas.Resolve(name)
	if !ok {
		contract.LogFatal("Unknown region", fmt.Errorf("%q is not one of %d known regions", name, len(atlas.Regions())))
	}
	return canonical
}

// Execute runs the root command and releases the frame archive.
func Execute() error {
	defer framestore.CloseStore()
	return rootCmd.Execute()
}

// ExitOnError prints err and exits with a non-zero status.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
