package contract

import (
	"fmt"
	"strings"

	"github.com/eastside-atlas/velocity/schema"
)

// Default values for configuration.
const (
	DefaultYear      = schema.CurrentYear
	DefaultPrecision = 1
	DefaultAddr      = ":8080"
	MinYear          = 1900
	MaxYear          = 2100
)

// Config is the validated configuration shared by all commands.
type Config struct {
	Year           int
	Years          []int // nil means schema.ChartYears
	DataDir        string
	NewDevelopment []string

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext
	Record         bool   // Archive computed frames

	Addr string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	Year           int    `mapstructure:"year"`
	Years          string `mapstructure:"years"`
	DataDir        string `mapstructure:"data-dir"`
	NewDevelopment string `mapstructure:"new-development"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Record         bool   `mapstructure:"record"`
	Addr           string `mapstructure:"addr"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Years != nil {
		clone.Years = append([]int(nil), c.Years...)
	}
	if c.NewDevelopment != nil {
		clone.NewDevelopment = append([]string(nil), c.NewDevelopment...)
	}
	return &clone
}

// ProcessAndValidate reads the raw input and populates cfg.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processYears(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the frame archive configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}
	cfg.Record = input.Record
	if cfg.Record && cfg.StoreBackend == schema.NoneBackend {
		return fmt.Errorf("--record requires a store backend other than none")
	}
	return nil
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.DataDir = input.DataDir
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Addr = input.Addr
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Year < MinYear || input.Year > MaxYear {
		return fmt.Errorf("year must be between %d and %d (received %d)", MinYear, MaxYear, input.Year)
	}
	cfg.Year = input.Year

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	cfg.NewDevelopment = nil
	for p := range strings.SplitSeq(input.NewDevelopment, ",") {
		if name := strings.TrimSpace(p); name != "" {
			cfg.NewDevelopment = append(cfg.NewDevelopment, name)
		}
	}
	return nil
}

// processYears parses the years list used by timeseries queries.
func processYears(cfg *Config, input *ConfigRawInput) error {
	years, err := ParseYears(input.Years)
	if err != nil {
		return err
	}
	for _, y := range years {
		if y < MinYear || y > MaxYear {
			return fmt.Errorf("year must be between %d and %d (received %d)", MinYear, MaxYear, y)
		}
	}
	cfg.Years = years
	return nil
}
