package schema

// Custom string types for type safety.
type (
	// Band represents the displacement band of a DVI value.
	Band string

	// Confidence represents the data quality flag of a socioeconomic snapshot.
	Confidence string

	// Direction represents the direction of a relative change.
	Direction string

	// MetricKey identifies one socioeconomic indicator.
	MetricKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the frame archive.
	DatabaseBackend string
)

// All displacement bands, from least to most severe.
const (
	StableBand               Band = "Stable"
	EarlyPressureBand        Band = "Early Pressure"
	ActiveDisplacementBand   Band = "Active Displacement"
	HistoricDisplacementBand Band = "Historic Displacement"

	// NewDevelopmentBand overrides the numeric band for greenfield regions.
	NewDevelopmentBand Band = "N/A — New Development"
)

// Upper bounds (inclusive) of the numeric bands.
const (
	StableMax             = 20.0
	EarlyPressureMax      = 35.0
	ActiveDisplacementMax = 55.0
	RampMax               = 85.0 // DVI at which the ramp reaches its final color
)

// Band label colors.
const (
	StableColor               = "#16a34a"
	EarlyPressureColor        = "#ca8a04"
	ActiveDisplacementColor   = "#ea580c"
	HistoricDisplacementColor = "#dc2626"
	NewDevelopmentLabelColor  = "#7c6f5e"
)

// Map fill colors outside the continuous ramp.
const (
	GreenfieldFillColor     = "#c4b5a4"
	NoPressureFillColor     = "#e8e5e0"
	PreObservationFillColor = "#e0ddd7"
)

// All confidence flags.
const (
	HighConfidence   Confidence = "High"
	MediumConfidence Confidence = "Medium"
)

// All change directions.
const (
	Up   Direction = "up"
	Down Direction = "down"
)

// All socioeconomic metrics shown as change cards.
const (
	IncomeMetric       MetricKey = "income"
	HomeValueMetric    MetricKey = "home_value"
	BachelorsMetric    MetricKey = "bachelors"
	CostBurdenedMetric MetricKey = "cost_burdened"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All archive backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Years that shape the DVI series.
const (
	DatasetStartYear     = 1990 // first anchor, DVI 0
	ObservationStartYear = 2000 // second anchor, DVI 0
	CurrentYear          = 2023 // latest year with measured data
	ProjectionYear       = 2025 // end of the animation range
	PreObservationYear   = 1993 // years before this render with the pre-observation fill
)

// Decay factors used when synthesizing the tail of a DVI series.
const (
	CurrentYearDecay    = 0.92
	ProjectionYearDecay = 0.95
)

// SnapYears are the years a timeline snaps to.
var SnapYears = []int{1990, 2000, 2010, 2020, 2023}

// PlayYears are the frames of the timeline animation.
var PlayYears = []int{1990, 1995, 2000, 2005, 2010, 2015, 2020, 2023, 2025}

// ChartYears are the sample years of a DVI sparkline.
var ChartYears = []int{1990, 1995, 2000, 2005, 2010, 2015, 2020, 2023}

// AllBands lists the numeric bands in ascending severity.
var AllBands = []Band{StableBand, EarlyPressureBand, ActiveDisplacementBand, HistoricDisplacementBand}

// ValidConfidences lists all valid confidence flags.
var ValidConfidences = map[Confidence]struct{}{
	HighConfidence:   {},
	MediumConfidence: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid archive backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
