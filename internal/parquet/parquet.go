// Package parquet provides data structures and functions for exporting velocity
// frames to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/eastside-atlas/velocity/schema"
	"github.com/parquet-go/parquet-go"
)

// FrameRun represents a single archived frame run with metadata.
// This struct maps to the velocity_frame_runs database table.
type FrameRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the frame was computed
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when archiving completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// FrameYear is the year the frame describes
	FrameYear int32 `parquet:"frame_year,snappy"`

	// TotalRegions is the number of region views stored in this run
	TotalRegions int32 `parquet:"total_regions,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RegionFrame is one region's classified view inside a run.
// This struct maps to the velocity_region_frames database table.
type RegionFrame struct {
	RunID           int64    `parquet:"run_id,snappy"`
	Region          string   `parquet:"region,snappy"`
	FrameYear       int32    `parquet:"frame_year,snappy"`
	DVI             float64  `parquet:"dvi,snappy"`
	Band            string   `parquet:"band,snappy"`
	BandColor       string   `parquet:"band_color,snappy"`
	RampColor       string   `parquet:"ramp_color,snappy"`
	MapFill         string   `parquet:"map_fill,snappy"`
	NewDevelopment  bool     `parquet:"new_development,snappy"`
	IncomeAdj       *float64 `parquet:"income_adj,optional,snappy"`
	HomeValue       *float64 `parquet:"home_value,optional,snappy"`
	PctBachelors    *float64 `parquet:"pct_bachelors,optional,snappy"`
	PctCostBurdened *float64 `parquet:"pct_cost_burdened,optional,snappy"`
	Confidence      *string  `parquet:"confidence,optional,snappy"`
}

// DviPoint is one row of a DVI time series export.
type DviPoint struct {
	Region         string  `parquet:"region,snappy"`
	Year           int32   `parquet:"year,snappy"`
	DVI            float64 `parquet:"dvi,snappy"`
	Band           string  `parquet:"band,snappy"`
	NewDevelopment bool    `parquet:"new_development,snappy"`
}

// WriteRows encodes rows as a Parquet file onto w. The schema is derived
// from the struct tags of T.
func WriteRows[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// writeFile creates outputPath and writes rows to it.
func writeFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return WriteRows(file, rows)
}

// WriteFrameRunsParquet writes a slice of FrameRun structs to a Parquet file.
func WriteFrameRunsParquet(data []FrameRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteRegionFramesParquet writes a slice of RegionFrame structs to a Parquet file.
func WriteRegionFramesParquet(data []RegionFrame, outputPath string) error {
	return writeFile(data, outputPath)
}

// ConvertFrameRunRecords converts archive run records for Parquet export.
func ConvertFrameRunRecords(records []schema.FrameRunRecord) []FrameRun {
	result := make([]FrameRun, len(records))
	for i, record := range records {
		result[i] = FrameRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			FrameYear:     int32(record.FrameYear),
			TotalRegions:  int32(record.TotalRegions),
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertRegionFrameRecords converts archive region records for Parquet export.
func ConvertRegionFrameRecords(records []schema.RegionFrameRecord) []RegionFrame {
	result := make([]RegionFrame, len(records))
	for i, record := range records {
		result[i] = RegionFrame{
			RunID:           record.RunID,
			Region:          record.Region,
			FrameYear:       int32(record.FrameYear),
			DVI:             record.DVI,
			Band:            record.Band,
			BandColor:       record.BandColor,
			RampColor:       record.RampColor,
			MapFill:         record.MapFill,
			NewDevelopment:  record.NewDevelopment,
			IncomeAdj:       record.IncomeAdj,
			HomeValue:       record.HomeValue,
			PctBachelors:    record.PctBachelors,
			PctCostBurdened: record.PctCostBurdened,
			Confidence:      record.Confidence,
		}
	}
	return result
}

// ConvertRegionViews converts a computed frame for Parquet export. The rows
// carry run ID 0 since they were never archived.
func ConvertRegionViews(views []schema.RegionView) []RegionFrame {
	records := make([]schema.RegionFrameRecord, len(views))
	for i, v := range views {
		records[i] = v.Record(0)
	}
	return ConvertRegionFrameRecords(records)
}

// ConvertTimeseries flattens a time series result into exportable rows.
func ConvertTimeseries(ts schema.TimeseriesResult) []DviPoint {
	result := make([]DviPoint, len(ts.Points))
	for i, p := range ts.Points {
		result[i] = DviPoint{
			Region:         ts.Region,
			Year:           int32(p.Year),
			DVI:            p.DVI,
			Band:           string(p.Band),
			NewDevelopment: ts.NewDevelopment,
		}
	}
	return result
}
