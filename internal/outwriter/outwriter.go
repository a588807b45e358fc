// Package outwriter has output and writer logic.
package outwriter

import (
	"io"
	"os"
	"time"

	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/eastside-atlas/velocity/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the commands.
type OutWriter struct {
	// Stdout receives output when no output file is configured.
	Stdout io.Writer
}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{Stdout: os.Stdout}
}

// stdout falls back to os.Stdout for a zero OutWriter.
func (ow *OutWriter) stdout() io.Writer {
	if ow.Stdout == nil {
		return os.Stdout
	}
	return ow.Stdout
}

// WriteFrame prints every region view of a frame using the configured output format.
func (ow *OutWriter) WriteFrame(views []schema.RegionView, cfg *contract.Config, duration time.Duration) error {
	return PrintFrameResults(ow.stdout(), views, cfg, duration)
}

// WriteRegion prints the detail view of one region using the configured output format.
func (ow *OutWriter) WriteRegion(view schema.RegionView, cfg *contract.Config) error {
	return PrintRegionDetail(ow.stdout(), view, cfg)
}

// WriteTimeseries prints a DVI time series using the configured output format.
func (ow *OutWriter) WriteTimeseries(result schema.TimeseriesResult, cfg *contract.Config) error {
	return PrintTimeseriesResults(ow.stdout(), result, cfg)
}

// WriteClassification prints the band and colors of a DVI value.
func (ow *OutWriter) WriteClassification(c schema.Classification, cfg *contract.Config) error {
	return PrintClassification(ow.stdout(), c, cfg)
}

// WriteChange prints the relative change of a value against its prior.
func (ow *OutWriter) WriteChange(current float64, prior *float64, change *schema.Change, cfg *contract.Config) error {
	return PrintChange(ow.stdout(), current, prior, change, cfg)
}

// WriteBands prints the band legend.
func (ow *OutWriter) WriteBands(cfg *contract.Config) error {
	return PrintBandLegend(ow.stdout(), cfg)
}

// WriteComparison prints a side-by-side comparison of two regions.
func (ow *OutWriter) WriteComparison(cmp schema.RegionComparison, cfg *contract.Config) error {
	return PrintComparison(ow.stdout(), cmp, cfg)
}
