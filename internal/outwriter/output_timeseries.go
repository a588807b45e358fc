package outwriter

import (
	"fmt"
	"io"

	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/eastside-atlas/velocity/internal/parquet"
	"github.com/eastside-atlas/velocity/schema"
)

// PrintTimeseriesResults outputs the timeseries results, dispatching based on the output format configured.
func PrintTimeseriesResults(stdout io.Writer, result schema.TimeseriesResult, cfg *contract.Config) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(stdout, cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForTimeseries(w, result)
		}, "Wrote JSON timeseries results"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(stdout, cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForTimeseries(w, result, fmtFloat)
		}, "Wrote CSV timeseries results"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithFile(stdout, cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRows(w, parquet.ConvertTimeseries(result))
		}, "Wrote Parquet timeseries results"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := writeWithFile(stdout, cfg.OutputFile, func(w io.Writer) error {
			return printTimeseriesTable(w, result, fmtFloat)
		}, "Wrote timeseries table"); err != nil {
			return fmt.Errorf("error writing timeseries table output: %w", err)
		}
	}
	return nil
}

// printTimeseriesTable prints the timeseries in a three-column table.
func printTimeseriesTable(w io.Writer, result schema.TimeseriesResult, fmtFloat func(float64) string) error {
	var data [][]string
	for _, p := range result.Points {
		data = append(data, []string{
			fmt.Sprintf("%d", p.Year),
			fmtFloat(p.DVI),
			contract.GetColorBand(p.Band),
		})
	}
	if err := renderTable(w, []string{"Year", "DVI", "Band"}, data); err != nil {
		return err
	}

	if result.NewDevelopment {
		_, _ = fmt.Fprintf(w, "%s is new development; its DVI is not meaningful\n", result.Region)
	}
	return nil
}
