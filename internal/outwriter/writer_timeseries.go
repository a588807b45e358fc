package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/eastside-atlas/velocity/schema"
)

// writeJSONResultsForTimeseries marshals the schema.TimeseriesResult to JSON and writes it.
func writeJSONResultsForTimeseries(w io.Writer, result schema.TimeseriesResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForTimeseries writes the schema.TimeseriesResult data as CSV.
func writeCSVResultsForTimeseries(w io.Writer, result schema.TimeseriesResult, fmtFloat func(float64) string) error {
	header := []string{
		"region",
		"year",
		"dvi",
		"band",
		"new_development",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range result.Points {
			row := []string{
				result.Region,
				strconv.Itoa(p.Year),
				fmtFloat(p.DVI),
				string(p.Band),
				strconv.FormatBool(result.NewDevelopment),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
