package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/eastside-atlas/velocity/schema"
)

// PrintComparison outputs two regions side by side.
func PrintComparison(stdout io.Writer, cmp schema.RegionComparison, cfg *contract.Config) error {
	fmtFloat := createFormatters(cfg.Precision)

	var writer func(io.Writer) error
	switch cfg.Output {
	case schema.JSONOut:
		writer = func(w io.Writer) error { return writeJSON(w, cmp) }
	case schema.CSVOut:
		writer = func(w io.Writer) error { return writeCSVComparison(w, cmp, fmtFloat) }
	case schema.ParquetOut:
		return errNoParquet("compare")
	default:
		writer = func(w io.Writer) error { return printComparisonTable(w, cmp, fmtFloat) }
	}
	return writeWithFile(stdout, cfg.OutputFile, writer, "Wrote comparison")
}

func writeCSVComparison(w io.Writer, cmp schema.RegionComparison, fmtFloat func(float64) string) error {
	header := []string{"year", "metric", "region_a", "value_a", "region_b", "value_b", "delta"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		year := strconv.Itoa(cmp.Year)
		if err := cw.Write([]string{year, "dvi", cmp.RegionA, fmtFloat(cmp.DviA), cmp.RegionB, fmtFloat(cmp.DviB), fmtFloat(cmp.DviDelta)}); err != nil {
			return err
		}
		for _, m := range cmp.Metrics {
			row := []string{
				year,
				string(m.Key),
				cmp.RegionA,
				strconv.FormatFloat(m.A, 'f', -1, 64),
				cmp.RegionB,
				strconv.FormatFloat(m.B, 'f', -1, 64),
				strconv.FormatFloat(m.Delta, 'f', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func printComparisonTable(w io.Writer, cmp schema.RegionComparison, fmtFloat func(float64) string) error {
	_, _ = fmt.Fprintf(w, "%s vs %s, %d\n", cmp.RegionA, cmp.RegionB, cmp.Year)

	data := [][]string{{"DVI", fmtFloat(cmp.DviA), fmtFloat(cmp.DviB), fmtFloat(cmp.DviDelta)}}
	for _, m := range cmp.Metrics {
		delta := formatMetric(m.Key, m.Delta)
		if m.Delta > 0 {
			delta = "+" + delta
		}
		data = append(data, []string{m.Label, formatMetric(m.Key, m.A), formatMetric(m.Key, m.B), delta})
	}
	if err := renderTable(w, []string{"Metric", cmp.RegionA, cmp.RegionB, "Delta"}, data); err != nil {
		return err
	}
	if len(cmp.Metrics) == 0 {
		_, _ = fmt.Fprintln(w, "Socioeconomic comparison unavailable: one or both regions have no data")
	}
	return nil
}
