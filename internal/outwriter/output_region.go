package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/eastside-atlas/velocity/internal/parquet"
	"github.com/eastside-atlas/velocity/schema"
)

// PrintRegionDetail outputs one region view, dispatching based on the output format configured.
func PrintRegionDetail(stdout io.Writer, view schema.RegionView, cfg *contract.Config) error {
	fmtFloat := createFormatters(cfg.Precision)

	var writer func(io.Writer) error
	switch cfg.Output {
	case schema.JSONOut:
		writer = func(w io.Writer) error { return writeJSON(w, view) }
	case schema.CSVOut:
		writer = func(w io.Writer) error { return writeCSVRegionChanges(w, view, fmtFloat) }
	case schema.ParquetOut:
		writer = func(w io.Writer) error {
			return parquet.WriteRows(w, parquet.ConvertRegionViews([]schema.RegionView{view}))
		}
	default:
		writer = func(w io.Writer) error { return printRegionText(w, view, fmtFloat) }
	}
	if err := writeWithFile(stdout, cfg.OutputFile, writer, "Wrote region detail"); err != nil {
		return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
	}
	return nil
}

// formatMetric renders a metric value the way its card shows it.
func formatMetric(key schema.MetricKey, v float64) string {
	switch key {
	case schema.IncomeMetric, schema.HomeValueMetric:
		return schema.FormatDollars(v)
	default:
		return schema.FormatPct(v)
	}
}

// writeCSVRegionChanges writes one row per metric card.
func writeCSVRegionChanges(w io.Writer, view schema.RegionView, fmtFloat func(float64) string) error {
	header := []string{"region", "year", "metric", "current", "prior", "change_pct", "direction", "worsened"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, mc := range view.Changes {
			row := []string{
				view.Region,
				strconv.Itoa(view.Year),
				string(mc.Key),
				strconv.FormatFloat(mc.Current, 'f', -1, 64),
				"", "", "", "",
			}
			if mc.Prior != nil {
				row[4] = strconv.FormatFloat(*mc.Prior, 'f', -1, 64)
			}
			if c := mc.Change; c != nil {
				row[5] = fmtFloat(c.Percent)
				row[6] = string(c.Direction)
				row[7] = strconv.FormatBool(c.Worsened())
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// printRegionText prints a summary block followed by the metric cards.
func printRegionText(w io.Writer, view schema.RegionView, fmtFloat func(float64) string) error {
	title := view.Region
	if view.ShortName != "" && view.ShortName != view.Region {
		title = fmt.Sprintf("%s (%s)", view.Region, view.ShortName)
	}
	_, _ = fmt.Fprintf(w, "%s, %d\n", title, view.Year)
	if view.Heritage != "" {
		_, _ = fmt.Fprintf(w, "Heritage: %s\n", view.Heritage)
	}

	if view.NewDevelopment {
		_, _ = fmt.Fprintf(w, "DVI: -   Band: %s\n", contract.GetColorBand(view.Band))
	} else {
		_, _ = fmt.Fprintf(w, "DVI: %s   Band: %s\n", fmtFloat(view.DVI), contract.GetColorBand(view.Band))
	}
	_, _ = fmt.Fprintf(w, "Band Color: %s   Ramp: %s   Map Fill: %s\n", view.BandColor, view.RampColor, view.MapFill)

	if view.Current == nil {
		_, _ = fmt.Fprintln(w, "No socioeconomic data for this region.")
		return nil
	}

	since := "-"
	if view.Prior != nil {
		since = strconv.Itoa(view.Prior.Year)
	}
	_, _ = fmt.Fprintf(w, "Socioeconomic snapshot %d (confidence %s, prior %s)\n", view.Current.Year, view.Current.Confidence, since)

	var data [][]string
	for _, mc := range view.Changes {
		prior := optional(mc.Prior, func(v float64) string { return formatMetric(mc.Key, v) })
		data = append(data, []string{mc.Label, formatMetric(mc.Key, mc.Current), prior, contract.GetColorChange(mc.Change)})
	}
	return renderTable(w, []string{"Metric", "Current", "Prior", "Change"}, data)
}
