package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/eastside-atlas/velocity/schema"
)

// bandLegendRow is one entry of the band legend.
type bandLegendRow struct {
	Band  schema.Band `json:"band"`
	Range string      `json:"range"`
	Color string      `json:"color"`
}

// changeOutput is the JSON shape of a single change computation.
type changeOutput struct {
	Current float64        `json:"current"`
	Prior   *float64       `json:"prior"`
	Change  *schema.Change `json:"change"`
}

// bandLegend lists every band with its DVI range and label color.
func bandLegend() []bandLegendRow {
	return []bandLegendRow{
		{schema.StableBand, fmt.Sprintf("DVI <= %.0f", schema.StableMax), schema.StableColor},
		{schema.EarlyPressureBand, fmt.Sprintf("%.0f < DVI <= %.0f", schema.StableMax, schema.EarlyPressureMax), schema.EarlyPressureColor},
		{schema.ActiveDisplacementBand, fmt.Sprintf("%.0f < DVI <= %.0f", schema.EarlyPressureMax, schema.ActiveDisplacementMax), schema.ActiveDisplacementColor},
		{schema.HistoricDisplacementBand, fmt.Sprintf("DVI > %.0f", schema.ActiveDisplacementMax), schema.HistoricDisplacementColor},
		{schema.NewDevelopmentBand, "greenfield", schema.NewDevelopmentLabelColor},
	}
}

// errNoParquet reports an output that has no tabular Parquet form.
func errNoParquet(what string) error {
	return fmt.Errorf("parquet output is not supported for %s", what)
}

// PrintClassification outputs the band and colors of one DVI value.
func PrintClassification(stdout io.Writer, c schema.Classification, cfg *contract.Config) error {
	fmtFloat := createFormatters(cfg.Precision)

	var writer func(io.Writer) error
	switch cfg.Output {
	case schema.JSONOut:
		writer = func(w io.Writer) error { return writeJSON(w, c) }
	case schema.CSVOut:
		writer = func(w io.Writer) error {
			header := []string{"dvi", "new_development", "band", "band_color", "ramp_color"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				return cw.Write([]string{fmtFloat(c.DVI), strconv.FormatBool(c.NewDevelopment), string(c.Band), c.BandColor, c.RampColor})
			})
		}
	case schema.ParquetOut:
		return errNoParquet("classify")
	default:
		writer = func(w io.Writer) error {
			_, _ = fmt.Fprintf(w, "DVI:        %s\n", fmtFloat(c.DVI))
			_, _ = fmt.Fprintf(w, "Band:       %s\n", contract.GetColorBand(c.Band))
			_, _ = fmt.Fprintf(w, "Band Color: %s\n", c.BandColor)
			_, _ = fmt.Fprintf(w, "Ramp Color: %s\n", c.RampColor)
			return nil
		}
	}
	return writeWithFile(stdout, cfg.OutputFile, writer, "Wrote classification")
}

// PrintChange outputs a relative change. A nil change means there was no usable prior.
func PrintChange(stdout io.Writer, current float64, prior *float64, change *schema.Change, cfg *contract.Config) error {
	fmtFloat := createFormatters(cfg.Precision)

	var writer func(io.Writer) error
	switch cfg.Output {
	case schema.JSONOut:
		writer = func(w io.Writer) error { return writeJSON(w, changeOutput{Current: current, Prior: prior, Change: change}) }
	case schema.CSVOut:
		writer = func(w io.Writer) error {
			header := []string{"current", "prior", "percent", "direction", "worsened"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				row := []string{strconv.FormatFloat(current, 'f', -1, 64), "", "", "", ""}
				if prior != nil {
					row[1] = strconv.FormatFloat(*prior, 'f', -1, 64)
				}
				if change != nil {
					row[2] = fmtFloat(change.Percent)
					row[3] = string(change.Direction)
					row[4] = strconv.FormatBool(change.Worsened())
				}
				return cw.Write(row)
			})
		}
	case schema.ParquetOut:
		return errNoParquet("change")
	default:
		writer = func(w io.Writer) error {
			if change == nil {
				_, _ = fmt.Fprintln(w, "No change: prior value is missing or zero")
				return nil
			}
			verdict := "better"
			if change.Worsened() {
				verdict = "worse"
			}
			_, _ = fmt.Fprintf(w, "%s (%s%%, %s)\n", contract.GetColorChange(change), fmtFloat(change.Percent), verdict)
			return nil
		}
	}
	return writeWithFile(stdout, cfg.OutputFile, writer, "Wrote change")
}

// PrintBandLegend outputs the band thresholds and label colors.
func PrintBandLegend(stdout io.Writer, cfg *contract.Config) error {
	legend := bandLegend()

	var writer func(io.Writer) error
	switch cfg.Output {
	case schema.JSONOut:
		writer = func(w io.Writer) error { return writeJSON(w, legend) }
	case schema.CSVOut:
		writer = func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"band", "range", "color"}, func(cw *csv.Writer) error {
				for _, row := range legend {
					if err := cw.Write([]string{string(row.Band), row.Range, row.Color}); err != nil {
						return err
					}
				}
				return nil
			})
		}
	case schema.ParquetOut:
		return errNoParquet("bands")
	default:
		writer = func(w io.Writer) error {
			var data [][]string
			for _, row := range legend {
				data = append(data, []string{contract.GetColorBand(row.Band), row.Range, row.Color})
			}
			return renderTable(w, []string{"Band", "Range", "Color"}, data)
		}
	}
	return writeWithFile(stdout, cfg.OutputFile, writer, "Wrote band legend")
}
