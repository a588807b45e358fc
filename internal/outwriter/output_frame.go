package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/eastside-atlas/velocity/internal/parquet"
	"github.com/eastside-atlas/velocity/schema"
)

// frameCSVHeader is shared by the CSV writer and its tests.
var frameCSVHeader = []string{
	"region",
	"year",
	"dvi",
	"band",
	"band_color",
	"map_fill",
	"new_development",
	"income_adj",
	"home_value",
	"pct_bachelors",
	"pct_cost_burdened",
	"confidence",
}

// PrintFrameResults outputs a frame, dispatching based on the output format configured.
func PrintFrameResults(stdout io.Writer, views []schema.RegionView, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(stdout, cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, views)
		}, "Wrote JSON frame"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(stdout, cfg.OutputFile, func(w io.Writer) error {
			return writeCSVFrame(w, views, fmtFloat)
		}, "Wrote CSV frame"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithFile(stdout, cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRows(w, parquet.ConvertRegionViews(views))
		}, "Wrote Parquet frame"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := writeWithFile(stdout, cfg.OutputFile, func(w io.Writer) error {
			return printFrameTable(w, views, cfg, fmtFloat, duration)
		}, "Wrote frame table"); err != nil {
			return fmt.Errorf("error writing frame table output: %w", err)
		}
	}
	return nil
}

// writeCSVFrame writes one row per region. Missing socioeconomic values are empty cells.
func writeCSVFrame(w io.Writer, views []schema.RegionView, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, frameCSVHeader, func(cw *csv.Writer) error {
		for _, v := range views {
			row := []string{
				v.Region,
				strconv.Itoa(v.Year),
				fmtFloat(v.DVI),
				string(v.Band),
				v.BandColor,
				v.MapFill,
				strconv.FormatBool(v.NewDevelopment),
				"", "", "", "", "",
			}
			if s := v.Current; s != nil {
				row[7] = strconv.FormatFloat(s.IncomeAdj, 'f', -1, 64)
				row[8] = strconv.FormatFloat(s.HomeValue, 'f', -1, 64)
				row[9] = strconv.FormatFloat(s.PctBachelors, 'f', -1, 64)
				row[10] = strconv.FormatFloat(s.PctCostBurdened, 'f', -1, 64)
				row[11] = string(s.Confidence)
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// printFrameTable prints one table row per region.
func printFrameTable(w io.Writer, views []schema.RegionView, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	headers := []string{"Region", "DVI", "Band", "Fill", "Income", "Home Value", "Bachelor's+", "Cost-Burdened"}
	nameWidth := GetMaxTableNameWidth(cfg)

	var data [][]string
	for _, v := range views {
		income, home, bach, burden := "-", "-", "-", "-"
		if s := v.Current; s != nil {
			income = schema.FormatThousands(s.IncomeAdj)
			home = schema.FormatThousands(s.HomeValue)
			bach = schema.FormatPct(s.PctBachelors)
			burden = schema.FormatPct(s.PctCostBurdened)
		}
		dvi := fmtFloat(v.DVI)
		if v.NewDevelopment {
			dvi = "-"
		}
		data = append(data, []string{
			contract.TruncateName(v.Region, nameWidth),
			dvi,
			contract.GetColorBand(v.Band),
			v.MapFill,
			income, home, bach, burden,
		})
	}
	if err := renderTable(w, headers, data); err != nil {
		return err
	}

	year := 0
	if len(views) > 0 {
		year = views[0].Year
	}
	_, _ = fmt.Fprintf(w, "Frame %d computed in %v for %d regions\n", year, duration, len(views))
	return nil
}
