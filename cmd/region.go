package cmd

import (
	"fmt"

	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/spf13/cobra"
)

// regionCmd shows one region in detail.
var regionCmd = &cobra.Command{
	Use:   "region <name>",
	Short: "Show the displacement band and metric cards of one region.",
	Long: `Show everything the atlas knows about a region at a year.

Displays:
- DVI, band and map colors
- Interpolated socioeconomic snapshot and its confidence
- Metric changes against the latest earlier measurement

Region names are matched case-insensitively and may be short names.

Examples:
  # Holly at the latest measured year
  velocity region "Holly / Rainey Street"

  # Mid-decade view by short name
  velocity region holly --year 2015

  # Metric cards as CSV
  velocity region holly --output csv --output-file holly.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		view := atlas.RegionView(resolveRegion(args[0]), cfg.Year)
		if err := writer.WriteRegion(view, cfg); err != nil {
			contract.LogFatal("Cannot write region", err)
		}
	},
}

// regionsCmd lists the known regions.
var regionsCmd = &cobra.Command{
	Use:     "regions",
	Short:   "List every region with its short name and heritage.",
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, name := range atlas.Regions() {
			meta, _ := atlas.Meta(name)
			line := name
			if meta.ShortName != "" {
				line += fmt.Sprintf(" (%s)", meta.ShortName)
			}
			if atlas.IsNewDevelopment(name) {
				line += " [new development]"
			}
			if meta.Heritage != "" {
				line += " - " + meta.Heritage
			}
			cmd.Println(line)
		}
	},
}
