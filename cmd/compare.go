package cmd

import (
	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/spf13/cobra"
)

// compareCmd sets two regions side by side.
var compareCmd = &cobra.Command{
	Use:   "compare <region-a> <region-b>",
	Short: "Compare the DVI and socioeconomic metrics of two regions.",
	Long: `Compare two regions at a year. Every delta is A minus B.

Metric rows appear only when both regions have socioeconomic data.

Examples:
  velocity compare holly "East Cesar Chavez" --year 2020
  velocity compare holly "The Domain" --output csv`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		cmp := atlas.Compare(resolveRegion(args[0]), resolveRegion(args[1]), cfg.Year)
		if err := writer.WriteComparison(cmp, cfg); err != nil {
			contract.LogFatal("Cannot write comparison", err)
		}
	},
}
