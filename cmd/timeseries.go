package cmd

import (
	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/spf13/cobra"
)

// timeseriesCmd samples the DVI of one region over time.
var timeseriesCmd = &cobra.Command{
	Use:   "timeseries <name>",
	Short: "Sample the DVI of a region over a list of years.",
	Long: `Sample the DVI of a region at several years, as drawn by a sparkline.

The --years flag takes a comma-separated list or one of the named lists:
  chart - 1990, 1995, ..., 2020, 2023 (default)
  snap  - the timeline snap points
  play  - every frame of the timeline animation

Examples:
  velocity timeseries holly
  velocity timeseries "East Cesar Chavez" --years 2000,2010,2020
  velocity timeseries holly --years play --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		result := atlas.Timeseries(resolveRegion(args[0]), cfg.Years)
		if err := writer.WriteTimeseries(result, cfg); err != nil {
			contract.LogFatal("Cannot write timeseries", err)
		}
	},
}
