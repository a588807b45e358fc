package cmd

import (
	"fmt"
	"strconv"

	"github.com/eastside-atlas/velocity/core/algo"
	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/spf13/cobra"
)

// parseFloatArg parses a numeric positional argument.
func parseFloatArg(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': must be a number", name, raw)
	}
	return v, nil
}

// classifyCmd classifies a raw DVI value.
var classifyCmd = &cobra.Command{
	Use:   "classify <dvi>",
	Short: "Classify a DVI value into its displacement band and colors.",
	Long: `Classify a DVI value. Band upper bounds are inclusive:
  Stable                  DVI <= 20
  Early Pressure          20 < DVI <= 35
  Active Displacement     35 < DVI <= 55
  Historic Displacement   DVI > 55

Greenfield regions are always "N/A — New Development".

Examples:
  velocity classify 35
  velocity classify 48.5 --output json
  velocity classify 12 --greenfield`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		dvi, err := parseFloatArg("dvi", args[0])
		if err != nil {
			contract.LogFatal("Cannot classify", err)
		}
		greenfield, _ := cmd.Flags().GetBool("greenfield")
		if err := writer.WriteClassification(atlas.Classify(dvi, greenfield), cfg); err != nil {
			contract.LogFatal("Cannot write classification", err)
		}
	},
}

// changeCmd computes the relative change of a value.
var changeCmd = &cobra.Command{
	Use:   "change <current> [prior]",
	Short: "Compute the relative change of a value against a prior value.",
	Long: `Compute the percent change of current against prior, with its direction.

No change is reported when prior is omitted or zero. With --higher-is-worse,
an increase is flagged as unfavorable.

Examples:
  velocity change 61000 48000
  velocity change 0.41 0.36 --higher-is-worse`,
	Args:    cobra.RangeArgs(1, 2),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		current, err := parseFloatArg("current", args[0])
		if err != nil {
			contract.LogFatal("Cannot compute change", err)
		}
		var prior *float64
		if len(args) == 2 {
			p, err := parseFloatArg("prior", args[1])
			if err != nil {
				contract.LogFatal("Cannot compute change", err)
			}
			prior = &p
		}
		worse, _ := cmd.Flags().GetBool("higher-is-worse")
		change := algo.ChangeOf(current, prior, worse)
		if err := writer.WriteChange(current, prior, change, cfg); err != nil {
			contract.LogFatal("Cannot write change", err)
		}
	},
}

// bandsCmd prints the band legend.
var bandsCmd = &cobra.Command{
	Use:     "bands",
	Short:   "Print the displacement bands with their DVI ranges and colors.",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := writer.WriteBands(cfg); err != nil {
			contract.LogFatal("Cannot write bands", err)
		}
	},
}
