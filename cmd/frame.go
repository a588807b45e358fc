package cmd

import (
	"time"

	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/eastside-atlas/velocity/internal/framestore"
	"github.com/spf13/cobra"
)

// frameCmd computes one map frame.
var frameCmd = &cobra.Command{
	Use:   "frame",
	Short: "Compute the view of every region at a year.",
	Long: `Compute one map frame: the DVI, band, fill color and socioeconomic snapshot
of every region at a year.

With --record, the frame is archived in the frame store so that frames can be
exported later for BI tools.

Examples:
  # The 2010 frame
  velocity frame --year 2010

  # Archive the current frame in PostgreSQL
  velocity frame --record --store-backend postgresql --store-db-connect "host=localhost dbname=velocity"

  # Export the frame to Parquet
  velocity frame --output parquet --output-file frame-2023.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		views := atlas.Frame(cfg.Year)

		if cfg.Record {
			params := map[string]any{
				"year":            cfg.Year,
				"source":          dataSource,
				"new_development": cfg.NewDevelopment,
			}
			if _, err := framestore.ArchiveFrame(framestore.Manager.GetFrameStore(), cfg.Year, views, params, time.Now); err != nil {
				contract.LogWarn("Cannot archive frame", err)
			}
		}

		if err := writer.WriteFrame(views, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write frame", err)
		}
	},
}
