package cmd

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/eastside-atlas/velocity/internal/framestore"
	"github.com/eastside-atlas/velocity/internal/httpapi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd starts the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the atlas over a JSON HTTP API.",
	Long: `Start a read-only JSON HTTP API over the atlas, for map and chart front ends.

Routes:
  GET  /health
  GET  /api/v1/regions
  GET  /api/v1/regions/:name?year=
  GET  /api/v1/regions/:name/timeseries?years=
  GET  /api/v1/frame?year=
  POST /api/v1/frames?year=        archive a frame
  GET  /api/v1/dvi?region=&year=   fractional years allowed
  GET  /api/v1/socio?region=&year=
  GET  /api/v1/socio/prior?region=&year=
  GET  /api/v1/classify?dvi=&new_development=
  GET  /api/v1/change?current=&prior=&higher_is_worse=
  GET  /api/v1/bands
  GET  /api/v1/compare?a=&b=&year=

Examples:
  velocity serve --addr :9090
  VELOCITY_ADDR=127.0.0.1:8080 velocity serve --store-backend none`,
	PreRunE: serviceSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		var logOutput io.Writer
		if viper.GetBool("access-log") {
			logOutput = os.Stderr
		}
		app := httpapi.NewApp(cfg, atlas, framestore.Manager, logOutput)

		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return httpapi.Serve(ctx, app, cfg.Addr)
	},
}
