package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/beamcheck/internal/api"
	"github.com/alexiusacademia/beamcheck/internal/report"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the beam checker HTTP API",
	Long: `Serve the beam checker over HTTP.

Routes:
  GET  /healthz
  GET  /api/version
  GET  /api/v1/catalog/
  POST /api/v1/beams/calc          JSON result with a LaTeX report
  POST /api/v1/beams/report.pdf    PDF calculation sheet
  POST /api/v1/beams/diagram.png   Section diagram

Bearer tokens are required on /api/v1/beams when server.auth.jwt_key is set
(see 'beamcheck token').

Examples:
  beamcheck serve --addr :8080
  BEAMCHECK_SERVER_RATE_LIMIT_RPS=2 beamcheck serve`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := conf.Server
		if cmd.Flags().Changed("addr") {
			cfg.Addr = serveAddr
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		srv := api.New(cfg, report.Meta{Project: conf.Report.Project, Author: conf.Report.Author}, logger)
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address (overrides server.addr)")
}
