// ABOUTME: CLI command for starting the HTTP JSON API.
// ABOUTME: Serves the nutrition log and reports until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/nutrition/internal/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP JSON API",
	Long: `Start an HTTP server exposing the nutrition log and reports as JSON.

The listen address comes from --addr, NUTRITION_LISTEN_ADDR, or
"listen_addr" in the config file, defaulting to 127.0.0.1:8080.

ENDPOINTS (all under /api):

  GET  /profile   PUT /profile
  GET  /goals     GET /plans?target=72
  GET  /streak    GET /today    GET /dashboard?days=7
  GET  /stats?days=7 | ?from=YYYY-MM-DD&to=YYYY-MM-DD
  GET  /stats/week    GET /stats/month    GET /stats/buckets?by=week&days=90
  GET  /trend?days=7  GET /meal-types?days=30  GET /macros?days=7
  GET  /meals   POST /meals   DELETE /meals/{id}
  GET  /weights POST /weights DELETE /weights/{id}   GET /weights/stats`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.GetListenAddr()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server := api.NewServer(repo, api.WithLogger(logger), api.WithClock(timeNow))
		return server.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default 127.0.0.1:8080)")
	rootCmd.AddCommand(serveCmd)
}
