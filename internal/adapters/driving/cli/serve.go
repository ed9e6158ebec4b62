package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/compass/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/compass/internal/core/domain"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the dashboard over HTTP until interrupted.

Routes:
  GET  /api/data                     whole data store
  POST /api/data                     {"action":"add","documents":[...]}
                                     {"action":"clear"}
                                     {"action":"acknowledge","alertId":"..."}
  GET  /api/overview                 organisation overview
  GET  /api/dashboard                dashboard of the X-Compass-Role header
  GET  /api/domains/{domain}         dashboard of one domain
  GET  /api/domains/{domain}/learning
  GET  /api/graph                    knowledge graph

POST requests are rate limited (server.rate_limit, server.burst).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from server.addr, \":3000\")")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if dashboardService == nil || viewService == nil {
		return errNotConfigured("dashboard")
	}

	server := domain.DefaultAppSettings().Server
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		server = settings.Server
	}
	if serveAddr != "" {
		server.Addr = serveAddr
	}

	api, err := httpapi.NewServer(
		&httpapi.Ports{Dashboard: dashboardService, Views: viewService},
		httpapi.WithRateLimit(server.RateLimit, server.Burst),
	)
	if err != nil {
		return err
	}

	if err := api.Start(server.Addr); err != nil {
		return err
	}
	cmd.Printf("HTTP API listening on http://%s\n", api.Addr())

	<-cmd.Context().Done()
	return api.Stop()
}
