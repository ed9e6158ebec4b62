package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/compass/internal/adapters/driving/mcp"
)

var mcpAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol integration",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the dashboard to MCP clients",
	Long: `Serve the dashboard to AI assistants over the Model Context Protocol.

Without --addr the server speaks JSON-RPC on stdin/stdout, which is what
desktop assistants expect when they launch compass themselves. With --addr
it serves the streamable HTTP transport instead.

Tools:
  ingest_document    classify and store a document
  acknowledge_alert  mark an alert as seen
  list_insights      insights, filtered by domain, role or priority
  list_alerts        active alerts, optionally for one domain
  overview           organisation-wide counts

Resources:
  compass://store              whole data store
  compass://graph              knowledge graph
  compass://domains/{domain}   dashboard of one domain

Assistant configuration:
  {
    "mcpServers": {
      "compass": {"command": "/path/to/compass", "args": ["mcp", "serve"]}
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().StringVar(&mcpAddr, "addr", "", "serve HTTP on this address instead of stdio (e.g. :8080)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	server, err := mcp.NewServer(&mcp.Ports{
		Dashboard: dashboardService,
		Views:     viewService,
	})
	if err != nil {
		return err
	}

	if mcpAddr == "" {
		return server.Run(cmd.Context())
	}

	// stdout belongs to JSON-RPC in stdio mode, so only announce HTTP.
	cmd.Printf("MCP server listening on %s\n", mcpAddr)
	if err := server.RunHTTP(cmd.Context(), mcpAddr); err != nil {
		return fmt.Errorf("mcp http: %w", err)
	}
	return nil
}
