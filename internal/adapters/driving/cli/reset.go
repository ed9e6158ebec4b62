package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the data store with fresh demo data",
	Long: `Discards every document, insight and alert and reseeds the store
with the demo dataset. Acknowledgements are cleared.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if dashboardService == nil {
		return errNotConfigured("dashboard")
	}

	snapshot, err := dashboardService.Reset(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}

	cmd.Printf("Store reset: %d documents, %d insights, %d alerts.\n",
		len(snapshot.Documents), len(snapshot.Insights), len(snapshot.Alerts))
	return nil
}
