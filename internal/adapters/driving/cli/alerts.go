package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/compass/internal/core/domain"
)

var (
	alertsDomain string
	alertsAll    bool
	alertsJSON   bool
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "List alerts",
	Long: `Lists active alerts, optionally filtered by domain.
Use --all to include acknowledged alerts.`,
	Args: cobra.NoArgs,
	RunE: runAlerts,
}

var alertsAckCmd = &cobra.Command{
	Use:   "ack <alert-id>",
	Short: "Acknowledge an alert",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlertsAck,
}

func init() {
	alertsCmd.Flags().StringVar(&alertsDomain, "domain", "", "only alerts in this domain")
	alertsCmd.Flags().BoolVarP(&alertsAll, "all", "a", false, "include acknowledged alerts")
	alertsCmd.Flags().BoolVar(&alertsJSON, "json", false, "output alerts as JSON")
	alertsCmd.AddCommand(alertsAckCmd)
	rootCmd.AddCommand(alertsCmd)
}

func runAlerts(cmd *cobra.Command, _ []string) error {
	if viewService == nil {
		return errNotConfigured("view")
	}

	d, err := parseDomainFlag(alertsDomain)
	if err != nil {
		return err
	}

	list, err := viewService.Alerts(cmd.Context(), d)
	if err != nil {
		return fmt.Errorf("failed to list alerts: %w", err)
	}

	alerts := make([]domain.Alert, 0, len(list.Alerts))
	for i := range list.Alerts {
		if alertsAll || !list.Alerts[i].Acknowledged {
			alerts = append(alerts, list.Alerts[i])
		}
	}

	if alertsJSON {
		return printJSON(cmd, alerts)
	}

	header(cmd, fmt.Sprintf("Alerts: %d active, %d acknowledged", list.Active, list.Acknowledged))
	if len(alerts) == 0 {
		cmd.Println("No alerts.")
		return nil
	}
	for i := range alerts {
		printAlert(cmd, &alerts[i])
	}
	return nil
}

func runAlertsAck(cmd *cobra.Command, args []string) error {
	if dashboardService == nil {
		return errNotConfigured("dashboard")
	}

	ok, err := dashboardService.Acknowledge(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to acknowledge alert: %w", err)
	}
	if !ok {
		cmd.Printf("No alert with ID %s.\n", args[0])
		return nil
	}
	cmd.Printf("Alert %s acknowledged.\n", args[0])
	return nil
}
