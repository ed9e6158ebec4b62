package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
)

var (
	overviewJSON  bool
	dashboardJSON bool
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show the organisation-wide overview",
	Long: `Shows document, insight and active alert totals, the document count
per domain, and the top five insights and active alerts.`,
	Args: cobra.NoArgs,
	RunE: runOverview,
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [domain]",
	Short: "Show the dashboard for a domain",
	Long: `Shows documents, insights and active alerts for one domain, plus the
document counts of every domain. Without an argument the selected role is used
(see "compass role select").`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDashboard,
}

func init() {
	overviewCmd.Flags().BoolVar(&overviewJSON, "json", false, "output as JSON")
	dashboardCmd.Flags().BoolVar(&dashboardJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(dashboardCmd)
}

func runOverview(cmd *cobra.Command, _ []string) error {
	if viewService == nil {
		return errNotConfigured("view")
	}

	overview, err := viewService.Overview(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to build overview: %w", err)
	}

	if overviewJSON {
		return printJSON(cmd, overview)
	}

	header(cmd, "Organisation Overview")
	cmd.Printf("  Documents:     %d\n", overview.TotalDocuments)
	cmd.Printf("  Insights:      %d\n", overview.TotalInsights)
	cmd.Printf("  Active alerts: %d\n", overview.ActiveAlerts)
	cmd.Println()

	printDomainCounts(cmd, overview.DocumentsByDomain, "")

	cmd.Println("[Top Insights]")
	for i := range overview.TopInsights {
		printInsight(cmd, i, &overview.TopInsights[i])
	}
	cmd.Println()

	cmd.Println("[Top Alerts]")
	if len(overview.TopAlerts) == 0 {
		cmd.Println("  No active alerts.")
	}
	for i := range overview.TopAlerts {
		printAlert(cmd, &overview.TopAlerts[i])
	}
	return nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if viewService == nil {
		return errNotConfigured("view")
	}

	d, err := resolveDomainArg(args)
	if err != nil {
		return err
	}

	view, err := viewService.DomainDashboard(cmd.Context(), d)
	if err != nil {
		return fmt.Errorf("failed to build %s dashboard: %w", d, err)
	}

	if dashboardJSON {
		return printJSON(cmd, view)
	}

	header(cmd, fmt.Sprintf("%s Dashboard", view.Domain))
	cmd.Printf("  Documents:     %d\n", view.Documents)
	cmd.Printf("  Insights:      %d\n", len(view.Insights))
	cmd.Printf("  Active alerts: %d\n", len(view.ActiveAlerts))
	cmd.Println()

	cmd.Println("[Insights]")
	for i := range view.Insights {
		printInsight(cmd, i, &view.Insights[i])
	}
	cmd.Println()

	cmd.Println("[Active Alerts]")
	if len(view.ActiveAlerts) == 0 {
		cmd.Println("  No active alerts.")
	}
	for i := range view.ActiveAlerts {
		printAlert(cmd, &view.ActiveAlerts[i])
	}
	cmd.Println()

	printDomainCounts(cmd, view.CrossDomain, view.Domain)
	return nil
}

func printDomainCounts(cmd *cobra.Command, counts []driving.DomainCount, current domain.Domain) {
	cmd.Println("[Documents by Domain]")
	for _, c := range counts {
		marker := " "
		if c.Domain == current {
			marker = "*"
		}
		cmd.Printf(" %s %-12s %d\n", marker, c.Domain, c.Documents)
	}
	cmd.Println()
}

// resolveDomainArg returns the domain named by the first argument, or the
// selected role when there is none.
func resolveDomainArg(args []string) (domain.Domain, error) {
	if len(args) > 0 {
		d, err := domain.ParseDomain(args[0])
		if err != nil {
			return "", fmt.Errorf("%w: %q", err, args[0])
		}
		return d, nil
	}
	if sessionService != nil {
		if role, ok := sessionService.Current(); ok {
			return role, nil
		}
	}
	return "", fmt.Errorf("%w: pass a domain or run \"compass role select <domain>\"", domain.ErrNoRoleSelected)
}
