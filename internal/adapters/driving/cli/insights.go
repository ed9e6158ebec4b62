package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/compass/internal/core/domain"
)

var (
	insightsDomain string
	insightsRole   string
	insightsJSON   bool
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "List classified insights",
	Long: `Lists insights in insertion order, optionally filtered by domain
or by the organisational role (CEO, Manager, Employee) they are relevant to.`,
	Args: cobra.NoArgs,
	RunE: runInsights,
}

func init() {
	insightsCmd.Flags().StringVar(&insightsDomain, "domain", "", "only insights in this domain")
	insightsCmd.Flags().StringVar(&insightsRole, "role", "", "only insights relevant to CEO, Manager or Employee")
	insightsCmd.Flags().BoolVar(&insightsJSON, "json", false, "output insights as JSON")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, _ []string) error {
	if viewService == nil {
		return errNotConfigured("view")
	}

	d, err := parseDomainFlag(insightsDomain)
	if err != nil {
		return err
	}
	role, err := parseRoleFlag(insightsRole)
	if err != nil {
		return err
	}

	insights, err := viewService.Insights(cmd.Context(), d)
	if err != nil {
		return fmt.Errorf("failed to list insights: %w", err)
	}

	if role != "" {
		filtered := make([]domain.ProcessedInsight, 0, len(insights))
		for i := range insights {
			if insights[i].HasRole(role) {
				filtered = append(filtered, insights[i])
			}
		}
		insights = filtered
	}

	if insightsJSON {
		return printJSON(cmd, insights)
	}

	if len(insights) == 0 {
		cmd.Println("No insights found.")
		return nil
	}

	header(cmd, fmt.Sprintf("Insights (%d)", len(insights)))
	for i := range insights {
		printInsight(cmd, i, &insights[i])
	}
	return nil
}

func parseRoleFlag(s string) (domain.Role, error) {
	if s == "" {
		return "", nil
	}
	for _, r := range []domain.Role{domain.RoleCEO, domain.RoleManager, domain.RoleEmployee} {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: unknown role %q (want CEO, Manager or Employee)", domain.ErrInvalidInput, s)
}
