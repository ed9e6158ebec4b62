package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/compass/internal/core/domain"
)

var (
	highColor   = color.New(color.FgRed, color.Bold)
	mediumColor = color.New(color.FgYellow)
	lowColor    = color.New(color.FgCyan)
	infoColor   = color.New(color.FgBlue)
	headerColor = color.New(color.Bold)
	faintColor  = color.New(color.Faint)
)

func priorityLabel(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return highColor.Sprint(p)
	case domain.PriorityMedium:
		return mediumColor.Sprint(p)
	default:
		return lowColor.Sprint(p)
	}
}

func severityLabel(s domain.AlertSeverity) string {
	switch s {
	case domain.SeverityHigh:
		return highColor.Sprint(s)
	case domain.SeverityMedium:
		return mediumColor.Sprint(s)
	default:
		return infoColor.Sprint(s)
	}
}

func header(cmd *cobra.Command, title string) {
	cmd.Println(headerColor.Sprint(title))
	cmd.Println(strings.Repeat("=", len(title)))
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printInsight(cmd *cobra.Command, i int, insight *domain.ProcessedInsight) {
	cmd.Printf("  [%d] %s [%s] %s\n", i+1, insight.Title, priorityLabel(insight.Priority), faintColor.Sprint(insight.Type))
	if insight.Domain != "" {
		cmd.Printf("      Domain: %s\n", insight.Domain)
	}
	cmd.Printf("      Roles: %s\n", joinRoles(insight.RelevanceRoles))
	if insight.Summary != "" {
		cmd.Printf("      %s\n", insight.Summary)
	}
}

func printAlert(cmd *cobra.Command, alert *domain.Alert) {
	state := ""
	if alert.Acknowledged {
		state = faintColor.Sprint(" (acknowledged)")
	}
	cmd.Printf("  %s [%s]%s\n", alert.Title, severityLabel(alert.Severity), state)
	cmd.Printf("      ID: %s\n", alert.ID)
	if alert.Domain != "" {
		cmd.Printf("      Domain: %s\n", alert.Domain)
	}
}

func joinRoles(roles []domain.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

// parseDomainFlag resolves an optional --domain value.
func parseDomainFlag(s string) (domain.Domain, error) {
	if s == "" {
		return "", nil
	}
	d, err := domain.ParseDomain(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, s)
	}
	return d, nil
}
