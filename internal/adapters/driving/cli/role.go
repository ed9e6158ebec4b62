package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/compass/internal/core/domain"
)

var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "Manage the selected domain role",
	Long: `Selects the domain whose dashboard you see by default.
Roles scope what is shown; they grant no permissions.`,
	RunE: runRoleShow,
}

var roleSelectCmd = &cobra.Command{
	Use:       "select <domain>",
	Short:     "Select a domain role",
	Args:      cobra.ExactArgs(1),
	ValidArgs: domainNames(),
	RunE:      runRoleSelect,
}

var roleShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the selected role",
	Args:  cobra.NoArgs,
	RunE:  runRoleShow,
}

var roleLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the selected role",
	Args:  cobra.NoArgs,
	RunE:  runRoleLogout,
}

func init() {
	roleCmd.AddCommand(roleSelectCmd)
	roleCmd.AddCommand(roleShowCmd)
	roleCmd.AddCommand(roleLogoutCmd)
	rootCmd.AddCommand(roleCmd)
}

func runRoleSelect(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errNotConfigured("session")
	}

	role, err := domain.ParseDomain(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q (want one of %s)", err, args[0], strings.Join(domainNames(), ", "))
	}
	if err := sessionService.Select(role); err != nil {
		return fmt.Errorf("failed to select role: %w", err)
	}

	cmd.Printf("Role set to %s.\n", role)
	return nil
}

func runRoleShow(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errNotConfigured("session")
	}

	role, ok := sessionService.Current()
	if !ok {
		cmd.Println("No role selected.")
		return nil
	}
	cmd.Printf("Current role: %s\n", role)
	return nil
}

func runRoleLogout(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errNotConfigured("session")
	}

	if err := sessionService.Logout(); err != nil {
		return fmt.Errorf("failed to clear role: %w", err)
	}
	cmd.Println("Logged out.")
	return nil
}

func domainNames() []string {
	all := domain.AllDomains()
	names := make([]string, len(all))
	for i, d := range all {
		names[i] = d.String()
	}
	return names
}
