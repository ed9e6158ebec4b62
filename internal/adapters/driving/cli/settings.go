package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/compass/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the store backend, data directory and HTTP server.

Settings are kept in ~/.compass/config.toml. The --store and --data-dir
flags override them for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsStoreCmd = &cobra.Command{
	Use:   "store <backend>",
	Short: "Set the store backend",
	Long: `Set the store backend.

Available backends:
  json   - One JSON file, rewritten on every change (default)
  sqlite - SQLite database
  memory - In-memory, lost on exit`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "sqlite", "memory"},
	RunE:      runSettingsStore,
}

var settingsDataDirCmd = &cobra.Command{
	Use:   "data-dir <dir>",
	Short: "Set the data directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsDataDir,
}

var settingsAddrCmd = &cobra.Command{
	Use:   "addr <address>",
	Short: "Set the HTTP API listen address",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsAddr,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsStoreCmd)
	settingsCmd.AddCommand(settingsDataDirCmd)
	settingsCmd.AddCommand(settingsAddrCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	header(cmd, "Current Settings")
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Backend: %s\n", settings.Store.Backend.Description())
	dataDir := settings.Store.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}
	cmd.Printf("  Data directory: %s\n", dataDir)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Printf("  Rate limit: %.1f requests/s (burst %d)\n", settings.Server.RateLimit, settings.Server.Burst)
	return nil
}

func runSettingsStore(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	backend := domain.StoreBackend(args[0])
	if err := settingsService.SetStoreBackend(backend); err != nil {
		return fmt.Errorf("failed to set store backend: %w", err)
	}
	cmd.Printf("Store backend set to: %s\n", backend.Description())
	return nil
}

func runSettingsDataDir(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	if err := settingsService.SetDataDir(args[0]); err != nil {
		return fmt.Errorf("failed to set data directory: %w", err)
	}
	cmd.Printf("Data directory set to: %s\n", args[0])
	return nil
}

func runSettingsAddr(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	if err := settingsService.SetServerAddr(args[0]); err != nil {
		return fmt.Errorf("failed to set address: %w", err)
	}
	cmd.Printf("Server address set to: %s\n", args[0])
	return nil
}
