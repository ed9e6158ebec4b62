package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/compass/internal/core/ports/driving"
)

var (
	watchDepartment string
	watchDomain     string
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Ingest files dropped into a folder",
	Long: `Watches a folder and its subfolders and ingests every file that is
created or changed. Hidden files and folders are ignored. Runs until
interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchDepartment, "department", "d", "", "department label for ingested files")
	watchCmd.Flags().StringVar(&watchDomain, "domain", "", "domain for ingested files, skipping detection")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if intakeService == nil {
		return errNotConfigured("intake")
	}
	if newInbox == nil {
		return errNotConfigured("inbox")
	}

	d, err := parseDomainFlag(watchDomain)
	if err != nil {
		return err
	}

	dir, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve %s: %w", args[0], err)
	}

	inbox := newInbox(dir)
	defer inbox.Close() //nolint:errcheck

	ctx := cmd.Context()
	changes, err := inbox.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", inbox.Root())

	opts := driving.IntakeOptions{Department: watchDepartment, Domain: d}
	err = intakeService.Consume(ctx, changes, opts, func(uri string, err error) {
		cmd.PrintErrf("  %s: %v\n", uri, err)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
