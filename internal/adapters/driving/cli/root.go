// Package cli provides the compass command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
	"github.com/custodia-labs/compass/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// noServicesAnnotation marks commands that run without bootstrapping services.
const noServicesAnnotation = "compass/no-services"

// Options carries the global flag values handed to the bootstrap function.
type Options struct {
	// Store overrides the configured store backend when set.
	Store domain.StoreBackend

	// DataDir overrides the configured data directory when set.
	DataDir string
}

// Services holds the driving ports the commands call into.
type Services struct {
	Dashboard driving.DashboardService
	Views     driving.ViewService
	Intake    driving.IntakeService
	Session   driving.SessionService
	Settings  driving.SettingsService

	// NewInbox opens a watcher over an upload folder.
	NewInbox func(dir string) driven.Inbox

	// Close releases the data store. May be nil.
	Close func() error
}

// Bootstrap builds the services once the global flags are parsed.
type Bootstrap func(opts Options) (*Services, error)

var (
	dashboardService driving.DashboardService
	viewService      driving.ViewService
	intakeService    driving.IntakeService
	sessionService   driving.SessionService
	settingsService  driving.SettingsService
	newInbox         func(dir string) driven.Inbox
	closeServices    func() error

	bootstrap Bootstrap
)

// Global flags.
var (
	verbose     bool
	storeFlag   string
	dataDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "compass",
	Short: "Role-based organisational dashboard",
	Long: `Compass classifies organisational documents into insights and alerts
and shows them per domain: Finance, Operations, HR, Sales, Legal and IT.

Documents are classified with keyword rules. The data store is seeded
with demo data the first time it is read.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "store backend: json, sqlite or memory")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "directory for the data store")
}

// SetBootstrap sets the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs the driving ports used by commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	dashboardService = s.Dashboard
	viewService = s.Views
	intakeService = s.Intake
	sessionService = s.Session
	settingsService = s.Settings
	newInbox = s.NewInbox
	closeServices = s.Close
}

// Execute runs the root command with ctx and releases services afterwards.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeServices != nil {
		if cerr := closeServices(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close store: %w", cerr))
		}
	}
	return err
}

func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd.Annotations[noServicesAnnotation] == "true" {
		return nil
	}

	backend := domain.StoreBackend(storeFlag)
	if storeFlag != "" && !backend.IsValid() {
		return fmt.Errorf("%w: store backend %q (want json, sqlite or memory)", domain.ErrInvalidInput, storeFlag)
	}

	svc, err := bootstrap(Options{Store: backend, DataDir: dataDirFlag})
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	SetServices(svc)
	return nil
}

// errNotConfigured reports a service that was never installed.
func errNotConfigured(name string) error {
	return fmt.Errorf("%s service not configured", name)
}
