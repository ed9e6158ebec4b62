// Command compass is the role-based organisational dashboard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/compass/internal/adapters/driven/config/file"
	"github.com/custodia-labs/compass/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/compass/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/compass/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/compass/internal/adapters/driving/cli"
	"github.com/custodia-labs/compass/internal/connectors/filesystem"
	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/core/services"
	"github.com/custodia-labs/compass/internal/logger"
	"github.com/custodia-labs/compass/internal/normalisers"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetBootstrap(bootstrap)
	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// bootstrap wires the services for one command run. Flags override the
// settings stored in ~/.compass/config.toml.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	configDir, err := file.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("locate config directory: %w", err)
	}
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	backend := settings.Store.Backend
	if opts.Store != "" {
		backend = opts.Store
	}
	dataDir := resolveDataDir(opts.DataDir, settings.Store.DataDir)

	store, closeStore, err := openStore(backend, dataDir)
	if err != nil {
		return nil, err
	}
	logger.Debug("Using %s store in %s", backend, dataDir)

	dashboard := services.NewDashboardService(store, nil, nil)
	return &cli.Services{
		Dashboard: dashboard,
		Views:     services.NewViewService(dashboard),
		Intake:    services.NewIntakeService(normalisers.Default(), dashboard),
		Session:   services.NewSessionService(configStore),
		Settings:  settingsService,
		NewInbox: func(dir string) driven.Inbox {
			return filesystem.New(dir)
		},
		Close: closeStore,
	}, nil
}

// resolveDataDir picks the --data-dir flag, then store.data_dir, then
// ./data.
func resolveDataDir(flag, configured string) string {
	switch {
	case flag != "":
		return flag
	case configured != "":
		return configured
	default:
		return jsonfile.DefaultDir
	}
}

func openStore(backend domain.StoreBackend, dataDir string) (driven.DataStore, func() error, error) {
	switch backend {
	case domain.StoreBackendSQLite:
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, store.Close, nil
	case domain.StoreBackendMemory:
		return memory.NewDataStore(), nil, nil
	case domain.StoreBackendJSON, "":
		return jsonfile.New(dataDir), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: store backend %q", domain.ErrInvalidInput, backend)
	}
}
