package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/compass/internal/core/domain"
)

func withBootstrap(t *testing.T, b Bootstrap) {
	t.Helper()
	SetBootstrap(b)
	t.Cleanup(func() { SetBootstrap(nil) })
}

func TestRoot_BootstrapReceivesFlags(t *testing.T) {
	var got Options
	withBootstrap(t, func(opts Options) (*Services, error) {
		got = opts
		return newTestServices(t), nil
	})

	out, err := run(t, nil, "--store", "memory", "--data-dir", "/tmp/compass", "overview")

	require.NoError(t, err)
	assert.Equal(t, Options{Store: domain.StoreBackendMemory, DataDir: "/tmp/compass"}, got)
	assert.Contains(t, out, "Organisation Overview")
}

func TestRoot_InvalidStoreFlag(t *testing.T) {
	called := false
	withBootstrap(t, func(Options) (*Services, error) {
		called = true
		return &Services{}, nil
	})

	_, err := run(t, nil, "--store", "redis", "overview")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, called)
}

func TestRoot_BootstrapError(t *testing.T) {
	withBootstrap(t, func(Options) (*Services, error) {
		return nil, errors.New("disk unavailable")
	})

	_, err := run(t, nil, "overview")

	assert.ErrorContains(t, err, "failed to initialise: disk unavailable")
}

func TestRoot_VersionSkipsBootstrap(t *testing.T) {
	withBootstrap(t, func(Options) (*Services, error) {
		return nil, errors.New("should not run")
	})

	out, err := run(t, nil, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "compass version")
}

func TestExecute_ClosesServices(t *testing.T) {
	closed := false
	svc := newTestServices(t)
	svc.Close = func() error {
		closed = true
		return errors.New("flush failed")
	}
	resetFlags()
	SetServices(svc)
	t.Cleanup(func() {
		SetServices(nil)
		rootCmd.SetArgs(nil)
	})
	rootCmd.SetArgs([]string{"version"})

	err := Execute(context.Background())

	assert.True(t, closed)
	assert.ErrorContains(t, err, "close store: flush failed")
}
