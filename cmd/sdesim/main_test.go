package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/stochastic/xerrors"
)

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "sdesim dev\n", out.String())
}

func TestRunSampleConfig(t *testing.T) {
	require.NoError(t, run(context.Background(), filepath.Join("..", "..", "configs", "sdesim.toml"), "", false))
}

func TestRunRejectsBadJob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[simulation]
source = "os"

[[jobs]]
name = "nan"
kind = "abm"
steps = 0
horizon = 1.0
`), 0o600))
	err := run(context.Background(), path, "", false)
	require.Error(t, err)
	assert.Equal(t, xerrors.ExitFailure, xerrors.ExitCode(err))
}

func TestRunExitCodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nan.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[jobs]]
name = "drift"
kind = "abm"
paths = 1
steps = 4
horizon = 1.0
mu = nan
`), 0o600))
	err := run(context.Background(), path, "", false)
	require.ErrorIs(t, err, xerrors.ErrInvalidParameter)
	assert.Equal(t, xerrors.ExitUsage, xerrors.ExitCode(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = run(ctx, filepath.Join("..", "..", "configs", "sdesim.toml"), "", false)
	require.ErrorIs(t, err, xerrors.ErrSimulationCanceled)
	assert.Equal(t, xerrors.ExitCanceled, xerrors.ExitCode(err))
}
