package bootstrap

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/stochastic/config"
	"github.com/wyfcoding/stochastic/logging"
)

func TestBootstrapper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
version = "test"

[log]
level = "warn"

[[jobs]]
name = "spot"
kind = "gbm"
paths = 1
steps = 2
horizon = 1.0
s0 = 100.0
`), 0o600))

	b := New("sdesim", "v1.2.3")
	require.NoError(t, b.Initialize(path, false))
	require.NotNil(t, b.Logger)
	require.Len(t, b.Config.Jobs, 1)

	b.SetupTracing()
	m := b.SetupMetrics()
	require.NotNil(t, m)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BuildInfo.WithLabelValues("sdesim", "v1.2.3", runtime.Version())))

	b.Shutdown()
	assert.Empty(t, b.closers)
}

func TestInitializeMissingConfig(t *testing.T) {
	b := New("sdesim", "dev")
	assert.Error(t, b.Initialize(filepath.Join(t.TempDir(), "nope.toml"), false))
}

func TestMetricsPortOverride(t *testing.T) {
	b := New("sdesim", "dev")
	b.Logger = logging.NewFromConfig(logging.Config{Service: "sdesim", Output: &bytes.Buffer{}})
	b.MetricsPort = "0"

	b.SetupMetrics()
	assert.Len(t, b.closers, 1)
	assert.False(t, b.Config.Metrics.Enabled)
	b.Shutdown()
}

func TestConfigReloadKeepsStartupConfig(t *testing.T) {
	var buf bytes.Buffer
	b := New("sdesim", "dev")
	b.Logger = logging.NewFromConfig(logging.Config{Service: "sdesim", Level: "info", Output: &buf})
	b.Config.Simulation = config.SimulationConfig{Concurrency: 2}

	next := &config.Config{
		Log:        config.LogConfig{Level: "warn"},
		Simulation: config.SimulationConfig{Concurrency: 8},
	}
	b.onConfigReload(next)

	assert.Equal(t, 2, b.Config.Simulation.Concurrency)
	assert.Contains(t, buf.String(), "config reloaded")
	assert.Contains(t, buf.String(), "take effect on next start")
}
