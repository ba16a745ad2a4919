package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/stochastic/logging"
)

const sample = `
version = "v0.3.0"

[log]
service = "sdesim"
level = "info"

[metrics]
enabled = true
port = "9101"

[tracing]
enabled = false
sample_ratio = 0.5

[simulation]
concurrency = 2
increment = "uniform"
source = "seeded"
seed = 7

[[jobs]]
name = "spot"
kind = "abm"
paths = 100
steps = 252
horizon = 1.0
s0 = 100.0
mu = 0.05
sigma = 0.2

[[jobs]]
name = "short-rate"
kind = "feller"
paths = 50
steps = 360
horizon = 30.0
s0 = 0.03
alpha = 0.15
mu = 0.04
sigma = 0.1
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	var cfg Config
	require.NoError(t, Load(writeConfig(t, sample), &cfg))

	assert.Equal(t, "v0.3.0", cfg.Version)
	assert.Equal(t, "9101", cfg.Metrics.Port)
	assert.Equal(t, SimulationConfig{Concurrency: 2, Increment: "uniform", Source: "seeded", Seed: 7}, cfg.Simulation)
	require.Len(t, cfg.Jobs, 2)
	assert.Equal(t, JobConfig{
		Name: "spot", Kind: "abm", Paths: 100, Steps: 252, Horizon: 1, S0: 100, Mu: 0.05, Sigma: 0.2,
	}, cfg.Jobs[0])
	assert.Equal(t, 0.15, cfg.Jobs[1].Alpha)
	assert.NotNil(t, GetViper())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("APP_SIMULATION_CONCURRENCY", "8")
	t.Setenv("APP_LOG_LEVEL", "debug")

	var cfg Config
	require.NoError(t, Load(writeConfig(t, sample), &cfg))
	assert.Equal(t, 8, cfg.Simulation.Concurrency)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown kind": `
[[jobs]]
name = "x"
kind = "heston"
steps = 10
horizon = 1.0
`,
		"zero steps": `
[[jobs]]
name = "x"
kind = "abm"
steps = 0
horizon = 1.0
`,
		"non-positive horizon": `
[[jobs]]
name = "x"
kind = "bridge"
steps = 5
horizon = 0.0
`,
		"bad increment": `
[simulation]
increment = "sobol"
`,
		"metrics without port": `
[metrics]
enabled = true
`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var cfg Config
			err := Load(writeConfig(t, body), &cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	var cfg Config
	err := Load(filepath.Join(t.TempDir(), "absent.toml"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config error")
}

func TestMask(t *testing.T) {
	m := map[string]any{
		"Tracing": map[string]any{"OTLPEndpoint": "collector:4317", "Enabled": true},
		"Jobs":    []any{map[string]any{"Name": "spot", "AuthToken": "abc"}},
	}
	mask(m)

	assert.Equal(t, "******", m["Tracing"].(map[string]any)["OTLPEndpoint"])
	assert.Equal(t, true, m["Tracing"].(map[string]any)["Enabled"])
	job := m["Jobs"].([]any)[0].(map[string]any)
	assert.Equal(t, "spot", job["Name"])
	assert.Equal(t, "******", job["AuthToken"])
}

func TestReloadAppliesLevelAndRunsHooks(t *testing.T) {
	path := writeConfig(t, sample)
	var cfg Config
	require.NoError(t, Load(path, &cfg))

	var buf bytes.Buffer
	l := logging.NewFromConfig(logging.Config{Service: "sdesim", Module: "config", Level: "info", Output: &buf})
	t.Cleanup(func() { logging.SetLevel("info") })

	var got *Config
	RegisterReloadHook(func(c *Config) { got = c })
	RegisterReloadHook(nil)

	changed := strings.Replace(sample, `level = "info"`, `level = "debug"`, 1)
	changed = strings.Replace(changed, "concurrency = 2", "concurrency = 6", 1)
	require.NoError(t, os.WriteFile(path, []byte(changed), 0o600))
	v := GetViper()
	require.NoError(t, v.ReadInConfig())
	reload(v)

	require.NotNil(t, got)
	assert.Equal(t, "debug", got.Log.Level)
	assert.Equal(t, 6, got.Simulation.Concurrency)
	assert.Equal(t, 2, cfg.Simulation.Concurrency)
	assert.Equal(t, "info", cfg.Log.Level)

	l.Debug("visible after reload")
	assert.Contains(t, buf.String(), "visible after reload")
}

func TestReloadRejectsInvalid(t *testing.T) {
	path := writeConfig(t, sample)
	var cfg Config
	require.NoError(t, Load(path, &cfg))

	calls := 0
	RegisterReloadHook(func(*Config) { calls++ })

	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(sample, "steps = 252", "steps = 0", 1)), 0o600))
	v := GetViper()
	require.NoError(t, v.ReadInConfig())
	reload(v)

	assert.Zero(t, calls)
}
