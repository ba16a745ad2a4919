package metrics

import (
	"io"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulationMetricsExposed(t *testing.T) {
	m := NewMetrics("sdesim-test")
	m.SimulationRunsTotal.WithLabelValues("abm", "ok").Inc()
	m.SimulationPaths.WithLabelValues("abm").Add(250)
	m.SimulationDuration.WithLabelValues("abm").Observe(0.01)
	m.RegisterBuildInfo("sdesim", "")
	m.RegisterBuildInfo("sdesim", "v2") // 第二次调用被忽略

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SimulationRunsTotal.WithLabelValues("abm", "ok")))
	assert.Equal(t, 250.0, testutil.ToFloat64(m.SimulationPaths.WithLabelValues("abm")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BuildInfo.WithLabelValues("sdesim", "unknown", runtime.Version())))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `simulation_runs_total{process="abm",status="ok"} 1`)
	assert.Contains(t, string(body), "simulation_duration_seconds_bucket")
	assert.Contains(t, string(body), "go_goroutines")
	assert.Contains(t, string(body), "go_build_info")
	assert.NotContains(t, string(body), `version="v2"`)
}
