package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// RegisterBuildInfo 导出 build_info{service,version,go_version} 以及 go_build_info (模块路径与版本).
// 只有第一次调用生效.
func (m *Metrics) RegisterBuildInfo(serviceName, version string) {
	if m == nil || m.BuildInfo != nil {
		return
	}

	m.BuildInfo = m.NewGaugeVec(prometheus.GaugeOpts{
		Name: "build_info",
		Help: "Build information of the simulation binary",
	}, []string{"service", "version", "go_version"})
	m.BuildInfo.WithLabelValues(orUnknown(serviceName), orUnknown(version), runtime.Version()).Set(1)

	m.registry.MustRegister(collectors.NewBuildInfoCollector())
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
