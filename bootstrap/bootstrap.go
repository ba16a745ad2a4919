// Package bootstrap 负责 sdesim 进程的基础设施初始化: 配置、日志、追踪与指标.
package bootstrap

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/wyfcoding/stochastic/config"
	"github.com/wyfcoding/stochastic/logging"
	"github.com/wyfcoding/stochastic/metrics"
	"github.com/wyfcoding/stochastic/tracing"
)

// Bootstrapper 处理通用基础设施的初始化, 并以相反顺序释放.
type Bootstrapper struct {
	ServiceName string
	Version     string
	Config      *config.Config
	Logger      *logging.Logger
	Metrics     *metrics.Metrics
	MetricsPort string // 非空时覆盖配置文件, 强制暴露指标

	closers []func()
}

// New 创建一个新的引导器实例
func New(serviceName, version string) *Bootstrapper {
	return &Bootstrapper{
		ServiceName: serviceName,
		Version:     version,
		Config:      new(config.Config),
	}
}

// Initialize 加载配置文件并按配置初始化日志系统.
// watch 为 true 时开启配置热更新.
func (b *Bootstrapper) Initialize(configPath string, watch bool) error {
	if err := config.Load(configPath, b.Config); err != nil {
		logging.Default().Error("failed to load config", "path", configPath, "error", err)
		return err
	}

	service := b.Config.Log.Service
	if service == "" {
		service = b.ServiceName
	}
	logging.InitLogger(logging.Config{
		Service:    service,
		Module:     "sdesim",
		Level:      b.Config.Log.Level,
		File:       b.Config.Log.File,
		Console:    b.Config.Log.Console,
		MaxSize:    b.Config.Log.MaxSize,
		MaxBackups: b.Config.Log.MaxBackups,
		MaxAge:     b.Config.Log.MaxAge,
		Compress:   b.Config.Log.Compress,
	})
	b.Logger = logging.Default()

	config.PrintWithMask(b.Config)
	if watch {
		config.RegisterReloadHook(b.onConfigReload)
		config.Watch()
	}
	return nil
}

// onConfigReload 热更新只调整日志级别; 作业、模拟参数与指标端口在下次启动时生效.
func (b *Bootstrapper) onConfigReload(next *config.Config) {
	b.Logger.Info("config reloaded", "log_level", next.Log.Level, "jobs", len(next.Jobs))
	if next.Simulation != b.Config.Simulation || !slices.Equal(next.Jobs, b.Config.Jobs) {
		b.Logger.Warn("simulation and job changes take effect on next start")
	}
	config.PrintWithMask(next)
}

// SetupTracing 初始化 OpenTelemetry 追踪器. 失败时仅记录日志, 不阻断运行.
func (b *Bootstrapper) SetupTracing() {
	cfg := b.Config.Tracing
	if cfg.ServiceName == "" {
		cfg.ServiceName = b.ServiceName
	}
	shutdown, err := tracing.InitTracer(cfg)
	if err != nil {
		b.Logger.Error("failed to init tracer", "error", err)
		return
	}
	b.closers = append(b.closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			b.Logger.Error("failed to shutdown tracer", "error", err)
		}
	})
}

// SetupMetrics 创建指标注册表, 配置启用时在独立端口暴露.
func (b *Bootstrapper) SetupMetrics() *metrics.Metrics {
	b.Metrics = metrics.NewMetrics(b.ServiceName)
	b.Metrics.RegisterBuildInfo(b.ServiceName, b.Version)

	enabled, port := b.Config.Metrics.Enabled, b.Config.Metrics.Port
	if b.MetricsPort != "" {
		enabled, port = true, b.MetricsPort
	}
	if enabled {
		stop := b.Metrics.ExposeHttp(port)
		b.closers = append(b.closers, stop)
		b.Logger.Info("metrics exposed", "port", port)
	}
	return b.Metrics
}

// Shutdown 以相反的顺序释放已初始化的组件.
func (b *Bootstrapper) Shutdown() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil
	slog.Info("bootstrap shutdown complete", "service", b.ServiceName)
}
