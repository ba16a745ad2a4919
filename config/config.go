// Package config 提供了统一的配置加载、校验与热更新能力.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/wyfcoding/stochastic/logging"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config 全局顶级配置结构.
type Config struct {
	Version    string           `mapstructure:"version"    toml:"version"`
	Log        LogConfig        `mapstructure:"log"        toml:"log"`
	Metrics    MetricsConfig    `mapstructure:"metrics"    toml:"metrics"`
	Tracing    TracingConfig    `mapstructure:"tracing"    toml:"tracing"`
	Simulation SimulationConfig `mapstructure:"simulation" toml:"simulation"`
	Jobs       []JobConfig      `mapstructure:"jobs"       toml:"jobs"       validate:"dive"`
}

// LogConfig 定义日志输出、级别与切割策略.
type LogConfig struct {
	Service    string `mapstructure:"service"     toml:"service"`
	Level      string `mapstructure:"level"       toml:"level"       validate:"omitempty,oneof=debug info warn error"`
	File       string `mapstructure:"file"        toml:"file"`        // 日志文件路径。
	Console    bool   `mapstructure:"console"     toml:"console"`     // 写文件时是否同时输出到控制台。
	MaxSize    int    `mapstructure:"max_size"    toml:"max_size"`    // 单个文件最大大小 (MB)。
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups"` // 最大备份数。
	MaxAge     int    `mapstructure:"max_age"     toml:"max_age"`     // 最大保留天数。
	Compress   bool   `mapstructure:"compress"    toml:"compress"`    // 是否启用压缩。
}

// MetricsConfig 指标暴露配置.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Port    string `mapstructure:"port"    toml:"port"    validate:"required_if=Enabled true"`
}

// TracingConfig 分布式链路追踪（OpenTelemetry）配置.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"       toml:"enabled"`
	ServiceName  string  `mapstructure:"service_name"  toml:"service_name"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint" toml:"otlp_endpoint" validate:"required_if=Enabled true"`
	SampleRatio  float64 `mapstructure:"sample_ratio"  toml:"sample_ratio"  validate:"gte=0,lte=1"`
}

// SimulationConfig 模拟引擎的全局参数.
type SimulationConfig struct {
	Concurrency int    `mapstructure:"concurrency" toml:"concurrency" validate:"gte=0"`                        // 批量运行时的并发作业数, 0 表示不限制。
	Increment   string `mapstructure:"increment"   toml:"increment"   validate:"omitempty,oneof=uniform normal"` // Wiener 增量构造方式。
	Source      string `mapstructure:"source"      toml:"source"      validate:"omitempty,oneof=os seeded"`      // 随机源类型。
	Seed        uint64 `mapstructure:"seed"        toml:"seed"`                                                  // source=seeded 时使用。
}

// JobConfig 定义一个模拟作业. 不同过程使用的系数不同:
// abm/gbm: mu, sigma, s0; bridge: alpha, beta, sigma;
// feller: alpha (回归速度), mu, sigma, s0; ou: theta, mu, sigma, s0.
type JobConfig struct {
	Name    string  `mapstructure:"name"    toml:"name"    validate:"required"`
	Kind    string  `mapstructure:"kind"    toml:"kind"    validate:"required,oneof=abm bridge feller gbm ou"`
	Paths   int     `mapstructure:"paths"   toml:"paths"   validate:"gte=0"`
	Steps   int     `mapstructure:"steps"   toml:"steps"   validate:"gte=1"`
	Horizon float64 `mapstructure:"horizon" toml:"horizon" validate:"gt=0"`
	S0      float64 `mapstructure:"s0"      toml:"s0"`
	Mu      float64 `mapstructure:"mu"      toml:"mu"`
	Sigma   float64 `mapstructure:"sigma"   toml:"sigma"`
	Alpha   float64 `mapstructure:"alpha"   toml:"alpha"`
	Beta    float64 `mapstructure:"beta"    toml:"beta"`
	Theta   float64 `mapstructure:"theta"   toml:"theta"`
}

var (
	lock      sync.Mutex
	vInstance = viper.New()
	onReload  []func(*Config)
	validate  = validator.New()
)

// RegisterReloadHook 注册配置热更新回调。
func RegisterReloadHook(hook func(*Config)) {
	if hook == nil {
		return
	}
	lock.Lock()
	defer lock.Unlock()
	onReload = append(onReload, hook)
}

// Load 读取 TOML 配置文件, 支持 APP_ 前缀的环境变量覆盖, 并执行结构体校验.
func Load(path string, conf any) error {
	lock.Lock()
	defer lock.Unlock()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config error: %w", err)
	}

	if err := v.Unmarshal(conf); err != nil {
		return fmt.Errorf("unmarshal config error: %w", err)
	}

	if err := validate.Struct(conf); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	vInstance = v
	return nil
}

// Watch 监听最近一次 Load 的配置文件. 变更通过校验后只更新全局日志级别,
// 新配置以独立快照交给已注册的回调; 调用方持有的 Config 不会被修改.
func Watch() {
	lock.Lock()
	v := vInstance
	lock.Unlock()

	v.OnConfigChange(func(event fsnotify.Event) {
		slog.Info("detecting config change", "file", event.Name)
		const debounceTimeout = 500 * time.Millisecond
		time.Sleep(debounceTimeout)
		reload(v)
	})
	v.WatchConfig()
}

func reload(v *viper.Viper) {
	next := new(Config)
	if err := v.Unmarshal(next); err != nil {
		slog.Error("reload config unmarshal failed", "error", err)
		return
	}
	if err := validate.Struct(next); err != nil {
		slog.Error("reload config validation failed", "error", err)
		return
	}

	logging.SetLevel(next.Log.Level)
	slog.Info("config hot-reloaded and validated successfully", "log_level", next.Log.Level)

	lock.Lock()
	hooks := append([]func(*Config){}, onReload...)
	lock.Unlock()
	for _, hook := range hooks {
		hook(next)
	}
}

// PrintWithMask 脱敏打印当前配置.
func PrintWithMask(conf any) {
	data, err := json.Marshal(conf)
	if err != nil {
		slog.Error("failed to marshal config for printing", "error", err)
		return
	}

	var configMap map[string]any
	if unmarshalErr := json.Unmarshal(data, &configMap); unmarshalErr != nil {
		slog.Error("failed to unmarshal config for masking", "error", unmarshalErr)
		return
	}

	mask(configMap)

	maskedJSON, marshalErr := json.Marshal(configMap)
	if marshalErr != nil {
		slog.Error("failed to marshal masked config", "error", marshalErr)
		return
	}

	slog.Info("Current effective configuration", "config", string(maskedJSON))
}

func mask(configMap map[string]any) {
	sensitiveKeys := []string{"password", "secret", "token", "endpoint"}

	for key, val := range configMap {
		if subMap, ok := val.(map[string]any); ok {
			mask(subMap)
			continue
		}

		if slice, ok := val.([]any); ok {
			for _, item := range slice {
				if itemMap, ok := item.(map[string]any); ok {
					mask(itemMap)
				}
			}
			continue
		}

		for _, sensitiveKey := range sensitiveKeys {
			if strings.Contains(strings.ToLower(key), sensitiveKey) {
				configMap[key] = "******"
				break
			}
		}
	}
}

// GetViper 返回最近一次 Load 使用的 Viper 实例.
func GetViper() *viper.Viper {
	lock.Lock()
	defer lock.Unlock()
	return vInstance
}
