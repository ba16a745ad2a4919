// Package tracing 提供模拟运行的 OpenTelemetry 链路追踪.
//
// 每次 Runner.Run 对应一个 "simulation.run" Span, RunBatch 对应其父 Span "simulation.batch".
package tracing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wyfcoding/stochastic/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentation = "github.com/wyfcoding/stochastic/simulation"

// Span 名称.
const (
	SpanRun   = "simulation.run"
	SpanBatch = "simulation.batch"
)

// 模拟相关的 Span 属性键.
const (
	KeyProcess = attribute.Key("sim.process")
	KeyPaths   = attribute.Key("sim.paths")
	KeySteps   = attribute.Key("sim.steps")
	KeyHorizon = attribute.Key("sim.horizon")
	KeyDT      = attribute.Key("sim.dt")
	KeyRunID   = attribute.Key("sim.run_id")
	KeyJob     = attribute.Key("sim.job")
	KeyJobs    = attribute.Key("sim.jobs")
)

// InitTracer 按配置安装全局 TracerProvider. 未启用时不做任何事, 返回空的关闭函数.
func InitTracer(cfg config.TracingConfig) (shutdown func(context.Context) error, err error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	ctx := context.Background()
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create otlp exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceNameKey.String(cfg.ServiceName)))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SampleRatio)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	slog.Info("tracer provider initialized", "service", cfg.ServiceName, "endpoint", cfg.OTLPEndpoint, "ratio", cfg.SampleRatio)
	return tp.Shutdown, nil
}

// sampler 比例为 0 视为未配置, 全量采样.
func sampler(ratio float64) sdktrace.Sampler {
	if ratio <= 0 || ratio >= 1 {
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

// RunAttrs 描述一次模拟调用.
type RunAttrs struct {
	Process string
	Job     string
	Paths   int
	Steps   int
	Horizon float64
	DT      float64
}

func (a RunAttrs) attributes() []attribute.KeyValue {
	kv := []attribute.KeyValue{
		KeyProcess.String(a.Process),
		KeyPaths.Int(a.Paths),
		KeySteps.Int(a.Steps),
		KeyHorizon.Float64(a.Horizon),
		KeyDT.Float64(a.DT),
	}
	if a.Job != "" {
		kv = append(kv, KeyJob.String(a.Job))
	}
	return kv
}

// StartRun 为一次模拟调用开启 Span. 调用方必须以 EndRun 结束它.
//
//nolint:spancheck // 生命周期由 EndRun 管理.
func StartRun(ctx context.Context, a RunAttrs) (context.Context, trace.Span) {
	return otel.Tracer(instrumentation).Start(ctx, SpanRun,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(a.attributes()...),
	)
}

// StartBatch 为 RunBatch 开启父 Span.
//
//nolint:spancheck // 生命周期由 EndRun 管理.
func StartBatch(ctx context.Context, jobs int) (context.Context, trace.Span) {
	return otel.Tracer(instrumentation).Start(ctx, SpanBatch, trace.WithAttributes(KeyJobs.Int(jobs)))
}

// SetRunID 把运行 ID 记录到当前 Span.
func SetRunID(ctx context.Context, runID string) {
	trace.SpanFromContext(ctx).SetAttributes(KeyRunID.String(runID))
}

// EndRun 根据 err 设置 Span 状态并结束它.
func EndRun(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// TraceID 返回 ctx 所在链路的追踪 ID, 不在链路中时返回空串.
func TraceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return ""
}
