// Package simulation 在纯计算的 process 引擎之外提供运行期能力:
// 运行 ID、链路追踪、结构化日志、Prometheus 指标以及批量作业的并发执行.
package simulation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wyfcoding/stochastic/contextx"
	"github.com/wyfcoding/stochastic/idgen"
	"github.com/wyfcoding/stochastic/metrics"
	"github.com/wyfcoding/stochastic/process"
	"github.com/wyfcoding/stochastic/tracing"
	"github.com/wyfcoding/stochastic/xerrors"
)

const runIDLength = 16

// Result 单次模拟调用的结果.
type Result struct {
	RunID    string
	TraceID  string // 未启用追踪时为空
	Job      string // 仅 RunBatch 填充
	Process  string
	Grid     process.Grid
	Paths    process.Matrix
	Duration time.Duration
}

// Runner 执行模拟调用并负责可观测性. 可并发使用.
type Runner struct {
	logger      *slog.Logger
	metrics     *metrics.Metrics
	concurrency int
}

// Option 定义 Runner 配置选项.
type Option func(*Runner)

// WithLogger 设置日志记录器.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics 注入指标采集器.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithConcurrency 设置 RunBatch 的最大并发作业数, <= 0 表示不限制.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		r.concurrency = n
	}
}

// NewRunner 创建 Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run 执行一次模拟调用. 调用开始前 ctx 已结束时返回 ErrSimulationCanceled;
// 调用一旦开始即同步运行至完成.
func (r *Runner) Run(ctx context.Context, p process.Process) (Result, error) {
	name := p.Name()
	grid := p.Grid()

	ctx, span := tracing.StartRun(ctx, tracing.RunAttrs{
		Process: name,
		Job:     contextx.GetJob(ctx),
		Paths:   grid.Paths,
		Steps:   grid.Steps,
		Horizon: grid.Horizon,
		DT:      grid.DT(),
	})

	if err := ctx.Err(); err != nil {
		r.observe(name, "canceled", 0, 0)
		canceled := xerrors.New(xerrors.ErrDeadlineExceeded, xerrors.ErrSimulationCanceled.Code,
			xerrors.ErrSimulationCanceled.Message, name, err)
		tracing.EndRun(span, canceled)
		return Result{}, canceled
	}

	runID, err := idgen.GenerateRandomID(runIDLength)
	if err != nil {
		r.observe(name, "error", 0, 0)
		wrapped := xerrors.WrapInternal(err, "generate run id")
		tracing.EndRun(span, wrapped)
		return Result{}, wrapped
	}
	ctx = contextx.WithRunID(ctx, runID)
	tracing.SetRunID(ctx, runID)

	r.logger.DebugContext(ctx, "simulation started", "process", name, "paths", grid.Paths, "steps", grid.Steps, "horizon", grid.Horizon)

	if r.metrics != nil {
		r.metrics.SimulationInflight.Inc()
		defer r.metrics.SimulationInflight.Dec()
	}

	start := time.Now()
	m := p.Simulate()
	elapsed := time.Since(start)
	tracing.EndRun(span, nil)

	r.observe(name, "ok", grid.Paths, elapsed)
	r.logger.InfoContext(ctx, "simulation finished",
		"process", name,
		"paths", grid.Paths,
		"steps", grid.Steps,
		"dt", grid.DT(),
		"duration", elapsed,
	)

	return Result{
		RunID:    runID,
		TraceID:  tracing.TraceID(ctx),
		Process:  name,
		Grid:     grid,
		Paths:    m,
		Duration: elapsed,
	}, nil
}

// Job 是一个带名称的待运行过程.
type Job struct {
	Name    string
	Process process.Process
}

// RunBatch 并发执行多个相互独立的模拟调用, 结果顺序与输入一致.
// 每个调用各自获取随机源; 单条路径内部不做并行.
// 任一作业失败时取消尚未开始的作业并返回第一个错误.
func (r *Runner) RunBatch(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))

	ctx, span := tracing.StartBatch(ctx, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}

	for i, job := range jobs {
		g.Go(func() error {
			res, err := r.Run(contextx.WithJob(gctx, job.Name), job.Process)
			if err != nil {
				return err
			}
			res.Job = job.Name
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			r.logger.WarnContext(ctx, "simulation batch canceled", "jobs", len(jobs), "error", err)
		} else {
			r.logger.ErrorContext(ctx, "simulation batch failed", "jobs", len(jobs), "error", err)
		}
		tracing.EndRun(span, err)
		return nil, err
	}
	tracing.EndRun(span, nil)
	return results, nil
}

func (r *Runner) observe(name, status string, paths int, elapsed time.Duration) {
	if r.metrics == nil {
		return
	}
	r.metrics.SimulationRunsTotal.WithLabelValues(name, status).Inc()
	if status != "ok" {
		return
	}
	r.metrics.SimulationPaths.WithLabelValues(name).Add(float64(paths))
	r.metrics.SimulationDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}
