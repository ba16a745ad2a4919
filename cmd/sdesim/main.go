// Command sdesim 按配置文件批量生成随机过程的离散路径.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wyfcoding/stochastic/bootstrap"
	"github.com/wyfcoding/stochastic/simulation"
	"github.com/wyfcoding/stochastic/xerrors"
)

const serviceName = "sdesim"

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(xerrors.ExitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          serviceName,
		Short:        "Generate discretized sample paths of stochastic processes",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), serviceName, version)
		},
	}
}

func newRunCmd() *cobra.Command {
	var (
		configPath  string
		metricsPort string
		timeout     time.Duration
		watch       bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every job declared in the config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			return run(ctx, configPath, metricsPort, watch)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "configs/sdesim.toml", "path to config file")
	cmd.Flags().StringVar(&metricsPort, "metrics-port", "", "expose metrics on this port until the batch finishes")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "abort jobs not yet started after this duration")
	cmd.Flags().BoolVar(&watch, "watch", false, "hot reload log level from the config file")
	return cmd
}

func run(ctx context.Context, configPath, metricsPort string, watch bool) error {
	b := bootstrap.New(serviceName, version)
	b.MetricsPort = metricsPort
	if err := b.Initialize(configPath, watch); err != nil {
		return err
	}
	defer b.Shutdown()

	b.SetupTracing()
	m := b.SetupMetrics()

	jobs, err := simulation.BuildJobs(b.Config)
	if err != nil {
		b.Logger.ErrorContext(ctx, "failed to build jobs", "error", err)
		return err
	}

	runner := simulation.NewRunner(
		simulation.WithLogger(b.Logger.Logger),
		simulation.WithMetrics(m),
		simulation.WithConcurrency(b.Config.Simulation.Concurrency),
	)

	results, err := runner.RunBatch(ctx, jobs)
	if err != nil {
		return err
	}

	for _, res := range results {
		args := []any{
			"job", res.Job,
			"run_id", res.RunID,
			"process", res.Process,
			"paths", res.Paths.Paths(),
			"steps", res.Grid.Steps,
			"duration", res.Duration,
		}
		if res.Paths.Paths() > 0 {
			first := res.Paths.DecimalPath(0)
			args = append(args, "first_terminal", first[len(first)-1].StringFixed(6))
		}
		if res.TraceID != "" {
			args = append(args, "trace_id", res.TraceID)
		}
		b.Logger.InfoContext(ctx, "job summary", args...)
	}
	return nil
}
