package simulation

import (
	"github.com/wyfcoding/stochastic/config"
	"github.com/wyfcoding/stochastic/process"
	"github.com/wyfcoding/stochastic/random"
	"github.com/wyfcoding/stochastic/xerrors"
)

// Options 将全局模拟配置转换为过程选项.
func Options(cfg config.SimulationConfig) ([]process.Option, error) {
	var opts []process.Option

	switch cfg.Increment {
	case "", "uniform":
	case "normal":
		opts = append(opts, process.WithNormalIncrements())
	default:
		return nil, xerrors.Derive(xerrors.ErrInvalidIncrement, "increment=%q", cfg.Increment)
	}

	switch cfg.Source {
	case "", "os":
		opts = append(opts, process.WithSource(random.NewOSSource))
	case "seeded":
		opts = append(opts, process.WithSource(random.SeededFactory(cfg.Seed)))
	default:
		return nil, xerrors.Derive(xerrors.ErrInvalidSource, "source=%q", cfg.Source)
	}

	return opts, nil
}

// Build 根据作业配置构造对应的过程.
func Build(job config.JobConfig, opts ...process.Option) (process.Process, error) {
	grid := process.Grid{Paths: job.Paths, Steps: job.Steps, Horizon: job.Horizon}

	var (
		p   process.Process
		err error
	)
	switch job.Kind {
	case process.KindABM:
		p, err = process.NewABM(job.Mu, job.Sigma, job.S0, grid, opts...)
	case process.KindBridge:
		p, err = process.NewBrownianBridge(job.Alpha, job.Beta, job.Sigma, grid, opts...)
	case process.KindFeller:
		p, err = process.NewFeller(job.Alpha, job.Mu, job.Sigma, job.S0, grid, opts...)
	case process.KindGBM:
		p, err = process.NewGeometricBrownianMotion(job.Mu, job.Sigma, job.S0, grid, opts...)
	case process.KindOU:
		p, err = process.NewOrnsteinUhlenbeck(job.Theta, job.Mu, job.Sigma, job.S0, grid, opts...)
	default:
		return nil, xerrors.Derive(xerrors.ErrUnknownProcess, "job=%q kind=%q", job.Name, job.Kind).
			WithContext("job", job.Name)
	}
	if err != nil {
		return nil, xerrors.Wrap(err, xerrors.ErrInvalidArg, "build job "+job.Name).
			WithContext("job", job.Name).
			WithContext("kind", job.Kind)
	}
	return p, nil
}

// BuildJobs 构造配置中的全部作业.
func BuildJobs(cfg *config.Config) ([]Job, error) {
	opts, err := Options(cfg.Simulation)
	if err != nil {
		return nil, err
	}

	jobs := make([]Job, 0, len(cfg.Jobs))
	for _, jc := range cfg.Jobs {
		p, err := Build(jc, opts...)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, Job{Name: jc.Name, Process: p})
	}
	return jobs, nil
}
