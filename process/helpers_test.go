package process

import "github.com/wyfcoding/stochastic/random"

// countingSource 记录抽样次数, 并循环返回给定序列.
type countingSource struct {
	inner random.Source
	draws int
}

func (c *countingSource) Float64() float64 {
	c.draws++
	return c.inner.Float64()
}

// sequence 返回每次都从头开始的固定序列工厂.
func sequence(values ...float64) Option {
	return WithSource(func() random.Source {
		return random.NewSequenceSource(values...)
	})
}

func grid(paths, steps int, horizon float64) Grid {
	return Grid{Paths: paths, Steps: steps, Horizon: horizon}
}
