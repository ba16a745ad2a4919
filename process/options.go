package process

import "github.com/wyfcoding/stochastic/random"

type options struct {
	source    random.Factory
	increment IncrementFunc
}

// Option 定义过程的可选配置.
type Option func(*options)

// WithSource 替换随机源工厂. 每次 Simulate 调用获取一个新源.
func WithSource(factory random.Factory) Option {
	return func(o *options) {
		if factory != nil {
			o.source = factory
		}
	}
}

// WithNormalIncrements 使用标准正态抽样构造 Wiener 增量, 替代默认的均匀抽样.
func WithNormalIncrements() Option {
	return func(o *options) {
		o.increment = NormalIncrement
	}
}

func newOptions(opts []Option) options {
	o := options{
		source:    random.NewOSSource,
		increment: UniformIncrement,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
