package process

import "math"

// Feller 平方根过程 (CIR): dS = alpha*(mu - S)*dt + sigma*sqrt(S)*dW.
type Feller struct {
	base
	alpha float64 // 均值回归速度
	mu    float64 // 长期均值
	sigma float64
	s0    float64
}

// NewFeller 创建 Feller 平方根过程.
func NewFeller(alpha, mu, sigma, s0 float64, grid Grid, opts ...Option) (*Feller, error) {
	if err := validateCoefficients(
		coefficient{"alpha", alpha},
		coefficient{"mu", mu},
		coefficient{"sigma", sigma},
		coefficient{"s0", s0},
	); err != nil {
		return nil, err
	}
	b, err := newBase(KindFeller, grid, opts)
	if err != nil {
		return nil, err
	}
	return &Feller{base: b, alpha: alpha, mu: mu, sigma: sigma, s0: s0}, nil
}

// Simulate 生成路径.
// 上一步为负时扩散项的平方根取 0; S_j 本身不做截断, Euler 格式下允许出现负值.
func (p *Feller) Simulate() Matrix {
	return p.run(Scheme{
		Init: constant(p.s0),
		Last: p.grid.Steps,
		Step: func(_ int, prev, dt, dW float64) float64 {
			return prev + p.alpha*(p.mu-prev)*dt + p.sigma*sqrtClamped(prev)*dW
		},
	})
}

func sqrtClamped(v float64) float64 {
	if v >= 0 {
		return math.Sqrt(v)
	}
	return 0
}
