package process

// OrnsteinUhlenbeck OU 过程: dS = theta*(mu - S)*dt + sigma*dW.
type OrnsteinUhlenbeck struct {
	base
	theta float64 // 均值回归速度
	mu    float64 // 长期均值
	sigma float64
	s0    float64
}

// NewOrnsteinUhlenbeck 创建 OU 过程.
func NewOrnsteinUhlenbeck(theta, mu, sigma, s0 float64, grid Grid, opts ...Option) (*OrnsteinUhlenbeck, error) {
	if err := validateCoefficients(
		coefficient{"theta", theta},
		coefficient{"mu", mu},
		coefficient{"sigma", sigma},
		coefficient{"s0", s0},
	); err != nil {
		return nil, err
	}
	b, err := newBase(KindOU, grid, opts)
	if err != nil {
		return nil, err
	}
	return &OrnsteinUhlenbeck{base: b, theta: theta, mu: mu, sigma: sigma, s0: s0}, nil
}

// Simulate S_j = S_{j-1} + theta*(mu - S_{j-1})*dt + sigma*dW.
func (p *OrnsteinUhlenbeck) Simulate() Matrix {
	return p.run(Scheme{
		Init: constant(p.s0),
		Last: p.grid.Steps,
		Step: func(_ int, prev, dt, dW float64) float64 {
			return prev + p.theta*(p.mu-prev)*dt + p.sigma*dW
		},
	})
}
