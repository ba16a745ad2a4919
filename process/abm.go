package process

// ABM 算术布朗运动: dS = mu*dt + sigma*dW.
type ABM struct {
	base
	mu    float64 // 漂移
	sigma float64 // 波动
	s0    float64 // 初始值
}

// NewABM 创建算术布朗运动.
func NewABM(mu, sigma, s0 float64, grid Grid, opts ...Option) (*ABM, error) {
	if err := validateCoefficients(
		coefficient{"mu", mu},
		coefficient{"sigma", sigma},
		coefficient{"s0", s0},
	); err != nil {
		return nil, err
	}
	b, err := newBase(KindABM, grid, opts)
	if err != nil {
		return nil, err
	}
	return &ABM{base: b, mu: mu, sigma: sigma, s0: s0}, nil
}

// Simulate 生成路径. 取值不受限制, 可以为负.
func (p *ABM) Simulate() Matrix {
	return p.run(Scheme{
		Init: constant(p.s0),
		Last: p.grid.Steps,
		Step: func(_ int, prev, dt, dW float64) float64 {
			return prev + p.mu*dt + p.sigma*dW
		},
	})
}
