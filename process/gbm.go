package process

import "math"

// GeometricBrownianMotion 几何布朗运动: dS = mu*S*dt + sigma*S*dW.
type GeometricBrownianMotion struct {
	base
	mu    float64 // 漂移
	sigma float64 // 波动
	s0    float64
}

// NewGeometricBrownianMotion 创建 GBM.
func NewGeometricBrownianMotion(mu, sigma, s0 float64, grid Grid, opts ...Option) (*GeometricBrownianMotion, error) {
	if err := validateCoefficients(
		coefficient{"mu", mu},
		coefficient{"sigma", sigma},
		coefficient{"s0", s0},
	); err != nil {
		return nil, err
	}
	b, err := newBase(KindGBM, grid, opts)
	if err != nil {
		return nil, err
	}
	return &GeometricBrownianMotion{base: b, mu: mu, sigma: sigma, s0: s0}, nil
}

// Simulate 按对数形式递推: S_j = S_{j-1} * exp((mu - sigma^2/2)*dt + sigma*dW).
func (p *GeometricBrownianMotion) Simulate() Matrix {
	// 预计算常量.
	drift := (p.mu - 0.5*p.sigma*p.sigma) * p.grid.DT()
	return p.run(Scheme{
		Init: constant(p.s0),
		Last: p.grid.Steps,
		Step: func(_ int, prev, _, dW float64) float64 {
			return prev * math.Exp(drift+p.sigma*dW)
		},
	})
}
