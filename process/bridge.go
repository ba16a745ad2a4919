package process

// BrownianBridge 布朗桥: t=0 时固定为 alpha, t=Horizon 时固定为 beta.
type BrownianBridge struct {
	base
	alpha float64 // 起点
	beta  float64 // 终点
	sigma float64
}

// NewBrownianBridge 创建布朗桥.
func NewBrownianBridge(alpha, beta, sigma float64, grid Grid, opts ...Option) (*BrownianBridge, error) {
	if err := validateCoefficients(
		coefficient{"alpha", alpha},
		coefficient{"beta", beta},
		coefficient{"sigma", sigma},
	); err != nil {
		return nil, err
	}
	b, err := newBase(KindBridge, grid, opts)
	if err != nil {
		return nil, err
	}
	return &BrownianBridge{base: b, alpha: alpha, beta: beta, sigma: sigma}, nil
}

// Simulate 生成路径.
//
// 对 j = 1..Steps-1:
//
//	S_j = S_{j-1} + (beta - S_{j-1}) / (Steps - j + 1) + sigma*dW
//
// 拉回项的分母不乘 dt. 最后一列不参与递推, 直接覆写为 beta.
func (p *BrownianBridge) Simulate() Matrix {
	n := p.grid.Steps
	return p.run(Scheme{
		Init: constant(p.alpha),
		Last: n - 1,
		Step: func(j int, prev, _, dW float64) float64 {
			return prev + (p.beta-prev)/float64(n-j+1) + p.sigma*dW
		},
		Finish: func(path []float64) {
			path[n] = p.beta
		},
	})
}
