package process

// Process 是可模拟的随机过程.
type Process interface {
	// Name 返回过程类型名, 用于日志与指标标签.
	Name() string
	// Grid 返回构造时设定的时间网格.
	Grid() Grid
	// Simulate 生成一个新的路径矩阵. 每次调用独立获取随机源.
	Simulate() Matrix
}

// 过程类型名.
const (
	KindABM    = "abm"
	KindBridge = "bridge"
	KindFeller = "feller"
	KindGBM    = "gbm"
	KindOU     = "ou"
)

// base 承载所有过程共用的网格与选项.
type base struct {
	name string
	grid Grid
	opts options
}

func newBase(name string, grid Grid, opts []Option) (base, error) {
	if err := grid.Validate(); err != nil {
		return base{}, err
	}
	return base{name: name, grid: grid, opts: newOptions(opts)}, nil
}

func (b base) Name() string { return b.name }

func (b base) Grid() Grid { return b.grid }

// run 获取本次调用专属的随机源并执行离散化.
func (b base) run(s Scheme) Matrix {
	src := b.opts.source()
	return Discretize(b.grid, s, src, b.opts.increment)
}

var (
	_ Process = (*ABM)(nil)
	_ Process = (*BrownianBridge)(nil)
	_ Process = (*Feller)(nil)
	_ Process = (*GeometricBrownianMotion)(nil)
	_ Process = (*OrnsteinUhlenbeck)(nil)
)
