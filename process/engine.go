// Package process 实现连续时间随机过程的离散路径生成.
//
// 所有过程共享同一个 Euler-Maruyama 时间步进引擎 (Discretize)，
// 各过程只提供初始化规则、单步递推公式以及可选的收尾调整.
package process

import (
	"math"

	"github.com/wyfcoding/stochastic/random"
)

// InitFunc 返回第 0 列的初始值.
type InitFunc func() float64

// StepFunc 由上一时刻的值计算第 j 列, dW 为本步的 Wiener 增量.
type StepFunc func(j int, prev, dt, dW float64) float64

// FinishFunc 在一条路径的递推完成后调整该路径, 例如终点钉扎.
type FinishFunc func(path []float64)

// IncrementFunc 根据随机源和 sqrt(dt) 构造 Wiener 增量.
type IncrementFunc func(src random.Source, sqrtDT float64) float64

// UniformIncrement dW = r * sqrt(dt), r 为 [0, 1) 均匀抽样. 默认增量规则.
func UniformIncrement(src random.Source, sqrtDT float64) float64 {
	return src.Float64() * sqrtDT
}

// NormalIncrement dW = z * sqrt(dt), z 为标准正态抽样.
func NormalIncrement(src random.Source, sqrtDT float64) float64 {
	return random.Normal(src) * sqrtDT
}

// Scheme 描述一个过程的离散格式.
type Scheme struct {
	Init   InitFunc
	Step   StepFunc
	Finish FinishFunc // 可选
	Last   int        // 递推的最后一列 (含), 取值 [0, Steps]
}

// Discretize 在均匀时间网格上生成 grid.Paths 条长度为 grid.Steps+1 的路径.
// 调用方负责保证 grid 合法; 此处不做校验.
func Discretize(grid Grid, s Scheme, src random.Source, incr IncrementFunc) Matrix {
	dt := grid.DT()
	sqrtDT := math.Sqrt(dt)
	cols := grid.Steps + 1

	m := make(Matrix, grid.Paths)
	buf := make([]float64, grid.Paths*cols)

	for i := range m {
		path := buf[i*cols : (i+1)*cols : (i+1)*cols]
		path[0] = s.Init()
		for j := 1; j <= s.Last; j++ {
			dW := incr(src, sqrtDT)
			path[j] = s.Step(j, path[j-1], dt, dW)
		}
		if s.Finish != nil {
			s.Finish(path)
		}
		m[i] = path
	}

	return m
}

func constant(v float64) InitFunc {
	return func() float64 { return v }
}
