package process

import "github.com/shopspring/decimal"

// Matrix 模拟结果. 第 i 行为第 i 条路径, 第 j 列为 t = j*dt 时刻的取值.
// 每次调用新分配, 返回后归调用方独占.
type Matrix [][]float64

// Paths 返回路径条数.
func (m Matrix) Paths() int {
	return len(m)
}

// Steps 返回离散步数. 空矩阵返回 0.
func (m Matrix) Steps() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0]) - 1
}

// Path 返回第 i 条路径.
func (m Matrix) Path(i int) []float64 {
	return m[i]
}

// Column 返回所有路径在第 j 列的取值.
func (m Matrix) Column(j int) []float64 {
	col := make([]float64, len(m))
	for i, path := range m {
		col[i] = path[j]
	}
	return col
}

// Terminal 返回所有路径的终点值.
func (m Matrix) Terminal() []float64 {
	return m.Column(m.Steps())
}

// DecimalPath 将第 i 条路径转换为 decimal 序列, 供定价等使用 decimal 的下游.
func (m Matrix) DecimalPath(i int) []decimal.Decimal {
	path := m[i]
	out := make([]decimal.Decimal, len(path))
	for j, v := range path {
		out[j] = decimal.NewFromFloat(v)
	}
	return out
}
