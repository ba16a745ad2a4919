package process

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/stochastic/random"
)

func TestDiscretizeSharesOneGrid(t *testing.T) {
	g := grid(3, 7, 2.1)
	var seen []float64

	m := Discretize(g, Scheme{
		Init: constant(1),
		Last: g.Steps,
		Step: func(_ int, prev, dt, _ float64) float64 {
			seen = append(seen, dt)
			return prev
		},
	}, random.NewSequenceSource(0.5), UniformIncrement)

	require.Len(t, seen, g.Paths*g.Steps)
	for _, dt := range seen {
		assert.Equal(t, 2.1/7, dt)
	}
	assert.Equal(t, 3, m.Paths())
	assert.Equal(t, 7, m.Steps())
}

func TestDiscretizeDrawsOncePerStep(t *testing.T) {
	g := grid(4, 5, 1)
	src := &countingSource{inner: random.NewSeededSource(1)}
	var increments []float64

	Discretize(g, Scheme{
		Init: constant(0),
		Last: g.Steps,
		Step: func(_ int, prev, _, dW float64) float64 {
			increments = append(increments, dW)
			return prev + dW
		},
	}, src, UniformIncrement)

	assert.Equal(t, 20, src.draws)

	// 相邻增量不应重复使用同一抽样.
	distinct := map[float64]struct{}{}
	for _, dW := range increments {
		distinct[dW] = struct{}{}
	}
	assert.Len(t, distinct, len(increments))
}

func TestDiscretizeStepIndexAndFinish(t *testing.T) {
	g := grid(1, 4, 1)
	var idx []int

	m := Discretize(g, Scheme{
		Init: constant(0),
		Last: 2,
		Step: func(j int, prev, _, _ float64) float64 {
			idx = append(idx, j)
			return prev + 1
		},
		Finish: func(path []float64) { path[4] = 9 },
	}, random.NewSequenceSource(), UniformIncrement)

	assert.Equal(t, []int{1, 2}, idx)
	assert.Equal(t, []float64{0, 1, 2, 0, 9}, m.Path(0))
}

func TestDiscretizeZeroPaths(t *testing.T) {
	m := Discretize(grid(0, 3, 1), Scheme{Init: constant(1), Last: 3, Step: func(_ int, p, _, _ float64) float64 { return p }},
		random.NewSequenceSource(), UniformIncrement)

	assert.Empty(t, m)
	assert.Zero(t, m.Steps())
}

func TestIncrements(t *testing.T) {
	sqrtDT := math.Sqrt(0.25)

	assert.Equal(t, 0.5*sqrtDT, UniformIncrement(random.NewSequenceSource(0.5), sqrtDT))
	assert.Zero(t, NormalIncrement(random.NewSequenceSource(0, 0.3), sqrtDT))
}

func TestRowsDoNotAlias(t *testing.T) {
	p, err := NewABM(0, 0, 1, grid(2, 3, 1), sequence(0))
	require.NoError(t, err)

	m := p.Simulate()
	m[0] = append(m[0], 42)
	assert.Len(t, m[1], 4)
	assert.Equal(t, []float64{1, 1, 1, 1}, m[1])
}
