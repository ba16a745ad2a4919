package process

import (
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/wyfcoding/stochastic/xerrors"
)

var validate = validator.New()

// Grid 模拟控制参数: 路径数、步数与时间跨度.
// dt = Horizon / Steps, 每次调用计算一次, 所有路径共享.
type Grid struct {
	Paths   int     `validate:"gte=0"`
	Steps   int     `validate:"gte=1"`
	Horizon float64 `validate:"gt=0"`
}

// DT 返回时间步长.
func (g Grid) DT() float64 {
	return g.Horizon / float64(g.Steps)
}

// Validate 校验网格参数.
func (g Grid) Validate() error {
	if err := validate.Struct(g); err != nil {
		return xerrors.Derive(xerrors.ErrInvalidGrid, "paths=%d steps=%d horizon=%g: %v", g.Paths, g.Steps, g.Horizon, err)
	}
	if math.IsInf(g.Horizon, 0) {
		return xerrors.Derive(xerrors.ErrInvalidGrid, "horizon must be finite")
	}
	return nil
}

// coefficient 为过程系数的名称与取值, 用于统一的有限性校验.
type coefficient struct {
	name  string
	value float64
}

func validateCoefficients(coeffs ...coefficient) error {
	for _, c := range coeffs {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return xerrors.Derive(xerrors.ErrInvalidParameter, "%s=%g", c.name, c.value).
				WithContext("coefficient", c.name)
		}
	}
	return nil
}
