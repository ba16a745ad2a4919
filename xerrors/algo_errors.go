package xerrors

var (
	// ErrInvalidGrid 时间网格参数非法。
	ErrInvalidGrid = New(ErrInvalidArg, 400101, "invalid grid", "paths must be >= 0, steps >= 1, horizon > 0", nil)
	// ErrInvalidParameter 过程系数非法。
	ErrInvalidParameter = New(ErrInvalidArg, 400102, "invalid parameter", "process coefficients must be finite", nil)
	// ErrUnknownProcess 未知的过程类型。
	ErrUnknownProcess = New(ErrInvalidArg, 400103, "unknown process", "supported kinds: abm, bridge, feller, gbm, ou", nil)
	// ErrInvalidIncrement 未知的增量模式。
	ErrInvalidIncrement = New(ErrInvalidArg, 400104, "invalid increment mode", "supported modes: uniform, normal", nil)
	// ErrInvalidSource 未知的随机源类型。
	ErrInvalidSource = New(ErrInvalidArg, 400105, "invalid random source", "supported sources: os, seeded", nil)
	// ErrSimulationCanceled 模拟在开始前被取消。
	ErrSimulationCanceled = New(ErrDeadlineExceeded, 504001, "simulation canceled", "context done before the run started", nil)
)
