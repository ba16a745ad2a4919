// Package random 提供路径模拟使用的随机增量源.
//
// 默认源直接读取操作系统熵池 (crypto/rand)，不可复现.
// 需要确定性回放的场景 (回归测试、问题复现) 注入 SeededSource 或 SequenceSource.
package random

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand/v2"
)

// Source 提供 [0, 1) 区间内的独立均匀抽样.
// 实现无需并发安全：每次模拟调用独占一个实例.
type Source interface {
	Float64() float64
}

// Factory 在每次模拟调用开始时获取一个新的随机源.
type Factory func() Source

// osSource 基于操作系统熵池.
type osSource struct{}

// NewOSSource 返回默认的不可复现随机源.
func NewOSSource() Source {
	return osSource{}
}

// Float64 读取 53 位随机数并映射到 [0, 1).
func (osSource) Float64() float64 {
	var b [8]byte
	// Read 不会返回错误; 熵池不可用时进程直接终止, 绝不退化为伪随机.
	_, _ = crypto_rand.Read(b[:])
	u := binary.LittleEndian.Uint64(b[:]) >> 11
	return float64(u) / (1 << 53)
}

type seededSource struct {
	r *rand.Rand
}

// NewSeededSource 返回基于 PCG 的可复现随机源.
func NewSeededSource(seed uint64) Source {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) Float64() float64 { return s.r.Float64() }

// SeededFactory 每次获取都以相同种子重新初始化，同参数的调用产出相同路径.
func SeededFactory(seed uint64) Factory {
	return func() Source {
		return NewSeededSource(seed)
	}
}

// SequenceSource 循环返回固定序列，用于测试.
type SequenceSource struct {
	values []float64
	next   int
}

// NewSequenceSource 创建固定序列随机源. 空序列恒返回 0.
func NewSequenceSource(values ...float64) *SequenceSource {
	return &SequenceSource{values: values}
}

// Float64 返回序列中的下一个值.
func (s *SequenceSource) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}

// Normal 使用 Box-Muller 变换从两个均匀抽样得到标准正态抽样.
func Normal(src Source) float64 {
	u1 := 1 - src.Float64() // (0, 1]，避免 log(0)
	u2 := src.Float64()
	return math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
}
