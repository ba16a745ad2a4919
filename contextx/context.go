// Package contextx 提供了在 context.Context 中注入与提取模拟运行上下文（运行 ID、作业名）的工具函数。
// 它通过使用私有类型作为 Key，有效防止了跨包的 Key 冲突。
package contextx

import (
	"context"
)

type contextKey int

const (
	RunIDKey contextKey = iota // 单次模拟运行的唯一标识 Key。
	JobKey                     // 配置中的作业名 Key。
)

// AllKeys 返回所有运行上下文 Key，顺序即日志字段顺序。
var AllKeys = []contextKey{
	RunIDKey,
	JobKey,
}

// KeyNames 映射 Key 到日志字段名。
var KeyNames = map[contextKey]string{
	RunIDKey: "run_id",
	JobKey:   "job",
}

// Field 是一个日志字段。
type Field struct {
	Key   string
	Value string
}

// WithRunID 将运行 ID 注入到 Context 中。
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID 从 Context 中提取运行 ID。
func GetRunID(ctx context.Context) string {
	return get(ctx, RunIDKey)
}

// WithJob 将作业名注入到 Context 中。
func WithJob(ctx context.Context, job string) context.Context {
	return context.WithValue(ctx, JobKey, job)
}

// GetJob 从 Context 中提取作业名。
func GetJob(ctx context.Context) string {
	return get(ctx, JobKey)
}

// Fields 按 AllKeys 顺序返回 Context 中存在的字段，供日志 Handler 注入。
func Fields(ctx context.Context) []Field {
	var fields []Field
	for _, key := range AllKeys {
		if val := get(ctx, key); val != "" {
			fields = append(fields, Field{Key: KeyNames[key], Value: val})
		}
	}
	return fields
}

func get(ctx context.Context, key contextKey) string {
	if val, ok := ctx.Value(key).(string); ok {
		return val
	}
	return ""
}
