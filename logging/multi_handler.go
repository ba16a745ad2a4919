package logging

import (
	"context"
	"errors"
	"log/slog"
	"slices"
)

// fanoutHandler 将同一条记录分发到多个目标（文件 + 控制台）。
// 单个目标写入失败不影响其余目标，错误合并返回。
type fanoutHandler struct {
	handlers []slog.Handler
}

func newMultiHandler(handlers ...slog.Handler) slog.Handler {
	return &fanoutHandler{handlers: handlers}
}

func (h *fanoutHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return slices.ContainsFunc(h.handlers, func(hd slog.Handler) bool {
		return hd.Enabled(ctx, lvl)
	})
}

func (h *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, hd := range h.handlers {
		if !hd.Enabled(ctx, record.Level) {
			continue
		}
		errs = append(errs, hd.Handle(ctx, record.Clone()))
	}
	return errors.Join(errs...)
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(hd slog.Handler) slog.Handler { return hd.WithAttrs(attrs) })
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	return h.derive(func(hd slog.Handler) slog.Handler { return hd.WithGroup(name) })
}

func (h *fanoutHandler) derive(fn func(slog.Handler) slog.Handler) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, hd := range h.handlers {
		next[i] = fn(hd)
	}
	return &fanoutHandler{handlers: next}
}
