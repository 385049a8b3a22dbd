// log содержит контекстные хелперы для передачи request-scoped
// логгера (*slog.Logger) через context.Context между слоями сервиса.
package log

import (
	"context"
	"log/slog"
)

type loggerKey struct{}

// Into возвращает контекст с привязанным логгером.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// From извлекает логгер из контекста.
// Если логгер не положен или значение повреждено, возвращает slog.Default().
func From(ctx context.Context) *slog.Logger {
	if v := ctx.Value(loggerKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}

	return slog.Default()
}
