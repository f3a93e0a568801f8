package logger

import (
	"context"
	"log/slog"

	"fitplan_backend/pkg/contextkeys"
)

// fromContext returns the global logger enriched with the request id when the
// middleware has put one on the context.
func fromContext(ctx context.Context) *slog.Logger {
	l := GetLogger()
	if requestID, ok := ctx.Value(contextkeys.RequestIDKey).(string); ok && requestID != "" {
		l = l.With("request_id", requestID)
	}
	return l
}

func CtxDebug(ctx context.Context, msg string, args ...any) {
	fromContext(ctx).Debug(msg, args...)
}

func CtxInfo(ctx context.Context, msg string, args ...any) {
	fromContext(ctx).Info(msg, args...)
}

func CtxWarn(ctx context.Context, msg string, args ...any) {
	fromContext(ctx).Warn(msg, args...)
}

func CtxError(ctx context.Context, msg string, args ...any) {
	fromContext(ctx).Error(msg, args...)
}

func CtxWithError(ctx context.Context, msg string, err error, args ...any) {
	fromContext(ctx).With("error", err.Error()).Error(msg, args...)
}
