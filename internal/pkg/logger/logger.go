package logger

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AddFields adds fields to the logger in context and returns new context
func AddFields(ctx context.Context, fields ...zap.Field) context.Context {
	logger := ctxzap.Extract(ctx)
	return ctxzap.ToContext(ctx, logger.With(fields...))
}

// WithAction adds "action" field to context logger to describe the flow
func WithAction(ctx context.Context, action string) context.Context {
	logger := ctxzap.Extract(ctx)
	return ctxzap.ToContext(ctx, logger.With(zap.String("action", action)))
}

type traceIDKey struct{}

// WithTraceID stores the trace id in ctx and tags the context logger with it
func WithTraceID(ctx context.Context, traceID string) context.Context {
	ctx = context.WithValue(ctx, traceIDKey{}, traceID)
	return AddFields(ctx, zap.String("trace_id", traceID))
}

// TraceID returns the trace id stored by WithTraceID, or an empty string
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

type requestTraceKey struct{}

// WithRequestTrace stores the caller-facing request trace id, which may come
// from the client, and tags the context logger with it
func WithRequestTrace(ctx context.Context, traceID string) context.Context {
	ctx = context.WithValue(ctx, requestTraceKey{}, traceID)
	return AddFields(ctx, zap.String("request_trace_id", traceID))
}

// RequestTrace returns the id stored by WithRequestTrace, or an empty string
func RequestTrace(ctx context.Context) string {
	id, _ := ctx.Value(requestTraceKey{}).(string)
	return id
}
