// Package context 拓展上下文功能，在请求链路中传递已认证用户、请求 ID 与追踪信息.
// 存储客户端不放入上下文，由 app 显式构造后注入各服务.
package context

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

type ContextKey string

const (
	UserIDKey    ContextKey = "userID"
	RequestIDKey ContextKey = "requestID"
)

// WithUserID 记录已通过会话校验的用户 ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// UserID 返回已认证用户 ID，未认证时为空串.
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(UserIDKey).(string); ok {
		return v
	}

	return ""
}

// WithRequestID 记录请求 ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID 返回请求 ID.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		return v
	}

	return ""
}

// TraceID 返回当前 span 的 trace id，没有活动 span 时退回请求 ID.
func TraceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return RequestID(ctx)
}

// WithTraceContext 创建带有追踪上下文的logger.
func WithTraceContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	lc := logger.With()

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		lc = lc.
			Str("trace_id", span.SpanContext().TraceID().String()).
			Str("span_id", span.SpanContext().SpanID().String())
	}

	if id := RequestID(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}

	return lc.Logger()
}
