package requestcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey type for context keys to avoid collisions
type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	TraceIDKey   ContextKey = "trace_id"
)

// TraceIDHeader is the header carrying the trace id across banks
const TraceIDHeader = "X-Trace-ID"

// RequestContext holds request-specific information
type RequestContext struct {
	RequestID string
	TraceID   string
	StartTime time.Time
}

// WithRequestContext adds request context to the given context
func WithRequestContext(ctx context.Context, reqCtx *RequestContext) context.Context {
	ctx = context.WithValue(ctx, RequestIDKey, reqCtx.RequestID)
	return context.WithValue(ctx, TraceIDKey, reqCtx.TraceID)
}

// FromEchoContext reads ids from the request, generating the missing ones
func FromEchoContext(c echo.Context) *RequestContext {
	reqCtx := &RequestContext{StartTime: time.Now()}

	reqCtx.RequestID = c.Request().Header.Get(echo.HeaderXRequestID)
	if reqCtx.RequestID == "" {
		reqCtx.RequestID = uuid.NewString()
	}

	reqCtx.TraceID = c.Request().Header.Get(TraceIDHeader)
	if reqCtx.TraceID == "" {
		reqCtx.TraceID = uuid.NewString()
	}

	return reqCtx
}

// TraceID returns the trace id carried by ctx, or a fresh one
func TraceID(ctx context.Context) string {
	if id, ok := ctx.Value(TraceIDKey).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// RequestID returns the request id carried by ctx
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
