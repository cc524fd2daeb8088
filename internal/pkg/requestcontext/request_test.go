package requestcontext

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestFromEchoContext_UsesIncomingHeaders(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-1")
	req.Header.Set(TraceIDHeader, "trace-1")
	c := e.NewContext(req, httptest.NewRecorder())

	reqCtx := FromEchoContext(c)
	ctx := WithRequestContext(context.Background(), reqCtx)

	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, "trace-1", TraceID(ctx))
}

func TestFromEchoContext_GeneratesIDs(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	reqCtx := FromEchoContext(c)
	assert.Len(t, reqCtx.RequestID, 36)
	assert.Len(t, reqCtx.TraceID, 36)
}

func TestTraceID_FreshWhenMissing(t *testing.T) {
	a := TraceID(context.Background())
	b := TraceID(context.Background())
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
	assert.Empty(t, RequestID(context.Background()))
}
