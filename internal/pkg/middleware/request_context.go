package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/arcbank/transactions-service/internal/pkg/requestcontext"
)

// RequestContextMiddleware stores request and trace ids on the request context
// and echoes them back as response headers
func RequestContextMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqCtx := requestcontext.FromEchoContext(c)

			ctx := requestcontext.WithRequestContext(c.Request().Context(), reqCtx)
			c.SetRequest(c.Request().WithContext(ctx))

			c.Response().Header().Set(echo.HeaderXRequestID, reqCtx.RequestID)
			c.Response().Header().Set(requestcontext.TraceIDHeader, reqCtx.TraceID)

			return next(c)
		}
	}
}
