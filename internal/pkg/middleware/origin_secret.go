package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arcbank/transactions-service/internal/pkg/logger"
)

const (
	OriginSecretHeader = "x-origin-secret"
	// DefaultOriginSecret is the placeholder shipped in configuration; it disables the check
	DefaultOriginSecret = "change-me"
)

// OriginSecret rejects requests that did not come through the bank's gateway.
// Health endpoints are always reachable
func OriginSecret(expected string) echo.MiddlewareFunc {
	enabled := expected != "" && expected != DefaultOriginSecret

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enabled || strings.HasPrefix(c.Request().URL.Path, "/health") {
				return next(c)
			}

			got := c.Request().Header.Get(OriginSecretHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
				logger.Warn("Request rejected by origin check",
					logger.String("path", c.Request().URL.Path),
					logger.String("client_ip", c.RealIP()))
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": "Acceso denegado: origen no autorizado",
				})
			}
			return next(c)
		}
	}
}
