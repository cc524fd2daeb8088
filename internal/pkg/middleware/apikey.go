package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arcbank/transactions-service/internal/utils"
)

const (
	APIKeyHeader = "X-API-Key"
)

// ValidateAPIKey accepts requests carrying one of keys. With no keys configured
// the check is off; a request without the header is let through so browser
// clients authenticated by the origin secret keep working
func ValidateAPIKey(keys []string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey := c.Request().Header.Get(APIKeyHeader)
			if len(keys) == 0 || apiKey == "" {
				return next(c)
			}

			for _, key := range keys {
				if subtle.ConstantTimeCompare([]byte(apiKey), []byte(key)) == 1 {
					return next(c)
				}
			}

			return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "Invalid API key")
		}
	}
}
