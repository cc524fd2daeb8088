package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/utils"
	"github.com/arcbank/transactions-service/services/transactions"
)

// respondError maps engine errors onto bank API responses
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, transactions.ErrTransactionNotFound):
		return utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, transactions.ErrAccountNotFound), transactions.IsClientError(err):
		return utils.ErrorWithReason(c, http.StatusBadRequest, err.Error(), transactions.ReasonCode(err))
	default:
		logger.Error("Request failed",
			logger.String("path", c.Path()),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "")
	}
}
