package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/pkg/models"
	nrpkg "github.com/arcbank/transactions-service/internal/pkg/newrelic"
	"github.com/arcbank/transactions-service/internal/utils"
	"github.com/arcbank/transactions-service/services/transactions"
)

// TransactionHandler serves the bank API
type TransactionHandler struct {
	transactionUC transactions.TransactionUC
}

// NewTransactionHandler creates a new bank API handler
func NewTransactionHandler(transactionUC transactions.TransactionUC) *TransactionHandler {
	return &TransactionHandler{
		transactionUC: transactionUC,
	}
}

// CreateTransaction executes a deposit, withdrawal, internal or interbank transfer
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req models.CreateTransactionRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	tx, err := h.transactionUC.CreateTransaction(c.Request().Context(), req)
	if err != nil {
		nrpkg.NoticeTransactionError(nrpkg.FromEchoContext(c), err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, models.NewTransactionView(tx, 0))
}

// ListByAccount returns the history of an account as source or destination
func (h *TransactionHandler) ListByAccount(c echo.Context) error {
	accountID, err := strconv.ParseInt(c.Param("accountId"), 10, 64)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid account id")
	}

	views, err := h.transactionUC.ListByAccount(c.Request().Context(), accountID)
	if err != nil {
		return respondError(c, err)
	}
	if views == nil {
		views = []*models.TransactionView{}
	}
	return c.JSON(http.StatusOK, views)
}

// GetByID returns one transaction
func (h *TransactionHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid transaction id")
	}

	view, err := h.transactionUC.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// GetDetail returns one transaction with its reversibility flags
func (h *TransactionHandler) GetDetail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid transaction id")
	}

	detail, err := h.transactionUC.GetDetail(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// RequestReversal reverses or returns a transaction by id
func (h *TransactionHandler) RequestReversal(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid transaction id")
	}

	var req models.ReversalRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	logger.Info("Reversal requested",
		logger.TransactionID(id),
		logger.String("reason", req.Reason),
		logger.String("client_ip", c.RealIP()))

	tx, err := h.transactionUC.RequestReversalByID(c.Request().Context(), id, req.Reason)
	if err != nil {
		nrpkg.NoticeTransactionError(nrpkg.FromEchoContext(c), err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, models.NewTransactionView(tx, 0))
}

// RequestReversalByReference reverses or returns a transaction by reference
func (h *TransactionHandler) RequestReversalByReference(c echo.Context) error {
	reference := c.Param("reference")

	var req models.ReversalRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	logger.Info("Reversal requested",
		logger.Reference(reference),
		logger.String("reason", req.Reason),
		logger.String("client_ip", c.RealIP()))

	tx, err := h.transactionUC.RequestReversalByReference(c.Request().Context(), reference, req.Reason)
	if err != nil {
		nrpkg.NoticeTransactionError(nrpkg.FromEchoContext(c), err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, models.NewTransactionView(tx, 0))
}

// ListReturnReasons returns the return reason catalog
func (h *TransactionHandler) ListReturnReasons(c echo.Context) error {
	return c.JSON(http.StatusOK, h.transactionUC.ListReturnReasons())
}

// ValidateExternalAccount verifies an account held at another bank
func (h *TransactionHandler) ValidateExternalAccount(c echo.Context) error {
	var req models.ExternalAccountRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		return utils.BadRequestResponse(c, "Faltan datos: targetBankId o targetAccountNumber")
	}

	result, err := h.transactionUC.ValidateExternalAccount(c.Request().Context(), req.TargetBankID, req.AccountNumber)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetByReference returns one transaction by reference
func (h *TransactionHandler) GetByReference(c echo.Context) error {
	view, err := h.transactionUC.GetByReference(c.Request().Context(), c.Param("reference"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// GetDetailByReference returns the detail view, reconciled with the switch
func (h *TransactionHandler) GetDetailByReference(c echo.Context) error {
	detail, err := h.transactionUC.GetDetailByReference(c.Request().Context(), c.Param("reference"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// GetByCodigoReferencia returns one transaction by the switch's short code
func (h *TransactionHandler) GetByCodigoReferencia(c echo.Context) error {
	view, err := h.transactionUC.GetByCodigoReferencia(c.Request().Context(), c.Param("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// TechnicalBalance returns the bank's settlement position at the switch
func (h *TransactionHandler) TechnicalBalance(c echo.Context) error {
	return c.JSON(http.StatusOK, h.transactionUC.TechnicalBalance(c.Request().Context()))
}

// ListBanks returns the institutions reachable through the switch
func (h *TransactionHandler) ListBanks(c echo.Context) error {
	banks := h.transactionUC.ListBanks(c.Request().Context())
	if banks == nil {
		banks = []map[string]interface{}{}
	}
	return c.JSON(http.StatusOK, banks)
}
