package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/pkg/models"
	"github.com/arcbank/transactions-service/services/transactions"
)

// Webhook acknowledgement values
const (
	statusACK     = "ACK"
	statusNACK    = "NACK"
	statusSuccess = "SUCCESS"
	statusFailed  = "FAILED"
)

type ackResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message,omitempty"`
	InstructionID string `json:"instructionId,omitempty"`
	Error         string `json:"error,omitempty"`
}

type rejectionResponse struct {
	Codigo  string `json:"codigo"`
	Mensaje string `json:"mensaje"`
}

type verificationResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

type statusResponse struct {
	Estado string `json:"estado"`
}

// unifiedPayload is decoded first to route a switch message
type unifiedPayload struct {
	Header *models.SwitchHeader `json:"header"`
	Body   json.RawMessage      `json:"body"`
}

// WebhookHandler serves the endpoints the switch calls
type WebhookHandler struct {
	transactionUC transactions.TransactionUC
}

// NewWebhookHandler creates a new switch webhook handler
func NewWebhookHandler(transactionUC transactions.TransactionUC) *WebhookHandler {
	return &WebhookHandler{
		transactionUC: transactionUC,
	}
}

// Receive routes a switch message to account verification, return or transfer
// handling depending on its namespace and body
func (h *WebhookHandler) Receive(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nack(c, http.StatusUnprocessableEntity, "Error procesando payload unificado: "+err.Error())
	}

	var payload unifiedPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		logger.Warn("Unparseable switch webhook", logger.Err(err))
		return nack(c, http.StatusUnprocessableEntity, "Error procesando payload unificado: "+err.Error())
	}

	if payload.Header != nil && payload.Header.MessageNamespace == models.NamespaceAccountLookup {
		return h.verifyAccount(c, payload)
	}

	if isReturn(payload.Body) {
		var envelope models.ReturnEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nack(c, http.StatusUnprocessableEntity, "Error procesando payload unificado: "+err.Error())
		}
		return h.processReturn(c, envelope)
	}

	var envelope models.TransferEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nack(c, http.StatusUnprocessableEntity, "Error procesando payload unificado: "+err.Error())
	}
	return h.processTransfer(c, envelope)
}

// ReceiveReturn accepts a return envelope directly
func (h *WebhookHandler) ReceiveReturn(c echo.Context) error {
	var envelope models.ReturnEnvelope
	if err := c.Bind(&envelope); err != nil {
		return nack(c, http.StatusBadRequest, "Formato inválido")
	}
	return h.processReturn(c, envelope)
}

// TransferStatus reports the canonical status of an inbound instruction
func (h *WebhookHandler) TransferStatus(c echo.Context) error {
	estado := h.transactionUC.QueryStatus(c.Request().Context(), c.Param("instructionId"))
	if estado == models.ExternalStatusNotFound {
		return c.JSON(http.StatusNotFound, statusResponse{Estado: estado})
	}
	return c.JSON(http.StatusOK, statusResponse{Estado: estado})
}

func (h *WebhookHandler) verifyAccount(c echo.Context, payload unifiedPayload) error {
	var body models.TransferBody
	if len(payload.Body) > 0 {
		if err := json.Unmarshal(payload.Body, &body); err != nil {
			logger.Warn("Unparseable account verification body", logger.Err(err))
			return nack(c, http.StatusUnprocessableEntity, "Error procesando payload unificado: "+err.Error())
		}
	}
	if body.Creditor == nil || body.Creditor.AccountID == "" {
		logger.Warn("Account verification without creditor.accountId")
		return c.JSON(http.StatusOK, verificationResponse{
			Status: statusFailed,
			Data:   map[string]interface{}{"mensaje": "Formato inválido: Falta creditor.accountId"},
		})
	}

	result, err := h.transactionUC.ValidateLocalAccount(c.Request().Context(), body.Creditor.AccountID)
	if err != nil {
		return nack(c, http.StatusUnprocessableEntity, err.Error())
	}
	if !result.Exists {
		return c.JSON(http.StatusOK, verificationResponse{
			Status: statusFailed,
			Data:   map[string]interface{}{"exists": false, "mensaje": "Cuenta no encontrada"},
		})
	}
	return c.JSON(http.StatusOK, verificationResponse{Status: statusSuccess, Data: result})
}

func (h *WebhookHandler) processReturn(c echo.Context, envelope models.ReturnEnvelope) error {
	if err := h.transactionUC.ProcessSwitchReturn(c.Request().Context(), envelope); err != nil {
		logger.Error("Failed to process switch return", logger.Err(err))
		return nack(c, http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, ackResponse{Status: statusACK, Message: "Devolución confirmada"})
}

func (h *WebhookHandler) processTransfer(c echo.Context, envelope models.TransferEnvelope) error {
	if envelope.Header == nil || envelope.Body == nil {
		return nack(c, http.StatusBadRequest, "Formato inválido")
	}

	body := envelope.Body
	if body.InstructionID == "" || body.Creditor == nil || body.Creditor.AccountID == "" ||
		body.Amount == nil || !body.Amount.Value.IsPositive() {
		return nack(c, http.StatusBadRequest, "Datos incompletos")
	}

	err := h.transactionUC.CreditIncoming(c.Request().Context(), models.IncomingCredit{
		Reference:         body.InstructionID,
		AccountNumber:     body.Creditor.AccountID,
		Amount:            body.Amount.Value,
		OriginatingBankID: envelope.Header.OriginatingBankID,
	})
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, ackResponse{
			Status:        statusACK,
			Message:       "Acreditación exitosa en Arcbank",
			InstructionID: body.InstructionID,
		})
	case errors.Is(err, transactions.ErrAccountNotFound):
		return c.JSON(http.StatusUnprocessableEntity, rejectionResponse{
			Codigo:  "AC01",
			Mensaje: "La cuenta destino no existe en nuestros registros",
		})
	case errors.Is(err, transactions.ErrAccountClosed):
		return c.JSON(http.StatusUnprocessableEntity, rejectionResponse{
			Codigo:  "AC04",
			Mensaje: "Cuenta cerrada o inactiva",
		})
	default:
		logger.Error("Failed to credit inbound transfer",
			logger.Reference(body.InstructionID),
			logger.Err(err))
		return nack(c, http.StatusUnprocessableEntity, err.Error())
	}
}

// isReturn reports whether the body names an original instruction or a return reason
func isReturn(body json.RawMessage) bool {
	if len(body) == 0 {
		return false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return false
	}
	_, hasOriginal := fields["originalInstructionId"]
	_, hasReason := fields["returnReason"]
	return hasOriginal || hasReason
}

func nack(c echo.Context, status int, message string) error {
	return c.JSON(status, ackResponse{Status: statusNACK, Error: message})
}
