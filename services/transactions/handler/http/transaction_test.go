package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcbank/transactions-service/internal/pkg/models"
	"github.com/arcbank/transactions-service/internal/utils"
	"github.com/arcbank/transactions-service/services/transactions"
	"github.com/arcbank/transactions-service/services/transactions/mocks"
)

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = utils.NewRequestValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestNewTransactionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTransactionUC(ctrl)
	handler := NewTransactionHandler(mockUC)

	assert.NotNil(t, handler)
	assert.Equal(t, mockUC, handler.transactionUC)
}

func TestTransactionHandler_CreateTransaction_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTransactionUC(ctrl)
	handler := NewTransactionHandler(mockUC)

	destination := int64(7)
	mockUC.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.CreateTransactionRequest) (*models.Transaction, error) {
			assert.Equal(t, "DEPOSIT", req.OperationType)
			assert.Equal(t, destination, *req.DestinationAccountID)
			assert.True(t, req.Amount.Equal(decimal.RequireFromString("100.00")))
			return &models.Transaction{
				ID:                          1,
				Reference:                   "0f8fad5b-d9cb-469f-a165-70867728950e",
				OperationType:               models.OperationDeposit,
				DestinationAccountID:        &destination,
				Amount:                      req.Amount,
				ResultingBalanceDestination: decimal.NewNullDecimal(decimal.RequireFromString("600.00")),
				Status:                      models.StatusCompleted,
			}, nil
		})

	c, rec := newContext(http.MethodPost, "/api/transacciones",
		`{"operation_type":"DEPOSIT","destination_account_id":7,"amount":"100.00"}`)

	err := handler.CreateTransaction(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var view models.TransactionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, int64(1), view.ID)
	assert.Equal(t, models.StatusCompleted, view.Status)
	assert.True(t, view.ResultingBalance.Equal(decimal.RequireFromString("600.00")))
}

func TestTransactionHandler_CreateTransaction_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"operation_type":`},
		{"missing operation type", `{"amount":"10.00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler := NewTransactionHandler(mocks.NewMockTransactionUC(ctrl))
			c, rec := newContext(http.MethodPost, "/api/transacciones", tt.body)

			require.NoError(t, handler.CreateTransaction(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, decodeError(t, rec).Success)
		})
	}
}

func TestTransactionHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"insufficient funds", fmt.Errorf("debit: %w", transactions.ErrInsufficientFunds), http.StatusBadRequest, ""},
		{"invalid operation", fmt.Errorf("%w: amount must be positive", transactions.ErrInvalidOperation), http.StatusBadRequest, ""},
		{"switch rejection", transactions.BusinessError("transferencia rechazada por el switch", &transactions.SwitchRejectedError{Code: "AM04"}), http.StatusBadRequest, "AM04"},
		{"unknown account", fmt.Errorf("%w: account 9", transactions.ErrAccountNotFound), http.StatusBadRequest, ""},
		{"missing transaction", transactions.ErrTransactionNotFound, http.StatusNotFound, ""},
		{"technical", fmt.Errorf("%w: compensation failed", transactions.ErrTechnical), http.StatusInternalServerError, ""},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUC := mocks.NewMockTransactionUC(ctrl)
			handler := NewTransactionHandler(mockUC)
			mockUC.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			c, rec := newContext(http.MethodPost, "/api/transacciones", `{"operation_type":"WITHDRAWAL","source_account_id":1,"amount":"5.00"}`)

			require.NoError(t, handler.CreateTransaction(c))

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeError(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.Equal(t, tt.wantReason, resp.ReasonCode)
		})
	}
}

func TestTransactionHandler_ListByAccount(t *testing.T) {
	t.Run("empty history is an empty list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUC := mocks.NewMockTransactionUC(ctrl)
		handler := NewTransactionHandler(mockUC)
		mockUC.EXPECT().ListByAccount(gomock.Any(), int64(3)).Return(nil, nil)

		c, rec := newContext(http.MethodGet, "/api/transacciones/cuenta/3", "")
		c.SetParamNames("accountId")
		c.SetParamValues("3")

		require.NoError(t, handler.ListByAccount(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("invalid account id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler := NewTransactionHandler(mocks.NewMockTransactionUC(ctrl))
		c, rec := newContext(http.MethodGet, "/api/transacciones/cuenta/abc", "")
		c.SetParamNames("accountId")
		c.SetParamValues("abc")

		require.NoError(t, handler.ListByAccount(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTransactionHandler_GetDetail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTransactionUC(ctrl)
	handler := NewTransactionHandler(mockUC)

	mockUC.EXPECT().GetDetail(gomock.Any(), int64(12)).Return(&models.TransactionDetail{
		TransactionView: &models.TransactionView{ID: 12, Status: models.StatusCompleted},
		Reversible:      true,
		WithinWindow:    true,
		ValidStatus:     true,
		CanReverse:      true,
		HoursElapsed:    2.5,
		SwitchStatus:    "COMPLETED",
	}, nil)

	c, rec := newContext(http.MethodGet, "/api/transacciones/12/detalle", "")
	c.SetParamNames("id")
	c.SetParamValues("12")

	require.NoError(t, handler.GetDetail(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(12), body["id"])
	assert.Equal(t, true, body["can_reverse"])
	assert.Equal(t, 2.5, body["hours_elapsed"])
	assert.Equal(t, "COMPLETED", body["switch_status"])
}

func TestTransactionHandler_GetByID_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTransactionUC(ctrl)
	handler := NewTransactionHandler(mockUC)
	mockUC.EXPECT().GetByID(gomock.Any(), int64(99)).Return(nil, transactions.ErrTransactionNotFound)

	c, rec := newContext(http.MethodGet, "/api/transacciones/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, handler.GetByID(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTransactionHandler_RequestReversal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTransactionUC(ctrl)
	handler := NewTransactionHandler(mockUC)

	mockUC.EXPECT().
		RequestReversalByID(gomock.Any(), int64(4), "CUENTA_INVALIDA").
		Return(&models.Transaction{ID: 4, Status: models.StatusReversed, Amount: decimal.RequireFromString("50.00")}, nil)

	c, rec := newContext(http.MethodPost, "/api/transacciones/4/devolucion", `{"motivo":"CUENTA_INVALIDA"}`)
	c.SetParamNames("id")
	c.SetParamValues("4")

	require.NoError(t, handler.RequestReversal(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var view models.TransactionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, models.StatusReversed, view.Status)
}

func TestTransactionHandler_RequestReversalByReference_Refused(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTransactionUC(ctrl)
	handler := NewTransactionHandler(mockUC)

	mockUC.EXPECT().
		RequestReversalByReference(gomock.Any(), "ref-1", "TECH").
		Return(nil, transactions.BusinessError("fuera de la ventana de 24 horas", nil))

	c, rec := newContext(http.MethodPost, "/api/transacciones/referencia/ref-1/devolucion", `{"motivo":"TECH"}`)
	c.SetParamNames("reference")
	c.SetParamValues("ref-1")

	require.NoError(t, handler.RequestReversalByReference(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error, "fuera de la ventana")
}

func TestTransactionHandler_ValidateExternalAccount(t *testing.T) {
	t.Run("forwards the lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUC := mocks.NewMockTransactionUC(ctrl)
		handler := NewTransactionHandler(mockUC)
		mockUC.EXPECT().
			ValidateExternalAccount(gomock.Any(), "100050", "998877").
			Return(map[string]interface{}{"exists": true, "ownerName": "ANA TORRES"}, nil)

		c, rec := newContext(http.MethodPost, "/api/transacciones/validar-cuenta",
			`{"targetBankId":"100050","targetAccountNumber":"998877"}`)

		require.NoError(t, handler.ValidateExternalAccount(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"exists":true,"ownerName":"ANA TORRES"}`, rec.Body.String())
	})

	t.Run("missing fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler := NewTransactionHandler(mocks.NewMockTransactionUC(ctrl))
		c, rec := newContext(http.MethodPost, "/api/transacciones/validar-cuenta", `{"targetBankId":"BANTEC"}`)

		require.NoError(t, handler.ValidateExternalAccount(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Faltan datos: targetBankId o targetAccountNumber", decodeError(t, rec).Error)
	})
}

func TestTransactionHandler_Catalogs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTransactionUC(ctrl)
	handler := NewTransactionHandler(mockUC)

	mockUC.EXPECT().ListReturnReasons().Return([]models.ReturnReason{{Code: "AC03", Description: "Cuenta inválida"}})
	mockUC.EXPECT().ListBanks(gomock.Any()).Return(nil)
	mockUC.EXPECT().TechnicalBalance(gomock.Any()).Return(map[string]interface{}{"status": "ERROR", "bank_id": "ARCBANK"})

	c, rec := newContext(http.MethodGet, "/api/transacciones/motivos-devolucion", "")
	require.NoError(t, handler.ListReturnReasons(c))
	assert.JSONEq(t, `[{"code":"AC03","description":"Cuenta inválida"}]`, rec.Body.String())

	c, rec = newContext(http.MethodGet, "/api/transacciones/red/bancos", "")
	require.NoError(t, handler.ListBanks(c))
	assert.JSONEq(t, `[]`, rec.Body.String())

	c, rec = newContext(http.MethodGet, "/api/transacciones/saldo-tecnico", "")
	require.NoError(t, handler.TechnicalBalance(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ERROR","bank_id":"ARCBANK"}`, rec.Body.String())
}

func TestTransactionHandler_Lookups(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTransactionUC(ctrl)
	handler := NewTransactionHandler(mockUC)

	mockUC.EXPECT().GetByReference(gomock.Any(), "ref-9").Return(&models.TransactionView{ID: 9}, nil)
	mockUC.EXPECT().GetDetailByReference(gomock.Any(), "ref-9").Return(&models.TransactionDetail{TransactionView: &models.TransactionView{ID: 9}}, nil)
	mockUC.EXPECT().GetByCodigoReferencia(gomock.Any(), "482913").Return(nil, transactions.ErrTransactionNotFound)

	c, rec := newContext(http.MethodGet, "/api/transacciones/buscar/ref-9", "")
	c.SetParamNames("reference")
	c.SetParamValues("ref-9")
	require.NoError(t, handler.GetByReference(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newContext(http.MethodGet, "/api/transacciones/buscar/ref-9/detalle-switch", "")
	c.SetParamNames("reference")
	c.SetParamValues("ref-9")
	require.NoError(t, handler.GetDetailByReference(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newContext(http.MethodGet, "/api/transacciones/buscar-codigo/482913", "")
	c.SetParamNames("code")
	c.SetParamValues("482913")
	require.NoError(t, handler.GetByCodigoReferencia(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
