package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arcbank/transactions-service/internal/pkg/constants"
	httpclient "github.com/arcbank/transactions-service/internal/pkg/http"
	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/pkg/models"
	"github.com/arcbank/transactions-service/internal/pkg/requestcontext"
	"github.com/arcbank/transactions-service/services/transactions"
)

// emptySubmitReference is reported when the switch accepts with an empty body
const emptySubmitReference = "000000"

// bankAliases are identifiers the network uses for the same institution
var bankAliases = map[string]string{
	"BANTEC": "BANTEC",
	"100050": "BANTEC",
	"200100": "BANTEC",
}

type switchGW struct {
	client *httpclient.EnhancedClient
	tokens *TokenCache
	cfg    models.SwitchConfig
	now    func() time.Time
}

// NewSwitchGW creates the switch adapter
func NewSwitchGW(client *httpclient.EnhancedClient, tokens *TokenCache, cfg models.SwitchConfig) transactions.SwitchGW {
	return &switchGW{
		client: client,
		tokens: tokens,
		cfg:    cfg,
		now:    time.Now,
	}
}

// call sends req with auth and trace headers, retrying once with a fresh
// token when the switch answers 401
func (g *switchGW) call(ctx context.Context, req httpclient.Request) (*httpclient.Response, error) {
	resp, err := g.send(ctx, req)
	if err == nil && resp.StatusCode == http.StatusUnauthorized && g.tokens != nil && g.tokens.Enabled() {
		logger.Warn("Switch rejected token, refreshing", logger.String("url", req.URL))
		g.tokens.Invalidate()
		resp, err = g.send(ctx, req)
	}
	return resp, err
}

func (g *switchGW) send(ctx context.Context, req httpclient.Request) (*httpclient.Response, error) {
	headers := map[string]string{
		httpclient.TraceIDHeader: requestcontext.TraceID(ctx),
	}
	for k, v := range req.Headers {
		headers[k] = v
	}
	if g.tokens != nil && g.tokens.Enabled() {
		token, err := g.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		headers["Authorization"] = "Bearer " + token
	}
	req.Headers = headers
	return g.client.Do(ctx, req)
}

func (g *switchGW) endpoint(path string) string {
	return g.cfg.BaseURL + path
}

func shortID() string {
	return uuid.NewString()[:8]
}

func (g *switchGW) timestamp() string {
	return g.now().UTC().Truncate(time.Second).Format(time.RFC3339)
}

// SubmitTransfer sends a pacs.008 transfer and reads the synchronous answer
func (g *switchGW) SubmitTransfer(ctx context.Context, intent models.TransferIntent) (*models.SwitchSubmitResult, error) {
	creditorBank := intent.TargetBankID
	if creditorBank == "" {
		creditorBank = g.cfg.DefaultCreditor
	}

	envelope := models.TransferEnvelope{
		Header: &models.SwitchHeader{
			MessageID:         "MSG-" + shortID(),
			CreationDateTime:  g.timestamp(),
			OriginatingBankID: g.cfg.BankCode,
		},
		Body: &models.TransferBody{
			InstructionID: intent.Reference,
			EndToEndID:    "E2E-" + shortID(),
			Amount:        &models.SwitchAmount{Currency: constants.CurrencyUSD, Value: intent.Amount},
			Debtor: &models.SwitchParty{
				Name:        intent.DebtorName,
				AccountID:   intent.DebtorAccount,
				AccountType: constants.AccountTypeSaving,
				BankID:      g.cfg.BankCode,
			},
			Creditor: &models.SwitchParty{
				Name:        intent.CreditorName,
				AccountID:   intent.CreditorAccount,
				AccountType: constants.AccountTypeSaving,
				BankID:      creditorBank,
			},
			RemittanceInformation: intent.Description,
		},
	}

	logger.InfoCtx(ctx, "Submitting transfer to switch",
		logger.Reference(intent.Reference),
		logger.String("target_bank", creditorBank),
		logger.Amount("amount", intent.Amount))

	resp, err := g.call(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    g.endpoint(constants.PathSwitchTransfers),
		Body:   envelope,
	})
	if err != nil {
		return nil, submitFailure(err)
	}
	if !resp.IsSuccess() {
		return nil, rejection(string(resp.Body))
	}

	var body map[string]interface{}
	if decodeErr := resp.DecodeJSON(&body); decodeErr != nil {
		if len(strings.TrimSpace(string(resp.Body))) == 0 {
			return &models.SwitchSubmitResult{
				Status:           models.SwitchStatusSuccess,
				CodigoReferencia: emptySubmitReference,
			}, nil
		}
		logger.WarnCtx(ctx, "Unreadable switch answer, treating as pending",
			logger.Reference(intent.Reference),
			logger.Err(decodeErr))
		return &models.SwitchSubmitResult{}, nil
	}

	result := &models.SwitchSubmitResult{
		Status:           statusOf(body),
		CodigoReferencia: stringField(body, "codigoReferencia"),
		Error:            stringField(body, "error"),
	}
	if result.CodigoReferencia == "" {
		if data, ok := body["data"].(map[string]interface{}); ok {
			result.CodigoReferencia = stringField(data, "codigoReferencia")
		}
	}
	if result.Status == models.SwitchStatusFailed {
		result.ReasonCode, _ = MapSubmitError(result.Error)
	}
	return result, nil
}

// SubmitReturn sends a pacs.004 return for a previously settled transfer
func (g *switchGW) SubmitReturn(ctx context.Context, intent models.ReturnIntent) error {
	envelope := models.ReturnEnvelope{
		Header: &models.SwitchHeader{
			MessageID:         uuid.NewString(),
			CreationDateTime:  g.timestamp(),
			OriginatingBankID: g.cfg.BankCode,
		},
		Body: &models.ReturnBody{
			ReturnInstructionID:   uuid.NewString(),
			OriginalInstructionID: strings.TrimSpace(intent.OriginalReference),
			ReturnReason:          MapReturnReason(intent.Reason),
			ReturnAmount:          &models.SwitchAmount{Currency: constants.CurrencyUSD, Value: intent.Amount},
		},
	}

	logger.InfoCtx(ctx, "Submitting return to switch",
		logger.Reference(intent.OriginalReference),
		logger.String("reason", envelope.Body.ReturnReason))

	resp, err := g.call(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    g.endpoint(constants.PathSwitchReturns),
		Body:   envelope,
	})
	if err != nil {
		return submitFailure(err)
	}
	if !resp.IsSuccess() {
		return rejection(string(resp.Body))
	}
	return nil
}

// submitFailure classifies a transport error. 5xx answers still carry a
// body worth mapping
func submitFailure(err error) error {
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		return rejection(httpErr.Body)
	}
	return fmt.Errorf("switch communication error: %w", err)
}

func rejection(body string) error {
	code, message := MapSubmitError(body)
	return &transactions.SwitchRejectedError{Code: code, Detail: message}
}

// QueryStatus asks the switch about instructionID, returning nil on any failure
func (g *switchGW) QueryStatus(ctx context.Context, instructionID string) *models.SwitchStatus {
	resp, err := g.call(ctx, httpclient.Request{
		Method: http.MethodGet,
		URL:    g.endpoint(fmt.Sprintf(constants.PathSwitchTransferStatus, url.PathEscape(instructionID))),
		Retry:  true,
	})
	if err != nil {
		logger.WarnCtx(ctx, "Switch status query failed",
			logger.Reference(instructionID),
			logger.Err(err))
		return nil
	}
	if !resp.IsSuccess() {
		logger.WarnCtx(ctx, "Switch status query refused",
			logger.Reference(instructionID),
			logger.Int("status", resp.StatusCode))
		return nil
	}

	var body map[string]interface{}
	if err := resp.DecodeJSON(&body); err != nil {
		return nil
	}
	return &models.SwitchStatus{
		Status:     statusOf(body),
		ReasonCode: stringField(body, "reasonCode"),
		Error:      stringField(body, "error"),
	}
}

// NormalizeBankID folds the aliases of a bank onto its BIC
func NormalizeBankID(bankID string) string {
	if bic, ok := bankAliases[strings.ToUpper(strings.TrimSpace(bankID))]; ok {
		return bic
	}
	return bankID
}

// LookupExternalAccount verifies an account at another bank (acmt.023)
func (g *switchGW) LookupExternalAccount(ctx context.Context, targetBankID, accountNumber string) (map[string]interface{}, error) {
	request := models.AccountLookupRequest{
		Header: models.AccountLookupHeader{
			OriginatingBankID: g.cfg.BankCode,
			MessageID:         "VAL-" + shortID(),
		},
		Body: models.AccountLookupBody{
			TargetBankID:        NormalizeBankID(targetBankID),
			TargetAccountNumber: accountNumber,
		},
	}

	resp, err := g.call(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    g.endpoint(g.cfg.LookupPath),
		Body:   request,
		Retry:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("switch account lookup failed: %w", err)
	}
	if !resp.IsSuccess() {
		code, message := MapSubmitError(string(resp.Body))
		return nil, &transactions.SwitchRejectedError{Code: code, Detail: message}
	}

	var body map[string]interface{}
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, fmt.Errorf("failed to decode account lookup: %w", err)
	}
	if data, ok := body["data"].(map[string]interface{}); ok {
		return data, nil
	}
	if inner, ok := body["body"].(map[string]interface{}); ok {
		return inner, nil
	}
	return body, nil
}

// ListBanks returns the institutions on the network, empty on failure
func (g *switchGW) ListBanks(ctx context.Context) []map[string]interface{} {
	banks := []map[string]interface{}{}

	resp, err := g.call(ctx, httpclient.Request{
		Method: http.MethodGet,
		URL:    g.endpoint(constants.PathSwitchBanks),
		Retry:  true,
	})
	if err != nil || !resp.IsSuccess() {
		logger.WarnCtx(ctx, "Failed to list switch banks", logger.Err(err))
		return banks
	}
	if err := resp.DecodeJSON(&banks); err != nil {
		logger.WarnCtx(ctx, "Failed to decode switch banks", logger.Err(err))
		return []map[string]interface{}{}
	}
	return banks
}

// TechnicalBalance reads the settlement position of this bank at the switch
func (g *switchGW) TechnicalBalance(ctx context.Context) map[string]interface{} {
	bic := g.cfg.BankCode

	position, err := g.fundingQuery(ctx, httpclient.Request{
		Method: http.MethodGet,
		URL:    g.endpoint(fmt.Sprintf(constants.PathSwitchFundingByBIC, url.PathEscape(bic))),
		Retry:  true,
	})
	if err == nil {
		return position
	}
	logger.WarnCtx(ctx, "Funding availability query failed, trying funding endpoint", logger.Err(err))

	position, err = g.fundingQuery(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    g.endpoint(constants.PathSwitchFunding),
		Body:   map[string]interface{}{"bic": bic, "queryOnly": true},
		Retry:  true,
	})
	if err == nil {
		return position
	}
	logger.ErrorCtx(ctx, "Technical balance unavailable", logger.Err(err))
	return map[string]interface{}{
		"error":  err.Error(),
		"bankId": bic,
		"status": "ERROR",
	}
}

func (g *switchGW) fundingQuery(ctx context.Context, req httpclient.Request) (map[string]interface{}, error) {
	resp, err := g.call(ctx, req)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("switch returned HTTP %d", resp.StatusCode)
	}
	var body map[string]interface{}
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, fmt.Errorf("failed to decode funding position: %w", err)
	}
	return body, nil
}

// ListReturnReasons returns the fixed ISO 20022 return catalog
func (g *switchGW) ListReturnReasons() []models.ReturnReason {
	out := make([]models.ReturnReason, len(ReturnReasons))
	copy(out, ReturnReasons)
	return out
}

// Health probes the switch
func (g *switchGW) Health(ctx context.Context) error {
	resp, err := g.call(ctx, httpclient.Request{
		Method: http.MethodGet,
		URL:    g.endpoint(constants.PathSwitchHealth),
	})
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("switch health returned HTTP %d", resp.StatusCode)
	}
	return nil
}

func statusOf(body map[string]interface{}) string {
	if s := stringField(body, "estado"); s != "" {
		return strings.ToUpper(s)
	}
	return strings.ToUpper(stringField(body, "status"))
}

func stringField(body map[string]interface{}, key string) string {
	switch v := body[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
