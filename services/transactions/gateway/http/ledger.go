package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/arcbank/transactions-service/internal/pkg/constants"
	httpclient "github.com/arcbank/transactions-service/internal/pkg/http"
	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/pkg/models"
	"github.com/arcbank/transactions-service/services/transactions"
)

type ledgerGW struct {
	client  *httpclient.EnhancedClient
	baseURL string
}

// NewLedgerGW creates the core ledger client
func NewLedgerGW(client *httpclient.EnhancedClient, baseURL string) transactions.LedgerGW {
	return &ledgerGW{client: client, baseURL: baseURL}
}

// GetBalance reads the current balance. The ledger answers either a bare
// number or {"saldo": n}
func (g *ledgerGW) GetBalance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	resp, err := g.client.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		URL:    g.baseURL + fmt.Sprintf(constants.PathLedgerBalance, accountID),
		Retry:  true,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read balance: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return decimal.Zero, fmt.Errorf("%w: %d", transactions.ErrAccountNotFound, accountID)
	}
	if !resp.IsSuccess() {
		return decimal.Zero, fmt.Errorf("ledger returned HTTP %d", resp.StatusCode)
	}

	return parseBalance(resp.Body)
}

func parseBalance(body []byte) (decimal.Decimal, error) {
	var bare decimal.NullDecimal
	if err := json.Unmarshal(body, &bare); err == nil && bare.Valid {
		return bare.Decimal, nil
	}

	var wrapped struct {
		Balance decimal.NullDecimal `json:"saldo"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode balance: %w", err)
	}
	if !wrapped.Balance.Valid {
		return decimal.Zero, fmt.Errorf("ledger returned no balance")
	}
	return wrapped.Balance.Decimal, nil
}

// SetBalance overwrites the account balance
func (g *ledgerGW) SetBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error {
	resp, err := g.client.Do(ctx, httpclient.Request{
		Method: http.MethodPut,
		URL:    g.baseURL + fmt.Sprintf(constants.PathLedgerBalance, accountID),
		Body:   models.BalanceUpdate{Balance: json.Number(balance.StringFixed(2))},
		Retry:  true,
	})
	if err != nil {
		return fmt.Errorf("failed to write balance: %w", err)
	}
	if !resp.IsSuccess() {
		logger.Warn("Ledger refused balance update",
			logger.AccountID(accountID),
			logger.Int("status", resp.StatusCode))
		return fmt.Errorf("ledger returned HTTP %d", resp.StatusCode)
	}
	return nil
}
