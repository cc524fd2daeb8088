package http

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/arcbank/transactions-service/internal/pkg/constants"
	httpclient "github.com/arcbank/transactions-service/internal/pkg/http"
	"github.com/arcbank/transactions-service/internal/pkg/models"
	"github.com/arcbank/transactions-service/services/transactions"
)

type directoryGW struct {
	client  *httpclient.EnhancedClient
	baseURL string
}

// NewDirectoryGW creates the customer directory client
func NewDirectoryGW(client *httpclient.EnhancedClient, baseURL string) transactions.DirectoryGW {
	return &directoryGW{client: client, baseURL: baseURL}
}

// GetAccount resolves an account by id
func (g *directoryGW) GetAccount(ctx context.Context, accountID int64) (*models.Account, error) {
	var account models.Account
	if err := g.get(ctx, fmt.Sprintf(constants.PathDirectoryAccount, accountID), &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountByNumber resolves an account by its account number
func (g *directoryGW) GetAccountByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	var account models.Account
	path := fmt.Sprintf(constants.PathDirectoryByNumber, url.PathEscape(accountNumber))
	if err := g.get(ctx, path, &account); err != nil {
		return nil, err
	}
	if account.AccountID == 0 {
		return nil, fmt.Errorf("%w: %s", transactions.ErrAccountNotFound, accountNumber)
	}
	return &account, nil
}

// GetCustomer resolves the owner of an account
func (g *directoryGW) GetCustomer(ctx context.Context, customerID int64) (*models.Customer, error) {
	var customer models.Customer
	if err := g.get(ctx, fmt.Sprintf(constants.PathDirectoryCustomer, customerID), &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (g *directoryGW) get(ctx context.Context, path string, out interface{}) error {
	resp, err := g.client.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		URL:    g.baseURL + path,
		Retry:  true,
	})
	if err != nil {
		return fmt.Errorf("directory request failed: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", transactions.ErrAccountNotFound, path)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("directory returned HTTP %d", resp.StatusCode)
	}
	if err := resp.DecodeJSON(out); err != nil {
		return fmt.Errorf("failed to decode directory response: %w", err)
	}
	return nil
}
