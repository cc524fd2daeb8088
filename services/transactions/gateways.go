package transactions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/arcbank/transactions-service/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateways.go -package=mocks github.com/arcbank/transactions-service/services/transactions LedgerGW,DirectoryGW,SwitchGW,EventGW

// LedgerGW reads and writes account balances on the core ledger
type LedgerGW interface {
	GetBalance(ctx context.Context, accountID int64) (decimal.Decimal, error)
	SetBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error
}

// DirectoryGW resolves account and customer metadata
type DirectoryGW interface {
	GetAccount(ctx context.Context, accountID int64) (*models.Account, error)
	GetAccountByNumber(ctx context.Context, accountNumber string) (*models.Account, error)
	GetCustomer(ctx context.Context, customerID int64) (*models.Customer, error)
}

// SwitchGW talks to the national payment switch
type SwitchGW interface {
	// SubmitTransfer returns a *SwitchRejectedError when the switch refuses the transfer
	SubmitTransfer(ctx context.Context, intent models.TransferIntent) (*models.SwitchSubmitResult, error)
	SubmitReturn(ctx context.Context, intent models.ReturnIntent) error
	// QueryStatus returns nil when the status cannot be obtained
	QueryStatus(ctx context.Context, instructionID string) *models.SwitchStatus
	LookupExternalAccount(ctx context.Context, targetBankID, accountNumber string) (map[string]interface{}, error)
	ListBanks(ctx context.Context) []map[string]interface{}
	TechnicalBalance(ctx context.Context) map[string]interface{}
	ListReturnReasons() []models.ReturnReason
	// SendCallback reports a queued transfer outcome. Failures are only logged
	SendCallback(ctx context.Context, instructionID, status, reasonCode string)
	Health(ctx context.Context) error
}

// EventGW publishes transaction lifecycle events
type EventGW interface {
	PublishTransactionEvent(ctx context.Context, event models.TransactionEvent) error
}
