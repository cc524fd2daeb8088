package transactions

import (
	"context"

	"github.com/arcbank/transactions-service/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/arcbank/transactions-service/services/transactions TransactionUC

// TransactionUC defines the transaction orchestration engine
type TransactionUC interface {
	CreateTransaction(ctx context.Context, req models.CreateTransactionRequest) (*models.Transaction, error)
	CreditIncoming(ctx context.Context, credit models.IncomingCredit) error
	// HandleQueuedTransfer applies a queued transfer and reports it back to the
	// switch. A nil return means the message may be acknowledged
	HandleQueuedTransfer(ctx context.Context, envelope models.TransferEnvelope) error

	RequestReversalByID(ctx context.Context, id int64, reason string) (*models.Transaction, error)
	RequestReversalByReference(ctx context.Context, reference, reason string) (*models.Transaction, error)
	ProcessSwitchReturn(ctx context.Context, envelope models.ReturnEnvelope) error

	QueryStatus(ctx context.Context, reference string) string
	GetByID(ctx context.Context, id int64) (*models.TransactionView, error)
	GetDetail(ctx context.Context, id int64) (*models.TransactionDetail, error)
	GetByReference(ctx context.Context, reference string) (*models.TransactionView, error)
	GetDetailByReference(ctx context.Context, reference string) (*models.TransactionDetail, error)
	GetByCodigoReferencia(ctx context.Context, code string) (*models.TransactionView, error)
	ListByAccount(ctx context.Context, accountID int64) ([]*models.TransactionView, error)

	ValidateLocalAccount(ctx context.Context, accountNumber string) (*models.AccountValidation, error)
	ValidateExternalAccount(ctx context.Context, targetBankID, accountNumber string) (map[string]interface{}, error)
	ListReturnReasons() []models.ReturnReason
	ListBanks(ctx context.Context) []map[string]interface{}
	TechnicalBalance(ctx context.Context) map[string]interface{}

	ReconcilePending(ctx context.Context) (int, error)
}
