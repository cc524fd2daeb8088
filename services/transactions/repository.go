package transactions

import (
	"context"
	"time"

	"github.com/arcbank/transactions-service/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/arcbank/transactions-service/services/transactions TransactionRepo,AccountLocker,SweepLease

// TransactionRepo defines the Transaction Store
type TransactionRepo interface {
	// Create inserts tx and fills in its id and timestamps. A reference
	// collision returns ErrDuplicateReference
	Create(ctx context.Context, tx *models.Transaction) error
	Update(ctx context.Context, tx *models.Transaction) error
	// TransitionStatus moves the record from one status to another and
	// reports false when it was no longer in the from status
	TransitionStatus(ctx context.Context, id int64, from, to models.TransactionStatus) (bool, error)

	GetByID(ctx context.Context, id int64) (*models.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*models.Transaction, error)
	GetByCodigoReferencia(ctx context.Context, code string) (*models.Transaction, error)
	ExistsByReference(ctx context.Context, reference string) (bool, error)
	ListByAccount(ctx context.Context, accountID int64) ([]*models.Transaction, error)
	ListPendingOutbound(ctx context.Context, createdBefore time.Time, limit int) ([]*models.Transaction, error)
}

// AccountLocker serializes balance mutations of one account
type AccountLocker interface {
	// Lock blocks until the account is held or ctx ends
	Lock(ctx context.Context, accountID int64) (unlock func(), err error)
}

// SweepLease elects the single replica allowed to run the reconciler
type SweepLease interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}
