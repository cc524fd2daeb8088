package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/pkg/models"
	"github.com/arcbank/transactions-service/services/transactions"
)

const uniqueViolation = "23505"

const transactionColumns = `
	id, reference, codigo_referencia, operation_type,
	source_account_id, destination_account_id,
	external_account_number, external_bank_id,
	amount, resulting_balance_source, resulting_balance_destination,
	channel, branch_id, description, status,
	created_at, updated_at, reversal_of_transaction_id`

// TransactionRepo is the PostgreSQL Transaction Store
type TransactionRepo struct {
	db *sqlx.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *sqlx.DB) *TransactionRepo {
	return &TransactionRepo{db: db}
}

// Create inserts tx and fills in the store-assigned fields
func (r *TransactionRepo) Create(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (
			reference, codigo_referencia, operation_type,
			source_account_id, destination_account_id,
			external_account_number, external_bank_id,
			amount, resulting_balance_source, resulting_balance_destination,
			channel, branch_id, description, status,
			created_at, updated_at, reversal_of_transaction_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15, $16)
		RETURNING id, created_at, updated_at`

	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRowxContext(ctx, query,
		tx.Reference,
		tx.CodigoReferencia,
		tx.OperationType,
		tx.SourceAccountID,
		tx.DestinationAccountID,
		tx.ExternalAccountNumber,
		tx.ExternalBankID,
		tx.Amount,
		tx.ResultingBalanceSource,
		tx.ResultingBalanceDestination,
		tx.Channel,
		tx.BranchID,
		tx.Description,
		tx.Status,
		tx.CreatedAt,
		tx.ReversalOfTransactionID,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", transactions.ErrDuplicateReference, tx.Reference)
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	logger.Debug("Transaction stored",
		logger.TransactionID(tx.ID),
		logger.Reference(tx.Reference))
	return nil
}

// Update saves the mutable fields of tx
func (r *TransactionRepo) Update(ctx context.Context, tx *models.Transaction) error {
	query := `
		UPDATE transactions
		SET codigo_referencia = $1,
			resulting_balance_source = $2,
			resulting_balance_destination = $3,
			description = $4,
			status = $5,
			updated_at = NOW()
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		tx.CodigoReferencia,
		tx.ResultingBalanceSource,
		tx.ResultingBalanceDestination,
		tx.Description,
		tx.Status,
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: id %d", transactions.ErrTransactionNotFound, tx.ID)
	}
	return nil
}

// TransitionStatus is a compare-and-set on the status column
func (r *TransactionRepo) TransitionStatus(ctx context.Context, id int64, from, to models.TransactionStatus) (bool, error) {
	query := `UPDATE transactions SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`

	result, err := r.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("failed to transition transaction %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

// GetByID retrieves a transaction by its numeric id
func (r *TransactionRepo) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByReference retrieves a transaction by its switch reference
func (r *TransactionRepo) GetByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	return r.getOne(ctx, "reference = $1", reference)
}

// GetByCodigoReferencia retrieves a transaction by the switch-assigned code
func (r *TransactionRepo) GetByCodigoReferencia(ctx context.Context, code string) (*models.Transaction, error) {
	return r.getOne(ctx, "codigo_referencia = $1", code)
}

func (r *TransactionRepo) getOne(ctx context.Context, where string, arg interface{}) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + where + ` LIMIT 1`

	var tx models.Transaction
	if err := r.db.GetContext(ctx, &tx, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %v", transactions.ErrTransactionNotFound, arg)
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

// ExistsByReference reports whether reference was already recorded
func (r *TransactionRepo) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM transactions WHERE reference = $1)`, reference)
	if err != nil {
		return false, fmt.Errorf("failed to check reference: %w", err)
	}
	return exists, nil
}

// ListByAccount returns every transaction touching accountID, newest first
func (r *TransactionRepo) ListByAccount(ctx context.Context, accountID int64) ([]*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE source_account_id = $1 OR destination_account_id = $1
		ORDER BY created_at DESC, id DESC`

	var list []*models.Transaction
	if err := r.db.SelectContext(ctx, &list, query, accountID); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return list, nil
}

// ListPendingOutbound returns outbound transfers still PENDING that were
// created before createdBefore, oldest first
func (r *TransactionRepo) ListPendingOutbound(ctx context.Context, createdBefore time.Time, limit int) ([]*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE status = $1 AND operation_type = $2 AND created_at < $3
		ORDER BY created_at ASC
		LIMIT $4`

	var list []*models.Transaction
	err := r.db.SelectContext(ctx, &list, query,
		models.StatusPending, models.OperationOutbound, createdBefore, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transactions: %w", err)
	}
	return list, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
