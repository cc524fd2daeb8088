package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/arcbank/transactions-service/internal/pkg/constants"
	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/pkg/models"
	"github.com/arcbank/transactions-service/services/transactions"
)

const (
	switchStatusUnavailable = "UNAVAILABLE"
	fallbackOwnerName       = "CLIENTE ARCBANK"
)

// QueryStatus projects the status of reference onto the canonical vocabulary
func (uc *transactionUC) QueryStatus(ctx context.Context, reference string) string {
	tx, err := uc.repo.GetByReference(ctx, strings.TrimSpace(reference))
	if err != nil {
		if !transactions.IsNotFound(err) {
			logger.WarnCtx(ctx, "Status lookup failed", logger.Reference(reference), logger.Err(err))
		}
		return models.ExternalStatusNotFound
	}
	return tx.Status.ExternalStatus()
}

func (uc *transactionUC) GetByID(ctx context.Context, id int64) (*models.TransactionView, error) {
	tx, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.NewTransactionView(tx, 0), nil
}

func (uc *transactionUC) GetByReference(ctx context.Context, reference string) (*models.TransactionView, error) {
	tx, err := uc.repo.GetByReference(ctx, strings.TrimSpace(reference))
	if err != nil {
		return nil, err
	}
	return models.NewTransactionView(tx, 0), nil
}

func (uc *transactionUC) GetByCodigoReferencia(ctx context.Context, code string) (*models.TransactionView, error) {
	tx, err := uc.repo.GetByCodigoReferencia(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	return models.NewTransactionView(tx, 0), nil
}

// ListByAccount returns the account history with balances as seen by the account
func (uc *transactionUC) ListByAccount(ctx context.Context, accountID int64) ([]*models.TransactionView, error) {
	txs, err := uc.repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	views := make([]*models.TransactionView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, models.NewTransactionView(tx, accountID))
	}
	return views, nil
}

func (uc *transactionUC) GetDetail(ctx context.Context, id int64) (*models.TransactionDetail, error) {
	tx, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.detail(ctx, tx), nil
}

func (uc *transactionUC) GetDetailByReference(ctx context.Context, reference string) (*models.TransactionDetail, error) {
	tx, err := uc.repo.GetByReference(ctx, strings.TrimSpace(reference))
	if err != nil {
		return nil, err
	}
	return uc.detail(ctx, tx), nil
}

// detail adds reversibility flags and, for interbank transfers, the switch
// view. A PENDING outbound transfer is settled when the switch is terminal
func (uc *transactionUC) detail(ctx context.Context, tx *models.Transaction) *models.TransactionDetail {
	elapsed := uc.now().Sub(tx.CreatedAt)
	d := &models.TransactionDetail{
		Reversible:   tx.OperationType.IsInterbank(),
		WithinWindow: elapsed < uc.cfg.Engine.ReversalWindow,
		HoursElapsed: math.Round(elapsed.Hours()*100) / 100,
	}

	if d.Reversible {
		status := uc.switchGW.QueryStatus(ctx, tx.Reference)
		d.SwitchStatus = switchStatusUnavailable
		if status != nil && status.Status != "" {
			d.SwitchStatus = status.Status
		}

		if tx.Status == models.StatusPending && tx.OperationType == models.OperationOutbound {
			changed, err := uc.settlePending(ctx, tx, status)
			if err != nil {
				logger.WarnCtx(ctx, "Failed to settle transfer from detail view",
					logger.Reference(tx.Reference),
					logger.Err(err))
			}
			d.StatusUpdatedFromSwitch = changed
		}
	}

	d.ValidStatus = !tx.Status.IsUndone() && tx.Status != models.StatusFailed
	d.CanReverse = d.Reversible && d.WithinWindow && d.ValidStatus
	d.TransactionView = models.NewTransactionView(tx, 0)
	return d
}

// ValidateLocalAccount verifies an account of this bank. An unknown account
// is a negative answer, not an error
func (uc *transactionUC) ValidateLocalAccount(ctx context.Context, accountNumber string) (*models.AccountValidation, error) {
	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		return nil, missingField("account_number")
	}

	account, err := uc.directory.GetAccountByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, transactions.ErrAccountNotFound) {
			return &models.AccountValidation{Exists: false}, nil
		}
		return nil, fmt.Errorf("%w: directory lookup for %s: %w", transactions.ErrTechnical, accountNumber, err)
	}

	validation := &models.AccountValidation{
		Exists:    true,
		OwnerName: fallbackOwnerName,
		Currency:  constants.CurrencyUSD,
		Status:    account.NormalizedStatus(),
	}
	if account.OwnerName != "" {
		validation.OwnerName = account.OwnerName
	}

	customer, err := uc.directory.GetCustomer(ctx, account.CustomerID)
	if err != nil {
		logger.WarnCtx(ctx, "Customer lookup failed during account validation",
			logger.String("account_number", accountNumber),
			logger.Err(err))
		return validation, nil
	}
	if customer.FullName != "" {
		validation.OwnerName = customer.FullName
	}
	return validation, nil
}

// ValidateExternalAccount verifies an account at another bank through the switch
func (uc *transactionUC) ValidateExternalAccount(ctx context.Context, targetBankID, accountNumber string) (map[string]interface{}, error) {
	if strings.TrimSpace(targetBankID) == "" {
		return nil, missingField("target_bank_id")
	}
	if strings.TrimSpace(accountNumber) == "" {
		return nil, missingField("account_number")
	}
	return uc.switchGW.LookupExternalAccount(ctx, strings.TrimSpace(targetBankID), strings.TrimSpace(accountNumber))
}

func (uc *transactionUC) ListReturnReasons() []models.ReturnReason {
	return uc.switchGW.ListReturnReasons()
}

func (uc *transactionUC) ListBanks(ctx context.Context) []map[string]interface{} {
	return uc.switchGW.ListBanks(ctx)
}

func (uc *transactionUC) TechnicalBalance(ctx context.Context) map[string]interface{} {
	return uc.switchGW.TechnicalBalance(ctx)
}
