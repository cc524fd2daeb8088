package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arcbank/transactions-service/internal/pkg/constants"
	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/pkg/models"
	"github.com/arcbank/transactions-service/services/transactions"
)

// referenceLength is the length of a switch-format reference
const referenceLength = 36

// Display values used when the directory cannot be reached
const (
	fallbackDebtorName   = "Cliente Arcbank"
	fallbackCreditorName = "Beneficiario"
	fallbackTargetBank   = "UNKNOWN"
)

// CreateTransaction validates req and runs the saga of its operation type
func (uc *transactionUC) CreateTransaction(ctx context.Context, req models.CreateTransactionRequest) (*models.Transaction, error) {
	opType := models.ParseOperationType(req.OperationType)
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", transactions.ErrInvalidOperation)
	}

	channel := strings.TrimSpace(req.Channel)
	if channel == "" {
		channel = constants.ChannelWeb
	}

	tx := &models.Transaction{
		Reference:     normalizeReference(req.Reference),
		OperationType: opType,
		Amount:        req.Amount,
		Channel:       channel,
		BranchID:      req.BranchID,
		Description:   req.Description,
		Status:        models.StatusPending,
		CreatedAt:     uc.now().UTC(),
	}

	logger.InfoCtx(ctx, "Creating transaction",
		logger.Reference(tx.Reference),
		logger.String("operation_type", string(opType)),
		logger.Amount("amount", tx.Amount))

	var err error
	switch opType {
	case models.OperationDeposit:
		err = uc.createDeposit(ctx, tx, req)
	case models.OperationWithdrawal:
		err = uc.createWithdrawal(ctx, tx, req)
	case models.OperationInternalTransfer:
		err = uc.createInternalTransfer(ctx, tx, req)
	case models.OperationOutbound:
		err = uc.createOutbound(ctx, tx, req)
	case models.OperationInbound:
		err = uc.createInbound(ctx, tx, req)
	default:
		return nil, fmt.Errorf("%w: unsupported operation type %q", transactions.ErrInvalidOperation, req.OperationType)
	}
	if err != nil {
		logger.WarnCtx(ctx, "Transaction not created",
			logger.Reference(tx.Reference),
			logger.Err(err))
		return nil, err
	}

	uc.publish(context.WithoutCancel(ctx), tx)
	return tx, nil
}

// normalizeReference keeps a switch-format reference or generates one
func normalizeReference(reference string) string {
	if len(reference) == referenceLength {
		return reference
	}
	return uuid.NewString()
}

func missingField(name string) error {
	return fmt.Errorf("%w: %s is required", transactions.ErrInvalidOperation, name)
}

func (uc *transactionUC) createDeposit(ctx context.Context, tx *models.Transaction, req models.CreateTransactionRequest) error {
	if req.DestinationAccountID == nil {
		return missingField("destination_account_id")
	}
	tx.DestinationAccountID = req.DestinationAccountID

	saga := uc.newSaga()
	balance, err := saga.apply(ctx, *req.DestinationAccountID, tx.Amount)
	if err != nil {
		return err
	}
	tx.ResultingBalanceDestination = decimal.NewNullDecimal(balance)
	tx.Status = models.StatusCompleted
	return uc.persist(ctx, tx, saga)
}

func (uc *transactionUC) createWithdrawal(ctx context.Context, tx *models.Transaction, req models.CreateTransactionRequest) error {
	if req.SourceAccountID == nil {
		return missingField("source_account_id")
	}
	tx.SourceAccountID = req.SourceAccountID

	saga := uc.newSaga()
	balance, err := saga.apply(ctx, *req.SourceAccountID, tx.Amount.Neg())
	if err != nil {
		return err
	}
	tx.ResultingBalanceSource = decimal.NewNullDecimal(balance)
	tx.Status = models.StatusCompleted
	return uc.persist(ctx, tx, saga)
}

func (uc *transactionUC) createInternalTransfer(ctx context.Context, tx *models.Transaction, req models.CreateTransactionRequest) error {
	if req.SourceAccountID == nil {
		return missingField("source_account_id")
	}
	if req.DestinationAccountID == nil {
		return missingField("destination_account_id")
	}
	if *req.SourceAccountID == *req.DestinationAccountID {
		return fmt.Errorf("%w: source and destination accounts must differ", transactions.ErrInvalidOperation)
	}
	tx.SourceAccountID = req.SourceAccountID
	tx.DestinationAccountID = req.DestinationAccountID

	saga := uc.newSaga()
	sourceBalance, err := saga.apply(ctx, *req.SourceAccountID, tx.Amount.Neg())
	if err != nil {
		return err
	}

	destinationBalance, err := saga.apply(ctx, *req.DestinationAccountID, tx.Amount)
	if err != nil {
		if rbErr := saga.rollback(context.WithoutCancel(ctx)); rbErr != nil {
			return rbErr
		}
		return err
	}

	tx.ResultingBalanceSource = decimal.NewNullDecimal(sourceBalance)
	tx.ResultingBalanceDestination = decimal.NewNullDecimal(destinationBalance)
	tx.Status = models.StatusCompleted
	return uc.persist(ctx, tx, saga)
}

func (uc *transactionUC) createInbound(ctx context.Context, tx *models.Transaction, req models.CreateTransactionRequest) error {
	if req.DestinationAccountID == nil {
		return missingField("destination_account_id")
	}
	tx.DestinationAccountID = req.DestinationAccountID
	tx.ExternalAccountNumber = optional(req.ExternalAccountNumber)
	tx.ExternalBankID = optional(req.ExternalBankID)

	saga := uc.newSaga()
	balance, err := saga.apply(ctx, *req.DestinationAccountID, tx.Amount)
	if err != nil {
		return err
	}
	tx.ResultingBalanceDestination = decimal.NewNullDecimal(balance)
	tx.Status = models.StatusCompleted
	return uc.persist(ctx, tx, saga)
}

// createOutbound debits the source, submits to the switch and waits for a
// terminal answer. Any refusal credits the source back before failing
func (uc *transactionUC) createOutbound(ctx context.Context, tx *models.Transaction, req models.CreateTransactionRequest) error {
	if req.SourceAccountID == nil {
		return missingField("source_account_id")
	}
	if strings.TrimSpace(req.ExternalAccountNumber) == "" {
		return missingField("external_account_number")
	}
	tx.SourceAccountID = req.SourceAccountID
	tx.ExternalAccountNumber = optional(strings.TrimSpace(req.ExternalAccountNumber))
	tx.ExternalBankID = optional(req.ExternalBankID)

	saga := uc.newSaga()
	balance, err := saga.apply(ctx, *req.SourceAccountID, tx.Amount.Neg())
	if err != nil {
		return err
	}
	tx.ResultingBalanceSource = decimal.NewNullDecimal(balance)

	// the debit is applied, nothing past this point may be abandoned halfway
	ctx = context.WithoutCancel(ctx)

	intent := uc.transferIntent(ctx, tx, req)
	status, codigo, err := uc.submitAndAwait(ctx, intent)
	if err != nil {
		logger.WarnCtx(ctx, "Outbound transfer refused, compensating",
			logger.Reference(tx.Reference),
			logger.AccountID(*tx.SourceAccountID),
			logger.String("reason", transactions.ReasonCode(err)),
			logger.Err(err))
		if rbErr := saga.rollback(ctx); rbErr != nil {
			return rbErr
		}
		return transactions.BusinessError("transferencia rechazada por el switch", err)
	}

	tx.Status = status
	if codigo != "" {
		tx.CodigoReferencia = &codigo
	}
	if status == models.StatusPending {
		logger.WarnCtx(ctx, "Switch did not confirm in time, transfer left pending",
			logger.Reference(tx.Reference))
	}
	// the switch may already hold the funds, so a failed write is not compensated
	return uc.persist(ctx, tx, nil)
}

// transferIntent resolves the display data of the debtor. Directory failures
// fall back to generic values
func (uc *transactionUC) transferIntent(ctx context.Context, tx *models.Transaction, req models.CreateTransactionRequest) models.TransferIntent {
	sourceID := *tx.SourceAccountID
	intent := models.TransferIntent{
		Reference:       tx.Reference,
		Amount:          tx.Amount,
		DebtorName:      fallbackDebtorName,
		DebtorAccount:   strconv.FormatInt(sourceID, 10),
		CreditorName:    fallbackCreditorName,
		CreditorAccount: *tx.ExternalAccountNumber,
		TargetBankID:    fallbackTargetBank,
		Description:     tx.Description,
	}
	if name := strings.TrimSpace(req.BeneficiaryName); name != "" {
		intent.CreditorName = name
	}
	if tx.ExternalBankID != nil {
		intent.TargetBankID = *tx.ExternalBankID
	}

	account, err := uc.directory.GetAccount(ctx, sourceID)
	if err != nil {
		logger.WarnCtx(ctx, "Debtor account lookup failed, using fallback",
			logger.AccountID(sourceID),
			logger.Err(err))
		return intent
	}
	if account.AccountNumber != "" {
		intent.DebtorAccount = account.AccountNumber
	}
	if account.OwnerName != "" {
		intent.DebtorName = account.OwnerName
		return intent
	}

	customer, err := uc.directory.GetCustomer(ctx, account.CustomerID)
	if err != nil {
		logger.WarnCtx(ctx, "Debtor customer lookup failed, using fallback",
			logger.AccountID(sourceID),
			logger.Err(err))
		return intent
	}
	if customer.FullName != "" {
		intent.DebtorName = customer.FullName
	}
	return intent
}

// submitAndAwait submits intent and, unless the synchronous answer is
// terminal, polls the switch within the configured attempt budget
func (uc *transactionUC) submitAndAwait(ctx context.Context, intent models.TransferIntent) (models.TransactionStatus, string, error) {
	result, err := uc.switchGW.SubmitTransfer(ctx, intent)
	if err != nil {
		return "", "", err
	}

	switch result.Status {
	case models.SwitchStatusCompleted:
		return models.StatusCompleted, result.CodigoReferencia, nil
	case models.SwitchStatusFailed, models.SwitchStatusRejected:
		return "", "", &transactions.SwitchRejectedError{Code: reasonOr(result.ReasonCode), Detail: result.Error}
	}

	status, err := uc.awaitSwitch(ctx, intent.Reference)
	return status, result.CodigoReferencia, err
}

// awaitSwitch waits before each status query. An exhausted budget leaves the
// transfer PENDING
func (uc *transactionUC) awaitSwitch(ctx context.Context, reference string) (models.TransactionStatus, error) {
	for attempt := 1; attempt <= uc.cfg.Engine.PollAttempts; attempt++ {
		if err := uc.sleep(ctx, uc.cfg.Engine.PollInterval); err != nil {
			break
		}

		status := uc.switchGW.QueryStatus(ctx, reference)
		if status == nil {
			continue
		}
		switch status.Status {
		case models.SwitchStatusCompleted:
			logger.InfoCtx(ctx, "Switch confirmed transfer",
				logger.Reference(reference),
				logger.Int("attempt", attempt))
			return models.StatusCompleted, nil
		case models.SwitchStatusFailed, models.SwitchStatusRejected:
			return "", &transactions.SwitchRejectedError{Code: reasonOr(status.ReasonCode), Detail: status.Error}
		}
	}
	return models.StatusPending, nil
}

// persist stores tx, undoing the saga when the record cannot be written. A
// nil saga leaves the balances as they are
func (uc *transactionUC) persist(ctx context.Context, tx *models.Transaction, saga *balanceSaga) error {
	if err := uc.repo.Create(ctx, tx); err != nil {
		logger.ErrorCtx(ctx, "Failed to persist transaction",
			logger.Reference(tx.Reference),
			logger.String("status", string(tx.Status)),
			logger.Err(err))
		if saga == nil {
			return fmt.Errorf("%w: failed to persist transaction %s: %w", transactions.ErrTechnical, tx.Reference, err)
		}
		if rbErr := saga.rollback(context.WithoutCancel(ctx)); rbErr != nil {
			return rbErr
		}
		return fmt.Errorf("failed to persist transaction: %w", err)
	}

	logger.InfoCtx(ctx, "Transaction persisted",
		logger.TransactionID(tx.ID),
		logger.Reference(tx.Reference),
		logger.String("status", string(tx.Status)))
	return nil
}

func reasonOr(code string) string {
	if code == "" {
		return reasonTechnical
	}
	return code
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
