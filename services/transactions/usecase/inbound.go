package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/arcbank/transactions-service/internal/pkg/constants"
	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/pkg/models"
	"github.com/arcbank/transactions-service/services/transactions"
)

// Canonical reason codes reported back to the switch
const (
	reasonTechnical      = "MS03"
	reasonAccountUnknown = "AC03"
	reasonAccountClosed  = "AC04"
	reasonProhibited     = "AG01"
)

// Originating bank recorded when the sender does not identify itself
const (
	unknownBankWebhook = "DESCONOCIDO"
	unknownBankQueue   = "UNK"
)

// CreditIncoming applies an inbound interbank transfer exactly once
func (uc *transactionUC) CreditIncoming(ctx context.Context, credit models.IncomingCredit) error {
	credit.Reference = strings.TrimSpace(credit.Reference)
	credit.AccountNumber = strings.TrimSpace(credit.AccountNumber)
	if credit.Reference == "" {
		return missingField("reference")
	}
	if credit.AccountNumber == "" {
		return missingField("account_number")
	}
	if !credit.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", transactions.ErrInvalidOperation)
	}
	bank := strings.TrimSpace(credit.OriginatingBankID)
	if bank == "" {
		bank = unknownBankWebhook
	}

	account, err := uc.directory.GetAccountByNumber(ctx, credit.AccountNumber)
	if err != nil {
		if errors.Is(err, transactions.ErrAccountNotFound) {
			return fmt.Errorf("account %s: %w", credit.AccountNumber, err)
		}
		return fmt.Errorf("%w: directory lookup for %s: %w", transactions.ErrTechnical, credit.AccountNumber, err)
	}
	exists, err := uc.repo.ExistsByReference(ctx, credit.Reference)
	if err != nil {
		return fmt.Errorf("%w: duplicate check for %s: %w", transactions.ErrTechnical, credit.Reference, err)
	}
	// a redelivery keeps its first outcome even if the account changed since
	if exists {
		logger.InfoCtx(ctx, "Duplicate inbound transfer ignored", logger.Reference(credit.Reference))
		return nil
	}

	switch account.NormalizedStatus() {
	case models.AccountStatusClosed:
		return fmt.Errorf("account %s: %w", credit.AccountNumber, transactions.ErrAccountClosed)
	case models.AccountStatusBlocked:
		return fmt.Errorf("account %s: %w", credit.AccountNumber, transactions.ErrAccountBlocked)
	}

	saga := uc.newSaga()
	balance, err := saga.apply(ctx, account.AccountID, credit.Amount)
	if err != nil {
		return err
	}
	ctx = context.WithoutCancel(ctx)

	accountID := account.AccountID
	tx := &models.Transaction{
		Reference:                   credit.Reference,
		OperationType:               models.OperationInbound,
		DestinationAccountID:        &accountID,
		ExternalAccountNumber:       &credit.AccountNumber,
		ExternalBankID:              &bank,
		Amount:                      credit.Amount,
		ResultingBalanceDestination: decimal.NewNullDecimal(balance),
		Channel:                     constants.ChannelSwitch,
		Description:                 "Transferencia recibida desde " + bank,
		Status:                      models.StatusCompleted,
		CreatedAt:                   uc.now().UTC(),
	}

	if err := uc.repo.Create(ctx, tx); err != nil {
		if rbErr := saga.rollback(ctx); rbErr != nil {
			return rbErr
		}
		if errors.Is(err, transactions.ErrDuplicateReference) {
			// a concurrent delivery of the same reference was stored first
			logger.InfoCtx(ctx, "Concurrent duplicate inbound transfer ignored", logger.Reference(credit.Reference))
			return nil
		}
		return fmt.Errorf("%w: failed to persist inbound transfer: %w", transactions.ErrTechnical, err)
	}

	logger.InfoCtx(ctx, "Inbound transfer credited",
		logger.TransactionID(tx.ID),
		logger.Reference(tx.Reference),
		logger.AccountID(accountID),
		logger.Amount("amount", tx.Amount))
	uc.publish(ctx, tx)
	return nil
}

// HandleQueuedTransfer credits a transfer delivered through the queue and
// reports the outcome with a callback. Technical failures are returned so
// the message is redelivered
func (uc *transactionUC) HandleQueuedTransfer(ctx context.Context, envelope models.TransferEnvelope) error {
	body := envelope.Body
	if body == nil || strings.TrimSpace(body.InstructionID) == "" {
		logger.ErrorCtx(ctx, "Malformed queued transfer discarded")
		return nil
	}

	credit := models.IncomingCredit{
		Reference:         body.InstructionID,
		OriginatingBankID: unknownBankQueue,
	}
	if body.Creditor != nil {
		credit.AccountNumber = body.Creditor.AccountID
	}
	if body.Amount != nil {
		credit.Amount = body.Amount.Value
	}
	if envelope.Header != nil && envelope.Header.OriginatingBankID != "" {
		credit.OriginatingBankID = envelope.Header.OriginatingBankID
	}

	err := uc.CreditIncoming(ctx, credit)
	status, reason, ok := callbackOutcome(err)
	if !ok {
		logger.ErrorCtx(ctx, "Queued transfer failed, leaving for redelivery",
			logger.Reference(credit.Reference),
			logger.Err(err))
		return err
	}
	if err != nil {
		logger.WarnCtx(ctx, "Queued transfer rejected",
			logger.Reference(credit.Reference),
			logger.String("reason", reason),
			logger.Err(err))
	}

	uc.switchGW.SendCallback(ctx, body.InstructionID, status, reason)
	return nil
}

// callbackOutcome maps a credit result onto the callback vocabulary. ok is
// false for failures that must not be acknowledged
func callbackOutcome(err error) (status, reason string, ok bool) {
	switch {
	case err == nil:
		return models.SwitchStatusCompleted, "", true
	case errors.Is(err, transactions.ErrAccountNotFound):
		return models.SwitchStatusRejected, reasonAccountUnknown, true
	case errors.Is(err, transactions.ErrAccountBlocked):
		return models.SwitchStatusRejected, reasonProhibited, true
	case errors.Is(err, transactions.ErrAccountClosed):
		return models.SwitchStatusRejected, reasonAccountClosed, true
	case errors.Is(err, transactions.ErrInvalidOperation):
		// redelivering an incomplete transfer can never succeed
		return models.SwitchStatusRejected, reasonTechnical, true
	default:
		return "", "", false
	}
}
