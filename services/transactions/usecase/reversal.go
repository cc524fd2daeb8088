package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arcbank/transactions-service/internal/pkg/constants"
	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/pkg/models"
	"github.com/arcbank/transactions-service/services/transactions"
)

// reversedMarker is appended to the description of a transaction the switch returned
const reversedMarker = " [R]"

// creationLayouts are the timestamp formats seen in switch headers
var creationLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"}

// RequestReversalByID reverses the transaction with the given id
func (uc *transactionUC) RequestReversalByID(ctx context.Context, id int64, reason string) (*models.Transaction, error) {
	original, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.reverse(ctx, original, reason)
}

// RequestReversalByReference reverses the transaction with the given reference
func (uc *transactionUC) RequestReversalByReference(ctx context.Context, reference, reason string) (*models.Transaction, error) {
	original, err := uc.repo.GetByReference(ctx, strings.TrimSpace(reference))
	if err != nil {
		return nil, err
	}
	return uc.reverse(ctx, original, reason)
}

// checkReversible enforces the window, status and type preconditions
func (uc *transactionUC) checkReversible(original *models.Transaction) error {
	if uc.now().Sub(original.CreatedAt) > uc.cfg.Engine.ReversalWindow {
		return transactions.BusinessError("el plazo para reversar la transacción expiró", nil)
	}
	if original.Status.IsUndone() {
		return transactions.BusinessError("la transacción ya fue reversada", nil)
	}
	if !original.OperationType.IsInterbank() {
		return transactions.BusinessError("solo las transferencias interbancarias pueden reversarse", nil)
	}
	if original.Status != models.StatusCompleted {
		return transactions.BusinessError(fmt.Sprintf("una transacción %s no puede reversarse", original.Status), nil)
	}
	return nil
}

func (uc *transactionUC) reverse(ctx context.Context, original *models.Transaction, reason string) (*models.Transaction, error) {
	if err := uc.checkReversible(original); err != nil {
		logger.WarnCtx(ctx, "Reversal refused",
			logger.TransactionID(original.ID),
			logger.Reference(original.Reference),
			logger.Err(err))
		return nil, err
	}

	target := models.StatusReturned
	if original.OperationType == models.OperationOutbound {
		target = models.StatusReversed
	}
	if err := uc.claim(ctx, original, target); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Reversing transaction",
		logger.TransactionID(original.ID),
		logger.Reference(original.Reference),
		logger.String("reason", reason))

	if original.OperationType == models.OperationOutbound {
		return uc.reverseOutbound(ctx, original, reason)
	}
	return uc.reverseInbound(ctx, original, reason)
}

// claim moves a COMPLETED original to target before any balance changes, so
// only one reversal of a transaction can proceed
func (uc *transactionUC) claim(ctx context.Context, original *models.Transaction, target models.TransactionStatus) error {
	moved, err := uc.repo.TransitionStatus(ctx, original.ID, models.StatusCompleted, target)
	if err != nil {
		return fmt.Errorf("%w: claim %s: %w", transactions.ErrTechnical, original.Reference, err)
	}
	if !moved {
		logger.WarnCtx(ctx, "Reversal lost the race for the transaction",
			logger.TransactionID(original.ID),
			logger.Reference(original.Reference))
		return transactions.BusinessError("la transacción ya fue reversada", nil)
	}
	original.Status = target
	return nil
}

// release hands a claimed original back to previous once every balance
// change of the reversal has been undone
func (uc *transactionUC) release(ctx context.Context, original *models.Transaction, previous models.TransactionStatus) {
	if _, err := uc.repo.TransitionStatus(ctx, original.ID, original.Status, previous); err != nil {
		logger.ErrorCtx(ctx, "Failed to release reversal claim, manual intervention required",
			logger.TransactionID(original.ID),
			logger.String("status", string(original.Status)),
			logger.Err(err))
		return
	}
	original.Status = previous
}

// reverseOutbound asks the switch to return an outbound transfer and credits
// the source once it accepts
func (uc *transactionUC) reverseOutbound(ctx context.Context, original *models.Transaction, reason string) (*models.Transaction, error) {
	ctx = context.WithoutCancel(ctx)
	if original.SourceAccountID == nil {
		uc.release(ctx, original, models.StatusCompleted)
		return nil, fmt.Errorf("%w: transaction %d has no source account", transactions.ErrTechnical, original.ID)
	}

	err := uc.switchGW.SubmitReturn(ctx, models.ReturnIntent{
		OriginalReference: original.Reference,
		Reason:            reason,
		Amount:            original.Amount,
	})
	if err != nil {
		uc.release(ctx, original, models.StatusCompleted)
		return nil, transactions.BusinessError("el switch rechazó la devolución", err)
	}

	// the switch already moved the funds, so the claim stays even if the credit fails
	balance, err := uc.applyDelta(ctx, *original.SourceAccountID, original.Amount)
	if err != nil {
		logger.ErrorCtx(ctx, "Switch accepted the return but the source credit failed",
			logger.Reference(original.Reference),
			logger.AccountID(*original.SourceAccountID),
			logger.Err(err))
		return nil, fmt.Errorf("%w: credit after return: %w", transactions.ErrTechnical, err)
	}

	record := uc.reversalRecord(original, uuid.NewString(), original.Amount, "Reverso: "+reason)
	record.Channel = original.Channel
	record.DestinationAccountID = original.SourceAccountID
	record.ResultingBalanceDestination = decimal.NewNullDecimal(balance)

	if err := uc.finishReversal(ctx, original, record); err != nil {
		return nil, err
	}
	return original, nil
}

// reverseInbound debits the credited account first and hands the funds back
// to the switch, crediting them again when the switch refuses
func (uc *transactionUC) reverseInbound(ctx context.Context, original *models.Transaction, reason string) (*models.Transaction, error) {
	ctx = context.WithoutCancel(ctx)
	if original.DestinationAccountID == nil {
		uc.release(ctx, original, models.StatusCompleted)
		return nil, fmt.Errorf("%w: transaction %d has no destination account", transactions.ErrTechnical, original.ID)
	}

	saga := uc.newSaga()
	balance, err := saga.apply(ctx, *original.DestinationAccountID, original.Amount.Neg())
	if err != nil {
		uc.release(ctx, original, models.StatusCompleted)
		return nil, transactions.BusinessError("no se pudo debitar la cuenta destino", err)
	}

	err = uc.switchGW.SubmitReturn(ctx, models.ReturnIntent{
		OriginalReference: original.Reference,
		Reason:            reason,
		Amount:            original.Amount,
	})
	if err != nil {
		if rbErr := saga.rollback(ctx); rbErr != nil {
			return nil, rbErr
		}
		uc.release(ctx, original, models.StatusCompleted)
		return nil, transactions.BusinessError("el switch rechazó la devolución", err)
	}

	record := uc.reversalRecord(original, uuid.NewString(), original.Amount, "Devolución: "+reason)
	record.Channel = original.Channel
	record.SourceAccountID = original.DestinationAccountID
	record.ResultingBalanceSource = decimal.NewNullDecimal(balance)

	if err := uc.finishReversal(ctx, original, record); err != nil {
		return nil, err
	}
	return original, nil
}

// ProcessSwitchReturn applies a return the switch pushed for a transaction
// this bank sent or received. The original is claimed before its account
// moves, and a failed write undoes the balance change and the claim, so
// redeliveries apply the return once
func (uc *transactionUC) ProcessSwitchReturn(ctx context.Context, envelope models.ReturnEnvelope) error {
	body := envelope.Body
	if body == nil || strings.TrimSpace(body.OriginalInstructionID) == "" {
		return missingField("originalInstructionId")
	}

	original, err := uc.repo.GetByReference(ctx, strings.TrimSpace(body.OriginalInstructionID))
	if err != nil {
		return err
	}
	if original.Status.IsUndone() {
		logger.InfoCtx(ctx, "Switch return already applied",
			logger.Reference(original.Reference),
			logger.String("status", string(original.Status)))
		return nil
	}

	amount := original.Amount
	if body.ReturnAmount != nil && body.ReturnAmount.Value.IsPositive() {
		if body.ReturnAmount.Value.GreaterThan(original.Amount) {
			return fmt.Errorf("%w: return of %s exceeds the original amount %s",
				transactions.ErrInvalidOperation, body.ReturnAmount.Value.StringFixed(2), original.Amount.StringFixed(2))
		}
		amount = body.ReturnAmount.Value
	}

	var (
		accountID *int64
		delta     decimal.Decimal
	)
	switch original.OperationType {
	case models.OperationOutbound:
		accountID, delta = original.SourceAccountID, amount
	case models.OperationInbound:
		accountID, delta = original.DestinationAccountID, amount.Neg()
	default:
		logger.WarnCtx(ctx, "Switch return for a non interbank transaction ignored",
			logger.Reference(original.Reference),
			logger.String("operation_type", string(original.OperationType)))
		return nil
	}
	if accountID == nil {
		return fmt.Errorf("%w: transaction %d has no affected account", transactions.ErrTechnical, original.ID)
	}

	reference := strings.TrimSpace(body.ReturnInstructionID)
	if reference == "" {
		reference = uuid.NewString()
	}
	record := uc.reversalRecord(original, reference, amount, "Reverso Switch: "+body.ReturnReason)
	if envelope.Header != nil {
		record.ExternalBankID = optional(envelope.Header.OriginatingBankID)
		record.CreatedAt = uc.parseCreation(envelope.Header.CreationDateTime)
	}

	previous := original.Status
	moved, err := uc.repo.TransitionStatus(ctx, original.ID, previous, models.StatusReversed)
	if err != nil {
		return fmt.Errorf("%w: claim %s: %w", transactions.ErrTechnical, original.Reference, err)
	}
	if !moved {
		current, err := uc.repo.GetByReference(ctx, original.Reference)
		if err == nil && current.Status.IsUndone() {
			logger.InfoCtx(ctx, "Switch return applied by a concurrent delivery", logger.Reference(original.Reference))
			return nil
		}
		return fmt.Errorf("%w: transaction %s changed status while applying a return", transactions.ErrTechnical, original.Reference)
	}
	original.Status = models.StatusReversed
	ctx = context.WithoutCancel(ctx)

	saga := uc.newSaga()
	balance, err := saga.apply(ctx, *accountID, delta)
	if err != nil {
		uc.release(ctx, original, previous)
		return err
	}
	if delta.IsPositive() {
		record.DestinationAccountID = accountID
		record.ResultingBalanceDestination = decimal.NewNullDecimal(balance)
	} else {
		record.SourceAccountID = accountID
		record.ResultingBalanceSource = decimal.NewNullDecimal(balance)
	}

	description := original.Description
	original.Description += reversedMarker
	if err := uc.finishReversal(ctx, original, record); err != nil {
		if rbErr := saga.rollback(ctx); rbErr != nil {
			return rbErr
		}
		original.Description = description
		uc.release(ctx, original, previous)
		if errors.Is(err, transactions.ErrDuplicateReference) {
			logger.WarnCtx(ctx, "Switch return reference already stored, delivery ignored",
				logger.Reference(original.Reference),
				logger.String("reversal_reference", record.Reference))
			return nil
		}
		return err
	}
	return nil
}

func (uc *transactionUC) reversalRecord(original *models.Transaction, reference string, amount decimal.Decimal, description string) *models.Transaction {
	originalID := original.ID
	return &models.Transaction{
		Reference:               reference,
		OperationType:           models.OperationReversal,
		Amount:                  amount,
		Channel:                 constants.ChannelSwitch,
		Description:             description,
		Status:                  models.StatusCompleted,
		CreatedAt:               uc.now().UTC(),
		ReversalOfTransactionID: &originalID,
	}
}

// finishReversal stores the compensating record of a claimed original. Once
// the record exists the reversal is durable, so a failed update of the
// original is only logged
func (uc *transactionUC) finishReversal(ctx context.Context, original, record *models.Transaction) error {
	if err := uc.repo.Create(ctx, record); err != nil {
		logger.ErrorCtx(ctx, "Balance reversed but the reversal record could not be stored",
			logger.Reference(original.Reference),
			logger.String("reversal_reference", record.Reference),
			logger.Err(err))
		return fmt.Errorf("%w: store reversal of %s: %w", transactions.ErrTechnical, original.Reference, err)
	}

	if err := uc.repo.Update(ctx, original); err != nil {
		logger.ErrorCtx(ctx, "Failed to update reversed transaction",
			logger.TransactionID(original.ID),
			logger.Err(err))
	}

	logger.InfoCtx(ctx, "Transaction reversed",
		logger.TransactionID(original.ID),
		logger.Int64("reversal_id", record.ID),
		logger.String("status", string(original.Status)))
	uc.publish(ctx, record)
	uc.publish(ctx, original)
	return nil
}

func (uc *transactionUC) parseCreation(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range creationLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return uc.now().UTC()
}
