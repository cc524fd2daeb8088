package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/services/transactions"
)

// applyDelta adds delta to the balance of accountID and returns the new
// balance. The read-modify-write runs under the account lock
func (uc *transactionUC) applyDelta(ctx context.Context, accountID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	unlock, err := uc.locker.Lock(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", transactions.ErrTechnical, err)
	}
	defer unlock()

	current, err := uc.ledger.GetBalance(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: account %d: %w", transactions.ErrAccountUnavailable, accountID, err)
	}

	next := current.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: account %d", transactions.ErrInsufficientFunds, accountID)
	}

	if err := uc.ledger.SetBalance(ctx, accountID, next); err != nil {
		return decimal.Zero, fmt.Errorf("%w: account %d: %w", transactions.ErrLedgerWriteFailed, accountID, err)
	}

	logger.InfoCtx(ctx, "Balance updated",
		logger.AccountID(accountID),
		logger.Amount("delta", delta),
		logger.Amount("balance", next))
	return next, nil
}

type appliedDelta struct {
	accountID int64
	delta     decimal.Decimal
}

// balanceSaga records the deltas of one operation so they can be undone
type balanceSaga struct {
	uc      *transactionUC
	applied []appliedDelta
}

func (uc *transactionUC) newSaga() *balanceSaga {
	return &balanceSaga{uc: uc}
}

func (s *balanceSaga) apply(ctx context.Context, accountID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	balance, err := s.uc.applyDelta(ctx, accountID, delta)
	if err != nil {
		return decimal.Zero, err
	}
	s.applied = append(s.applied, appliedDelta{accountID: accountID, delta: delta})
	return balance, nil
}

// rollback applies the inverse of every recorded delta, newest first. A
// failed compensation leaves money out of place and is reported as technical
func (s *balanceSaga) rollback(ctx context.Context) error {
	var errs []error
	for i := len(s.applied) - 1; i >= 0; i-- {
		step := s.applied[i]
		if _, err := s.uc.applyDelta(ctx, step.accountID, step.delta.Neg()); err != nil {
			logger.ErrorCtx(ctx, "Compensation failed, manual intervention required",
				logger.AccountID(step.accountID),
				logger.Amount("delta", step.delta.Neg()),
				logger.Err(err))
			errs = append(errs, err)
			continue
		}
		logger.WarnCtx(ctx, "Balance compensated",
			logger.AccountID(step.accountID),
			logger.Amount("delta", step.delta.Neg()))
	}
	s.applied = nil

	if len(errs) > 0 {
		return fmt.Errorf("%w: compensation failed: %w", transactions.ErrTechnical, errors.Join(errs...))
	}
	return nil
}
