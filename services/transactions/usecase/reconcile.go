package usecase

import (
	"context"
	"fmt"

	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/pkg/models"
	"github.com/arcbank/transactions-service/services/transactions"
)

// ReconcilePending settles the PENDING outbound transfers older than the
// grace period and returns how many reached a terminal status
func (uc *transactionUC) ReconcilePending(ctx context.Context) (int, error) {
	cutoff := uc.now().UTC().Add(-uc.cfg.Reconciler.Grace)
	pending, err := uc.repo.ListPendingOutbound(ctx, cutoff, uc.cfg.Reconciler.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending transfers: %w", err)
	}

	settled := 0
	for _, tx := range pending {
		if err := ctx.Err(); err != nil {
			return settled, err
		}

		changed, err := uc.settlePending(ctx, tx, uc.switchGW.QueryStatus(ctx, tx.Reference))
		if err != nil {
			logger.ErrorCtx(ctx, "Failed to settle pending transfer",
				logger.TransactionID(tx.ID),
				logger.Reference(tx.Reference),
				logger.Err(err))
			continue
		}
		if changed {
			settled++
		}
	}

	if len(pending) > 0 {
		logger.InfoCtx(ctx, "Pending transfers reconciled",
			logger.Int("checked", len(pending)),
			logger.Int("settled", settled))
	}
	return settled, nil
}

// settlePending applies a terminal switch status to a PENDING outbound
// transfer. The status compare-and-set guarantees a single compensation when
// the sweep and a detail query race
func (uc *transactionUC) settlePending(ctx context.Context, tx *models.Transaction, status *models.SwitchStatus) (bool, error) {
	if status == nil {
		return false, nil
	}

	var target models.TransactionStatus
	switch status.Status {
	case models.SwitchStatusCompleted:
		target = models.StatusCompleted
	case models.SwitchStatusFailed, models.SwitchStatusRejected:
		target = models.StatusFailed
	default:
		return false, nil
	}

	moved, err := uc.repo.TransitionStatus(ctx, tx.ID, models.StatusPending, target)
	if err != nil {
		return false, err
	}
	if !moved {
		return false, nil
	}
	tx.Status = target

	logger.InfoCtx(ctx, "Pending transfer settled from switch status",
		logger.TransactionID(tx.ID),
		logger.Reference(tx.Reference),
		logger.String("status", string(target)),
		logger.String("reason", status.ReasonCode))

	if target == models.StatusFailed && tx.SourceAccountID != nil {
		ctx = context.WithoutCancel(ctx)
		if _, err := uc.applyDelta(ctx, *tx.SourceAccountID, tx.Amount); err != nil {
			logger.ErrorCtx(ctx, "Transfer failed at switch but the source credit failed, manual intervention required",
				logger.TransactionID(tx.ID),
				logger.AccountID(*tx.SourceAccountID),
				logger.Amount("amount", tx.Amount),
				logger.Err(err))
			return true, fmt.Errorf("%w: compensate %s: %w", transactions.ErrTechnical, tx.Reference, err)
		}
	}

	uc.publish(ctx, tx)
	return true, nil
}
