package usecase

import (
	"context"
	"time"

	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/pkg/models"
	"github.com/arcbank/transactions-service/services/transactions"
)

// transactionUC implements transactions.TransactionUC
type transactionUC struct {
	cfg       *models.Config
	repo      transactions.TransactionRepo
	locker    transactions.AccountLocker
	ledger    transactions.LedgerGW
	directory transactions.DirectoryGW
	switchGW  transactions.SwitchGW
	events    transactions.EventGW

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewTransactionUC creates the transaction orchestration engine
func NewTransactionUC(
	cfg *models.Config,
	repo transactions.TransactionRepo,
	locker transactions.AccountLocker,
	ledger transactions.LedgerGW,
	directory transactions.DirectoryGW,
	switchGW transactions.SwitchGW,
	events transactions.EventGW,
) transactions.TransactionUC {
	return &transactionUC{
		cfg:       cfg,
		repo:      repo,
		locker:    locker,
		ledger:    ledger,
		directory: directory,
		switchGW:  switchGW,
		events:    events,
		now:       time.Now,
		sleep:     sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// publish emits a lifecycle event for tx. Failures are logged only
func (uc *transactionUC) publish(ctx context.Context, tx *models.Transaction) {
	if uc.events == nil {
		return
	}
	event := models.TransactionEvent{
		TransactionID: tx.ID,
		Reference:     tx.Reference,
		OperationType: tx.OperationType,
		Status:        tx.Status,
		Amount:        tx.Amount,
		OccurredAt:    uc.now().UTC(),
	}
	if err := uc.events.PublishTransactionEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish transaction event",
			logger.TransactionID(tx.ID),
			logger.Reference(tx.Reference),
			logger.String("status", string(tx.Status)),
			logger.Err(err))
	}
}
