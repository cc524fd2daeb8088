package worker

import (
	"context"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/arcbank/transactions-service/internal/pkg/logger"
	nrpkg "github.com/arcbank/transactions-service/internal/pkg/newrelic"
	"github.com/arcbank/transactions-service/services/transactions"
)

// Reconciler periodically settles PENDING outbound transfers with the switch
type Reconciler struct {
	transactionUC transactions.TransactionUC
	lease         transactions.SweepLease
	interval      time.Duration
	nrApp         *newrelic.Application
}

// NewReconciler creates the sweep worker. A nil lease sweeps on every replica
func NewReconciler(transactionUC transactions.TransactionUC, lease transactions.SweepLease, interval time.Duration, nrApp *newrelic.Application) *Reconciler {
	return &Reconciler{
		transactionUC: transactionUC,
		lease:         lease,
		interval:      interval,
		nrApp:         nrApp,
	}
}

// Run sweeps on every tick until ctx is cancelled
func (r *Reconciler) Run(ctx context.Context) error {
	logger.Info("Starting reconciliation worker", logger.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Reconciliation worker stopped")
			return ctx.Err()
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep runs one reconciliation pass if this replica holds the lease
func (r *Reconciler) Sweep(ctx context.Context) {
	if r.lease != nil {
		acquired, err := r.lease.Acquire(ctx)
		if err != nil {
			logger.Warn("Skipping reconciliation sweep", logger.Err(err))
			return
		}
		if !acquired {
			logger.Debug("Reconciliation lease held by another replica")
			return
		}
		defer func() {
			if err := r.lease.Release(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("Failed to release reconciliation lease", logger.Err(err))
			}
		}()
	}

	ctx, end := nrpkg.StartBackgroundTransaction(ctx, r.nrApp, "Worker.ReconcilePending")
	defer end()

	settled, err := r.transactionUC.ReconcilePending(ctx)
	if err != nil {
		logger.ErrorCtx(ctx, "Reconciliation sweep failed",
			logger.Int("settled", settled),
			logger.Err(err))
		return
	}
	if settled > 0 {
		logger.InfoCtx(ctx, "Reconciliation sweep settled transactions", logger.Int("settled", settled))
	}
}
