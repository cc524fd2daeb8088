package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"

	"github.com/arcbank/transactions-service/internal/pkg/models"
	"github.com/arcbank/transactions-service/services/transactions"
	"github.com/arcbank/transactions-service/services/transactions/mocks"
	"github.com/arcbank/transactions-service/services/transactions/repository"
)

var errLedgerDown = errors.New("ledger down")

// fakeLedger keeps balances in memory so tests can check conservation of funds
type fakeLedger struct {
	mu        sync.Mutex
	balances  map[int64]decimal.Decimal
	failRead  map[int64]bool
	failWrite map[int64]bool
	writes    int
}

func newFakeLedger(balances map[int64]string) *fakeLedger {
	l := &fakeLedger{
		balances:  make(map[int64]decimal.Decimal),
		failRead:  make(map[int64]bool),
		failWrite: make(map[int64]bool),
	}
	for id, b := range balances {
		l.balances[id] = decimal.RequireFromString(b)
	}
	return l
}

func (l *fakeLedger) GetBalance(_ context.Context, accountID int64) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failRead[accountID] {
		return decimal.Zero, errLedgerDown
	}
	b, ok := l.balances[accountID]
	if !ok {
		return decimal.Zero, transactions.ErrAccountNotFound
	}
	return b, nil
}

func (l *fakeLedger) SetBalance(_ context.Context, accountID int64, balance decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failWrite[accountID] {
		return errLedgerDown
	}
	l.balances[accountID] = balance
	l.writes++
	return nil
}

func (l *fakeLedger) setFailWrite(accountID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failWrite[accountID] = true
}

func (l *fakeLedger) balance(accountID int64) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[accountID].StringFixed(2)
}

type fixture struct {
	repo      *mocks.MockTransactionRepo
	directory *mocks.MockDirectoryGW
	switchGW  *mocks.MockSwitchGW
	events    *mocks.MockEventGW
	ledger    *fakeLedger
	uc        *transactionUC
	now       time.Time
	sleeps    int
}

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T, balances map[int64]string) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:      mocks.NewMockTransactionRepo(ctrl),
		directory: mocks.NewMockDirectoryGW(ctrl),
		switchGW:  mocks.NewMockSwitchGW(ctrl),
		events:    mocks.NewMockEventGW(ctrl),
		ledger:    newFakeLedger(balances),
		now:       testNow,
	}

	cfg := &models.Config{}
	cfg.Engine.PollInterval = 1500 * time.Millisecond
	cfg.Engine.PollAttempts = 3
	cfg.Engine.ReversalWindow = 24 * time.Hour
	cfg.Reconciler.Grace = 30 * time.Second
	cfg.Reconciler.BatchSize = 50

	uc := NewTransactionUC(cfg, f.repo, repository.NewMemoryLocker(), f.ledger, f.directory, f.switchGW, f.events).(*transactionUC)
	uc.now = func() time.Time { return f.now }
	uc.sleep = func(context.Context, time.Duration) error {
		f.sleeps++
		return nil
	}
	f.uc = uc

	f.events.EXPECT().PublishTransactionEvent(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	return f
}

// storeCreates makes repo.Create assign ids and collect the stored records
func (f *fixture) storeCreates() *[]*models.Transaction {
	var stored []*models.Transaction
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *models.Transaction) error {
			tx.ID = int64(100 + len(stored))
			stored = append(stored, tx)
			return nil
		}).AnyTimes()
	return &stored
}

func int64Ptr(v int64) *int64 {
	return &v
}

func stringPtr(v string) *string {
	return &v
}

func amount(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}
