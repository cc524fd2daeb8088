package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcbank/transactions-service/internal/pkg/models"
	"github.com/arcbank/transactions-service/services/transactions"
)

func (f *fixture) expectCreditor(status string) {
	f.directory.EXPECT().GetAccountByNumber(gomock.Any(), "123").
		Return(&models.Account{AccountID: 2, AccountNumber: "123", Status: status}, nil).AnyTimes()
}

func sampleCredit() models.IncomingCredit {
	return models.IncomingCredit{
		Reference:         "R1",
		AccountNumber:     "123",
		Amount:            amount("50.00"),
		OriginatingBankID: "BANTEC",
	}
}

func TestCreditIncoming_Success(t *testing.T) {
	f := newFixture(t, map[int64]string{2: "10"})
	f.expectCreditor("ACTIVA")
	stored := f.storeCreates()
	f.repo.EXPECT().ExistsByReference(gomock.Any(), "R1").Return(false, nil)

	err := f.uc.CreditIncoming(context.Background(), sampleCredit())

	require.NoError(t, err)
	assert.Equal(t, "60.00", f.ledger.balance(2))
	require.Len(t, *stored, 1)
	tx := (*stored)[0]
	assert.Equal(t, "R1", tx.Reference)
	assert.Equal(t, models.OperationInbound, tx.OperationType)
	assert.Equal(t, models.StatusCompleted, tx.Status)
	assert.Equal(t, int64(2), *tx.DestinationAccountID)
	assert.Equal(t, "123", *tx.ExternalAccountNumber)
	assert.Equal(t, "BANTEC", *tx.ExternalBankID)
	assert.Equal(t, "SWITCH", tx.Channel)
	assert.Equal(t, "Transferencia recibida desde BANTEC", tx.Description)
	assert.Equal(t, "60.00", tx.ResultingBalanceDestination.Decimal.StringFixed(2))
}

func TestCreditIncoming_DeliveredTwiceCreditsOnce(t *testing.T) {
	f := newFixture(t, map[int64]string{2: "0"})
	f.expectCreditor("")

	seen := map[string]bool{}
	f.repo.EXPECT().ExistsByReference(gomock.Any(), "R1").
		DoAndReturn(func(_ context.Context, ref string) (bool, error) {
			return seen[ref], nil
		}).Times(2)
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *models.Transaction) error {
			seen[tx.Reference] = true
			return nil
		}).Times(1)

	require.NoError(t, f.uc.CreditIncoming(context.Background(), sampleCredit()))
	require.NoError(t, f.uc.CreditIncoming(context.Background(), sampleCredit()))

	assert.Equal(t, "50.00", f.ledger.balance(2))
	assert.Equal(t, 1, f.ledger.writes)
}

func TestCreditIncoming_DefaultsUnknownBank(t *testing.T) {
	f := newFixture(t, map[int64]string{2: "0"})
	f.expectCreditor("ACTIVE")
	stored := f.storeCreates()
	f.repo.EXPECT().ExistsByReference(gomock.Any(), "R1").Return(false, nil)

	credit := sampleCredit()
	credit.OriginatingBankID = " "
	require.NoError(t, f.uc.CreditIncoming(context.Background(), credit))

	assert.Equal(t, "DESCONOCIDO", *(*stored)[0].ExternalBankID)
	assert.Equal(t, "Transferencia recibida desde DESCONOCIDO", (*stored)[0].Description)
}

func TestCreditIncoming_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		account *models.Account
		lookup  error
		wantErr error
	}{
		{name: "unknown account", lookup: transactions.ErrAccountNotFound, wantErr: transactions.ErrAccountNotFound},
		{name: "closed account", account: &models.Account{AccountID: 2, Status: "CERRADA"}, wantErr: transactions.ErrAccountClosed},
		{name: "blocked account", account: &models.Account{AccountID: 2, Status: "BLOCKED"}, wantErr: transactions.ErrAccountBlocked},
		{name: "directory down", lookup: errors.New("timeout"), wantErr: transactions.ErrTechnical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, map[int64]string{2: "10"})
			f.directory.EXPECT().GetAccountByNumber(gomock.Any(), "123").Return(tt.account, tt.lookup)
			if tt.account != nil {
				f.repo.EXPECT().ExistsByReference(gomock.Any(), "R1").Return(false, nil)
			}

			err := f.uc.CreditIncoming(context.Background(), sampleCredit())

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, "10.00", f.ledger.balance(2))
		})
	}
}

func TestCreditIncoming_RedeliveryAfterAccountBlocked(t *testing.T) {
	f := newFixture(t, map[int64]string{2: "60.00"})
	f.directory.EXPECT().GetAccountByNumber(gomock.Any(), "123").
		Return(&models.Account{AccountID: 2, Status: "BLOCKED"}, nil)
	f.repo.EXPECT().ExistsByReference(gomock.Any(), "R1").Return(true, nil)

	err := f.uc.CreditIncoming(context.Background(), sampleCredit())

	assert.NoError(t, err)
	assert.Equal(t, "60.00", f.ledger.balance(2))
	assert.Equal(t, 0, f.ledger.writes)
}

func TestCreditIncoming_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *models.IncomingCredit)
	}{
		{name: "no reference", modify: func(c *models.IncomingCredit) { c.Reference = "" }},
		{name: "no account", modify: func(c *models.IncomingCredit) { c.AccountNumber = "" }},
		{name: "zero amount", modify: func(c *models.IncomingCredit) { c.Amount = amount("0") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			credit := sampleCredit()
			tt.modify(&credit)

			err := f.uc.CreditIncoming(context.Background(), credit)

			assert.ErrorIs(t, err, transactions.ErrInvalidOperation)
		})
	}
}

func TestCreditIncoming_ConcurrentDuplicateIsUndone(t *testing.T) {
	f := newFixture(t, map[int64]string{2: "10"})
	f.expectCreditor("ACTIVE")
	f.repo.EXPECT().ExistsByReference(gomock.Any(), "R1").Return(false, nil)
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("%w: R1", transactions.ErrDuplicateReference))

	err := f.uc.CreditIncoming(context.Background(), sampleCredit())

	assert.NoError(t, err)
	assert.Equal(t, "10.00", f.ledger.balance(2))
}

func TestCreditIncoming_PersistFailureIsUndone(t *testing.T) {
	f := newFixture(t, map[int64]string{2: "10"})
	f.expectCreditor("ACTIVE")
	f.repo.EXPECT().ExistsByReference(gomock.Any(), "R1").Return(false, nil)
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	err := f.uc.CreditIncoming(context.Background(), sampleCredit())

	assert.ErrorIs(t, err, transactions.ErrTechnical)
	assert.Equal(t, "10.00", f.ledger.balance(2))
}

func TestCreditIncoming_DuplicateCheckFailure(t *testing.T) {
	f := newFixture(t, map[int64]string{2: "10"})
	f.expectCreditor("ACTIVE")
	f.repo.EXPECT().ExistsByReference(gomock.Any(), "R1").Return(false, errors.New("db down"))

	err := f.uc.CreditIncoming(context.Background(), sampleCredit())

	assert.ErrorIs(t, err, transactions.ErrTechnical)
	assert.Equal(t, 0, f.ledger.writes)
}

func queuedTransfer() models.TransferEnvelope {
	return models.TransferEnvelope{
		Header: &models.SwitchHeader{MessageID: "MSG-1", OriginatingBankID: "BANTEC"},
		Body: &models.TransferBody{
			InstructionID: "R1",
			Amount:        &models.SwitchAmount{Currency: "USD", Value: amount("50.00")},
			Creditor:      &models.SwitchParty{AccountID: "123"},
		},
	}
}

func TestHandleQueuedTransfer_Outcomes(t *testing.T) {
	tests := []struct {
		name       string
		account    *models.Account
		lookup     error
		wantStatus string
		wantReason string
	}{
		{name: "credited", account: &models.Account{AccountID: 2, Status: "ACTIVE"}, wantStatus: "COMPLETED", wantReason: ""},
		{name: "unknown account", lookup: transactions.ErrAccountNotFound, wantStatus: "REJECTED", wantReason: "AC03"},
		{name: "blocked account", account: &models.Account{AccountID: 2, Status: "BLOQUEADA"}, wantStatus: "REJECTED", wantReason: "AG01"},
		{name: "closed account", account: &models.Account{AccountID: 2, Status: "CLOSED"}, wantStatus: "REJECTED", wantReason: "AC04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, map[int64]string{2: "0"})
			f.directory.EXPECT().GetAccountByNumber(gomock.Any(), "123").Return(tt.account, tt.lookup)
			f.repo.EXPECT().ExistsByReference(gomock.Any(), "R1").Return(false, nil).AnyTimes()
			f.storeCreates()
			f.switchGW.EXPECT().SendCallback(gomock.Any(), "R1", tt.wantStatus, tt.wantReason)

			err := f.uc.HandleQueuedTransfer(context.Background(), queuedTransfer())

			assert.NoError(t, err)
		})
	}
}

func TestHandleQueuedTransfer_TechnicalFailureIsRedelivered(t *testing.T) {
	f := newFixture(t, map[int64]string{2: "0"})
	f.directory.EXPECT().GetAccountByNumber(gomock.Any(), "123").Return(nil, errors.New("directory down"))

	err := f.uc.HandleQueuedTransfer(context.Background(), queuedTransfer())

	assert.ErrorIs(t, err, transactions.ErrTechnical)
}

func TestHandleQueuedTransfer_MalformedIsAcknowledged(t *testing.T) {
	f := newFixture(t, nil)

	assert.NoError(t, f.uc.HandleQueuedTransfer(context.Background(), models.TransferEnvelope{}))
	assert.NoError(t, f.uc.HandleQueuedTransfer(context.Background(), models.TransferEnvelope{Body: &models.TransferBody{}}))
}

func TestHandleQueuedTransfer_IncompleteIsRejected(t *testing.T) {
	f := newFixture(t, nil)
	envelope := queuedTransfer()
	envelope.Body.Creditor = nil
	f.switchGW.EXPECT().SendCallback(gomock.Any(), "R1", "REJECTED", "MS03")

	err := f.uc.HandleQueuedTransfer(context.Background(), envelope)

	assert.NoError(t, err)
}

func TestHandleQueuedTransfer_UnknownOriginBank(t *testing.T) {
	f := newFixture(t, map[int64]string{2: "0"})
	f.expectCreditor("ACTIVE")
	f.repo.EXPECT().ExistsByReference(gomock.Any(), "R1").Return(false, nil)
	stored := f.storeCreates()
	f.switchGW.EXPECT().SendCallback(gomock.Any(), "R1", "COMPLETED", "")

	envelope := queuedTransfer()
	envelope.Header = nil
	require.NoError(t, f.uc.HandleQueuedTransfer(context.Background(), envelope))

	assert.Equal(t, "UNK", *(*stored)[0].ExternalBankID)
}
