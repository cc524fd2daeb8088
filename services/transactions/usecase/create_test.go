package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcbank/transactions-service/internal/pkg/models"
	"github.com/arcbank/transactions-service/services/transactions"
)

const validReference = "0f8fad5b-d9cb-469f-a165-70867728950e"

func (f *fixture) expectDebtor() {
	f.directory.EXPECT().GetAccount(gomock.Any(), int64(7)).
		Return(&models.Account{AccountID: 7, AccountNumber: "2200001111", CustomerID: 3}, nil)
	f.directory.EXPECT().GetCustomer(gomock.Any(), int64(3)).
		Return(&models.Customer{CustomerID: 3, FullName: "Ana Torres"}, nil)
}

func outboundRequest() models.CreateTransactionRequest {
	return models.CreateTransactionRequest{
		Reference:             validReference,
		OperationType:         "TRANSFERENCIA_INTERBANCARIA",
		SourceAccountID:       int64Ptr(7),
		ExternalAccountNumber: "998877",
		ExternalBankID:        "BANTEC",
		BeneficiaryName:       "Luis Vega",
		Amount:                amount("100.00"),
		Description:           "Pago alquiler",
	}
}

func TestCreateTransaction_Deposit(t *testing.T) {
	f := newFixture(t, map[int64]string{2: "10"})
	stored := f.storeCreates()

	tx, err := f.uc.CreateTransaction(context.Background(), models.CreateTransactionRequest{
		Reference:            "short-ref",
		OperationType:        "DEPOSITO",
		DestinationAccountID: int64Ptr(2),
		Amount:               amount("40"),
	})

	require.NoError(t, err)
	require.Len(t, *stored, 1)
	assert.Equal(t, models.OperationDeposit, tx.OperationType)
	assert.Equal(t, models.StatusCompleted, tx.Status)
	assert.Len(t, tx.Reference, referenceLength)
	assert.NotEqual(t, "short-ref", tx.Reference)
	assert.Equal(t, "WEB", tx.Channel)
	assert.Equal(t, "50.00", tx.ResultingBalanceDestination.Decimal.StringFixed(2))
	assert.False(t, tx.ResultingBalanceSource.Valid)
	assert.Equal(t, testNow, tx.CreatedAt)
	assert.Equal(t, "50.00", f.ledger.balance(2))
}

func TestCreateTransaction_KeepsSwitchFormatReference(t *testing.T) {
	f := newFixture(t, map[int64]string{1: "100"})
	f.storeCreates()

	tx, err := f.uc.CreateTransaction(context.Background(), models.CreateTransactionRequest{
		Reference:       validReference,
		OperationType:   "WITHDRAWAL",
		SourceAccountID: int64Ptr(1),
		Amount:          amount("30"),
		Channel:         "ATM",
	})

	require.NoError(t, err)
	assert.Equal(t, validReference, tx.Reference)
	assert.Equal(t, "ATM", tx.Channel)
	assert.Equal(t, "70.00", tx.ResultingBalanceSource.Decimal.StringFixed(2))
}

func TestCreateTransaction_WithdrawalInsufficientFunds(t *testing.T) {
	f := newFixture(t, map[int64]string{1: "20"})

	tx, err := f.uc.CreateTransaction(context.Background(), models.CreateTransactionRequest{
		OperationType:   "RETIRO",
		SourceAccountID: int64Ptr(1),
		Amount:          amount("20.01"),
	})

	assert.Nil(t, tx)
	assert.ErrorIs(t, err, transactions.ErrInsufficientFunds)
	assert.Equal(t, "20.00", f.ledger.balance(1))
}

func TestCreateTransaction_InvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateTransactionRequest
	}{
		{name: "zero amount", req: models.CreateTransactionRequest{OperationType: "DEPOSIT", DestinationAccountID: int64Ptr(1)}},
		{name: "negative amount", req: models.CreateTransactionRequest{OperationType: "DEPOSIT", DestinationAccountID: int64Ptr(1), Amount: amount("-5")}},
		{name: "unsupported type", req: models.CreateTransactionRequest{OperationType: "LOAN", DestinationAccountID: int64Ptr(1), Amount: amount("5")}},
		{name: "reversal is not creatable", req: models.CreateTransactionRequest{OperationType: "REVERSAL", DestinationAccountID: int64Ptr(1), Amount: amount("5")}},
		{name: "deposit without destination", req: models.CreateTransactionRequest{OperationType: "DEPOSIT", Amount: amount("5")}},
		{name: "withdrawal without source", req: models.CreateTransactionRequest{OperationType: "WITHDRAWAL", Amount: amount("5")}},
		{name: "internal to same account", req: models.CreateTransactionRequest{OperationType: "INTERNAL_TRANSFER", SourceAccountID: int64Ptr(1), DestinationAccountID: int64Ptr(1), Amount: amount("5")}},
		{name: "internal without destination", req: models.CreateTransactionRequest{OperationType: "INTERNAL_TRANSFER", SourceAccountID: int64Ptr(1), Amount: amount("5")}},
		{name: "outbound without external account", req: models.CreateTransactionRequest{OperationType: "OUTBOUND_INTERBANK_TRANSFER", SourceAccountID: int64Ptr(1), Amount: amount("5")}},
		{name: "inbound without destination", req: models.CreateTransactionRequest{OperationType: "INBOUND_INTERBANK_TRANSFER", Amount: amount("5")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, map[int64]string{1: "100"})

			tx, err := f.uc.CreateTransaction(context.Background(), tt.req)

			assert.Nil(t, tx)
			assert.ErrorIs(t, err, transactions.ErrInvalidOperation)
			assert.Equal(t, 0, f.ledger.writes)
		})
	}
}

func TestCreateTransaction_InternalTransferConservesFunds(t *testing.T) {
	f := newFixture(t, map[int64]string{1: "300", 2: "45.25"})
	f.storeCreates()

	tx, err := f.uc.CreateTransaction(context.Background(), models.CreateTransactionRequest{
		OperationType:        "TRANSFERENCIA_INTERNA",
		SourceAccountID:      int64Ptr(1),
		DestinationAccountID: int64Ptr(2),
		Amount:               amount("120.75"),
	})

	require.NoError(t, err)
	assert.Equal(t, "179.25", f.ledger.balance(1))
	assert.Equal(t, "166.00", f.ledger.balance(2))
	assert.Equal(t, "179.25", tx.BalanceFor(1).StringFixed(2))
	assert.Equal(t, "166.00", tx.BalanceFor(2).StringFixed(2))
}

func TestCreateTransaction_InternalTransferCompensatesFailedCredit(t *testing.T) {
	f := newFixture(t, map[int64]string{1: "300", 2: "0"})
	f.ledger.setFailWrite(2)

	tx, err := f.uc.CreateTransaction(context.Background(), models.CreateTransactionRequest{
		OperationType:        "INTERNAL_TRANSFER",
		SourceAccountID:      int64Ptr(1),
		DestinationAccountID: int64Ptr(2),
		Amount:               amount("100"),
	})

	assert.Nil(t, tx)
	assert.ErrorIs(t, err, transactions.ErrLedgerWriteFailed)
	assert.Equal(t, "300.00", f.ledger.balance(1))
	assert.Equal(t, "0.00", f.ledger.balance(2))
}

func TestCreateTransaction_PersistFailureCompensates(t *testing.T) {
	f := newFixture(t, map[int64]string{2: "10"})
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	tx, err := f.uc.CreateTransaction(context.Background(), models.CreateTransactionRequest{
		OperationType:        "DEPOSIT",
		DestinationAccountID: int64Ptr(2),
		Amount:               amount("40"),
	})

	assert.Nil(t, tx)
	assert.Error(t, err)
	assert.Equal(t, "10.00", f.ledger.balance(2))
}

func TestCreateTransaction_InboundRecordsCounterparty(t *testing.T) {
	f := newFixture(t, map[int64]string{2: "0"})
	f.storeCreates()

	tx, err := f.uc.CreateTransaction(context.Background(), models.CreateTransactionRequest{
		OperationType:         "TRANSFERENCIA_ENTRADA",
		DestinationAccountID:  int64Ptr(2),
		ExternalAccountNumber: "554433",
		ExternalBankID:        "BANTEC",
		Amount:                amount("12"),
	})

	require.NoError(t, err)
	assert.Equal(t, models.OperationInbound, tx.OperationType)
	assert.Equal(t, "554433", *tx.ExternalAccountNumber)
	assert.Equal(t, "BANTEC", *tx.ExternalBankID)
	assert.Equal(t, "12.00", f.ledger.balance(2))
}

func TestCreateOutbound_SyncCompletedSkipsPolling(t *testing.T) {
	f := newFixture(t, map[int64]string{7: "500.00"})
	f.expectDebtor()
	stored := f.storeCreates()

	f.switchGW.EXPECT().SubmitTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, intent models.TransferIntent) (*models.SwitchSubmitResult, error) {
			assert.Equal(t, validReference, intent.Reference)
			assert.Equal(t, "100.00", intent.Amount.StringFixed(2))
			assert.Equal(t, "Ana Torres", intent.DebtorName)
			assert.Equal(t, "2200001111", intent.DebtorAccount)
			assert.Equal(t, "Luis Vega", intent.CreditorName)
			assert.Equal(t, "998877", intent.CreditorAccount)
			assert.Equal(t, "BANTEC", intent.TargetBankID)
			return &models.SwitchSubmitResult{Status: models.SwitchStatusCompleted, CodigoReferencia: "482913"}, nil
		})

	tx, err := f.uc.CreateTransaction(context.Background(), outboundRequest())

	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, tx.Status)
	assert.Equal(t, "482913", *tx.CodigoReferencia)
	assert.Equal(t, "400.00", f.ledger.balance(7))
	assert.Equal(t, "400.00", tx.ResultingBalanceSource.Decimal.StringFixed(2))
	assert.Equal(t, 0, f.sleeps)
	assert.Len(t, *stored, 1)
}

func TestCreateOutbound_RejectedRestoresBalance(t *testing.T) {
	f := newFixture(t, map[int64]string{7: "500.00"})
	f.expectDebtor()

	f.switchGW.EXPECT().SubmitTransfer(gomock.Any(), gomock.Any()).
		Return(nil, &transactions.SwitchRejectedError{Code: "AM04", Detail: "Fondos insuficientes"})

	tx, err := f.uc.CreateTransaction(context.Background(), outboundRequest())

	assert.Nil(t, tx)
	assert.ErrorIs(t, err, transactions.ErrBusiness)
	assert.ErrorIs(t, err, transactions.ErrSwitchRejected)
	assert.Contains(t, err.Error(), "AM04")
	assert.Equal(t, "AM04", transactions.ReasonCode(err))
	assert.Equal(t, "500.00", f.ledger.balance(7))
}

func TestCreateOutbound_SyncFailedStatus(t *testing.T) {
	f := newFixture(t, map[int64]string{7: "500.00"})
	f.expectDebtor()

	f.switchGW.EXPECT().SubmitTransfer(gomock.Any(), gomock.Any()).
		Return(&models.SwitchSubmitResult{Status: models.SwitchStatusFailed, Error: "cuenta cerrada", ReasonCode: "AC04"}, nil)

	_, err := f.uc.CreateTransaction(context.Background(), outboundRequest())

	assert.ErrorIs(t, err, transactions.ErrBusiness)
	assert.Equal(t, "AC04", transactions.ReasonCode(err))
	assert.Equal(t, "500.00", f.ledger.balance(7))
	assert.Equal(t, 0, f.sleeps)
}

func TestCreateOutbound_PollsUntilCompleted(t *testing.T) {
	f := newFixture(t, map[int64]string{7: "500.00"})
	f.expectDebtor()
	f.storeCreates()

	f.switchGW.EXPECT().SubmitTransfer(gomock.Any(), gomock.Any()).
		Return(&models.SwitchSubmitResult{Status: models.SwitchStatusSuccess, CodigoReferencia: "000000"}, nil)
	gomock.InOrder(
		f.switchGW.EXPECT().QueryStatus(gomock.Any(), validReference).Return(nil),
		f.switchGW.EXPECT().QueryStatus(gomock.Any(), validReference).Return(&models.SwitchStatus{Status: models.SwitchStatusPending}),
		f.switchGW.EXPECT().QueryStatus(gomock.Any(), validReference).Return(&models.SwitchStatus{Status: models.SwitchStatusCompleted}),
	)

	tx, err := f.uc.CreateTransaction(context.Background(), outboundRequest())

	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, tx.Status)
	assert.Equal(t, 3, f.sleeps)
	assert.Equal(t, "400.00", f.ledger.balance(7))
}

func TestCreateOutbound_PollFailedCompensates(t *testing.T) {
	f := newFixture(t, map[int64]string{7: "500.00"})
	f.expectDebtor()

	f.switchGW.EXPECT().SubmitTransfer(gomock.Any(), gomock.Any()).
		Return(&models.SwitchSubmitResult{Status: models.SwitchStatusPending}, nil)
	f.switchGW.EXPECT().QueryStatus(gomock.Any(), validReference).
		Return(&models.SwitchStatus{Status: models.SwitchStatusFailed, ReasonCode: "AC01", Error: "cuenta inexistente"})

	_, err := f.uc.CreateTransaction(context.Background(), outboundRequest())

	assert.ErrorIs(t, err, transactions.ErrBusiness)
	assert.Equal(t, "AC01", transactions.ReasonCode(err))
	assert.Equal(t, "500.00", f.ledger.balance(7))
	assert.Equal(t, 1, f.sleeps)
}

func TestCreateOutbound_PollTimeoutLeavesPending(t *testing.T) {
	f := newFixture(t, map[int64]string{7: "500.00"})
	f.expectDebtor()
	stored := f.storeCreates()

	f.switchGW.EXPECT().SubmitTransfer(gomock.Any(), gomock.Any()).
		Return(&models.SwitchSubmitResult{CodigoReferencia: "771"}, nil)
	f.switchGW.EXPECT().QueryStatus(gomock.Any(), validReference).
		Return(&models.SwitchStatus{Status: models.SwitchStatusPending}).Times(3)

	tx, err := f.uc.CreateTransaction(context.Background(), outboundRequest())

	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, tx.Status)
	assert.Equal(t, "771", *tx.CodigoReferencia)
	assert.Equal(t, 3, f.sleeps)
	assert.Equal(t, "400.00", f.ledger.balance(7))
	require.Len(t, *stored, 1)
	assert.Equal(t, models.StatusPending, (*stored)[0].Status)
}

func TestCreateOutbound_DirectoryFallbacks(t *testing.T) {
	f := newFixture(t, map[int64]string{7: "500.00"})
	f.storeCreates()
	f.directory.EXPECT().GetAccount(gomock.Any(), int64(7)).Return(nil, errors.New("directory timeout"))

	req := outboundRequest()
	req.BeneficiaryName = ""
	req.ExternalBankID = ""

	f.switchGW.EXPECT().SubmitTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, intent models.TransferIntent) (*models.SwitchSubmitResult, error) {
			assert.Equal(t, "Cliente Arcbank", intent.DebtorName)
			assert.Equal(t, "7", intent.DebtorAccount)
			assert.Equal(t, "Beneficiario", intent.CreditorName)
			assert.Equal(t, "UNKNOWN", intent.TargetBankID)
			return &models.SwitchSubmitResult{Status: models.SwitchStatusCompleted}, nil
		})

	tx, err := f.uc.CreateTransaction(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, tx.Status)
	assert.Nil(t, tx.ExternalBankID)
	assert.Nil(t, tx.CodigoReferencia)
}

func TestCreateOutbound_OwnerNameFromAccount(t *testing.T) {
	f := newFixture(t, map[int64]string{7: "500.00"})
	f.storeCreates()
	f.directory.EXPECT().GetAccount(gomock.Any(), int64(7)).
		Return(&models.Account{AccountID: 7, AccountNumber: "2200001111", OwnerName: "ANA TORRES"}, nil)

	f.switchGW.EXPECT().SubmitTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, intent models.TransferIntent) (*models.SwitchSubmitResult, error) {
			assert.Equal(t, "ANA TORRES", intent.DebtorName)
			return &models.SwitchSubmitResult{Status: models.SwitchStatusCompleted}, nil
		})

	_, err := f.uc.CreateTransaction(context.Background(), outboundRequest())

	require.NoError(t, err)
}

func TestCreateOutbound_InsufficientFundsNeverReachesSwitch(t *testing.T) {
	f := newFixture(t, map[int64]string{7: "99.99"})

	_, err := f.uc.CreateTransaction(context.Background(), outboundRequest())

	assert.ErrorIs(t, err, transactions.ErrInsufficientFunds)
	assert.Equal(t, "99.99", f.ledger.balance(7))
}

func TestCreateOutbound_FailedCompensationIsTechnical(t *testing.T) {
	f := newFixture(t, map[int64]string{7: "500.00"})
	f.expectDebtor()

	f.switchGW.EXPECT().SubmitTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.TransferIntent) (*models.SwitchSubmitResult, error) {
			f.ledger.setFailWrite(7)
			return nil, &transactions.SwitchRejectedError{Code: "MS03"}
		})

	_, err := f.uc.CreateTransaction(context.Background(), outboundRequest())

	assert.ErrorIs(t, err, transactions.ErrTechnical)
	assert.NotErrorIs(t, err, transactions.ErrBusiness)
	assert.Equal(t, "400.00", f.ledger.balance(7))
}

func TestCreateOutbound_PersistFailureKeepsDebit(t *testing.T) {
	f := newFixture(t, map[int64]string{7: "500.00"})
	f.expectDebtor()
	f.switchGW.EXPECT().SubmitTransfer(gomock.Any(), gomock.Any()).
		Return(&models.SwitchSubmitResult{Status: models.SwitchStatusCompleted}, nil)
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	_, err := f.uc.CreateTransaction(context.Background(), outboundRequest())

	assert.ErrorIs(t, err, transactions.ErrTechnical)
	assert.Equal(t, "400.00", f.ledger.balance(7))
}

func TestCreateOutbound_DetachedFromCallerCancellation(t *testing.T) {
	f := newFixture(t, map[int64]string{7: "500.00"})
	f.expectDebtor()
	f.storeCreates()

	ctx, cancel := context.WithCancel(context.Background())
	f.switchGW.EXPECT().SubmitTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ models.TransferIntent) (*models.SwitchSubmitResult, error) {
			cancel()
			assert.NoError(t, ctx.Err())
			return nil, &transactions.SwitchRejectedError{Code: "AC06"}
		})

	_, err := f.uc.CreateTransaction(ctx, outboundRequest())

	assert.ErrorIs(t, err, transactions.ErrBusiness)
	assert.Equal(t, "500.00", f.ledger.balance(7))
}
