package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OperationType classifies a transaction by the way it moves money
type OperationType string

const (
	OperationDeposit          OperationType = "DEPOSIT"
	OperationWithdrawal       OperationType = "WITHDRAWAL"
	OperationInternalTransfer OperationType = "INTERNAL_TRANSFER"
	OperationOutbound         OperationType = "OUTBOUND_INTERBANK_TRANSFER"
	OperationInbound          OperationType = "INBOUND_INTERBANK_TRANSFER"
	OperationReversal         OperationType = "REVERSAL"
)

// operationAliases accepts the names used by the bank's front-ends
var operationAliases = map[string]OperationType{
	"DEPOSITO":                    OperationDeposit,
	"RETIRO":                      OperationWithdrawal,
	"TRANSFERENCIA_INTERNA":       OperationInternalTransfer,
	"TRANSFERENCIA_SALIDA":        OperationOutbound,
	"TRANSFERENCIA_INTERBANCARIA": OperationOutbound,
	"TRANSFERENCIA_ENTRADA":       OperationInbound,
	"REVERSO":                     OperationReversal,
}

// ParseOperationType normalizes an operation name, accepting legacy aliases
func ParseOperationType(raw string) OperationType {
	name := strings.ToUpper(strings.TrimSpace(raw))
	if alias, ok := operationAliases[name]; ok {
		return alias
	}
	return OperationType(name)
}

// IsInterbank reports whether the operation involved the switch
func (o OperationType) IsInterbank() bool {
	return o == OperationOutbound || o == OperationInbound
}

// TransactionStatus is the lifecycle state of a transaction
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusReversed  TransactionStatus = "REVERSED"
	StatusReturned  TransactionStatus = "RETURNED"
	StatusFailed    TransactionStatus = "FAILED"
)

var allowedTransitions = map[TransactionStatus][]TransactionStatus{
	StatusPending:   {StatusCompleted, StatusFailed},
	StatusCompleted: {StatusReversed, StatusReturned},
}

// CanTransitionTo reports whether the state machine allows moving to next
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible
func (s TransactionStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// IsUndone reports whether the transaction was already reversed or returned
func (s TransactionStatus) IsUndone() bool {
	return s == StatusReversed || s == StatusReturned
}

// Canonical statuses exposed to other systems
const (
	ExternalStatusCompleted = "COMPLETED"
	ExternalStatusPending   = "PENDING"
	ExternalStatusReversed  = "REVERSED"
	ExternalStatusFailed    = "FAILED"
	ExternalStatusNotFound  = "NOT_FOUND"
)

// ExternalStatus projects the internal status onto the canonical vocabulary
func (s TransactionStatus) ExternalStatus() string {
	switch s {
	case StatusCompleted:
		return ExternalStatusCompleted
	case StatusPending:
		return ExternalStatusPending
	case StatusReversed, StatusReturned:
		return ExternalStatusReversed
	case StatusFailed:
		return ExternalStatusFailed
	default:
		return ExternalStatusNotFound
	}
}

// Transaction is the persisted record of a money movement
type Transaction struct {
	ID                          int64               `json:"id" db:"id"`
	Reference                   string              `json:"reference" db:"reference"`
	CodigoReferencia            *string             `json:"codigo_referencia,omitempty" db:"codigo_referencia"`
	OperationType               OperationType       `json:"operation_type" db:"operation_type"`
	SourceAccountID             *int64              `json:"source_account_id,omitempty" db:"source_account_id"`
	DestinationAccountID        *int64              `json:"destination_account_id,omitempty" db:"destination_account_id"`
	ExternalAccountNumber       *string             `json:"external_account_number,omitempty" db:"external_account_number"`
	ExternalBankID              *string             `json:"external_bank_id,omitempty" db:"external_bank_id"`
	Amount                      decimal.Decimal     `json:"amount" db:"amount"`
	ResultingBalanceSource      decimal.NullDecimal `json:"resulting_balance_source" db:"resulting_balance_source"`
	ResultingBalanceDestination decimal.NullDecimal `json:"resulting_balance_destination" db:"resulting_balance_destination"`
	Channel                     string              `json:"channel" db:"channel"`
	BranchID                    int64               `json:"branch_id" db:"branch_id"`
	Description                 string              `json:"description" db:"description"`
	Status                      TransactionStatus   `json:"status" db:"status"`
	CreatedAt                   time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt                   time.Time           `json:"updated_at" db:"updated_at"`
	ReversalOfTransactionID     *int64              `json:"reversal_of_transaction_id,omitempty" db:"reversal_of_transaction_id"`
}

// BalanceFor returns the post-transaction balance as seen from viewerAccountID
func (t *Transaction) BalanceFor(viewerAccountID int64) decimal.Decimal {
	if t.DestinationAccountID != nil && *t.DestinationAccountID == viewerAccountID && t.ResultingBalanceDestination.Valid {
		return t.ResultingBalanceDestination.Decimal
	}
	if t.ResultingBalanceSource.Valid {
		return t.ResultingBalanceSource.Decimal
	}
	if t.ResultingBalanceDestination.Valid {
		return t.ResultingBalanceDestination.Decimal
	}
	return decimal.Zero
}

// CreateTransactionRequest is the input of the creation path
type CreateTransactionRequest struct {
	Reference             string          `json:"reference"`
	OperationType         string          `json:"operation_type" validate:"required"`
	SourceAccountID       *int64          `json:"source_account_id"`
	DestinationAccountID  *int64          `json:"destination_account_id"`
	ExternalAccountNumber string          `json:"external_account_number"`
	ExternalBankID        string          `json:"external_bank_id"`
	BeneficiaryName       string          `json:"beneficiary_name"`
	Amount                decimal.Decimal `json:"amount"`
	Channel               string          `json:"channel"`
	BranchID              int64           `json:"branch_id"`
	Description           string          `json:"description"`
}

// TransactionView is a transaction projected for one viewer
type TransactionView struct {
	ID                    int64             `json:"id"`
	Reference             string            `json:"reference"`
	CodigoReferencia      string            `json:"codigo_referencia,omitempty"`
	OperationType         OperationType     `json:"operation_type"`
	SourceAccountID       *int64            `json:"source_account_id,omitempty"`
	DestinationAccountID  *int64            `json:"destination_account_id,omitempty"`
	ExternalAccountNumber string            `json:"external_account_number,omitempty"`
	ExternalBankID        string            `json:"external_bank_id,omitempty"`
	Amount                decimal.Decimal   `json:"amount"`
	ResultingBalance      decimal.Decimal   `json:"resulting_balance"`
	CreatedAt             time.Time         `json:"created_at"`
	Description           string            `json:"description"`
	Channel               string            `json:"channel"`
	Status                TransactionStatus `json:"status"`
}

// NewTransactionView projects t for viewerAccountID (0 means no viewer)
func NewTransactionView(t *Transaction, viewerAccountID int64) *TransactionView {
	v := &TransactionView{
		ID:                   t.ID,
		Reference:            t.Reference,
		OperationType:        t.OperationType,
		SourceAccountID:      t.SourceAccountID,
		DestinationAccountID: t.DestinationAccountID,
		Amount:               t.Amount,
		ResultingBalance:     t.BalanceFor(viewerAccountID),
		CreatedAt:            t.CreatedAt,
		Description:          t.Description,
		Channel:              t.Channel,
		Status:               t.Status,
	}
	if t.CodigoReferencia != nil {
		v.CodigoReferencia = *t.CodigoReferencia
	}
	if t.ExternalAccountNumber != nil {
		v.ExternalAccountNumber = *t.ExternalAccountNumber
	}
	if t.ExternalBankID != nil {
		v.ExternalBankID = *t.ExternalBankID
	}
	return v
}

// TransactionDetail adds reversibility and switch information to a view
type TransactionDetail struct {
	*TransactionView
	Reversible              bool    `json:"reversible"`
	WithinWindow            bool    `json:"within_window"`
	ValidStatus             bool    `json:"valid_status"`
	CanReverse              bool    `json:"can_reverse"`
	HoursElapsed            float64 `json:"hours_elapsed"`
	SwitchStatus            string  `json:"switch_status,omitempty"`
	StatusUpdatedFromSwitch bool    `json:"status_updated_from_switch"`
}

// IncomingCredit is an inbound interbank transfer ready to be applied
type IncomingCredit struct {
	Reference         string
	AccountNumber     string
	Amount            decimal.Decimal
	OriginatingBankID string
}

// ReversalRequest carries the reason for a manual reversal
type ReversalRequest struct {
	Reason string `json:"motivo"`
}

// ReturnReason is an entry of the return reason catalog
type ReturnReason struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// TransactionEvent is published after every persisted transition
type TransactionEvent struct {
	TransactionID int64             `json:"transaction_id"`
	Reference     string            `json:"reference"`
	OperationType OperationType     `json:"operation_type"`
	Status        TransactionStatus `json:"status"`
	Amount        decimal.Decimal   `json:"amount"`
	OccurredAt    time.Time         `json:"occurred_at"`
}
