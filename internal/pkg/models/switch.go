package models

import "github.com/shopspring/decimal"

// Switch message namespaces
const (
	NamespaceAccountLookup = "acmt.023.001.02"
)

// Switch status values
const (
	SwitchStatusCompleted = "COMPLETED"
	SwitchStatusFailed    = "FAILED"
	SwitchStatusPending   = "PENDING"
	SwitchStatusRejected  = "REJECTED"
	SwitchStatusSuccess   = "SUCCESS"
)

// SwitchHeader is the header shared by every switch envelope
type SwitchHeader struct {
	MessageID         string `json:"messageId,omitempty"`
	CreationDateTime  string `json:"creationDateTime,omitempty"`
	OriginatingBankID string `json:"originatingBankId,omitempty"`
	MessageNamespace  string `json:"messageNamespace,omitempty"`
}

// SwitchAmount is a currency-qualified amount
type SwitchAmount struct {
	Currency string          `json:"currency"`
	Value    decimal.Decimal `json:"value"`
}

// SwitchParty is the debtor or creditor of a transfer
type SwitchParty struct {
	Name         string `json:"name,omitempty"`
	AccountID    string `json:"accountId,omitempty"`
	AccountType  string `json:"accountType,omitempty"`
	BankID       string `json:"bankId,omitempty"`
	TargetBankID string `json:"targetBankId,omitempty"`
}

// TransferBody is the body of a pacs.008-style transfer
type TransferBody struct {
	InstructionID         string        `json:"instructionId,omitempty"`
	EndToEndID            string        `json:"endToEndId,omitempty"`
	Amount                *SwitchAmount `json:"amount,omitempty"`
	Debtor                *SwitchParty  `json:"debtor,omitempty"`
	Creditor              *SwitchParty  `json:"creditor,omitempty"`
	RemittanceInformation string        `json:"remittanceInformation,omitempty"`
}

// TransferEnvelope is a transfer message exchanged with the switch
type TransferEnvelope struct {
	Header *SwitchHeader `json:"header"`
	Body   *TransferBody `json:"body"`
}

// ReturnBody is the body of a pacs.004-style return
type ReturnBody struct {
	ReturnInstructionID   string        `json:"returnInstructionId,omitempty"`
	OriginalInstructionID string        `json:"originalInstructionId,omitempty"`
	ReturnReason          string        `json:"returnReason,omitempty"`
	ReturnAmount          *SwitchAmount `json:"returnAmount,omitempty"`
}

// ReturnEnvelope is a return message exchanged with the switch
type ReturnEnvelope struct {
	Header *SwitchHeader `json:"header"`
	Body   *ReturnBody   `json:"body"`
}

// TransferIntent is what the engine asks the switch to move
type TransferIntent struct {
	Reference       string
	Amount          decimal.Decimal
	DebtorName      string
	DebtorAccount   string
	CreditorName    string
	CreditorAccount string
	TargetBankID    string
	Description     string
}

// ReturnIntent is what the engine asks the switch to give back
type ReturnIntent struct {
	OriginalReference string
	Reason            string
	Amount            decimal.Decimal
}

// SwitchSubmitResult is the synchronous answer to a transfer submission
type SwitchSubmitResult struct {
	Status           string
	CodigoReferencia string
	Error            string
	// ReasonCode is the canonical code of a FAILED answer
	ReasonCode string
}

// SwitchStatus is the answer to a status query
type SwitchStatus struct {
	Status     string
	ReasonCode string
	Error      string
}

// CallbackHeader is the header of a status report sent back to the switch
type CallbackHeader struct {
	MessageID        string `json:"messageId"`
	RespondingBankID string `json:"respondingBankId"`
}

// CallbackBody is the body of a status report sent back to the switch
type CallbackBody struct {
	OriginalInstructionID string `json:"originalInstructionId"`
	Status                string `json:"status"`
	ProcessedDateTime     string `json:"processedDateTime"`
	ReasonCode            string `json:"reasonCode"`
}

// SwitchCallback reports the outcome of a queued inbound transfer
type SwitchCallback struct {
	Header CallbackHeader `json:"header"`
	Body   CallbackBody   `json:"body"`
}

// AccountLookupRequest is the acmt.023 request sent to the switch
type AccountLookupRequest struct {
	Header AccountLookupHeader `json:"header"`
	Body   AccountLookupBody   `json:"body"`
}

// AccountLookupHeader identifies the requesting bank
type AccountLookupHeader struct {
	OriginatingBankID string `json:"originatingBankId"`
	MessageID         string `json:"messageId"`
}

// AccountLookupBody names the account to verify
type AccountLookupBody struct {
	TargetBankID        string `json:"targetBankId"`
	TargetAccountNumber string `json:"targetAccountNumber"`
}

// ExternalAccountRequest is the bank API input for external validation
type ExternalAccountRequest struct {
	TargetBankID  string `json:"targetBankId" validate:"required"`
	AccountNumber string `json:"targetAccountNumber" validate:"required"`
}
