package transactions

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOperation rejects malformed or unsupported requests
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrAccountNotFound means the directory or ledger does not know the account
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountUnavailable means the account exists but cannot be operated
	ErrAccountUnavailable = errors.New("account unavailable")
	ErrAccountClosed      = fmt.Errorf("%w: account closed", ErrAccountUnavailable)
	ErrAccountBlocked     = fmt.Errorf("%w: account blocked", ErrAccountUnavailable)
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrLedgerWriteFailed  = errors.New("ledger write failed")
	// ErrBusiness wraps any rule-driven refusal surfaced to the caller
	ErrBusiness = errors.New("business rule violation")
	// ErrTechnical is a failure the caller cannot fix, such as a failed compensation
	ErrTechnical           = errors.New("technical error")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDuplicateReference  = errors.New("duplicate reference")
	ErrSwitchRejected      = errors.New("rejected by switch")
)

// SwitchRejectedError carries the ISO 20022 code the switch rejected with
type SwitchRejectedError struct {
	Code   string
	Detail string
}

func (e *SwitchRejectedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s [%s]", ErrSwitchRejected.Error(), e.Code)
	}
	return fmt.Sprintf("%s [%s]: %s", ErrSwitchRejected.Error(), e.Code, e.Detail)
}

// Is makes errors.Is(err, ErrSwitchRejected) hold
func (e *SwitchRejectedError) Is(target error) bool {
	return target == ErrSwitchRejected
}

// BusinessError wraps cause as a business refusal with a readable message
func BusinessError(message string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrBusiness, message)
	}
	return fmt.Errorf("%w: %s: %w", ErrBusiness, message, cause)
}

// IsClientError reports errors the caller caused and can correct
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidOperation) ||
		errors.Is(err, ErrBusiness) ||
		errors.Is(err, ErrAccountUnavailable) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrSwitchRejected) ||
		errors.Is(err, ErrDuplicateReference)
}

// IsNotFound reports errors naming a missing entity
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrTransactionNotFound)
}

// ReasonCode extracts the switch reason of err, if any
func ReasonCode(err error) string {
	var rejected *SwitchRejectedError
	if errors.As(err, &rejected) {
		return rejected.Code
	}
	return ""
}
