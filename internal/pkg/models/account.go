package models

import (
	"encoding/json"
	"strings"
)

// Account statuses reported by the directory
const (
	AccountStatusActive  = "ACTIVE"
	AccountStatusBlocked = "BLOCKED"
	AccountStatusClosed  = "CLOSED"
)

// Account is the directory view of a local account
type Account struct {
	AccountID     int64  `json:"idCuenta"`
	AccountNumber string `json:"numeroCuenta"`
	CustomerID    int64  `json:"idCliente"`
	OwnerName     string `json:"titular,omitempty"`
	Status        string `json:"estado,omitempty"`
}

// NormalizedStatus maps the directory's status names onto the canonical set
func (a *Account) NormalizedStatus() string {
	switch strings.ToUpper(strings.TrimSpace(a.Status)) {
	case "", "ACTIVE", "ACTIVA":
		return AccountStatusActive
	case "BLOCKED", "BLOQUEADA":
		return AccountStatusBlocked
	case "CLOSED", "CERRADA", "INACTIVA":
		return AccountStatusClosed
	default:
		return strings.ToUpper(a.Status)
	}
}

// Customer is the directory view of an account owner
type Customer struct {
	CustomerID int64  `json:"idCliente"`
	FullName   string `json:"nombreCompleto"`
}

// AccountValidation answers a local account verification
type AccountValidation struct {
	Exists    bool   `json:"exists"`
	OwnerName string `json:"ownerName,omitempty"`
	Currency  string `json:"currency,omitempty"`
	Status    string `json:"status,omitempty"`
}

// BalanceUpdate is the ledger's balance write payload
type BalanceUpdate struct {
	Balance json.Number `json:"saldo"`
}
