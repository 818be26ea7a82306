// Package domain provides defenitions of all entities.
package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNumberCollision indicates that a generated account number is already taken.
	ErrAccountNumberCollision = errors.New("account number collision")
	// ErrDuplicateAccount indicates that the same account number appears more than once.
	ErrDuplicateAccount = errors.New("duplicate account number")
	// ErrUnknownAccount indicates that the account is not part of the population.
	ErrUnknownAccount = errors.New("unknown account")
	// ErrClientNotFound indicates that the owner of the account is not found.
	ErrClientNotFound = errors.New("client not found")
)

// AccountType tags the kind of account.
type AccountType string

// Supported account types.
const (
	AccountTypeSavings  AccountType = "Savings"
	AccountTypeChecking AccountType = "Checking"
)

// AccountTypes holds all the supported account types in draw order.
var AccountTypes = []AccountType{
	AccountTypeSavings,
	AccountTypeChecking,
}

// Account holds client balance data.
//
// Balance is a placeholder until the ledger has been synthesized.
type Account struct {
	Number   int64           `json:"accountNumber"`
	ClientID string          `json:"clientId"`
	Type     AccountType     `json:"accountType"`
	Balance  decimal.Decimal `json:"balance"`
}
