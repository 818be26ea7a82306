package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidSynthesisConfig indicates that the synthesis parameters are inconsistent.
	ErrInvalidSynthesisConfig = errors.New("invalid synthesis config")
	// ErrUnsupportedLocale indicates that no identity data exists for the locale.
	ErrUnsupportedLocale = errors.New("unsupported locale")
	// ErrSourceUnreadable indicates that the input data is missing or malformed.
	ErrSourceUnreadable = errors.New("source unreadable")
	// ErrLedgerInconsistent indicates that a ledger does not replay into its account balances.
	ErrLedgerInconsistent = errors.New("ledger inconsistent")
)

// TransactionKind tags the kind of transaction.
type TransactionKind string

// Supported transaction kinds.
const (
	KindDeposit    TransactionKind = "Deposit"
	KindWithdrawal TransactionKind = "Withdrawal"
	KindTransfer   TransactionKind = "Transfer"
)

// TransactionKinds holds all the transaction kinds in draw order.
var TransactionKinds = []TransactionKind{
	KindDeposit,
	KindWithdrawal,
	KindTransfer,
}

// Transaction holds a single money movement.
//
// SourceID is set for withdrawals and transfers, DestinationID for deposits and transfers.
type Transaction struct {
	ID            int64           `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"` // always positive
	Kind          TransactionKind `json:"transactionType"`
	Date          Date            `json:"date"`
	SourceID      *int64          `json:"senderId"`
	DestinationID *int64          `json:"recipientId"`
}

// Touches reports whether the transaction changes the balance of the given account.
func (t Transaction) Touches(number int64) bool {
	return (t.SourceID != nil && *t.SourceID == number) ||
		(t.DestinationID != nil && *t.DestinationID == number)
}

// EffectOn returns the signed balance change the transaction applies to the account.
func (t Transaction) EffectOn(number int64) decimal.Decimal {
	effect := decimal.Zero

	if t.DestinationID != nil && *t.DestinationID == number {
		effect = effect.Add(t.Amount)
	}

	if t.SourceID != nil && *t.SourceID == number {
		effect = effect.Sub(t.Amount)
	}

	return effect
}

// SynthesisStats counts realized and discarded transactions of a generation run.
type SynthesisStats struct {
	Deposits             int `json:"deposits"`
	Withdrawals          int `json:"withdrawals"`
	Transfers            int `json:"transfers"`
	DiscardedWithdrawals int `json:"discardedWithdrawals"`
	DiscardedTransfers   int `json:"discardedTransfers"`
}

// Realized returns the number of transactions in the ledger.
func (s SynthesisStats) Realized() int {
	return s.Deposits + s.Withdrawals + s.Transfers
}

// Discarded returns the number of candidates dropped for lack of funds or counterparty.
func (s SynthesisStats) Discarded() int {
	return s.DiscardedWithdrawals + s.DiscardedTransfers
}

// Dataset holds the three generated collections in output order.
type Dataset struct {
	Clients      []Client      `json:"clients"`
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
}
