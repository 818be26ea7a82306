package transactionservice

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-bank-datagen/internal/domain"
)

// Reconcile replays transactions in order against accounts and checks that the ledger
// is consistent with the account balances.
//
// Transactions must be sorted by date with identifiers 1..n, every reference must name
// a known account, transfers must move money between two distinct accounts, no account
// may go negative at any point of the replay and each final balance must match.
func Reconcile(accounts []domain.Account, transactions []domain.Transaction) error {
	running := make(map[int64]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		if _, ok := running[a.Number]; ok {
			return fmt.Errorf("%w: %d", domain.ErrDuplicateAccount, a.Number)
		}

		running[a.Number] = decimal.Zero
	}

	seen := make([]bool, len(transactions)+1)

	for i, t := range transactions {
		if t.ID < 1 || t.ID > int64(len(transactions)) || seen[t.ID] {
			return fmt.Errorf("%w: transaction id %d out of sequence", domain.ErrLedgerInconsistent, t.ID)
		}

		seen[t.ID] = true

		if i > 0 && t.Date.Before(transactions[i-1].Date.Time) {
			return fmt.Errorf("%w: transaction %d dated %v before its predecessor", domain.ErrLedgerInconsistent, t.ID, t.Date)
		}

		if !t.Amount.IsPositive() {
			return fmt.Errorf("%w: transaction %d has non-positive amount %s", domain.ErrLedgerInconsistent, t.ID, t.Amount)
		}

		if err := checkRefs(t); err != nil {
			return err
		}

		for _, ref := range []*int64{t.SourceID, t.DestinationID} {
			if ref == nil {
				continue
			}

			if _, ok := running[*ref]; !ok {
				return fmt.Errorf("%w: transaction %d references %d", domain.ErrUnknownAccount, t.ID, *ref)
			}
		}

		if t.SourceID != nil {
			src := *t.SourceID

			running[src] = running[src].Sub(t.Amount)
			if running[src].IsNegative() {
				return fmt.Errorf("%w: account %d overdrawn by transaction %d", domain.ErrLedgerInconsistent, src, t.ID)
			}
		}

		if t.DestinationID != nil {
			dst := *t.DestinationID
			running[dst] = running[dst].Add(t.Amount)
		}
	}

	for _, a := range accounts {
		if !running[a.Number].Round(2).Equal(a.Balance) {
			return fmt.Errorf("%w: account %d balance %s, ledger replays to %s",
				domain.ErrLedgerInconsistent, a.Number, a.Balance, running[a.Number].Round(2))
		}
	}

	return nil
}

func checkRefs(t domain.Transaction) error {
	var ok bool

	switch t.Kind {
	case domain.KindDeposit:
		ok = t.SourceID == nil && t.DestinationID != nil
	case domain.KindWithdrawal:
		ok = t.SourceID != nil && t.DestinationID == nil
	case domain.KindTransfer:
		ok = t.SourceID != nil && t.DestinationID != nil && *t.SourceID != *t.DestinationID
	}

	if !ok {
		return fmt.Errorf("%w: transaction %d is a malformed %s", domain.ErrLedgerInconsistent, t.ID, t.Kind)
	}

	return nil
}
