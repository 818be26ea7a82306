package transactionservice

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-bank-datagen/internal/domain"
)

// entry is a dated balance change of one account.
type entry struct {
	date  domain.Date
	delta decimal.Decimal
}

// book holds the running balance of an account and its changes in replay order:
// by date, ties in creation order.
type book struct {
	balance decimal.Decimal
	entries []entry
}

// insertPos returns the replay position of a change dated d created after all existing ones.
func (b *book) insertPos(d domain.Date) int {
	return sort.Search(len(b.entries), func(i int) bool {
		return b.entries[i].date.After(d.Time)
	})
}

// available returns the lowest balance the account reaches from date d onwards.
func (b *book) available(d domain.Date) decimal.Decimal {
	pos := b.insertPos(d)

	running := decimal.Zero
	for _, e := range b.entries[:pos] {
		running = running.Add(e.delta)
	}

	lowest := running
	for _, e := range b.entries[pos:] {
		running = running.Add(e.delta)
		if running.LessThan(lowest) {
			lowest = running
		}
	}

	return lowest
}

func (b *book) apply(d domain.Date, delta decimal.Decimal) {
	pos := b.insertPos(d)

	b.entries = append(b.entries, entry{})
	copy(b.entries[pos+1:], b.entries[pos:])
	b.entries[pos] = entry{date: d, delta: delta}

	b.balance = b.balance.Add(delta)
}

// balanceTable maps account numbers to their books for the duration of one run.
type balanceTable map[int64]*book

// newBalanceTable initializes every account with a zero balance.
func newBalanceTable(accounts []domain.Account) (balanceTable, error) {
	t := make(balanceTable, len(accounts))

	for _, a := range accounts {
		if _, ok := t[a.Number]; ok {
			return nil, fmt.Errorf("%w: %d", domain.ErrDuplicateAccount, a.Number)
		}

		t[a.Number] = &book{balance: decimal.Zero}
	}

	return t, nil
}

func (t balanceTable) balance(number int64) decimal.Decimal {
	return t[number].balance
}

// canDebit reports whether amount can leave the account on date d without the running
// balance or any later point of its dated history going negative.
func (t balanceTable) canDebit(number int64, d domain.Date, amount decimal.Decimal) bool {
	b := t[number]

	if b.balance.LessThan(amount) {
		return false
	}

	return b.available(d).GreaterThanOrEqual(amount)
}

func (t balanceTable) credit(number int64, d domain.Date, amount decimal.Decimal) {
	t[number].apply(d, amount)
}

func (t balanceTable) debit(number int64, d domain.Date, amount decimal.Decimal) {
	t[number].apply(d, amount.Neg())
}
