// Package transactionservice synthesizes the transaction ledger of an account population.
package transactionservice

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-bank-datagen/internal/domain"
	"github.com/go-petr/pet-bank-datagen/pkg/randompkg"
)

// Result holds the outcome of a synthesis run.
type Result struct {
	// Accounts is a copy of the input accounts carrying their final balances.
	Accounts []domain.Account
	// Transactions is the ledger sorted by date, ties in creation order.
	Transactions []domain.Transaction
	Stats        domain.SynthesisStats
}

// Service facilitates transaction synthesis logic.
type Service struct {
	cfg Config
	rnd *randompkg.Generator
}

// New returns transaction service drawing from rnd.
func New(cfg Config, rnd *randompkg.Generator) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Service{cfg: cfg, rnd: rnd}, nil
}

// ledger accumulates realized transactions and assigns their identifiers.
type ledger struct {
	transactions []domain.Transaction
	stats        domain.SynthesisStats
}

func (l *ledger) record(kind domain.TransactionKind, amount decimal.Decimal, date domain.Date, src, dst *int64) {
	l.transactions = append(l.transactions, domain.Transaction{
		ID:            int64(len(l.transactions) + 1),
		Amount:        amount,
		Kind:          kind,
		Date:          date,
		SourceID:      src,
		DestinationID: dst,
	})

	switch kind {
	case domain.KindDeposit:
		l.stats.Deposits++
	case domain.KindWithdrawal:
		l.stats.Withdrawals++
	case domain.KindTransfer:
		l.stats.Transfers++
	}
}

func ref(number int64) *int64 {
	return &number
}

// Synthesize generates the transaction history of accounts and their final balances.
//
// Every account gets an opening deposit followed by random deposits, withdrawals and
// transfers. Withdrawals and transfers that the account cannot afford are discarded
// without consuming an identifier. The input slice is not modified.
func (s *Service) Synthesize(ctx context.Context, accounts []domain.Account) (Result, error) {
	l := zerolog.Ctx(ctx)

	balances, err := newBalanceTable(accounts)
	if err != nil {
		return Result{}, err
	}

	numbers := make([]int64, len(accounts))
	for i, a := range accounts {
		numbers[i] = a.Number
	}

	lg := &ledger{}

	for i := range numbers {
		if err := ctx.Err(); err != nil {
			l.Info().Err(err).Int("synthesized_accounts", i).Msg("synthesis canceled")
			return Result{}, err
		}

		before := len(lg.transactions)
		s.synthesizeAccount(balances, lg, numbers, i)

		l.Debug().Int64("account_number", numbers[i]).
			Int("transactions", len(lg.transactions)-before).
			Str("balance", balances.balance(numbers[i]).StringFixed(2)).
			Msg("account synthesized")
	}

	sort.SliceStable(lg.transactions, func(i, j int) bool {
		return lg.transactions[i].Date.Before(lg.transactions[j].Date.Time)
	})

	out := make([]domain.Account, len(accounts))
	for i, a := range accounts {
		a.Balance = balances.balance(a.Number).Round(2)
		out[i] = a
	}

	l.Info().Int("transactions", len(lg.transactions)).
		Int("deposits", lg.stats.Deposits).
		Int("withdrawals", lg.stats.Withdrawals).
		Int("transfers", lg.stats.Transfers).
		Int("discarded", lg.stats.Discarded()).
		Msg("transactions synthesized")

	return Result{
		Accounts:     out,
		Transactions: lg.transactions,
		Stats:        lg.stats,
	}, nil
}

func (s *Service) synthesizeAccount(balances balanceTable, lg *ledger, numbers []int64, idx int) {
	number := numbers[idx]

	n := s.rnd.IntBetween(s.cfg.MinTransactions, s.cfg.MaxTransactions)

	opening := s.rnd.MoneyAmountBetween(s.cfg.OpeningAmountMin, s.cfg.OpeningAmountMax)
	openedOn := s.dayBetween(s.cfg.WindowStart, s.cfg.openingEnd())

	balances.credit(number, openedOn, opening)
	lg.record(domain.KindDeposit, opening, openedOn, nil, ref(number))

	for slot := 1; slot < n; slot++ {
		kind := domain.TransactionKinds[s.rnd.Intn(len(domain.TransactionKinds))]
		amount := s.rnd.MoneyAmountBetween(s.cfg.AmountMin, s.cfg.AmountMax)
		date := s.dayBetween(s.cfg.WindowStart, s.cfg.WindowEnd)

		switch kind {
		case domain.KindDeposit:
			balances.credit(number, date, amount)
			lg.record(kind, amount, date, nil, ref(number))

		case domain.KindWithdrawal:
			if !balances.canDebit(number, date, amount) {
				lg.stats.DiscardedWithdrawals++
				continue
			}

			balances.debit(number, date, amount)
			lg.record(kind, amount, date, ref(number), nil)

		case domain.KindTransfer:
			if len(numbers) < 2 || !balances.canDebit(number, date, amount) {
				lg.stats.DiscardedTransfers++
				continue
			}

			// Uniform over every other account, skipping idx.
			j := s.rnd.Intn(len(numbers) - 1)
			if j >= idx {
				j++
			}

			dst := numbers[j]

			balances.debit(number, date, amount)
			balances.credit(dst, date, amount)
			lg.record(kind, amount, date, ref(number), ref(dst))
		}
	}
}

func (s *Service) dayBetween(start, end domain.Date) domain.Date {
	return domain.DateOf(s.rnd.DayBetween(start.Time, end.Time))
}
