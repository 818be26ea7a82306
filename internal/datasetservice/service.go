// Package datasetservice manages generation and publication of the bank dataset.
package datasetservice

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-bank-datagen/internal/domain"
	"github.com/go-petr/pet-bank-datagen/internal/identity"
	"github.com/go-petr/pet-bank-datagen/internal/provisionservice"
	"github.com/go-petr/pet-bank-datagen/internal/transactionservice"
	"github.com/go-petr/pet-bank-datagen/pkg/configpkg"
	"github.com/go-petr/pet-bank-datagen/pkg/randompkg"
)

// Source provides the existing population.
//
//go:generate mockgen -source service.go -destination service_mock.go -package datasetservice
type Source interface {
	LoadClients(ctx context.Context) ([]domain.Client, error)
	LoadAccounts(ctx context.Context) ([]domain.Account, error)
}

// Sink persists a generated dataset.
type Sink interface {
	SaveClients(ctx context.Context, clients []domain.Client) error
	SaveAccounts(ctx context.Context, accounts []domain.Account) error
	SaveTransactions(ctx context.Context, transactions []domain.Transaction) error
}

// Params holds the parameters of one generation run.
type Params struct {
	Seed                int64
	TargetClients       int
	AccountNumberOffset int64
	Locale              string
	Synthesis           transactionservice.Config
}

// DefaultParams returns the parameters of the reference dataset.
func DefaultParams() Params {
	return Params{
		Seed:                42,
		TargetClients:       100,
		AccountNumberOffset: provisionservice.DefaultAccountNumberOffset,
		Locale:              "es_MX",
		Synthesis:           transactionservice.DefaultConfig(),
	}
}

// ParamsFromConfig maps the application config to generation parameters.
func ParamsFromConfig(c configpkg.Config) Params {
	return Params{
		Seed:                c.Seed,
		TargetClients:       c.TargetClients,
		AccountNumberOffset: c.AccountNumberOffset,
		Locale:              c.Locale,
		Synthesis: transactionservice.Config{
			MinTransactions:   c.MinTransactions,
			MaxTransactions:   c.MaxTransactions,
			WindowStart:       domain.DateOf(c.WindowStart),
			WindowEnd:         domain.DateOf(c.WindowEnd),
			OpeningWindowDays: c.OpeningWindowDays,
			OpeningAmountMin:  c.OpeningAmountMin,
			OpeningAmountMax:  c.OpeningAmountMax,
			AmountMin:         c.AmountMin,
			AmountMax:         c.AmountMax,
		},
	}
}

// Service facilitates dataset generation logic.
type Service struct {
	source Source
}

// New returns dataset service reading the existing population from source.
//
// A nil source starts every run from an empty population.
func New(source Source) *Service {
	return &Service{source: source}
}

// Generate tops the population up to the target size and synthesizes its ledger.
//
// All random draws of the run come from one generator seeded with p.Seed, so equal
// params and input produce an equal dataset.
func (s *Service) Generate(ctx context.Context, p Params) (domain.Dataset, domain.SynthesisStats, error) {
	l := zerolog.Ctx(ctx)

	rnd := randompkg.New(p.Seed)

	identities, err := identity.New(p.Locale, rnd)
	if err != nil {
		return domain.Dataset{}, domain.SynthesisStats{}, err
	}

	synthesizer, err := transactionservice.New(p.Synthesis, rnd)
	if err != nil {
		return domain.Dataset{}, domain.SynthesisStats{}, err
	}

	provisioner := provisionservice.New(identities, rnd, p.AccountNumberOffset)

	clients, accounts, err := s.load(ctx)
	if err != nil {
		return domain.Dataset{}, domain.SynthesisStats{}, err
	}

	l.Info().Int("clients", len(clients)).Int("accounts", len(accounts)).Msg("existing population loaded")

	clients, accounts, err = provisioner.Provision(ctx, clients, accounts, p.TargetClients)
	if err != nil {
		return domain.Dataset{}, domain.SynthesisStats{}, err
	}

	res, err := synthesizer.Synthesize(ctx, accounts)
	if err != nil {
		return domain.Dataset{}, domain.SynthesisStats{}, err
	}

	if err := transactionservice.Reconcile(res.Accounts, res.Transactions); err != nil {
		l.Error().Err(err).Msg("generated ledger does not reconcile")
		return domain.Dataset{}, domain.SynthesisStats{}, err
	}

	ds := domain.Dataset{
		Clients:      clients,
		Accounts:     res.Accounts,
		Transactions: res.Transactions,
	}

	return ds, res.Stats, nil
}

func (s *Service) load(ctx context.Context) ([]domain.Client, []domain.Account, error) {
	if s.source == nil {
		return nil, nil, nil
	}

	l := zerolog.Ctx(ctx)

	clients, err := s.source.LoadClients(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrSourceUnreadable) {
			return nil, nil, err
		}

		l.Warn().Err(err).Msg("starting with no clients")

		clients = nil
	}

	accounts, err := s.source.LoadAccounts(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrSourceUnreadable) {
			return nil, nil, err
		}

		l.Warn().Err(err).Msg("starting with no accounts")

		accounts = nil
	}

	return clients, accounts, nil
}

// Publish writes the dataset to sink: clients, then accounts, then transactions.
//
// It stops at the first failure.
func (s *Service) Publish(ctx context.Context, sink Sink, ds domain.Dataset) error {
	l := zerolog.Ctx(ctx)

	if err := sink.SaveClients(ctx, ds.Clients); err != nil {
		return err
	}

	l.Info().Int("clients", len(ds.Clients)).Msg("clients saved")

	if err := sink.SaveAccounts(ctx, ds.Accounts); err != nil {
		return err
	}

	l.Info().Int("accounts", len(ds.Accounts)).Msg("accounts saved")

	if err := sink.SaveTransactions(ctx, ds.Transactions); err != nil {
		return err
	}

	l.Info().Int("transactions", len(ds.Transactions)).Msg("transactions saved")

	return nil
}
