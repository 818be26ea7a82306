// Package provisionservice manages the client and account population.
package provisionservice

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-bank-datagen/internal/domain"
	"github.com/go-petr/pet-bank-datagen/pkg/randompkg"
)

// DefaultAccountNumberOffset is added to the client index to number new accounts.
const DefaultAccountNumberOffset = 10000

// IdentityProvider provides fake identities needed by the provision service.
//
//go:generate mockgen -source service.go -destination service_mock.go -package provisionservice
type IdentityProvider interface {
	NewIdentity() domain.Identity
}

// Service facilitates provisioning logic.
type Service struct {
	identities IdentityProvider
	rnd        *randompkg.Generator
	offset     int64
}

// New returns provision service drawing identities from ip and account types from rnd.
func New(ip IdentityProvider, rnd *randompkg.Generator, accountNumberOffset int64) *Service {
	return &Service{
		identities: ip,
		rnd:        rnd,
		offset:     accountNumberOffset,
	}
}

// Username returns the username of the client with the given 1-based index.
func Username(index int) string {
	return fmt.Sprintf("user%d", index)
}

// AccountNumber returns the account number of the client with the given 1-based index.
func (s *Service) AccountNumber(index int) int64 {
	return s.offset + int64(index)
}

// Provision tops the population up to target clients.
//
// Existing clients and accounts are kept unchanged. Every new client gets exactly one
// account with a zero balance. It fails before creating anything if a generated
// username or account number is already taken.
func (s *Service) Provision(ctx context.Context, clients []domain.Client, accounts []domain.Account, target int) ([]domain.Client, []domain.Account, error) {
	l := zerolog.Ctx(ctx)

	existing := len(clients)
	if existing >= target {
		l.Info().Int("clients", existing).Int("accounts", len(accounts)).Msg("population already complete")
		return clients, accounts, nil
	}

	if err := s.checkCollisions(ctx, clients, accounts, existing+1, target); err != nil {
		return nil, nil, err
	}

	l.Info().Int("new_clients", target-existing).Msg("generating clients")

	outClients := make([]domain.Client, 0, target)
	outClients = append(outClients, clients...)

	outAccounts := make([]domain.Account, 0, len(accounts)+target-existing)
	outAccounts = append(outAccounts, accounts...)

	for i := existing + 1; i <= target; i++ {
		c := s.newClient(i)
		outClients = append(outClients, c)
		outAccounts = append(outAccounts, s.newAccount(i, c.Username))
	}

	l.Info().Int("clients", len(outClients)).Int("accounts", len(outAccounts)).Msg("population provisioned")

	return outClients, outAccounts, nil
}

func (s *Service) newClient(index int) domain.Client {
	id := s.identities.NewIdentity()

	return domain.Client{
		Username:  Username(index),
		Password:  id.Password,
		FirstName: id.FirstName,
		LastName:  id.LastName,
		Address:   id.Address,
	}
}

func (s *Service) newAccount(index int, username string) domain.Account {
	return domain.Account{
		Number:   s.AccountNumber(index),
		ClientID: username,
		Type:     domain.AccountTypes[s.rnd.Intn(len(domain.AccountTypes))],
		Balance:  decimal.Zero,
	}
}

func (s *Service) checkCollisions(ctx context.Context, clients []domain.Client, accounts []domain.Account, from, to int) error {
	l := zerolog.Ctx(ctx)

	usernames := make(map[string]struct{}, len(clients))
	for _, c := range clients {
		usernames[c.Username] = struct{}{}
	}

	numbers := make(map[int64]struct{}, len(accounts))
	for _, a := range accounts {
		numbers[a.Number] = struct{}{}

		if a.Number > s.offset {
			l.Warn().Int64("account_number", a.Number).Int64("offset", s.offset).
				Msg("existing account number above the generation offset")
		}
	}

	for i := from; i <= to; i++ {
		if _, ok := usernames[Username(i)]; ok {
			return fmt.Errorf("%w: %s", domain.ErrUsernameCollision, Username(i))
		}

		if _, ok := numbers[s.AccountNumber(i)]; ok {
			return fmt.Errorf("%w: %d", domain.ErrAccountNumberCollision, s.AccountNumber(i))
		}
	}

	return nil
}
