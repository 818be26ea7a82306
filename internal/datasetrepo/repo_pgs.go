// Package datasetrepo reads and writes whole dataset collections in Postgres.
package datasetrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-bank-datagen/internal/accountrepo"
	"github.com/go-petr/pet-bank-datagen/internal/clientrepo"
	"github.com/go-petr/pet-bank-datagen/internal/domain"
	"github.com/go-petr/pet-bank-datagen/internal/transactionrepo"
	"github.com/go-petr/pet-bank-datagen/pkg/errorspkg"
	"github.com/go-petr/pet-bank-datagen/pkg/passpkg"
)

// RepoPGS facilitates dataset repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns dataset RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		conn: db,
	}
}

// LoadClients returns the stored clients without their passwords.
func (r *RepoPGS) LoadClients(ctx context.Context) ([]domain.Client, error) {
	return clientrepo.NewRepoPGS(r.conn).List(ctx)
}

// LoadAccounts returns the stored accounts.
func (r *RepoPGS) LoadAccounts(ctx context.Context) ([]domain.Account, error) {
	return accountrepo.NewRepoPGS(r.conn).List(ctx)
}

// SaveClients stores the clients that do not exist yet with hashed passwords.
func (r *RepoPGS) SaveClients(ctx context.Context, clients []domain.Client) error {
	l := zerolog.Ctx(ctx)

	inserted := 0

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		repo := clientrepo.NewRepoPGS(tx)

		for _, c := range clients {
			hashed, err := passpkg.Hash(c.Password)
			if err != nil {
				l.Error().Err(err).Str("username", c.Username).Send()
				return errorspkg.ErrInternal
			}

			created, err := repo.Create(ctx, c, hashed)
			if err != nil {
				return err
			}

			if created {
				inserted++
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	l.Info().Int("inserted", inserted).Int("skipped", len(clients)-inserted).Msg("clients stored")

	return nil
}

// SaveAccounts stores new accounts and overwrites the balance of the existing ones.
func (r *RepoPGS) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		repo := accountrepo.NewRepoPGS(tx)

		for _, a := range accounts {
			if _, err := repo.Upsert(ctx, a); err != nil {
				return err
			}
		}

		return nil
	})
}

// SaveTransactions replaces the stored ledger with transactions.
func (r *RepoPGS) SaveTransactions(ctx context.Context, transactions []domain.Transaction) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		repo := transactionrepo.NewRepoPGS(tx)

		if err := repo.DeleteAll(ctx); err != nil {
			return err
		}

		return repo.CopyIn(ctx, transactions)
	})
}

// inTx runs fn within a single db transaction and commits it if fn succeeds.
func (r *RepoPGS) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}
