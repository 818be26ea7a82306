// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-bank-datagen/internal/domain"
	"github.com/go-petr/pet-bank-datagen/pkg/dbpkg"
	"github.com/go-petr/pet-bank-datagen/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const upsertQuery = `
INSERT INTO
    accounts (account_number, client_id, account_type, balance)
VALUES
    ($1, $2, $3, $4)
ON CONFLICT (account_number) DO UPDATE
SET balance = EXCLUDED.balance
RETURNING account_number, client_id, account_type, balance
`

// Upsert creates the account or overwrites the balance of the existing one, and then returns it.
func (r *RepoPGS) Upsert(ctx context.Context, a domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, upsertQuery, a.Number, a.ClientID, a.Type, a.Balance)

	var got domain.Account

	err := row.Scan(
		&got.Number,
		&got.ClientID,
		&got.Type,
		&got.Balance,
	)

	if err != nil {
		l.Error().Err(err).Int64("account_number", a.Number).Send()

		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Constraint {
			case "accounts_client_id_fkey":
				return got, domain.ErrClientNotFound
			case "accounts_balance_check":
				return got, domain.ErrLedgerInconsistent
			}
		}

		return got, errorspkg.ErrInternal
	}

	return got, nil
}

const listQuery = `
SELECT
	account_number, client_id, account_type, balance
FROM accounts
ORDER BY account_number
`

// List returns all the stored accounts.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.Number, &a.ClientID, &a.Type, &a.Balance); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
