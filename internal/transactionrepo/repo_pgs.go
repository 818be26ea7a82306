// Package transactionrepo manages repository layer of transactions.
package transactionrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-bank-datagen/internal/domain"
	"github.com/go-petr/pet-bank-datagen/pkg/dbpkg"
	"github.com/go-petr/pet-bank-datagen/pkg/errorspkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

func mapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "transactions_sender_id_fkey", "transactions_recipient_id_fkey":
			return domain.ErrUnknownAccount
		case "transactions_pkey", "transactions_counterparty_check", "transactions_amount_check":
			return domain.ErrLedgerInconsistent
		}
	}

	return errorspkg.ErrInternal
}

const deleteAllQuery = `DELETE FROM transactions`

// DeleteAll removes every stored transaction.
func (r *RepoPGS) DeleteAll(ctx context.Context) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, deleteAllQuery); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

// CopyIn bulk loads transactions through the COPY protocol.
//
// It must run inside a db transaction.
func (r *RepoPGS) CopyIn(ctx context.Context, transactions []domain.Transaction) error {
	l := zerolog.Ctx(ctx)

	stmt, err := r.db.PrepareContext(ctx, pq.CopyIn("transactions",
		"transaction_id", "amount", "transaction_type", "date", "sender_id", "recipient_id"))
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	for _, t := range transactions {
		if _, err := stmt.ExecContext(ctx, t.ID, t.Amount, t.Kind, t.Date, t.SourceID, t.DestinationID); err != nil {
			l.Error().Err(err).Int64("transaction_id", t.ID).Send()
			stmt.Close()

			return mapError(err)
		}
	}

	// The buffered rows are flushed by the final empty Exec.
	if _, err := stmt.ExecContext(ctx); err != nil {
		l.Error().Err(err).Send()
		stmt.Close()

		return mapError(err)
	}

	if err := stmt.Close(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

const listQuery = `
SELECT
	transaction_id, amount, transaction_type, date, sender_id, recipient_id
FROM transactions
ORDER BY date, transaction_id
`

// List returns all the stored transactions ordered by date.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var (
			t        domain.Transaction
			src, dst sql.NullInt64
		)

		if err := rows.Scan(&t.ID, &t.Amount, &t.Kind, &t.Date, &src, &dst); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		if src.Valid {
			t.SourceID = &src.Int64
		}

		if dst.Valid {
			t.DestinationID = &dst.Int64
		}

		items = append(items, t)
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
