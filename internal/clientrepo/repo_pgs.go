// Package clientrepo manages repository layer of clients.
package clientrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-bank-datagen/internal/domain"
	"github.com/go-petr/pet-bank-datagen/pkg/dbpkg"
	"github.com/go-petr/pet-bank-datagen/pkg/errorspkg"
)

// RepoPGS facilitates client repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns client RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    clients (username, hashed_password, first_name, last_name,
             street_number, street_name, city, state, country)
VALUES
    ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (username) DO NOTHING
`

// Create stores the client unless a client with the same username exists.
//
// Existing clients are never modified. It reports whether the client was inserted.
func (r *RepoPGS) Create(ctx context.Context, c domain.Client, hashedPassword string) (bool, error) {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, createQuery,
		c.Username,
		hashedPassword,
		c.FirstName,
		c.LastName,
		c.Address.StreetNumber,
		c.Address.StreetName,
		c.Address.City,
		c.Address.State,
		c.Address.Country,
	)
	if err != nil {
		l.Error().Err(err).Str("username", c.Username).Send()
		return false, errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return n == 1, nil
}

const listQuery = `
SELECT
	username, first_name, last_name, street_number, street_name, city, state, country
FROM clients
ORDER BY id
`

// List returns all the stored clients.
//
// Only password hashes are stored, so the returned clients have no password.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Client, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Client{}

	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(
			&c.Username,
			&c.FirstName,
			&c.LastName,
			&c.Address.StreetNumber,
			&c.Address.StreetName,
			&c.Address.City,
			&c.Address.State,
			&c.Address.Country,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, c)
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

const getHashedPasswordQuery = `
SELECT hashed_password
FROM clients
WHERE username = $1
`

// GetHashedPassword returns the password hash of the client.
func (r *RepoPGS) GetHashedPassword(ctx context.Context, username string) (string, error) {
	l := zerolog.Ctx(ctx)

	var hashed string

	err := r.db.QueryRowContext(ctx, getHashedPasswordQuery, username).Scan(&hashed)
	if err != nil {
		l.Error().Err(err).Send()

		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrClientNotFound
		}

		return "", errorspkg.ErrInternal
	}

	return hashed, nil
}
