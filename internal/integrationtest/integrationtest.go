// Package integrationtest provides db helpers used in integration tests.
package integrationtest

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-bank-datagen/internal/accountrepo"
	"github.com/go-petr/pet-bank-datagen/internal/clientrepo"
	"github.com/go-petr/pet-bank-datagen/internal/domain"
	"github.com/go-petr/pet-bank-datagen/pkg/dbpkg"
	"github.com/go-petr/pet-bank-datagen/pkg/passpkg"
)

// Flush flushes all db tables without droping.
func Flush(t *testing.T, db *sql.DB) {
	t.Helper()

	var tables string

	const query = `
	SELECT string_agg(table_name, ', ')
	FROM information_schema.tables 
	WHERE table_schema='public';`

	row := db.QueryRow(query)

	err := row.Scan(&tables)
	if err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}

	if _, err := db.Exec(`TRUNCATE TABLE ` + tables + " CASCADE"); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}
}

// SetupDB sets up connection with database for testing and then cleans it.
func SetupDB(t *testing.T, driver, source string) *sql.DB {
	t.Helper()

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	t.Cleanup(func() {
		Flush(t, db)

		if err := db.Close(); err != nil {
			t.Fatalf("db cleanup failed. err: %v", err)
		}
	})

	return db
}

// SetupTX sets up a database transaction to be used in tests.
//
// Once the tests are done it will rollback the transaction.
func SetupTX(t *testing.T, driver, source string) *sql.Tx {
	t.Helper()

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("db.Begin() failed: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Fatalf("tx.Rollback() failed: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Fatalf("db.Close() failed: %v", err)
		}
	})

	return tx
}

// SeedClient stores a client with a random username and returns it.
func SeedClient(t *testing.T, db dbpkg.SQLInterface) domain.Client {
	t.Helper()

	c := domain.Client{
		Username:  fmt.Sprintf("seed_%s", uuid.NewString()),
		Password:  "Pa55word",
		FirstName: "Ana",
		LastName:  "López",
		Address: domain.Address{
			StreetNumber: "42",
			StreetName:   "Av. Reforma",
			City:         "Ciudad de México",
			State:        "Ciudad de México",
			Country:      "México",
		},
	}

	hashed, err := passpkg.Hash(c.Password)
	if err != nil {
		t.Fatalf("passpkg.Hash(%q) returned error: %v", c.Password, err)
	}

	created, err := clientrepo.NewRepoPGS(db).Create(context.Background(), c, hashed)
	if err != nil || !created {
		t.Fatalf("clientRepo.Create(%+v) = %v, %v", c, created, err)
	}

	return c
}

// SeedAccount stores an account of the client with the given number and balance.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, number int64, clientID string, balance decimal.Decimal) domain.Account {
	t.Helper()

	a := domain.Account{
		Number:   number,
		ClientID: clientID,
		Type:     domain.AccountTypeSavings,
		Balance:  balance,
	}

	got, err := accountrepo.NewRepoPGS(db).Upsert(context.Background(), a)
	if err != nil {
		t.Fatalf("accountRepo.Upsert(%+v) returned error: %v", a, err)
	}

	return got
}
