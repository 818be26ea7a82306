//go:build integration

package accountrepo_test

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-bank-datagen/internal/accountrepo"
	"github.com/go-petr/pet-bank-datagen/internal/domain"
	"github.com/go-petr/pet-bank-datagen/internal/integrationtest"
	"github.com/go-petr/pet-bank-datagen/pkg/configpkg"
)

var (
	dbDriver string
	dbSource string
)

var equateDecimal = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbDriver = config.DBDriver
	dbSource = config.DBSource

	os.Exit(m.Run())
}

func TestUpsert(t *testing.T) {
	testCases := []struct {
		name        string
		wantAccount func(tx *sql.Tx) domain.Account
		wantErr     error
	}{
		{
			name: "OK",
			wantAccount: func(tx *sql.Tx) domain.Account {
				client := integrationtest.SeedClient(t, tx)
				return domain.Account{
					Number:   900001,
					ClientID: client.Username,
					Type:     domain.AccountTypeChecking,
					Balance:  decimal.RequireFromString("1520.75"),
				}
			},
		},
		{
			name: "BalanceOverwritten",
			wantAccount: func(tx *sql.Tx) domain.Account {
				client := integrationtest.SeedClient(t, tx)
				a := integrationtest.SeedAccount(t, tx, 900002, client.Username, decimal.Zero)
				a.Balance = decimal.RequireFromString("88.10")

				return a
			},
		},
		{
			name: "ConstraintViolation:accounts_client_id_fkey",
			wantAccount: func(tx *sql.Tx) domain.Account {
				return domain.Account{Number: 900003, ClientID: "nobody", Type: domain.AccountTypeSavings}
			},
			wantErr: domain.ErrClientNotFound,
		},
		{
			name: "ConstraintViolation:accounts_balance_check",
			wantAccount: func(tx *sql.Tx) domain.Account {
				client := integrationtest.SeedClient(t, tx)
				return domain.Account{
					Number:   900004,
					ClientID: client.Username,
					Type:     domain.AccountTypeSavings,
					Balance:  decimal.NewFromInt(-1),
				}
			},
			wantErr: domain.ErrLedgerInconsistent,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Prepare test transaction and seed database
			tx := integrationtest.SetupTX(t, dbDriver, dbSource)
			want := tc.wantAccount(tx)
			accountRepo := accountrepo.NewRepoPGS(tx)

			// Run test
			got, err := accountRepo.Upsert(context.Background(), want)
			if err != nil {
				if err == tc.wantErr {
					return
				}
				t.Fatalf(`accountRepo.Upsert(context.Background(), %+v) returned error: %v`, want, err)
			}

			if tc.wantErr != nil {
				t.Fatalf("accountRepo.Upsert(context.Background(), %+v) returned no error, want %v", want, tc.wantErr)
			}

			if diff := cmp.Diff(want, got, equateDecimal); diff != "" {
				t.Errorf(`accountRepo.Upsert(context.Background(), %+v) returned unexpected difference (-want +got):\n%s`, want, diff)
			}
		})
	}
}
