//go:build integration

package datasetrepo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-bank-datagen/internal/clientrepo"
	"github.com/go-petr/pet-bank-datagen/internal/datasetrepo"
	"github.com/go-petr/pet-bank-datagen/internal/datasetservice"
	"github.com/go-petr/pet-bank-datagen/internal/domain"
	"github.com/go-petr/pet-bank-datagen/internal/integrationtest"
	"github.com/go-petr/pet-bank-datagen/internal/transactionrepo"
	"github.com/go-petr/pet-bank-datagen/pkg/configpkg"
	"github.com/go-petr/pet-bank-datagen/pkg/passpkg"
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

func TestPublishAndLoad(t *testing.T) {
	db := integrationtest.SetupDB(t, dbDriver, dbSource)
	integrationtest.Flush(t, db)

	ctx := context.Background()
	repo := datasetrepo.NewRepoPGS(db)
	svc := datasetservice.New(repo)

	params := datasetservice.DefaultParams()
	params.TargetClients = 4

	ds, _, err := svc.Generate(ctx, params)
	if err != nil {
		t.Fatalf("svc.Generate(ctx, %+v) returned error: %v", params, err)
	}

	if err := svc.Publish(ctx, repo, ds); err != nil {
		t.Fatalf("svc.Publish(ctx, repo, ds) returned error: %v", err)
	}

	clients, err := repo.LoadClients(ctx)
	if err != nil {
		t.Fatalf("repo.LoadClients(ctx) returned error: %v", err)
	}

	ignorePassword := cmpopts.IgnoreFields(domain.Client{}, "Password")
	if diff := cmp.Diff(ds.Clients, clients, ignorePassword); diff != "" {
		t.Errorf("repo.LoadClients(ctx) returned unexpected difference (-want +got):\n%s", diff)
	}

	hashed, err := clientrepo.NewRepoPGS(db).GetHashedPassword(ctx, ds.Clients[0].Username)
	if err != nil {
		t.Fatalf("GetHashedPassword returned error: %v", err)
	}

	if err := passpkg.Check(ds.Clients[0].Password, hashed); err != nil {
		t.Errorf("stored hash does not match the generated password: %v", err)
	}

	accounts, err := repo.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("repo.LoadAccounts(ctx) returned error: %v", err)
	}

	if diff := cmp.Diff(ds.Accounts, accounts, equateDecimal); diff != "" {
		t.Errorf("repo.LoadAccounts(ctx) returned unexpected difference (-want +got):\n%s", diff)
	}

	transactions, err := transactionrepo.NewRepoPGS(db).List(ctx)
	if err != nil {
		t.Fatalf("transactionRepo.List(ctx) returned error: %v", err)
	}

	if diff := cmp.Diff(ds.Transactions, transactions, equateDecimal); diff != "" {
		t.Errorf("stored ledger differs (-want +got):\n%s", diff)
	}

	// A second run continues from the stored population.
	params.TargetClients = 6

	next, _, err := svc.Generate(ctx, params)
	if err != nil {
		t.Fatalf("svc.Generate(ctx, %+v) returned error: %v", params, err)
	}

	if err := svc.Publish(ctx, repo, next); err != nil {
		t.Fatalf("svc.Publish(ctx, repo, next) returned error: %v", err)
	}

	accounts, err = repo.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("repo.LoadAccounts(ctx) returned error: %v", err)
	}

	if diff := cmp.Diff(next.Accounts, accounts, equateDecimal); diff != "" {
		t.Errorf("repo.LoadAccounts(ctx) after second run returned unexpected difference (-want +got):\n%s", diff)
	}
}
