package jsonrepo

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-bank-datagen/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	clientsIn := writeFile(t, dir, "clients.json", `[
  {
    "username": "user1",
    "password": "aB3$kL9q",
    "firstName": "Sofía",
    "lastName": "Hernández",
    "address": {"streetNumber": "120", "streetName": "Av. Juárez", "city": "Puebla", "state": "Puebla", "country": "México"}
  }
]`)
	accountsIn := writeFile(t, dir, "accounts.json",
		`[{"accountNumber": 10001, "clientId": "user1", "accountType": "Savings", "balance": 0}]`)

	repo := New(Files{ClientsIn: clientsIn, AccountsIn: accountsIn})

	clients, err := repo.LoadClients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 1)
	require.Equal(t, "user1", clients[0].Username)
	require.Equal(t, "Sofía", clients[0].FirstName)
	require.Equal(t, "México", clients[0].Address.Country)

	accounts, err := repo.LoadAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.Equal(t, int64(10001), accounts[0].Number)
	require.Equal(t, domain.AccountTypeSavings, accounts[0].Type)
	require.True(t, accounts[0].Balance.IsZero())
}

func TestLoadUnreadable(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name string
		path string
	}{
		{name: "Missing", path: filepath.Join(dir, "missing.json")},
		{name: "Malformed", path: writeFile(t, dir, "malformed.json", `[{"username": `)},
		{name: "WrongShape", path: writeFile(t, dir, "object.json", `{"username": "user1"}`)},
		{name: "NotConfigured", path: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := New(Files{ClientsIn: tc.path, AccountsIn: tc.path})

			_, err := repo.LoadClients(context.Background())
			require.ErrorIs(t, err, domain.ErrSourceUnreadable)

			_, err = repo.LoadAccounts(context.Background())
			require.ErrorIs(t, err, domain.ErrSourceUnreadable)
		})
	}
}

func TestSave(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "out")
	repo := New(Files{OutputDir: out})

	src, dst := int64(10001), int64(10002)

	transactions := []domain.Transaction{
		{
			ID:            1,
			Amount:        decimal.RequireFromString("5230.10"),
			Kind:          domain.KindDeposit,
			Date:          domain.NewDate(2025, time.January, 7),
			DestinationID: &src,
		},
		{
			ID:            2,
			Amount:        decimal.RequireFromString("99.99"),
			Kind:          domain.KindTransfer,
			Date:          domain.NewDate(2025, time.March, 2),
			SourceID:      &src,
			DestinationID: &dst,
		},
	}

	ctx := context.Background()

	require.NoError(t, repo.SaveClients(ctx, []domain.Client{{Username: "user1", FirstName: "José"}}))
	require.NoError(t, repo.SaveAccounts(ctx, nil))
	require.NoError(t, repo.SaveTransactions(ctx, transactions))

	b, err := os.ReadFile(filepath.Join(out, TransactionsFile))
	require.NoError(t, err)

	got := string(b)
	require.True(t, strings.HasPrefix(got, "[\n  {\n    \"transactionId\": 1,"), got)
	require.Contains(t, got, `"amount": 5230.10,`)
	require.Contains(t, got, `"transactionType": "Transfer"`)
	require.Contains(t, got, `"date": "2025-01-07"`)
	require.Contains(t, got, `"senderId": null`)
	require.Contains(t, got, `"recipientId": 10002`)

	b, err = os.ReadFile(filepath.Join(out, ClientsFile))
	require.NoError(t, err)
	require.Contains(t, string(b), `"firstName": "José"`)

	b, err = os.ReadFile(filepath.Join(out, AccountsFile))
	require.NoError(t, err)
	require.Equal(t, "[]\n", string(b))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)

	for _, e := range entries {
		require.False(t, strings.HasSuffix(e.Name(), ".tmp"), "temporary file %s left behind", e.Name())
	}
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	repo := New(Files{
		ClientsIn:  filepath.Join(dir, ClientsFile),
		AccountsIn: filepath.Join(dir, AccountsFile),
		OutputDir:  dir,
	})

	accounts := []domain.Account{
		{Number: 10001, ClientID: "user1", Type: domain.AccountTypeChecking, Balance: decimal.RequireFromString("1234.56")},
	}

	ctx := context.Background()
	require.NoError(t, repo.SaveAccounts(ctx, accounts))

	got, err := repo.LoadAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, accounts[0].Number, got[0].Number)
	require.Equal(t, accounts[0].ClientID, got[0].ClientID)
	require.Equal(t, accounts[0].Type, got[0].Type)
	require.True(t, accounts[0].Balance.Equal(got[0].Balance), "balance %s, want %s", got[0].Balance, accounts[0].Balance)

	b, err := os.ReadFile(filepath.Join(dir, AccountsFile))
	require.NoError(t, err)
	require.Contains(t, string(b), `"balance": 1234.56`)
}

func TestLoadQuotedBalance(t *testing.T) {
	accountsIn := writeFile(t, t.TempDir(), "accounts.json",
		`[{"accountNumber": 10001, "clientId": "user1", "accountType": "Checking", "balance": "250.75"}]`)

	accounts, err := New(Files{AccountsIn: accountsIn}).LoadAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.True(t, decimal.RequireFromString("250.75").Equal(accounts[0].Balance))
}

func TestSaveUnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := writeFile(t, dir, "blocker", "not a directory")

	repo := New(Files{OutputDir: filepath.Join(blocker, "out")})

	require.Error(t, repo.SaveClients(context.Background(), nil))
}
