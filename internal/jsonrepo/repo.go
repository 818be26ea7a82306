// Package jsonrepo stores the dataset as JSON documents on the filesystem.
package jsonrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-bank-datagen/internal/domain"
)

// Output file names inside the output directory.
const (
	ClientsFile      = "clients.json"
	AccountsFile     = "accounts.json"
	TransactionsFile = "transactions.json"
)

// Files holds the locations read and written by Repo.
type Files struct {
	ClientsIn  string
	AccountsIn string
	OutputDir  string
}

// Repo reads the existing population from JSON files and writes the dataset back.
type Repo struct {
	files Files
}

// New returns JSON repo over files.
func New(files Files) *Repo {
	return &Repo{files: files}
}

// LoadClients reads the input clients file.
func (r *Repo) LoadClients(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client

	if err := readJSON(ctx, r.files.ClientsIn, &clients); err != nil {
		return nil, err
	}

	return clients, nil
}

// LoadAccounts reads the input accounts file.
func (r *Repo) LoadAccounts(ctx context.Context) ([]domain.Account, error) {
	var docs []accountDocument

	if err := readJSON(ctx, r.files.AccountsIn, &docs); err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(docs))
	for _, d := range docs {
		accounts = append(accounts, d.account())
	}

	return accounts, nil
}

// SaveClients writes clients to the output directory.
func (r *Repo) SaveClients(ctx context.Context, clients []domain.Client) error {
	if clients == nil {
		clients = []domain.Client{}
	}

	return writeJSON(ctx, filepath.Join(r.files.OutputDir, ClientsFile), clients)
}

// SaveAccounts writes accounts to the output directory with balances as numbers.
func (r *Repo) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	return writeJSON(ctx, filepath.Join(r.files.OutputDir, AccountsFile), newAccountDocuments(accounts))
}

// SaveTransactions writes transactions to the output directory with amounts as numbers.
func (r *Repo) SaveTransactions(ctx context.Context, transactions []domain.Transaction) error {
	return writeJSON(ctx, filepath.Join(r.files.OutputDir, TransactionsFile), newTransactionDocuments(transactions))
}

func readJSON(ctx context.Context, path string, v any) error {
	l := zerolog.Ctx(ctx)

	if path == "" {
		return fmt.Errorf("%w: no input file configured", domain.ErrSourceUnreadable)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSourceUnreadable, err)
	}

	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, path, err)
	}

	l.Debug().Str("path", path).Msg("input file loaded")

	return nil
}

// writeJSON encodes v into path+".tmp" and renames it over path.
func writeJSON(ctx context.Context, path string, v any) error {
	l := zerolog.Ctx(ctx)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		f.Close()
		os.Remove(tmp)

		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		return err
	}

	l.Info().Str("path", path).Msg("file written")

	return nil
}
