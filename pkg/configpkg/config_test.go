package configpkg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	config, err := Load("../../configs")
	require.NoError(t, err)

	require.Equal(t, 100, config.TargetClients)
	require.Equal(t, 10, config.MinTransactions)
	require.Equal(t, 50, config.MaxTransactions)
	require.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), config.WindowStart)
	require.Equal(t, time.Date(2025, time.October, 26, 0, 0, 0, 0, time.UTC), config.WindowEnd)
	require.Equal(t, 30, config.OpeningWindowDays)
	require.Equal(t, 5000.0, config.OpeningAmountMin)
	require.Equal(t, 20000.0, config.OpeningAmountMax)
	require.Equal(t, int64(42), config.Seed)
	require.Equal(t, "es_MX", config.Locale)
	require.Equal(t, int64(10000), config.AccountNumberOffset)
	require.Equal(t, StorageJSON, config.Source)
	require.Equal(t, StorageJSON, config.Sink)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SEED", "7")
	t.Setenv("TARGET_CLIENTS", "5")

	config, err := Load("../../configs")
	require.NoError(t, err)

	require.Equal(t, int64(7), config.Seed)
	require.Equal(t, 5, config.TargetClients)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	content := `MIN_TRANSACTIONS=20
MAX_TRANSACTIONS=10
WINDOW_START=2025-01-01
WINDOW_END=2025-10-26
OPENING_AMOUNT_MIN=5000
OPENING_AMOUNT_MAX=20000
AMOUNT_MIN=50
AMOUNT_MAX=5000
LOCALE=es_MX
SOURCE=json
SINK=json
CLIENTS_IN_FILE=in/clients.json
ACCOUNTS_IN_FILE=in/accounts.json
OUTPUT_DIR=out
`
	err := os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600)
	require.NoError(t, err)

	_, err = Load(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "MaxTransactions")
}

func TestValidate(t *testing.T) {
	valid := Config{
		MinTransactions:  1,
		MaxTransactions:  1,
		WindowStart:      time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		WindowEnd:        time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		OpeningAmountMin: 1,
		OpeningAmountMax: 1,
		AmountMin:        1,
		AmountMax:        2,
		Locale:           "en_US",
		Source:           StorageJSON,
		Sink:             StorageJSON,
		ClientsInFile:    "c.json",
		AccountsInFile:   "a.json",
		OutputDir:        "out",
	}

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:   "OK",
			mutate: func(c *Config) {},
		},
		{
			name:    "WindowEndBeforeStart",
			mutate:  func(c *Config) { c.WindowEnd = c.WindowStart.AddDate(0, 0, -1) },
			wantErr: true,
		},
		{
			name:    "UnknownSink",
			mutate:  func(c *Config) { c.Sink = "kafka" },
			wantErr: true,
		},
		{
			name:    "PostgresSinkWithoutDBSource",
			mutate:  func(c *Config) { c.Sink = StoragePostgres },
			wantErr: true,
		},
		{
			name: "PostgresSink",
			mutate: func(c *Config) {
				c.Sink = StoragePostgres
				c.DBSource = "postgresql://localhost:5432/db"
			},
		},
		{
			name:    "MongoSinkWithoutURI",
			mutate:  func(c *Config) { c.Sink = StorageMongo },
			wantErr: true,
		},
		{
			name:    "ZeroAmount",
			mutate:  func(c *Config) { c.AmountMin = 0 },
			wantErr: true,
		},
		{
			name:    "SubCentAmount",
			mutate:  func(c *Config) { c.AmountMin = 0.001 },
			wantErr: true,
		},
		{
			name:    "SubCentOpeningAmount",
			mutate:  func(c *Config) { c.OpeningAmountMin = 0.004 },
			wantErr: true,
		},
		{
			name:   "CentAmount",
			mutate: func(c *Config) { c.AmountMin, c.OpeningAmountMin = 0.01, 0.01 },
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)

			err := c.Validate()
			if tc.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
		})
	}
}
