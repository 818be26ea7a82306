// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Supported data sources and sinks.
const (
	StorageJSON     = "json"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

// DateLayout is the format of WINDOW_START and WINDOW_END.
const DateLayout = "2006-01-02"

// Config stores all configuration of the application.
//
// The values are read by viper fron a config file or environement variables.
type Config struct {
	Environement string `mapstructure:"GO_ENV"`

	TargetClients       int       `mapstructure:"TARGET_CLIENTS" validate:"gte=0"`
	MinTransactions     int       `mapstructure:"MIN_TRANSACTIONS" validate:"gte=1"`
	MaxTransactions     int       `mapstructure:"MAX_TRANSACTIONS" validate:"gtefield=MinTransactions"`
	WindowStart         time.Time `mapstructure:"WINDOW_START" validate:"required"`
	WindowEnd           time.Time `mapstructure:"WINDOW_END" validate:"required,gtefield=WindowStart"`
	OpeningWindowDays   int       `mapstructure:"OPENING_WINDOW_DAYS" validate:"gte=0"`
	OpeningAmountMin    float64   `mapstructure:"OPENING_AMOUNT_MIN" validate:"gte=0.01"`
	OpeningAmountMax    float64   `mapstructure:"OPENING_AMOUNT_MAX" validate:"gtefield=OpeningAmountMin"`
	AmountMin           float64   `mapstructure:"AMOUNT_MIN" validate:"gte=0.01"`
	AmountMax           float64   `mapstructure:"AMOUNT_MAX" validate:"gtefield=AmountMin"`
	Seed                int64     `mapstructure:"SEED"`
	Locale              string    `mapstructure:"LOCALE" validate:"required"`
	AccountNumberOffset int64     `mapstructure:"ACCOUNT_NUMBER_OFFSET" validate:"gte=0"`

	Source         string `mapstructure:"SOURCE" validate:"oneof=json postgres"`
	Sink           string `mapstructure:"SINK" validate:"oneof=json postgres mongo"`
	ClientsInFile  string `mapstructure:"CLIENTS_IN_FILE" validate:"required_if=Source json"`
	AccountsInFile string `mapstructure:"ACCOUNTS_IN_FILE" validate:"required_if=Source json"`
	OutputDir      string `mapstructure:"OUTPUT_DIR" validate:"required_if=Sink json"`
	DBDriver       string `mapstructure:"DB_DRIVER"`
	DBSource       string `mapstructure:"DB_SOURCE" validate:"required_if=Source postgres,required_if=Sink postgres"`
	MongoURI       string `mapstructure:"MONGO_URI" validate:"required_if=Sink mongo"`
	MongoDatabase  string `mapstructure:"MONGO_DATABASE" validate:"required_if=Sink mongo"`

	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
}

// Load read configuration from file or environment variables and validates it.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return c, err
	}

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeHookFunc(DateLayout),
		mapstructure.StringToTimeDurationHookFunc(),
	))

	err = v.Unmarshal(&c, hook)
	if err != nil {
		return c, err
	}

	if err := c.Validate(); err != nil {
		return c, err
	}

	return c, nil
}

// Validate checks the config values against their constraints.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}
