package transactionservice

import (
	"fmt"

	"github.com/go-petr/pet-bank-datagen/internal/domain"
)

// MinAmount is the smallest amount that survives rounding to cents.
const MinAmount = 0.01

// Config holds the parameters of the transaction synthesis.
type Config struct {
	// MinTransactions and MaxTransactions bound the per-account candidate count,
	// opening deposit included.
	MinTransactions int
	MaxTransactions int

	WindowStart domain.Date
	WindowEnd   domain.Date

	// OpeningWindowDays is the span after WindowStart holding the opening deposits.
	OpeningWindowDays int

	OpeningAmountMin float64
	OpeningAmountMax float64
	AmountMin        float64
	AmountMax        float64
}

// DefaultConfig returns the default synthesis parameters.
func DefaultConfig() Config {
	return Config{
		MinTransactions:   10,
		MaxTransactions:   50,
		WindowStart:       domain.NewDate(2025, 1, 1),
		WindowEnd:         domain.NewDate(2025, 10, 26),
		OpeningWindowDays: 30,
		OpeningAmountMin:  5000,
		OpeningAmountMax:  20000,
		AmountMin:         50,
		AmountMax:         5000,
	}
}

// Validate checks that the ranges are well formed.
func (c Config) Validate() error {
	switch {
	case c.MinTransactions < 1:
		return fmt.Errorf("%w: min transactions %d < 1", domain.ErrInvalidSynthesisConfig, c.MinTransactions)
	case c.MaxTransactions < c.MinTransactions:
		return fmt.Errorf("%w: max transactions %d < min %d", domain.ErrInvalidSynthesisConfig, c.MaxTransactions, c.MinTransactions)
	case c.WindowEnd.Before(c.WindowStart.Time):
		return fmt.Errorf("%w: window ends %v before it starts %v", domain.ErrInvalidSynthesisConfig, c.WindowEnd, c.WindowStart)
	case c.OpeningWindowDays < 0:
		return fmt.Errorf("%w: negative opening window", domain.ErrInvalidSynthesisConfig)
	case c.OpeningAmountMin < MinAmount || c.OpeningAmountMax < c.OpeningAmountMin:
		return fmt.Errorf("%w: opening amount range [%v, %v]", domain.ErrInvalidSynthesisConfig, c.OpeningAmountMin, c.OpeningAmountMax)
	case c.AmountMin < MinAmount || c.AmountMax < c.AmountMin:
		return fmt.Errorf("%w: amount range [%v, %v]", domain.ErrInvalidSynthesisConfig, c.AmountMin, c.AmountMax)
	}

	return nil
}

// openingEnd returns the last possible opening deposit date.
func (c Config) openingEnd() domain.Date {
	end := c.WindowStart.AddDays(c.OpeningWindowDays)
	if end.After(c.WindowEnd.Time) {
		return c.WindowEnd
	}

	return end
}
