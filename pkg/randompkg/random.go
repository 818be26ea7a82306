// Package randompkg provides a seeded random generator for the applications common items.
//
// All draws of a generation run go through one Generator so that a fixed seed
// reproduces the same dataset.
package randompkg

import (
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Generator wraps a seeded math/rand source. It is not safe for concurrent use.
type Generator struct {
	r *rand.Rand
}

// New returns a Generator seeded with seed.
func New(seed int64) *Generator {
	return &Generator{r: rand.New(rand.NewSource(seed))}
}

// Rand exposes the underlying source so that other libraries draw from the same sequence.
func (g *Generator) Rand() *rand.Rand {
	return g.r
}

// Intn generates a random integer in [0, n).
func (g *Generator) Intn(n int) int {
	return g.r.Intn(n)
}

// IntBetween generates a random integer between min and max inclusive.
func (g *Generator) IntBetween(min, max int) int {
	return min + g.r.Intn(max-min+1)
}

// FloatBetween generates a random float uniformly between min and max.
func (g *Generator) FloatBetween(min, max float64) float64 {
	return min + g.r.Float64()*(max-min)
}

// MoneyAmountBetween generates a random amount of money between min and max rounded to 2 decimals.
func (g *Generator) MoneyAmountBetween(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(g.FloatBetween(min, max)).Round(2)
}

// DayBetween generates a random whole day between start and end inclusive.
func (g *Generator) DayBetween(start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	return start.AddDate(0, 0, g.IntBetween(0, days))
}

// String generates a random string of length n.
func (g *Generator) String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[g.r.Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}
