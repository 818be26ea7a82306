package randompkg

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestIntBetween(t *testing.T) {
	g := New(42)

	seen := map[int]bool{}

	for i := 0; i < 1000; i++ {
		got := g.IntBetween(3, 6)
		if got < 3 || got > 6 {
			t.Fatalf("g.IntBetween(3, 6) = %d, want value in [3, 6]", got)
		}

		seen[got] = true
	}

	if len(seen) != 4 {
		t.Errorf("g.IntBetween(3, 6) produced %d distinct values, want 4", len(seen))
	}
}

func TestMoneyAmountBetween(t *testing.T) {
	g := New(7)

	min, max := decimal.NewFromInt(50), decimal.NewFromInt(5000)

	for i := 0; i < 1000; i++ {
		got := g.MoneyAmountBetween(50, 5000)

		if got.LessThan(min) || got.GreaterThan(max) {
			t.Fatalf("g.MoneyAmountBetween(50, 5000) = %v, out of range", got)
		}

		if !got.Equal(got.Round(2)) {
			t.Fatalf("g.MoneyAmountBetween(50, 5000) = %v, want 2 decimals", got)
		}
	}
}

func TestDayBetween(t *testing.T) {
	g := New(1)
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	seen := map[time.Time]bool{}

	for i := 0; i < 200; i++ {
		got := g.DayBetween(start, end)
		if got.Before(start) || got.After(end) {
			t.Fatalf("g.DayBetween(%v, %v) = %v, out of range", start, end, got)
		}

		seen[got] = true
	}

	if len(seen) != 3 {
		t.Errorf("g.DayBetween produced %d distinct days, want 3", len(seen))
	}
}

func TestSameSeedSameSequence(t *testing.T) {
	g1, g2 := New(42), New(42)

	for i := 0; i < 100; i++ {
		if a, b := g1.String(8), g2.String(8); a != b {
			t.Fatalf("draw %d: %q != %q for the same seed", i, a, b)
		}
	}
}
