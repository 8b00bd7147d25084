package score

import (
	"math"
	"strings"
	"testing"
	"time"
)

// FuzzNormalizePrice tests price normalization with arbitrary input.
func FuzzNormalizePrice(f *testing.F) {
	// Seed corpus with valid prices
	f.Add("10.00")
	f.Add("$1,200.00")
	f.Add(" $1,234.50 ")
	f.Add("0")
	f.Add("999.99")

	// Absent markers
	f.Add("")
	f.Add("none")
	f.Add("NONE")
	f.Add("nan")
	f.Add("  NaN  ")

	// Edge cases
	f.Add("-5")
	f.Add("1e308")
	f.Add("1e-308")
	f.Add("$$$")
	f.Add(",,,")
	f.Add("$-1,000")
	f.Add("Inf")
	f.Add(strings.Repeat("9", 10000))
	f.Add("10.00\x00")
	f.Add("\ufeff10.00")

	f.Fuzz(func(t *testing.T, input string) {
		// The function should never panic
		amount := NormalizePrice(input)

		// A present amount is always a usable, non-negative finite number
		if amount.Valid {
			if math.IsNaN(amount.Value) || math.IsInf(amount.Value, 0) {
				t.Errorf("NormalizePrice(%q) returned non-finite %v", input, amount.Value)
			}
			if amount.Value < 0 {
				t.Errorf("NormalizePrice(%q) returned negative %v", input, amount.Value)
			}
		}
	})
}

// FuzzResolveTerms tests payment term resolution with arbitrary input.
func FuzzResolveTerms(f *testing.F) {
	// Seed corpus with valid terms
	f.Add("Net 30")
	f.Add("45 days")
	f.Add("60-day")
	f.Add("Due August 1st")
	f.Add("Due March 15th")
	f.Add("No current vendor")

	// Edge cases
	f.Add("")
	f.Add("Due February 31st")
	f.Add("Due January 0th")
	f.Add("99999999999999999999 days")
	f.Add("due december 25")
	f.Add("30")
	f.Add(strings.Repeat("day ", 5000))
	f.Add("Net 30\x00")

	today := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	f.Fuzz(func(t *testing.T, input string) {
		// The function should never panic
		term := ResolveTerms(input, today)

		// A resolved term is never negative
		if term.Valid && term.Days < 0 {
			t.Errorf("ResolveTerms(%q) returned negative days %d", input, term.Days)
		}
	})
}
