// Package score implements the vendor scoring engine: price normalization,
// payment-term resolution, score calculation, ranking and cost projection.
// Everything here is pure; "today" and the order quantity arrive as explicit
// inputs so results are reproducible.
package score

import (
	"math"
	"strconv"
	"strings"
)

// Amount is an optional numeric value parsed from a spreadsheet cell.
// The zero value is "absent".
type Amount struct {
	Value float64
	Valid bool
}

// NewAmount creates a present Amount.
func NewAmount(v float64) Amount {
	return Amount{Value: v, Valid: true}
}

// absentPriceWords are cell values treated as "no price", case-insensitive.
var absentPriceWords = map[string]bool{
	"":     true,
	"none": true,
	"nan":  true,
}

// NormalizePrice coerces free-text price cells into a finite non-negative
// amount. Currency symbols and thousands separators are stripped; anything
// that still fails to parse is absent, never an error.
func NormalizePrice(raw string) Amount {
	s := strings.TrimSpace(raw)
	if absentPriceWords[strings.ToLower(s)] {
		return Amount{}
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Amount{}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return Amount{}
	}
	return NewAmount(v)
}

// Round rounds to the given number of decimal places.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
