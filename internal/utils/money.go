package utils

import (
	"fmt"
	"math"
)

// DollarsToCents converts a major-unit amount into integer cents, rounding
// half away from zero. Prices entered as dollars on listing forms go
// through here once; everything downstream works in cents.
func DollarsToCents(dollars float64) int64 {
	if dollars < 0 {
		return -DollarsToCents(-dollars)
	}
	return int64(math.Floor(dollars*100 + 0.5))
}

// CentsToDollars converts integer cents back to a major-unit amount.
func CentsToDollars(cents int64) float64 {
	return float64(cents) / 100
}

// FormatCents renders cents as a dollar string for email bodies.
func FormatCents(cents int64) string {
	return fmt.Sprintf("$%.2f", CentsToDollars(cents))
}
