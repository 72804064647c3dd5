package utils

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	// PayoffEpsilon is the remaining balance at or below which a loan counts as repaid.
	PayoffEpsilon = decimal.RequireFromString("0.005")
)

// RoundCurrency rounds to 2 decimal places, half away from zero.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// PercentOf returns amount × rate / 100.
func PercentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate.Div(hundred))
}

// IsWholeCents reports whether d has no digits below the cent.
func IsWholeCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

// IsPaidOff reports whether balance is within PayoffEpsilon of zero (or below it).
func IsPaidOff(balance decimal.Decimal) bool {
	return balance.LessThanOrEqual(PayoffEpsilon)
}

// FloorAtZero clamps negative values to zero.
func FloorAtZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// MinDecimal returns the smaller of a and b.
func MinDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
