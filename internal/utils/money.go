package utils

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// RoundCents rounds to two places, half away from zero.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ToMinorUnits converts a currency amount to integer cents.
func ToMinorUnits(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}
