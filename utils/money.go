package utils

import "github.com/shopspring/decimal"

const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// MaxAmount is the smallest value a decimal(10,2) money column cannot hold.
var MaxAmount = decimal.New(1, 8)

// FitsColumn reports whether d, rounded to cents, fits a decimal(10,2) column.
func FitsColumn(d decimal.Decimal) bool {
	return RoundMoney(d).Abs().LessThan(MaxAmount)
}

// RoundMoney rounds to cents, half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

// MinorUnits converts an amount to integer cents. The amount is rounded to cents
// first so the charged value always matches the persisted total.
func MinorUnits(d decimal.Decimal) int64 {
	return RoundMoney(d).Mul(hundred).Round(0).IntPart()
}

// LineTotal returns price × qty on the rounded unit price.
func LineTotal(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return RoundMoney(unitPrice).Mul(decimal.NewFromInt(int64(qty)))
}

// WithinCent reports whether a and b differ by at most one cent.
func WithinCent(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(decimal.New(1, -moneyPlaces))
}
