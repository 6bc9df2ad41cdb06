// Package money implements the monetary rounding policy shared by the
// Factur-X document builders: every emitted currency amount carries
// exactly 2 fractional digits, and every derived figure is quantized
// immediately after it is computed. Summing raw values and rounding
// the aggregate can differ from summing rounded values by a cent, so
// the ordering here is part of the contract.
package money

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// Hundred is used for percentage arithmetic
var Hundred = decimal.NewFromInt(100)

// Quantize rounds to exactly 2 decimal places (EUR cents)
func Quantize(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FromString parses a decimal from a string
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses a decimal from a string, panics on error
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Tax computes the tax amount for a net basis at a percentage rate,
// quantized to 2 places: round2(net * rate / 100)
func Tax(net, ratePercent decimal.Decimal) decimal.Decimal {
	return Quantize(net.Mul(ratePercent).Div(Hundred))
}

// RawTax computes net * rate / 100 without quantizing. The BASIC
// profile accumulates raw per-line tax contributions and rounds only
// the aggregate.
func RawTax(net, ratePercent decimal.Decimal) decimal.Decimal {
	return net.Mul(ratePercent).Div(Hundred)
}

// Add sums two amounts and quantizes the result
func Add(a, b decimal.Decimal) decimal.Decimal {
	return Quantize(a.Add(b))
}

// Sum sums a slice of decimals without quantizing
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// Format renders an amount with exactly 2 fractional digits, no
// currency symbol, no thousands separators.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// IsNonNegative returns true if decimal is >= zero
func IsNonNegative(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero)
}

// ImpliedRate derives a VAT rate percentage from a known net and
// gross pair: round2((gross - net) / net * 100). Returns false when
// the pair cannot support a rate (net <= 0 or gross <= net).
func ImpliedRate(net, gross decimal.Decimal) (decimal.Decimal, bool) {
	if !net.IsPositive() || gross.LessThanOrEqual(net) {
		return Zero, false
	}
	return Quantize(gross.Sub(net).Div(net).Mul(Hundred)), true
}
