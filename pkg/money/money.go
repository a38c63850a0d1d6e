// Package money provides fixed-point helpers for amounts in Omani rial.
// OMR uses three decimal places (1 OMR = 1000 baisa), so float arithmetic
// is never safe here; all amounts travel as shopspring decimals and are
// converted to integer baisa only at the go-money boundary.
package money

import (
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Code is the only currency the tracker handles.
const Code = "OMR"

// DecimalPlaces is the OMR minor-unit exponent.
const DecimalPlaces = 3

var minorUnit = decimal.New(1, DecimalPlaces) // 1000

// Parse converts a user-entered amount string to a decimal. It accepts an
// optional currency code or symbol and thousands separators, and rejects
// negative values.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	for _, tag := range []string{Code, strings.ToLower(Code), "﷼"} {
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, tag), tag))
	}
	if s == "" {
		return decimal.Zero, fmt.Errorf("money: empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("money: invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("money: negative amount %q", s)
	}
	return d, nil
}

// Format renders an amount the way the dashboard shows it: three decimal
// places and the currency suffix, e.g. "12.500 OMR".
func Format(d decimal.Decimal) string {
	return d.StringFixed(DecimalPlaces) + " " + Code
}

// Display renders an amount using the ISO-4217 formatting rules for OMR
// (symbol placement, grouping), e.g. for receipts and exports headers.
func Display(d decimal.Decimal) string {
	return gomoney.New(ToBaisa(d), Code).Display()
}

// ToBaisa converts a decimal OMR amount to integer minor units, rounding
// half up on the fourth decimal.
func ToBaisa(d decimal.Decimal) int64 {
	return d.Mul(minorUnit).Round(0).IntPart()
}

// FromBaisa converts integer minor units back to a decimal OMR amount.
func FromBaisa(baisa int64) decimal.Decimal {
	return decimal.NewFromInt(baisa).Div(minorUnit)
}
