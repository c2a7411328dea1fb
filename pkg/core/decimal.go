package core

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// decimalContext carries enough precision for products of exchange-reported values.
var decimalContext = func() *apd.Context {
	c := apd.BaseContext.WithPrecision(34)
	c.Rounding = apd.RoundHalfEven
	return c
}()

var hundred = apd.New(100, 0)

// ParseDecimal parses s into dest. An empty string yields zero.
func ParseDecimal(dest *apd.Decimal, s string) error {
	if s == "" {
		dest.SetInt64(0)
		return nil
	}
	if _, _, err := apd.BaseContext.SetString(dest, s); err != nil {
		return fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return nil
}

// ParseOptionalDecimal parses s into a new decimal, or returns nil for "".
func ParseOptionalDecimal(s string) (*apd.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d := new(apd.Decimal)
	if err := ParseDecimal(d, s); err != nil {
		return nil, err
	}
	return d, nil
}

// MulDecimal stores x*y in dest.
func MulDecimal(dest, x, y *apd.Decimal) error {
	_, err := decimalContext.Mul(dest, x, y)
	return err
}

// RoundPercent stores x rounded half-even to two decimal places in dest.
func RoundPercent(dest, x *apd.Decimal) error {
	_, err := decimalContext.Quantize(dest, x, -2)
	return err
}

// RateToPercent stores rate*100 rounded to two decimal places in dest.
func RateToPercent(dest, rate *apd.Decimal) error {
	var pct apd.Decimal
	if err := MulDecimal(&pct, rate, hundred); err != nil {
		return err
	}
	return RoundPercent(dest, &pct)
}

// Number holds a JSON numeric value that may arrive quoted ("0.1") or bare
// (0.1). It keeps the literal text so no precision is lost before parsing.
type Number string

// UnmarshalJSON implements json.Unmarshaler for Number.
func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = ""
		return nil
	}
	*n = Number(unquote(data))
	return nil
}

// Decimal parses n into dest.
func (n Number) Decimal(dest *apd.Decimal) error {
	return ParseDecimal(dest, string(n))
}

// OptionalDecimal parses n, returning nil when n is empty.
func (n Number) OptionalDecimal() (*apd.Decimal, error) {
	return ParseOptionalDecimal(string(n))
}

// FormatDecimal renders d in plain notation, never with an exponent.
func FormatDecimal(d *apd.Decimal) string {
	return d.Text('f')
}
