package domain

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Price is an artwork or order price. It is written as a bare JSON number and
// read from either a number or a numeric string, since older uploads stored
// the form value as text.
type Price struct {
	decimal.Decimal
}

// NewPrice returns a whole-unit price.
func NewPrice(units int64) Price {
	return Price{decimal.NewFromInt(units)}
}

// ParsePrice parses a decimal string such as "2400" or "19.99".
func ParsePrice(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("parse price %q: %w", s, err)
	}
	return Price{d}, nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte(`""`)) {
		p.Decimal = decimal.Zero
		return nil
	}
	return p.Decimal.UnmarshalJSON(b)
}

// Display formats the price the way the storefront shows it: "$2400".
func (p Price) Display() string {
	return "$" + p.Decimal.String()
}
