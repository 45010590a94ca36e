package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Decimal is a custom type for decimal.Decimal
// the difference from `shopspring` is the json representation is without quotes
// for example the result of this type is 10 instead of "10"
//
// Upstream records send quantities and prices either as JSON numbers or numeric strings,
// both are accepted when decoding.
type Decimal struct {
	decimal.Decimal
}

func NewDecimal(value string) (Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Decimal{}, err
	}

	return Decimal{d}, nil
}

// NewDecimalPtr is a helper for optional payload fields.
func NewDecimalPtr(d Decimal) *Decimal {
	return &d
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		d.Decimal = decimal.Zero
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			d.Decimal = decimal.Zero
			return nil
		}
		data = []byte(s)
	}

	v, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("error decoding decimal %s: %w", string(data), err)
	}
	d.Decimal = v

	return nil
}
