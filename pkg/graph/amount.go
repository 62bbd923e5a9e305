package graph

import (
	"bytes"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Amount is a money-valued link magnitude. It decodes from JSON numbers,
// quoted decimal strings and null, and always encodes as a bare number.
// The zero value is 0.
type Amount struct {
	decimal.Decimal
}

// NewAmount returns the Amount for f. NaN and infinities become zero.
func NewAmount(f float64) Amount {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{}
	}
	return Amount{decimal.NewFromFloat(f)}
}

// ParseAmount parses a decimal string such as "1200.50".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Amount{d}, nil
}

// Float64 returns the nearest float64, which is what the layout works with.
func (a Amount) Float64() float64 {
	return a.Decimal.InexactFloat64()
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		a.Decimal = decimal.Zero
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(trimmed); err != nil {
		return fmt.Errorf("invalid amount %s: %w", trimmed, err)
	}
	a.Decimal = d
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (a Amount) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: a.Decimal.String()}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Amount) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a scalar", n.Line)
	}
	if n.Tag == "!!null" || n.Value == "" {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid amount %q: %w", n.Line, n.Value, err)
	}
	a.Decimal = d
	return nil
}
