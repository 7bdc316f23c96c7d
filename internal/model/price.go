package model

import (
	"errors"
	"fmt"
	"strings"
)

// Price is a monetary amount in integer cents.
// It marshals to a plain JSON number with two decimal places (e.g. 99.99)
// and parses decimal strings without going through float64.
type Price int64

// Price parsing errors.
var (
	ErrPriceNotNumeric = errors.New("price is not a number")
	ErrPriceTooPrecise = errors.New("price has more than two decimal places")
	ErrPriceOutOfRange = errors.New("price is out of range")
)

const maxPriceCents = 1<<62 - 1

// ParsePrice parses a decimal string such as "99.99" into cents.
// At most two fractional digits are accepted; precision is never lost.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrPriceNotNumeric
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
		fracPart = s[i+1:]
	}

	if intPart == "" && fracPart == "" {
		return 0, ErrPriceNotNumeric
	}
	if len(fracPart) > 2 {
		return 0, ErrPriceTooPrecise
	}

	var cents int64
	for _, c := range intPart {
		if c < '0' || c > '9' {
			return 0, ErrPriceNotNumeric
		}
		if cents > maxPriceCents/10 {
			return 0, ErrPriceOutOfRange
		}
		cents = cents*10 + int64(c-'0')
	}

	// Pad the fraction to exactly two digits: "5" -> 50 cents.
	frac := int64(0)
	for i := 0; i < 2; i++ {
		frac *= 10
		if i < len(fracPart) {
			c := fracPart[i]
			if c < '0' || c > '9' {
				return 0, ErrPriceNotNumeric
			}
			frac += int64(c - '0')
		}
	}

	if cents > (maxPriceCents-frac)/100 {
		return 0, ErrPriceOutOfRange
	}
	cents = cents*100 + frac

	if negative {
		cents = -cents
	}
	return Price(cents), nil
}

// Cents returns the amount in integer cents.
func (p Price) Cents() int64 {
	return int64(p)
}

// String formats the price with exactly two decimal places.
func (p Price) String() string {
	cents := int64(p)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// MarshalJSON encodes the price as a bare JSON number with two decimals.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON decodes a JSON number (or numeric string) into cents.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return nil
	}
	parsed, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
