package enums

import (
	"fmt"
	"strings"
)

// Currency is an ISO 4217 style three-letter code attached to invoices.
// Invoices default to USD; any uppercase three-letter code is accepted.
type Currency string

const CurrencyUSD Currency = "USD"

// String implements fmt.Stringer.
func (c Currency) String() string {
	return string(c)
}

// IsValid reports whether the currency looks like a three-letter code.
func (c Currency) IsValid() bool {
	if len(c) != 3 {
		return false
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// ParseCurrency normalizes and validates a raw currency string. An empty
// value falls back to USD.
func ParseCurrency(value string) (Currency, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return CurrencyUSD, nil
	}
	c := Currency(trimmed)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid currency %q", value)
	}
	return c, nil
}
