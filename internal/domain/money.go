package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Money holds an amount in minor units (cents), so 20.00 is stored as 2000.
// Prices never carry more than two fractional digits.
type Money int64

// ParseMoney converts a decimal string such as "20.00" into Money.
func ParseMoney(value string) (Money, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty amount")
	}

	whole, frac, found := strings.Cut(value, ".")
	if found && len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two fractional digits", value)
	}
	for _, r := range frac {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid amount %q", value)
		}
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", value)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", value)
	}
	if strings.HasPrefix(whole, "-") {
		return Money(units*100 - cents), nil
	}
	return Money(units*100 + cents), nil
}

// String renders the amount with exactly two fractional digits.
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Negative reports whether the amount is below zero.
func (m Money) Negative() bool {
	return m < 0
}
