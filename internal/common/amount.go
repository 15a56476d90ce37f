package common

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxAmountMinor caps a single payment at one million dollars.
const MaxAmountMinor int64 = 1_000_000 * 100

// ParseMinorUnits reads a decimal major-unit string such as "10.5" into
// minor units. Only digits and one optional point with at most two decimals
// are accepted, and the result may not exceed MaxAmountMinor.
func ParseMinorUnits(value string) (int64, error) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(value), ".")
	if whole == "" || !allDigits(whole) || !allDigits(frac) {
		return 0, fmt.Errorf("%w: invalid amount %q", ErrorValidation, value)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: amount %q has more than two decimals", ErrorValidation, value)
	}
	frac += strings.Repeat("0", 2-len(frac))

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w > MaxAmountMinor/100 {
		return 0, fmt.Errorf("%w: amount %q is too large", ErrorValidation, value)
	}
	f, _ := strconv.ParseInt(frac, 10, 64)

	amount := w*100 + f
	if amount > MaxAmountMinor {
		return 0, fmt.Errorf("%w: amount %q is too large", ErrorValidation, value)
	}
	return amount, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
