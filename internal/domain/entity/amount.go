package entity

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	errs "github.com/crownplay/casino-engine/internal/domain/error"
)

// Suffix multipliers for abbreviated credit amounts
const (
	thousand = 1_000
	million  = 1_000_000
	billion  = 1_000_000_000
	trillion = 1_000_000_000_000
)

// FormatAmount renders a credit amount with a K/M/B/T suffix and two decimal
// places. Values below 1000 are rendered as plain integers.
// Examples: 0 -> "0", 1500 -> "1.50K", 2300000 -> "2.30M"
func FormatAmount(value int64) string {
	switch {
	case value >= trillion:
		return fmt.Sprintf("%.2fT", float64(value)/trillion)
	case value >= billion:
		return fmt.Sprintf("%.2fB", float64(value)/billion)
	case value >= million:
		return fmt.Sprintf("%.2fM", float64(value)/million)
	case value >= thousand:
		return fmt.Sprintf("%.2fK", float64(value)/thousand)
	}
	return strconv.FormatInt(value, 10)
}

// ParseAmount converts a user-entered amount with an optional K/M/B/T suffix
// into whole credits. The input is trimmed and uppercased; anything that is
// not a plain number followed by at most one suffix letter is rejected with
// ErrInvalidFormat. Parsing fails closed: garbage never silently becomes zero.
func ParseAmount(input string) (int64, error) {
	text := strings.ToUpper(strings.TrimSpace(input))
	if text == "" {
		return 0, errs.NewInvalidFormatError(input)
	}

	factor := int64(1)
	switch text[len(text)-1] {
	case 'K':
		factor = thousand
		text = text[:len(text)-1]
	case 'M':
		factor = million
		text = text[:len(text)-1]
	case 'B':
		factor = billion
		text = text[:len(text)-1]
	case 'T':
		factor = trillion
		text = text[:len(text)-1]
	}

	number, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, errs.NewInvalidFormatError(input)
	}
	if number < 0 {
		return 0, errs.NewInvalidFormatError(input)
	}

	value := number * float64(factor)
	if value > math.MaxInt64 {
		return 0, errs.NewInvalidFormatError(input)
	}
	return int64(math.Round(value)), nil
}
