package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	errs "github.com/crownplay/casino-engine/internal/domain/error"
)

func TestFormatAmount(t *testing.T) {
	testCases := []struct {
		value    int64
		expected string
	}{
		{0, "0"},
		{1, "1"},
		{999, "999"},
		{1000, "1.00K"},
		{1500, "1.50K"},
		{999_999, "1000.00K"},
		{1_000_000, "1.00M"},
		{2_300_000, "2.30M"},
		{10_000_000, "10.00M"},
		{1_000_000_000, "1.00B"},
		{45_600_000_000, "45.60B"},
		{1_000_000_000_000, "1.00T"},
		{100_000_000_000_000, "100.00T"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatAmount(tc.value))
		})
	}
}

func TestParseAmount(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected int64
		}{
			{"0", 0},
			{"1", 1},
			{"999", 999},
			{"1K", 1000},
			{"1.5K", 1500},
			{"1.50K", 1500},
			{"2.30M", 2_300_000},
			{"1m", 1_000_000},
			{"1B", 1_000_000_000},
			{"0.5T", 500_000_000_000},
			{"  10K  ", 10_000},
			{"1.2345K", 1234},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				value, err := ParseAmount(tc.input)
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, value)
			})
		}
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		testCases := []struct {
			input       string
			description string
		}{
			{"", "Empty string"},
			{"   ", "Whitespace only"},
			{"-1K", "Negative amount"},
			{"abc", "Non-numeric"},
			{"1X", "Unknown suffix"},
			{"1KK", "Double suffix"},
			{"K", "Suffix only"},
			{"1,000", "Comma separator"},
			{"NaN", "Not a number"},
			{"Inf", "Infinity"},
			{"99999999999T", "Overflows int64"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := ParseAmount(tc.input)
				assert.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidFormat)
			})
		}
	})
}

// Formatting then parsing must land within the two-decimal rounding of the
// suffix scale, and exactly for sub-thousand values.
func TestAmountRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		value := rapid.Int64Range(0, 1_000_000_000_000_000).Draw(t, "value")

		parsed, err := ParseAmount(FormatAmount(value))
		if err != nil {
			t.Fatalf("round trip of %d failed to parse: %v", value, err)
		}

		if value < 1000 {
			if parsed != value {
				t.Fatalf("sub-thousand value %d round-tripped to %d", value, parsed)
			}
			return
		}

		diff := parsed - value
		if diff < 0 {
			diff = -diff
		}
		// Two decimal places leave at most half a percent of drift
		if diff > value/100 {
			t.Fatalf("value %d round-tripped to %d, drift %d", value, parsed, diff)
		}
	})
}
