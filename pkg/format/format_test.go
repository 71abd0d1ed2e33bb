package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		expected string
	}{
		{
			name:     "thousands are grouped with dots",
			amount:   decimal.NewFromInt(250000),
			expected: "250.000 €",
		},
		{
			name:     "fractions are rounded away",
			amount:   decimal.RequireFromString("9743.6"),
			expected: "9.744 €",
		},
		{
			name:     "small amounts",
			amount:   decimal.NewFromInt(12),
			expected: "12 €",
		},
		{
			name:     "millions",
			amount:   decimal.NewFromInt(1234567),
			expected: "1.234.567 €",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Currency(tt.amount))
		})
	}
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "196.000", German().Number(decimal.NewFromInt(196000)))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "3,5 %", Percent(decimal.RequireFromString("0.035"), 1))
	assert.Equal(t, "2 %", Percent(decimal.RequireFromString("0.02"), 0))
}

func TestCalendarYear(t *testing.T) {
	assert.Equal(t, 2036, CalendarYear(2026, 10))
}
