package report

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{19800, "$19,800"},
		{22277.099337748346, "$22,277"},
		{-2477.0993377483464, "-$2,477"},
		{0, "$0"},
		{0.5, "$1"},
		{-0.4, "$0"},
		{1234567.89, "$1,234,568"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.in), "Currency(%v)", tt.in)
	}
}

func TestCents(t *testing.T) {
	assert.Equal(t, "$1.26", Cents(1.2591942604856512))
	assert.Equal(t, "$1,234.50", Cents(1234.5))
	assert.Equal(t, "-$3.24", Cents(-3.2409))
	assert.Equal(t, "$0.17", Cents(0.17))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "3,600", Count(3600))
	assert.Equal(t, "120", Count(120))
}

func TestPercentAndMonths(t *testing.T) {
	assert.Equal(t, "-12.5%", Percent(-12.51060271590074))
	assert.Equal(t, "19.2%", Percent(19.19191919191919))
	assert.Equal(t, "32.3 months", Months(32.29583843525591))
}

func TestSplitMonths(t *testing.T) {
	tests := []struct {
		in            float64
		years, months int
	}{
		{13.705003250610288, 1, 1},
		{24, 2, 0},
		{11.99, 0, 11},
		{0.4, 0, 0},
	}
	for _, tt := range tests {
		y, m := SplitMonths(tt.in)
		assert.Equal(t, tt.years, y, "years of %v", tt.in)
		assert.Equal(t, tt.months, m, "months of %v", tt.in)
	}
}

func TestPaybackDate(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got := PaybackDate(start, 13.705003250610288)

	assert.Equal(t, time.Date(2027, 2, 16, 0, 0, 0, 0, time.UTC), got.Truncate(24*time.Hour))
	assert.Equal(t, start, PaybackDate(start, 0))
}

func TestPaybackDate_LongPeriod(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got := PaybackDate(start, 4006.9)

	assert.True(t, got.After(start))
	assert.Equal(t, time.Date(2355, 2, 13, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, start.AddDate(0, 0, 999*30), PaybackDate(start, MaxPaybackMonths))
}

func TestCurrency_NonFinite(t *testing.T) {
	assert.Equal(t, "n/a", Currency(math.Inf(1)))
	assert.Equal(t, "n/a", Currency(math.Inf(-1)))
	assert.Equal(t, "n/a", Cents(math.NaN()))
}
