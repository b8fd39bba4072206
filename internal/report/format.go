package report

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

const (
	// daysPerPaybackMonth approximates a month when projecting a payback date.
	daysPerPaybackMonth = 30

	// MaxPaybackMonths is the longest payback the report states as a figure.
	MaxPaybackMonths = 999
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Currency formats v as whole dollars with digit grouping, e.g. -$2,477.
// Non-finite values render as "n/a".
func Currency(v float64) string {
	if !finite(v) {
		return "n/a"
	}
	d := decimal.NewFromFloat(v).Round(0)
	if d.IsNegative() {
		return "-$" + printer.Sprintf("%d", d.Neg().IntPart())
	}
	return "$" + printer.Sprintf("%d", d.IntPart())
}

// Cents formats v as dollars and cents, e.g. $1,234.50.
func Cents(v float64) string {
	if !finite(v) {
		return "n/a"
	}
	d := decimal.NewFromFloat(v).Round(2)
	if d.IsNegative() {
		return "-$" + printer.Sprintf("%.2f", d.Neg().InexactFloat64())
	}
	return "$" + printer.Sprintf("%.2f", d.InexactFloat64())
}

// Count formats an integer with digit grouping.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func Months(v float64) string {
	return fmt.Sprintf("%.1f months", v)
}

// SplitMonths decomposes a continuous month count into whole years and the
// whole months left over.
func SplitMonths(m float64) (years, months int) {
	return int(math.Floor(m / 12)), int(math.Floor(math.Mod(m, 12)))
}

// PaybackDate estimates the calendar date a payback period ends, counting
// 30 days per month from start.
func PaybackDate(start time.Time, months float64) time.Time {
	return start.AddDate(0, 0, int(math.Round(months*daysPerPaybackMonth)))
}
