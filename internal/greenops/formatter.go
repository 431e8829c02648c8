package greenops

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups thousands the English way ("1,234,567").
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Duration labels for FormatYears.
const (
	YearsNever     = "never"
	YearsImmediate = "immediate"
)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat rounds f half away from zero to precision decimal places and
// groups the integer part. Example: FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Sprintf("%v", f)
	}

	d := decimal.NewFromFloat(f).Round(int32(precision)) //nolint:gosec // precision is small
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(int32(precision)) //nolint:gosec // precision is small
	intPart, fracPart, hasFrac := strings.Cut(fixed, ".")

	grouped := groupDigits(intPart)
	if !hasFrac {
		return sign + grouped
	}
	return sign + grouped + "." + fracPart
}

// groupDigits inserts thousands separators into a string of decimal digits.
// It works on the digits directly, so magnitudes beyond int64 stay exact.
func groupDigits(digits string) string {
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	var b strings.Builder
	b.WriteString(digits[:min(lead, len(digits))])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatLarge abbreviates values of a million or more ("~1.5 million",
// "~2.3 billion"); smaller values are rounded and grouped.
func FormatLarge(n float64) string {
	switch {
	case n >= BillionThreshold:
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	case n >= LargeNumberThreshold:
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	default:
		return FormatNumber(int64(math.Round(n)))
	}
}

// FormatMoney formats amount with a currency symbol and two decimals.
// Example: FormatMoney(1234.5, "₹") returns "₹1,234.50".
func FormatMoney(amount float64, symbol string) string {
	return withSymbol(FormatFloat(amount, 2), symbol)
}

// FormatAmount formats a rupee amount either in crores ("₹18.71 Cr") or in
// full ("₹187,121,812.50").
func FormatAmount(amount float64, symbol string, crores bool) string {
	if crores {
		return withSymbol(FormatRupeesAsCrores(amount), symbol)
	}
	return FormatMoney(amount, symbol)
}

// FormatCroreAmount formats a value already in crores with a symbol.
func FormatCroreAmount(crores float64, symbol string) string {
	return withSymbol(FormatCrores(crores), symbol)
}

// withSymbol places symbol after any leading minus sign.
func withSymbol(s, symbol string) string {
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		return "-" + symbol + rest
	}
	return symbol + s
}

// ToCrores converts a rupee amount to crores, rounded to two decimals.
func ToCrores(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Div(decimal.NewFromFloat(Crore)).Round(2)
}

// FormatCrores formats a value that is already expressed in crores.
// Example: FormatCrores(12.3456) returns "12.35 Cr".
func FormatCrores(crores float64) string {
	return FormatFloat(crores, 2) + " Cr"
}

// FormatRupeesAsCrores converts a rupee amount to crores and formats it.
// Example: FormatRupeesAsCrores(187_121_812.5) returns "18.71 Cr".
func FormatRupeesAsCrores(amount float64) string {
	return FormatFloat(ToCrores(amount).InexactFloat64(), 2) + " Cr"
}

// FormatPercent formats a percentage value with two decimals ("27.31%").
func FormatPercent(v float64) string {
	return FormatFloat(v, 2) + "%"
}

// FormatYears formats a payback period. +Inf reads "never" and zero reads
// "immediate".
func FormatYears(years float64) string {
	switch {
	case math.IsInf(years, 1):
		return YearsNever
	case years == 0:
		return YearsImmediate
	default:
		return FormatFloat(years, 2) + " years"
	}
}
