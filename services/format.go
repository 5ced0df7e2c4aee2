package services

import (
	"fmt"
	"math"
	"strings"
)

// UnitOptions is the open set of unit labels offered to callers. Any
// non-empty label passes validation; this list only feeds UIs and the
// import template.
var UnitOptions = []string{
	"kg", "gram", "liter", "ml", "meter", "cm", "piece", "pcs", "pack",
	"box", "lusin", "unit", "porsi", "buah", "lembar", "botol", "kaleng",
	"sachet", "bungkus",
}

// FormatRupiah formats an amount in Indonesian currency notation with dot
// thousand separators and no decimals, e.g. "Rp 1.234.567".
func FormatRupiah(amount float64) string {
	return FormatRupiahDecimals(amount, 0)
}

// FormatRupiahDecimals is FormatRupiah with a fixed number of decimal
// places, using the Indonesian comma decimal separator:
// FormatRupiahDecimals(1234.5, 2) = "Rp 1.234,50".
func FormatRupiahDecimals(amount float64, decimalPlaces int) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	raw := fmt.Sprintf("%.*f", decimalPlaces, amount)

	intPart := raw
	decPart := ""
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		intPart = raw[:i]
		decPart = raw[i+1:]
	}

	formatted := groupThousands(intPart)
	if decPart != "" {
		formatted += "," + decPart
	}

	result := "Rp " + formatted
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts dots into an integer string every three digits
// from the right, Indonesian style.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "." + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "." + result
}

// FormatPercent renders a percentage value such as "40.0%". With
// includeSign set, positive values get a leading plus.
func FormatPercent(value float64, decimalPlaces int, includeSign bool) string {
	if includeSign && value > 0 {
		return fmt.Sprintf("+%.*f%%", decimalPlaces, value)
	}
	return fmt.Sprintf("%.*f%%", decimalPlaces, value)
}

// FormatGap renders a margin gap in percentage points: "+2.5 pp",
// "-3.0 pp", or "0 pp" for exactly zero.
func FormatGap(value float64) string {
	switch {
	case value > 0:
		return fmt.Sprintf("+%.1f pp", value)
	case value < 0:
		return fmt.Sprintf("%.1f pp", value)
	default:
		return "0 pp"
	}
}

// ParseRupiah parses a currency string back into a number. It accepts the
// formats users actually type: "Rp 1.234.567", "1.234.567", "1.234,56",
// and plain "1234567". Unparseable input yields 0.
func ParseRupiah(value string) float64 {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.NewReplacer("Rp", "", "rp", "", "RP", "", " ", "").Replace(cleaned)
	if cleaned == "" {
		return 0
	}

	negative := strings.HasPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "-")

	switch {
	case strings.Contains(cleaned, ","):
		// Comma is the Indonesian decimal separator; dots are grouping.
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case strings.Count(cleaned, ".") > 1:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	case strings.Contains(cleaned, "."):
		// A single dot followed by exactly three digits is grouping
		// ("1.234"), anything else is a decimal point ("8.5"). A zero or
		// empty integer part can never be grouping ("0.125", ".500").
		parts := strings.SplitN(cleaned, ".", 2)
		if len(parts[1]) == 3 && parts[0] != "" && parts[0] != "0" {
			cleaned = parts[0] + parts[1]
		}
	}

	var v float64
	if _, err := fmt.Sscanf(cleaned, "%f", &v); err != nil {
		return 0
	}
	if negative {
		v = -v
	}
	return v
}

// formatQty renders a quantity without decimals when it is a whole number,
// with two decimals otherwise.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
