// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatFigure renders a computed figure with two decimals and its unit,
// matching the precision the report surface has always shown.
// e.g. 1234.5 kWh -> "1,234.50 kWh"
func FormatFigure(value float64, unit string) string {
	s := FormatFixed(value)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// FormatFixed renders a float with two decimals and thousands separators.
func FormatFixed(value float64) string {
	neg := value < 0
	if neg {
		value = -value
	}
	s := strconv.FormatFloat(value, 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	out := FormatNumberString(s[:dot]) + s[dot:]
	if neg {
		return "-" + out
	}
	return out
}

// FormatNumber adds comma separators to an integer.
// e.g. 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return FormatNumberString(strconv.FormatInt(n, 10))
}

// FormatNumberString comma-separates a plain digit string.
func FormatNumberString(s string) string {
	if len(s) <= 3 {
		return s
	}
	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatCompact formats a magnitude with human-readable suffixes for chart
// axis labels. e.g. 1234 -> "1.2K", 1234567 -> "1.2M"
func FormatCompact(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", v/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	case abs >= 10 || abs == 0:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

// FormatPercent formats a 0-1 ratio as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}
