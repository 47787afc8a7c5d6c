package physics

import (
	"math"
	"strconv"
	"strings"
)

// FormatNum renders a number for display: at most five significant digits,
// thousands separators, unit appended. NaN renders as the empty string (the
// GUI passes NaN for "no reading"). The result is at most ten characters
// for the value part.
func FormatNum(num float64, unit string) string {
	if math.IsNaN(num) {
		return ""
	}
	s := strconv.FormatFloat(num, 'g', 5, 64)
	return groupThousands(s) + unit
}

// FormatNumRounded is FormatNum with the value rounded to the given number
// of decimal places first.
func FormatNumRounded(num float64, unit string, decimals int) string {
	if math.IsNaN(num) {
		return ""
	}
	shift := math.Pow(10, float64(decimals))
	return FormatNum(math.Round(num*shift)/shift, unit)
}

// groupThousands inserts commas into the integer part of a plain decimal
// string. Exponent-form strings pass through untouched.
func groupThousands(s string) string {
	if strings.ContainsAny(s, "eE") {
		return s
	}
	intPart := s
	rest := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, rest = s[:i], s[i:]
	}
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}
	if len(intPart) <= 3 {
		return sign + intPart + rest
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return sign + b.String() + rest
}
