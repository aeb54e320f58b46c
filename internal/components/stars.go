package components

import (
	"strconv"
	"strings"
)

// FormatStars abbreviates a count for display: 999, 1.2k, 15k, 2.5M.
// Values are truncated, not rounded, so 1999 shows as 1.9k. Negative
// counts display as 0.
func FormatStars(n int) string {
	switch {
	case n < 0:
		return "0"
	case n < 1000:
		return strconv.Itoa(n)
	case n < 1_000_000:
		return abbreviate(n, 1000) + "k"
	default:
		return abbreviate(n, 1_000_000) + "M"
	}
}

func abbreviate(n, unit int) string {
	tenths := n * 10 / unit
	s := strconv.Itoa(tenths/10) + "." + strconv.Itoa(tenths%10)
	return strings.TrimSuffix(s, ".0")
}
