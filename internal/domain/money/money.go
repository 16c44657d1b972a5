// Package money parses locale-ambiguous currency values.
//
// Upstream rows carry amounts as pt-BR strings ("1.234,56"), en-US strings
// ("1,234.56" or "918.85"), or plain JSON numbers. Parse disambiguates the
// separators and never fails: anything unparseable is worth 0, which the
// aggregation layer treats as a non-positive amount and excludes.
package money

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	allowedChars   = regexp.MustCompile(`[^\d.,-]`)
	dotAsThousands = regexp.MustCompile(`\.\d{3}$`)
)

// Parse converts a raw amount into a float64. Numbers pass through as-is;
// strings are cleaned and disambiguated; everything else yields 0.
func Parse(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		return parseString(n)
	default:
		return 0
	}
}

func parseString(raw string) float64 {
	if strings.TrimSpace(raw) == "" {
		return 0
	}

	cleaned := allowedChars.ReplaceAllString(raw, "")

	hasDot := strings.Contains(cleaned, ".")
	hasComma := strings.Contains(cleaned, ",")

	switch {
	case hasDot && hasComma:
		// "1.234,56": dots are thousands separators, the comma is decimal.
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = replaceLastComma(cleaned)
	case hasDot && dotAsThousands.MatchString(cleaned):
		// "1.000": a dot followed by exactly three trailing digits is a
		// thousands separator, not a decimal point.
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	case hasComma:
		// "1000,50": comma is the decimal separator. With several commas
		// ("1,234,56") all but the last are thousands separators.
		cleaned = replaceLastComma(cleaned)
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}

func replaceLastComma(s string) string {
	i := strings.LastIndex(s, ",")
	if i < 0 {
		return s
	}
	head := strings.ReplaceAll(s[:i], ",", "")
	return head + "." + s[i+1:]
}
