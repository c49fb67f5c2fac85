package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Anchor patterns shared by the segmenters and the field rules.
var (
	// Wallet date header, e.g. "May 19, 2025"
	walletDatePattern = regexp.MustCompile(`^[A-Za-z]{3,9} \d{1,2}, \d{4}$`)
	// Wallet time anchor, e.g. "06:20 pm" (meridiem optional in some exports)
	walletTimePattern = regexp.MustCompile(`(?i)^\d{1,2}:\d{2}\s?(?:am|pm)?$`)
)

// parseAmount converts strings like "1,234.56", "₹202" or "Rs. 750.00"
// to a float64.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ReplaceAll(s, " ", "")
	replacer := strings.NewReplacer("Rs.", "", "Rs", "", "INR", "", "£", "", "$", "", ",", "", " ", "")
	s = replacer.Replace(s)

	if s == "" || s == "-" {
		return 0, nil
	}

	return strconv.ParseFloat(s, 64)
}

// amountOrZero is parseAmount with the engine's lenient default: a value
// that cannot be read is recorded as 0 rather than failing the record.
func amountOrZero(s string) float64 {
	v, err := parseAmount(s)
	if err != nil {
		return 0
	}
	return v
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func hasAnyFoldPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if hasFoldPrefix(s, p) {
			return true
		}
	}
	return false
}
