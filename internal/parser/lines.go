package parser

import (
	"regexp"
	"strings"
)

// Noise lines that appear in statement exports but carry no transaction
// data: report titles, period banners, column headers, pagination and
// boilerplate disclaimers.
var noisePatterns = []*regexp.Regexp{
	// Statement title, e.g. "Transaction Statement" or "Transaction Statement for 98XXXXXX21"
	regexp.MustCompile(`(?i)^transaction statement`),
	// Period banner, e.g. "May 01, 2025 - May 31, 2025"
	regexp.MustCompile(`(?i)^[a-z]{3,9} \d{1,2}, \d{4}\s*-\s*[a-z]{3,9} \d{1,2}, \d{4}$`),
	// Wallet column header row
	regexp.MustCompile(`(?i)^date\s+transaction details\s+type\s+amount$`),
	// Ledger column header row (PDF extraction fuses the column names)
	regexp.MustCompile(`(?i)ref no\./cheque`),
	// Pagination, e.g. "Page 1 of 4"
	regexp.MustCompile(`(?i)^page \d+ of \d+$`),
	// Disclaimers
	regexp.MustCompile(`(?i)system[- ]generated statement`),
	regexp.MustCompile(`(?i)^this is a computer generated`),
}

// normalizeLine collapses exotic whitespace that PDF extraction leaves
// behind into plain spaces and trims the result.
func normalizeLine(line string) string {
	line = strings.ReplaceAll(line, " ", " ") // non-breaking space
	line = strings.ReplaceAll(line, " ", " ") // figure space
	line = strings.ReplaceAll(line, " ", " ") // narrow no-break space
	line = strings.ReplaceAll(line, "​", "")  // zero-width space
	line = strings.ReplaceAll(line, "\t", " ")
	return strings.TrimSpace(line)
}

func isNoiseLine(line string) bool {
	for _, p := range noisePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// splitLines turns a raw text blob into an ordered sequence of cleaned,
// non-empty lines with noise lines removed. Order is preserved and no
// line is split or merged. An empty blob yields an empty sequence.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = normalizeLine(strings.TrimSuffix(l, "\r"))
		if l == "" || isNoiseLine(l) {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
