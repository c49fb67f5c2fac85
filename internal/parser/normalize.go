package parser

import (
	"strings"
	"time"
)

// Calendar layouts the two dialects use. Wallet exports spell months in
// full or abbreviated form depending on the app version.
var (
	walletDateLayouts = []string{"January 2, 2006", "Jan 2, 2006"}
	walletTimeLayouts = []string{"3:04 pm", "15:04"}
	ledgerDateLayouts = []string{"2 Jan 2006", "2 January 2006"}
)

// normalizeWalletDate converts a wallet date header and optional time
// anchor into an ISO-8601 string. A combined date+time is produced when
// both parse; an unparseable time demotes the result to date-only; an
// unparseable date yields "" and the record is kept.
func normalizeWalletDate(dateLine, timeLine string) string {
	d, ok := parseFirst(dateLine, walletDateLayouts)
	if !ok {
		return ""
	}
	if timeLine != "" {
		if t, ok := parseFirst(strings.ToLower(timeLine), walletTimeLayouts); ok {
			combined := time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
			return combined.Format("2006-01-02T15:04:05")
		}
	}
	return d.Format("2006-01-02")
}

// normalizeLedgerDate converts a "2 Jan 2006" style date to date-only
// ISO-8601, or "" when it cannot be read.
func normalizeLedgerDate(dateStr string) string {
	d, ok := parseFirst(dateStr, ledgerDateLayouts)
	if !ok {
		return ""
	}
	return d.Format("2006-01-02")
}

// normalizeType upper-cases a raw type token, mapping unset to UNKNOWN.
func normalizeType(raw string) string {
	t := strings.ToUpper(strings.TrimSpace(raw))
	if t == "" {
		return "UNKNOWN"
	}
	return t
}

func parseFirst(value string, layouts []string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
