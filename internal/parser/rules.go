package parser

import (
	"regexp"
	"strings"
)

// rawFields collects the pre-normalization field values extracted from
// one wallet block.
type rawFields struct {
	typ     string
	amount  string
	details string
	txnID   string
	utr     string
	account string
}

// fieldRule inspects one unconsumed line (and optionally the line after
// it) and reports how many lines it consumed: 0 for no match, 1 or 2
// otherwise. Rules are tried in a fixed priority order and each fires
// at most once per block.
type fieldRule interface {
	name() string
	match(line, next string, f *rawFields) int
}

// walletRules is the ordered rule chain applied to each wallet block.
var walletRules = []fieldRule{
	typeAmountRule{},
	splitTypeAmountRule{},
	detailsRule{},
	labelRule{label: "transaction ID", pattern: txnIDLabelPattern, set: func(f *rawFields, v string) { f.txnID = v }},
	labelRule{label: "UTR", pattern: utrLabelPattern, set: func(f *rawFields, v string) { f.utr = v }},
	labelRule{label: "account", pattern: accountLabelPattern, set: func(f *rawFields, v string) { f.account = v }},
}

var (
	// Combined type+amount line, e.g. "DEBIT₹202Mobile recharge" or
	// "Credit Rs. 500.00 Refund"
	typeAmountPattern = regexp.MustCompile(`(?i)^(debit|credit)\s*(?:₹|inr|rs\.?)?\s*([0-9][\d,]*(?:\.\d+)?)(.*)$`)
	// Split type line with the amount missing, e.g. "Debit INR" / "CreditINR"
	splitTypePattern = regexp.MustCompile(`(?i)^(debit|credit)\s*inr$`)
	// Bare numeric value line, e.g. "500" or "1,250.75"
	numericLinePattern = regexp.MustCompile(`^[\d,]+(?:\.\d+)?$`)

	txnIDLabelPattern   = regexp.MustCompile(`(?i)^transaction id\s*:?\s*(.*)$`)
	utrLabelPattern     = regexp.MustCompile(`(?i)^utr(?:\s*no\.?)?\s*:?\s*(.*)$`)
	accountLabelPattern = regexp.MustCompile(`(?i)^(?:debited from|credited to|paid by)\s*:?\s*(.*)$`)
)

// Lead-in prefixes that mark a counterparty/description line. The
// prefix is kept in the captured details; stripping it is presentation
// work, not the engine's.
var detailsPrefixes = []string{
	"paid to", "payment to", "paid",
	"received from", "payment received", "received",
	"refund from", "refund received",
}

// isFieldBoundary reports whether a line is itself a label, time or
// date line and therefore must never be consumed as another label's
// value. Shared by all two-line-lookahead rules.
func isFieldBoundary(line string) bool {
	return txnIDLabelPattern.MatchString(line) ||
		utrLabelPattern.MatchString(line) ||
		accountLabelPattern.MatchString(line) ||
		walletTimePattern.MatchString(line) ||
		walletDatePattern.MatchString(line)
}

type typeAmountRule struct{}

func (typeAmountRule) name() string { return "type-amount" }

func (typeAmountRule) match(line, _ string, f *rawFields) int {
	m := typeAmountPattern.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	f.typ = m[1]
	f.amount = m[2]
	if trailing := strings.TrimSpace(m[3]); trailing != "" && f.details == "" {
		f.details = trailing
	}
	return 1
}

type splitTypeAmountRule struct{}

func (splitTypeAmountRule) name() string { return "split-type-amount" }

func (splitTypeAmountRule) match(line, next string, f *rawFields) int {
	if f.typ != "" || !splitTypePattern.MatchString(line) {
		return 0
	}
	f.typ = splitTypePattern.FindStringSubmatch(line)[1]
	if numericLinePattern.MatchString(next) {
		f.amount = next
		return 2
	}
	return 1
}

type detailsRule struct{}

func (detailsRule) name() string { return "details-lead" }

func (detailsRule) match(line, _ string, f *rawFields) int {
	if f.details != "" {
		return 0
	}
	// "Paid by" is an account label, not a description lead-in, even
	// though it shares the "paid" prefix.
	if accountLabelPattern.MatchString(line) {
		return 0
	}
	if !hasAnyFoldPrefix(line, detailsPrefixes...) {
		return 0
	}
	f.details = line
	return 1
}

// labelRule handles "label: value" lines where the value is either
// inline after the label or on the immediately following line.
type labelRule struct {
	label   string
	pattern *regexp.Regexp
	set     func(f *rawFields, v string)
}

func (r labelRule) name() string { return r.label }

func (r labelRule) match(line, next string, f *rawFields) int {
	m := r.pattern.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	if v := strings.TrimSpace(m[1]); v != "" {
		r.set(f, v)
		return 1
	}
	if next != "" && !isFieldBoundary(next) {
		r.set(f, next)
		return 2
	}
	// Label with no locatable value: leave the field empty.
	return 1
}

// extractWalletFields runs the rule chain over one block's body lines,
// marking consumed lines so later rules skip them. Lines matching no
// rule are ignored. After the pass, a missing type is inferred from the
// details lead-in when possible.
func extractWalletFields(lines []string) rawFields {
	var f rawFields
	consumed := make([]bool, len(lines))

	for _, rule := range walletRules {
		for i := 0; i < len(lines); i++ {
			if consumed[i] {
				continue
			}
			next := ""
			if i+1 < len(lines) && !consumed[i+1] {
				next = lines[i+1]
			}
			n := rule.match(lines[i], next, &f)
			if n == 0 {
				continue
			}
			consumed[i] = true
			if n == 2 {
				consumed[i+1] = true
			}
			break
		}
	}

	if f.typ == "" && f.details != "" {
		d := strings.ToLower(f.details)
		switch {
		case hasAnyFoldPrefix(d, "payment received", "received", "credited"):
			f.typ = "CREDIT"
		case hasAnyFoldPrefix(d, "payment to", "paid to", "paid", "debited"):
			f.typ = "DEBIT"
		}
	}

	return f
}
