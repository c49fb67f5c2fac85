package parser

import (
	"math"
	"regexp"
	"strings"

	"github.com/finwise/statement-parser/internal/models"
)

// LedgerParser handles bank ledger statement exports (SBI-style).
//
// Each transaction occupies one logical row that PDF extraction may
// wrap across several physical lines. The row starts with a signed
// amount immediately followed by the date, and ends with the running
// balance:
//
//	1,200.50 12 Jun 2024 TRANSFER TO 1234567890 - UPI/DR/... 4,300.00
//
// A negative amount records a credit; the sign is the sole carrier of
// direction and is never reflected in the output amount.
type LedgerParser struct{}

func (p *LedgerParser) DialectName() string {
	return "ledger"
}

var (
	// Block anchor: signed amount, optional separator, then "D Mon YYYY".
	ledgerAnchorPattern = regexp.MustCompile(`(-?\d{1,3}(?:,\d{3})*(?:\.\d+)?)(?:-|\s)*(\d{1,2} [A-Za-z]{3,9} \d{4})`)
	// Balance candidates: grouped decimals with a fractional part.
	decimalTokenPattern = regexp.MustCompile(`-?\d{1,3}(?:,\d{3})*\.\d+`)
	trailingSepPattern  = regexp.MustCompile(`\s*-\s*$`)
)

func (p *LedgerParser) Parse(text string) (*models.StatementInfo, error) {
	info := &models.StatementInfo{
		Dialect:      models.DialectLedger,
		Transactions: []models.Transaction{},
	}

	lines := splitLines(text)

	// Anchor lines mark block starts; each block runs to the line
	// before the next anchor.
	var starts []int
	for i, line := range lines {
		if ledgerAnchorPattern.MatchString(line) {
			starts = append(starts, i)
		}
	}

	for si, start := range starts {
		end := len(lines)
		if si+1 < len(starts) {
			end = starts[si+1]
		}
		// Field order inside a row is positional, so the block is
		// flattened into one chunk before extraction.
		chunk := strings.Join(lines[start:end], " ")
		info.Transactions = append(info.Transactions, p.parseBlock(chunk))
	}

	return info, nil
}

func (p *LedgerParser) parseBlock(chunk string) models.Transaction {
	m := ledgerAnchorPattern.FindStringSubmatch(chunk)

	signed := amountOrZero(m[1])
	typ := models.TypeDebit
	if signed < 0 {
		typ = models.TypeCredit
	}

	txn := models.Transaction{
		Date:   normalizeLedgerDate(m[2]),
		Type:   typ,
		Amount: math.Abs(signed),
		Raw:    chunk,
	}

	// The running balance sits at the end of the row: take the last
	// decimal token left after the anchor is removed. Trailing numbers
	// in free-text details can misfire here; there is no column
	// position to fall back on in flattened text.
	residual := strings.Replace(chunk, m[0], "", 1)
	if tokens := decimalTokenPattern.FindAllString(residual, -1); len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		txn.Balance = amountOrZero(last)
		if idx := strings.LastIndex(residual, last); idx >= 0 {
			residual = residual[:idx] + residual[idx+len(last):]
		}
	}

	details := strings.Join(strings.Fields(residual), " ")
	details = trailingSepPattern.ReplaceAllString(details, "")
	txn.Details = strings.TrimSpace(details)

	return txn
}
