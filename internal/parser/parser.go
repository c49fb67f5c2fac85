package parser

import (
	"fmt"
	"strings"

	"github.com/finwise/statement-parser/internal/models"
)

// Parser defines the interface for statement dialect parsers.
type Parser interface {
	// Parse takes the extracted text of one statement document and
	// returns structured transaction data. Unparseable content yields
	// an empty transaction list, never an error.
	Parse(text string) (*models.StatementInfo, error)
	// DialectName returns the human-readable dialect name.
	DialectName() string
}

// New returns the parser for the given dialect.
func New(dialect models.Dialect) (Parser, error) {
	switch dialect {
	case models.DialectWallet:
		return &WalletParser{}, nil
	case models.DialectLedger:
		return &LedgerParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported dialect: %q", dialect)
	}
}

// Markers that only appear in wallet-style statements.
var walletMarkers = []string{
	"transaction id",
	"paid to",
	"received from",
	"payment to",
}

// DetectDialect selects a dialect from the statement text.
//
// There is no content test for the ledger dialect: ledger statements
// must be selected explicitly by the caller. When none of the wallet
// markers are present the detector still returns wallet — absence of
// evidence is a bias toward the more common dialect, not an error.
func DetectDialect(text string) models.Dialect {
	lower := strings.ToLower(text)
	for _, m := range walletMarkers {
		if strings.Contains(lower, m) {
			return models.DialectWallet
		}
	}
	return models.DialectWallet
}
