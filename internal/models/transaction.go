package models

// Transaction represents a single statement transaction.
//
// Amount is always a non-negative magnitude; direction is carried by
// Type. Raw holds the original line span the record was derived from
// and is kept for auditing — it is never re-parsed.
type Transaction struct {
	Date          string  `json:"date,omitempty"` // ISO-8601, empty when unparseable
	Type          string  `json:"type"`           // DEBIT, CREDIT or UNKNOWN
	Amount        float64 `json:"amount"`
	Details       string  `json:"details,omitempty"`
	TransactionID string  `json:"transactionId,omitempty"`
	UTR           string  `json:"utr,omitempty"`
	Account       string  `json:"account,omitempty"`
	Balance       float64 `json:"balance,omitempty"` // ledger dialect only
	Raw           string  `json:"raw,omitempty"`
}

// Transaction type values.
const (
	TypeDebit   = "DEBIT"
	TypeCredit  = "CREDIT"
	TypeUnknown = "UNKNOWN"
)

// Dialect identifies a supported statement layout.
type Dialect string

const (
	// DialectWallet covers multi-line wallet app statements: one date
	// header governing several time-anchored blocks with labelled
	// reference fields (transaction ID, UTR, account).
	DialectWallet Dialect = "wallet"
	// DialectLedger covers single-row-per-transaction bank statements
	// with a signed amount, inline date and a running balance column.
	DialectLedger Dialect = "ledger"
)

// StatementInfo holds everything extracted from one statement document.
type StatementInfo struct {
	Dialect      Dialect       `json:"dialect"`
	Transactions []Transaction `json:"transactions"`
}
