package parser

import (
	"strings"
	"testing"

	"github.com/finwise/statement-parser/internal/models"
)

func TestLedgerParser_DebitRow(t *testing.T) {
	p := &LedgerParser{}

	info, err := p.Parse("1,200.50 12 Jun 2024 TRANSFER TO 1234567890 - UPI/DR/REF 4,300.00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(info.Transactions) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(info.Transactions))
	}

	txn := info.Transactions[0]
	if txn.Type != models.TypeDebit {
		t.Errorf("Type: got %q, want DEBIT", txn.Type)
	}
	if txn.Amount != 1200.50 {
		t.Errorf("Amount: got %f, want 1200.50", txn.Amount)
	}
	if txn.Balance != 4300.00 {
		t.Errorf("Balance: got %f, want 4300.00", txn.Balance)
	}
	if txn.Date != "2024-06-12" {
		t.Errorf("Date: got %q, want %q", txn.Date, "2024-06-12")
	}
	if txn.Details != "TRANSFER TO 1234567890 - UPI/DR/REF" {
		t.Errorf("Details: got %q, want %q", txn.Details, "TRANSFER TO 1234567890 - UPI/DR/REF")
	}
}

func TestLedgerParser_CreditRow(t *testing.T) {
	p := &LedgerParser{}

	// Credits are recorded as a negative adjustment in this source
	// format; the sign determines direction and is stripped from the
	// output amount.
	info, err := p.Parse("-750.00 01 Jan 2025 TRANSFER FROM SAVINGS 5,050.00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(info.Transactions) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(info.Transactions))
	}

	txn := info.Transactions[0]
	if txn.Type != models.TypeCredit {
		t.Errorf("Type: got %q, want CREDIT", txn.Type)
	}
	if txn.Amount != 750.00 {
		t.Errorf("Amount: got %f, want 750.00 (sign stripped)", txn.Amount)
	}
	if txn.Date != "2025-01-01" {
		t.Errorf("Date: got %q, want %q", txn.Date, "2025-01-01")
	}
}

func TestLedgerParser_WrappedRows(t *testing.T) {
	p := &LedgerParser{}

	// PDF extraction wraps one logical row across physical lines; the
	// block is flattened before extraction.
	text := strings.Join([]string{
		"500.00 10 Feb 2025 TRANSFER TO",
		"9876543210 - UPI/DR/503212345678/GROCERIES",
		"12,345.67",
		"-2,000.00 11 Feb 2025 SALARY",
		"CREDIT FEB",
		"14,345.67",
	}, "\n")

	info, err := p.Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(info.Transactions) != 2 {
		t.Fatalf("transactions: got %d, want 2", len(info.Transactions))
	}

	first := info.Transactions[0]
	if first.Type != models.TypeDebit || first.Amount != 500.00 {
		t.Errorf("txn[0]: got %s %f, want DEBIT 500.00", first.Type, first.Amount)
	}
	if first.Balance != 12345.67 {
		t.Errorf("txn[0].Balance: got %f, want 12345.67", first.Balance)
	}

	second := info.Transactions[1]
	if second.Type != models.TypeCredit || second.Amount != 2000.00 {
		t.Errorf("txn[1]: got %s %f, want CREDIT 2000.00", second.Type, second.Amount)
	}
	if second.Balance != 14345.67 {
		t.Errorf("txn[1].Balance: got %f, want 14345.67", second.Balance)
	}
	if second.Details != "SALARY CREDIT FEB" {
		t.Errorf("txn[1].Details: got %q, want %q", second.Details, "SALARY CREDIT FEB")
	}
}

func TestLedgerParser_AmountNeverNegative(t *testing.T) {
	p := &LedgerParser{}

	text := strings.Join([]string{
		"-100.00 01 Mar 2025 REFUND 1,100.00",
		"250.00 02 Mar 2025 PURCHASE 850.00",
		"-0.01 03 Mar 2025 INTEREST 850.01",
	}, "\n")

	info, err := p.Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, txn := range info.Transactions {
		if txn.Amount < 0 {
			t.Errorf("txn[%d].Amount: got %f, want >= 0", i, txn.Amount)
		}
	}
}

func TestLedgerParser_NoBalanceToken(t *testing.T) {
	p := &LedgerParser{}

	// No residual decimal token after the anchor: balance stays absent.
	info, err := p.Parse("300.00 05 Apr 2025 ATM WITHDRAWAL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(info.Transactions) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(info.Transactions))
	}
	txn := info.Transactions[0]
	if txn.Balance != 0 {
		t.Errorf("Balance: got %f, want 0 (absent)", txn.Balance)
	}
	if txn.Details != "ATM WITHDRAWAL" {
		t.Errorf("Details: got %q, want %q", txn.Details, "ATM WITHDRAWAL")
	}
}

func TestLedgerParser_TrailingNumberInDetails(t *testing.T) {
	p := &LedgerParser{}

	// Known heuristic limit: the last decimal token is taken as the
	// balance even when the details text itself ends in a decimal
	// number. Pin the behavior so a future column-position rule shows
	// up as a deliberate change.
	info, err := p.Parse("100.00 01 May 2025 BILL PAY REF 77.50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	txn := info.Transactions[0]
	if txn.Balance != 77.50 {
		t.Errorf("Balance: got %f, want 77.50", txn.Balance)
	}
	if txn.Details != "BILL PAY REF" {
		t.Errorf("Details: got %q, want %q", txn.Details, "BILL PAY REF")
	}
}

func TestLedgerParser_RawRoundTrip(t *testing.T) {
	p := &LedgerParser{}

	info, err := p.Parse("-750.00 01 Jan 2025 TRANSFER FROM SAVINGS 5,050.00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	original := info.Transactions[0]

	again, err := p.Parse(original.Raw)
	if err != nil {
		t.Fatalf("unexpected error reparsing raw: %v", err)
	}
	if len(again.Transactions) != 1 {
		t.Fatalf("reparsed transactions: got %d, want 1", len(again.Transactions))
	}
	if again.Transactions[0].Type != original.Type {
		t.Errorf("reparsed Type: got %q, want %q", again.Transactions[0].Type, original.Type)
	}
	if again.Transactions[0].Amount != original.Amount {
		t.Errorf("reparsed Amount: got %f, want %f", again.Transactions[0].Amount, original.Amount)
	}
}

func TestLedgerParser_EmptyInput(t *testing.T) {
	p := &LedgerParser{}

	for _, input := range []string{"", "header text only\nno anchors anywhere"} {
		info, err := p.Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", input, err)
		}
		if info.Transactions == nil {
			t.Errorf("Parse(%q): transactions must be empty, not nil", input)
		}
		if len(info.Transactions) != 0 {
			t.Errorf("Parse(%q): got %d transactions, want 0", input, len(info.Transactions))
		}
	}
}
