package parser

import (
	"strings"
	"testing"
)

func TestSplitLines(t *testing.T) {
	input := strings.Join([]string{
		"Transaction Statement for 98XXXXXX21",
		"May 01, 2025 - May 31, 2025",
		"",
		"Date Transaction Details Type Amount",
		"May 19, 2025",
		"06:20 pm",
		"DEBIT₹202Mobile recharge",
		"Page 1 of 4",
		"This is a system generated statement.",
		"Transaction ID T12345",
	}, "\n")

	lines := splitLines(input)

	want := []string{
		"May 19, 2025",
		"06:20 pm",
		"DEBIT₹202Mobile recharge",
		"Transaction ID T12345",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines: got %d, want %d (%v)", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("lines[%d]: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestSplitLines_WhitespaceVariants(t *testing.T) {
	// Non-breaking and narrow spaces collapse to plain spaces; zero-width
	// characters vanish entirely.
	lines := splitLines("Paid to Shop\r\n​\n  padded line  ")

	if len(lines) != 2 {
		t.Fatalf("lines: got %d, want 2 (%v)", len(lines), lines)
	}
	if lines[0] != "Paid to Shop" {
		t.Errorf("lines[0]: got %q, want %q", lines[0], "Paid to Shop")
	}
	if lines[1] != "padded line" {
		t.Errorf("lines[1]: got %q, want %q", lines[1], "padded line")
	}
}

func TestSplitLines_EmptyInput(t *testing.T) {
	if got := splitLines(""); len(got) != 0 {
		t.Errorf("empty input: got %v, want no lines", got)
	}
	if got := splitLines("\n\n\r\n"); len(got) != 0 {
		t.Errorf("blank input: got %v, want no lines", got)
	}
}

func TestSplitLines_NoiseNeverSurvives(t *testing.T) {
	noise := []string{
		"Transaction Statement",
		"Jan 01, 2025 - Jan 31, 2025",
		"Date Transaction Details Type Amount",
		"Date Credit BalanceDetails Ref No./Cheque",
		"Page 12 of 30",
		"This is a system generated statement and does not require a signature.",
	}

	for _, line := range noise {
		t.Run(line, func(t *testing.T) {
			for _, kept := range splitLines(line + "\nPaid to Shop") {
				if kept == line {
					t.Errorf("noise line survived: %q", line)
				}
			}
		})
	}
}
