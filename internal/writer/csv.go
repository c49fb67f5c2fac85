package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/finwise/statement-parser/internal/models"
)

// CSVWriter writes parsed transactions to CSV format.
type CSVWriter struct {
	IncludeHeader bool // emit "# Dialect" / "# Transactions" metadata rows
	IncludeRaw    bool // emit the raw source span column
}

// WriteToFile writes transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, info *models.StatementInfo) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, info)
}

// Write writes transactions in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, info *models.StatementInfo) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeHeader {
		writer.Write([]string{"# Dialect", string(info.Dialect)})
		writer.Write([]string{"# Transactions", strconv.Itoa(len(info.Transactions))})
	}

	header := []string{"Date", "Type", "Amount", "Details", "TransactionID", "UTR", "Account", "Balance"}
	if w.IncludeRaw {
		header = append(header, "Raw")
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range info.Transactions {
		row := []string{
			txn.Date,
			txn.Type,
			strconv.FormatFloat(txn.Amount, 'f', 2, 64),
			txn.Details,
			txn.TransactionID,
			txn.UTR,
			txn.Account,
			formatBalance(txn.Balance),
		}
		if w.IncludeRaw {
			row = append(row, txn.Raw)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func formatBalance(balance float64) string {
	if balance == 0 {
		return ""
	}
	return strconv.FormatFloat(balance, 'f', 2, 64)
}
