package parser

import (
	"strings"

	"github.com/finwise/statement-parser/internal/models"
)

// WalletParser handles wallet app statement exports (PhonePe-style).
//
// The layout is multi-line: a date header ("May 19, 2025") governs all
// following transactions until the next date header; each transaction
// is anchored by a time line ("06:20 pm") and followed by a type+amount
// line and scattered reference labels:
//
//	May 19, 2025
//	06:20 pm
//	DEBIT₹202Mobile recharge
//	Transaction ID T2505191820123456789
//	UTR No. 512345678901
//	Paid by
//	XX1234
type WalletParser struct{}

func (p *WalletParser) DialectName() string {
	return "wallet"
}

// walletBlock is one time-anchored line span plus the date header in
// force when it was opened.
type walletBlock struct {
	date string
	time string
	body []string
}

func (b walletBlock) raw() string {
	parts := append([]string{b.date, b.time}, b.body...)
	return strings.Join(parts, "\n")
}

func (p *WalletParser) Parse(text string) (*models.StatementInfo, error) {
	info := &models.StatementInfo{
		Dialect:      models.DialectWallet,
		Transactions: []models.Transaction{},
	}

	lines := splitLines(text)
	for _, b := range segmentWallet(lines) {
		f := extractWalletFields(b.body)
		txn := models.Transaction{
			Date:          normalizeWalletDate(b.date, b.time),
			Type:          normalizeType(f.typ),
			Amount:        amountOrZero(f.amount),
			Details:       f.details,
			TransactionID: f.txnID,
			UTR:           f.utr,
			Account:       f.account,
			Raw:           b.raw(),
		}
		info.Transactions = append(info.Transactions, txn)
	}

	return info, nil
}

// segmentWallet partitions the cleaned lines into time-anchored blocks.
// A date line updates the current-date context carried to subsequent
// blocks; a block runs from its time line to the line before the next
// time or date line. Time lines seen before any date line cannot anchor
// a block and are skipped, as is anything else outside a block.
func segmentWallet(lines []string) []walletBlock {
	var blocks []walletBlock
	currentDate := ""
	open := -1 // index into blocks of the block being filled

	for _, line := range lines {
		if walletDatePattern.MatchString(line) {
			currentDate = line
			open = -1
			continue
		}
		if walletTimePattern.MatchString(line) {
			if currentDate == "" {
				continue
			}
			blocks = append(blocks, walletBlock{date: currentDate, time: line})
			open = len(blocks) - 1
			continue
		}
		if open >= 0 {
			blocks[open].body = append(blocks[open].body, line)
		}
	}

	return blocks
}
