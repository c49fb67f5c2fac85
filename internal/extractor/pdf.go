package extractor

import (
	"fmt"
	"io"
	"math"
	"os/exec"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads a PDF file and returns its text content as one
// blob, pages separated by blank lines. Several extraction methods are
// tried because statement PDFs vary wildly in how their text streams
// are encoded; the external pdftotext command (poppler-utils) is the
// last resort.
func ExtractText(filePath string) (string, error) {
	text, libErr := extractWithLibrary(filePath)
	if libErr == nil && IsReadableText(text) {
		return text, nil
	}

	if popplerText, err := extractWithPdftotext(filePath); err == nil && IsReadableText(popplerText) {
		return popplerText, nil
	}

	if libErr != nil {
		return "", fmt.Errorf("PDF text extraction failed: %v; the file may be image-based or use custom font encodings", libErr)
	}
	return "", fmt.Errorf("no readable text could be extracted from PDF; the file may be scanned or password protected")
}

// extractWithLibrary uses the pdf library, trying its extraction paths
// from best layout preservation to worst.
func extractWithLibrary(filePath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return "", openErr
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	if text = extractByRow(r, numPages); IsReadableText(text) {
		return text, nil
	}
	if text = extractByContent(r, numPages); IsReadableText(text) {
		return text, nil
	}
	if text = extractPlainText(r); IsReadableText(text) {
		return text, nil
	}
	return text, nil
}

// extractByRow walks each page row by row, which keeps the one-field-
// per-line structure wallet statements rely on.
func extractByRow(r *pdf.Reader, numPages int) string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return strings.Join(pages, "\n\n")
}

// extractByContent reconstructs rows from raw text object coordinates:
// pieces are grouped by Y, sorted by X, and large X gaps become column
// separators.
func extractByContent(r *pdf.Reader, numPages int) string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		type piece struct {
			x float64
			s string
		}
		rowMap := make(map[int][]piece)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			yKey := int(math.Round(t.Y))
			rowMap[yKey] = append(rowMap[yKey], piece{x: t.X, s: t.S})
		}

		yKeys := make([]int, 0, len(rowMap))
		for y := range rowMap {
			yKeys = append(yKeys, y)
		}
		// PDF Y runs bottom to top.
		sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

		var lines []string
		for _, y := range yKeys {
			pieces := rowMap[y]
			sort.Slice(pieces, func(a, b int) bool { return pieces[a].x < pieces[b].x })

			var parts []string
			var prevX float64
			for j, pc := range pieces {
				if j > 0 && pc.x-prevX > 15 {
					parts = append(parts, "  ")
				}
				parts = append(parts, pc.s)
				prevX = pc.x
			}
			if line := strings.TrimSpace(strings.Join(parts, "")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return strings.Join(pages, "\n\n")
}

func extractPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func extractWithPdftotext(filePath string) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not available: %v", err)
	}
	out, err := exec.Command("pdftotext", "-layout", filePath, "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %v", err)
	}
	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", fmt.Errorf("pdftotext produced no output")
	}
	return text, nil
}

// statementWords are terms that appear in virtually every statement
// export, wallet or ledger. Text containing none of them is treated as
// garbage from an undecodable font.
var statementWords = []string{
	"transaction", "statement", "debit", "credit", "balance",
	"amount", "date", "account", "paid", "received", "payment",
	"upi", "utr", "transfer", "bank", "page",
}

// IsReadableText checks that extracted text is long enough, mostly
// readable characters, and contains at least one recognizable
// statement term. Garbage must never reach the parser.
func IsReadableText(text string) bool {
	if len(strings.TrimSpace(text)) <= 50 {
		return false
	}
	if readableRatio(text) <= 0.6 {
		return false
	}
	lower := strings.ToLower(text)
	for _, w := range statementWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// readableRatio returns the fraction of characters that are plain
// ASCII letters, digits, whitespace or common statement punctuation.
// A strict set is used on purpose: unicode.IsLetter also accepts the
// accented garbage that identity-encoded fonts produce.
func readableRatio(text string) float64 {
	total := 0
	readable := 0
	for _, r := range text {
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
			strings.ContainsRune(`.,-/:;()'"₹£$%&@#!?+=*`, r) {
			readable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}
