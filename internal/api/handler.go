package api

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/finwise/statement-parser/internal/extractor"
	"github.com/finwise/statement-parser/internal/models"
	"github.com/finwise/statement-parser/internal/parser"
	"github.com/finwise/statement-parser/internal/writer"
)

// Version of the HTTP API.
const Version = "1.0.0"

var log = zerolog.Nop()

// SetLogger installs the logger used by the handlers.
func SetLogger(l zerolog.Logger) {
	log = l
}

// ParseResponse is the JSON response from the /api/parse endpoint.
type ParseResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	Dialect      string               `json:"dialect,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	CSV          string               `json:"csv,omitempty"`
	TotalDebit   float64              `json:"totalDebit"`
	TotalCredit  float64              `json:"totalCredit"`
	Count        int                  `json:"count"`
	RawText      string               `json:"rawText,omitempty"`
	Version      string               `json:"version,omitempty"`
}

// Routes registers the API routes on the given app.
func Routes(app *fiber.App) {
	app.Get("/api/health", HandleHealth)
	app.Post("/api/parse", HandleParse)
}

// HandleHealth reports service liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": Version,
	})
}

// HandleParse accepts a statement document and returns the extracted
// transactions. The document arrives either as a multipart PDF under
// the "file" field or as already-extracted text under the "text" field.
// An optional "dialect" field (wallet or ledger) skips auto-detection.
func HandleParse(c *fiber.Ctx) error {
	text := strings.TrimSpace(c.FormValue("text"))

	if text == "" {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file' or 'text'.")
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
			return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
		}

		tmpPath := filepath.Join(os.TempDir(), "statement-"+uuid.NewString()+".pdf")
		if err := c.SaveFile(fileHeader, tmpPath); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
		}
		defer os.Remove(tmpPath)

		log.Info().Str("file", fileHeader.Filename).Int64("size", fileHeader.Size).Msg("received statement upload")

		text, err = extractor.ExtractText(tmpPath)
		if err != nil {
			log.Warn().Err(err).Str("file", fileHeader.Filename).Msg("PDF extraction failed")
			return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("PDF extraction failed: %v", err))
		}
	}

	var dialect models.Dialect
	switch strings.ToLower(c.FormValue("dialect")) {
	case "":
		dialect = parser.DetectDialect(text)
	case "wallet":
		dialect = models.DialectWallet
	case "ledger":
		dialect = models.DialectLedger
	default:
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Unknown dialect: %q. Use wallet or ledger.", c.FormValue("dialect")))
	}

	p, err := parser.New(dialect)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	info, err := p.Parse(text)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("Parsing failed: %v", err))
	}

	log.Info().Str("dialect", string(dialect)).Int("count", len(info.Transactions)).Msg("statement parsed")

	if len(info.Transactions) == 0 {
		return writeError(c, fiber.StatusBadRequest, "No transactions found in statement.")
	}

	var csvBuf bytes.Buffer
	csvWriter := &writer.CSVWriter{IncludeHeader: c.FormValue("header") != "false"}
	if err := csvWriter.Write(&csvBuf, info); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	var totalDebit, totalCredit float64
	for _, txn := range info.Transactions {
		switch txn.Type {
		case models.TypeDebit:
			totalDebit += txn.Amount
		case models.TypeCredit:
			totalCredit += txn.Amount
		}
	}

	resp := ParseResponse{
		Success:      true,
		Dialect:      string(dialect),
		Transactions: info.Transactions,
		CSV:          csvBuf.String(),
		TotalDebit:   totalDebit,
		TotalCredit:  totalCredit,
		Count:        len(info.Transactions),
		Version:      Version,
	}

	// Raw text helps diagnose parser gaps against new export layouts.
	if c.FormValue("rawText") == "true" {
		resp.RawText = text
	}

	return c.JSON(resp)
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ParseResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.Transaction{},
	})
}
