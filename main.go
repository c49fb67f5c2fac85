package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/finwise/statement-parser/internal/api"
	"github.com/finwise/statement-parser/internal/extractor"
	"github.com/finwise/statement-parser/internal/logger"
	"github.com/finwise/statement-parser/internal/models"
	"github.com/finwise/statement-parser/internal/parser"
	"github.com/finwise/statement-parser/internal/writer"
)

const version = "1.0.0"

func main() {
	dialectFlag := flag.String("dialect", "", "Statement dialect: wallet, ledger (auto-detected if omitted)")
	outputFlag := flag.String("output", "", "Output CSV file path (defaults to input filename with .csv extension)")
	headerFlag := flag.Bool("header", true, "Include metadata header rows in CSV")
	rawFlag := flag.Bool("raw", false, "Include the raw source span column in CSV")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API instead of converting files")
	addrFlag := flag.String("addr", "", "HTTP listen address for --serve (defaults to :5000, or PORT env)")
	logLevelFlag := flag.String("log-level", "info", "Log level for --serve: debug, info, warn, error")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `UPI / Bank Statement Parser

Converts wallet app (PhonePe-style) and bank ledger (SBI-style)
statement exports into structured CSV files.

Usage:
  statement-parser [flags] <input.pdf|input.txt> [input2 ...]
  statement-parser --serve [--addr=:5000]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Auto-detect dialect and convert
  statement-parser statement.pdf

  # Specify dialect explicitly (required for ledger statements)
  statement-parser --dialect=ledger statement.pdf

  # Parse already-extracted text
  statement-parser --dialect=wallet statement.txt

  # Run the upload API
  statement-parser --serve --addr=:5000

Supported Dialects:
  wallet    - Wallet app statements (date header + time-anchored blocks)
  ledger    - Bank ledger statements (one row per transaction, signed amounts)

Ledger statements are not auto-detected; pass --dialect=ledger for them.
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-parser v%s\n", version)
		os.Exit(0)
	}

	if *serveFlag {
		serve(*addrFlag, *logLevelFlag)
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	var dialect models.Dialect
	if *dialectFlag != "" {
		switch strings.ToLower(*dialectFlag) {
		case "wallet", "phonepe":
			dialect = models.DialectWallet
		case "ledger", "sbi":
			dialect = models.DialectLedger
		default:
			fatalf("Unknown dialect %q. Supported: wallet, ledger\n", *dialectFlag)
		}
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(inputPath, dialect, *outputFlag, *headerFlag, *rawFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(inputPath string, dialect models.Dialect, outputPath string, includeHeader, includeRaw bool) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	var text string
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".pdf":
		extracted, err := extractor.ExtractText(inputPath)
		if err != nil {
			return fmt.Errorf("PDF extraction failed: %w", err)
		}
		text = extracted
	case ".txt":
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		text = string(data)
	default:
		return fmt.Errorf("expected .pdf or .txt file, got %q", filepath.Ext(inputPath))
	}

	effectiveDialect := dialect
	if effectiveDialect == "" {
		effectiveDialect = parser.DetectDialect(text)
		fmt.Printf("  Auto-detected dialect: %s\n", effectiveDialect)
	}

	p, err := parser.New(effectiveDialect)
	if err != nil {
		return err
	}

	info, err := p.Parse(text)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	fmt.Printf("  Found %d transaction(s)\n", len(info.Transactions))

	if len(info.Transactions) == 0 {
		fmt.Println("  Warning: No transactions found. The statement layout may not match expected patterns.")
		fmt.Println("  Ledger statements are not auto-detected; try --dialect=ledger.")
	}

	outPath := outputPath
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".csv"
	}

	w := &writer.CSVWriter{IncludeHeader: includeHeader, IncludeRaw: includeRaw}
	if err := w.WriteToFile(outPath, info); err != nil {
		return fmt.Errorf("CSV write failed: %w", err)
	}

	fmt.Printf("  Output: %s\n", outPath)
	fmt.Println("  Done.")
	return nil
}

func serve(addr, logLevel string) {
	log := logger.New(logLevel)
	api.SetLogger(log)

	if addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		} else {
			addr = ":5000"
		}
	}

	app := fiber.New(fiber.Config{
		AppName:   "statement-parser v" + version,
		BodyLimit: 32 << 20,
	})
	api.Routes(app)

	log.Info().Str("addr", addr).Msg("starting statement parser API")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
