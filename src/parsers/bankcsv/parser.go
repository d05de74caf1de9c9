// Package bankcsv parses categorized bank-transaction exports.
//
// The format is one header line followed by comma-separated data lines of
// Date,Description,Amount,PaymentMethod,Category. A double quote toggles a
// quoted mode in which commas are literal text; the quote characters
// themselves are consumed. This is deliberately not RFC 4180: there is no
// quote escaping, and encoding/csv would reject rows this format accepts.
package bankcsv

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/AryamanRoy/Raseed-FinanceAI/src/logger"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/models"
	"github.com/google/uuid"
)

const dateLayout = "02-01-2006" // DD-MM-YYYY

// Parser converts raw delimited text into TransactionRecord batches.
type Parser struct{}

// NewParser creates a new instance of the Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse turns raw text into an ordered batch of records. Malformed rows are
// dropped and parsing continues; Parse never fails on row-level problems.
// Input with no data lines yields an empty batch.
func (p *Parser) Parse(raw string) []models.TransactionRecord {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) < 2 {
		return nil
	}

	records := make([]models.TransactionRecord, 0, len(lines)-1)
	for i, line := range lines[1:] {
		rec, err := parseLine(i, line)
		if err != nil {
			logger.L.Debug("bankcsv: dropping malformed row", "row", i+1, "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records
}

func parseLine(index int, line string) (models.TransactionRecord, error) {
	fields := splitFields(line)
	if len(fields) < 5 {
		return models.TransactionRecord{}, fmt.Errorf("expected at least 5 fields, got %d", len(fields))
	}

	// Positional: date, description, amount, payment method, category.
	// Extra trailing fields are ignored.
	date, err := parseDate(fields[0])
	if err != nil {
		return models.TransactionRecord{}, err
	}

	amount, err := parseAmount(fields[2])
	if err != nil {
		return models.TransactionRecord{}, err
	}

	return models.TransactionRecord{
		// Row position plus a batch-local random component: two textually
		// identical rows still get distinct ids.
		ID:            fmt.Sprintf("txn-%d-%s", index, uuid.NewString()),
		Date:          date,
		Description:   fields[1],
		Amount:        amount,
		PaymentMethod: fields[3],
		Category:      fields[4],
	}, nil
}

// splitFields splits a data line on commas, honoring the quote-toggle rule.
// Quote characters flip the in-quotes mode and are not copied to the field
// value. Each field is whitespace-trimmed after splitting.
func splitFields(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}

// parseDate accepts strict DD-MM-YYYY calendar dates. The round-trip check
// rejects rollover dates like 32-01-2024 that time.Parse would normalize.
func parseDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	t, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	if t.Format(dateLayout) != trimmed {
		return time.Time{}, fmt.Errorf("invalid calendar date %q", s)
	}
	return t, nil
}

// parseAmount strips grouping commas and embedded whitespace before numeric
// conversion. Non-numeric and non-positive amounts are rejected.
func parseAmount(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	// NaN compares false against everything, so the sign guard alone would
	// let it through and poison every downstream aggregate.
	if math.IsNaN(amount) || amount <= 0 {
		return 0, fmt.Errorf("non-positive amount %q", s)
	}
	return amount, nil
}
