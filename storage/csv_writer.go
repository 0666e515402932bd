package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"inquiry-desk/models"
)

var csvHeader = []string{
	"id", "type", "country", "currency", "name", "email", "city",
	"home_budget", "home_value", "financing_advisory", "created_at",
}

// CSVWriter exports inquiries to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends one row per inquiry in collection order.
func (c *CSVWriter) Write(inquiries []models.Inquiry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, inq := range inquiries {
		if err := c.writer.Write(csvRow(inq)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

func csvRow(inq models.Inquiry) []string {
	base := inq.Common()
	var currency string
	if base.Country != nil {
		currency = base.Country.CurrencyName
	}

	var budget, value, advisory string
	switch v := inq.(type) {
	case models.RentInquiry:
		budget = formatOptional(v.HomeBudget)
	case models.BuyInquiry:
		budget = formatOptional(v.HomeBudget)
		if v.FinancingAdvisory != nil {
			advisory = strconv.FormatBool(*v.FinancingAdvisory)
		}
	case models.SellInquiry:
		value = formatOptional(v.HomeValue)
	}

	return []string{
		base.ID,
		string(base.Type),
		base.CountryName(),
		currency,
		base.Name,
		base.Email,
		base.City,
		budget,
		value,
		advisory,
		base.CreatedAt.Format(time.RFC3339),
	}
}

func formatOptional(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
