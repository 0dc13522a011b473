package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"monster-deals/models"
)

// CSVWriter exports one run's records to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

var csvHeader = []string{
	"run_id", "retailer", "identifier", "title", "price", "fl_oz", "price_per_oz", "seller", "link", "observed_at",
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

func (c *CSVWriter) Write(records []*models.Record) error {
	for _, r := range records {
		row := []string{
			r.RunID,
			r.Source,
			r.Identifier,
			r.Title,
			strconv.FormatFloat(r.Price, 'f', 2, 64),
			strconv.FormatFloat(r.Volume, 'f', -1, 64),
			strconv.FormatFloat(r.UnitPrice, 'f', 4, 64),
			r.Seller,
			r.Link,
			r.ObservedAt.Format(time.RFC3339),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
