package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"eatery-scraper/models"
)

var csvHeader = []string{
	"name", "cuisine", "address", "area", "phone_number", "website",
	"latitude", "longitude", "rating", "reviews", "price",
}

// CSVWriter exports a collection as one row per location.
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

// Write appends one row per reconciled location. Records that were never
// reconciled get one row per draft address.
func (c *CSVWriter) Write(records []*models.Eatery) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		for _, row := range csvRows(r) {
			if err := c.writer.Write(row); err != nil {
				return fmt.Errorf("csv: write row: %w", err)
			}
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

func csvRows(r *models.Eatery) [][]string {
	if r.Locations == nil {
		rows := make([][]string, 0, len(r.Addresses()))
		for _, addr := range r.Addresses() {
			rows = append(rows, []string{r.Name, r.Cuisine, addr, "", "", "", "", "", "", "", ""})
		}
		return rows
	}

	rows := make([][]string, 0, len(*r.Locations))
	for _, l := range *r.Locations {
		phone := l.PhoneNumber
		if phone == "" {
			phone = l.MatchedPhone
		}
		var lat, lng string
		if l.Coordinate != nil {
			lat = strconv.FormatFloat(l.Coordinate.Lat, 'f', -1, 64)
			lng = strconv.FormatFloat(l.Coordinate.Lng, 'f', -1, 64)
		}
		rows = append(rows, []string{
			r.Name, r.Cuisine, l.Address, l.Area, phone, l.Website,
			lat, lng, formatFloatPtr(l.Rating), formatIntPtr(l.Reviews), formatIntPtr(l.Price),
		})
	}
	return rows
}

func formatFloatPtr(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func formatIntPtr(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
