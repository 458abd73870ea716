package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// The dataset is a rectangular matrix: row 0 carries bank names per column,
// row 1 carries country names per column, remaining rows carry attribute
// values with the attribute label in column 0.
const headerRows = 2

// LoadFile reads and parses the dataset at path, replacing the current
// snapshot. On any failure the catalog degrades to empty rather than keeping
// stale data, so downstream flows uniformly report "no offerings available".
func (c *Catalog) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		c.snap.Store(emptySnapshot())
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return c.Load(f)
}

// Load parses CSV cells from r and swaps in the resulting snapshot. Calling
// Load twice with the same data yields structurally equal catalogs; the load
// is a full replacement, never a merge.
func (c *Catalog) Load(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		c.snap.Store(emptySnapshot())
		return fmt.Errorf("parse dataset: %w", err)
	}

	snap := buildSnapshot(records)
	c.snap.Store(snap)

	c.log.Info("catalog loaded",
		slog.Int("offerings", snap.total),
		slog.Int("countries", len(snap.countries)),
	)

	return nil
}

func buildSnapshot(records [][]string) *snapshot {
	if len(records) < headerRows+1 {
		return emptySnapshot()
	}

	bankRow := records[0]
	countryRow := records[1]
	attributeRows := records[headerRows:]

	snap := emptySnapshot()

	for col := 1; col < len(bankRow); col++ {
		bank := strings.TrimSpace(cell(bankRow, col))
		country := strings.TrimSpace(cell(countryRow, col))
		if bank == "" || country == "" {
			continue
		}

		off := Offering{
			Bank:       bank,
			Country:    country,
			Attributes: make(map[string]string, len(attributeRows)),
		}
		for _, row := range attributeRows {
			label := strings.TrimSpace(cell(row, 0))
			if label == "" {
				continue
			}
			off.Attributes[label] = strings.TrimSpace(cell(row, col))
		}

		if _, ok := snap.byCountry[country]; !ok {
			snap.countries = append(snap.countries, country)
		}
		snap.byCountry[country] = append(snap.byCountry[country], off)
		snap.total++
	}

	return snap
}

// cell reads a matrix cell tolerating ragged rows.
func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}
