// Package data implements the Data contract (spec §6): a keyed column
// store where each variable name resolves to a numeric column of length
// n, backed by CSV files. No CSV parsing library appears anywhere in the
// retrieval pack this module was grounded on, so this package is built
// directly on the standard library's encoding/csv (see DESIGN.md).
package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Columns is a read-only keyed column store: each name resolves to a
// numeric column of uniform length.
type Columns interface {
	Column(name string) ([]float64, bool)
	Len() int
	Names() []string
}

type columns struct {
	names  []string
	byName map[string][]float64
	length int
}

func (c *columns) Column(name string) ([]float64, bool) {
	col, ok := c.byName[name]
	return col, ok
}

func (c *columns) Len() int { return c.length }

func (c *columns) Names() []string { return c.names }

// NewColumns builds a Columns from an in-memory map, validating that
// every column has the same length.
func NewColumns(byName map[string][]float64) (Columns, error) {
	n := -1
	names := make([]string, 0, len(byName))
	for name, col := range byName {
		names = append(names, name)
		if n == -1 {
			n = len(col)
		} else if len(col) != n {
			return nil, fmt.Errorf("data: column %q has length %d, want %d", name, len(col), n)
		}
	}
	if n == -1 {
		n = 0
	}
	return &columns{names: names, byName: byName, length: n}, nil
}

// LoadCSV reads a header-first CSV file into a Columns, one column per
// header field.
func LoadCSV(path string) (Columns, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("data: %s: empty file", path)
	}
	header := records[0]
	byName := make(map[string][]float64, len(header))
	for _, name := range header {
		byName[name] = make([]float64, 0, len(records)-1)
	}
	for _, row := range records[1:] {
		for i, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("data: %s: row value %q: %w", path, cell, err)
			}
			byName[header[i]] = append(byName[header[i]], v)
		}
	}
	return NewColumns(byName)
}

// LoadSeriesCSV reads a single-column, header-first CSV file into a flat
// float64 slice — the shape expected for the target series y.
func LoadSeriesCSV(path string) ([]float64, error) {
	cols, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	names := cols.Names()
	if len(names) != 1 {
		return nil, fmt.Errorf("data: %s: expected exactly one column, found %d", path, len(names))
	}
	series, _ := cols.Column(names[0])
	return series, nil
}

// WriteCSV writes cols to path as a header-first CSV file, columns in
// the order given by cols.Names().
func WriteCSV(path string, cols Columns) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	names := cols.Names()
	if err := w.Write(names); err != nil {
		return err
	}
	n := cols.Len()
	for i := 0; i < n; i++ {
		row := make([]string, len(names))
		for j, name := range names {
			col, _ := cols.Column(name)
			row[j] = strconv.FormatFloat(col[i], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteSeriesCSV writes a flat series to path as a single-column CSV
// file with header name.
func WriteSeriesCSV(path, name string, series []float64) error {
	cols, err := NewColumns(map[string][]float64{name: series})
	if err != nil {
		return err
	}
	return WriteCSV(path, cols)
}
