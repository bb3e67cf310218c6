package model

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Table represents one (or several concatenated) repaired files as an
// ordered collection of named, typed columns with aligned row indices.
// A Table is constructed once and never mutated afterwards.
type Table struct {
	// name is the table name derived from the file path.
	name string
	// header is the repaired header.
	header Header
	// records are the body rows in file order.
	records []Record
	// columnInfo contains inferred type information for each column.
	columnInfo []ColumnInfo
	// format is the numeric convention the body values are written in.
	format NumberFormat
}

// NewTable creates a new Table, inferring column types from the data
// using the given number format.
func NewTable(name string, header Header, records []Record, format NumberFormat) *Table {
	return &Table{
		name:       name,
		header:     header,
		records:    records,
		columnInfo: InferColumnsInfo(header, records, format),
		format:     format,
	}
}

// Name return table name.
func (t *Table) Name() string {
	return t.name
}

// Header return table header.
func (t *Table) Header() Header {
	return t.header
}

// Records return table records.
func (t *Table) Records() []Record {
	return t.records
}

// ColumnInfo returns column information with inferred types.
func (t *Table) ColumnInfo() []ColumnInfo {
	return t.columnInfo
}

// NumberFormat returns the numeric convention used by this table.
func (t *Table) NumberFormat() NumberFormat {
	return t.format
}

// Equal compare Table.
func (t *Table) Equal(t2 *Table) bool {
	if t.Name() != t2.Name() {
		return false
	}
	if !t.header.Equal(t2.header) {
		return false
	}
	if len(t.Records()) != len(t2.Records()) {
		return false
	}
	for i, record := range t.Records() {
		if !record.Equal(t2.Records()[i]) {
			return false
		}
	}
	return true
}

// ColumnIndex returns the index of the named column, or -1 if the
// header does not contain it.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.header {
		if col == name {
			return i
		}
	}
	return -1
}

// Value returns the typed value at the given row and column. The raw
// string is converted according to the column's inferred type: REAL
// values honor the table's NumberFormat, datetime values are parsed
// into time.Time, everything else stays a string.
func (t *Table) Value(row, col int) (any, error) {
	raw, err := t.rawAt(row, col)
	if err != nil {
		return nil, err
	}
	switch t.columnInfo[col].Type {
	case ColumnTypeInteger:
		return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	case ColumnTypeReal:
		return t.format.ParseFloat(raw)
	case ColumnTypeDatetime:
		return parseDatetime(raw)
	default:
		return raw, nil
	}
}

// Float64 returns the value at the given row and column parsed with the
// table's NumberFormat.
func (t *Table) Float64(row, col int) (float64, error) {
	raw, err := t.rawAt(row, col)
	if err != nil {
		return 0, err
	}
	return t.format.ParseFloat(raw)
}

// Time returns the value at the given row and column parsed as a datetime.
func (t *Table) Time(row, col int) (time.Time, error) {
	raw, err := t.rawAt(row, col)
	if err != nil {
		return time.Time{}, err
	}
	return parseDatetime(raw)
}

func (t *Table) rawAt(row, col int) (string, error) {
	if row < 0 || row >= len(t.records) {
		return "", fmt.Errorf("row index %d out of range [0,%d)", row, len(t.records))
	}
	if col < 0 || col >= len(t.header) {
		return "", fmt.Errorf("column index %d out of range [0,%d)", col, len(t.header))
	}
	return t.records[row][col], nil
}

// TableFromFilePath creates table name from file path.
func TableFromFilePath(filePath string) string {
	fileName := filepath.Base(filePath)
	// Remove compression extensions first
	for _, ext := range []string{ExtGZ, ExtBZ2, ExtXZ, ExtZSTD} {
		if strings.HasSuffix(fileName, ext) {
			fileName = strings.TrimSuffix(fileName, ext)
			break
		}
	}
	// Then remove the file type extension
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
