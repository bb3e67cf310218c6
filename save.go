package delimfix

import (
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/delimfix/delimfix/domain/model"
)

// OutputFormat represents the output file format
type OutputFormat int

const (
	// OutputFormatCSV represents CSV output format
	OutputFormatCSV OutputFormat = iota
	// OutputFormatTSV represents TSV output format
	OutputFormatTSV
	// OutputFormatXLSX represents Excel XLSX output format
	OutputFormatXLSX
)

// String returns the string representation of OutputFormat
func (f OutputFormat) String() string {
	switch f {
	case OutputFormatTSV:
		return "tsv"
	case OutputFormatXLSX:
		return "xlsx"
	default:
		return "csv"
	}
}

// Extension returns the file extension for the format
func (f OutputFormat) Extension() string {
	switch f {
	case OutputFormatTSV:
		return model.ExtTSV
	case OutputFormatXLSX:
		return ".xlsx"
	default:
		return model.ExtCSV
	}
}

// delimiter returns the field delimiter the format writes with.
func (f OutputFormat) delimiter() rune {
	if f == OutputFormatTSV {
		return '\t'
	}
	return ','
}

// SaveOptions configures how a repaired table is written back out.
//
// Example:
//
//	options := delimfix.NewSaveOptions().
//		WithFormat(delimfix.OutputFormatTSV).
//		WithCompression(delimfix.CompressionGZ)
//	err := delimfix.Save(table, "out/measurements.tsv.gz", options)
type SaveOptions struct {
	// Format specifies the output file format
	Format OutputFormat
	// Compression specifies the compression type (ignored for XLSX)
	Compression CompressionType
	// Delimiter overrides the format's default field delimiter when
	// non-zero, so a repaired file can be written back with the body
	// delimiter it arrived with
	Delimiter rune
}

// NewSaveOptions creates default save options (CSV, no compression).
func NewSaveOptions() SaveOptions {
	return SaveOptions{
		Format:      OutputFormatCSV,
		Compression: CompressionNone,
	}
}

// WithFormat sets the output file format.
func (o SaveOptions) WithFormat(format OutputFormat) SaveOptions {
	o.Format = format
	return o
}

// WithCompression adds compression to the output file.
func (o SaveOptions) WithCompression(compression CompressionType) SaveOptions {
	o.Compression = compression
	return o
}

// WithDelimiter overrides the field delimiter used for delimited output.
func (o SaveOptions) WithDelimiter(d rune) SaveOptions {
	o.Delimiter = d
	return o
}

// FileExtension returns the complete file extension including compression
func (o SaveOptions) FileExtension() string {
	return o.Format.Extension() + o.Compression.Extension()
}

// Save writes a repaired table to path in the configured format. The
// output always uses one consistent delimiter, so a file saved after a
// repair no longer carries the header defect.
func Save(table *model.Table, path string, opts ...SaveOptions) error {
	options := NewSaveOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	if options.Format == OutputFormatXLSX {
		return saveXLSX(table, path)
	}
	return saveDelimited(table, path, options)
}

// saveDelimited writes CSV or TSV output with optional compression.
func saveDelimited(table *model.Table, path string, options SaveOptions) error {
	writer, closer, err := createFileWriter(path, options.Compression)
	if err != nil {
		return fmt.Errorf("delimfix: save %s: %w", path, err)
	}

	csvWriter := csv.NewWriter(writer)
	if options.Delimiter != 0 {
		csvWriter.Comma = options.Delimiter
	} else {
		csvWriter.Comma = options.Format.delimiter()
	}

	if err := csvWriter.Write(table.Header()); err != nil {
		_ = closer()
		return fmt.Errorf("delimfix: write header to %s: %w", path, err)
	}
	for _, record := range table.Records() {
		if err := csvWriter.Write(record); err != nil {
			_ = closer()
			return fmt.Errorf("delimfix: write record to %s: %w", path, err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		_ = closer()
		return fmt.Errorf("delimfix: flush %s: %w", path, err)
	}
	return closer()
}

// saveXLSX writes the table as a single-sheet Excel workbook.
func saveXLSX(table *model.Table, path string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := f.GetSheetName(0)

	headerRow := make([]any, len(table.Header()))
	for i, name := range table.Header() {
		headerRow[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("delimfix: write header sheet row: %w", err)
	}

	for i, record := range table.Records() {
		row := make([]any, len(record))
		for j, value := range record {
			row[j] = value
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("delimfix: cell name for row %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("delimfix: write sheet row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("delimfix: save %s: %w", path, err)
	}
	return nil
}
