package delimfix

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/delimfix/delimfix/domain/model"
)

// parseRepaired parses repaired file content with the body delimiter
// and builds a Table from it. The CSV reader enforces the invariant
// that every body line has exactly as many fields as the header.
func parseRepaired(content, path string, bodyDelim rune, format model.NumberFormat) (*model.Table, error) {
	csvReader := csv.NewReader(strings.NewReader(content))
	csvReader.Comma = bodyDelim

	records, err := csvReader.ReadAll()
	if err != nil {
		if errors.Is(err, csv.ErrFieldCount) {
			return nil, fmt.Errorf("%w: %s: %w", ErrFieldCountMismatch, path, err)
		}
		return nil, fmt.Errorf("delimfix: parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	if err := validateColumnNames(records[0]); err != nil {
		return nil, fmt.Errorf("delimfix: %s: %w", path, err)
	}

	header := model.NewHeader(records[0])
	tableRecords := make([]model.Record, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		tableRecords = append(tableRecords, model.NewRecord(records[i]))
	}

	return model.NewTable(model.TableFromFilePath(path), header, tableRecords, format), nil
}

// validateColumnNames rejects headers with duplicate column names.
func validateColumnNames(columns []string) error {
	seen := make(map[string]struct{}, len(columns))
	for _, name := range columns {
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s", model.ErrDuplicateColumnName, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// substituteHeader drops the original header line of content and puts
// fixedHeader in its place. Used by multi-file reads, where the fixed
// header is computed once from the first file and reused for the rest.
func substituteHeader(content, fixedHeader string) (string, error) {
	if content == "" {
		return "", ErrEmptyFile
	}
	_, bodyOffset := headerSpan(content)
	terminator := lineTerminator(content)
	if terminator == "" {
		terminator = "\n"
	}
	return fixedHeader + terminator + content[bodyOffset:], nil
}
