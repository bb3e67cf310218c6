package model

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Datetime patterns recognized during column inference. The repaired
// reference data carries ISO dates, but files in the wild mix in
// timestamps, so the common ISO variants are accepted too.
var datetimePatterns = []struct {
	pattern *regexp.Regexp
	formats []string
}{
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`),
		[]string{time.RFC3339, time.RFC3339Nano},
	},
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"2006-01-02T15:04:05", "2006-01-02T15:04:05.000"},
	},
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"2006-01-02 15:04:05", "2006-01-02 15:04:05.000"},
	},
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		[]string{"2006-01-02"},
	},
}

// isDatetime checks if a string value represents a datetime.
func isDatetime(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}

	for _, dp := range datetimePatterns {
		if dp.pattern.MatchString(value) {
			for _, format := range dp.formats {
				if _, err := time.Parse(format, value); err == nil {
					return true
				}
			}
		}
	}
	return false
}

// parseDatetime parses a value that isDatetime accepted.
func parseDatetime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, dp := range datetimePatterns {
		if dp.pattern.MatchString(value) {
			var lastErr error
			for _, format := range dp.formats {
				t, err := time.Parse(format, value)
				if err == nil {
					return t, nil
				}
				lastErr = err
			}
			return time.Time{}, lastErr
		}
	}
	return time.Parse("2006-01-02", value)
}

// InferColumnType infers the column type from a slice of string values.
// Numeric detection honors the given NumberFormat, so "1,73" infers
// REAL under the comma-decimal convention.
func InferColumnType(values []string, format NumberFormat) ColumnType {
	if len(values) == 0 {
		return ColumnTypeText
	}

	hasDatetime := false
	hasReal := false
	hasInteger := false
	hasText := false

	for _, value := range values {
		// Skip empty values for type inference
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		// Check if it's a datetime first (before checking numbers)
		if isDatetime(value) {
			hasDatetime = true
			continue
		}

		// Try to parse as integer
		if _, err := strconv.ParseInt(value, 10, 64); err == nil {
			hasInteger = true
			continue
		}

		// Try to parse as a real number under the configured format
		if format.IsNumeric(value) {
			hasReal = true
			continue
		}

		// If it's not a number or datetime, it's text
		hasText = true
		break // If any value is text, the whole column is text
	}

	// Priority: TEXT > DATETIME > REAL > INTEGER
	if hasText {
		return ColumnTypeText
	}
	if hasDatetime {
		return ColumnTypeDatetime
	}
	if hasReal {
		return ColumnTypeReal
	}
	if hasInteger {
		return ColumnTypeInteger
	}

	// Default to TEXT if no values were found
	return ColumnTypeText
}

// InferColumnsInfo infers column information from header and data records.
func InferColumnsInfo(header Header, records []Record, format NumberFormat) []ColumnInfo {
	columnCount := len(header)
	if columnCount == 0 {
		return nil
	}

	columns := make([]ColumnInfo, columnCount)
	for i, name := range header {
		columns[i] = ColumnInfo{
			Name: name,
			Type: ColumnTypeText,
		}
	}

	if len(records) == 0 {
		return columns
	}

	for i := 0; i < columnCount; i++ {
		var values []string
		for _, record := range records {
			if i < len(record) {
				values = append(values, record[i])
			}
		}
		columns[i].Type = InferColumnType(values, format)
	}

	return columns
}
