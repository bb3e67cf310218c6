package model

import "testing"

func TestInferColumnType(t *testing.T) {
	t.Parallel()

	commaFormat := DecimalCommaFormat()

	tests := []struct {
		name     string
		values   []string
		format   NumberFormat
		expected ColumnType
	}{
		{
			name:     "Text values",
			values:   []string{"danno", "manno", "weirdo"},
			format:   commaFormat,
			expected: ColumnTypeText,
		},
		{
			name:     "Comma decimal values",
			values:   []string{"1,73", "1,83", "1,93"},
			format:   commaFormat,
			expected: ColumnTypeReal,
		},
		{
			name:     "Integer values",
			values:   []string{"1", "2", "3"},
			format:   commaFormat,
			expected: ColumnTypeInteger,
		},
		{
			name:     "ISO dates",
			values:   []string{"2001-05-22", "2002-06-23"},
			format:   commaFormat,
			expected: ColumnTypeDatetime,
		},
		{
			name:     "ISO timestamps",
			values:   []string{"2001-05-22T10:30:00", "2002-06-23 11:45:00"},
			format:   commaFormat,
			expected: ColumnTypeDatetime,
		},
		{
			name:     "Mixed integers and reals promote to real",
			values:   []string{"1", "1,5"},
			format:   commaFormat,
			expected: ColumnTypeReal,
		},
		{
			name:     "Mixed text and numbers fall back to text",
			values:   []string{"1,5", "danno"},
			format:   commaFormat,
			expected: ColumnTypeText,
		},
		{
			name:     "Empty values are skipped",
			values:   []string{"", "1,5", ""},
			format:   commaFormat,
			expected: ColumnTypeReal,
		},
		{
			name:     "All empty defaults to text",
			values:   []string{"", ""},
			format:   commaFormat,
			expected: ColumnTypeText,
		},
		{
			name:     "No values defaults to text",
			values:   nil,
			format:   commaFormat,
			expected: ColumnTypeText,
		},
		{
			name:     "Point decimal under point format",
			values:   []string{"1.73", "1.83"},
			format:   DecimalPointFormat(),
			expected: ColumnTypeReal,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := InferColumnType(tt.values, tt.format); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestInferColumnsInfo(t *testing.T) {
	t.Parallel()

	header := NewHeader([]string{"name", "kgs"})
	records := []Record{
		NewRecord([]string{"danno", "75,4"}),
		NewRecord([]string{"manno", "85,4"}),
	}

	info := InferColumnsInfo(header, records, DecimalCommaFormat())
	if len(info) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(info))
	}
	if info[0].Name != "name" || info[0].Type != ColumnTypeText {
		t.Errorf("unexpected first column: %+v", info[0])
	}
	if info[1].Name != "kgs" || info[1].Type != ColumnTypeReal {
		t.Errorf("unexpected second column: %+v", info[1])
	}
}

func TestInferColumnsInfo_NoRecords(t *testing.T) {
	t.Parallel()

	info := InferColumnsInfo(NewHeader([]string{"a", "b"}), nil, DecimalCommaFormat())
	for _, col := range info {
		if col.Type != ColumnTypeText {
			t.Errorf("expected TEXT for %s, got %v", col.Name, col.Type)
		}
	}

	if info := InferColumnsInfo(nil, nil, DecimalCommaFormat()); info != nil {
		t.Errorf("expected nil for empty header, got %v", info)
	}
}
