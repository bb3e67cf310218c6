package model

import "testing"

func TestIsSupportedFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fileName string
		expected bool
	}{
		{
			name:     "CSV file",
			fileName: "measurements.csv",
			expected: true,
		},
		{
			name:     "TSV file",
			fileName: "measurements.tsv",
			expected: true,
		},
		{
			name:     "Plain text file",
			fileName: "measurements.txt",
			expected: true,
		},
		{
			name:     "Compressed CSV file",
			fileName: "measurements.csv.gz",
			expected: true,
		},
		{
			name:     "Zstd compressed text file",
			fileName: "measurements.txt.zst",
			expected: true,
		},
		{
			name:     "Uppercase extension",
			fileName: "MEASUREMENTS.CSV",
			expected: true,
		},
		{
			name:     "JSON file",
			fileName: "measurements.json",
			expected: false,
		},
		{
			name:     "Bare compression extension",
			fileName: "measurements.gz",
			expected: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsSupportedFile(tt.fileName); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSupportedFileExtPatterns(t *testing.T) {
	t.Parallel()

	patterns := SupportedFileExtPatterns()
	// 3 base formats x (uncompressed + 4 compression variants)
	if len(patterns) != 15 {
		t.Errorf("expected 15 patterns, got %d", len(patterns))
	}
}
