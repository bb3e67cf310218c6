package model

import "strings"

// File extensions accepted as delimited-text input.
const (
	// ExtCSV is the CSV file extension
	ExtCSV = ".csv"
	// ExtTSV is the TSV file extension
	ExtTSV = ".tsv"
	// ExtTXT is the plain text file extension
	ExtTXT = ".txt"
	// ExtGZ is the gzip compression extension
	ExtGZ = ".gz"
	// ExtBZ2 is the bzip2 compression extension
	ExtBZ2 = ".bz2"
	// ExtXZ is the xz compression extension
	ExtXZ = ".xz"
	// ExtZSTD is the zstd compression extension
	ExtZSTD = ".zst"
)

// IsSupportedFile checks if the file has a supported extension.
func IsSupportedFile(fileName string) bool {
	fileName = strings.ToLower(fileName)

	// Remove compression extensions
	for _, ext := range []string{ExtGZ, ExtBZ2, ExtXZ, ExtZSTD} {
		if strings.HasSuffix(fileName, ext) {
			fileName = strings.TrimSuffix(fileName, ext)
			break
		}
	}

	return strings.HasSuffix(fileName, ExtCSV) ||
		strings.HasSuffix(fileName, ExtTSV) ||
		strings.HasSuffix(fileName, ExtTXT)
}

// SupportedFileExtPatterns returns all supported file patterns for glob matching.
func SupportedFileExtPatterns() []string {
	baseExts := []string{ExtCSV, ExtTSV, ExtTXT}
	compressionExts := []string{"", ExtGZ, ExtBZ2, ExtXZ, ExtZSTD}

	var patterns []string
	for _, baseExt := range baseExts {
		for _, compressionExt := range compressionExts {
			patterns = append(patterns, "*"+baseExt+compressionExt)
		}
	}
	return patterns
}
