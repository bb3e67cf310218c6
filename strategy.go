package delimfix

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Strategy selects how the mis-delimited header line is repaired before
// the file content is handed to the CSV parser. All strategies produce
// byte-identical repaired content for well-formed input; they differ in
// how much of the file they touch and where the header skip happens.
type Strategy int

const (
	// StrategyRejoin splits the content into lines, rewrites the header
	// line, and joins everything back together. The default.
	StrategyRejoin Strategy = iota

	// StrategyReplaceAll replaces every occurrence of the header
	// delimiter in the whole file, header and body alike.
	//
	// This is only safe when the header delimiter is guaranteed absent
	// from data values: a body field that legitimately contains the
	// character is silently corrupted. Use WithCollisionCheck to turn
	// that precondition into a checked error.
	StrategyReplaceAll

	// StrategySplice slices the content just past the original header
	// line (accounting for \n or \r\n terminators) and prepends the
	// repaired header, leaving the body untouched and unsplit.
	StrategySplice

	// StrategySeek performs the same skip as StrategySplice at the
	// storage layer: it seeks the open file past the header line and
	// reads only the remainder, so the original header is never loaded
	// a second time. Only valid for uncompressed regular files.
	StrategySeek
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyRejoin:
		return "rejoin"
	case StrategyReplaceAll:
		return "replace-all"
	case StrategySplice:
		return "splice"
	case StrategySeek:
		return "seek"
	default:
		return "unknown"
	}
}

// fixHeaderLine rewrites a header line so it uses the body delimiter.
// A header that already uses the body delimiter comes back unchanged.
func fixHeaderLine(header string, headerDelim, bodyDelim rune) string {
	return strings.ReplaceAll(header, string(headerDelim), string(bodyDelim))
}

// headerSpan returns the header line of content (without its
// terminator) and the byte offset of the first body byte. The offset
// accounts for \n and \r\n terminators. A file without a newline is all
// header.
func headerSpan(content string) (header string, bodyOffset int) {
	idx := strings.IndexByte(content, '\n')
	if idx < 0 {
		return content, len(content)
	}
	header = content[:idx]
	bodyOffset = idx + 1
	if strings.HasSuffix(header, "\r") {
		header = header[:len(header)-1]
	}
	return header, bodyOffset
}

// lineTerminator returns the terminator the header line uses, so the
// repaired header can be re-attached without changing the file's
// line-ending convention.
func lineTerminator(content string) string {
	idx := strings.IndexByte(content, '\n')
	if idx < 0 {
		return ""
	}
	if idx > 0 && content[idx-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// repairContent applies an in-memory repair strategy to the raw file
// content and returns the repaired text.
func repairContent(content string, strategy Strategy, headerDelim, bodyDelim rune, collisionCheck bool) (string, error) {
	if content == "" {
		return "", ErrEmptyFile
	}

	switch strategy {
	case StrategyRejoin:
		return repairByRejoin(content, headerDelim, bodyDelim), nil
	case StrategyReplaceAll:
		return repairByReplaceAll(content, headerDelim, bodyDelim, collisionCheck)
	case StrategySplice, StrategySeek:
		// Seek reduces to splice once the content is already in memory
		// (reader inputs, compressed files read through a decompressor).
		return repairBySplice(content, headerDelim, bodyDelim), nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnsupportedStrategy, int(strategy))
	}
}

// repairByRejoin reads the content line by line, rewrites the first
// line, and rejoins.
func repairByRejoin(content string, headerDelim, bodyDelim rune) string {
	lines := strings.Split(content, "\n")
	lines[0] = fixHeaderLine(lines[0], headerDelim, bodyDelim)
	return strings.Join(lines, "\n")
}

// repairByReplaceAll replaces the header delimiter everywhere in the
// file. When collisionCheck is set, the body is scanned first and a
// hit fails the repair instead of corrupting the data.
func repairByReplaceAll(content string, headerDelim, bodyDelim rune, collisionCheck bool) (string, error) {
	if collisionCheck {
		_, bodyOffset := headerSpan(content)
		if strings.ContainsRune(content[bodyOffset:], headerDelim) {
			return "", fmt.Errorf("%w: %q", ErrDelimiterCollision, headerDelim)
		}
	}
	return strings.ReplaceAll(content, string(headerDelim), string(bodyDelim)), nil
}

// repairBySplice computes where the body starts, takes the substring
// from there, and prepends the repaired header.
func repairBySplice(content string, headerDelim, bodyDelim rune) string {
	header, bodyOffset := headerSpan(content)
	fixed := fixHeaderLine(header, headerDelim, bodyDelim)
	return fixed + lineTerminator(content) + content[bodyOffset:]
}

// repairBySeek opens the file for random access, reads just the header
// line, seeks past it, and reads the remainder from that position.
// The header skip happens at the storage layer, so the body is read
// exactly once and the original header is never buffered twice.
func repairBySeek(path string, headerDelim, bodyDelim rune) (string, error) {
	if DetectCompressionType(path) != CompressionNone {
		return "", fmt.Errorf("%w: %s", ErrSeekUnsupported, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", classifyOpenError(path, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	headerLine, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("delimfix: read header of %s: %w", path, err)
	}
	if headerLine == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	terminator := ""
	header := headerLine
	if strings.HasSuffix(header, "\n") {
		header = strings.TrimSuffix(header, "\n")
		terminator = "\n"
		if strings.HasSuffix(header, "\r") {
			header = strings.TrimSuffix(header, "\r")
			terminator = "\r\n"
		}
	}

	// Re-read the body from the exact byte offset where it starts.
	bodyOffset := int64(len(headerLine))
	if _, err := file.Seek(bodyOffset, io.SeekStart); err != nil {
		return "", fmt.Errorf("delimfix: seek %s: %w", path, err)
	}
	body, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("delimfix: read body of %s: %w", path, err)
	}

	fixed := fixHeaderLine(header, headerDelim, bodyDelim)
	return fixed + terminator + string(body), nil
}

// repairFile reads the file at path and returns its repaired content
// using the configured strategy. StrategySeek is the only strategy that
// operates on the open file itself; the rest load the (possibly
// decompressed) content first.
func repairFile(path string, strategy Strategy, headerDelim, bodyDelim rune, collisionCheck bool) (string, error) {
	if strategy == StrategySeek {
		return repairBySeek(path, headerDelim, bodyDelim)
	}

	reader, closer, err := openFileReader(path)
	if err != nil {
		return "", err
	}
	defer closer()

	content, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("delimfix: read %s: %w", path, err)
	}
	if len(content) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	return repairContent(string(content), strategy, headerDelim, bodyDelim, collisionCheck)
}
