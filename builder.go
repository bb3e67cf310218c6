package delimfix

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/delimfix/delimfix/domain/model"
)

// Builder configures and runs header-repairing reads. It collects input
// sources, the delimiter pair, the repair strategy, and the numeric
// convention before any file is touched.
//
// The typical usage pattern is:
//
//	builder, err := delimfix.NewBuilder().
//		AddPath("measurements.txt").
//		WithDelimiters('|', ';').
//		Build(ctx)
//	if err != nil {
//		return err
//	}
//	defer builder.Cleanup()
//	table, err := builder.Read(ctx)
type Builder struct {
	// paths contains regular file and directory paths
	paths []string
	// filesystems contains fs.FS instances
	filesystems []fs.FS
	// collectedPaths contains all file paths after Build validation
	collectedPaths []string
	// tempFiles tracks temporary files created for cleanup
	tempFiles []string
	// headerDelim is the delimiter the defective header line uses
	headerDelim rune
	// bodyDelim is the delimiter the body lines use
	bodyDelim rune
	// strategy selects the repair technique
	strategy Strategy
	// format is the numeric convention of body values
	format model.NumberFormat
	// collisionCheck makes StrategyReplaceAll scan the body first
	collisionCheck bool
}

// Default delimiters match the reference data this library was written
// for: pipe-delimited header over semicolon-delimited body.
const (
	// DefaultHeaderDelimiter is the delimiter assumed for the defective header
	DefaultHeaderDelimiter = '|'
	// DefaultBodyDelimiter is the delimiter assumed for body lines
	DefaultBodyDelimiter = ';'
)

// NewBuilder creates a new Builder with the default delimiters,
// StrategyRejoin, and the comma-decimal number format.
func NewBuilder() *Builder {
	return &Builder{
		paths:          make([]string, 0),
		filesystems:    make([]fs.FS, 0),
		collectedPaths: make([]string, 0),
		tempFiles:      make([]string, 0),
		headerDelim:    DefaultHeaderDelimiter,
		bodyDelim:      DefaultBodyDelimiter,
		strategy:       StrategyRejoin,
		format:         model.DecimalCommaFormat(),
	}
}

// AddPath adds a file or directory path. Directories contribute all
// supported files they contain, in lexical order.
// Returns the builder for method chaining.
func (b *Builder) AddPath(path string) *Builder {
	b.paths = append(b.paths, path)
	return b
}

// AddPaths adds multiple file or directory paths at once.
// Returns the builder for method chaining.
func (b *Builder) AddPaths(paths ...string) *Builder {
	b.paths = append(b.paths, paths...)
	return b
}

// AddFS adds all supported files from an fs.FS filesystem. This is
// particularly useful for embedded filesystems using go:embed. Matching
// files are copied to temporary files during Build; call Cleanup to
// remove them when done.
// Returns the builder for method chaining.
func (b *Builder) AddFS(filesystem fs.FS) *Builder {
	b.filesystems = append(b.filesystems, filesystem)
	return b
}

// WithHeaderDelimiter sets the delimiter the defective header uses.
// Returns the builder for method chaining.
func (b *Builder) WithHeaderDelimiter(d rune) *Builder {
	b.headerDelim = d
	return b
}

// WithBodyDelimiter sets the delimiter the body lines use.
// Returns the builder for method chaining.
func (b *Builder) WithBodyDelimiter(d rune) *Builder {
	b.bodyDelim = d
	return b
}

// WithDelimiters sets both delimiters at once.
// Returns the builder for method chaining.
func (b *Builder) WithDelimiters(headerDelim, bodyDelim rune) *Builder {
	b.headerDelim = headerDelim
	b.bodyDelim = bodyDelim
	return b
}

// WithStrategy selects the repair strategy.
// Returns the builder for method chaining.
func (b *Builder) WithStrategy(s Strategy) *Builder {
	b.strategy = s
	return b
}

// WithNumberFormat sets the numeric convention used for column type
// inference and typed value access.
// Returns the builder for method chaining.
func (b *Builder) WithNumberFormat(format model.NumberFormat) *Builder {
	b.format = format
	return b
}

// WithCollisionCheck makes StrategyReplaceAll scan the body for the
// header delimiter before replacing, failing with ErrDelimiterCollision
// instead of silently corrupting data. It has no effect on the other
// strategies.
// Returns the builder for method chaining.
func (b *Builder) WithCollisionCheck() *Builder {
	b.collisionCheck = true
	return b
}

// Build validates the configuration and collects all input files.
// It must be called before Read or Open. Directory paths are expanded
// to their supported files in lexical order, and fs.FS inputs are
// copied to temporary files.
//
// Returns the same builder instance for method chaining, or an error if
// validation fails.
func (b *Builder) Build(ctx context.Context) (*Builder, error) {
	if len(b.paths) == 0 && len(b.filesystems) == 0 {
		return nil, ErrNoInput
	}

	v := newValidator()
	if err := v.validateDelimiters(b.headerDelim, b.bodyDelim); err != nil {
		return nil, fmt.Errorf("delimfix: %w", err)
	}

	// Reset collected paths
	b.collectedPaths = make([]string, 0)

	for _, path := range b.paths {
		if err := v.validatePath(path); err != nil {
			return nil, err
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, classifyOpenError(path, err)
		}
		if info.IsDir() {
			files, err := collectDirectoryFiles(path)
			if err != nil {
				return nil, err
			}
			b.collectedPaths = append(b.collectedPaths, files...)
			continue
		}
		b.collectedPaths = append(b.collectedPaths, path)
	}

	for _, filesystem := range b.filesystems {
		if filesystem == nil {
			return nil, errors.New("delimfix: FS cannot be nil")
		}
		paths, err := b.processFSInput(ctx, filesystem)
		if err != nil {
			return nil, fmt.Errorf("delimfix: failed to process FS input: %w", err)
		}
		b.collectedPaths = append(b.collectedPaths, paths...)
	}

	if err := v.validateFinalState(b.collectedPaths, b.paths); err != nil {
		return nil, err
	}
	return b, nil
}

// Read repairs and parses all collected files sequentially and returns
// one Table. The fixed header is computed from the first file with the
// configured strategy; every following file gets that same fixed header
// substituted for its own defective one. Row order is file order, then
// within-file order. The first file that fails to parse aborts the
// whole read with no partial result.
func (b *Builder) Read(ctx context.Context) (*model.Table, error) {
	if len(b.collectedPaths) == 0 {
		return nil, fmt.Errorf("%w: did you call Build()?", ErrNoInput)
	}

	var (
		fixedHeader string
		header      model.Header
		records     []model.Record
		name        string
	)

	for i, path := range b.collectedPaths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("delimfix: read cancelled: %w", err)
		}

		var (
			repaired string
			err      error
		)
		if i == 0 {
			repaired, err = repairFile(path, b.strategy, b.headerDelim, b.bodyDelim, b.collisionCheck)
			if err != nil {
				return nil, err
			}
			fixedHeader, _ = headerSpan(repaired)
		} else {
			content, readErr := readFileContent(path)
			if readErr != nil {
				return nil, readErr
			}
			repaired, err = substituteHeader(content, fixedHeader)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", err, path)
			}
		}

		table, err := parseRepaired(repaired, path, b.bodyDelim, b.format)
		if err != nil {
			return nil, err
		}

		if i == 0 {
			name = table.Name()
			header = table.Header()
		}
		records = append(records, table.Records()...)
	}

	return model.NewTable(name, header, records, b.format), nil
}

// Open reads all collected files like Read and loads the resulting
// table into an in-memory SQLite database, with column types taken from
// inference. The caller owns the returned connection.
func (b *Builder) Open(ctx context.Context) (*sql.DB, error) {
	table, err := b.Read(ctx)
	if err != nil {
		return nil, err
	}
	return openDatabase(ctx, table)
}

// readFileContent loads a file's full (decompressed) content.
func readFileContent(path string) (string, error) {
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
	return string(content), nil
}

// collectDirectoryFiles returns the supported files directly inside
// dirPath in lexical order. The directory walk itself belongs to the
// caller's collaborator; only the immediate entries are taken.
func collectDirectoryFiles(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, classifyOpenError(dirPath, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if model.IsSupportedFile(entry.Name()) {
			files = append(files, filepath.Join(dirPath, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// processFSInput copies all supported files from an fs.FS to temporary
// files and returns their paths in lexical order.
func (b *Builder) processFSInput(ctx context.Context, filesystem fs.FS) ([]string, error) {
	var matches []string
	err := fs.WalkDir(filesystem, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if model.IsSupportedFile(path) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk filesystem: %w", err)
	}
	if len(matches) == 0 {
		return nil, errors.New("no supported files found in filesystem")
	}
	sort.Strings(matches)

	paths := make([]string, 0, len(matches))
	for _, match := range matches {
		tempPath, err := b.copyFSToTemp(ctx, filesystem, match)
		if err != nil {
			return nil, fmt.Errorf("failed to copy file %s: %w", match, err)
		}
		paths = append(paths, tempPath)
	}
	return paths, nil
}

// copyFSToTemp copies a file from fs.FS to a temporary file.
func (b *Builder) copyFSToTemp(_ context.Context, filesystem fs.FS, path string) (string, error) {
	file, err := filesystem.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open FS file: %w", err)
	}
	defer file.Close()

	ext := filepath.Ext(path)
	tempFile, err := os.CreateTemp("", "delimfix-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tempFile.Close()

	if _, err := io.Copy(tempFile, file); err != nil {
		if removeErr := os.Remove(tempFile.Name()); removeErr != nil {
			return "", errors.Join(
				fmt.Errorf("failed to copy content: %w", err),
				fmt.Errorf("failed to cleanup temp file: %w", removeErr),
			)
		}
		return "", fmt.Errorf("failed to copy content: %w", err)
	}

	b.tempFiles = append(b.tempFiles, tempFile.Name())
	return tempFile.Name(), nil
}

// Cleanup removes all temporary files created during filesystem
// processing. It is safe to call multiple times.
func (b *Builder) Cleanup() error {
	var errs []error
	for _, path := range b.tempFiles {
		if err := os.Remove(path); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove temp file %s: %w", path, err))
		}
	}
	b.tempFiles = nil
	return errors.Join(errs...)
}
