package delimfix

import (
	"context"
	"database/sql"

	"github.com/delimfix/delimfix/domain/model"
)

// Option configures a read started through the convenience functions.
// Options mirror the Builder's With* methods.
type Option func(*Builder)

// WithHeaderDelimiter sets the delimiter the defective header line uses.
func WithHeaderDelimiter(d rune) Option {
	return func(b *Builder) { b.WithHeaderDelimiter(d) }
}

// WithBodyDelimiter sets the delimiter the body lines use.
func WithBodyDelimiter(d rune) Option {
	return func(b *Builder) { b.WithBodyDelimiter(d) }
}

// WithDelimiters sets both delimiters at once.
func WithDelimiters(headerDelim, bodyDelim rune) Option {
	return func(b *Builder) { b.WithDelimiters(headerDelim, bodyDelim) }
}

// WithStrategy selects the repair strategy.
func WithStrategy(s Strategy) Option {
	return func(b *Builder) { b.WithStrategy(s) }
}

// WithNumberFormat sets the numeric convention of body values.
func WithNumberFormat(format model.NumberFormat) Option {
	return func(b *Builder) { b.WithNumberFormat(format) }
}

// WithCollisionCheck makes StrategyReplaceAll fail instead of corrupting
// data when the header delimiter appears in the body.
func WithCollisionCheck() Option {
	return func(b *Builder) { b.WithCollisionCheck() }
}

// Read repairs the mis-delimited header of the file at path and parses
// the whole file into a Table using the body delimiter consistently.
//
// Example usage:
//
//	table, err := delimfix.Read("measurements.txt",
//		delimfix.WithDelimiters('|', ';'))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for i := range table.Records() {
//		kgs, _ := table.Float64(i, table.ColumnIndex("kgs"))
//		fmt.Println(kgs)
//	}
func Read(path string, opts ...Option) (*model.Table, error) {
	return ReadContext(context.Background(), path, opts...)
}

// ReadContext is Read with context support. The context is checked
// between file operations; a read that is already running is not
// interrupted mid-file.
func ReadContext(ctx context.Context, path string, opts ...Option) (*model.Table, error) {
	return ReadAllContext(ctx, []string{path}, opts...)
}

// ReadAll reads an ordered list of files that share the identical
// defective header. The fixed header is computed once from the first
// file; every file's rows are concatenated in list order, then
// within-file order. The first file that fails aborts the whole read
// with no partial result.
func ReadAll(paths []string, opts ...Option) (*model.Table, error) {
	return ReadAllContext(context.Background(), paths, opts...)
}

// ReadAllContext is ReadAll with context support.
func ReadAllContext(ctx context.Context, paths []string, opts ...Option) (*model.Table, error) {
	builder := NewBuilder().AddPaths(paths...)
	for _, opt := range opts {
		opt(builder)
	}

	built, err := builder.Build(ctx)
	if err != nil {
		return nil, err
	}
	defer built.Cleanup()

	return built.Read(ctx)
}

// Open repairs and reads the files like ReadAll and loads the result
// into an in-memory SQLite database so the repaired data can be
// queried with SQL. The caller owns the returned connection.
//
// Example usage:
//
//	db, err := delimfix.Open([]string{"measurements.txt"},
//		delimfix.WithDelimiters('|', ';'))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close()
//
//	row := db.QueryRow(`SELECT AVG(kgs) FROM measurements`)
func Open(paths []string, opts ...Option) (*sql.DB, error) {
	return OpenContext(context.Background(), paths, opts...)
}

// OpenContext is Open with context support.
func OpenContext(ctx context.Context, paths []string, opts ...Option) (*sql.DB, error) {
	builder := NewBuilder().AddPaths(paths...)
	for _, opt := range opts {
		opt(builder)
	}

	built, err := builder.Build(ctx)
	if err != nil {
		return nil, err
	}
	defer built.Cleanup()

	return built.Open(ctx)
}
