package delimfix

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrFileNotFound indicates an input path that does not exist
	ErrFileNotFound = errors.New("delimfix: file not found")

	// ErrPermissionDenied indicates an input file that cannot be read
	ErrPermissionDenied = errors.New("delimfix: permission denied")

	// ErrEmptyFile indicates an input file with no content
	ErrEmptyFile = errors.New("delimfix: empty file")

	// ErrFieldCountMismatch indicates that the repaired header and a body
	// line disagree on the number of fields
	ErrFieldCountMismatch = errors.New("delimfix: header and body field counts differ")

	// ErrDelimiterCollision indicates that the header delimiter character
	// appears inside body data, so a whole-file replace would corrupt it
	ErrDelimiterCollision = errors.New("delimfix: header delimiter found in body data")

	// ErrSeekUnsupported indicates that the seek strategy was requested
	// for an input it cannot handle (compressed or non-regular files)
	ErrSeekUnsupported = errors.New("delimfix: seek strategy requires an uncompressed regular file")

	// ErrUnsupportedStrategy indicates an unknown repair strategy value
	ErrUnsupportedStrategy = errors.New("delimfix: unsupported repair strategy")

	// ErrUnsupportedFormat indicates an unsupported file extension
	ErrUnsupportedFormat = errors.New("delimfix: unsupported file format")

	// ErrNoInput indicates that no input paths were configured
	ErrNoInput = errors.New("delimfix: no input files")
)

// classifyOpenError maps an os open/stat failure onto the package's
// sentinel errors while keeping the original error in the chain.
func classifyOpenError(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("delimfix: open %s: %w", path, err)
	}
}
