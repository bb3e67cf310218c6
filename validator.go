package delimfix

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/delimfix/delimfix/domain/model"
)

// validator handles input validation for Builder
type validator struct{}

// newValidator creates a new validator instance
func newValidator() *validator {
	return &validator{}
}

// validatePath validates a single file or directory path
func (v *validator) validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return classifyOpenError(path, err)
	}

	// For files, check if they are supported
	if !info.IsDir() {
		if !model.IsSupportedFile(path) {
			return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
		}
	}
	return nil
}

// validateDelimiters rejects delimiter pairs the CSV parser cannot work with.
func (v *validator) validateDelimiters(headerDelim, bodyDelim rune) error {
	if bodyDelim == 0 {
		return errors.New("body delimiter must be set")
	}
	if headerDelim == 0 {
		return errors.New("header delimiter must be set")
	}
	if bodyDelim == '\n' || bodyDelim == '\r' || headerDelim == '\n' || headerDelim == '\r' {
		return errors.New("delimiters cannot be line terminators")
	}
	return nil
}

// validateFinalState ensures Build collected at least one usable input.
func (v *validator) validateFinalState(collectedPaths, originalPaths []string) error {
	if len(collectedPaths) == 0 {
		for _, path := range originalPaths {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				return errors.New("no supported files found in directory")
			}
		}
		return ErrNoInput
	}
	return nil
}
