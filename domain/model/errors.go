// Package model provides the domain model for delimfix.
package model

import "errors"

// ErrDuplicateColumnName is returned when a repaired header contains duplicate column names
var ErrDuplicateColumnName = errors.New("duplicate column name")
