package model

import (
	"strconv"
	"strings"
)

// NumberFormat describes how numeric field values are written: which
// rune marks the decimal point and which rune groups thousands.
// The zero value is not useful; use NewNumberFormat or one of the
// predefined formats.
type NumberFormat struct {
	// DecimalMark separates the integer part from the fraction.
	DecimalMark rune
	// GroupingMark separates thousands groups and is ignored when parsing.
	GroupingMark rune
}

// DecimalCommaFormat is the comma-decimal convention ("1,73", "1.234,5")
// used by the reference data this library was written for.
func DecimalCommaFormat() NumberFormat {
	return NumberFormat{DecimalMark: ',', GroupingMark: '.'}
}

// DecimalPointFormat is the plain point-decimal convention ("1.73").
func DecimalPointFormat() NumberFormat {
	return NumberFormat{DecimalMark: '.', GroupingMark: ','}
}

// NewNumberFormat creates a NumberFormat with explicit marks.
func NewNumberFormat(decimalMark, groupingMark rune) NumberFormat {
	return NumberFormat{DecimalMark: decimalMark, GroupingMark: groupingMark}
}

// ParseFloat parses a numeric field value written with this format.
// Grouping marks are dropped and the decimal mark is normalized to a
// point before strconv does the actual conversion.
func (nf NumberFormat) ParseFloat(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, strconv.ErrSyntax
	}

	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch r {
		case nf.GroupingMark:
			// dropped
		case nf.DecimalMark:
			b.WriteRune('.')
		default:
			b.WriteRune(r)
		}
	}
	return strconv.ParseFloat(b.String(), 64)
}

// IsNumeric reports whether the value parses under this format.
func (nf NumberFormat) IsNumeric(value string) bool {
	_, err := nf.ParseFloat(value)
	return err == nil
}
