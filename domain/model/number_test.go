package model

import (
	"math"
	"testing"
)

func TestNumberFormat_ParseFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  NumberFormat
		value   string
		want    float64
		wantErr bool
	}{
		{
			name:   "comma decimal",
			format: DecimalCommaFormat(),
			value:  "1,73",
			want:   1.73,
		},
		{
			name:   "comma decimal with grouping",
			format: DecimalCommaFormat(),
			value:  "1.234,5",
			want:   1234.5,
		},
		{
			name:   "point decimal",
			format: DecimalPointFormat(),
			value:  "1.73",
			want:   1.73,
		},
		{
			name:   "point decimal with grouping",
			format: DecimalPointFormat(),
			value:  "1,234.5",
			want:   1234.5,
		},
		{
			name:   "integer value",
			format: DecimalCommaFormat(),
			value:  "42",
			want:   42,
		},
		{
			name:   "surrounding whitespace",
			format: DecimalCommaFormat(),
			value:  " 75,4 ",
			want:   75.4,
		},
		{
			name:    "text value",
			format:  DecimalCommaFormat(),
			value:   "danno",
			wantErr: true,
		},
		{
			name:    "empty value",
			format:  DecimalCommaFormat(),
			value:   "",
			wantErr: true,
		},
		{
			name:    "date is not a number",
			format:  DecimalCommaFormat(),
			value:   "2001-05-22",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.format.ParseFloat(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNumberFormat_IsNumeric(t *testing.T) {
	t.Parallel()

	format := DecimalCommaFormat()
	if !format.IsNumeric("91,3") {
		t.Error("expected 91,3 to be numeric")
	}
	if format.IsNumeric("weirdo") {
		t.Error("expected weirdo to not be numeric")
	}
}
