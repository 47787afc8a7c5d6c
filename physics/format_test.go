package physics

import (
	"math"
	"testing"
)

func TestFormatNum(t *testing.T) {
	tests := []struct {
		num  float64
		unit string
		want string
	}{
		{0, "", "0"},
		{73, " m", "73 m"},
		{999.99, "", "999.99"},
		{1000, " kg", "1,000 kg"},
		{12345.678, "", "12,346"},
		{-56789, " m/s", "-56,789 m/s"},
		{1234567, "", "1.2346e+06"},
		{0.00012345, "", "0.00012345"},
	}
	for _, tt := range tests {
		if got := FormatNum(tt.num, tt.unit); got != tt.want {
			t.Errorf("FormatNum(%v, %q) = %q, want %q", tt.num, tt.unit, got, tt.want)
		}
	}
}

func TestFormatNumNaN(t *testing.T) {
	if got := FormatNum(math.NaN(), " m"); got != "" {
		t.Errorf("FormatNum(NaN) = %q, want empty", got)
	}
	if got := FormatNumRounded(math.NaN(), " m", 2); got != "" {
		t.Errorf("FormatNumRounded(NaN) = %q, want empty", got)
	}
}

func TestFormatNumRounded(t *testing.T) {
	tests := []struct {
		num      float64
		decimals int
		want     string
	}{
		{3.14159, 2, "3.14"},
		{3.14159, 0, "3"},
		{12345.678, 1, "12,346"},
		{-2.71828, 3, "-2.718"},
	}
	for _, tt := range tests {
		if got := FormatNumRounded(tt.num, "", tt.decimals); got != tt.want {
			t.Errorf("FormatNumRounded(%v, %d) = %q, want %q", tt.num, tt.decimals, got, tt.want)
		}
	}
}
