package impactor

import (
	"math"
	"testing"
)

func TestFormatMagnitude(t *testing.T) {
	for _, tc := range []struct {
		value float64
		exp   string
	}{
		{1.5e12, "1.50T"},
		{7.5e9, "7.50B"},
		{2e6, "2.00M"},
		{2500, "2.50K"},
		{3.14159, "3.14"},
		{0, "0.00"},
		{-4.2e9, "-4.20B"},
	} {
		if got := FormatMagnitude(tc.value); got != tc.exp {
			t.Fatalf("FormatMagnitude(%v) = %q, expected %q", tc.value, got, tc.exp)
		}
	}
	if got := FormatMagnitude(math.Inf(1)); got != "+Inf" {
		t.Fatalf("infinite input mangled: %q", got)
	}
}
