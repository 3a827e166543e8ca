package utils

import (
	"math"
	"testing"
)

func TestValidArea(t *testing.T) {
	tests := []struct {
		area float64
		want bool
	}{
		{1.5, true},
		{0.01, true},
		{0, false},
		{-2, false},
		{math.NaN(), false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
	}
	for _, tt := range tests {
		if got := ValidArea(tt.area); got != tt.want {
			t.Errorf("ValidArea(%g) = %v, want %v", tt.area, got, tt.want)
		}
	}
}
