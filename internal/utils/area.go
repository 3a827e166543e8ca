package utils

import "math"

// ValidArea reports whether a is a usable planting area: finite and above zero.
func ValidArea(a float64) bool {
	return !math.IsNaN(a) && !math.IsInf(a, 0) && a > 0
}
