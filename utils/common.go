package utils

import "math"

// FirstNonFinite returns the index of the first NaN or Inf in data, or -1.
func FirstNonFinite(data []float64) int {
	for i, val := range data {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return i
		}
	}
	return -1
}
