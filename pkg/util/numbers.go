package util

import "math"

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LastN returns at most the last n elements of s (the slice itself when
// shorter). The result aliases s.
func LastN(s []float64, n int) []float64 {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
