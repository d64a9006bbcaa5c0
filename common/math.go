package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// NearlyEqual reports whether a and b differ by no more than tol.
func NearlyEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
