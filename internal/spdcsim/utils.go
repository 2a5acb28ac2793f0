package spdcsim

import (
	"math"
	"math/cmplx"
)

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

// allFinite reports whether every sample of a complex field is finite.
func allFinite(a []complex128) bool {
	for _, v := range a {
		if !isFinite(real(v)) || !isFinite(imag(v)) {
			return false
		}
	}
	return true
}

func conjAll(a []complex128) []complex128 {
	out := make([]complex128, len(a))
	for i, v := range a {
		out[i] = cmplx.Conj(v)
	}
	return out
}

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func iclamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
