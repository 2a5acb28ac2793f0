package spdcsim

import "math"

// farFieldNorm scales far-field amplitudes by (2*MaxX)^2/(M^2*lam*R) so that
// signal and idler spectra stay directly comparable despite their different
// wavelengths.
func farFieldNorm(cr *Crystal, lam, r Real) Real {
	m2 := Real(len(cr.X) * len(cr.Y))
	return (2 * cr.MaxX) * (2 * cr.MaxX) / (m2 * lam * r)
}

// farField maps a near-field amplitude to its centered angular-spectrum
// representation, scaled by norm. Pure: the input is not modified.
func (f *fft2) farField(a []complex128, norm Real) []complex128 {
	t := ifftShift(a, f.nx, f.ny)
	f.forward(t)
	t = fftShift(t, f.nx, f.ny)
	cn := complex(norm, 0)
	for i := range t {
		t[i] *= cn
	}
	return t
}

// ffPositionAxis returns far-field screen positions for an n-point grid of
// spacing d observed at distance r, for vacuum wave number k0. The axis is
// centered: entry n/2 sits at zero.
func ffPositionAxis(d Real, n int, k0, r Real) []Real {
	lam := 2 * math.Pi / k0
	axis := make([]Real, n)
	for i := range axis {
		axis[i] = lam * r * Real(i-n/2) / (Real(n) * d)
	}
	return axis
}
