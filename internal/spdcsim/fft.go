package spdcsim

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// fft2 holds cached FFT plans for one nx x ny grid. Transforms are
// unnormalized in both directions; callers own the 1/(nx*ny) scaling after a
// round trip.
type fft2 struct {
	nx, ny int
	row    *fourier.CmplxFFT
	col    *fourier.CmplxFFT
	buf    []complex128
}

func newFFT2(nx, ny int) *fft2 {
	return &fft2{
		nx:  nx,
		ny:  ny,
		row: fourier.NewCmplxFFT(ny),
		col: fourier.NewCmplxFFT(nx),
		buf: make([]complex128, imax(nx, ny)),
	}
}

func (f *fft2) forward(a []complex128) { f.transform(a, true) }
func (f *fft2) inverse(a []complex128) { f.transform(a, false) }

// transform runs the 2D DFT in place, rows then columns.
func (f *fft2) transform(a []complex128, forward bool) {
	for i := 0; i < f.nx; i++ {
		row := a[i*f.ny : (i+1)*f.ny]
		if forward {
			f.row.Coefficients(row, row)
		} else {
			f.row.Sequence(row, row)
		}
	}
	col := f.buf[:f.nx]
	for j := 0; j < f.ny; j++ {
		for i := 0; i < f.nx; i++ {
			col[i] = a[i*f.ny+j]
		}
		if forward {
			f.col.Coefficients(col, col)
		} else {
			f.col.Sequence(col, col)
		}
		for i := 0; i < f.nx; i++ {
			a[i*f.ny+j] = col[i]
		}
	}
}

// roll2 cyclically shifts a flat nx x ny array by (sx, sy).
func roll2(a []complex128, nx, ny, sx, sy int) []complex128 {
	out := make([]complex128, len(a))
	for i := 0; i < nx; i++ {
		ii := (i + sx) % nx
		for j := 0; j < ny; j++ {
			out[ii*ny+(j+sy)%ny] = a[i*ny+j]
		}
	}
	return out
}

// fftShift moves the zero-frequency sample to the grid center.
func fftShift(a []complex128, nx, ny int) []complex128 {
	return roll2(a, nx, ny, nx/2, ny/2)
}

// ifftShift undoes fftShift (they differ for odd sizes).
func ifftShift(a []complex128, nx, ny int) []complex128 {
	return roll2(a, nx, ny, nx-nx/2, ny-ny/2)
}

// kAxis returns the angular spatial frequencies of an n-point grid with
// spacing d, in FFT order: 0..n/2-1 then -n/2..-1, scaled by 2*pi/(n*d).
func kAxis(n int, d Real) []Real {
	k := make([]Real, n)
	scale := 2 * math.Pi / (Real(n) * d)
	for i := range k {
		f := Real(i)
		if i >= (n+1)/2 {
			f = Real(i - n)
		}
		k[i] = f * scale
	}
	return k
}
