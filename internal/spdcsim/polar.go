package spdcsim

import "math"

// cartToPolar resamples a centered M x M k-space map onto an M x M (r, theta)
// grid by bilinear interpolation. Radii span [0, M/2) grid cells from the
// fftshift center; angles span [-pi, pi). Returned axes are in cell units and
// radians; physical scaling is the caller's concern.
func cartToPolar(a []complex128, m int) (pol []complex128, rAxis, thAxis []Real) {
	pol = make([]complex128, m*m)
	rAxis = make([]Real, m)
	thAxis = make([]Real, m)
	maxR := Real(m) / 2
	for i := range rAxis {
		rAxis[i] = maxR * Real(i) / Real(m)
	}
	for j := range thAxis {
		thAxis[j] = -math.Pi + 2*math.Pi*Real(j)/Real(m)
	}
	cx := Real(m / 2)
	cy := Real(m / 2)
	for i, r := range rAxis {
		for j, th := range thAxis {
			x := cx + r*math.Cos(th)
			y := cy + r*math.Sin(th)
			pol[i*m+j] = bilinear(a, m, x, y)
		}
	}
	return pol, rAxis, thAxis
}

// bilinear samples a flat m x m complex map at fractional coordinates with
// replicated edges.
func bilinear(a []complex128, m int, x, y Real) complex128 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - Real(x0)
	fy := y - Real(y0)
	at := func(i, j int) complex128 {
		return a[iclamp(i, 0, m-1)*m+iclamp(j, 0, m-1)]
	}
	c00 := at(x0, y0)
	c10 := at(x0+1, y0)
	c01 := at(x0, y0+1)
	c11 := at(x0+1, y0+1)
	wx := complex(fx, 0)
	wy := complex(fy, 0)
	one := complex(1, 0)
	return (c00*(one-wx)+c10*wx)*(one-wy) + (c01*(one-wx)+c11*wx)*wy
}
