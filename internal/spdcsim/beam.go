package spdcsim

import "math"

// Beam carries the optical parameters of one interacting wave at the crystal
// temperature.
type Beam struct {
	Lam   Real // vacuum wavelength [m]
	N     Real // refractive index
	W     Real // angular frequency [rad/s]
	K     Real // wave number inside the medium [rad/m]
	Waist Real // [m], pump only
	Power Real // [W], pump only
}

// NewBeam looks up the dispersion model at the crystal temperature. Waist and
// power are only meaningful for the pump; pass zero for signal and idler.
func NewBeam(lam Real, cr *Crystal, waist, power Real) *Beam {
	n := nzMgCLNGayer(lam*1e6, cr.Temperature)
	return &Beam{
		Lam:   lam,
		N:     n,
		W:     2 * math.Pi * c0 / lam,
		K:     2 * math.Pi * n / lam,
		Waist: waist,
		Power: power,
	}
}

// idlerWavelength returns the idler wavelength fixed by energy conservation,
// 1/lamIdler = 1/lamPump - 1/lamSignal.
func idlerWavelength(lamPump, lamSignal Real) Real {
	return lamPump * lamSignal / (lamSignal - lamPump)
}

// GaussianProfile returns the pump transverse amplitude at its waist, peak
// field set by the beam power: I0 = 2P/(pi*w0^2), E0 = sqrt(2*I0/(c*n*eps0)).
func (b *Beam) GaussianProfile(cr *Crystal) []complex128 {
	nx, ny := len(cr.X), len(cr.Y)
	e0 := math.Sqrt(4 * b.Power / (b.N * eps0 * c0 * math.Pi * b.Waist * b.Waist))
	w2 := b.Waist * b.Waist
	out := make([]complex128, nx*ny)
	for i, x := range cr.X {
		for j, y := range cr.Y {
			out[i*ny+j] = complex(e0*math.Exp(-(x*x+y*y)/w2), 0)
		}
	}
	return out
}
