package spdcsim

import "math"

// nzMgCLNGayer returns the extraordinary refractive index of 5% MgO-doped
// congruent lithium niobate after Gayer et al., Appl. Phys. B 91, 343 (2008).
// lamUm is the vacuum wavelength in micrometers, T the crystal temperature
// in degrees Celsius. Valid roughly for 0.5-4 um and 20-200 C.
func nzMgCLNGayer(lamUm, T Real) Real {
	const (
		a1 = 5.756
		a2 = 0.0983
		a3 = 0.2020
		a4 = 189.32
		a5 = 12.52
		a6 = 1.32e-2
		b1 = 2.860e-6
		b2 = 4.700e-8
		b3 = 6.113e-8
		b4 = 1.516e-4
	)
	f := (T - 24.5) * (T + 570.82)
	l2 := lamUm * lamUm
	p3 := a3 + b3*f
	n2 := a1 + b1*f +
		(a2+b2*f)/(l2-p3*p3) +
		(a4+b4*f)/(l2-a5*a5) -
		a6*l2
	return math.Sqrt(n2)
}
