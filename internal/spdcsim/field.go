package spdcsim

import "math"

// Field tracks one interacting quantum field through a single trial: EOut is
// the pump-driven amplitude, EVac the linearly propagated copy of the same
// vacuum seed. Both are flat row-major M x M buffers.
type Field struct {
	Beam  *Beam
	EOut  []complex128
	EVac  []complex128
	Kappa complex128 // nonlinear coupling, 2i*w^2*d33/(k*c^2)
}

// newField seeds both copies from the same pair of standard-normal quadrature
// planes, so the zero-gain limit leaves EOut identical to EVac and the
// vacuum background cancels exactly in the estimators.
func newField(b *Beam, cr *Crystal, q0, q1 []Real) *Field {
	n := len(cr.X) * len(cr.Y)
	// one-half photon per mode of the quantization volume
	vac := math.Sqrt(hBar * b.W / (2 * eps0 * b.N * b.N * cr.DX * cr.DY * cr.MaxZ))
	amp := vac / math.Sqrt2
	DebugLogOnce("vacuum amplitude %.6g V/m", vac)
	eOut := make([]complex128, n)
	eVac := make([]complex128, n)
	for i := 0; i < n; i++ {
		s := complex(q0[i]*amp, q1[i]*amp)
		eOut[i] = s
		eVac[i] = s
	}
	return &Field{
		Beam:  b,
		EOut:  eOut,
		EVac:  eVac,
		Kappa: complex(0, 2*b.W*b.W*cr.D33/(b.K*c0*c0)),
	}
}
