package spdcsim

import (
	"math/cmplx"

	"github.com/pkg/errors"
)

// propagator advances one field through free space inside the medium in fixed
// dz steps, using the Fresnel angular-spectrum transfer function
// exp(-i*dz*(kx^2+ky^2)/(2k)) plus the carrier phase exp(-i*k*dz).
type propagator struct {
	fft   *fft2
	h     []complex128 // transfer function for one step, FFT order
	phase complex128   // carrier phase per step
	scale complex128   // inverse-FFT normalization
}

func newPropagator(cr *Crystal, k, dz Real) *propagator {
	nx, ny := len(cr.X), len(cr.Y)
	kx := kAxis(nx, cr.DX)
	ky := kAxis(ny, cr.DY)
	h := make([]complex128, nx*ny)
	for i, kxi := range kx {
		for j, kyj := range ky {
			h[i*ny+j] = cmplx.Exp(complex(0, -dz*(kxi*kxi+kyj*kyj)/(2*k)))
		}
	}
	return &propagator{
		fft:   newFFT2(nx, ny),
		h:     h,
		phase: cmplx.Exp(complex(0, -k*dz)),
		scale: complex(1/Real(nx*ny), 0),
	}
}

// step advances a in place by one dz.
func (p *propagator) step(a []complex128) {
	p.fft.forward(a)
	for i := range a {
		a[i] *= p.h[i]
	}
	p.fft.inverse(a)
	f := p.phase * p.scale
	for i := range a {
		a[i] *= f
	}
}

// crystalProp integrates the coupled-mode equations for one realization of
// the distinguishable process. Per z step: a first-order Euler increment of
// the driven (out) copies by kappa*slab(z)*Epump*conj(otherVac)*dz, then a
// linear diffraction step for every tracked field. Vacuum copies receive no
// coupling. The pump scratch buffer is consumed.
func crystalProp(cr *Crystal, pumpE []complex128, pumpProp, sigProp, idlProp *propagator, sig, idl *Field) error {
	n := len(pumpE)
	dz := cr.DZ
	for _, z := range cr.Z {
		pol := complex(cr.Slab(z)*dz, 0)
		for i := 0; i < n; i++ {
			drive := pumpE[i] * pol
			sig.EOut[i] += sig.Kappa * drive * cmplx.Conj(idl.EVac[i])
			idl.EOut[i] += idl.Kappa * drive * cmplx.Conj(sig.EVac[i])
		}
		sigProp.step(sig.EOut)
		sigProp.step(sig.EVac)
		idlProp.step(idl.EOut)
		idlProp.step(idl.EVac)
		pumpProp.step(pumpE)
	}
	if !allFinite(sig.EOut) || !allFinite(sig.EVac) || !allFinite(idl.EOut) || !allFinite(idl.EVac) {
		return errors.New("crystal propagation diverged: non-finite field sample")
	}
	return nil
}

// crystalPropDegenerate is the fully degenerate variant: a single field with a
// self-conjugate drive. The idler is this same data, never propagated apart.
func crystalPropDegenerate(cr *Crystal, pumpE []complex128, pumpProp, sigProp *propagator, sig *Field) error {
	n := len(pumpE)
	dz := cr.DZ
	for _, z := range cr.Z {
		pol := complex(cr.Slab(z)*dz, 0)
		for i := 0; i < n; i++ {
			sig.EOut[i] += sig.Kappa * pumpE[i] * pol * cmplx.Conj(sig.EVac[i])
		}
		sigProp.step(sig.EOut)
		sigProp.step(sig.EVac)
		pumpProp.step(pumpE)
	}
	if !allFinite(sig.EOut) || !allFinite(sig.EVac) {
		return errors.New("crystal propagation diverged: non-finite field sample")
	}
	return nil
}
