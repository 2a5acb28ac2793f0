package spdcsim

import (
	"math"
	"testing"
)

// mustCrystal builds the small 4x4 grid most tests run on.
func mustCrystal(t *testing.T, d33 Real) *Crystal {
	t.Helper()
	cr, err := NewCrystal(CrystalCfg{
		DX: 1e-5, DY: 1e-5, DZ: 1e-6,
		MaxX: 2e-5, MaxY: 2e-5, MaxZ: 3e-6,
		D33: d33, TemperatureC: 50,
	})
	if err != nil {
		t.Fatalf("NewCrystal: %v", err)
	}
	return cr
}

func TestNewCrystalGrid(t *testing.T) {
	cr, err := NewCrystal(CrystalCfg{
		DX: 1e-5, DY: 1e-5, DZ: 1e-6,
		MaxX: 2e-4, MaxY: 2e-4, MaxZ: 5e-3,
		D33: 2.34e-11, TemperatureC: 50,
	})
	if err != nil {
		t.Fatalf("NewCrystal: %v", err)
	}
	if got := cr.Modes(); got != 40 {
		t.Fatalf("Modes() = %d, want 40", got)
	}
	if len(cr.Z) != 5000 {
		t.Fatalf("len(Z) = %d, want 5000", len(cr.Z))
	}
	if cr.X[0] != -2e-4 {
		t.Fatalf("X[0] = %g, want -2e-4", cr.X[0])
	}
	if !closeTo(cr.X[1]-cr.X[0], 1e-5, 1e-12) {
		t.Fatalf("X spacing = %g, want 1e-5", cr.X[1]-cr.X[0])
	}
	// endpoint-exclusive: last sample one cell short of +MaxX
	if !closeTo(cr.X[39], 2e-4-1e-5, 1e-12) {
		t.Fatalf("X[39] = %g, want %g", cr.X[39], 2e-4-1e-5)
	}
	if cr.Z[0] != -2.5e-3 {
		t.Fatalf("Z[0] = %g, want -2.5e-3", cr.Z[0])
	}
}

func TestNewCrystalRejectsBadGeometry(t *testing.T) {
	base := CrystalCfg{
		DX: 1e-5, DY: 1e-5, DZ: 1e-6,
		MaxX: 2e-5, MaxY: 2e-5, MaxZ: 3e-6,
		D33: 0, TemperatureC: 50,
	}

	cfg := base
	cfg.DX = 0
	if _, err := NewCrystal(cfg); err == nil {
		t.Fatal("expected error for zero dx")
	}

	cfg = base
	cfg.MaxY = 3e-5
	if _, err := NewCrystal(cfg); err == nil {
		t.Fatal("expected error for rectangular grid")
	}

	cfg = base
	cfg.MaxX, cfg.MaxY = 5e-6, 5e-6
	if _, err := NewCrystal(cfg); err == nil {
		t.Fatal("expected error for single-sample transverse grid")
	}

	cfg = base
	cfg.D33 = -1e-12
	if _, err := NewCrystal(cfg); err == nil {
		t.Fatal("expected error for negative d33")
	}
}

func TestSlabSquareWave(t *testing.T) {
	cr := mustCrystal(t, 0)
	cr.PolingPeriod = math.Pi
	cases := []struct {
		z    Real
		want Real
	}{
		{0, 1},
		{0.9, -1},
		{1.2, -1},
		{2, 1},
		{-0.9, -1},
	}
	for _, c := range cases {
		if got := cr.Slab(c.z); got != c.want {
			t.Fatalf("Slab(%g) = %g, want %g", c.z, got, c.want)
		}
	}
}

func TestDispersion(t *testing.T) {
	n1064 := nzMgCLNGayer(1.064, 50)
	if n1064 < 2.1 || n1064 > 2.25 {
		t.Fatalf("n(1.064um, 50C) = %g, outside [2.1, 2.25]", n1064)
	}
	n532 := nzMgCLNGayer(0.532, 50)
	if n532 <= n1064 {
		t.Fatalf("normal dispersion violated: n(0.532)=%g <= n(1.064)=%g", n532, n1064)
	}
	if nzMgCLNGayer(1.064, 100) <= nzMgCLNGayer(1.064, 20) {
		t.Fatal("index should grow with temperature")
	}
}

func TestIdlerWavelength(t *testing.T) {
	li := idlerWavelength(532e-9, 1064e-9)
	if !closeTo(li, 1064e-9, 1e-12) {
		t.Fatalf("degenerate idler = %g, want 1064e-9", li)
	}
	// energy conservation for a non-degenerate split
	lp, ls := 532e-9, 810e-9
	li = idlerWavelength(lp, ls)
	if !closeTo(1/lp, 1/ls+1/li, 1e-12) {
		t.Fatalf("energy conservation violated: 1/%g != 1/%g + 1/%g", lp, ls, li)
	}
}

func TestNewBeam(t *testing.T) {
	cr := mustCrystal(t, 0)
	b := NewBeam(1.064e-6, cr, 0, 0)
	if !closeTo(b.K, 2*math.Pi*b.N/b.Lam, 1e-12) {
		t.Fatalf("K = %g, want %g", b.K, 2*math.Pi*b.N/b.Lam)
	}
	if !closeTo(b.W*b.Lam, 2*math.Pi*c0, 1e-12) {
		t.Fatalf("W*Lam = %g, want %g", b.W*b.Lam, 2*math.Pi*c0)
	}
}

func TestGaussianProfile(t *testing.T) {
	cr := mustCrystal(t, 0)
	b := NewBeam(532e-9, cr, 1e-4, 0.03)
	e := b.GaussianProfile(cr)

	m := cr.Modes()
	center := (m/2)*m + m/2
	e0 := math.Sqrt(4 * b.Power / (b.N * eps0 * c0 * math.Pi * b.Waist * b.Waist))
	if !closeTo(real(e[center]), e0, 1e-12) || imag(e[center]) != 0 {
		t.Fatalf("peak = %v, want %g", e[center], e0)
	}
	for i := range e {
		if real(e[i]) > real(e[center]) {
			t.Fatalf("entry %d exceeds the center value", i)
		}
	}
	// symmetric about the axis that contains x = 0
	a := real(e[1*m+m/2])
	bv := real(e[3*m+m/2])
	if !closeTo(a, bv, 1e-12) {
		t.Fatalf("profile not symmetric: %g vs %g", a, bv)
	}
}
