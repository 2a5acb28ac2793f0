package spdcsim

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Crystal describes the periodically poled nonlinear medium together with the
// simulation grids: centered, endpoint-exclusive transverse axes X and Y, and
// Z positions along the optical axis covering the full crystal length.
type Crystal struct {
	DX, DY, DZ       Real // grid spacings [m]
	MaxX, MaxY, MaxZ Real // transverse half-extents and crystal length [m]
	X, Y             []Real
	Z                []Real
	D33              Real // nonlinear coefficient [m/V]
	Temperature      Real // [C]
	PolingPeriod     Real // spatial poling frequency [rad/m], set from the phase mismatch
}

// NewCrystal builds the medium grids. The transverse grid must be square
// (the correlation tensors assume a single mode count M per axis).
func NewCrystal(cfg CrystalCfg) (*Crystal, error) {
	if cfg.DX <= 0 || cfg.DY <= 0 || cfg.DZ <= 0 {
		return nil, errors.Errorf("grid spacings must be positive: dx=%g dy=%g dz=%g", cfg.DX, cfg.DY, cfg.DZ)
	}
	if cfg.MaxX <= 0 || cfg.MaxY <= 0 || cfg.MaxZ <= 0 {
		return nil, errors.Errorf("extents must be positive: maxX=%g maxY=%g maxZ=%g", cfg.MaxX, cfg.MaxY, cfg.MaxZ)
	}
	if cfg.MaxX != cfg.MaxY || cfg.DX != cfg.DY {
		return nil, errors.New("transverse grid must be square (maxX==maxY, dx==dy)")
	}
	if cfg.D33 < 0 {
		return nil, errors.Errorf("d33 must be non-negative: %g", cfg.D33)
	}

	nx := int(math.Round(2 * cfg.MaxX / cfg.DX))
	ny := int(math.Round(2 * cfg.MaxY / cfg.DY))
	nz := int(math.Round(cfg.MaxZ / cfg.DZ))
	if nx < 2 || ny < 2 {
		return nil, errors.Errorf("transverse grid too small: %dx%d", nx, ny)
	}
	if nz < 1 {
		return nil, errors.New("crystal shorter than one z step")
	}

	x := make([]Real, nx)
	y := make([]Real, ny)
	z := make([]Real, nz)
	// endpoint-exclusive, like numpy.arange(-Max, Max, d)
	floats.Span(x, -cfg.MaxX, cfg.MaxX-cfg.DX)
	floats.Span(y, -cfg.MaxY, cfg.MaxY-cfg.DY)
	if nz > 1 {
		floats.Span(z, -cfg.MaxZ/2, cfg.MaxZ/2-cfg.DZ)
	} else {
		z[0] = -cfg.MaxZ / 2
	}

	cr := &Crystal{
		DX: cfg.DX, DY: cfg.DY, DZ: cfg.DZ,
		MaxX: cfg.MaxX, MaxY: cfg.MaxY, MaxZ: cfg.MaxZ,
		X: x, Y: y, Z: z,
		D33:         cfg.D33,
		Temperature: cfg.TemperatureC,
	}
	DebugLog("Created crystal grid %dx%d, %d z-steps, dz=%.3g m, T=%.1f C", nx, ny, nz, cfg.DZ, cfg.TemperatureC)
	return cr, nil
}

// Slab returns the poling sign at position z along the optical axis: a square
// wave flipping the effective nonlinearity with period 2*pi/PolingPeriod.
func (cr *Crystal) Slab(z Real) Real {
	if math.Cos(cr.PolingPeriod*z) >= 0 {
		return 1
	}
	return -1
}

// Modes returns the transverse mode count M (grid is M x M).
func (cr *Crystal) Modes() int { return len(cr.X) }
