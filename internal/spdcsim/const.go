package spdcsim

type Real = float64

// Physical constants (SI units).
const (
	c0   = 2.99792458e8    // speed of light in vacuum [m/s]
	eps0 = 8.854187817e-12 // vacuum permittivity [F/m]
	hBar = 1.054571800e-34 // reduced Planck constant [J*s]
)

// Defaults applied by loadConfig when the JSON omits a value.
const (
	DefaultPolingCorrection = 1.003 // empirical quasi-phase-matching correction
	DefaultSeedSignal       = 1986
	DefaultSeedIdler        = 1989
	DefaultFarFieldDist     = 0.1  // distance to the far-field screen [m]
	DefaultTau              = 1e-9 // coincidence window [s]
	DefaultGamma            = 0.75
	DefaultOutDir           = "out"
)

// g1Normalization converts a squared field amplitude into a photon flux at
// angular frequency w, so correlation maps read as counts per area per second.
func g1Normalization(w Real) Real {
	return hBar * w / (2 * eps0 * c0)
}
