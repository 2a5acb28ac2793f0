package spdcsim

import (
	"math"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/mat"
)

// results carries the converged accumulators and the run geometry from the
// trial loop to the output stage.
type results struct {
	cr                  *Crystal
	pump, signal, idler *Beam
	ind                 *mat.Dense
	g1                  *G1Mat
	q                   *QMat
	g1Pol               *G1Mat
	qPol                *QMat
	rAxisPol, thAxisPol []Real
}

// Run executes the full pipeline: configuration, N propagation trials,
// correlation accumulation, G2 composition and reduction, and file outputs.
// Any failure aborts before outputs are written; a partially accumulated
// tensor is never displayed.
func Run(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	res, err := runSimulation(cfg)
	if err != nil {
		return err
	}
	return writeOutputs(cfg, res)
}

// runSimulation builds the medium and beams and processes the N trials
// strictly sequentially, feeding the G1 and Q accumulators (and their polar
// copies when enabled).
func runSimulation(cfg *Config) (*results, error) {
	cr, err := NewCrystal(cfg.Crystal)
	if err != nil {
		return nil, err
	}
	m := cr.Modes()

	pump := NewBeam(cfg.Pump.Wavelength, cr, cfg.Pump.Waist, cfg.Pump.Power)
	signal := NewBeam(cfg.SignalWavelength, cr, 0, 0)
	idler := NewBeam(idlerWavelength(cfg.Pump.Wavelength, cfg.SignalWavelength), cr, 0, 0)
	if cfg.Indistinguishable {
		// fully degenerate: the idler is the signal, everywhere
		idler = signal
	}

	// quasi-phase-matching from the computed wavevector mismatch
	deltaK := pump.K - signal.K - idler.K
	cr.PolingPeriod = cfg.PolingCorrection * deltaK
	DebugLog("poling period %.6g rad/m (deltaK %.6g, correction %.4g)", cr.PolingPeriod, deltaK, cfg.PolingCorrection)

	res := &results{
		cr:     cr,
		pump:   pump,
		signal: signal,
		idler:  idler,
		ind:    diagIndicator(m),
		g1:     NewG1Mat(m),
		q:      NewQMat(m),
	}
	if cfg.Polar {
		res.g1Pol = NewG1Mat(m)
		res.qPol = NewQMat(m)
	}

	sigSrc := newNormalSource(cfg.SeedSignal)
	idlSrc := newNormalSource(cfg.SeedIdler)

	// pump plane at the crystal input, then marched dz by dz alongside the
	// interacting fields
	pumpE0 := pump.GaussianProfile(cr)
	entry := newPropagator(cr, pump.K, cr.Z[0])
	entry.step(pumpE0)

	pumpProp := newPropagator(cr, pump.K, cr.DZ)
	sigProp := newPropagator(cr, signal.K, cr.DZ)
	idlProp := newPropagator(cr, idler.K, cr.DZ)
	ffFFT := newFFT2(m, m)

	normS := farFieldNorm(cr, signal.Lam, cfg.FarFieldDist)
	normI := farFieldNorm(cr, idler.Lam, cfg.FarFieldDist)

	pumpScratch := make([]complex128, len(pumpE0))

	start := time.Now()
	for n := 0; n < cfg.Trials; n++ {
		DebugLog("trial %d/%d", n+1, cfg.Trials)

		q0, q1 := sigSrc.quadratures(m * m)
		sig := newField(signal, cr, q0, q1)
		copy(pumpScratch, pumpE0)

		var sOut, sVac, iOut, iVac []complex128
		if cfg.Indistinguishable {
			if err := crystalPropDegenerate(cr, pumpScratch, pumpProp, sigProp, sig); err != nil {
				return nil, err
			}
			sOut = ffFFT.farField(sig.EOut, normS)
			sVac = ffFFT.farField(sig.EVac, normS)
			// aliased at the data level; no second propagation
			iOut, iVac = sOut, sVac
		} else {
			p0, p1 := idlSrc.quadratures(m * m)
			idl := newField(idler, cr, p0, p1)
			if err := crystalProp(cr, pumpScratch, pumpProp, sigProp, idlProp, sig, idl); err != nil {
				return nil, err
			}
			sOut = ffFFT.farField(sig.EOut, normS)
			sVac = ffFFT.farField(sig.EVac, normS)
			iOut = ffFFT.farField(idl.EOut, normI)
			iVac = ffFFT.farField(idl.EVac, normI)
		}

		res.g1.Update(sOut, sVac, iOut, iVac, cfg.Trials)
		res.q.Update(sOut, sVac, iOut, iVac, cfg.Trials)

		if cfg.Polar {
			sOutP, rAx, thAx := cartToPolar(sOut, m)
			sVacP, _, _ := cartToPolar(sVac, m)
			iOutP, _, _ := cartToPolar(iOut, m)
			iVacP, _, _ := cartToPolar(iVac, m)
			res.rAxisPol, res.thAxisPol = rAx, thAx
			res.g1Pol.Update(sOutP, sVacP, iOutP, iVacP, cfg.Trials)
			res.qPol.Update(sOutP, sVacP, iOutP, iVacP, cfg.Trials)
		}
	}
	DebugLog("trials: %d, time: %s", cfg.Trials, time.Since(start))

	return res, nil
}

// emissionAngle returns the external half-opening angle of the degenerate
// emission ring from the quasi-phase-matching condition plus Snell's law.
// The second return is false when the geometry does not phase-match.
func emissionAngle(pump, signal *Beam, polingPeriod Real) (Real, bool) {
	cosArg := (pump.K - polingPeriod) / (2 * signal.K)
	if cosArg < -1 || cosArg > 1 {
		return 0, false
	}
	sinArg := signal.N * math.Sin(math.Acos(cosArg))
	if sinArg < -1 || sinArg > 1 {
		return 0, false
	}
	return math.Asin(sinArg), true
}

// writeOutputs composes G2 from the converged accumulators, reduces it, and
// renders the single-photodetection and coincidence maps.
func writeOutputs(cfg *Config, res *results) error {
	cr := res.cr
	m := cr.Modes()

	// single-photodetection probability maps P1(k) = G1(k;k)
	pss := diagonalMap(res.g1.ss, res.ind, m, g1Normalization(res.signal.W))
	pii := diagonalMap(res.g1.ii, res.ind, m, g1Normalization(res.idler.W))

	g2 := ComposeG2(res.g1, res.q)

	axS := ffPositionAxis(cr.DX, m, res.signal.K/res.signal.N, cfg.FarFieldDist)
	axI := ffPositionAxis(cr.DX, m, res.idler.K/res.idler.N, cfg.FarFieldDist)
	dxFFs := axS[1] - axS[0]
	dxFFi := axI[1] - axI[0]

	g2Red := traceIt(unwrapKron(g2, m), 1, 3, dxFFi*dxFFs)
	countScale := cfg.Tau / (g1Normalization(res.idler.W) * g1Normalization(res.signal.W))
	scaleMap(g2Red, countScale)

	if theta, ok := emissionAngle(res.pump, res.signal, cr.PolingPeriod); ok {
		DebugLog("theoretical ring radius: %.4g mm", 1e3*cfg.FarFieldDist*math.Tan(theta))
	}

	// display in mm and counts per mm^2 per second
	axSmm := make([]Real, m)
	axImm := make([]Real, m)
	for i := range axS {
		axSmm[i] = 1e3 * axS[i]
		axImm[i] = 1e3 * axI[i]
	}
	scaleMap(pss, 1e-6)
	scaleMap(pii, 1e-6)
	scaleMap(g2Red, 1e-6)

	outputs := []struct {
		z      [][]Real
		x, y   []Real
		title  string
		xl, yl string
		name   string
	}{
		{pss, axSmm, axSmm, "Single photodetection probability, signal", "x [mm]", "y [mm]", "p1_signal"},
		{pii, axImm, axImm, "Single photodetection probability, idler", "x [mm]", "y [mm]", "p1_idler"},
		{g2Red, axImm, axSmm, "G2 (coincidences)", "x idler [mm]", "x signal [mm]", "g2_reduced"},
	}

	if cfg.Polar {
		g2Pol := ComposeG2(res.g1Pol, res.qPol)
		dr := dxFFi
		rTh := dr
		if theta, ok := emissionAngle(res.pump, res.signal, cr.PolingPeriod); ok {
			rTh = cfg.FarFieldDist * math.Tan(theta) // ring radius for the r*dr Jacobian
		}
		// polar maps are r-major, so the radial coordinates are axes 0 and 2
		g2PolRed := traceIt(unwrapKron(g2Pol, m), 0, 2, (rTh*dr)*(rTh*dr))
		scaleMap(g2PolRed, countScale)
		outputs = append(outputs, struct {
			z      [][]Real
			x, y   []Real
			title  string
			xl, yl string
			name   string
		}{g2PolRed, res.thAxisPol, res.thAxisPol, "G2 (coincidences), polar", "theta idler [rad]", "theta signal [rad]", "g2_polar"})
	}

	for _, o := range outputs {
		path := filepath.Join(cfg.OutDir, o.name+".png")
		if err := SaveHeatmap(o.z, o.x, o.y, o.title, o.xl, o.yl, path); err != nil {
			return err
		}
		DebugLog("Saved heatmap: %s", path)
		if PNG {
			rawPath := filepath.Join(cfg.OutDir, o.name+"_raw16.png")
			if err := SaveGrayPNG16(o.z, cfg.Gamma, rawPath); err != nil {
				return err
			}
			DebugLog("Saved 16-bit PNG: %s", rawPath)
		}
		if RAW {
			rawPath := filepath.Join(cfg.OutDir, o.name+".raw")
			if err := SaveRawMap(o.z, rawPath); err != nil {
				return err
			}
			DebugLog("Saved raw map: %s", rawPath)
		}
	}
	if RAW {
		path := filepath.Join(cfg.OutDir, "g2_full.raw")
		if err := SaveRawTensor(g2, path); err != nil {
			return err
		}
		DebugLog("Saved full G2 tensor: %s", path)
	}
	return nil
}
