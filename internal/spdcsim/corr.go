package spdcsim

import (
	"fmt"
	"math/cmplx"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// corrMatrices is the running-mean state shared by the G1 and Q estimators:
// three M^2 x M^2 complex matrices over ordered pairs of flattened transverse
// modes (idler-idler, signal-signal, signal-idler) plus the conjugate
// transpose of the cross term. After k trials each matrix is the sample mean
// of k per-trial outer products.
type corrMatrices struct {
	m        int // transverse mode count per axis; matrices are (m*m) x (m*m)
	ii       *mat.CDense
	ss       *mat.CDense
	si       *mat.CDense
	siDagger *mat.CDense
}

func newCorrMatrices(m int) corrMatrices {
	if m < 1 {
		panic("correlation accumulator: mode count must be positive")
	}
	n := m * m
	return corrMatrices{
		m:        m,
		ii:       mat.NewCDense(n, n, nil),
		ss:       mat.NewCDense(n, n, nil),
		si:       mat.NewCDense(n, n, nil),
		siDagger: mat.NewCDense(n, n, nil),
	}
}

func (cm *corrMatrices) checkShapes(vs ...[]complex128) {
	want := cm.m * cm.m
	for _, v := range vs {
		if len(v) != want {
			panic(fmt.Sprintf("correlation update: field length %d, want %d", len(v), want))
		}
	}
}

// G1Mat accumulates the first-order coherence tensors, the <a†(k) a(k')>
// pairing of each field combination.
type G1Mat struct {
	corrMatrices
}

// QMat accumulates the pair-amplitude (two-mode squeezing) tensors, the
// <a(k) a(k')> pairing of each field combination.
type QMat struct {
	corrMatrices
}

func NewG1Mat(m int) *G1Mat { return &G1Mat{newCorrMatrices(m)} }
func NewQMat(m int) *QMat   { return &QMat{newCorrMatrices(m)} }

// Update folds one trial's four far-field amplitudes into the running means.
// Each vector is a flattened length-M^2 field; n is the total trial count the
// run will perform, so after exactly n calls the matrices hold sample means.
// The out/vac difference cancels the symmetric vacuum background.
func (g *G1Mat) Update(sOut, sVac, iOut, iVac []complex128, n int) {
	g.checkShapes(sOut, sVac, iOut, iVac)
	nf := Real(n)
	iOutC, iVacC := conjAll(iOut), conjAll(iVac)
	sOutC, sVacC := conjAll(sOut), conjAll(sVac)
	addOuterDiff(g.ii, iOutC, iOut, iVacC, iVac, nf)
	addOuterDiff(g.ss, sOutC, sOut, sVacC, sVac, nf)
	addOuterDiff(g.si, iOutC, sOut, iVacC, sVac, nf)
	conjTranspose(g.siDagger, g.si)
}

// Update is the pair-amplitude counterpart: no conjugation in the pairing.
func (q *QMat) Update(sOut, sVac, iOut, iVac []complex128, n int) {
	q.checkShapes(sOut, sVac, iOut, iVac)
	nf := Real(n)
	addOuterDiff(q.ii, iOut, iOut, iVac, iVac, nf)
	addOuterDiff(q.ss, sOut, sOut, sVac, sVac, nf)
	addOuterDiff(q.si, sOut, iOut, sVac, iVac, nf)
	conjTranspose(q.siDagger, q.si)
}

// addOuterDiff adds (a⊗b - av⊗bv)/n to dst, where (u⊗v)[r,c] = u[r]*v[c].
// Rows are partitioned across workers with a single writer per row, so the
// result is independent of goroutine scheduling.
func addOuterDiff(dst *mat.CDense, a, b, av, bv []complex128, n Real) {
	rows := len(a)
	cols := len(b)
	inv := complex(1/n, 0)
	workers := runtime.NumCPU()
	if workers > rows {
		workers = rows
	}
	chunk := (rows + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > rows {
			hi = rows
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for r := lo; r < hi; r++ {
				ar := a[r] * inv
				avr := av[r] * inv
				for c := 0; c < cols; c++ {
					dst.Set(r, c, dst.At(r, c)+ar*b[c]-avr*bv[c])
				}
			}
		}(lo, hi)
	}
	wg.Wait()
}

// conjTranspose writes the conjugate transpose of src into dst.
func conjTranspose(dst, src *mat.CDense) {
	rows, cols := src.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			dst.Set(c, r, cmplx.Conj(src.At(r, c)))
		}
	}
}
