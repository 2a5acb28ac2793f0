package spdcsim

import "gonum.org/v1/gonum/mat"

// ComposeG2 combines converged G1 and Q estimates into the second-order
// correlation tensor via the Gaussian-state (Wick) factorization
//
//	G2 = Re( G1.ii ⊙ G1.ss + Q.si† ⊙ Q.si + G1.si† ⊙ G1.si )
//
// elementwise. One-shot; calling it on partially accumulated state is not an
// error but the result is not a meaningful estimator.
func ComposeG2(g1 *G1Mat, q *QMat) *mat.Dense {
	n := g1.m * g1.m
	out := mat.NewDense(n, n, nil)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := g1.ii.At(r, c)*g1.ss.At(r, c) +
				q.siDagger.At(r, c)*q.si.At(r, c) +
				g1.siDagger.At(r, c)*g1.si.At(r, c)
			out.Set(r, c, real(v))
		}
	}
	return out
}

// diagIndicator builds the M^2 x M^2 0/1 mask of entries whose flattened row
// and column indices encode the same 2D transverse mode. Built once per run,
// read-only afterwards.
func diagIndicator(m int) *mat.Dense {
	n := m * m
	ind := mat.NewDense(n, n, nil)
	for r := 0; r < n; r++ {
		ind.Set(r, r, 1)
	}
	return ind
}

// diagonalMap extracts the equal-mode entries of a coherence matrix selected
// by the indicator, reshaped to M x M and scaled by 1/norm: the
// single-photodetection probability map.
func diagonalMap(g *mat.CDense, ind *mat.Dense, m int, norm Real) [][]Real {
	out := make([][]Real, m)
	for i := 0; i < m; i++ {
		out[i] = make([]Real, m)
		for j := 0; j < m; j++ {
			r := i*m + j
			if ind.At(r, r) != 0 {
				out[i][j] = real(g.At(r, r)) / norm
			}
		}
	}
	return out
}

// unwrapKron reshapes an M^2 x M^2 tensor into its M x M x M x M form by
// inverting the row/column flattening r = i*M + j.
func unwrapKron(t *mat.Dense, m int) [][][][]Real {
	out := make([][][][]Real, m)
	for i := 0; i < m; i++ {
		out[i] = make([][][]Real, m)
		for j := 0; j < m; j++ {
			out[i][j] = make([][]Real, m)
			for k := 0; k < m; k++ {
				out[i][j][k] = make([]Real, m)
				for l := 0; l < m; l++ {
					out[i][j][k][l] = t.At(i*m+j, k*m+l)
				}
			}
		}
	}
	return out
}

// wrapKron re-flattens an M x M x M x M tensor; exact inverse of unwrapKron.
func wrapKron(t [][][][]Real) *mat.Dense {
	m := len(t)
	out := mat.NewDense(m*m, m*m, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			for k := 0; k < m; k++ {
				for l := 0; l < m; l++ {
					out.Set(i*m+j, k*m+l, t[i][j][k][l])
				}
			}
		}
	}
	return out
}

// traceIt sums a rank-4 tensor over the two given axes (a discretized partial
// trace), scaling by the traced cell area. The two remaining axes keep their
// relative order in the returned M x M marginal.
func traceIt(t [][][][]Real, ax1, ax2 int, cellArea Real) [][]Real {
	if ax1 > ax2 {
		ax1, ax2 = ax2, ax1
	}
	if ax1 < 0 || ax2 > 3 || ax1 == ax2 {
		panic("traceIt: invalid axis pair")
	}
	keep := make([]int, 0, 2)
	for a := 0; a < 4; a++ {
		if a != ax1 && a != ax2 {
			keep = append(keep, a)
		}
	}
	m := len(t)
	out := make([][]Real, m)
	var idx [4]int
	for a := 0; a < m; a++ {
		out[a] = make([]Real, m)
		for b := 0; b < m; b++ {
			idx[keep[0]], idx[keep[1]] = a, b
			var s Real
			for u := 0; u < m; u++ {
				for v := 0; v < m; v++ {
					idx[ax1], idx[ax2] = u, v
					s += t[idx[0]][idx[1]][idx[2]][idx[3]]
				}
			}
			out[a][b] = s * cellArea
		}
	}
	return out
}

// scaleMap multiplies an M x M map in place.
func scaleMap(m [][]Real, s Real) {
	for i := range m {
		for j := range m[i] {
			m[i][j] *= s
		}
	}
}
