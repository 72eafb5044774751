package solver

import (
	"math"

	"github.com/Waigo01/math-utils-lib/internal/diagnostics"
)

// LinearSystem is Ax = b for m equations over n unknowns, as extracted by
// internal/evaluator's symbolic linear-coefficient walk.
type LinearSystem struct {
	A [][]float64 // m x n
	B []float64   // m
}

// SolveLinear solves the fast path: Gaussian elimination with partial
// pivoting. Square, consistent, full-rank systems return a single
// solution; rank-deficient consistent systems report InfiniteSolutions;
// inconsistent systems report Inconsistent.
func SolveLinear(sys LinearSystem) ([]float64, error) {
	m := len(sys.A)
	if m == 0 {
		return nil, diagnostics.NewSolveError(diagnostics.NoSolution, "empty linear system")
	}
	n := len(sys.A[0])

	aug := make([][]float64, m)
	for i := range aug {
		row := make([]float64, n+1)
		copy(row, sys.A[i])
		row[n] = sys.B[i]
		aug[i] = row
	}

	rank := 0
	for col := 0; col < n && rank < m; col++ {
		pivot := -1
		best := 1e-12
		for row := rank; row < m; row++ {
			if v := math.Abs(aug[row][col]); v > best {
				best = v
				pivot = row
			}
		}
		if pivot == -1 {
			continue
		}
		aug[rank], aug[pivot] = aug[pivot], aug[rank]
		pv := aug[rank][col]
		for k := col; k <= n; k++ {
			aug[rank][k] /= pv
		}
		for row := 0; row < m; row++ {
			if row == rank {
				continue
			}
			factor := aug[row][col]
			if factor == 0 {
				continue
			}
			for k := col; k <= n; k++ {
				aug[row][k] -= factor * aug[rank][k]
			}
		}
		rank++
	}

	// Any all-zero-coefficient row with a non-zero constant is
	// inconsistent.
	for row := rank; row < m; row++ {
		if math.Abs(aug[row][n]) > 1e-9 {
			return nil, diagnostics.NewSolveError(diagnostics.Inconsistent, "linear system is inconsistent")
		}
	}
	if rank < n {
		return nil, diagnostics.NewSolveError(diagnostics.InfiniteSolutions, "linear system is rank-deficient (%d < %d unknowns) with a consistent right-hand side", rank, n)
	}

	x := make([]float64, n)
	for row := 0; row < n; row++ {
		pivotCol := -1
		for col := 0; col < n; col++ {
			if aug[row][col] == 1 {
				pivotCol = col
				break
			}
		}
		if pivotCol == -1 {
			return nil, diagnostics.NewSolveError(diagnostics.NoSolution, "linear system could not be reduced to a unique solution")
		}
		x[pivotCol] = aug[row][n]
	}
	return x, nil
}

// solveSquare solves A x = b for a square, possibly non-symmetric A via
// Gaussian elimination with partial pivoting. ok is false on a singular
// (or near-singular) matrix.
func solveSquare(a [][]float64, b []float64) ([]float64, bool) {
	n := len(a)
	aug := make([][]float64, n)
	for i := range aug {
		row := make([]float64, n+1)
		copy(row, a[i])
		row[n] = b[i]
		aug[i] = row
	}

	for col := 0; col < n; col++ {
		pivot := col
		best := math.Abs(aug[col][col])
		for row := col + 1; row < n; row++ {
			if v := math.Abs(aug[row][col]); v > best {
				best = v
				pivot = row
			}
		}
		if best < 1e-14 {
			return nil, false
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]
		for row := col + 1; row < n; row++ {
			factor := aug[row][col] / aug[col][col]
			for k := col; k <= n; k++ {
				aug[row][k] -= factor * aug[col][k]
			}
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := aug[row][n]
		for col := row + 1; col < n; col++ {
			sum -= aug[row][col] * x[col]
		}
		x[row] = sum / aug[row][row]
	}
	return x, true
}

func transpose(m [][]float64) [][]float64 {
	if len(m) == 0 {
		return nil
	}
	rows, cols := len(m), len(m[0])
	out := make([][]float64, cols)
	for i := range out {
		out[i] = make([]float64, rows)
		for j := range out[i] {
			out[i][j] = m[j][i]
		}
	}
	return out
}

func matMul(a, b [][]float64) [][]float64 {
	rows, inner, cols := len(a), len(b), len(b[0])
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			sum := 0.0
			for k := 0; k < inner; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

func matVec(a [][]float64, v []float64) []float64 {
	out := make([]float64, len(a))
	for i, row := range a {
		sum := 0.0
		for j, f := range row {
			sum += f * v[j]
		}
		out[i] = sum
	}
	return out
}
