// Package solver finds real roots of a system of scalar residual functions
// by Newton-Raphson with a numerical Jacobian, plus a Gaussian-elimination
// fast path for systems detected to be linear.
//
// The package is deliberately generic over []float64 and knows nothing
// about the AST or Context: internal/evaluator compiles residual closures
// over a parsed equation and a caller Context, then hands them here. That
// keeps the dependency one-directional (evaluator -> solver) even though
// conceptually the solver "calls back into the evaluator" once per trial.
package solver

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/Waigo01/math-utils-lib/internal/config"
	"github.com/Waigo01/math-utils-lib/internal/diagnostics"
)

// Residual evaluates one equation's lhs-rhs at a trial point x, one
// component per unknown.
type Residual func(x []float64) (float64, error)

// Options configures an optional SolveNewton run. The zero value runs
// silently.
type Options struct {
	// Trace, when non-nil, receives one line per Newton iteration per
	// seed: the seed index, iteration number, and current max-norm
	// residual.
	Trace io.Writer
}

// SolveNewton returns the distinct real solutions of residuals(x) = 0 that
// Newton runs from a deterministic multi-start grid converge to, sorted
// ascending and capped at config.MaxSolverResults; roots no seed reaches
// are not returned. n is the number of unknowns. opts is
// variadic so existing callers are unaffected; at most the first element
// is used.
func SolveNewton(residuals []Residual, n int, opts ...Options) ([][]float64, error) {
	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}

	seeds := seedGrid(n)
	tol := config.DedupTolerance()
	var found [][]float64

	for seedIdx, seed := range seeds {
		x, ok := newtonRun(residuals, seed, seedIdx, opt.Trace)
		if !ok {
			continue
		}
		if !hasDuplicate(found, x, tol) {
			found = append(found, x)
		}
	}

	if len(found) == 0 {
		return nil, diagnostics.NewSolveError(diagnostics.NoSolution, "no seed point converged")
	}

	sort.Slice(found, func(i, j int) bool {
		for k := range found[i] {
			if found[i][k] != found[j][k] {
				return found[i][k] < found[j][k]
			}
		}
		return false
	})
	if len(found) > config.MaxSolverResults {
		found = found[:config.MaxSolverResults]
	}
	return found, nil
}

// seedGrid builds the cartesian product of config.SeedGrid with itself n
// times, one coordinate per unknown.
func seedGrid(n int) [][]float64 {
	grid := config.SeedGrid
	total := 1
	for i := 0; i < n; i++ {
		total *= len(grid)
	}
	out := make([][]float64, total)
	for i := range out {
		point := make([]float64, n)
		idx := i
		for j := n - 1; j >= 0; j-- {
			point[j] = grid[idx%len(grid)]
			idx /= len(grid)
		}
		out[i] = point
	}
	return out
}

// newtonRun runs Newton-Raphson (or its least-squares variant for
// over-determined systems) from a single starting point.
func newtonRun(residuals []Residual, x0 []float64, seedIdx int, trace io.Writer) ([]float64, bool) {
	n := len(x0)
	m := len(residuals)
	x := append([]float64(nil), x0...)
	tol := config.ConvergenceTolerance()

	for iter := 0; iter < config.MaxNewtonIterations; iter++ {
		r, err := evalResiduals(residuals, x)
		if err != nil {
			return nil, false
		}
		norm := maxNorm(r)
		if trace != nil {
			fmt.Fprintf(trace, "seed %d iteration %s: max|r| = %g\n", seedIdx, humanize.Comma(int64(iter)), norm)
		}
		if norm <= tol {
			return x, true
		}
		jac, err := numericalJacobian(residuals, x)
		if err != nil {
			return nil, false
		}

		var delta []float64
		if m == n {
			var ok bool
			delta, ok = solveSquare(jac, negate(r))
			if !ok {
				return nil, false
			}
		} else {
			// Over-determined: normal equations JtJ * delta = -Jt r.
			jt := transpose(jac)
			jtj := matMul(jt, jac)
			jtr := matVec(jt, r)
			var ok bool
			delta, ok = solveSquare(jtj, negate(jtr))
			if !ok {
				return nil, false
			}
		}
		for i := range x {
			x[i] += delta[i]
		}
	}

	r, err := evalResiduals(residuals, x)
	if err != nil || maxNorm(r) > tol {
		return nil, false
	}
	return x, true
}

func evalResiduals(residuals []Residual, x []float64) ([]float64, error) {
	out := make([]float64, len(residuals))
	for i, r := range residuals {
		v, err := r(x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// numericalJacobian computes the m x n Jacobian via central difference,
// step config.JacobianStep per unknown.
func numericalJacobian(residuals []Residual, x []float64) ([][]float64, error) {
	n := len(x)
	m := len(residuals)
	h := config.JacobianStep
	jac := make([][]float64, m)
	for i := range jac {
		jac[i] = make([]float64, n)
	}
	for j := 0; j < n; j++ {
		xp := append([]float64(nil), x...)
		xm := append([]float64(nil), x...)
		xp[j] += h
		xm[j] -= h
		rp, err := evalResiduals(residuals, xp)
		if err != nil {
			return nil, err
		}
		rm, err := evalResiduals(residuals, xm)
		if err != nil {
			return nil, err
		}
		for i := 0; i < m; i++ {
			jac[i][j] = (rp[i] - rm[i]) / (2 * h)
		}
	}
	return jac, nil
}

func maxNorm(v []float64) float64 {
	max := 0.0
	for _, f := range v {
		if a := math.Abs(f); a > max {
			max = a
		}
	}
	return max
}

func negate(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = -f
	}
	return out
}

func hasDuplicate(found [][]float64, x []float64, tol float64) bool {
	for _, f := range found {
		maxDiff := 0.0
		for i := range x {
			if d := math.Abs(x[i] - f[i]); d > maxDiff {
				maxDiff = d
			}
		}
		if maxDiff <= tol {
			return true
		}
	}
	return false
}
