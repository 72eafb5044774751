package evaluator

import (
	"github.com/Waigo01/math-utils-lib/internal/ast"
	"github.com/Waigo01/math-utils-lib/internal/diagnostics"
	"github.com/Waigo01/math-utils-lib/internal/mathcontext"
	"github.com/Waigo01/math-utils-lib/internal/solver"
	"github.com/Waigo01/math-utils-lib/internal/value"
)

// evalEq implements `eq(eq1, ..., eqm, x1, ..., xn)`: a leading run of
// Equation arguments followed by a run of bare unknown-name arguments. It
// tries the linear fast path first (Gaussian elimination) and falls back
// to multi-start Newton-Raphson when any residual isn't linear in the
// unknowns.
func evalEq(n *ast.Call, ctx *mathcontext.Context, depth int) (value.Results, error) {
	var eqs []*ast.Equation
	var unknowns []string
	seenUnknown := false
	for _, a := range n.Args {
		switch node := a.(type) {
		case *ast.Equation:
			if seenUnknown {
				return nil, diagnostics.NewEvalError(diagnostics.ArityMismatch, "eq(...): all equations must precede the unknown names")
			}
			eqs = append(eqs, node)
		case *ast.Var:
			seenUnknown = true
			unknowns = append(unknowns, node.Name)
		default:
			return nil, diagnostics.NewEvalError(diagnostics.ArityMismatch, "eq(...) arguments must be \"lhs=rhs\" equations followed by bare unknown names")
		}
	}
	if len(eqs) == 0 || len(unknowns) == 0 {
		return nil, diagnostics.NewEvalError(diagnostics.ArityMismatch, "eq(...) requires at least one equation and one unknown")
	}

	unknownSet := make(map[string]bool, len(unknowns))
	for _, u := range unknowns {
		unknownSet[u] = true
	}

	if x, ok, err := trySolveLinear(eqs, unknowns, unknownSet, ctx, depth); err != nil {
		return nil, err
	} else if ok {
		return value.Single(packUnknowns(x)), nil
	}

	residuals := make([]solver.Residual, len(eqs))
	for i, e := range eqs {
		e := e
		residuals[i] = func(x []float64) (float64, error) {
			child := ctx
			for j, name := range unknowns {
				child = child.WithVariable(name, value.Single(value.NewScalar(x[j])))
			}
			l, err := evalSingleScalar(e.Lhs, child, depth+1)
			if err != nil {
				return 0, err
			}
			r, err := evalSingleScalar(e.Rhs, child, depth+1)
			if err != nil {
				return 0, err
			}
			return l - r, nil
		}
	}
	solutions, err := solver.SolveNewton(residuals, len(unknowns))
	if err != nil {
		return nil, err
	}
	out := make(value.Results, len(solutions))
	for i, x := range solutions {
		out[i] = packUnknowns(x)
	}
	return out, nil
}

func packUnknowns(x []float64) value.Value {
	if len(x) == 1 {
		return value.NewScalar(x[0])
	}
	return value.NewVector(append([]float64(nil), x...))
}

// trySolveLinear attempts the linear fast path: every equation's lhs-rhs
// must be expressible as (sum of coeff*unknown) + constant. ok is false
// (with a nil error) when any equation fails that restricted symbolic
// check, signaling the caller to fall back to Newton.
func trySolveLinear(eqs []*ast.Equation, unknowns []string, unknownSet map[string]bool, ctx *mathcontext.Context, depth int) ([]float64, bool, error) {
	a := make([][]float64, len(eqs))
	b := make([]float64, len(eqs))
	for i, e := range eqs {
		cl, kl, okl, err := linearCoeffs(e.Lhs, unknownSet, ctx, depth)
		if err != nil {
			return nil, false, err
		}
		if !okl {
			return nil, false, nil
		}
		cr, kr, okr, err := linearCoeffs(e.Rhs, unknownSet, ctx, depth)
		if err != nil {
			return nil, false, err
		}
		if !okr {
			return nil, false, nil
		}
		row := make([]float64, len(unknowns))
		for j, u := range unknowns {
			row[j] = cl[u] - cr[u]
		}
		a[i] = row
		b[i] = kr - kl
	}
	x, err := solver.SolveLinear(solver.LinearSystem{A: a, B: b})
	if err != nil {
		return nil, false, err
	}
	return x, true, nil
}

// linearCoeffs walks node, restricted to +, -, * with at most one unknown
// per multiplicative term (spec.md §4.5's linear fast-path condition).
// ok is false when node doesn't fit that shape; a genuine evaluation error
// on a constant sub-expression is still surfaced via err.
func linearCoeffs(node ast.Node, unknowns map[string]bool, ctx *mathcontext.Context, depth int) (map[string]float64, float64, bool, error) {
	switch n := node.(type) {
	case *ast.NumberLit:
		return map[string]float64{}, n.Value, true, nil

	case *ast.Var:
		if unknowns[n.Name] {
			return map[string]float64{n.Name: 1}, 0, true, nil
		}
		f, err := evalSingleScalar(node, ctx, depth)
		if err != nil {
			return nil, 0, false, err
		}
		return map[string]float64{}, f, true, nil

	case *ast.UnaryOp:
		if n.Op != "-" {
			return nil, 0, false, nil
		}
		c, k, ok, err := linearCoeffs(n.Arg, unknowns, ctx, depth)
		if err != nil || !ok {
			return nil, 0, ok, err
		}
		out := make(map[string]float64, len(c))
		for name, coef := range c {
			out[name] = -coef
		}
		return out, -k, true, nil

	case *ast.BinOp:
		switch n.Op {
		case "+", "-":
			cl, kl, okl, err := linearCoeffs(n.Lhs, unknowns, ctx, depth)
			if err != nil || !okl {
				return nil, 0, okl, err
			}
			cr, kr, okr, err := linearCoeffs(n.Rhs, unknowns, ctx, depth)
			if err != nil || !okr {
				return nil, 0, okr, err
			}
			sign := 1.0
			if n.Op == "-" {
				sign = -1
			}
			out := make(map[string]float64, len(cl)+len(cr))
			for name, coef := range cl {
				out[name] += coef
			}
			for name, coef := range cr {
				out[name] += sign * coef
			}
			return out, kl + sign*kr, true, nil

		case "*":
			cl, kl, okl, err := linearCoeffs(n.Lhs, unknowns, ctx, depth)
			if err != nil {
				return nil, 0, false, err
			}
			cr, kr, okr, err := linearCoeffs(n.Rhs, unknowns, ctx, depth)
			if err != nil {
				return nil, 0, false, err
			}
			if !okl || !okr {
				return nil, 0, false, nil
			}
			lhsHasVar, rhsHasVar := len(cl) > 0, len(cr) > 0
			switch {
			case lhsHasVar && rhsHasVar:
				return nil, 0, false, nil // unknown * unknown: nonlinear
			case !lhsHasVar && !rhsHasVar:
				return map[string]float64{}, kl * kr, true, nil
			case lhsHasVar:
				out := make(map[string]float64, len(cl))
				for name, coef := range cl {
					out[name] = coef * kr
				}
				return out, kl * kr, true, nil
			default:
				out := make(map[string]float64, len(cr))
				for name, coef := range cr {
					out[name] = coef * kl
				}
				return out, kr * kl, true, nil
			}

		default:
			return nil, 0, false, nil
		}

	default:
		return nil, 0, false, nil
	}
}
