package evaluator

import (
	"github.com/Waigo01/math-utils-lib/internal/ast"
	"github.com/Waigo01/math-utils-lib/internal/config"
	"github.com/Waigo01/math-utils-lib/internal/diagnostics"
	"github.com/Waigo01/math-utils-lib/internal/mathcontext"
	"github.com/Waigo01/math-utils-lib/internal/value"
)

// evalSingleScalar evaluates node and requires the result to be exactly one
// scalar value. D, I and eq's residuals all need a single number per trial
// point; a multi-valued sub-expression there (e.g. an unrelated sqrt) has
// no well-defined single reading, so it is rejected rather than guessed at.
func evalSingleScalar(node ast.Node, ctx *mathcontext.Context, depth int) (float64, error) {
	r, err := evalNode(node, ctx, depth)
	if err != nil {
		return 0, err
	}
	if len(r) != 1 || !r[0].IsScalar() {
		return 0, diagnostics.NewEvalError(diagnostics.TypeMismatch, "expected a single scalar value, got %d result(s)", len(r))
	}
	return r[0].Scalar, nil
}

func bareVarName(node ast.Node, builtinName string) (string, error) {
	v, ok := node.(*ast.Var)
	if !ok {
		return "", diagnostics.NewEvalError(diagnostics.TypeMismatch, "%s's variable argument must be a bare identifier", builtinName)
	}
	return v.Name, nil
}

// evalDerivative implements `D(expr, var, at)`: numerical derivative via
// central difference, step config.DerivativeStep.
func evalDerivative(n *ast.Call, ctx *mathcontext.Context, depth int) (value.Results, error) {
	if len(n.Args) != 3 {
		return nil, diagnostics.NewEvalError(diagnostics.ArityMismatch, "D(expr, var, at) requires exactly 3 arguments, got %d", len(n.Args))
	}
	varName, err := bareVarName(n.Args[1], "D")
	if err != nil {
		return nil, err
	}
	atR, err := evalNode(n.Args[2], ctx, depth)
	if err != nil {
		return nil, err
	}
	if err := checkCombinations(len(atR)); err != nil {
		return nil, err
	}

	h := config.DerivativeStep
	out := make(value.Results, len(atR))
	for i, atv := range atR {
		if !atv.IsScalar() {
			return nil, diagnostics.NewEvalError(diagnostics.TypeMismatch, "D(...)'s evaluation point must be a scalar, got %s", atv.KindName())
		}
		at := atv.Scalar
		fp, err := evalSingleScalar(n.Args[0], ctx.WithVariable(varName, value.Single(value.NewScalar(at+h))), depth+1)
		if err != nil {
			return nil, err
		}
		fm, err := evalSingleScalar(n.Args[0], ctx.WithVariable(varName, value.Single(value.NewScalar(at-h))), depth+1)
		if err != nil {
			return nil, err
		}
		v, err := finiteScalar((fp - fm) / (2 * h))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// evalIntegral implements `I(expr, var, a, b)`: composite Simpson's rule
// over config.IntegralSubintervals (fixed, even) subintervals.
func evalIntegral(n *ast.Call, ctx *mathcontext.Context, depth int) (value.Results, error) {
	if len(n.Args) != 4 {
		return nil, diagnostics.NewEvalError(diagnostics.ArityMismatch, "I(expr, var, a, b) requires exactly 4 arguments, got %d", len(n.Args))
	}
	varName, err := bareVarName(n.Args[1], "I")
	if err != nil {
		return nil, err
	}
	aR, err := evalNode(n.Args[2], ctx, depth)
	if err != nil {
		return nil, err
	}
	bR, err := evalNode(n.Args[3], ctx, depth)
	if err != nil {
		return nil, err
	}
	if err := checkCombinations(len(aR), len(bR)); err != nil {
		return nil, err
	}

	expr := n.Args[0]
	return value.CartesianProductMulti(func(tuple []value.Value) (value.Results, error) {
		av, bv := tuple[0], tuple[1]
		if !av.IsScalar() || !bv.IsScalar() {
			return nil, diagnostics.NewEvalError(diagnostics.TypeMismatch, "I(...)'s bounds must be scalars")
		}
		result, err := simpson(expr, varName, av.Scalar, bv.Scalar, ctx, depth)
		if err != nil {
			return nil, err
		}
		v, err := finiteScalar(result)
		if err != nil {
			return nil, err
		}
		return value.Results{v}, nil
	}, aR, bR)
}

func simpson(expr ast.Node, varName string, a, b float64, ctx *mathcontext.Context, depth int) (float64, error) {
	steps := config.IntegralSubintervals
	h := (b - a) / float64(steps)

	at := func(x float64) (float64, error) {
		return evalSingleScalar(expr, ctx.WithVariable(varName, value.Single(value.NewScalar(x))), depth+1)
	}

	fa, err := at(a)
	if err != nil {
		return 0, err
	}
	fb, err := at(b)
	if err != nil {
		return 0, err
	}
	sum := fa + fb
	for i := 1; i < steps; i++ {
		fx, err := at(a + float64(i)*h)
		if err != nil {
			return 0, err
		}
		if i%2 == 0 {
			sum += 2 * fx
		} else {
			sum += 4 * fx
		}
	}
	return sum * h / 3, nil
}
