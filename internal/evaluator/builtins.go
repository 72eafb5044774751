package evaluator

import (
	"math"

	"github.com/Waigo01/math-utils-lib/internal/ast"
	"github.com/Waigo01/math-utils-lib/internal/config"
	"github.com/Waigo01/math-utils-lib/internal/diagnostics"
	"github.com/Waigo01/math-utils-lib/internal/mathcontext"
	"github.com/Waigo01/math-utils-lib/internal/value"
)

// unaryBuiltins are the scalar/vector built-ins of arity 1. sqrt is handled
// separately since it is multi-valued.
var unaryBuiltins = map[string]func(value.Value) (value.Results, error){
	"sin":    mathFn(math.Sin),
	"cos":    mathFn(math.Cos),
	"tan":    mathFn(math.Tan),
	"arcsin": domainFn(math.Asin, func(f float64) bool { return f >= -1 && f <= 1 }, "arcsin is only defined on [-1, 1]"),
	"arccos": domainFn(math.Acos, func(f float64) bool { return f >= -1 && f <= 1 }, "arccos is only defined on [-1, 1]"),
	"arctan": mathFn(math.Atan),
	"ln":     domainFn(math.Log, func(f float64) bool { return f > 0 }, "ln is only defined for positive numbers"),
	"abs":    builtinAbs,
	"det":    builtinDet,
}

func mathFn(f func(float64) float64) func(value.Value) (value.Results, error) {
	return func(v value.Value) (value.Results, error) {
		if !v.IsScalar() {
			return nil, diagnostics.NewEvalError(diagnostics.TypeMismatch, "expected a scalar, got %s", v.KindName())
		}
		r, err := finiteScalar(f(v.Scalar))
		if err != nil {
			return nil, err
		}
		return value.Results{r}, nil
	}
}

func domainFn(f func(float64) float64, inDomain func(float64) bool, msg string) func(value.Value) (value.Results, error) {
	return func(v value.Value) (value.Results, error) {
		if !v.IsScalar() {
			return nil, diagnostics.NewEvalError(diagnostics.TypeMismatch, "expected a scalar, got %s", v.KindName())
		}
		if !inDomain(v.Scalar) {
			return nil, diagnostics.NewEvalError(diagnostics.DomainError, "%s (got %g)", msg, v.Scalar)
		}
		r, err := finiteScalar(f(v.Scalar))
		if err != nil {
			return nil, err
		}
		return value.Results{r}, nil
	}
}

func builtinAbs(v value.Value) (value.Results, error) {
	r, err := value.Abs(v)
	if err != nil {
		return nil, err
	}
	return value.Results{r}, nil
}

func builtinDet(v value.Value) (value.Results, error) {
	r, err := value.Determinant(v)
	if err != nil {
		return nil, err
	}
	return value.Results{r}, nil
}

// builtinSqrt implements the `sqrt` duality: a non-negative scalar yields
// both real roots.
func builtinSqrt(v value.Value) (value.Results, error) {
	if !v.IsScalar() {
		return nil, diagnostics.NewEvalError(diagnostics.TypeMismatch, "sqrt expects a scalar, got %s", v.KindName())
	}
	if v.Scalar < 0 {
		return nil, diagnostics.NewEvalError(diagnostics.DomainError, "sqrt of negative number %g", v.Scalar)
	}
	root := math.Sqrt(v.Scalar)
	pos, err := finiteScalar(root)
	if err != nil {
		return nil, err
	}
	neg, err := finiteScalar(-root)
	if err != nil {
		return nil, err
	}
	return value.Results{pos, neg}, nil
}

// finiteScalar wraps f as a scalar Value, failing with NonFiniteResult if
// it is NaN or infinite.
func finiteScalar(f float64) (value.Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return value.Value{}, diagnostics.NewEvalError(diagnostics.NonFiniteResult, "operation produced a non-finite result")
	}
	return value.NewScalar(f), nil
}

func evalCall(n *ast.Call, ctx *mathcontext.Context, depth int) (value.Results, error) {
	switch n.Name {
	case "eq":
		return evalEq(n, ctx, depth)
	case "D":
		return evalDerivative(n, ctx, depth)
	case "I":
		return evalIntegral(n, ctx, depth)
	case "sqrt":
		return applyUnaryBuiltin(n, builtinSqrt, ctx, depth)
	case "root":
		return evalRoot(n, ctx, depth)
	}
	if fn, ok := unaryBuiltins[n.Name]; ok {
		return applyUnaryBuiltin(n, fn, ctx, depth)
	}
	if f, ok := ctx.Function(n.Name); ok {
		return evalUserFunction(n, f, ctx, depth)
	}
	return nil, diagnostics.NewEvalError(diagnostics.UnknownIdentifier, "unknown function %q", n.Name)
}

func applyUnaryBuiltin(n *ast.Call, fn func(value.Value) (value.Results, error), ctx *mathcontext.Context, depth int) (value.Results, error) {
	if len(n.Args) != 1 {
		return nil, diagnostics.NewEvalError(diagnostics.ArityMismatch, "%s expects 1 argument, got %d", n.Name, len(n.Args))
	}
	argR, err := evalNode(n.Args[0], ctx, depth)
	if err != nil {
		return nil, err
	}
	if err := checkCombinations(len(argR)); err != nil {
		return nil, err
	}
	return value.CartesianProductMulti(func(tuple []value.Value) (value.Results, error) {
		return fn(tuple[0])
	}, argR)
}

// evalRoot implements `root(a, n)`, the principal real nth root.
func evalRoot(n *ast.Call, ctx *mathcontext.Context, depth int) (value.Results, error) {
	if len(n.Args) != 2 {
		return nil, diagnostics.NewEvalError(diagnostics.ArityMismatch, "root(a, n) expects 2 arguments, got %d", len(n.Args))
	}
	a, err := evalNode(n.Args[0], ctx, depth)
	if err != nil {
		return nil, err
	}
	deg, err := evalNode(n.Args[1], ctx, depth)
	if err != nil {
		return nil, err
	}
	if err := checkCombinations(len(a), len(deg)); err != nil {
		return nil, err
	}
	return value.CartesianProduct(func(tuple []value.Value) (value.Value, error) {
		return principalRoot(tuple[0], tuple[1])
	}, a, deg)
}

func principalRoot(a, deg value.Value) (value.Value, error) {
	if !a.IsScalar() || !deg.IsScalar() {
		return value.Value{}, diagnostics.NewEvalError(diagnostics.TypeMismatch, "root(a, n) requires scalar arguments")
	}
	if deg.Scalar != math.Trunc(deg.Scalar) || deg.Scalar == 0 {
		return value.Value{}, diagnostics.NewEvalError(diagnostics.DomainError, "root degree must be a non-zero whole number, got %g", deg.Scalar)
	}
	nInt := int(deg.Scalar)
	if a.Scalar < 0 {
		if nInt%2 == 0 {
			return value.Value{}, diagnostics.NewEvalError(diagnostics.DomainError, "no real %d-th root of negative number %g", nInt, a.Scalar)
		}
		return finiteScalar(-math.Pow(-a.Scalar, 1/float64(nInt)))
	}
	return finiteScalar(math.Pow(a.Scalar, 1/float64(nInt)))
}

func evalUserFunction(n *ast.Call, fn mathcontext.Function, ctx *mathcontext.Context, depth int) (value.Results, error) {
	if depth+1 > config.MaxRecursionDepth {
		return nil, diagnostics.NewEvalError(diagnostics.Recursion, "user function call depth exceeded %d", config.MaxRecursionDepth)
	}
	if len(n.Args) != len(fn.Params) {
		return nil, diagnostics.NewEvalError(diagnostics.ArityMismatch, "%s expects %d argument(s), got %d", fn.Name, len(fn.Params), len(n.Args))
	}
	operands, lens, err := evalAll(n.Args, ctx, depth)
	if err != nil {
		return nil, err
	}
	if err := checkCombinations(lens...); err != nil {
		return nil, err
	}
	return value.CartesianProductMulti(func(tuple []value.Value) (value.Results, error) {
		// Free identifiers in the body resolve in the caller's Context
		// first, per spec.md §4.6; only the parameters themselves shadow
		// it here.
		child := ctx
		for i, p := range fn.Params {
			child = child.WithVariable(p, value.Single(tuple[i]))
		}
		return evalNode(fn.Body, child, depth+1)
	}, operands...)
}
