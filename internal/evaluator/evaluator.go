// Package evaluator reduces an internal/ast tree to a value.Results under
// an internal/mathcontext.Context, applying the cartesian-expansion rule
// that is the evaluator's single unifying mechanic: wherever a node has
// sub-expressions, each is evaluated to its own Results and every operation
// is applied once per tuple of the cartesian product, leftmost
// sub-expression varying slowest.
package evaluator

import (
	"github.com/Waigo01/math-utils-lib/internal/ast"
	"github.com/Waigo01/math-utils-lib/internal/config"
	"github.com/Waigo01/math-utils-lib/internal/diagnostics"
	"github.com/Waigo01/math-utils-lib/internal/mathcontext"
	"github.com/Waigo01/math-utils-lib/internal/value"
)

// Evaluate reduces node to a Results under ctx.
func Evaluate(node ast.Node, ctx *mathcontext.Context) (value.Results, error) {
	return evalNode(node, ctx, 0)
}

func evalNode(node ast.Node, ctx *mathcontext.Context, depth int) (value.Results, error) {
	switch n := node.(type) {
	case *ast.NumberLit:
		return value.Single(value.NewScalar(n.Value)), nil

	case *ast.Var:
		r, ok := ctx.Variable(n.Name)
		if !ok {
			return nil, diagnostics.NewEvalError(diagnostics.UnknownIdentifier, "unknown identifier %q", n.Name)
		}
		return r, nil

	case *ast.VectorExpr:
		return evalVector(n, ctx, depth)

	case *ast.MatrixExpr:
		return evalMatrix(n, ctx, depth)

	case *ast.ListExpr:
		parts := make([]value.Results, len(n.Elements))
		for i, e := range n.Elements {
			r, err := evalNode(e, ctx, depth)
			if err != nil {
				return nil, err
			}
			parts[i] = r
		}
		return value.Concat(parts...), nil

	case *ast.UnaryOp:
		arg, err := evalNode(n.Arg, ctx, depth)
		if err != nil {
			return nil, err
		}
		out := make(value.Results, len(arg))
		for i, v := range arg {
			out[i] = value.Negate(v)
		}
		return out, nil

	case *ast.BinOp:
		return evalBinOp(n, ctx, depth)

	case *ast.Call:
		return evalCall(n, ctx, depth)

	case *ast.Equation:
		return nil, diagnostics.NewEvalError(diagnostics.ArityMismatch, "an equation is only meaningful as a direct argument of eq(...)")

	default:
		return nil, diagnostics.NewEvalError(diagnostics.TypeMismatch, "unsupported AST node %T", node)
	}
}

// checkCombinations guards the combinatorial expansion against the
// configured cap before it is materialized.
func checkCombinations(lens ...int) error {
	size := value.CartesianSize(lens...)
	if size < 0 || size > config.MaxCombinations {
		return diagnostics.NewEvalError(diagnostics.Explosion, "combinatorial expansion exceeds the %d-result cap", config.MaxCombinations)
	}
	return nil
}

func evalVector(n *ast.VectorExpr, ctx *mathcontext.Context, depth int) (value.Results, error) {
	operands, lens, err := evalAll(n.Elements, ctx, depth)
	if err != nil {
		return nil, err
	}
	if err := checkCombinations(lens...); err != nil {
		return nil, err
	}
	return value.CartesianProduct(func(tuple []value.Value) (value.Value, error) {
		comps := make([]float64, len(tuple))
		for i, v := range tuple {
			if !v.IsScalar() {
				return value.Value{}, diagnostics.NewEvalError(diagnostics.TypeMismatch, "vector component must be a scalar, got %s", v.KindName())
			}
			comps[i] = v.Scalar
		}
		return value.NewVector(comps), nil
	}, operands...)
}

func evalMatrix(n *ast.MatrixExpr, ctx *mathcontext.Context, depth int) (value.Results, error) {
	if len(n.Rows) == 0 {
		return nil, diagnostics.NewEvalError(diagnostics.EmptyContainer, "matrix literal has no rows")
	}
	var flat []ast.Node
	rowLen := len(n.Rows[0])
	for _, row := range n.Rows {
		if len(row) != rowLen {
			return nil, diagnostics.NewEvalError(diagnostics.DimensionMismatch, "matrix rows have inconsistent length")
		}
		flat = append(flat, row...)
	}
	operands, lens, err := evalAll(flat, ctx, depth)
	if err != nil {
		return nil, err
	}
	if err := checkCombinations(lens...); err != nil {
		return nil, err
	}
	nRows, nCols := len(n.Rows), rowLen
	return value.CartesianProduct(func(tuple []value.Value) (value.Value, error) {
		rows := make([][]float64, nRows)
		k := 0
		for i := 0; i < nRows; i++ {
			row := make([]float64, nCols)
			for j := 0; j < nCols; j++ {
				v := tuple[k]
				k++
				if !v.IsScalar() {
					return value.Value{}, diagnostics.NewEvalError(diagnostics.TypeMismatch, "matrix entry must be a scalar, got %s", v.KindName())
				}
				row[j] = v.Scalar
			}
			rows[i] = row
		}
		return value.NewMatrix(rows), nil
	}, operands...)
}

func evalAll(nodes []ast.Node, ctx *mathcontext.Context, depth int) ([]value.Results, []int, error) {
	operands := make([]value.Results, len(nodes))
	lens := make([]int, len(nodes))
	for i, e := range nodes {
		r, err := evalNode(e, ctx, depth)
		if err != nil {
			return nil, nil, err
		}
		operands[i] = r
		lens[i] = len(r)
	}
	return operands, lens, nil
}

func evalBinOp(n *ast.BinOp, ctx *mathcontext.Context, depth int) (value.Results, error) {
	lhs, err := evalNode(n.Lhs, ctx, depth)
	if err != nil {
		return nil, err
	}
	rhs, err := evalNode(n.Rhs, ctx, depth)
	if err != nil {
		return nil, err
	}
	if err := checkCombinations(len(lhs), len(rhs)); err != nil {
		return nil, err
	}

	if n.Op == "&" {
		return value.CartesianProductMulti(func(tuple []value.Value) (value.Results, error) {
			vs, err := value.PlusMinus(tuple[0], tuple[1])
			if err != nil {
				return nil, err
			}
			return value.Results(vs), nil
		}, lhs, rhs)
	}

	apply, ok := binOps[n.Op]
	if !ok {
		return nil, diagnostics.NewEvalError(diagnostics.TypeMismatch, "unknown operator %q", n.Op)
	}
	return value.CartesianProduct(func(tuple []value.Value) (value.Value, error) {
		return apply(tuple[0], tuple[1])
	}, lhs, rhs)
}

var binOps = map[string]func(a, b value.Value) (value.Value, error){
	"+": value.Add,
	"-": value.Sub,
	"*": value.Mul,
	"/": value.Div,
	"#": value.Cross,
	"^": value.Pow,
	"?": value.Index,
}
