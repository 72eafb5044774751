package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Waigo01/math-utils-lib/internal/ast"
	"github.com/Waigo01/math-utils-lib/internal/diagnostics"
	"github.com/Waigo01/math-utils-lib/internal/evaluator"
	"github.com/Waigo01/math-utils-lib/internal/mathcontext"
	"github.com/Waigo01/math-utils-lib/internal/parser"
	"github.com/Waigo01/math-utils-lib/internal/value"
)

func eval(t *testing.T, src string, ctx *mathcontext.Context) value.Results {
	t.Helper()
	n, err := parser.Parse(src)
	require.NoError(t, err, "parsing %q", src)
	r, err := evaluator.Evaluate(n, ctx)
	require.NoError(t, err, "evaluating %q", src)
	return r
}

func TestSimpleArithmetic(t *testing.T) {
	r := eval(t, "3*3", mathcontext.New())
	require.Len(t, r, 1)
	require.Equal(t, 9.0, r[0].Scalar)
}

func TestMatrixLiteralColumnMajorDefault(t *testing.T) {
	r := eval(t, "[[3,4,5],[1,2,3],[5,6,7]]", mathcontext.New())
	require.Len(t, r, 1)
	rows := r[0].RowMajorRows()
	require.Equal(t, [][]float64{{3, 1, 5}, {4, 2, 6}, {5, 3, 7}}, rows)
}

func TestSqrtIsTwoValued(t *testing.T) {
	r := eval(t, "sqrt(9)", mathcontext.New())
	require.Len(t, r, 2)
	require.Equal(t, 3.0, r[0].Scalar)
	require.Equal(t, -3.0, r[1].Scalar)
}

func TestSqrtNegativeIsDomainError(t *testing.T) {
	n, err := parser.Parse("sqrt(-1)")
	require.NoError(t, err)
	_, err = evaluator.Evaluate(n, mathcontext.New())
	require.True(t, diagnostics.Is(err, diagnostics.DomainError))
}

func TestAmpersandProducesTwoCartesianValues(t *testing.T) {
	r := eval(t, "5&2", mathcontext.New())
	require.Len(t, r, 2)
	require.Equal(t, 7.0, r[0].Scalar)
	require.Equal(t, 3.0, r[1].Scalar)
}

func TestCartesianExpansionInsideVectorLiteral(t *testing.T) {
	// Each "&" produces 2 values; a vector of two such components
	// cartesian-expands to 4 candidate vectors.
	r := eval(t, "[1&2, 3&4]", mathcontext.New())
	require.Len(t, r, 4)
}

func TestUserFunctionDefinitionAndCall(t *testing.T) {
	body, err := parser.Parse("5x^2+2x+x")
	require.NoError(t, err)
	ctx := mathcontext.FromFunctions(map[string]mathcontext.Function{
		"f": {Name: "f", Params: []string{"x"}, Body: body},
	})
	r := eval(t, "f(5)", ctx)
	require.Len(t, r, 1)
	require.Equal(t, 140.0, r[0].Scalar)
}

func TestUnknownIdentifier(t *testing.T) {
	n, err := parser.Parse("y")
	require.NoError(t, err)
	_, err = evaluator.Evaluate(n, mathcontext.New())
	require.True(t, diagnostics.Is(err, diagnostics.UnknownIdentifier))
}

func TestDivisionByZeroPropagates(t *testing.T) {
	n, err := parser.Parse("1/0")
	require.NoError(t, err)
	_, err = evaluator.Evaluate(n, mathcontext.New())
	require.True(t, diagnostics.Is(err, diagnostics.DivisionByZero))
}

func TestRecursionCapOnSelfReferencingFunction(t *testing.T) {
	body, err := parser.Parse("f(x)")
	require.NoError(t, err)
	ctx := mathcontext.FromFunctions(map[string]mathcontext.Function{
		"f": {Name: "f", Params: []string{"x"}, Body: body},
	})
	n, err := parser.Parse("f(1)")
	require.NoError(t, err)
	_, err = evaluator.Evaluate(n, ctx)
	require.True(t, diagnostics.Is(err, diagnostics.Recursion))
}

func TestExplosionCapOnCombinatorialBlowup(t *testing.T) {
	// Build a chain of & operators whose cartesian expansion quickly
	// exceeds config.MaxCombinations (2^k growth).
	src := "1"
	for i := 0; i < 25; i++ {
		src += "&1"
	}
	n, err := parser.Parse(src)
	require.NoError(t, err)
	_, err = evaluator.Evaluate(n, mathcontext.New())
	require.True(t, diagnostics.Is(err, diagnostics.Explosion))
}

func TestEquationNodeIsNotDirectlyEvaluable(t *testing.T) {
	lhs := ast.NewVar(0, "x")
	rhs := ast.NewNumberLit(0, 1)
	eq := ast.NewEquation(0, lhs, rhs)
	_, err := evaluator.Evaluate(eq, mathcontext.New())
	require.Error(t, err)
}

func TestDerivative(t *testing.T) {
	r := eval(t, "D(x^2, x, 3)", mathcontext.New())
	require.Len(t, r, 1)
	rounded := value.Round(r[0], 6)
	require.InDelta(t, 6.0, rounded.Scalar, 1e-6)
}

func TestRootBuiltin(t *testing.T) {
	r := eval(t, "root(-8, 3)", mathcontext.New())
	require.Len(t, r, 1)
	require.InDelta(t, -2.0, r[0].Scalar, 1e-9)
}

func TestRootEvenDegreeOfNegativeIsDomainError(t *testing.T) {
	n, err := parser.Parse("root(-8, 2)")
	require.NoError(t, err)
	_, err = evaluator.Evaluate(n, mathcontext.New())
	require.True(t, diagnostics.Is(err, diagnostics.DomainError))
}
