package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Waigo01/math-utils-lib/internal/ast"
	"github.com/Waigo01/math-utils-lib/internal/diagnostics"
	"github.com/Waigo01/math-utils-lib/internal/parser"
)

func TestUnaryBindsLooserThanPower(t *testing.T) {
	// -2^2 parses as -(2^2), not (-2)^2.
	n, err := parser.Parse("-2^2")
	require.NoError(t, err)

	u, ok := n.(*ast.UnaryOp)
	require.True(t, ok, "expected top-level UnaryOp, got %T", n)
	require.Equal(t, "-", u.Op)

	pow, ok := u.Arg.(*ast.BinOp)
	require.True(t, ok, "expected the unary's operand to be a BinOp, got %T", u.Arg)
	require.Equal(t, "^", pow.Op)
}

func TestPowerRightAssociativeAllowsNestedUnary(t *testing.T) {
	// 2^-2 parses with the unary minus inside the exponent.
	n, err := parser.Parse("2^-2")
	require.NoError(t, err)

	pow, ok := n.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "^", pow.Op)

	_, ok = pow.Rhs.(*ast.UnaryOp)
	require.True(t, ok, "expected exponent to be a UnaryOp, got %T", pow.Rhs)
}

func TestImplicitMultiplicationAfterNumber(t *testing.T) {
	// 3x parses as 3 * x.
	n, err := parser.Parse("3x")
	require.NoError(t, err)
	bin, ok := n.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "*", bin.Op)

	lhs, ok := bin.Lhs.(*ast.NumberLit)
	require.True(t, ok)
	require.Equal(t, 3.0, lhs.Value)

	rhs, ok := bin.Rhs.(*ast.Var)
	require.True(t, ok)
	require.Equal(t, "x", rhs.Name)
}

func TestImplicitMultiplicationAfterClosingParen(t *testing.T) {
	// 2(x+1) parses as 2 * (x+1).
	n, err := parser.Parse("2(x+1)")
	require.NoError(t, err)
	bin, ok := n.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "*", bin.Op)
	_, ok = bin.Rhs.(*ast.BinOp)
	require.True(t, ok)
}

func TestIdentifierJuxtapositionIsNotImplicitMultiplication(t *testing.T) {
	// "x y" is not a valid expression: an identifier alone does not end in
	// NUMBER or a closing bracket, so no implicit "*" applies and the
	// second identifier is left dangling.
	_, err := parser.Parse("x y")
	require.Error(t, err)
	require.True(t, diagnostics.Is(err, diagnostics.UnexpectedToken))
}

func TestImplicitMultiplicationBindsBetweenMulDivAndPower(t *testing.T) {
	// 2x^2 parses as 2 * (x^2), not (2x)^2.
	n, err := parser.Parse("2x^2")
	require.NoError(t, err)
	bin, ok := n.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "*", bin.Op)

	pow, ok := bin.Rhs.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "^", pow.Op)
}

func TestEqScopedAssignment(t *testing.T) {
	n, err := parser.Parse("eq(x=9, x)")
	require.NoError(t, err)
	call, ok := n.(*ast.Call)
	require.True(t, ok)
	require.Equal(t, "eq", call.Name)
	require.Len(t, call.Args, 2)

	_, ok = call.Args[0].(*ast.Equation)
	require.True(t, ok)
}

func TestAssignOutsideEqIsMisplaced(t *testing.T) {
	_, err := parser.Parse("x=9")
	require.Error(t, err)
	require.True(t, diagnostics.Is(err, diagnostics.MisplacedEquals))
}

func TestAssignInsideNestedNonEqCallIsStillMisplaced(t *testing.T) {
	// The "=" permission granted for a direct eq(...) argument must not
	// leak into a nested call's own argument list.
	_, err := parser.Parse("eq(f(x=1)=9, x)")
	require.Error(t, err)
	require.True(t, diagnostics.Is(err, diagnostics.MisplacedEquals))
}

func TestUnbalancedBracket(t *testing.T) {
	_, err := parser.Parse("(1+2")
	require.Error(t, err)
	require.True(t, diagnostics.Is(err, diagnostics.UnbalancedBracket))
}

func TestEmptyVectorLiteral(t *testing.T) {
	_, err := parser.Parse("[]")
	require.Error(t, err)
	require.True(t, diagnostics.Is(err, diagnostics.EmptyContainer))
}

func TestRaggedMatrix(t *testing.T) {
	_, err := parser.Parse("[[1,2],[3]]")
	require.Error(t, err)
	require.True(t, diagnostics.Is(err, diagnostics.RaggedMatrix))
}

func TestUnknownOperatorCharacter(t *testing.T) {
	_, err := parser.Parse("1 @ 2")
	require.Error(t, err)
	require.True(t, diagnostics.Is(err, diagnostics.UnknownOperator))
}

func TestVectorVsMatrixDisambiguation(t *testing.T) {
	v, err := parser.Parse("[1,2,3]")
	require.NoError(t, err)
	_, ok := v.(*ast.VectorExpr)
	require.True(t, ok)

	m, err := parser.Parse("[[1,2],[3,4]]")
	require.NoError(t, err)
	mat, ok := m.(*ast.MatrixExpr)
	require.True(t, ok)
	require.Len(t, mat.Rows, 2)
}

func TestListLiteral(t *testing.T) {
	n, err := parser.Parse("{1,2,3}")
	require.NoError(t, err)
	list, ok := n.(*ast.ListExpr)
	require.True(t, ok)
	require.Len(t, list.Elements, 3)
}

func TestIndexOperatorLeftAssociative(t *testing.T) {
	n, err := parser.Parse("v?1?2")
	require.NoError(t, err)
	outer, ok := n.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "?", outer.Op)
	inner, ok := outer.Lhs.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "?", inner.Op)
}

func TestImplicitMultiplicationAfterUnaryMinusOperand(t *testing.T) {
	// "-6x" must parse as (-6)*x: the unary expression's last token was
	// the NUMBER 6, so implicit multiplication still applies.
	n, err := parser.Parse("-6x")
	require.NoError(t, err)
	bin, ok := n.(*ast.BinOp)
	require.True(t, ok, "expected top-level BinOp, got %T", n)
	require.Equal(t, "*", bin.Op)

	u, ok := bin.Lhs.(*ast.UnaryOp)
	require.True(t, ok, "expected lhs to be a UnaryOp, got %T", bin.Lhs)
	require.Equal(t, "-", u.Op)

	_, ok = bin.Rhs.(*ast.Var)
	require.True(t, ok, "expected rhs to be a Var, got %T", bin.Rhs)
}

func TestEqWithUnaryMinusTermInThirdEquation(t *testing.T) {
	// Regression for spec.md's three-variable linear system worked
	// example: the third equation's leading "-6x" term must not break
	// eq(...)'s argument parsing.
	n, err := parser.Parse("eq(2x+5y+2z=-38, 3x-2y+4z=17, -6x+y-7z=-12, x, y, z)")
	require.NoError(t, err)
	call, ok := n.(*ast.Call)
	require.True(t, ok)
	require.Equal(t, "eq", call.Name)
	require.Len(t, call.Args, 6)
}

func TestCallArgumentParsing(t *testing.T) {
	n, err := parser.Parse("f(x, y+1)")
	require.NoError(t, err)
	call, ok := n.(*ast.Call)
	require.True(t, ok)
	require.Equal(t, "f", call.Name)
	require.Len(t, call.Args, 2)
}
