package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Waigo01/math-utils-lib/internal/diagnostics"
	"github.com/Waigo01/math-utils-lib/internal/value"
)

func TestScalarArithmetic(t *testing.T) {
	sum, err := value.Add(value.NewScalar(2), value.NewScalar(3))
	require.NoError(t, err)
	require.Equal(t, 5.0, sum.Scalar)

	diff, err := value.Sub(value.NewScalar(2), value.NewScalar(3))
	require.NoError(t, err)
	require.Equal(t, -1.0, diff.Scalar)

	prod, err := value.Mul(value.NewScalar(2), value.NewScalar(3))
	require.NoError(t, err)
	require.Equal(t, 6.0, prod.Scalar)
}

func TestDivisionByZero(t *testing.T) {
	_, err := value.Div(value.NewScalar(1), value.NewScalar(0))
	require.Error(t, err)
	require.True(t, diagnostics.Is(err, diagnostics.DivisionByZero))
}

func TestMatVecMul(t *testing.T) {
	// B = diag(2,2,1), A = vector [3,5,8]. B*A = [6,10,8].
	b := value.FromRowMajorRows([][]float64{
		{2, 0, 0},
		{0, 2, 0},
		{0, 0, 1},
	})
	a := value.NewVector([]float64{3, 5, 8})

	out, err := value.Mul(b, a)
	require.NoError(t, err)
	require.True(t, out.IsVector())
	require.InDeltaSlice(t, []float64{6, 10, 8}, out.Vector, 1e-9)
}

func TestCrossProduct(t *testing.T) {
	a := value.NewVector([]float64{1, 0, 0})
	b := value.NewVector([]float64{0, 1, 0})
	out, err := value.Cross(a, b)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0, 0, 1}, out.Vector, 1e-9)
}

func TestPowNegativeBaseFractionalExponent(t *testing.T) {
	_, err := value.Pow(value.NewScalar(-4), value.NewScalar(0.5))
	require.Error(t, err)
	require.True(t, diagnostics.Is(err, diagnostics.DomainError))
}

func TestPlusMinus(t *testing.T) {
	vals, err := value.PlusMinus(value.NewScalar(3), value.NewScalar(2))
	require.NoError(t, err)
	require.Len(t, vals, 2)
	require.Equal(t, 5.0, vals[0].Scalar)
	require.Equal(t, 1.0, vals[1].Scalar)
}

func TestIndexOneBased(t *testing.T) {
	v := value.NewVector([]float64{10, 20, 30})
	out, err := value.Index(v, value.NewScalar(2))
	require.NoError(t, err)
	require.Equal(t, 20.0, out.Scalar)

	_, err = value.Index(v, value.NewScalar(4))
	require.True(t, diagnostics.Is(err, diagnostics.IndexOutOfRange))
}

func TestCartesianProductOrdering(t *testing.T) {
	// Leftmost operand varies slowest: for operands [a,b] x [c,d], tuples
	// are (a,c),(a,d),(b,c),(b,d).
	left := value.Results{value.NewScalar(1), value.NewScalar(2)}
	right := value.Results{value.NewScalar(10), value.NewScalar(20)}

	var seen [][2]float64
	_, err := value.CartesianProduct(func(tuple []value.Value) (value.Value, error) {
		seen = append(seen, [2]float64{tuple[0].Scalar, tuple[1].Scalar})
		return value.NewScalar(tuple[0].Scalar + tuple[1].Scalar), nil
	}, left, right)
	require.NoError(t, err)
	require.Equal(t, [][2]float64{{1, 10}, {1, 20}, {2, 10}, {2, 20}}, seen)
}

func TestDeterminant3x3(t *testing.T) {
	m := value.FromRowMajorRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 10},
	})
	out, err := value.Determinant(m)
	require.NoError(t, err)
	require.InDelta(t, -3.0, out.Scalar, 1e-9)
}

func TestAbsVectorIsNorm(t *testing.T) {
	v := value.NewVector([]float64{3, 4})
	out, err := value.Abs(v)
	require.NoError(t, err)
	require.InDelta(t, 5.0, out.Scalar, 1e-9)
}

func TestRound(t *testing.T) {
	out := value.Round(value.NewScalar(1.23456), 2)
	require.InDelta(t, 1.23, out.Scalar, 1e-9)
}
