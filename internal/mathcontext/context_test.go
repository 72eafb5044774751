package mathcontext_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Waigo01/math-utils-lib/internal/ast"
	"github.com/Waigo01/math-utils-lib/internal/mathcontext"
	"github.com/Waigo01/math-utils-lib/internal/value"
)

func TestWithVariableDoesNotMutateReceiver(t *testing.T) {
	base := mathcontext.New()
	derived := base.WithVariable("x", value.Single(value.NewScalar(5)))

	_, ok := base.Variable("x")
	require.False(t, ok, "base context must remain untouched")

	got, ok := derived.Variable("x")
	require.True(t, ok)
	require.Equal(t, 5.0, got[0].Scalar)
}

func TestWithVariableChaining(t *testing.T) {
	c := mathcontext.New().
		WithVariable("x", value.Single(value.NewScalar(1))).
		WithVariable("y", value.Single(value.NewScalar(2)))

	x, ok := c.Variable("x")
	require.True(t, ok)
	require.Equal(t, 1.0, x[0].Scalar)

	y, ok := c.Variable("y")
	require.True(t, ok)
	require.Equal(t, 2.0, y[0].Scalar)
}

func TestFunctionLookup(t *testing.T) {
	body := ast.NewNumberLit(0, 42)
	c := mathcontext.FromFunctions(map[string]mathcontext.Function{
		"f": {Name: "f", Params: []string{"x"}, Body: body},
	})

	f, ok := c.Function("f")
	require.True(t, ok)
	require.Equal(t, []string{"x"}, f.Params)

	_, ok = c.Function("g")
	require.False(t, ok)
}
