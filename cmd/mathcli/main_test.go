package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Waigo01/math-utils-lib/pkg/mathutils"
)

func TestEvalLineDirectExpression(t *testing.T) {
	vars := map[string]mathutils.Results{}
	out, isErr := evalLine("3*3", vars, defaultConfig())
	require.False(t, isErr)
	require.Equal(t, "9", out)
}

func TestEvalLineAssignmentBindsVariable(t *testing.T) {
	vars := map[string]mathutils.Results{}
	out, isErr := evalLine("x = 2+2", vars, defaultConfig())
	require.False(t, isErr)
	require.Equal(t, "4", out)
	require.Contains(t, vars, "x")

	out, isErr = evalLine("x*10", vars, defaultConfig())
	require.False(t, isErr)
	require.Equal(t, "40", out)
}

func TestEvalLineErrorIsReported(t *testing.T) {
	vars := map[string]mathutils.Results{}
	out, isErr := evalLine("1/0", vars, defaultConfig())
	require.True(t, isErr)
	require.Contains(t, out, "error:")
}

func TestFormatResultsJoinsMultipleValues(t *testing.T) {
	vars := map[string]mathutils.Results{}
	out, isErr := evalLine("eq(x^2=9, x)", vars, defaultConfig())
	require.False(t, isErr)
	require.Equal(t, "-3  |  3", out)
}
