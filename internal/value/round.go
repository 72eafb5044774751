package value

import (
	"math"

	"github.com/Waigo01/math-utils-lib/internal/diagnostics"
)

// Round rounds every scalar component of v to decimals decimal places.
func Round(v Value, decimals int) Value {
	switch v.Kind {
	case KindScalar:
		return NewScalar(roundTo(v.Scalar, decimals))
	case KindVector:
		out := make([]float64, len(v.Vector))
		for i, f := range v.Vector {
			out[i] = roundTo(f, decimals)
		}
		return NewVector(out)
	case KindMatrix:
		rows := v.RowMajorRows()
		out := make([][]float64, len(rows))
		for i, row := range rows {
			r := make([]float64, len(row))
			for j, f := range row {
				r[j] = roundTo(f, decimals)
			}
			out[i] = r
		}
		return FromRowMajorRows(out)
	}
	return v
}

// RoundResults rounds every Value in a Results collection.
func RoundResults(r Results, decimals int) Results {
	out := make(Results, len(r))
	for i, v := range r {
		out[i] = Round(v, decimals)
	}
	return out
}

func roundTo(f float64, decimals int) float64 {
	mult := math.Pow(10, float64(decimals))
	return math.Round(f*mult) / mult
}

// Abs implements the `abs` built-in: scalar absolute value, Euclidean norm
// for a vector.
func Abs(v Value) (Value, error) {
	switch v.Kind {
	case KindScalar:
		return NewScalar(math.Abs(v.Scalar)), nil
	case KindVector:
		sum := 0.0
		for _, f := range v.Vector {
			sum += f * f
		}
		return checkedScalar(math.Sqrt(sum))
	default:
		return Value{}, diagnostics.NewEvalError(diagnostics.TypeMismatch, "abs is not defined for a %s", v.KindName())
	}
}

// Determinant implements the `det` built-in (supplemented from
// original_source/src/maths/special.rs): cofactor expansion along the
// first row, square matrices only.
func Determinant(v Value) (Value, error) {
	if !v.IsMatrix() {
		return Value{}, diagnostics.NewEvalError(diagnostics.TypeMismatch, "det is only defined for a matrix, got %s", v.KindName())
	}
	rows := v.RowMajorRows()
	if len(rows) != len(rows[0]) {
		return Value{}, diagnostics.NewEvalError(diagnostics.DimensionMismatch, "det is only defined for a square matrix")
	}
	d, err := determinant(rows)
	if err != nil {
		return Value{}, err
	}
	return checkedScalar(d)
}

func determinant(m [][]float64) (float64, error) {
	n := len(m)
	if n == 1 {
		return m[0][0], nil
	}
	if n == 2 {
		return m[0][0]*m[1][1] - m[0][1]*m[1][0], nil
	}
	sum := 0.0
	sign := 1.0
	for col := 0; col < n; col++ {
		minor := make([][]float64, 0, n-1)
		for _, row := range m[1:] {
			r := make([]float64, 0, n-1)
			r = append(r, row[:col]...)
			r = append(r, row[col+1:]...)
			minor = append(minor, r)
		}
		sub, err := determinant(minor)
		if err != nil {
			return 0, err
		}
		sum += sign * m[0][col] * sub
		sign = -sign
	}
	return sum, nil
}
