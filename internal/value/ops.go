package value

import (
	"math"

	"github.com/Waigo01/math-utils-lib/internal/diagnostics"
)

func finite(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return diagnostics.NewEvalError(diagnostics.NonFiniteResult, "operation produced a non-finite result")
	}
	return nil
}

func checkFinite(v Value) error {
	switch v.Kind {
	case KindScalar:
		return finite(v.Scalar)
	case KindVector:
		for _, f := range v.Vector {
			if err := finite(f); err != nil {
				return err
			}
		}
	case KindMatrix:
		for _, row := range v.Matrix {
			for _, f := range row {
				if err := finite(f); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func typeMismatch(op string, a, b Value) error {
	return diagnostics.NewEvalError(diagnostics.TypeMismatch, "operator %q is not defined for %s and %s", op, a.KindName(), b.KindName())
}

// Add implements `+`, grounded on original_source/src/maths/add_sub.rs.
func Add(a, b Value) (Value, error) {
	var out Value
	switch {
	case a.IsScalar() && b.IsScalar():
		out = NewScalar(a.Scalar + b.Scalar)
	case a.IsVector() && b.IsVector():
		if len(a.Vector) != len(b.Vector) {
			return Value{}, diagnostics.NewEvalError(diagnostics.DimensionMismatch, "vectors have different dimensions (%d vs %d)", len(a.Vector), len(b.Vector))
		}
		v := make([]float64, len(a.Vector))
		for i := range v {
			v[i] = a.Vector[i] + b.Vector[i]
		}
		out = NewVector(v)
	case a.IsMatrix() && b.IsMatrix():
		ra, rb := a.RowMajorRows(), b.RowMajorRows()
		if len(ra) != len(rb) || len(ra[0]) != len(rb[0]) {
			return Value{}, diagnostics.NewEvalError(diagnostics.DimensionMismatch, "matrices have different shapes")
		}
		rows := make([][]float64, len(ra))
		for i := range ra {
			row := make([]float64, len(ra[i]))
			for j := range row {
				row[j] = ra[i][j] + rb[i][j]
			}
			rows[i] = row
		}
		out = FromRowMajorRows(rows)
	default:
		return Value{}, typeMismatch("+", a, b)
	}
	return out, checkFinite(out)
}

// Sub implements `-`.
func Sub(a, b Value) (Value, error) {
	return Add(a, Negate(b))
}

// Negate implements unary minus, negating every component.
func Negate(a Value) Value {
	switch a.Kind {
	case KindScalar:
		return NewScalar(-a.Scalar)
	case KindVector:
		v := make([]float64, len(a.Vector))
		for i, f := range a.Vector {
			v[i] = -f
		}
		return NewVector(v)
	case KindMatrix:
		rows := a.RowMajorRows()
		out := make([][]float64, len(rows))
		for i, row := range rows {
			r := make([]float64, len(row))
			for j, f := range row {
				r[j] = -f
			}
			out[i] = r
		}
		return FromRowMajorRows(out)
	}
	return a
}

// Mul implements `*`: scalar mul, scale, dot product, mat-vec, mat-mat,
// grounded on original_source/src/maths/mult_div.rs.
func Mul(a, b Value) (Value, error) {
	var out Value
	switch {
	case a.IsScalar() && b.IsScalar():
		out = NewScalar(a.Scalar * b.Scalar)
	case a.IsScalar() && b.IsVector():
		out = scaleVector(b.Vector, a.Scalar)
	case a.IsVector() && b.IsScalar():
		out = scaleVector(a.Vector, b.Scalar)
	case a.IsScalar() && b.IsMatrix():
		out = scaleMatrix(b, a.Scalar)
	case a.IsMatrix() && b.IsScalar():
		out = scaleMatrix(a, b.Scalar)
	case a.IsVector() && b.IsVector():
		if len(a.Vector) != len(b.Vector) {
			return Value{}, diagnostics.NewEvalError(diagnostics.DimensionMismatch, "vectors have different dimensions (%d vs %d)", len(a.Vector), len(b.Vector))
		}
		sum := 0.0
		for i := range a.Vector {
			sum += a.Vector[i] * b.Vector[i]
		}
		out = NewScalar(sum)
	case a.IsMatrix() && b.IsVector():
		rows := a.RowMajorRows()
		if len(rows[0]) != len(b.Vector) {
			return Value{}, diagnostics.NewEvalError(diagnostics.DimensionMismatch, "matrix and vector have incompatible dimensions")
		}
		v := make([]float64, len(rows))
		for i, row := range rows {
			sum := 0.0
			for j, f := range row {
				sum += f * b.Vector[j]
			}
			v[i] = sum
		}
		out = NewVector(v)
	case a.IsMatrix() && b.IsMatrix():
		ra, rb := a.RowMajorRows(), b.RowMajorRows()
		if len(ra[0]) != len(rb) {
			return Value{}, diagnostics.NewEvalError(diagnostics.DimensionMismatch, "matrices have incompatible inner dimensions")
		}
		rows := make([][]float64, len(ra))
		for i := range ra {
			row := make([]float64, len(rb[0]))
			for j := range row {
				sum := 0.0
				for k := range rb {
					sum += ra[i][k] * rb[k][j]
				}
				row[j] = sum
			}
			rows[i] = row
		}
		out = FromRowMajorRows(rows)
	default:
		return Value{}, typeMismatch("*", a, b)
	}
	return out, checkFinite(out)
}

func scaleVector(v []float64, s float64) Value {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = f * s
	}
	return NewVector(out)
}

func scaleMatrix(m Value, s float64) Value {
	rows := m.RowMajorRows()
	out := make([][]float64, len(rows))
	for i, row := range rows {
		r := make([]float64, len(row))
		for j, f := range row {
			r[j] = f * s
		}
		out[i] = r
	}
	return FromRowMajorRows(out)
}

// Div implements `/`: scalar div, vector/matrix divided by a scalar.
func Div(a, b Value) (Value, error) {
	if b.IsScalar() && b.Scalar == 0 {
		return Value{}, diagnostics.NewEvalError(diagnostics.DivisionByZero, "division by zero")
	}
	switch {
	case a.IsScalar() && b.IsScalar():
		return checkedScalar(a.Scalar / b.Scalar)
	case a.IsVector() && b.IsScalar():
		return checked(scaleVector(a.Vector, 1/b.Scalar))
	case a.IsMatrix() && b.IsScalar():
		return checked(scaleMatrix(a, 1/b.Scalar))
	default:
		return Value{}, typeMismatch("/", a, b)
	}
}

func checked(v Value) (Value, error) { return v, checkFinite(v) }
func checkedScalar(f float64) (Value, error) {
	v := NewScalar(f)
	return v, checkFinite(v)
}

// Cross implements `#`, the 3-vector cross product. Vectors of dim < 3 are
// zero-padded; dim > 3 is an error. Grounded on
// original_source/src/maths/cross_pow.rs.
func Cross(a, b Value) (Value, error) {
	if !a.IsVector() || !b.IsVector() {
		return Value{}, typeMismatch("#", a, b)
	}
	if len(a.Vector) != len(b.Vector) {
		return Value{}, diagnostics.NewEvalError(diagnostics.DimensionMismatch, "vectors have different dimensions (%d vs %d)", len(a.Vector), len(b.Vector))
	}
	if len(a.Vector) > 3 {
		return Value{}, diagnostics.NewEvalError(diagnostics.DimensionMismatch, "cross product is undefined for vectors of dimension > 3")
	}
	ea, eb := expand3(a.Vector), expand3(b.Vector)
	out := []float64{
		ea[1]*eb[2] - ea[2]*eb[1],
		ea[2]*eb[0] - ea[0]*eb[2],
		ea[0]*eb[1] - ea[1]*eb[0],
	}
	return checked(NewVector(out))
}

func expand3(v []float64) [3]float64 {
	var e [3]float64
	copy(e[:], v)
	return e
}

// Pow implements `^`, scalar power only.
func Pow(a, b Value) (Value, error) {
	if !a.IsScalar() || !b.IsScalar() {
		return Value{}, typeMismatch("^", a, b)
	}
	if a.Scalar < 0 && !isWholeNumber(b.Scalar) {
		return Value{}, diagnostics.NewEvalError(diagnostics.DomainError, "negative base %g with fractional exponent %g is undefined", a.Scalar, b.Scalar)
	}
	return checkedScalar(math.Pow(a.Scalar, b.Scalar))
}

func isWholeNumber(f float64) bool { return f == math.Trunc(f) }

// PlusMinus implements `&`: the two-valued a+b, a-b.
func PlusMinus(a, b Value) ([]Value, error) {
	sum, err := Add(a, b)
	if err != nil {
		return nil, err
	}
	diff, err := Sub(a, b)
	if err != nil {
		return nil, err
	}
	return []Value{sum, diff}, nil
}

// Index implements `?`, 1-based indexing into a vector, yielding a scalar.
func Index(a, idx Value) (Value, error) {
	if !a.IsVector() {
		return Value{}, diagnostics.NewEvalError(diagnostics.TypeMismatch, "operator \"?\" is only defined for a vector left operand, got %s", a.KindName())
	}
	if !idx.IsScalar() || !isWholeNumber(idx.Scalar) {
		return Value{}, diagnostics.NewEvalError(diagnostics.TypeMismatch, "index must be a whole-number scalar")
	}
	i := int(idx.Scalar)
	if i < 1 || i > len(a.Vector) {
		return Value{}, diagnostics.NewEvalError(diagnostics.IndexOutOfRange, "index %d out of range for vector of length %d", i, len(a.Vector))
	}
	return NewScalar(a.Vector[i-1]), nil
}

// Equal compares two Values for equality within tolerance: same kind, same
// shape, and every component within tol of its counterpart.
func Equal(a, b Value, tol float64) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindScalar:
		return math.Abs(a.Scalar-b.Scalar) <= tol
	case KindVector:
		if len(a.Vector) != len(b.Vector) {
			return false
		}
		for i := range a.Vector {
			if math.Abs(a.Vector[i]-b.Vector[i]) > tol {
				return false
			}
		}
		return true
	case KindMatrix:
		ra, rb := a.RowMajorRows(), b.RowMajorRows()
		if len(ra) != len(rb) || len(ra[0]) != len(rb[0]) {
			return false
		}
		for i := range ra {
			for j := range ra[i] {
				if math.Abs(ra[i][j]-rb[i][j]) > tol {
					return false
				}
			}
		}
		return true
	}
	return false
}
