package mathutils

import "github.com/Waigo01/math-utils-lib/internal/value"

// Kind discriminates a Value's tag: Scalar, Vector, or Matrix.
type Kind = value.Kind

const (
	KindScalar = value.KindScalar
	KindVector = value.KindVector
	KindMatrix = value.KindMatrix
)

// Value is one candidate outcome of an evaluation: a scalar, a vector, or
// a matrix. A matrix's Matrix field is stored in the library's configured
// orientation (columns by default); RowMajorRows returns its rows
// regardless of that orientation.
type Value = value.Value

// NewScalar constructs a scalar Value.
func NewScalar(f float64) Value { return value.NewScalar(f) }

// NewVector constructs a vector Value. Panics if v is empty.
func NewVector(v []float64) Value { return value.NewVector(v) }

// NewMatrixRowMajor constructs a matrix Value from row-major data,
// regardless of the library's configured internal storage orientation.
// Panics if rows is empty or ragged.
func NewMatrixRowMajor(rows [][]float64) Value { return value.FromRowMajorRows(rows) }

// Results is an ordered, non-empty collection of candidate Values.
type Results []Value

func toInner(r Results) value.Results { return value.Results(r) }

func fromInner(r value.Results) Results { return Results(r) }
