// Package value implements the three-variant Value algebra: Scalar, Vector
// and Matrix, plus Results, the ordered multi-value collection every
// evaluation produces.
//
// Grounded on original_source/src/basetypes.rs (the Value enum) and its
// maths/*.rs op implementations; matrix storage orientation follows
// internal/config.RowMajor exactly as original_source/src/parser.rs's
// `#[cfg(not(feature = "row-major"))]` transpose does.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Waigo01/math-utils-lib/internal/config"
)

// Kind discriminates the Value variants.
type Kind int

const (
	KindScalar Kind = iota
	KindVector
	KindMatrix
)

// Value is a tagged union of Scalar, Vector and Matrix. Only the field
// matching Kind is meaningful.
type Value struct {
	Kind   Kind
	Scalar float64
	Vector []float64
	// Matrix is stored in the orientation config.RowMajor selects: the
	// outer slice is rows when RowMajor is true, columns otherwise. Use
	// RowMajorRows() to get a normalized row-major view for computation.
	Matrix [][]float64
}

// NewScalar builds a Scalar value.
func NewScalar(f float64) Value { return Value{Kind: KindScalar, Scalar: f} }

// NewVector builds a Vector value. Panics if v is empty; callers are
// expected to have already validated non-emptiness (the parser and
// evaluator never construct an empty vector).
func NewVector(v []float64) Value {
	if len(v) == 0 {
		panic("value: empty vector")
	}
	return Value{Kind: KindVector, Vector: v}
}

// NewMatrix builds a Matrix value from data already in the configured
// outer-sequence orientation.
func NewMatrix(m [][]float64) Value {
	if len(m) == 0 || len(m[0]) == 0 {
		panic("value: empty matrix")
	}
	width := len(m[0])
	for _, row := range m {
		if len(row) != width {
			panic("value: ragged matrix")
		}
	}
	return Value{Kind: KindMatrix, Matrix: m}
}

func (v Value) IsScalar() bool { return v.Kind == KindScalar }
func (v Value) IsVector() bool { return v.Kind == KindVector }
func (v Value) IsMatrix() bool { return v.Kind == KindMatrix }

// KindName returns a human name for error messages.
func (v Value) KindName() string {
	switch v.Kind {
	case KindScalar:
		return "scalar"
	case KindVector:
		return "vector"
	case KindMatrix:
		return "matrix"
	default:
		return "unknown"
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindScalar:
		return formatFloat(v.Scalar)
	case KindVector:
		parts := make([]string, len(v.Vector))
		for i, f := range v.Vector {
			parts[i] = formatFloat(f)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMatrix:
		rows := v.RowMajorRows()
		parts := make([]string, len(rows))
		for i, row := range rows {
			cells := make([]string, len(row))
			for j, f := range row {
				cells[j] = formatFloat(f)
			}
			parts[i] = "[" + strings.Join(cells, ", ") + "]"
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<invalid>"
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// NumRows/NumCols describe the matrix's semantic shape regardless of
// storage orientation.
func (v Value) NumRows() int {
	if config.RowMajor {
		return len(v.Matrix)
	}
	return len(v.Matrix[0])
}

func (v Value) NumCols() int {
	if config.RowMajor {
		return len(v.Matrix[0])
	}
	return len(v.Matrix)
}

// RowMajorRows returns the matrix contents as rows regardless of the
// configured storage orientation, for printing and for linear-algebra ops
// that are naturally expressed in row-major terms.
func (v Value) RowMajorRows() [][]float64 {
	if config.RowMajor {
		return v.Matrix
	}
	return transpose(v.Matrix)
}

// FromRowMajorRows builds a Matrix Value from row-major data, storing it in
// whichever orientation is configured.
func FromRowMajorRows(rows [][]float64) Value {
	if config.RowMajor {
		return NewMatrix(rows)
	}
	return NewMatrix(transpose(rows))
}

func transpose(m [][]float64) [][]float64 {
	outerLen := len(m[0])
	out := make([][]float64, outerLen)
	for i := 0; i < outerLen; i++ {
		row := make([]float64, len(m))
		for j := range m {
			row[j] = m[j][i]
		}
		out[i] = row
	}
	return out
}

func (v Value) GoString() string {
	return fmt.Sprintf("Value{%s}", v.String())
}
