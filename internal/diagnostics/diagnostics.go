// Package diagnostics defines the library's unified error taxonomy.
//
// Grounded on funvibe-funxy/cmd/lsp/diagnostics.go's DiagnosticError (a
// code plus a token to report), collapsed from line/column to a single
// byte offset since this AST has no multi-line source, and on
// original_source/src/errors.rs's single MathLibError enum that every
// layer ultimately converts into — callers here can errors.As against one
// DiagnosticError type regardless of which subsystem raised it.
package diagnostics

import "fmt"

// Category groups error Codes by the subsystem that raised them.
type Category string

const (
	Parse Category = "parse"
	Eval  Category = "eval"
	Solve Category = "solve"
)

// Code names one specific error kind, per spec.md §7.
type Code string

const (
	// Parse errors.
	UnexpectedToken  Code = "UnexpectedToken"
	UnbalancedBracket Code = "UnbalancedBracket"
	EmptyContainer   Code = "EmptyContainer"
	RaggedMatrix     Code = "RaggedMatrix"
	MisplacedEquals  Code = "MisplacedEquals"
	UnknownOperator  Code = "UnknownOperator"

	// Eval errors.
	UnknownIdentifier Code = "UnknownIdentifier"
	ArityMismatch     Code = "ArityMismatch"
	TypeMismatch      Code = "TypeMismatch"
	DimensionMismatch Code = "DimensionMismatch"
	IndexOutOfRange   Code = "IndexOutOfRange"
	DivisionByZero    Code = "DivisionByZero"
	DomainError       Code = "DomainError"
	NonFiniteResult   Code = "NonFiniteResult"
	Recursion         Code = "Recursion"
	Explosion         Code = "Explosion"

	// Solve errors.
	NoSolution        Code = "NoSolution"
	InfiniteSolutions Code = "InfiniteSolutions"
	Inconsistent      Code = "Inconsistent"
)

// DiagnosticError is the single error type returned by every layer of the
// library.
type DiagnosticError struct {
	Category Category
	Code     Code
	Message  string
	// Offset is the byte position in the source text the error relates
	// to, or -1 when not applicable (e.g. most Eval/Solve errors, which
	// have no single source position once evaluation has started).
	Offset int
}

func (e *DiagnosticError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: %s (at offset %d)", e.Code, e.Message, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewParseError builds a DiagnosticError for the parser, with a source offset.
func NewParseError(code Code, offset int, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Category: Parse, Code: code, Message: fmt.Sprintf(format, args...), Offset: offset}
}

// NewEvalError builds a DiagnosticError for the evaluator. Eval errors carry
// no source offset: by the time evaluation fails, the failing node may be
// deep inside a cartesian-expanded tuple with no single originating byte.
func NewEvalError(code Code, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Category: Eval, Code: code, Message: fmt.Sprintf(format, args...), Offset: -1}
}

// NewSolveError builds a DiagnosticError for the solver.
func NewSolveError(code Code, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Category: Solve, Code: code, Message: fmt.Sprintf(format, args...), Offset: -1}
}

// Is reports whether err is a DiagnosticError of the given code.
func Is(err error, code Code) bool {
	de, ok := err.(*DiagnosticError)
	return ok && de.Code == code
}
