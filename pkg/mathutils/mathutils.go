// Package mathutils is the public embedding surface of the library:
// parse expression text, evaluate it against a Context, or go straight to
// a solved equation, without the caller ever touching the internal AST,
// lexer, or evaluator packages directly.
//
// Structurally this mirrors how funvibe-funxy/pkg/embed wraps its internal
// vm/evaluator machinery behind a small facade type (New, then methods) —
// here the facade is a package of free functions plus a Context type,
// since this library has no long-lived VM to construct.
package mathutils

import (
	"github.com/Waigo01/math-utils-lib/internal/ast"
	"github.com/Waigo01/math-utils-lib/internal/evaluator"
	"github.com/Waigo01/math-utils-lib/internal/parser"
	"github.com/Waigo01/math-utils-lib/internal/value"
)

// AST is an opaque parsed expression, produced by Parse and consumed by
// Evaluate.
type AST struct{ node ast.Node }

// Parse tokenizes and parses text into an AST, or returns a ParseError.
func Parse(text string) (AST, error) {
	n, err := parser.Parse(text)
	if err != nil {
		return AST{}, err
	}
	return AST{node: n}, nil
}

// Evaluate reduces a previously parsed AST to Results under ctx.
func Evaluate(a AST, ctx *Context) (Results, error) {
	r, err := evaluator.Evaluate(a.node, ctx.inner)
	return fromInner(r), err
}

// QuickEval combines Parse and Evaluate for the common case of a one-shot
// expression.
func QuickEval(text string, ctx *Context) (Results, error) {
	a, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return Evaluate(a, ctx)
}

// Round rounds every scalar component of every Value in r to decimals
// decimal places.
func Round(r Results, decimals int) Results {
	return fromInner(value.RoundResults(toInner(r), decimals))
}

// Residual is one equation Lhs = Rhs as text, solved in the form
// Lhs - Rhs = 0 (e.g. Solve([]Residual{{Lhs: "x^2", Rhs: "9"}},
// []string{"x"}, ctx) solves x^2 = 9 for x).
type Residual struct {
	Lhs string
	Rhs string
}

// Solve is the direct solver entry point: given a set of residual
// equations as (lhs, rhs) text pairs and the names of the unknowns, it
// behaves exactly as `eq(lhs1=rhs1, ..., unknown1, ...)` would inside an
// expression, without requiring the caller to build that call text.
func Solve(residuals []Residual, unknowns []string, ctx *Context) (Results, error) {
	args := make([]ast.Node, 0, len(residuals)+len(unknowns))
	for _, r := range residuals {
		lhs, err := parser.Parse(r.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := parser.Parse(r.Rhs)
		if err != nil {
			return nil, err
		}
		args = append(args, ast.NewEquation(0, lhs, rhs))
	}
	for _, u := range unknowns {
		args = append(args, ast.NewVar(0, u))
	}
	call := ast.NewCall(0, "eq", args)
	r, err := evaluator.Evaluate(call, ctx.inner)
	return fromInner(r), err
}
