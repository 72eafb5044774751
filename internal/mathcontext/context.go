// Package mathcontext holds the name bindings an evaluation runs against:
// variables (each multi-valued) and user-defined functions.
package mathcontext

import (
	"github.com/Waigo01/math-utils-lib/internal/ast"
	"github.com/Waigo01/math-utils-lib/internal/value"
)

// Function is a user-defined function: a fixed parameter list and a body
// parsed once and read many times.
type Function struct {
	Name   string
	Params []string
	Body   ast.Node
}

// Context is a caller-owned, logically read-only set of bindings. The zero
// value is an empty context.
type Context struct {
	vars  map[string]value.Results
	funcs map[string]Function
}

// New returns an empty Context.
func New() *Context {
	return &Context{vars: map[string]value.Results{}, funcs: map[string]Function{}}
}

// FromVariables returns a Context populated with the given variable
// bindings.
func FromVariables(vars map[string]value.Results) *Context {
	c := New()
	for name, r := range vars {
		c.vars[name] = r
	}
	return c
}

// FromFunctions returns a Context populated with the given function
// bindings.
func FromFunctions(funcs map[string]Function) *Context {
	c := New()
	for name, f := range funcs {
		c.funcs[name] = f
	}
	return c
}

// Combined returns a Context with both variable and function bindings.
func Combined(vars map[string]value.Results, funcs map[string]Function) *Context {
	c := New()
	for name, r := range vars {
		c.vars[name] = r
	}
	for name, f := range funcs {
		c.funcs[name] = f
	}
	return c
}

// WithVariable returns a derived Context with name bound to r, used to
// construct the child contexts a user-function call or solver trial binds
// its parameters in. The receiver is not mutated.
func (c *Context) WithVariable(name string, r value.Results) *Context {
	out := &Context{vars: make(map[string]value.Results, len(c.vars)+1), funcs: c.funcs}
	for k, v := range c.vars {
		out.vars[k] = v
	}
	out.vars[name] = r
	return out
}

// Variable looks up a variable binding.
func (c *Context) Variable(name string) (value.Results, bool) {
	r, ok := c.vars[name]
	return r, ok
}

// Function looks up a user-function binding.
func (c *Context) Function(name string) (Function, bool) {
	f, ok := c.funcs[name]
	return f, ok
}
