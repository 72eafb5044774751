package mathutils

import (
	"github.com/Waigo01/math-utils-lib/internal/mathcontext"
	"github.com/Waigo01/math-utils-lib/internal/value"
)

// Context is the caller-owned set of variable and user-function bindings
// an evaluation runs against.
type Context struct{ inner *mathcontext.Context }

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{inner: mathcontext.New()}
}

// NewContextFromVariables returns a Context populated with variable
// bindings, name to the Results it is bound to.
func NewContextFromVariables(vars map[string]Results) *Context {
	return &Context{inner: mathcontext.FromVariables(toInnerVars(vars))}
}

// UserFunction is a user-defined function: a fixed, positional parameter
// list and a previously parsed body expression.
type UserFunction struct {
	Params []string
	Body   AST
}

// NewContextFromFunctions returns a Context populated with user-function
// bindings.
func NewContextFromFunctions(funcs map[string]UserFunction) *Context {
	return &Context{inner: mathcontext.FromFunctions(toInnerFuncs(funcs))}
}

// NewContextCombined returns a Context with both variable and function
// bindings.
func NewContextCombined(vars map[string]Results, funcs map[string]UserFunction) *Context {
	return &Context{inner: mathcontext.Combined(toInnerVars(vars), toInnerFuncs(funcs))}
}

func toInnerVars(vars map[string]Results) map[string]value.Results {
	out := make(map[string]value.Results, len(vars))
	for name, r := range vars {
		out[name] = value.Results(r)
	}
	return out
}

func toInnerFuncs(funcs map[string]UserFunction) map[string]mathcontext.Function {
	out := make(map[string]mathcontext.Function, len(funcs))
	for name, f := range funcs {
		out[name] = mathcontext.Function{Name: name, Params: f.Params, Body: f.Body.node}
	}
	return out
}
