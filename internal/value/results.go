package value

// Results is the ordered, non-empty collection of candidate Values an
// expression evaluates to. Length > 1 models the multi-valued outcomes of
// sqrt, eq(...) and explicit {a, b, c} lists.
type Results []Value

// Single wraps one Value as a Results of length 1.
func Single(v Value) Results { return Results{v} }

// Concat concatenates Results in argument order, used for ListExpr
// (`{a, b, c}`) evaluation.
func Concat(parts ...Results) Results {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make(Results, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// CartesianSize returns the product of the lengths, used to check against
// config.MaxCombinations before actually materializing the expansion.
func CartesianSize(lens ...int) int {
	size := 1
	for _, l := range lens {
		size *= l
		if size < 0 { // overflow guard
			return -1
		}
	}
	return size
}

// CartesianProduct applies combine to every tuple formed by the cartesian
// product of operands, leftmost operand varying slowest, per spec.md §4.4's
// evaluator ordering rule. combine returns a single Value per tuple; see
// CartesianProductMulti for a combine that returns several.
func CartesianProduct(combine func(tuple []Value) (Value, error), operands ...Results) (Results, error) {
	if len(operands) == 0 {
		return nil, nil
	}
	total := 1
	for _, o := range operands {
		total *= len(o)
	}
	out := make(Results, 0, total)
	tuple := make([]Value, len(operands))
	var recurse func(idx int) error
	recurse = func(idx int) error {
		if idx == len(operands) {
			v, err := combine(tuple)
			if err != nil {
				return err
			}
			out = append(out, v)
			return nil
		}
		for _, v := range operands[idx] {
			tuple[idx] = v
			if err := recurse(idx + 1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := recurse(0); err != nil {
		return nil, err
	}
	return out, nil
}

// CartesianProductMulti is like CartesianProduct but combine may produce
// several Values per tuple (used by built-ins like sqrt that are
// themselves multi-valued on top of cartesian-expanded arguments).
func CartesianProductMulti(combine func(tuple []Value) (Results, error), operands ...Results) (Results, error) {
	if len(operands) == 0 {
		return nil, nil
	}
	var out Results
	tuple := make([]Value, len(operands))
	var recurse func(idx int) error
	recurse = func(idx int) error {
		if idx == len(operands) {
			vs, err := combine(tuple)
			if err != nil {
				return err
			}
			out = append(out, vs...)
			return nil
		}
		for _, v := range operands[idx] {
			tuple[idx] = v
			if err := recurse(idx + 1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := recurse(0); err != nil {
		return nil, err
	}
	return out, nil
}
