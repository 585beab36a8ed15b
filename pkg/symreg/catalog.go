package symreg

import "sort"

// DefaultCatalog returns the 18-operator catalog from the Recognized
// Options default: 14 unary operators and 4 binary operators. Note that
// only "+", "*", "/" and "**" are binary — subtraction is expressed by
// the unary "-" operator composed with "+", exactly as the original
// catalog defines it.
func DefaultCatalog() map[string]int {
	return map[string]int{
		"sin": 1, "cos": 1, "tan": 1, "exp": 1, "log": 1,
		"sinh": 1, "cosh": 1, "tanh": 1,
		"pow2": 1, "pow3": 1, "abs": 1, "sqrt": 1, "fac": 1, "-": 1,
		"+": 2, "*": 2, "/": 2, "**": 2,
	}
}

// DefaultPriorPar returns the default operator-count prior: a uniform
// weight of 5.0 for every operator in ops, keyed "Nopi_<op>" as the
// energy model expects.
func DefaultPriorPar(ops map[string]int) map[string]float64 {
	pp := make(map[string]float64, len(ops))
	for op := range ops {
		pp["Nopi_"+op] = 5.0
	}
	return pp
}

// Arities returns the distinct arities present in ops, always including
// 0 for leaves, sorted ascending. This drives the bucket keys used by the
// ET index and the ET/RR spaces.
func Arities(ops map[string]int) []int {
	seen := map[int]bool{0: true}
	out := []int{0}
	for _, a := range ops {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	sort.Ints(out)
	return out
}

// OperatorsOfArity returns every operator symbol in ops with exactly the
// given arity, in sorted order so that enumeration in spaces.go is
// deterministic.
func OperatorsOfArity(ops map[string]int, arity int) []string {
	var out []string
	for op, a := range ops {
		if a == arity {
			out = append(out, op)
		}
	}
	sort.Strings(out)
	return out
}
