// Package eval turns a printed expression tree into a compiled numeric
// function of named variables and parameters, using
// github.com/Knetic/govaluate as the expression engine. govaluate ships
// no built-in math functions, so every unary operator in the catalog
// (other than the ones spelled as infix operators) is registered as a
// custom Function.
package eval

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

// Compiled is a printed tree that has been parsed and is ready to be
// evaluated row by row against named variables and parameters.
type Compiled interface {
	Variables() []string
	Parameters() []string
	Eval(row map[string]float64) (float64, error)
}

type compiled struct {
	expr       *govaluate.EvaluableExpression
	variables  []string
	parameters []string
}

func (c *compiled) Variables() []string  { return c.variables }
func (c *compiled) Parameters() []string { return c.parameters }

func (c *compiled) Eval(row map[string]float64) (float64, error) {
	params := make(map[string]interface{}, len(row))
	for k, v := range row {
		params[k] = v
	}
	result, err := c.expr.Evaluate(params)
	if err != nil {
		return 0, err
	}
	v, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("eval: expression did not evaluate to a number, got %T", result)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v, nil
	}
	return v, nil
}

var functions = map[string]govaluate.ExpressionFunction{
	"sin":  unary(math.Sin),
	"cos":  unary(math.Cos),
	"tan":  unary(math.Tan),
	"exp":  unary(math.Exp),
	"log":  unary(math.Log),
	"sinh": unary(math.Sinh),
	"cosh": unary(math.Cosh),
	"tanh": unary(math.Tanh),
	"abs":  unary(math.Abs),
	"sqrt": unary(math.Sqrt),
	"pow2": unary(func(x float64) float64 { return x * x }),
	"pow3": unary(func(x float64) float64 { return x * x * x }),
	"fac":  unary(factorial),
}

func unary(f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("eval: expected 1 argument, got %d", len(args))
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("eval: argument is not numeric: %v", args[0])
		}
		return f(x), nil
	}
}

// factorial evaluates the Gamma-function extension of factorial so that
// non-integer and negative arguments still produce a finite value rather
// than an error, matching scipy's gamma-based factorial used by the
// original source's "fac" operator.
func factorial(x float64) float64 {
	return math.Gamma(x + 1)
}

// Compile parses printed (as produced by Node.Pretty) and validates that
// every atom it references is one of variables or parameters. The
// resulting Compiled closes over the parsed expression; Eval is cheap to
// call once per data row.
func Compile(printed string, variables, parameters []string) (Compiled, error) {
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(printed, functions)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(variables)+len(parameters))
	for _, v := range variables {
		known[v] = true
	}
	for _, p := range parameters {
		known[p] = true
	}
	for _, tok := range expr.Vars() {
		if !known[tok] {
			return nil, fmt.Errorf("eval: unknown atom %q in expression", tok)
		}
	}
	return &compiled{expr: expr, variables: variables, parameters: parameters}, nil
}
