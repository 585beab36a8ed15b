package symreg

import "errors"

// Sentinel errors for the conditions enumerated in the error-handling
// design: infeasible moves, invariant violations and evaluation failure.
// No function in this package returns them: moves report infeasibility
// with an ok=false result, and fit/evaluation failures collapse SSE to
// +Inf instead of propagating, per the energy model's contract.
var (
	ErrInfeasibleMove    = errors.New("symreg: move is infeasible in the current tree state")
	ErrNonElementaryNode = errors.New("symreg: target node is not an elementary tree")
	ErrArityMismatch     = errors.New("symreg: offspring count does not match operator arity")
	ErrRootNotPrunable   = errors.New("symreg: root is not prunable")
	ErrSizeExceeded      = errors.New("symreg: move would exceed max_size")
	ErrUnknownOperator   = errors.New("symreg: operator not present in catalog")
	ErrCannotEvaluate    = errors.New("symreg: tree could not be compiled to a numeric function")
)
