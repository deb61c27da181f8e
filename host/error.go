package host

import "github.com/ardnew/tslisp/lang"

// Predefined errors (sentinel values).
var (
	ErrCompile   = lang.NewError("compile failed")
	ErrExecute   = lang.NewError("execution failed")
	ErrExit      = lang.NewError("exit requested")
	ErrArity     = lang.NewError("wrong number of arguments")
	ErrCallDepth = lang.NewError("maximum call depth exceeded")
	ErrOperand   = lang.NewError("operand is not an integer")
)
