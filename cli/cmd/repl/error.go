package repl

import "github.com/ardnew/tslisp/lang"

// Predefined errors (sentinel values).
var (
	ErrOutOfBounds  = lang.NewError("history index out of range")
	ErrEditDeclined = lang.NewError("edit declined")
	ErrHistory      = lang.NewError("history file")
)
