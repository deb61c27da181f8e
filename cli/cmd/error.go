package cmd

import "github.com/ardnew/tslisp/lang"

// Error is the structured error type returned by every command.
type Error = lang.Error

// Predefined errors (sentinel values).
var (
	ErrReadSource  = lang.NewError("read source")
	ErrWriteOutput = lang.NewError("write output")
	ErrCompile     = lang.NewError("compilation failed")
	ErrRun         = lang.NewError("execution failed")
	ErrYAMLMarshal = lang.NewError("marshal YAML")
	ErrWriteConfig = lang.NewError("write configuration file")
	ErrFileExists  = lang.NewError("file exists (use --force to overwrite)")
	ErrNoConfig    = lang.NewError("configuration path undefined")
)
