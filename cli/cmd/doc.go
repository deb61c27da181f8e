// Package cmd implements the tslisp subcommands: compile, fmt, run, repl,
// and init.
//
// Commands receive a context.Context prepared by the cli package holding
// the parsed kong.Context, the selected code generation target, and the
// files named by the global --source flag.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path
	// of the configuration file written by the init command.
	ConfigIdentifier = "config"
)
