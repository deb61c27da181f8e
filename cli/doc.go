// Package cli contains the command line interface for tslisp.
//
// # Usage
//
//	tslisp [flags] [compile] [file ...]
//	tslisp fmt [native|tokens|ast|json|yaml] [source]
//	tslisp run [file ...]
//	tslisp repl
//	tslisp init [--force]
//
// Without a command, the arguments are compiled line by line to the target
// selected with --target (js or expr) and written to stdout.
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the user
// configuration directory, and flags given on the command line override
// them. The YAML file maps flag names to values; init writes one holding
// the current values:
//
//	target: expr
//	log-level: debug
//	log-pretty: true
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
// Then:
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: the pprof
//     directory under the user cache directory)
//
// # Examples
//
//	# Compile a file to JavaScript
//	tslisp prog.tl > prog.js
//
//	# Execute a file with debug logging
//	tslisp --log-level=debug run prog.tl
//
//	# CPU profile of a large compilation
//	tslisp --pprof-mode=cpu compile big.tl
package cli
