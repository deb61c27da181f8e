// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Configuration is applied at logger creation time using functional options
// and is immutable afterwards; derive a differently configured logger with
// [Logger.Wrap].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Warn("line failed", log.Line(3), log.Err(err))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Trace is below Debug and is used for the
// per-stage reports of the compiler.
//
// # Output Formats
//
// Two output formats are supported: [FormatText] (default) and
// [FormatJSON]. Either can be colorized with [WithPretty].
//
// # Package-Level Functions
//
// The package-level functions log with the default logger, which writes to
// standard error until replaced with [SetDefault] or reconfigured with
// [Config]. Context-unaware functions use [DefaultContextProvider].
package log
