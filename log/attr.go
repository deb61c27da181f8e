package log

import (
	"log/slog"
	"unicode/utf8"
)

// Keys of the attributes shared by every package that logs compiler
// activity.
const (
	KeyLine   = "line"
	KeySource = "source"
	KeyTarget = "target"
	KeyError  = "error"
)

// maxSourceLen bounds the number of runes of source text written to a log.
const maxSourceLen = 60

// Line returns an attribute holding a 1-based input line number.
func Line(n int) slog.Attr { return slog.Int(KeyLine, n) }

// Target returns an attribute naming a code generation target.
func Target(name string) slog.Attr { return slog.String(KeyTarget, name) }

// Source returns an attribute holding source text, elided past a fixed
// number of runes.
func Source(text string) slog.Attr {
	if utf8.RuneCountInString(text) > maxSourceLen {
		runes := []rune(text)
		text = string(runes[:maxSourceLen-1]) + "…"
	}

	return slog.String(KeySource, text)
}

// Err returns an attribute holding err. Errors implementing
// [slog.LogValuer] contribute their structured attributes.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	if lv, ok := err.(slog.LogValuer); ok {
		return slog.Any(KeyError, lv)
	}

	return slog.String(KeyError, err.Error())
}
