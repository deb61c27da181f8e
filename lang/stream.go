package lang

import (
	"bufio"
	"context"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/klauspost/readahead"
)

// maxLineSize bounds the length of one line read by a [Stream].
const maxLineSize = 1 << 20

// Line is the result of compiling one line of a [Stream].
type Line struct {
	Err    error
	Source string
	Text   string
	Number int // 1-based
}

// Stream compiles source text one line at a time. Each line is compiled
// independently, so a failing line does not prevent compiling the rest.
type Stream struct {
	reader   io.Reader
	compiler *Compiler
}

// NewStream creates a streaming compiler over r configured by opts.
// The reader will not be consumed until the lines are iterated.
func NewStream(r io.Reader, opts ...Option) *Stream {
	return &Stream{reader: r, compiler: New(opts...)}
}

// NewStreamFromString creates a streaming compiler over a source string.
func NewStreamFromString(source string, opts ...Option) *Stream {
	return NewStream(strings.NewReader(source), opts...)
}

// Lines returns an iterator over the compiled lines of the stream.
//
// Blank lines and lines that generate no text without error are skipped.
// A read failure or context cancellation is yielded as a final Line with
// Err set.
func (s *Stream) Lines(ctx context.Context) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		// Wrap reader with async read-ahead so the next block is fetched
		// while the current line compiles.
		ra := readahead.NewReader(s.reader)
		defer ra.Close()

		scanner := bufio.NewScanner(ra)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

		for number := 1; scanner.Scan(); number++ {
			if err := ctx.Err(); err != nil {
				yield(Line{Number: number, Err: err})

				return
			}

			src := scanner.Text()
			if strings.TrimSpace(src) == "" {
				continue
			}

			text, err := s.compiler.Compile(ctx, src)
			if err == nil && text == "" {
				continue
			}

			if err != nil {
				err = WrapError(err).With(slog.Int("line", number))
			}

			if !yield(Line{Number: number, Source: src, Text: text, Err: err}) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield(Line{Err: ErrReadInput.Wrap(err).With(slog.String("source", "reader"))})
		}
	}
}

// LinesFrom returns an iterator over the compiled lines read from r.
func LinesFrom(ctx context.Context, r io.Reader, opts ...Option) iter.Seq[Line] {
	return NewStream(r, opts...).Lines(ctx)
}
