package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/tslisp/host"
	"github.com/ardnew/tslisp/log"
)

// maxRunLine bounds the length of one line read by the run command.
const maxRunLine = 1 << 20

// Exec compiles source lines with the expr target and evaluates them in a
// single host session.
type Exec struct {
	Show bool `help:"Print the generated program of each form before its value." short:"S"`

	Files []string `arg:"" help:"Source files or '-' for stdin. Defaults to --source, then stdin." name:"file" optional:"" type:"path"`
}

// Run executes the run command.
//
// Lines that fail are logged and skipped. A call to exit stops reading.
// If any line failed the command returns [ErrRun].
func (e *Exec) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	inputs, closeAll, err := openInputs(ctx, e.Files)
	if err != nil {
		return err
	}
	defer closeAll()

	out := outputFrom(ctx)

	h := host.New(
		host.WithLogger(log.Default()),
		host.WithOutput(out),
		host.WithProcessEnv(os.Environ()),
	)

	failed := 0

	for _, in := range inputs {
		n, done, err := e.exec(ctx, h, in, out)
		failed += n

		if err != nil {
			return err
		}

		if done {
			break
		}
	}

	if failed > 0 {
		return ErrRun.With(slog.Int("failed", failed))
	}

	return nil
}

// exec runs every line of in. It returns the number of failed lines and
// whether the session has exited.
func (e *Exec) exec(
	ctx context.Context, h *host.Host, in input, out io.Writer,
) (failed int, done bool, err error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxRunLine)

	for number := 1; scanner.Scan(); number++ {
		if err := ctx.Err(); err != nil {
			return failed, true, err
		}

		src := scanner.Text()
		if strings.TrimSpace(src) == "" {
			continue
		}

		results, execErr := h.Exec(ctx, src)

		for _, r := range results {
			if err := e.write(out, r); err != nil {
				return failed, true, ErrWriteOutput.Wrap(err)
			}
		}

		switch {
		case errors.Is(execErr, host.ErrExit):
			log.DebugContext(ctx, "exit requested",
				slog.String("file", in.name), log.Line(number))

			return failed, true, nil

		case execErr != nil:
			failed++

			log.WarnContext(ctx, "line failed",
				slog.String("file", in.name),
				log.Line(number),
				log.Source(src),
				log.Err(execErr),
			)
		}
	}

	if err := scanner.Err(); err != nil {
		return failed, true, ErrReadSource.Wrap(err).With(slog.String("file", in.name))
	}

	return failed, false, nil
}

func (e *Exec) write(w io.Writer, r host.Result) error {
	if e.Show {
		if _, err := fmt.Fprintln(w, "; "+r.Source); err != nil {
			return err
		}
	}

	text := host.FormatResult(r.Value)
	if text == "" {
		return nil
	}

	_, err := fmt.Fprintln(w, text)

	return err
}
