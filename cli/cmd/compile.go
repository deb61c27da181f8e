package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/tslisp/lang"
	"github.com/ardnew/tslisp/log"
)

// Compile translates source files to the selected target, one line at a
// time.
type Compile struct {
	NoCache bool `help:"Disable the translation cache." name:"no-cache"`

	Files []string `arg:"" help:"Source files or '-' for stdin. Defaults to --source, then stdin." name:"file" optional:"" type:"path"`
}

// Run executes the compile command.
//
// Each line is compiled independently. Lines that fail are logged and
// skipped; if any line failed the command returns [ErrCompile] after the
// remaining lines have been written.
func (c *Compile) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	inputs, closeAll, err := openInputs(ctx, c.Files)
	if err != nil {
		return err
	}
	defer closeAll()

	target := targetFrom(ctx)
	out := outputFrom(ctx)

	opts := []lang.Option{
		lang.WithTarget(target),
		lang.WithLogger(log.Default()),
		lang.WithCache(!c.NoCache),
	}

	failed := 0

	for _, in := range inputs {
		for line := range lang.LinesFrom(ctx, in, opts...) {
			if line.Err != nil {
				failed++

				log.WarnContext(ctx, "line failed",
					slog.String("file", in.name),
					log.Line(line.Number),
					log.Source(line.Source),
					log.Err(line.Err),
				)

				continue
			}

			if _, err := fmt.Fprintln(out, line.Text); err != nil {
				return ErrWriteOutput.Wrap(err)
			}
		}
	}

	if failed > 0 {
		return ErrCompile.With(
			slog.Int("failed", failed),
			log.Target(target.Name),
		)
	}

	return nil
}
