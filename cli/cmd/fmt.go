package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/tslisp/lang"
	"github.com/ardnew/tslisp/log"
)

// Fmt parses source text and writes it back in the chosen representation.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical S-expressions (default)."`
	Tokens Tokens `cmd:""                    help:"List the classified tokens."`
	AST    AST    `cmd:""                    help:"Print the syntax tree."`
	JSON   JSON   `cmd:""                    help:"Format the syntax tree as JSON."`
	YAML   YAML   `cmd:""                    help:"Format the syntax tree as YAML."`
}

// Input is the source argument shared by the fmt subcommands.
type Input struct {
	Source string `arg:"" default:"-" help:"Source input file, or '-' for the --source files then stdin." name:"source"`
}

// parse reads and parses the whole source input.
func (s Input) parse(ctx context.Context, format string) (*lang.AST, error) {
	var files []string
	if s.Source != stdinSource {
		files = []string{s.Source}
	}

	inputs, closeAll, err := openInputs(ctx, files)
	if err != nil {
		return nil, err
	}
	defer closeAll()

	readers := make([]io.Reader, len(inputs))
	for i, in := range inputs {
		readers[i] = in
	}

	ast, err := lang.ParseReader(ctx, io.MultiReader(readers...),
		lang.WithTarget(targetFrom(ctx)),
		lang.WithLogger(log.Default()),
	)
	if err != nil {
		return nil, lang.WrapError(err).With(slog.String("format", format))
	}

	return ast, nil
}

// Native formats input as canonical S-expressions. Comments are dropped.
type Native struct {
	Input

	Indent int `default:"2" help:"Indent width of nested lists, or 0 for one form per line." short:"i"`
}

// Run executes the native command.
func (f *Native) Run(ctx context.Context) error {
	ast, err := f.parse(ctx, "native")
	if err != nil {
		return err
	}

	if err := ast.Format(ctx, outputFrom(ctx), f.Indent); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// Tokens lists the classified tokens of the input.
type Tokens struct {
	Input
}

// Run executes the tokens command.
func (f *Tokens) Run(ctx context.Context) error {
	ast, err := f.parse(ctx, "tokens")
	if err != nil {
		return err
	}

	if err := ast.FormatTokens(ctx, outputFrom(ctx)); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// AST prints the syntax tree of the input.
type AST struct {
	Input
}

// Run executes the ast command.
func (f *AST) Run(ctx context.Context) error {
	ast, err := f.parse(ctx, "ast")
	if err != nil {
		return err
	}

	ast.Print(ctx, outputFrom(ctx))

	return nil
}

// JSON formats the syntax tree of the input as JSON.
type JSON struct {
	Input

	Indent int `default:"2" help:"Indent width for JSON output." short:"i"`
}

// Run executes the json command.
func (f *JSON) Run(ctx context.Context) error {
	ast, err := f.parse(ctx, "json")
	if err != nil {
		return err
	}

	if err := ast.FormatJSON(ctx, outputFrom(ctx), f.Indent); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// YAML formats the syntax tree of the input as YAML.
type YAML struct {
	Input

	Indent int `default:"2" help:"Indent width for YAML output." short:"i"`
}

// Run executes the yaml command.
func (f *YAML) Run(ctx context.Context) error {
	ast, err := f.parse(ctx, "yaml")
	if err != nil {
		return err
	}

	if err := ast.FormatYAML(ctx, outputFrom(ctx), f.Indent); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
