package repl

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/ardnew/tslisp/host"
	"github.com/ardnew/tslisp/lang"
	"github.com/ardnew/tslisp/log"
)

// outputKind selects how one line of REPL output is styled.
type outputKind int

const (
	outputPrint       outputKind = iota // written by print
	outputTranslation                   // generated target text
	outputResult                        // value of a form
	outputError
)

type output struct {
	text string
	kind outputKind
}

// session executes REPL input on a host. It keeps the canonical source of
// every definition that executed successfully, which is what the edit
// command opens.
type session struct {
	host     *host.Host
	printed  *bytes.Buffer
	compiler *lang.Compiler
	logger   log.Logger
	defs     []string
}

func newSession(target *lang.Target, logger log.Logger) *session {
	var printed bytes.Buffer

	return &session{
		host: host.New(
			host.WithLogger(logger),
			host.WithOutput(&printed),
		),
		printed:  &printed,
		compiler: lang.New(lang.WithTarget(target), lang.WithLogger(logger), lang.WithCache(true)),
		logger:   logger,
	}
}

// exec runs one line of input and returns the output it produced. The
// returned bool reports whether the line called exit. A failure is both
// returned and rendered as the last output.
func (s *session) exec(ctx context.Context, line string) ([]output, bool, error) {
	ast, err := s.compiler.Parse(ctx, line)
	if err != nil {
		return []output{{kind: outputError, text: err.Error()}}, false, err
	}

	var out []output

	if text, err := s.compiler.Compile(ctx, line); err == nil && text != "" {
		out = append(out, output{kind: outputTranslation, text: text})
	}

	s.printed.Reset()

	results, err := s.host.Exec(ctx, line)

	for p := range strings.Lines(s.printed.String()) {
		out = append(out, output{kind: outputPrint, text: strings.TrimSuffix(p, "\n")})
	}

	for _, r := range results {
		if text := host.FormatResult(r.Value); text != "" {
			out = append(out, output{kind: outputResult, text: text})
		}
	}

	exited := errors.Is(err, host.ErrExit)

	if err != nil && !exited {
		return append(out, output{kind: outputError, text: err.Error()}), false, err
	}

	s.record(ast)

	return out, exited, nil
}

// record keeps the source of each definition of ast.
func (s *session) record(ast *lang.AST) {
	for _, n := range ast.Nodes {
		switch n := n.(type) {
		case lang.DefConstant, lang.DefVariable, lang.DefFunction:
			s.defs = append(s.defs, lang.FormatNode(n, 0))

		case lang.Function:
			if n.Name == "set" {
				s.defs = append(s.defs, lang.FormatNode(n, 0))
			}
		}
	}
}

// source returns the recorded definitions, one per line.
func (s *session) source() string {
	if len(s.defs) == 0 {
		return ""
	}

	return strings.Join(s.defs, "\n") + "\n"
}

// replace discards every slot and executes the forms of src in their
// place. src must parse; if a form fails the remaining forms are skipped.
func (s *session) replace(ctx context.Context, src string) error {
	ast, err := s.compiler.Parse(ctx, src)
	if err != nil {
		return err
	}

	s.host.Reset()
	s.defs = nil

	for _, n := range ast.Nodes {
		if _, ok := n.(lang.Empty); ok {
			continue
		}

		form := lang.FormatNode(n, 0)
		if _, _, err := s.exec(ctx, form); err != nil {
			return lang.WrapError(err).With(log.Source(form))
		}
	}

	return nil
}

// slot is a defined name and a short rendering of its value.
type slot struct {
	name    string
	preview string
}

const maxPreview = 40

func (s *session) slots() []slot {
	names := s.host.Names()
	list := make([]slot, 0, len(names))

	for _, name := range names {
		v, _ := s.host.Lookup(name)

		preview := host.FormatResult(v)
		if r := []rune(preview); len(r) > maxPreview {
			preview = string(r[:maxPreview-3]) + "..."
		}

		list = append(list, slot{name: name, preview: preview})
	}

	return list
}
