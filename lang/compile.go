package lang

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/klauspost/readahead"

	"github.com/ardnew/tslisp/log"
)

// Compiler runs the compilation pipeline. The zero value is not usable; use
// [New]. A Compiler holds no state between calls and is safe for concurrent
// use.
type Compiler struct {
	target *Target
	logger log.Logger
	cached bool
}

// Option configures a [Compiler].
type Option func(*Compiler)

// WithTarget selects the language generated code is written in.
// The default is [JavaScript].
func WithTarget(t *Target) Option {
	return func(c *Compiler) {
		if t != nil {
			c.target = t
		}
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithCache enables the process-wide translation cache. Sources already
// compiled for the same target are not compiled again. See [ClearCache].
func WithCache(enabled bool) Option {
	return func(c *Compiler) {
		c.cached = enabled
	}
}

// New returns a Compiler configured by opts.
func New(opts ...Option) *Compiler {
	c := &Compiler{target: JavaScript()}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Target returns the compiler's target.
func (c *Compiler) Target() *Target { return c.target }

// Parse runs every stage except code generation.
func (c *Compiler) Parse(ctx context.Context, src string) (*AST, error) {
	tokens := Tokenize(src)

	c.logger.TraceContext(ctx, "tokenize complete",
		slog.Int("token_count", len(tokens)))

	groups, err := Structure(tokens)
	if err != nil {
		return nil, err
	}

	c.logger.TraceContext(ctx, "structure complete",
		slog.Int("group_count", len(groups)))

	nodes, err := Build(groups)
	if err != nil {
		return nil, err
	}

	c.logger.TraceContext(ctx, "build complete",
		slog.Int("node_count", len(nodes)))

	return &AST{Source: src, Tokens: tokens, Nodes: nodes}, nil
}

// Translate compiles src and returns the generated text of each top-level
// form in source order.
func (c *Compiler) Translate(ctx context.Context, src string) ([]string, error) {
	if c.cached {
		return c.translateCached(ctx, src)
	}

	return c.translate(ctx, src)
}

func (c *Compiler) translate(ctx context.Context, src string) ([]string, error) {
	ast, err := c.Parse(ctx, src)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(ast.Nodes))
	for i, n := range ast.Nodes {
		out[i] = c.target.Generate(n)
	}

	c.logger.TraceContext(ctx, "generate complete",
		slog.String("target", c.target.Name),
		slog.Int("form_count", len(out)))

	return out, nil
}

// Compile compiles src into a single line of target text. The texts of
// consecutive top-level forms are joined by the target's separator; forms
// that generate no text are skipped. A form already terminated by the
// separator's punctuation is not terminated twice.
func (c *Compiler) Compile(ctx context.Context, src string) (string, error) {
	texts, err := c.Translate(ctx, src)
	if err != nil {
		return "", err
	}

	parts := texts[:0]

	for _, s := range texts {
		if s != "" {
			parts = append(parts, s)
		}
	}

	if term := strings.TrimSpace(c.target.Separator); term != "" {
		for i := range len(parts) - 1 {
			parts[i] = strings.TrimSuffix(parts[i], term)
		}
	}

	return strings.Join(parts, c.target.Separator), nil
}

// Parse parses src with a [Compiler] configured by opts.
func Parse(ctx context.Context, src string, opts ...Option) (*AST, error) {
	return New(opts...).Parse(ctx, src)
}

// ParseReader parses an AST from an io.Reader.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*AST, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return Parse(ctx, string(data), opts...)
}

// Translate translates src with a [Compiler] configured by opts.
func Translate(ctx context.Context, src string, opts ...Option) ([]string, error) {
	return New(opts...).Translate(ctx, src)
}

// Compile compiles src with a [Compiler] configured by opts.
func Compile(ctx context.Context, src string, opts ...Option) (string, error) {
	return New(opts...).Compile(ctx, src)
}
