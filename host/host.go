package host

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/expr-lang/expr"

	"github.com/ardnew/tslisp/lang"
	"github.com/ardnew/tslisp/log"
)

// reserved names the instructions emitted by the expr target. They cannot
// be shadowed by slots.
var reserved = []string{"define", "lambda", "exit"}

// Result is the value of one executed top-level form.
type Result struct {
	Value  any
	Source string // generated expr-lang text
}

// Host executes source lines by compiling them with the [lang.Expr] target
// and evaluating the result with expr-lang. It owns the slot storage that
// definitions write to. A Host is safe for concurrent use.
type Host struct {
	mu         sync.RWMutex
	slots      map[string]any
	compiler   *lang.Compiler
	logger     log.Logger
	output     io.Writer
	processEnv map[string]string
	exited     atomic.Bool
}

// Option configures a [Host].
type Option func(*Host)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// WithOutput sets the writer of the print builtin. The default discards
// output.
func WithOutput(w io.Writer) Option {
	return func(h *Host) {
		if w != nil {
			h.output = w
		}
	}
}

// WithProcessEnv sets the "KEY=VALUE" list read by the env builtin.
// The default is the environment of the current process.
func WithProcessEnv(env []string) Option {
	return func(h *Host) {
		h.processEnv = buildProcessEnvMap(env)
	}
}

// New returns an empty Host configured by opts.
func New(opts ...Option) *Host {
	h := &Host{
		slots:  make(map[string]any),
		output: io.Discard,
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.processEnv == nil {
		h.processEnv = buildProcessEnvMap(nil)
	}

	h.compiler = lang.New(
		lang.WithTarget(lang.Expr()),
		lang.WithLogger(h.logger),
		lang.WithCache(true),
	)

	return h
}

// Exec compiles line and executes each of its top-level forms in order.
//
// On failure the results of the forms already executed are returned with
// the error. Compilation errors match [ErrCompile] and the [lang] sentinel
// describing the problem. Once a form has called exit, Exec returns
// [ErrExit] and the Host refuses further input until [Host.Reset].
func (h *Host) Exec(ctx context.Context, line string) ([]Result, error) {
	if h.exited.Load() {
		return nil, ErrExit
	}

	texts, err := h.compiler.Translate(ctx, line)
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(log.Source(line))
	}

	results := make([]Result, 0, len(texts))

	for _, text := range texts {
		if text == "" {
			continue
		}

		if err := ctx.Err(); err != nil {
			return results, err
		}

		value, err := h.eval(frame{ctx: ctx}, text, nil)
		if err != nil {
			return results, err
		}

		results = append(results, Result{Source: text, Value: value})

		if h.exited.Load() {
			return results, ErrExit
		}
	}

	return results, nil
}

// eval compiles and runs one expr-lang program in call frame f. Params
// shadow slots, which shadow builtins.
func (h *Host) eval(f frame, text string, params map[string]any) (any, error) {
	env := h.env(f, params)

	program, err := expr.Compile(text, expr.Env(env))
	if err != nil {
		return nil, ErrExecute.Wrap(err).With(slog.String("program", text))
	}

	h.logger.TraceContext(f.ctx, "program compiled",
		slog.String("program", text),
		slog.Int("param_count", len(params)),
		slog.Int("depth", f.depth))

	result, err := expr.Run(program, env)
	if err != nil {
		return nil, ErrExecute.Wrap(err).With(slog.String("program", text))
	}

	return result, nil
}

// env returns the environment of one program. Slots are bound under their
// expr-lang spelling.
func (h *Host) env(f frame, params map[string]any) map[string]any {
	env := makeEnvCache()

	env["env"] = envFunc(h.processEnv)
	env["print"] = h.print
	env["console"] = map[string]any{"log": h.print}

	h.mu.RLock()
	for name, value := range h.slots {
		env[lang.ExprName(name)] = callable(f, value)
	}
	h.mu.RUnlock()

	env["define"] = h.define
	env["lambda"] = h.makeLambda
	env["exit"] = h.exit

	for name, value := range params {
		env[name] = callable(f, value)
	}

	return env
}

// callable exposes a stored lambda to programs as a function called in
// frame f.
func callable(f frame, value any) any {
	if l, ok := value.(*Lambda); ok {
		return func(args ...any) (any, error) {
			return l.call(f, args...)
		}
	}

	return value
}

// define is the runtime half of slot definition. It returns value.
func (h *Host) define(name string, value any) any {
	name = lang.SourceName(name)

	h.mu.Lock()
	h.slots[name] = value
	h.mu.Unlock()

	h.logger.Trace("slot defined",
		slog.String("name", name),
		slog.String("value", FormatResult(value)))

	return value
}

func (h *Host) exit() any {
	h.exited.Store(true)

	return nil
}

// print writes its arguments separated by spaces. Strings are written
// without quotes.
func (h *Host) print(args ...any) any {
	parts := make([]string, len(args))
	for i, a := range args {
		if s, ok := a.(string); ok {
			parts[i] = s
		} else {
			parts[i] = FormatResult(a)
		}
	}

	fmt.Fprintln(h.output, strings.Join(parts, " "))

	return nil
}

// Lookup returns the value stored in the named slot.
func (h *Host) Lookup(name string) (any, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	v, ok := h.slots[name]

	return v, ok
}

// Names returns the sorted names of all defined slots.
func (h *Host) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := slices.Collect(maps.Keys(h.slots))
	slices.Sort(names)

	return names
}

// Exited reports whether a form has called exit.
func (h *Host) Exited() bool { return h.exited.Load() }

// Reset removes every slot and clears the exit state.
func (h *Host) Reset() {
	h.mu.Lock()
	clear(h.slots)
	h.mu.Unlock()

	h.exited.Store(false)
}
