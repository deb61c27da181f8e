package host

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/ardnew/tslisp/lang"
)

// maxCallDepth bounds the nesting of lambda calls, so unbounded recursion
// fails with [ErrCallDepth] instead of exhausting the stack.
const maxCallDepth = 256

// frame is the state of one chain of nested lambda calls. Each line run by
// [Host.Exec] starts its own chain, so concurrent lines never share a depth.
type frame struct {
	ctx   context.Context
	depth int
}

// Lambda is a callable stored by a defun form. Its body statements are
// compiled when it is called, against the slots defined at that time plus
// one variable per parameter.
type Lambda struct {
	host   *Host
	Params []string
	Body   []string
}

// Call binds args to the parameters and evaluates each body statement in
// order, returning the value of the last. A lambda without statements
// returns nil. Call starts a new call chain without cancellation; lambdas
// called by a line run by [Host.Exec] share that line's context instead.
func (l *Lambda) Call(args ...any) (any, error) {
	return l.call(frame{ctx: context.Background()}, args...)
}

func (l *Lambda) call(f frame, args ...any) (any, error) {
	if len(args) != len(l.Params) {
		return nil, ErrArity.With(
			slog.Int("want", len(l.Params)),
			slog.Int("got", len(args)))
	}

	if f.depth >= maxCallDepth {
		return nil, ErrCallDepth.With(slog.Int("limit", maxCallDepth))
	}

	if err := f.ctx.Err(); err != nil {
		return nil, err
	}

	inner := frame{ctx: f.ctx, depth: f.depth + 1}

	params := make(map[string]any, len(args))
	for i, name := range l.Params {
		params[lang.ExprName(name)] = args[i]
	}

	var result any

	for _, stmt := range l.Body {
		var err error

		result, err = l.host.eval(inner, stmt, params)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// String renders the lambda in source syntax.
func (l *Lambda) String() string {
	return "(lambda (" + strings.Join(l.Params, " ") + "))"
}

// makeLambda is the runtime half of the lambda instruction emitted for
// defun forms. Both arguments are lists of strings.
func (h *Host) makeLambda(params, body []any) (*Lambda, error) {
	l := &Lambda{
		host:   h,
		Params: make([]string, len(params)),
		Body:   make([]string, len(body)),
	}

	for i, p := range params {
		s, ok := p.(string)
		if !ok {
			return nil, ErrExecute.With(slog.String("issue", "lambda parameter is not a string"))
		}

		l.Params[i] = lang.SourceName(s)
	}

	for i, b := range body {
		s, ok := b.(string)
		if !ok {
			return nil, ErrExecute.With(slog.String("issue", "lambda statement is not a string"))
		}

		l.Body[i] = s
	}

	return l, nil
}

// bitwise returns a variadic builtin folding its integer operands with op
// from left to right.
func bitwise(op func(a, b int) int) func(args ...any) (any, error) {
	return func(args ...any) (any, error) {
		if len(args) == 0 {
			return nil, ErrArity.With(slog.Int("got", 0))
		}

		acc, ok := toInt(args[0])
		if !ok {
			return nil, ErrOperand.With(slog.Any("value", args[0]))
		}

		for _, a := range args[1:] {
			n, ok := toInt(a)
			if !ok {
				return nil, ErrOperand.With(slog.Any("value", a))
			}

			acc = op(acc, n)
		}

		return acc, nil
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), true
		}
	}

	return 0, false
}
