package lang

import (
	"strconv"
	"strings"
	"sync"
)

// Names of the dispatch tables, in the order every built-in [Target]
// consults them.
const (
	TableBinary = "binary"
	TableUnary  = "unary"
	TableList   = "list"
	TableMisc   = "misc"
)

// Rule is one entry of a target's dispatch table. Forms maps each source
// form name handled by the rule to its target spelling, typically an
// operator or method name. Emit renders a call of form given its already
// generated parameter texts.
type Rule struct {
	Forms map[string]string
	Emit  func(form, op string, params []string) string
	Table string
}

// Match reports whether r handles the named form and returns its spelling.
func (r Rule) Match(name string) (string, bool) {
	op, ok := r.Forms[name]

	return op, ok
}

// Target describes the language generated code is written in and the
// runtime that executes it.
//
// Rules are consulted in order and the first one containing a form's name
// wins. Forms matched by no rule become plain calls via Call.
type Target struct {
	// Call renders name(params...).
	Call func(name string, params []string) string
	// Define renders storing value in the slot called name.
	Define func(name, value string) string
	// Lambda renders a callable over params whose result is that of the last
	// body statement.
	Lambda func(params, body []string) string
	// Ident renders a source identifier. A nil Ident keeps it verbatim.
	Ident func(name string) string
	Name   string
	// Placeholder stands in for an operand the source did not supply.
	Placeholder string
	// Separator joins the texts of consecutive top-level forms. A form
	// ending in the separator's trimmed text loses that suffix first, so a
	// JavaScript lambda followed by another form yields "...); f()".
	Separator string
	Rules     []Rule
}

// param returns params[i], or the target's placeholder if absent.
func (t *Target) param(params []string, i int) string {
	if i < len(params) && params[i] != "" {
		return params[i]
	}

	return t.Placeholder
}

// ident renders the source identifier name.
func (t *Target) ident(name string) string {
	if t.Ident == nil {
		return name
	}

	return t.Ident(name)
}

// Lookup returns the rule that handles the named form, if any.
func (t *Target) Lookup(name string) (Rule, bool) {
	for _, r := range t.Rules {
		if _, ok := r.Match(name); ok {
			return r, true
		}
	}

	return Rule{}, false
}

// Forms returns the name of every form handled by the target's rules, in
// rule order. The order within one rule is unspecified.
func (t *Target) Forms() []string {
	var names []string

	for _, r := range t.Rules {
		for name := range r.Forms {
			names = append(names, name)
		}
	}

	return names
}

// Targets returns the built-in targets keyed by name.
func Targets() map[string]*Target {
	return map[string]*Target{
		JavaScript().Name: JavaScript(),
		Expr().Name:       Expr(),
	}
}

// infix joins params with op, parenthesized as one unit.
func infix(t *Target) func(_, op string, params []string) string {
	return func(_, op string, params []string) string {
		if len(params) == 0 {
			return "(" + t.Placeholder + ")"
		}

		return "(" + strings.Join(params, " "+op+" ") + ")"
	}
}

// prefix applies op to the first parameter and ignores the rest.
func prefix(t *Target) func(_, op string, params []string) string {
	return func(_, op string, params []string) string {
		return op + t.param(params, 0)
	}
}

func call(name string, params []string) string {
	return name + "(" + strings.Join(params, ", ") + ")"
}

func sequence(params []string) string {
	return "[" + strings.Join(params, ", ") + "]"
}

// JavaScript returns the target that emits JavaScript for evaluation in a
// Node.js global scope. Slots are properties of the global object.
var JavaScript = sync.OnceValue(func() *Target {
	t := &Target{
		Name:        "js",
		Placeholder: "undefined",
		Separator:   "; ",
		Call:        call,
		Define: func(name, value string) string {
			return "global." + name + " = " + value
		},
	}

	t.Lambda = func(params, body []string) string {
		stmts := make([]string, len(body))
		for i := range body {
			stmts[i] = "(" + t.param(body, i) + ")"
		}

		if len(stmts) == 0 {
			stmts = []string{t.Placeholder}
		}

		return "(" + strings.Join(params, ", ") + ") => (" +
			strings.Join(stmts, ", ") + ");"
	}

	t.Rules = []Rule{
		{
			Table: TableBinary,
			Forms: map[string]string{
				"+": "+", "-": "-", "*": "*", "/": "/",
				"=": "===", "!=": "!==",
				"or": "||", "and": "&&", "xor": "^",
				"mod": "%", "exp": "**",
				"<": "<", "<=": "<=", ">": ">", ">=": ">=",
				"lshift": "<<", "rshift": ">>",
			},
			Emit: infix(t),
		},
		{
			Table: TableUnary,
			Forms: map[string]string{"not": "!", "neg": "-"},
			Emit:  prefix(t),
		},
		{
			Table: TableList,
			Forms: map[string]string{
				"list":     "",
				"filter":   "filter",
				"map":      "map",
				"some":     "some",
				"every":    "every",
				"includes": "includes",
			},
			Emit: func(form, op string, params []string) string {
				if form == "list" {
					return sequence(params)
				}

				return t.param(params, 1) + "." + op + "(" + t.param(params, 0) + ")"
			},
		},
		{
			Table: TableMisc,
			Forms: map[string]string{"exit": "process.exit", "set": ""},
			Emit: func(form, op string, params []string) string {
				if form == "exit" {
					return op + "(0)"
				}

				return t.Define(t.param(params, 0), t.param(params, 1))
			},
		},
	}

	return t
})

// exprHyphen spells '-' inside identifiers of the [Expr] target. It is a
// letter to expr-lang, so "line-count" is read as one name rather than a
// subtraction.
const exprHyphen = "ǂ"

// ExprName returns the [Expr] spelling of the source identifier name.
// Names made only of hyphens are operators and keep their spelling.
func ExprName(name string) string {
	if strings.Trim(name, "-") == "" {
		return name
	}

	return strings.ReplaceAll(name, "-", exprHyphen)
}

// SourceName returns the source identifier spelled name by [ExprName].
func SourceName(name string) string {
	return strings.ReplaceAll(name, exprHyphen, "-")
}

// Expr returns the target that emits expr-lang source for the host runtime.
//
// Slots are stored by calling the runtime function define(name, value).
// Callables are built by lambda(params, body), which receives the parameter
// names and the source of each body statement as string lists. exit()
// terminates the session. Forms without an expr-lang operator (xor, lshift,
// rshift) are plain calls of runtime functions with those names.
// Identifiers are spelled by [ExprName].
var Expr = sync.OnceValue(func() *Target {
	t := &Target{
		Name:        "expr",
		Placeholder: "nil",
		Separator:   "; ",
		Call:        call,
		Ident:       ExprName,
		Define: func(name, value string) string {
			return "define(" + strconv.Quote(name) + ", " + value + ")"
		},
	}

	t.Lambda = func(params, body []string) string {
		quoted := func(ss []string) string {
			q := make([]string, len(ss))
			for i := range ss {
				q[i] = strconv.Quote(t.param(ss, i))
			}

			return sequence(q)
		}

		return "lambda(" + quoted(params) + ", " + quoted(body) + ")"
	}

	t.Rules = []Rule{
		{
			Table: TableBinary,
			Forms: map[string]string{
				"+": "+", "-": "-", "*": "*", "/": "/",
				"=": "==", "!=": "!=",
				"or": "||", "and": "&&",
				"mod": "%", "exp": "**",
				"<": "<", "<=": "<=", ">": ">", ">=": ">=",
			},
			Emit: infix(t),
		},
		{
			Table: TableUnary,
			Forms: map[string]string{"not": "!", "neg": "-"},
			Emit:  prefix(t),
		},
		{
			Table: TableList,
			Forms: map[string]string{
				"list":     "",
				"filter":   "filter",
				"map":      "map",
				"some":     "any",
				"every":    "all",
				"includes": "in",
			},
			Emit: func(form, op string, params []string) string {
				switch form {
				case "list":
					return sequence(params)
				case "includes":
					return "(" + t.param(params, 0) + " in " + t.param(params, 1) + ")"
				default:
					return op + "(" + t.param(params, 1) + ", " + t.param(params, 0) + "(#))"
				}
			},
		},
		{
			Table: TableMisc,
			Forms: map[string]string{"exit": "exit", "set": ""},
			Emit: func(form, op string, params []string) string {
				if form == "exit" {
					return op + "()"
				}

				return t.Define(t.param(params, 0), t.param(params, 1))
			},
		},
	}

	return t
})
