package repl

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/tslisp/host"
	"github.com/ardnew/tslisp/lang"
)

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// variadic prefixes a parameter that accepts any number of arguments.
const variadic = "..."

// keywordParams are the parameters of the definition forms.
var keywordParams = map[string][]string{
	"defconstant": {"name", "value"},
	"defvar":      {"name", "value"},
	"defun":       {"name", "(params)", variadic + "body"},
}

// functionCall is the innermost list enclosing the cursor.
type functionCall struct {
	name     string
	argIndex int // -1 while the name itself is being typed
	inCall   bool
}

// detectFunctionCall finds the innermost unclosed list before cursor and
// the index of the argument being entered.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))
	prefix := input[:cursor]

	type frame struct {
		name    string
		args    int
		started bool // first element seen
	}

	var (
		stack []frame
		last  lang.Kind = -1
	)

	next := func() {
		if len(stack) == 0 {
			return
		}

		top := &stack[len(stack)-1]
		if top.started {
			top.args++
		} else {
			top.started = true
		}
	}

	for _, tok := range lang.Tokenize(prefix) {
		switch tok.Kind {
		case lang.KindComment:
			continue

		case lang.KindOpenParen:
			stack = append(stack, frame{})

		case lang.KindCloseParen:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

			next()

		default:
			if len(stack) > 0 && !stack[len(stack)-1].started &&
				(tok.Kind == lang.KindIdentifier || tok.Kind.IsKeyword()) {
				stack[len(stack)-1].name = tok.Text
			}

			next()
		}

		last = tok.Kind
	}

	if len(stack) == 0 || stack[len(stack)-1].name == "" {
		return functionCall{}
	}

	top := stack[len(stack)-1]
	arg := top.args

	r, _ := utf8.DecodeLastRuneInString(prefix)
	typing := last.IsAtom() || last.IsKeyword() || last == lang.KindCloseParen

	if typing && !unicode.IsSpace(r) {
		// Cursor touches the last token, so it is still being entered.
		arg--
	}

	return functionCall{name: top.name, argIndex: arg, inCall: true}
}

// signature returns the parameter names of the named callable: a
// definition keyword, a target form, a slot holding a lambda, or a
// builtin function.
func (s *session) signature(name string) ([]string, bool) {
	if params, ok := keywordParams[name]; ok {
		return params, true
	}

	if rule, ok := s.compiler.Target().Lookup(name); ok {
		return formParams(rule.Table, name), true
	}

	if v, ok := s.host.Lookup(name); ok {
		if l, ok := v.(*host.Lambda); ok {
			return l.Params, true
		}

		return nil, false
	}

	return builtinParams(name)
}

// formParams describes the operands of a form handled by a rule of table.
func formParams(table, form string) []string {
	switch table {
	case lang.TableBinary:
		return []string{"a", variadic + "b"}

	case lang.TableUnary:
		return []string{"x"}

	case lang.TableList:
		switch form {
		case "list":
			return []string{variadic + "items"}
		case "includes":
			return []string{"item", "list"}
		default:
			return []string{"fn", "list"}
		}

	default:
		if form == "set" {
			return []string{"name", "value"}
		}

		return nil
	}
}

// builtinParams describes the parameters of a builtin function by the
// types of its arguments.
func builtinParams(name string) ([]string, bool) {
	v, ok := host.Builtin(name)
	if !ok || v == nil {
		return nil, false
	}

	t := reflect.TypeOf(v)
	if t.Kind() != reflect.Func {
		return nil, false
	}

	params := make([]string, t.NumIn())

	for i := range params {
		in := t.In(i)

		if t.IsVariadic() && i == len(params)-1 {
			params[i] = variadic + typeName(in.Elem())
		} else {
			params[i] = typeName(in)
		}
	}

	return params, true
}

// typeName returns a short readable name of t.
func typeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Func:
		return "fn"
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "bool"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map:
		return "map"
	case reflect.Pointer:
		return typeName(t.Elem())
	default:
		return "any"
	}
}

// renderSignatureHint renders "(name params...)" with the parameter at
// argIndex highlighted. A variadic parameter is highlighted for every
// index at or after its own.
func renderSignatureHint(name string, params []string, argIndex int) string {
	var b strings.Builder

	b.WriteString(signatureStyle.Render("("))
	b.WriteString(signatureNameStyle.Render(name))

	for i, p := range params {
		b.WriteString(signatureStyle.Render(" "))

		current := argIndex == i ||
			(strings.HasPrefix(p, variadic) && argIndex >= i)

		if current {
			b.WriteString(currentParamStyle.Render(p))
		} else {
			b.WriteString(signatureStyle.Render(p))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
