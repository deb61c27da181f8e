package lang

import (
	"strconv"
	"strings"
)

// Builder provides a programmatic API for constructing syntax trees without
// parsing source text. This is useful for generating code directly or for
// testing.
//
// Example:
//
//	b := lang.NewBuilder()
//	ast := b.AST(
//	    b.DefFunction("sq", []string{"n"},
//	        b.Call("*", b.Identifier("n"), b.Identifier("n")),
//	    ),
//	)
//
// The builder does not validate its input. A tree that could not have been
// parsed, such as a defvar whose value is a keyword, generates whatever the
// target makes of it.
type Builder struct{}

// NewBuilder creates a new syntax tree builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Call creates a [Function] node.
func (b *Builder) Call(name string, args ...Node) Node {
	return Function{Name: name, Children: args}
}

// DefConstant creates a [DefConstant] node.
func (b *Builder) DefConstant(name string, value Expression) Node {
	return DefConstant{Name: name, Value: value.Token}
}

// DefVariable creates a [DefVariable] node.
func (b *Builder) DefVariable(name string, value Expression) Node {
	return DefVariable{Name: name, Value: value.Token}
}

// DefFunction creates a [DefFunction] node.
func (b *Builder) DefFunction(name string, params []string, body ...Node) Node {
	return DefFunction{Name: name, Params: params, Body: body}
}

// Empty creates an [Empty] node.
func (b *Builder) Empty() Node {
	return Empty{}
}

// Identifier creates an identifier [Expression].
func (b *Builder) Identifier(name string) Expression {
	return Expression{Token: Token{Kind: KindIdentifier, Text: name}}
}

// String creates a string literal [Expression]. The text is quoted with Go
// escapes, which agree with those of both built-in targets for printable
// input.
func (b *Builder) String(s string) Expression {
	return Expression{Token: Token{Kind: KindString, Text: strconv.Quote(s)}}
}

// Number creates a number literal [Expression].
func (b *Builder) Number(n float64) Expression {
	return Expression{Token: Token{
		Kind: KindNumber,
		Text: strconv.FormatFloat(n, 'g', -1, 64),
	}}
}

// Bool creates a boolean literal [Expression].
func (b *Builder) Bool(v bool) Expression {
	return Expression{Token: Token{Kind: KindBoolean, Text: strconv.FormatBool(v)}}
}

// AST creates an [AST] with the given top-level nodes. Its source is the
// canonical formatting of the nodes.
func (b *Builder) AST(nodes ...Node) *AST {
	src := make([]string, len(nodes))
	for i, n := range nodes {
		src[i] = FormatNode(n, 0)
	}

	source := strings.Join(src, "\n")

	return &AST{Source: source, Tokens: Tokenize(source), Nodes: nodes}
}
