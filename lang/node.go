package lang

import (
	"context"
	"io"
	"strings"
)

// Node is a syntax tree node. The set of implementations is closed: [Empty],
// [Expression], [Function], [DefConstant], [DefVariable] and [DefFunction].
type Node interface {
	node()
}

// Empty is the node of an empty group "()".
type Empty struct{}

// Expression is a literal or identifier leaf.
type Expression struct {
	Token Token
}

// Function is a call of Name with one argument per child.
type Function struct {
	Name     string
	Children []Node
}

// DefConstant stores the literal Value in the slot Name.
type DefConstant struct {
	Name  string
	Value Token
}

// DefVariable stores the literal Value in the slot Name.
type DefVariable struct {
	Name  string
	Value Token
}

// DefFunction stores a callable over Params in the slot Name. Calling it
// evaluates each Body node in order and yields the value of the last.
type DefFunction struct {
	Name   string
	Params []string
	Body   []Node
}

func (Empty) node()       {}
func (Expression) node()  {}
func (Function) node()    {}
func (DefConstant) node() {}
func (DefVariable) node() {}
func (DefFunction) node() {}

// AST is the result of parsing one unit of source text.
type AST struct {
	Source string
	Tokens []Token
	Nodes  []Node
}

// Print writes a formatted representation of the AST to the writer.
func (ast *AST) Print(ctx context.Context, w io.Writer) {
	ast.PrintIndent(ctx, w, 0)
}

// PrintIndent writes a formatted representation of the AST to the writer
// with the specified indentation.
func (ast *AST) PrintIndent(ctx context.Context, w io.Writer, indent int) {
	for _, n := range ast.Nodes {
		PrintNode(ctx, w, n, indent)
	}
}

func writer(w io.Writer) func(eol string, item ...string) {
	return func(eol string, item ...string) {
		_, err := io.WriteString(w, strings.Join(item, ": ")+eol)
		if err != nil {
			panic(err)
		}
	}
}

// PrintNode writes n and its descendants as an indented tree.
func PrintNode(ctx context.Context, w io.Writer, n Node, indent int) {
	prefix := strings.Repeat("  ", indent)
	put := writer(w)

	switch n := n.(type) {
	case Empty:
		put("\n", prefix+"Empty")

	case Expression:
		put("\n", prefix+"Expression", n.Token.Kind.String(), n.Token.Text)

	case Function:
		put("\n", prefix+"Function", n.Name)

		for _, c := range n.Children {
			PrintNode(ctx, w, c, indent+1)
		}

	case DefConstant:
		put("\n", prefix+"DefConstant", n.Name)
		put("\n", prefix+"  Value", n.Value.Kind.String(), n.Value.Text)

	case DefVariable:
		put("\n", prefix+"DefVariable", n.Name)
		put("\n", prefix+"  Value", n.Value.Kind.String(), n.Value.Text)

	case DefFunction:
		put("\n", prefix+"DefFunction", n.Name)
		put("\n", prefix+"  Params", "("+strings.Join(n.Params, " ")+")")

		if len(n.Body) > 0 {
			put(":\n", prefix+"  Body")

			for _, c := range n.Body {
				PrintNode(ctx, w, c, indent+2)
			}
		}
	}
}
