package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes each top-level form of the AST in canonical source syntax,
// one per line. Comments are not preserved.
//
// Top-level forms are written on a single line unless indent > 0, in which
// case the body statements of defun forms are placed on their own lines.
func (ast *AST) Format(_ context.Context, w io.Writer, indent int) error {
	for _, n := range ast.Nodes {
		if _, err := fmt.Fprintln(w, FormatNode(n, indent)); err != nil {
			return err
		}
	}

	return nil
}

// FormatTokens writes one token per line as "kind<TAB>text".
func (ast *AST) FormatTokens(_ context.Context, w io.Writer) error {
	for _, t := range ast.Tokens {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", t.Kind, t.Text); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the AST as JSON to the writer.
func (ast *AST) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(ast, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(ast)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the AST as YAML to the writer.
func (ast *AST) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, ast.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// FormatNode renders n in canonical source syntax.
func FormatNode(n Node, indent int) string {
	var sb strings.Builder

	formatNode(&sb, n, indent, 0)

	return sb.String()
}

func formatNode(sb *strings.Builder, n Node, indent, depth int) {
	switch n := n.(type) {
	case Empty:
		sb.WriteString("()")

	case Expression:
		sb.WriteString(n.Token.Text)

	case Function:
		sb.WriteString("(" + n.Name)

		for _, c := range n.Children {
			sb.WriteByte(' ')
			formatNode(sb, c, indent, depth+1)
		}

		sb.WriteByte(')')

	case DefConstant:
		sb.WriteString("(defconstant " + n.Name + " " + n.Value.Text + ")")

	case DefVariable:
		sb.WriteString("(defvar " + n.Name + " " + n.Value.Text + ")")

	case DefFunction:
		sb.WriteString("(defun " + n.Name + " (" + strings.Join(n.Params, " ") + ")")

		for _, c := range n.Body {
			if indent > 0 {
				sb.WriteByte('\n')
				sb.WriteString(strings.Repeat(" ", indent*(depth+1)))
			} else {
				sb.WriteByte(' ')
			}

			formatNode(sb, c, indent, depth+1)
		}

		sb.WriteByte(')')
	}
}
