package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
)

func mustParse(t *testing.T, src string) *AST {
	t.Helper()

	ast, err := Parse(context.Background(), src)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}

	return ast
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		indent int
		want   string
	}{
		{"empty", "", 0, ""},
		{"comments dropped", "; c\n(  f   1 ) ; trailing", 0, "(f 1)\n"},
		{"one form per line", "(a) () (b (c))", 0, "(a)\n()\n(b (c))\n"},
		{"definitions", `(defconstant pi 3.14) (defvar s "a b")`, 0,
			"(defconstant pi 3.14)\n(defvar s \"a b\")\n"},
		{"defun flat", "(defun sq (n)\n (* n n))", 0, "(defun sq (n) (* n n))\n"},
		{"defun indented", "(defun f (a b) (g a) (h b))", 2,
			"(defun f (a b)\n  (g a)\n  (h b))\n"},
		{"nested defun indented", "(defun f () (defun g () (h)))", 2,
			"(defun f ()\n  (defun g ()\n    (h)))\n"},
		{"defun without body", "(defun f ())", 2, "(defun f ())\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			if err := mustParse(t, tt.input).Format(context.Background(), &buf, tt.indent); err != nil {
				t.Fatalf("Format error: %v", err)
			}

			if buf.String() != tt.want {
				t.Errorf("Format(%q) =\n%q\nwant\n%q", tt.input, buf.String(), tt.want)
			}
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	inputs := []string{
		"(defun add (a b) (+ a b)) (add 1 (neg 2))",
		`(print "x ; y" true) (defvar n 1e3)`,
		"(map sq (list 1 2 3)) ()",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			ast := mustParse(t, input)

			var buf bytes.Buffer

			if err := ast.Format(context.Background(), &buf, 2); err != nil {
				t.Fatalf("Format error: %v", err)
			}

			again := mustParse(t, buf.String())

			if render(again.Nodes...) != render(ast.Nodes...) {
				t.Errorf("formatted source parses differently:\n%s", buf.String())
			}
		})
	}
}

func TestFormatTokens(t *testing.T) {
	var buf bytes.Buffer

	if err := mustParse(t, `(f 1 "s") ; c`).FormatTokens(context.Background(), &buf); err != nil {
		t.Fatalf("FormatTokens error: %v", err)
	}

	want := strings.Join([]string{
		"open-paren\t(",
		"identifier\tf",
		"number\t1",
		"string\t\"s\"",
		"close-paren\t)",
		"comment\t; c",
		"",
	}, "\n")

	if buf.String() != want {
		t.Errorf("FormatTokens =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestFormatJSON(t *testing.T) {
	for _, indent := range []int{0, 2} {
		var buf bytes.Buffer

		if err := mustParse(t, "(defun f (x) (g x))").FormatJSON(context.Background(), &buf, indent); err != nil {
			t.Fatalf("FormatJSON error: %v", err)
		}

		if got := strings.Count(buf.String(), "\n") > 1; got != (indent > 0) {
			t.Errorf("indent %d: multiline = %t", indent, got)
		}

		var doc struct {
			Source string           `json:"source"`
			Nodes  []map[string]any `json:"nodes"`
			Tokens []map[string]any `json:"tokens"`
		}

		if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
		}

		if doc.Source != "(defun f (x) (g x))" {
			t.Errorf("source = %q", doc.Source)
		}

		if len(doc.Tokens) != 11 {
			t.Errorf("got %d tokens, want 11", len(doc.Tokens))
		}

		if len(doc.Nodes) != 1 || doc.Nodes[0]["node"] != "defun" || doc.Nodes[0]["name"] != "f" {
			t.Errorf("nodes = %v", doc.Nodes)
		}
	}
}

func TestFormatYAML(t *testing.T) {
	for _, indent := range []int{0, 4} {
		var buf bytes.Buffer

		if err := mustParse(t, "(defvar x 1)").FormatYAML(context.Background(), &buf, indent); err != nil {
			t.Fatalf("FormatYAML error: %v", err)
		}

		var doc map[string]any
		if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
			t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
		}

		if doc["source"] != "(defvar x 1)" {
			t.Errorf("indent %d: source = %v", indent, doc["source"])
		}

		nodes, ok := doc["nodes"].([]any)
		if !ok || len(nodes) != 1 {
			t.Fatalf("indent %d: nodes = %v", indent, doc["nodes"])
		}

		node, ok := nodes[0].(map[string]any)
		if !ok || node["node"] != "defvar" {
			t.Errorf("indent %d: node = %v", indent, nodes[0])
		}
	}
}

func TestPrintIndent(t *testing.T) {
	var buf bytes.Buffer

	mustParse(t, "(defun sq (n) (* n 2)) (defconstant k true) ()").
		PrintIndent(context.Background(), &buf, 1)

	want := strings.Join([]string{
		"  DefFunction: sq",
		"    Params: (n)",
		"    Body:",
		"      Function: *",
		"        Expression: identifier: n",
		"        Expression: number: 2",
		"  DefConstant: k",
		"    Value: boolean: true",
		"  Empty",
		"",
	}, "\n")

	if buf.String() != want {
		t.Errorf("PrintIndent =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestNodeToNative(t *testing.T) {
	got := NodeToNative(Function{Name: "f", Children: []Node{Empty{}}})

	if got["node"] != "function" || got["name"] != "f" {
		t.Errorf("NodeToNative = %v", got)
	}

	children, ok := got["children"].([]any)
	if !ok || len(children) != 1 {
		t.Fatalf("children = %v", got["children"])
	}

	if child, _ := children[0].(map[string]any); child["node"] != "empty" {
		t.Errorf("child = %v", children[0])
	}

	if NodeToNative(nil) != nil {
		t.Error("NodeToNative(nil) is not nil")
	}
}
