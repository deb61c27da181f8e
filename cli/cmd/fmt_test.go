package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/tslisp/lang"
)

type runner interface {
	Run(ctx context.Context) error
}

func runFmt(t *testing.T, content string, cmd func(Input) runner) (string, error) {
	t.Helper()

	dir := writeFiles(t, map[string]string{"in.tl": content})

	var out bytes.Buffer

	err := cmd(Input{Source: filepath.Join(dir, "in.tl")}).
		Run(WithOutput(context.Background(), &out))

	return out.String(), err
}

func TestNative_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		indent int
		want   string
	}{
		{
			name:  "whitespace and comments",
			input: "(defvar   x  1)   ; one\n\n(+  x\t2)",
			want:  "(defvar x 1)\n(+ x 2)\n",
		},
		{
			name:   "defun body indented",
			input:  "(defun sq (n) (* n n))",
			indent: 2,
			want:   "(defun sq (n)\n  (* n n))\n",
		},
		{
			name:  "defun on one line",
			input: "(defun sq (n) (* n n))",
			want:  "(defun sq (n) (* n n))\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := runFmt(t, tt.input, func(in Input) runner {
				return &Native{Input: in, Indent: tt.indent}
			})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("output =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestFmt_InvalidSyntax(t *testing.T) {
	t.Parallel()

	commands := map[string]func(Input) runner{
		"native": func(in Input) runner { return &Native{Input: in} },
		"tokens": func(in Input) runner { return &Tokens{Input: in} },
		"ast":    func(in Input) runner { return &AST{Input: in} },
		"json":   func(in Input) runner { return &JSON{Input: in} },
		"yaml":   func(in Input) runner { return &YAML{Input: in} },
	}

	for name, cmd := range commands {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := runFmt(t, "(defvar x", cmd)
			if !errors.Is(err, lang.ErrExpectedClose) {
				t.Errorf("Run() error = %v, want %v", err, lang.ErrExpectedClose)
			}

			if out != "" {
				t.Errorf("output on error = %q", out)
			}
		})
	}
}

func TestFmt_MissingFile(t *testing.T) {
	t.Parallel()

	err := (&Native{Input: Input{Source: filepath.Join(t.TempDir(), "none.tl")}}).
		Run(context.Background())
	if !errors.Is(err, ErrReadSource) {
		t.Errorf("Run() error = %v, want %v", err, ErrReadSource)
	}
}

func TestTokens_Run(t *testing.T) {
	t.Parallel()

	got, err := runFmt(t, `(print "hi" 2) ; c`, func(in Input) runner {
		return &Tokens{Input: in}
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, want := range []string{"identifier\tprint", "string\t\"hi\"", "number\t2"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestAST_Run(t *testing.T) {
	t.Parallel()

	got, err := runFmt(t, "(defconstant k 2) (f k)", func(in Input) runner {
		return &AST{Input: in}
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := strings.Join([]string{
		"DefConstant: k",
		"  Value: number: 2",
		"Function: f",
		"  Expression: identifier: k",
		"",
	}, "\n")

	if got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestJSON_Run(t *testing.T) {
	t.Parallel()

	got, err := runFmt(t, "(f 1) (g)", func(in Input) runner {
		return &JSON{Input: in, Indent: 2}
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(got), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, got)
	}

	if nodes, ok := doc["nodes"].([]any); !ok || len(nodes) != 2 {
		t.Errorf("nodes = %v, want 2 nodes", doc["nodes"])
	}
}

func TestYAML_Run(t *testing.T) {
	t.Parallel()

	got, err := runFmt(t, "(f 1) (g)", func(in Input) runner {
		return &YAML{Input: in, Indent: 2}
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal([]byte(got), &doc); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, got)
	}

	if nodes, ok := doc["nodes"].([]any); !ok || len(nodes) != 2 {
		t.Errorf("nodes = %v, want 2 nodes", doc["nodes"])
	}
}
