package repl

import (
	"context"
	"slices"
	"testing"

	"github.com/ardnew/tslisp/lang"
	"github.com/ardnew/tslisp/log"
)

func TestWordBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		cursor int
		word   string
		start  int
		end    int
	}{
		{"", 0, "", 0, 0},
		{"(pri", 4, "pri", 1, 4},
		{"(print x", 3, "print", 1, 6},
		{"(+ line-co", 10, "line-co", 3, 10},
		{"(path.ca", 8, "ca", 6, 8},
		{"(f ", 3, "", 3, 3},
		{`(print "ab`, 10, "ab", 8, 10},
		{"(>= a", 3, ">=", 1, 3},
		{"(f)", 99, "", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.word || start != tt.start || end != tt.end {
				t.Errorf("wordBounds(%q, %d) = %q, %d, %d; want %q, %d, %d",
					tt.input, tt.cursor, word, start, end, tt.word, tt.start, tt.end)
			}
		})
	}
}

func TestParentPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"(path.ca", "path"},
		{"(path.", "path"},
		{"(f platform.os", "platform"},
		{"(a.b.c", "a.b"},
		{"(path", ""},
		{"(f x", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			_, start, _ := wordBounds(tt.input, len(tt.input))
			if got := parentPath(tt.input, start); got != tt.want {
				t.Errorf("parentPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSession_Candidates(t *testing.T) {
	t.Parallel()

	s := newSession(lang.JavaScript(), log.Logger{})

	if _, _, err := s.exec(context.Background(), "(defvar line-count 3)"); err != nil {
		t.Fatal(err)
	}

	top := s.candidates("")

	for _, want := range []string{"defun", "defvar", "filter", "lshift", "line-count", "path", "print"} {
		if !slices.Contains(top, want) {
			t.Errorf("top-level candidates missing %q", want)
		}
	}

	if !slices.IsSorted(top) || len(slices.Compact(slices.Clone(top))) != len(top) {
		t.Error("top-level candidates are not sorted and unique")
	}

	if got := s.candidates("path"); !slices.Equal(got, []string{"abs", "cat", "rel"}) {
		t.Errorf("candidates(path) = %v", got)
	}

	if got := s.candidates("line-count"); got != nil {
		t.Errorf("candidates(line-count) = %v, want none", got)
	}
}

func TestIsBuiltinFunc(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]bool{
		"cwd":      true,
		"xor":      true,
		"path":     false,
		"hostname": false,
		"missing":  false,
	} {
		if got := isBuiltinFunc(name); got != want {
			t.Errorf("isBuiltinFunc(%q) = %v, want %v", name, got, want)
		}
	}
}
