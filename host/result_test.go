package host

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"
)

func TestFormatResult(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"true", true, "true"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"float", 3.5, "3.5"},
		{"whole float", 1024.0, "1024"},
		{"string", `say "hi"`, `"say \"hi\""`},
		{"empty list", []any{}, "(list)"},
		{"nested list", []any{1, []any{"a", nil}}, `(list 1 (list "a" nil))`},
		{"map", map[string]any{"b": 2, "a": 1}, "((a 1) (b 2))"},
		{"lambda", &Lambda{Params: []string{"x", "y"}}, "(lambda (x y))"},
		{"builtin", pathCat, "(builtin)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatResult(tt.value); got != tt.want {
				t.Errorf("FormatResult(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestBuiltins(t *testing.T) {
	names := Builtins()

	for _, want := range []string{"define", "lambda", "exit", "print", "env", "mung", "path", "xor"} {
		if !slices.Contains(names, want) {
			t.Errorf("Builtins() missing %q", want)
		}
	}

	if !slices.IsSorted(names) {
		t.Error("Builtins() is not sorted")
	}
}

func TestBuiltinLookup(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"path", []string{"abs", "cat", "rel"}},
		{"mung", []string{"prefix", "prefixif"}},
		{"console", []string{"log"}},
		{"platform", []string{"arch", "os"}},
		{"path.cat", nil},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := BuiltinLookup(tt.path); !slices.Equal(got, tt.want) {
				t.Errorf("BuiltinLookup(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestBuiltin(t *testing.T) {
	if v, ok := Builtin("path.cat"); !ok || reflect.TypeOf(v).Kind() != reflect.Func {
		t.Errorf("Builtin(path.cat) = %v, %v", v, ok)
	}

	if v, ok := Builtin("platform"); !ok {
		t.Errorf("Builtin(platform) = %v, %v", v, ok)
	}

	for _, path := range []string{"", "nope", "path.cat.x", "print"} {
		if _, ok := Builtin(path); ok {
			t.Errorf("Builtin(%q) found", path)
		}
	}
}

func TestBitwise(t *testing.T) {
	xor := bitwise(func(a, b int) int { return a ^ b })

	got, err := xor(12, 10.0, 1)
	if err != nil {
		t.Fatalf("xor error: %v", err)
	}

	if got != 7 {
		t.Errorf("xor(12, 10, 1) = %v, want 7", got)
	}

	if _, err := xor(1.5); err == nil {
		t.Error("xor(1.5) succeeded, want ErrOperand")
	}

	if _, err := xor(); err == nil {
		t.Error("xor() succeeded, want ErrArity")
	}
}

func TestFileBuiltins(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")

	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	if !fileExists(file) || !fileIsRegular(file) || fileIsDir(file) {
		t.Errorf("file predicates wrong for regular file %s", file)
	}

	if !fileIsDir(dir) || fileIsRegular(dir) {
		t.Errorf("file predicates wrong for directory %s", dir)
	}

	if fileExists(filepath.Join(dir, "missing")) {
		t.Error("fileExists reported a missing file")
	}

	if got := pathRel(dir, file); got != "f" {
		t.Errorf("pathRel = %q, want f", got)
	}
}

func TestMungPrefix(t *testing.T) {
	sep := string(os.PathListSeparator)
	list := strings.Join([]string{"/usr/bin", "/bin"}, sep)

	got := mungPrefix(list, "/opt/bin")
	if !strings.Contains(got, "/opt/bin") {
		t.Errorf("mungPrefix = %q, want /opt/bin added", got)
	}

	if !strings.Contains(got, "/usr/bin") {
		t.Errorf("mungPrefix = %q dropped existing items", got)
	}
}
