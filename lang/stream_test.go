package lang

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func collect(ctx context.Context, t *testing.T, s *Stream) []Line {
	t.Helper()

	var lines []Line

	for line := range s.Lines(ctx) {
		lines = append(lines, line)
	}

	return lines
}

func TestStream_Lines(t *testing.T) {
	src := strings.Join([]string{
		"(defvar x 1)",
		"",
		"; comment only",
		"(f x",
		"()",
		"   ",
		"(+ x 2) (g)",
	}, "\n")

	lines := collect(context.Background(), t, NewStreamFromString(src))

	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %+v", len(lines), lines)
	}

	want := []struct {
		number int
		text   string
		err    error
	}{
		{1, "global.x = 1", nil},
		{4, "", ErrExpectedClose},
		{7, "(x + 2); g()", nil},
	}

	for i, w := range want {
		got := lines[i]

		if got.Number != w.number {
			t.Errorf("line %d: Number = %d, want %d", i, got.Number, w.number)
		}

		if got.Text != w.text {
			t.Errorf("line %d: Text = %q, want %q", i, got.Text, w.text)
		}

		if w.err == nil && got.Err != nil {
			t.Errorf("line %d: unexpected error %v", i, got.Err)
		}

		if w.err != nil && !errors.Is(got.Err, w.err) {
			t.Errorf("line %d: error = %v, want %v", i, got.Err, w.err)
		}
	}

	if lines[1].Source != "(f x" {
		t.Errorf("failing line Source = %q", lines[1].Source)
	}
}

func TestStream_ErrorCarriesLine(t *testing.T) {
	lines := collect(context.Background(), t, NewStreamFromString("(f)\n(1 2)"))

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var le *Error
	if !errors.As(lines[1].Err, &le) {
		t.Fatalf("error %T is not *Error", lines[1].Err)
	}

	found := false

	for _, a := range le.Attrs() {
		if a.Key == "line" && a.Value.Int64() == 2 {
			found = true
		}
	}

	if !found {
		t.Errorf("error attrs %v missing line=2", le.Attrs())
	}
}

func TestStream_Target(t *testing.T) {
	var texts []string

	for line := range LinesFrom(context.Background(),
		strings.NewReader("(some f xs)\n(exit)"), WithTarget(Expr())) {
		if line.Err != nil {
			t.Fatalf("line %d: %v", line.Number, line.Err)
		}

		texts = append(texts, line.Text)
	}

	want := "any(xs, f(#))|exit()"
	if got := strings.Join(texts, "|"); got != want {
		t.Errorf("texts = %q, want %q", got, want)
	}
}

func TestStream_Break(t *testing.T) {
	n := 0

	for range NewStreamFromString("(a)\n(b)\n(c)").Lines(context.Background()) {
		n++

		break
	}

	if n != 1 {
		t.Errorf("iterated %d lines after break, want 1", n)
	}
}

func TestStream_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lines := collect(ctx, t, NewStreamFromString("(a)\n(b)"))

	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}

	if !errors.Is(lines[0].Err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", lines[0].Err)
	}
}

func TestStream_ReadError(t *testing.T) {
	r := io.MultiReader(strings.NewReader("(a)\n"), failingReader{})

	lines := collect(context.Background(), t, NewStream(r))

	if len(lines) == 0 {
		t.Fatal("got no lines")
	}

	last := lines[len(lines)-1]
	if !errors.Is(last.Err, ErrReadInput) {
		t.Errorf("last error = %v, want ErrReadInput", last.Err)
	}
}
