package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/tslisp/cli/cmd"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "tslisp-cli-test-*")
	if err != nil {
		panic(err)
	}

	// The configuration and cache directories are resolved once per
	// process, so they must point into dir before any test runs.
	for _, key := range []string{"HOME", "XDG_CONFIG_HOME", "XDG_CACHE_HOME"} {
		if err := os.Setenv(key, filepath.Join(dir, strings.ToLower(key))); err != nil {
			panic(err)
		}
	}

	code := m.Run()

	_ = os.RemoveAll(dir)

	os.Exit(code)
}

func noExit(t *testing.T) func(int) {
	t.Helper()

	return func(code int) { t.Errorf("exit(%d) called", code) }
}

func TestRun_Init(t *testing.T) {
	ctx := context.Background()

	if err := Run(ctx, noExit(t), "--target=expr", "init", "--force"); err != nil {
		t.Fatalf("init error: %v", err)
	}

	data, err := os.ReadFile(configPath(baseConfigYAML))
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"target: expr", "log-level: warn"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("config missing %q:\n%s", want, data)
		}
	}

	if strings.Contains(string(data), "pprof") {
		t.Errorf("config contains profiling flags:\n%s", data)
	}

	err = Run(ctx, noExit(t), "init")
	if !errors.Is(err, cmd.ErrFileExists) {
		t.Errorf("second init error = %v, want %v", err, cmd.ErrFileExists)
	}

	if err := os.Remove(configPath(baseConfigYAML)); err != nil {
		t.Fatal(err)
	}
}

func TestRun_Compile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "prog.tl")

	if err := os.WriteFile(src, []byte("(defvar x 1)\n(+ x\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := Run(context.Background(), noExit(t), src)
	if !errors.Is(err, cmd.ErrCompile) {
		t.Errorf("compile error = %v, want %v", err, cmd.ErrCompile)
	}
}

func TestTargetVars(t *testing.T) {
	if got := targetVars()["targetEnum"]; got != "expr,js" {
		t.Errorf("targetEnum = %q, want %q", got, "expr,js")
	}
}
