package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	if logger.Level() != DefaultLevel {
		t.Errorf("Level() = %v, want %v", logger.Level(), DefaultLevel)
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("Format() = %v, want %v", logger.Format(), DefaultFormat)
	}

	if logger.caller {
		t.Error("caller enabled by default")
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelDebug))

	logger.Debug("debug message")

	if !strings.Contains(buf.String(), "debug message") {
		t.Error("debug message not logged at Debug level")
	}

	buf.Reset()

	logger = Make(&buf, WithLevel(LevelError))
	logger.Info("info message")

	if buf.Len() > 0 {
		t.Errorf("info message logged at Error level: %s", buf.String())
	}

	logger.Error("error message")

	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at Error level")
	}
}

func TestLogger_Trace_RendersLevelName(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON))
	logger.Trace("tokenize complete", slog.Int("token_count", 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v: %s", err, buf.String())
	}

	if record[slog.LevelKey] != "TRACE" {
		t.Errorf("level = %v, want TRACE", record[slog.LevelKey])
	}

	if record["token_count"] != float64(3) {
		t.Errorf("token_count = %v, want 3", record["token_count"])
	}
}

func TestLogger_WithCaller_ReportsCallSite(t *testing.T) {
	tests := []struct {
		name string
		log  func(Logger)
	}{
		{"method", func(l Logger) { l.Warn("here") }},
		{"context method", func(l Logger) { l.WarnContext(context.Background(), "here") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithCaller(true), WithFormat(FormatJSON)))

			if !strings.Contains(buf.String(), "log_test.go") {
				t.Errorf("source does not name the calling file: %s", buf.String())
			}
		})
	}
}

func TestLogger_WithFormat_SetsOutputFormat(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		check  func(string) bool
	}{
		{
			name:   "json",
			format: FormatJSON,
			check: func(s string) bool {
				return json.Valid([]byte(strings.TrimSpace(s)))
			},
		},
		{
			name:   "text",
			format: FormatText,
			check: func(s string) bool {
				return strings.Contains(s, "msg=hello") && strings.Contains(s, "k=v")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			Make(&buf, WithFormat(tt.format)).Warn("hello", slog.String("k", "v"))

			if !tt.check(buf.String()) {
				t.Errorf("unexpected %s output: %s", tt.name, buf.String())
			}
		})
	}
}

func TestLogger_Wrap_OverridesConfiguration(t *testing.T) {
	var first, second bytes.Buffer

	base := Make(&first, WithLevel(LevelError))
	wrapped := base.Wrap(WithOutput(&second), WithLevel(LevelInfo))

	wrapped.Info("to second")
	base.Info("dropped")

	if first.Len() > 0 {
		t.Errorf("base logger wrote below its level: %s", first.String())
	}

	if !strings.Contains(second.String(), "to second") {
		t.Errorf("wrapped logger did not write: %q", second.String())
	}

	if base.Level() != LevelError {
		t.Errorf("Wrap modified the receiver's level to %v", base.Level())
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON)).With(Target("js"))
	logger.Warn("compiled")

	if !strings.Contains(buf.String(), `"target":"js"`) {
		t.Errorf("output missing attribute: %s", buf.String())
	}
}

func TestLogger_ZeroValue_Safety(t *testing.T) {
	var logger Logger

	logger.Trace("trace")
	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")
	logger.ErrorContext(context.Background(), "error")

	if logger.With(slog.String("k", "v")).Logger != nil {
		t.Error("With on zero value created a logger")
	}

	if logger.Level() != DefaultLevel {
		t.Errorf("Level() = %v, want %v", logger.Level(), DefaultLevel)
	}

	var buf bytes.Buffer

	logger.Wrap(WithOutput(&buf)).Error("wrapped")

	if !strings.Contains(buf.String(), "wrapped") {
		t.Error("Wrap on zero value did not produce a working logger")
	}
}

func TestLogger_ContextMethods_LogSuccessfully(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace))
	ctx := context.Background()

	methods := map[string]func(context.Context, string, ...slog.Attr){
		"TRACE": logger.TraceContext,
		"DEBUG": logger.DebugContext,
		"INFO":  logger.InfoContext,
		"WARN":  logger.WarnContext,
		"ERROR": logger.ErrorContext,
	}

	for level, fn := range methods {
		t.Run(level, func(t *testing.T) {
			buf.Reset()
			fn(ctx, "message")

			if !strings.Contains(buf.String(), "level="+level) {
				t.Errorf("output missing level %s: %s", level, buf.String())
			}
		})
	}
}

func TestLogger_ConcurrentCalls_ThreadSafe(t *testing.T) {
	var (
		buf syncBuffer
		wg  sync.WaitGroup
	)

	logger := Make(&buf, WithPretty(true))

	for i := range 32 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			logger.With(Line(i)).Warn("concurrent")
		}()
	}

	wg.Wait()

	if got := strings.Count(buf.String(), "concurrent"); got != 32 {
		t.Errorf("logged %d messages, want 32", got)
	}
}

// syncBuffer is a bytes.Buffer safe for concurrent writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func BenchmarkLogger_Info(b *testing.B) {
	logger := Make(nil, WithLevel(LevelInfo))

	for b.Loop() {
		logger.Info("benchmark message")
	}
}

func BenchmarkLogger_Trace_Disabled(b *testing.B) {
	logger := Make(nil)

	for b.Loop() {
		logger.Trace("benchmark message", slog.Int("token_count", 42))
	}
}

func BenchmarkLogger_Info_Pretty(b *testing.B) {
	logger := Make(nil, WithLevel(LevelInfo), WithPretty(true))

	for b.Loop() {
		logger.Info("benchmark message", Target("js"), Line(7))
	}
}
