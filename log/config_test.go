package log

import (
	"slices"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{" trace ", LevelTrace},
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"info+4", LevelWarn},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{" JSON ", FormatJSON},
		{"text", FormatText},
		{"yaml", DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevels_RoundTrip(t *testing.T) {
	names := slices.Collect(Levels())

	want := []string{"trace", "debug", "info", "warn", "error"}
	if !slices.Equal(names, want) {
		t.Fatalf("Levels() = %v, want %v", names, want)
	}

	for _, name := range names {
		if got := ParseLevel(name).String(); got != name {
			t.Errorf("ParseLevel(%q).String() = %q", name, got)
		}
	}
}

func TestFormats_RoundTrip(t *testing.T) {
	for name := range Formats() {
		if got := ParseFormat(name).String(); got != name {
			t.Errorf("ParseFormat(%q).String() = %q", name, got)
		}
	}
}

func TestConfig_Options(t *testing.T) {
	cfg := makeConfig(nil,
		WithLevel(LevelDebug),
		WithFormat(FormatJSON),
		WithCaller(true),
		WithPretty(true),
	)

	if cfg.level != LevelDebug {
		t.Errorf("level = %v, want debug", cfg.level)
	}

	if cfg.format != FormatJSON {
		t.Errorf("format = %v, want json", cfg.format)
	}

	if !cfg.caller || !cfg.pretty {
		t.Errorf("caller = %v, pretty = %v, want both true", cfg.caller, cfg.pretty)
	}

	if cfg.output == nil {
		t.Error("nil writer was not replaced")
	}

	reset := apply(cfg, WithDefaults(nil))
	if reset.level != DefaultLevel || reset.caller != DefaultCaller {
		t.Errorf("WithDefaults did not reset: %+v", reset)
	}
}

func TestConfig_formatTime(t *testing.T) {
	stamp := time.Date(2024, time.March, 5, 14, 7, 9, 123456789, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"RFC3339", "2024-03-05T14:07:09Z"},
		{"rfc-3339-nano", "2024-03-05T14:07:09.123456789Z"},
		{"Kitchen", "2:07PM"},
		{"ms", "Mar  5 14:07:09.123"},
		{"DateTime", "2024-03-05 14:07:09"},
		{"2006/01/02", "2024/03/05"},
		{"", ""},
		{"   ", ""},
		{"none", ""},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			if got := makeFormatTimeFunc(tt.layout)(stamp); got != tt.want {
				t.Errorf("format(%q) = %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}

func TestConfig_EmptyTimeLayout_OmitsTime(t *testing.T) {
	var buf strings.Builder

	Make(&buf, WithTimeLayout("none")).Warn("untimed")

	if strings.Contains(buf.String(), "time=") {
		t.Errorf("output contains time: %s", buf.String())
	}
}

func BenchmarkConfig_formatTime(b *testing.B) {
	format := makeFormatTimeFunc(DefaultTimeLayout)
	now := time.Now()

	for b.Loop() {
		_ = format(now)
	}
}
