package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

type resolverCLI struct {
	Level  string   `default:"warn" name:"log-level"`
	Pretty bool     `name:"log-pretty"`
	Count  int      `default:"1"    name:"count"`
	Ratio  float64  `name:"ratio"`
	Files  []string `name:"files"`
}

func parseWithYAML(t *testing.T, doc string, args ...string) resolverCLI {
	t.Helper()

	r, err := loadYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("loadYAML error: %v", err)
	}

	var cli resolverCLI

	parser, err := kong.New(&cli, kong.Resolvers(r))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error: %v", args, err)
	}

	return cli
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		args []string
		want resolverCLI
	}{
		{
			name: "empty document",
			doc:  "",
			want: resolverCLI{Level: "warn", Count: 1},
		},
		{
			name: "scalars",
			doc:  "log-level: debug\nlog-pretty: true\ncount: 3\nratio: 0.5\n",
			want: resolverCLI{Level: "debug", Pretty: true, Count: 3, Ratio: 0.5},
		},
		{
			name: "underscore keys",
			doc:  "log_level: info\nlog_pretty: true\n",
			want: resolverCLI{Level: "info", Pretty: true, Count: 1},
		},
		{
			name: "list",
			doc:  "files:\n  - a.tl\n  - b.tl\n",
			want: resolverCLI{Level: "warn", Count: 1, Files: []string{"a.tl", "b.tl"}},
		},
		{
			name: "command line overrides",
			doc:  "log-level: debug\ncount: 3\n",
			args: []string{"--log-level=error"},
			want: resolverCLI{Level: "error", Count: 3},
		},
		{
			name: "invalid document ignored",
			doc:  "{ not: [valid",
			want: resolverCLI{Level: "warn", Count: 1},
		},
		{
			name: "unknown keys ignored",
			doc:  "target: expr\n",
			want: resolverCLI{Level: "warn", Count: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseWithYAML(t, tt.doc, tt.args...)

			if got.Level != tt.want.Level || got.Pretty != tt.want.Pretty ||
				got.Count != tt.want.Count || got.Ratio != tt.want.Ratio ||
				strings.Join(got.Files, ",") != strings.Join(tt.want.Files, ",") {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFlagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want any
	}{
		{7, "7"},
		{int64(-2), "-2"},
		{uint64(9), "9"},
		{1.25, "1.25"},
		{"s", "s"},
		{true, true},
	}

	for _, tt := range tests {
		if got := flagValue(tt.in); got != tt.want {
			t.Errorf("flagValue(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	list, ok := flagValue([]any{1, "x"}).([]any)
	if !ok || list[0] != "1" || list[1] != "x" {
		t.Errorf("flagValue(list) = %v", list)
	}
}
