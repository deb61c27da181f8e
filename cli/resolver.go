package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// loadYAML is a [kong.ConfigurationLoader] for YAML configuration files.
//
// The document is a mapping from flag name to value. Keys may use hyphens
// or underscores, and scalar values are given in YAML syntax:
//
//	log-level: debug
//	log_pretty: true
//	target: expr
//
// Flags given on the command line override configured values. A document
// that fails to decode yields an empty configuration.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return config{}, nil //nolint:nilerr
	}

	cfg := make(config, len(doc))

	for key, value := range doc {
		cfg[strings.ReplaceAll(key, "_", "-")] = flagValue(value)
	}

	return cfg, nil
}

// config implements [kong.Resolver] over a map keyed by flag name.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	// Not found: kong uses the flag default.
	return nil, nil
}

// flagValue converts a decoded YAML value to a form kong's mappers accept.
// Numbers are passed as strings.
func flagValue(v any) any {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case []any:
		out := make([]any, len(n))
		for i, e := range n {
			out[i] = flagValue(e)
		}

		return out
	default:
		return v
	}
}
