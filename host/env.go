package host

// This file defines the builtin environment available to every executed
// line. The static part is initialized once per process via envCache and
// cloned on every access so callers may mutate the returned map.
//
// Builtin names can be shadowed by slots.

import (
	"bufio"
	"maps"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/mung"
)

// Private singleton cache.
//
//nolint:gochecknoglobals
var (
	envCacheOnce sync.Once
	envCache     map[string]any
)

// makeEnvCache returns a clone of the lazily-initialized, process-scoped
// environment of builtin variables and functions.
func makeEnvCache() map[string]any {
	envCacheOnce.Do(func() {
		envCache = map[string]any{
			// System information.
			"platform": getPlatform(),
			"hostname": getHostname(),
			"user":     getUsername(),
			"shell":    getShell(),

			"cwd": getCwd,

			// Bitwise forms without an expr-lang operator.
			"xor":    bitwise(func(a, b int) int { return a ^ b }),
			"lshift": bitwise(func(a, b int) int { return a << max(b, 0) }),
			"rshift": bitwise(func(a, b int) int { return a >> max(b, 0) }),

			"file": map[string]any{
				"exists":    fileExists,
				"isDir":     fileIsDir,
				"isRegular": fileIsRegular,
				"isSymlink": fileIsSymlink,
			},

			"path": map[string]any{
				"abs": pathAbs,
				"cat": pathCat,
				"rel": pathRel,
			},

			// PATH-like string manipulation via mung.
			"mung": map[string]any{
				"prefix":   mungPrefix,
				"prefixif": mungPrefixIf,
			},
		}
	})

	return maps.Clone(envCache)
}

// Builtins returns the sorted names of the builtin environment, including
// the names provided by every [Host] (such as define and print).
func Builtins() []string {
	keys := slices.Collect(maps.Keys(makeEnvCache()))
	keys = append(keys, reserved...)
	keys = append(keys, "env", "print", "console")

	slices.Sort(keys)

	return keys
}

// Builtin returns the builtin value at the dot-separated path, such as
// "path.cat" or "platform.os".
func Builtin(path string) (any, bool) {
	env := makeEnvCache()
	env["console"] = map[string]any{"log": func(...any) any { return nil }}

	var current any = env

	for seg := range strings.SplitSeq(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		if current, ok = m[seg]; !ok {
			return nil, false
		}
	}

	return current, true
}

// BuiltinLookup returns the sorted member names of the builtin namespace
// at the dot-separated path, or nil if path does not name a namespace.
func BuiltinLookup(path string) []string {
	v, _ := Builtin(path)

	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	keys := slices.Collect(maps.Keys(m))
	slices.Sort(keys)

	return keys
}

// ---------------------------------------------------------------------------
// System information helpers
// ---------------------------------------------------------------------------

// getPlatform returns the host OS and architecture using Go conventions,
// honoring GOHOSTOS/GOOS and GOHOSTARCH/GOARCH overrides.
func getPlatform() map[string]any {
	lookup := func(keys ...string) (string, bool) {
		for _, k := range keys {
			if v, ok := os.LookupEnv(k); ok {
				return v, true
			}
		}

		return "", false
	}

	o, ok := lookup("GOHOSTOS", "GOOS")
	if !ok {
		o = runtime.GOOS
	}

	a, ok := lookup("GOHOSTARCH", "GOARCH")
	if !ok {
		a = runtime.GOARCH
	}

	return map[string]any{"os": o, "arch": a}
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return ""
	}

	return hostname
}

func getUsername() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}

	return u.Username
}

func getShell() string {
	if shell, ok := os.LookupEnv("SHELL"); ok {
		return shell
	}

	name := getUsername()
	if name == "" {
		return ""
	}

	f, err := os.Open("/etc/passwd")
	if err != nil {
		return ""
	}

	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		e := strings.Split(s.Text(), ":")
		if len(e) > 6 && e[0] == name {
			return e[6]
		}
	}

	return ""
}

func getCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return pathAbs(".")
	}

	return cwd
}

// ---------------------------------------------------------------------------
// Filesystem functions
// ---------------------------------------------------------------------------

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return !os.IsNotExist(err)
}

func fileIsDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func fileIsRegular(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}

func fileIsSymlink(path string) bool {
	info, err := os.Lstat(path)

	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// ---------------------------------------------------------------------------
// Path manipulation functions
// ---------------------------------------------------------------------------

func pathAbs(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return p
}

func pathCat(elem ...string) string {
	return filepath.Join(elem...)
}

func pathRel(from, to string) string {
	p, err := filepath.Rel(pathAbs(from), pathAbs(to))
	if err != nil {
		return pathCat(from, to)
	}

	return p
}

// ---------------------------------------------------------------------------
// PATH-like string manipulation (mung)
// ---------------------------------------------------------------------------

func mungPrefix(list string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

func mungPrefixIf(
	list string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}

// ---------------------------------------------------------------------------
// Process environment
// ---------------------------------------------------------------------------

// buildProcessEnvMap converts a "KEY=VALUE" string slice to a map.
// If envList is nil, os.Environ() is used.
func buildProcessEnvMap(envList []string) map[string]string {
	if envList == nil {
		envList = os.Environ()
	}

	result := make(map[string]string, len(envList))

	for _, entry := range envList {
		if key, value, ok := strings.Cut(entry, "="); ok {
			result[key] = value
		}
	}

	return result
}

// envFunc returns the builtin env() function over processEnv.
func envFunc(processEnv map[string]string) func(string) string {
	return func(key string) string {
		return processEnv[key]
	}
}
