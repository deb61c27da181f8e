package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tslisp/lang"
)

type (
	kongContextKey struct{}
	sourceFilesKey struct{}
	targetKey      struct{}
	outputKey      struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, kongContextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(kongContextKey{}).(*kong.Context)

	return ktx
}

// varFrom returns the kong variable named key, or "" if there is none.
func varFrom(ctx context.Context, key string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[key]
}

// WithTarget returns a new context.Context selecting the code generation
// target of every command.
func WithTarget(ctx context.Context, t *lang.Target) context.Context {
	return context.WithValue(ctx, targetKey{}, t)
}

// targetFrom returns the target stored by [WithTarget], or [lang.JavaScript].
func targetFrom(ctx context.Context) *lang.Target {
	if t, ok := ctx.Value(targetKey{}).(*lang.Target); ok && t != nil {
		return t
	}

	return lang.JavaScript()
}

// WithOutput returns a new context.Context directing command output to w.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

// outputFrom returns the writer stored by [WithOutput], or os.Stdout.
func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// SourceFiles reads the concatenated content of the files given with the
// global --source flag.
type SourceFiles interface {
	io.Reader
	io.Closer
	// Names returns the resolved paths of the files, with "-" for stdin.
	Names() []string
}

type sourceFiles struct {
	io.Reader

	names []string
	files []*os.File
}

func (s *sourceFiles) Names() []string { return s.names }

// Close closes every opened file. Stdin is not closed.
func (s *sourceFiles) Close() error {
	var first error

	for _, f := range s.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// fileKey identifies a file by device and inode, which detects the same
// file reached through symlinks or different relative paths.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the source name that reads standard input.
const stdinSource = "-"

// WithSourceFiles returns a new context.Context containing a [SourceFiles]
// over sources.
//
// Duplicate files are read once. Every occurrence of "-" is replaced by a
// single stdin reader placed after all regular files. Files that cannot be
// opened are skipped; if none remain, no SourceFiles is stored.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	if s := buildSourceFiles(sources); s != nil {
		return context.WithValue(ctx, sourceFilesKey{}, s)
	}

	return ctx
}

func buildSourceFiles(sources []string) *sourceFiles {
	var (
		srcs     sourceFiles
		hasStdin bool
		readers  []io.Reader
	)

	seen := make(map[fileKey]struct{})

	stdinKey, stdinOK := statKey(os.Stdin.Stat())

	for _, src := range sources {
		if src == stdinSource {
			hasStdin = true

			continue
		}

		path, key, ok := resolveFile(src)
		if !ok {
			continue
		}

		if stdinOK && key == stdinKey {
			hasStdin = true

			continue
		}

		if _, dup := seen[key]; dup {
			continue
		}

		f, err := os.Open(path)
		if err != nil {
			continue
		}

		seen[key] = struct{}{}
		srcs.files = append(srcs.files, f)
		srcs.names = append(srcs.names, path)
		readers = append(readers, f)
	}

	if hasStdin {
		srcs.names = append(srcs.names, stdinSource)
		readers = append(readers, os.Stdin)
	}

	if len(readers) == 0 {
		return nil
	}

	srcs.Reader = io.MultiReader(readers...)

	return &srcs
}

// resolveFile returns the absolute path of src with symlinks resolved, and
// its identity.
func resolveFile(src string) (string, fileKey, bool) {
	abs, err := filepath.Abs(src)
	if err != nil {
		return "", fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fileKey{}, false
	}

	key, ok := statKey(os.Stat(resolved))

	return resolved, key, ok
}

func statKey(info os.FileInfo, err error) (fileKey, bool) {
	if err != nil {
		return fileKey{}, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

// sourceFilesFrom returns the SourceFiles stored by [WithSourceFiles], or nil.
func sourceFilesFrom(ctx context.Context) SourceFiles {
	s, _ := ctx.Value(sourceFilesKey{}).(SourceFiles)

	return s
}

// input is one named stream of program text.
type input struct {
	io.Reader

	name string
}

// openInputs returns the inputs of a command given its file arguments.
//
// Without arguments the input is the global --source files, or stdin if
// there are none. The returned function closes every opened file.
func openInputs(ctx context.Context, files []string) ([]input, func(), error) {
	if len(files) == 0 {
		if s := sourceFilesFrom(ctx); s != nil {
			return []input{{Reader: s, name: "source"}}, func() {}, nil
		}

		return []input{{Reader: os.Stdin, name: stdinSource}}, func() {}, nil
	}

	var opened []*os.File

	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	inputs := make([]input, 0, len(files))

	for _, name := range files {
		if name == stdinSource {
			inputs = append(inputs, input{Reader: os.Stdin, name: name})

			continue
		}

		f, err := os.Open(name)
		if err != nil {
			closeAll()

			return nil, nil, ErrReadSource.Wrap(err).With(slog.String("file", name))
		}

		opened = append(opened, f)
		inputs = append(inputs, input{Reader: f, name: name})
	}

	return inputs, closeAll, nil
}
