package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/tslisp/lang"
	"github.com/ardnew/tslisp/log"
)

const defaultEditor = "vi"

// editIndent is the indent width of the source opened in the editor.
const editIndent = 2

// editCommand implements [tea.ExecCommand]. It opens the session's
// definitions in the user's editor and replaces the session with the
// edited source. On a parse error the user is asked to edit again;
// declining returns [ErrEditDeclined].
type editCommand struct {
	ctx     context.Context
	session *session
	logger  log.Logger
	edited  bool // false if the user cleared the file
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse-retry loop.
func (c *editCommand) Run() error {
	content, err := formatSource(c.ctx, c.session.source())
	if err != nil {
		return err
	}

	f, err := os.CreateTemp("", "tslisp-repl-*.tl")
	if err != nil {
		return err
	}

	path := f.Name()
	defer os.Remove(path)

	if err := f.Close(); err != nil {
		return err
	}

	for {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return err
		}

		if err := runEditor(c.ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		content = string(data)
		if strings.TrimSpace(content) == "" {
			return nil
		}

		_, parseErr := lang.Parse(c.ctx, content)

		c.logger.TraceContext(c.ctx, "editor parse attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", parseErr == nil))

		if parseErr == nil {
			c.edited = true

			return c.session.replace(c.ctx, content)
		}

		fmt.Fprintf(c.stderr, "\nParse error: %s\n", parseErr)
		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}
	}
}

// formatSource returns src in canonical form with defun bodies indented.
func formatSource(ctx context.Context, src string) (string, error) {
	if src == "" {
		return "", nil
	}

	ast, err := lang.Parse(ctx, src)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := ast.Format(ctx, &sb, editIndent); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// editorCommand returns the command line of the user's editor: $VISUAL,
// then $EDITOR, then vi. The value may include arguments.
func editorCommand() []string {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(key)); len(fields) > 0 {
			return fields
		}
	}

	return []string{defaultEditor}
}

// runEditor runs the user's editor on path and waits for it to exit.
func runEditor(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, path string) error {
	argv := append(editorCommand(), path)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
