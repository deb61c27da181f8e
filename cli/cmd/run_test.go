package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestExec_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   map[string]string
		show    bool
		want    string
		wantErr error
	}{
		{
			name:  "values",
			files: map[string]string{"a.tl": "(defvar x 2)\n\n(* x 3)\n"},
			want:  "2\n6\n",
		},
		{
			name:  "print writes to output",
			files: map[string]string{"a.tl": "(print \"hi\" 1)\n"},
			want:  "hi 1\n",
		},
		{
			name:  "show programs",
			files: map[string]string{"a.tl": "(+ 1 2)\n"},
			show:  true,
			want:  "; (1 + 2)\n3\n",
		},
		{
			name:  "session spans files",
			files: map[string]string{"a.tl": "(defun sq (n) (* n n))\n", "b.tl": "(sq 5)\n"},
			want:  "(lambda (n))\n25\n",
		},
		{
			name:  "exit stops reading",
			files: map[string]string{"a.tl": "(+ 1 1)\n(exit)\n(+ 2 2)\n", "b.tl": "(+ 3 3)\n"},
			want:  "2\n",
		},
		{
			name:    "failing line continues",
			files:   map[string]string{"a.tl": "(+ 1\n(unknown-fn 1)\n(+ 1 1)\n"},
			want:    "2\n",
			wantErr: ErrRun,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := writeFiles(t, tt.files)

			var out bytes.Buffer

			ctx := WithOutput(context.Background(), &out)

			// Files run in name order.
			var files []string
			for _, name := range []string{"a.tl", "b.tl"} {
				if _, ok := tt.files[name]; ok {
					files = append(files, filepath.Join(dir, name))
				}
			}

			err := (&Exec{Show: tt.show, Files: files}).Run(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}

			if out.String() != tt.want {
				t.Errorf("output =\n%q\nwant\n%q", out.String(), tt.want)
			}
		})
	}
}
