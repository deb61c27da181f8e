package cmd

import (
	"context"

	"github.com/ardnew/tslisp/cli/cmd/repl"
	"github.com/ardnew/tslisp/log"
)

// Repl starts an interactive session.
type Repl struct {
	NoHistory bool `help:"Do not read or write the history file." name:"no-history"`
}

// Run executes the repl command. Files given with --source are executed
// before the first prompt.
func (r *Repl) Run(ctx context.Context) error {
	cfg := repl.Config{
		Target:   targetFrom(ctx),
		CacheDir: varFrom(ctx, CacheIdentifier),
		Logger:   log.Default(),
	}

	if r.NoHistory {
		cfg.CacheDir = ""
	}

	if s := sourceFilesFrom(ctx); s != nil {
		defer s.Close()

		cfg.Source = s
	}

	return repl.Run(ctx, cfg)
}
