// Command tslisp compiles S-expressions to JavaScript and executes them.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ardnew/tslisp/cli"
	"github.com/ardnew/tslisp/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.Run(ctx, os.Exit, os.Args[1:]...)

	stop()

	if err != nil {
		log.Error("run failed", log.Err(err))
		os.Exit(1)
	}
}
