// Command verbump fails a build when a library's declared version has not
// been incremented, either since the last recorded run or relative to the
// version a package registry reports as published.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/3leaps/verbump/internal/cli"
)

var version = "dev"

func init() {
	cli.Handler = run
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
