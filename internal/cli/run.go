package cli

import (
	"context"
	"fmt"
	"io"
)

// Exit codes returned by Run.
const (
	ExitOK     = 0
	ExitFailed = 1 // a version check failed
	ExitUsage  = 2 // bad flags, arguments or configuration
)

// Handler is the program entrypoint for CLI execution.
//
// It is set by the main package (wired in init) so tests can call Run without
// forking processes while keeping the actual implementation out of this package.
var Handler func(ctx context.Context, args []string, stdout, stderr io.Writer) int

func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if Handler == nil {
		fmt.Fprintln(stderr, "internal error: cli handler not configured")
		return ExitFailed
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return Handler(ctx, args, stdout, stderr)
}
