package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/ghask/internal/infrastructure/cli"
)

// Exit statuses: 0 success, 1 startup or command failure, 2 a one-shot query
// that resolved to an error envelope.
const (
	exitOK           = 0
	exitStartupError = 1
	exitQueryError   = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	opts := cli.Options{Verbose: isVerbose()}

	root, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return exitStartupError
	}

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrQueryFailed) {
			return exitQueryError
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		return exitStartupError
	}
	return exitOK
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("GHASK_DEBUG"), "1") || strings.EqualFold(os.Getenv("GHASK_DEBUG"), "true")
}
