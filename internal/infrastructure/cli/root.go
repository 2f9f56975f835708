package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/ghask/internal/app"
	"github.com/doeshing/ghask/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// ErrQueryFailed marks a one-shot query that produced an error envelope. The
// query itself already rendered the failure, so main only translates this
// into the exit status.
var ErrQueryFailed = errors.New("query failed")

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	renderer := NewRenderer(os.Stdout, container.Config.Preferences.OutputFormat)
	container.AttachUI(renderer, NewPrompter(nil, nil))

	root := &cobra.Command{
		Use:   "ghask [query]",
		Short: "ghask - ask GitHub in plain English",
		Long:  "ghask turns natural-language questions into GitHub API calls and renders the results as tables.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runInteractive(cmd.Context(), container)
			}
			return runOnce(cmd.Context(), container, strings.Join(args, " "))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewCacheCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}

func runOnce(ctx context.Context, container *app.Container, query string) error {
	envelope, err := container.QueryService.Run(ctx, query)
	if err != nil {
		return err
	}
	if envelope.Failed() {
		return ErrQueryFailed
	}
	return nil
}

func runInteractive(ctx context.Context, container *app.Container) error {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Query: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Println()
				return nil
			}
			return err
		}

		query := strings.TrimSpace(line)
		switch strings.ToLower(query) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		// Failures are rendered inline; the loop keeps going.
		if _, err := container.QueryService.Run(ctx, query); err != nil {
			return err
		}
	}
}
