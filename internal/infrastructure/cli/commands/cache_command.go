package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/ghask/internal/app"
)

// NewCacheCommand creates the cache command with all subcommands
func NewCacheCommand(container *app.Container) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the classification cache",
	}

	cacheCmd.AddCommand(
		newCacheStatsCommand(container),
		newCacheClearCommand(container),
	)

	return cacheCmd
}

// newCacheStatsCommand creates the 'cache stats' subcommand
func newCacheStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cached classifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCacheStats(cmd.OutOrStdout(), container)
		},
	}
}

// newCacheClearCommand creates the 'cache clear' subcommand
func newCacheClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop all cached classifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.CacheStore == nil {
				return fmt.Errorf("cache disabled")
			}
			return container.CacheStore.Clear()
		},
	}
}

// showCacheStats prints each cached entry with its age
func showCacheStats(out io.Writer, container *app.Container) error {
	if container.CacheStore == nil {
		return fmt.Errorf("cache disabled")
	}

	entries, err := container.CacheStore.Entries()
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "Cache is empty.")
		return nil
	}

	fmt.Fprintf(out, "%d cached classification(s)\n", len(entries))
	for _, entry := range entries {
		fmt.Fprintf(out, "%s | %s | %s\n",
			entry.CreatedAt.Format(TimestampFormat),
			entry.Intent,
			entry.Query)
	}

	return nil
}
