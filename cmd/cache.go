package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gestloc/gestloc/internal/constants"
	"github.com/gestloc/gestloc/internal/readstate"
)

// NewCmdCache creates the cache command with subcommands.
func NewCmdCache() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached state",
		Long: `Manages the on-disk read-notification state. The resource lists
themselves are cached in memory per run and expire on their own.`,
	}

	cmd.AddCommand(newCmdCacheClear())
	cmd.AddCommand(newCmdCacheStats())

	return cmd
}

// newCmdCacheClear creates the cache clear subcommand.
func newCmdCacheClear() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget all read-notification marks",
		RunE:  runCacheClear,
	}
}

// newCmdCacheStats creates the cache stats subcommand.
func newCmdCacheStats() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cached state statistics",
		RunE:  runCacheStats,
	}
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	store, err := readstate.NewStore()
	if err != nil {
		return fmt.Errorf("failed to access read state: %w", err)
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear read state: %w", err)
	}

	fmt.Println("Read state cleared. All notifications will show as unread.")
	return nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	store, err := readstate.NewStore()
	if err != nil {
		return fmt.Errorf("failed to access read state: %w", err)
	}

	fmt.Printf("Read state:\n")
	fmt.Printf("  File:  %s\n", store.Path())
	fmt.Printf("  Marks: %d\n", store.Count())
	fmt.Println()
	fmt.Printf("In-memory cache (per run):\n")
	fmt.Printf("  List TTL:     %s\n", constants.ListCacheTTL)
	fmt.Printf("  Auto refresh: %s\n", constants.AutoRefreshInterval)
	fmt.Printf("  Poll period:  %s\n", constants.PollInterval)
	return nil
}
