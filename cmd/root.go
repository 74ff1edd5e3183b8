package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "gestloc",
		Short: "Property management dashboard companion",
		Long: `A CLI companion for a rental property management backend. It
aggregates properties, tenants, bills and expenses into a dashboard view
and derives a live notification feed from them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, opts)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Add dashboard flags to root so `gestloc` and `gestloc dashboard`
	// work identically
	addDashboardFlags(rootCmd, opts)

	// Register subcommands
	rootCmd.AddCommand(NewCmdDashboard(opts))
	rootCmd.AddCommand(NewCmdBills(opts))
	rootCmd.AddCommand(NewCmdNotifications(opts))
	rootCmd.AddCommand(NewCmdCache())
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
