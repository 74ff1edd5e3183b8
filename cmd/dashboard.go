package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewCmdDashboard creates the dashboard command.
func NewCmdDashboard(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the aggregate dashboard (same as root gestloc)",
		Long: `Fetches properties, tenants, bills, stats and expenses
concurrently and assembles the dashboard summary. Any failing fetch fails
the whole summary.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, opts)
		},
	}

	addDashboardFlags(cmd, opts)
	return cmd
}

// addDashboardFlags adds the dashboard-specific flags to a command.
func addDashboardFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
}

func runDashboard(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()

	svc, err := setupServices(opts)
	if err != nil {
		return err
	}
	if err := svc.requireToken(); err != nil {
		return err
	}

	summary, err := svc.cache.DashboardSummary(ctx)
	if err != nil {
		return fmt.Errorf("failed to build dashboard summary: %w", err)
	}

	return svc.formatter(opts).Summary(summary, os.Stdout)
}
