package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gestloc/gestloc/internal/apiclient"
	"github.com/gestloc/gestloc/internal/model"
)

// NewCmdBills creates the bills command.
func NewCmdBills(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bills",
		Short: "List rent bills",
		Long: `Lists rent bills with formatted amounts, due dates and a
derived urgency. Filters are part of the cache key, so each filter
combination is cached independently.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBills(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json)")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by status (PENDING, PAID, CANCELLED)")
	cmd.Flags().StringVar(&opts.Month, "month", "", "Filter by month (YYYY-MM)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Maximum number of bills to show")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")

	return cmd
}

func runBills(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()

	svc, err := setupServices(opts)
	if err != nil {
		return err
	}
	if err := svc.requireToken(); err != nil {
		return err
	}

	status := strings.ToUpper(opts.Status)
	switch status {
	case "", "PENDING", "PAID", "CANCELLED":
	default:
		return fmt.Errorf("invalid status: %s (must be PENDING, PAID or CANCELLED)", opts.Status)
	}

	bills, err := svc.cache.Bills(ctx, apiclient.BillFilters{
		Status: model.BillStatus(status),
		Month:  opts.Month,
	})
	if err != nil {
		return fmt.Errorf("failed to fetch bills: %w", err)
	}

	if opts.Limit > 0 && len(bills) > opts.Limit {
		bills = bills[:opts.Limit]
	}

	return svc.formatter(opts).Bills(bills, os.Stdout)
}
