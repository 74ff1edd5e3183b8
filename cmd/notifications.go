package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gestloc/gestloc/internal/model"
	"github.com/gestloc/gestloc/internal/tui"
)

// NewCmdNotifications creates the notifications command with subcommands.
func NewCmdNotifications(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show or watch the notification feed",
		Long: `Derives the notification feed from bills, tenants and
properties. Without a subcommand, runs one derivation cycle and prints it.

Subcommands:
  watch      Live feed with periodic polling
  mark-read  Mark one or all notifications as read
  stats      Show feed statistics`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNotificationsList(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json)")
	cmd.Flags().BoolVar(&opts.UnreadOnly, "unread", false, "Only show unread notifications")
	cmd.Flags().StringVar(&opts.Type, "type", "", "Filter by type (overdue, new_tenant, payment, maintenance, system, custom)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")

	cmd.AddCommand(NewCmdNotificationsWatch(opts))
	cmd.AddCommand(NewCmdNotificationsMarkRead(opts))
	cmd.AddCommand(NewCmdNotificationsStats(opts))

	return cmd
}

func runNotificationsList(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()

	svc, err := setupServices(opts)
	if err != nil {
		return err
	}

	list := svc.engine.FetchNotifications(ctx)

	if opts.UnreadOnly {
		filtered := list[:0]
		for _, n := range list {
			if !n.Read {
				filtered = append(filtered, n)
			}
		}
		list = filtered
	}
	if opts.Type != "" {
		want := model.NotificationType(opts.Type)
		filtered := list[:0]
		for _, n := range list {
			if n.Type == want {
				filtered = append(filtered, n)
			}
		}
		list = filtered
	}

	return svc.formatter(opts).Notifications(list, os.Stdout)
}

// NewCmdNotificationsWatch creates the watch subcommand.
func NewCmdNotificationsWatch(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the notification feed live",
		Long: `Starts the notification poll loop and shows the feed in an
interactive screen that updates on every cycle.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNotificationsWatch(cmd, opts)
		},
	}

	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	return cmd
}

func runNotificationsWatch(cmd *cobra.Command, opts *Options) error {
	svc, err := setupServices(opts)
	if err != nil {
		return err
	}
	if err := svc.requireToken(); err != nil {
		return err
	}
	if !tui.ShouldUseTUI() {
		return fmt.Errorf("watch requires an interactive terminal")
	}

	// Keep the cached lists warm while the feed is on screen.
	svc.cache.StartAutoRefresh(svc.cfg.GetRefreshInterval())
	defer svc.cache.StopAutoRefresh()

	return tui.Run(cmd.Context(), svc.engine, svc.cfg.GetPollInterval())
}

// NewCmdNotificationsMarkRead creates the mark-read subcommand.
func NewCmdNotificationsMarkRead(opts *Options) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "mark-read [id]",
		Short: "Mark a notification as read",
		Long: `Marks a notification as read by id, or all of them with
--all. Read state is persisted and survives across runs because derived
notification ids are stable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNotificationsMarkRead(cmd, args, opts, all)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Mark all notifications as read")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	return cmd
}

func runNotificationsMarkRead(cmd *cobra.Command, args []string, opts *Options, all bool) error {
	if !all && len(args) == 0 {
		return fmt.Errorf("either provide a notification id or use --all")
	}

	svc, err := setupServices(opts)
	if err != nil {
		return err
	}

	svc.engine.FetchNotifications(cmd.Context())

	if all {
		svc.engine.MarkAllAsRead()
		fmt.Println("All notifications marked as read.")
		return nil
	}

	id := args[0]
	found := false
	for _, n := range svc.engine.Notifications() {
		if n.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("no notification with id %q in the current feed", id)
	}

	svc.engine.MarkAsRead(id)
	fmt.Printf("Notification %s marked as read.\n", id)
	return nil
}

// NewCmdNotificationsStats creates the stats subcommand.
func NewCmdNotificationsStats(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show notification feed statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNotificationsStats(cmd, opts)
		},
	}

	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	return cmd
}

func runNotificationsStats(cmd *cobra.Command, opts *Options) error {
	svc, err := setupServices(opts)
	if err != nil {
		return err
	}

	svc.engine.FetchNotifications(cmd.Context())
	stats := svc.engine.GetStats()

	fmt.Printf("Total:  %d\n", stats.Total)
	fmt.Printf("Unread: %d\n", stats.Unread)

	if len(stats.ByPriority) > 0 {
		fmt.Println("\nBy priority:")
		for _, p := range []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow} {
			if count := stats.ByPriority[p]; count > 0 {
				fmt.Printf("  %-6s %d\n", p, count)
			}
		}
	}

	if len(stats.ByType) > 0 {
		fmt.Println("\nBy type:")
		for t, count := range stats.ByType {
			fmt.Printf("  %-12s %d\n", t, count)
		}
	}

	return nil
}
