package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newActivityCmd(c *cli) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := c.client.RecentActivity(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), entries, activityTable(entries))
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries")
	return cmd
}

func newDashboardCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show lead and opportunity stats with the latest activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := c.client.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), d, func(w *tabwriter.Writer) {
				leadStatsTable(d.Leads)(w)
				fmt.Fprintln(w)
				opportunityStatsTable(d.Opportunities)(w)
				fmt.Fprintln(w)
				activityTable(d.RecentActivity)(w)
			})
		},
	}
}

func newErrorRateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "error-rate [rate]",
		Short: "Show or set the simulated failure rate (0 to 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				rate float64
				err  error
			)
			if len(args) == 0 {
				rate, err = c.client.ErrorRate(cmd.Context())
			} else {
				var want float64
				if want, err = strconv.ParseFloat(args[0], 64); err != nil {
					return fmt.Errorf("rate must be a number: %w", err)
				}
				rate, err = c.client.SetErrorRate(cmd.Context(), want)
			}
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), map[string]float64{"errorRate": rate}, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "error rate: %.0f%%\n", rate*100)
			})
		},
	}
}

func newResetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the server data to the seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.client.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "data reset")
			return nil
		},
	}
}
