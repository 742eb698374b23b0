package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
	"github.com/spf13/cobra"
)

func newOpportunitiesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "opportunities",
		Aliases: []string{"opps", "opp"},
		Short:   "Manage opportunities",
	}
	cmd.AddCommand(
		newOppsListCmd(c),
		newOppsGetCmd(c),
		newOppsCreateCmd(c),
		newOppsUpdateCmd(c),
		newOppsDeleteCmd(c),
		newOppsStatsCmd(c),
	)
	return cmd
}

func newOppsListCmd(c *cli) *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List opportunities, newest first by default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := f.query()
			if err != nil {
				return err
			}
			res, err := c.client.ListOpportunities(cmd.Context(), q)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), res, func(w *tabwriter.Writer) {
				opportunityTable(res.Items)(w)
				pageFooter(w, res.Pagination)
			})
		},
	}
	f.register(cmd, "stage filter, e.g. Proposal or \"Closed Won\"")
	return cmd
}

func newOppsGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show an opportunity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := c.client.GetOpportunity(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), o, opportunityTable([]opportunity.Opportunity{*o}))
		},
	}
}

func newOppsCreateCmd(c *cli) *cobra.Command {
	var (
		req    opportunity.CreateRequest
		stage  string
		amount float64
	)
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create an opportunity",
		Example: `  sellerctl opps create --name "Renewal 2026" --account Globex --amount 4800`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Stage = opportunity.Stage(stage)
			if cmd.Flags().Changed("amount") {
				req.Amount = &amount
			}
			o, err := c.client.CreateOpportunity(cmd.Context(), req)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), o, opportunityTable([]opportunity.Opportunity{*o}))
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&req.Name, "name", "", "opportunity name")
	fl.StringVar(&req.AccountName, "account", "", "account name")
	fl.StringVar(&stage, "stage", "", "stage (default: Prospecting)")
	fl.Float64Var(&amount, "amount", 0, "expected value")
	fl.StringVar(&req.LeadID, "lead", "", "originating lead id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func newOppsUpdateCmd(c *cli) *cobra.Command {
	var (
		name, account, stage string
		amount               float64
		clearAmount          bool
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an opportunity; only the flags given are changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := opportunity.UpdateRequest{ID: args[0], ClearAmount: clearAmount}
			fl := cmd.Flags()
			if fl.Changed("name") {
				req.Name = &name
			}
			if fl.Changed("account") {
				req.AccountName = &account
			}
			if fl.Changed("stage") {
				s := opportunity.Stage(stage)
				req.Stage = &s
			}
			if fl.Changed("amount") {
				req.Amount = &amount
			}
			o, err := c.client.UpdateOpportunity(cmd.Context(), req)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), o, opportunityTable([]opportunity.Opportunity{*o}))
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&name, "name", "", "opportunity name")
	fl.StringVar(&account, "account", "", "account name")
	fl.StringVar(&stage, "stage", "", "stage")
	fl.Float64Var(&amount, "amount", 0, "expected value")
	fl.BoolVar(&clearAmount, "clear-amount", false, "remove the amount")
	cmd.MarkFlagsMutuallyExclusive("amount", "clear-amount")
	return cmd
}

func newOppsDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an opportunity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.client.DeleteOpportunity(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newOppsStatsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.client.OpportunityStats(cmd.Context())
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), s, opportunityStatsTable(s))
		},
	}
}
