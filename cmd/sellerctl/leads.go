package main

import (
	"text/tabwriter"

	"github.com/rpggio/sellerconsole/internal/domain/lead"
	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
	"github.com/rpggio/sellerconsole/internal/query"
	"github.com/spf13/cobra"
)

// listFlags are the filters shared by the list commands.
type listFlags struct {
	search    string
	status    string
	dateRange string
	sortBy    string
	sortOrder string
	page      int
	limit     int
}

func (f *listFlags) register(cmd *cobra.Command, statusHelp string) {
	fl := cmd.Flags()
	fl.StringVarP(&f.search, "search", "s", "", "substring to match, ignoring case")
	fl.StringVar(&f.status, "status", "", statusHelp)
	fl.StringVar(&f.dateRange, "range", "", "created within: 1d, 7d, 30d, 1y or All")
	fl.StringVar(&f.sortBy, "sort", "", "sort key")
	fl.StringVar(&f.sortOrder, "order", "", "asc or desc")
	fl.IntVarP(&f.page, "page", "p", 1, "page number")
	fl.IntVarP(&f.limit, "limit", "n", 0, "page size")
}

func (f *listFlags) query() (query.Query, error) {
	q := query.Query{Search: f.search, Status: f.status, Page: f.page, Limit: f.limit}
	var err error
	if q.DateRange, err = query.ParseDateRange(f.dateRange); err != nil {
		return query.Query{}, err
	}
	if q.SortBy, err = query.ParseSortKey(f.sortBy); err != nil {
		return query.Query{}, err
	}
	if q.SortOrder, err = query.ParseSortOrder(f.sortOrder); err != nil {
		return query.Query{}, err
	}
	return q, nil
}

func newLeadsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "leads",
		Aliases: []string{"lead"},
		Short:   "List, update and convert leads",
	}
	cmd.AddCommand(
		newLeadsListCmd(c),
		newLeadsGetCmd(c),
		newLeadsUpdateCmd(c),
		newLeadsConvertCmd(c),
		newLeadsStatsCmd(c),
	)
	return cmd
}

func newLeadsListCmd(c *cli) *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leads",
		Example: `  sellerctl leads list --status Qualified --sort score
  sellerctl leads list -s acme --range 30d -p 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := f.query()
			if err != nil {
				return err
			}
			res, err := c.client.ListLeads(cmd.Context(), q)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), res, func(w *tabwriter.Writer) {
				leadTable(res.Items)(w)
				pageFooter(w, res.Pagination)
			})
		},
	}
	f.register(cmd, "New, Contacted, Qualified, Lost, Converted or All")
	return cmd
}

func newLeadsGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.client.GetLead(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), l, leadTable([]lead.Lead{*l}))
		},
	}
}

func newLeadsUpdateCmd(c *cli) *cobra.Command {
	var (
		name, email, company, status string
		score                        int
	)
	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Update a lead; only the flags given are changed",
		Example: `  sellerctl leads update lead_007 --status Contacted --score 80`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := lead.UpdateRequest{ID: args[0]}
			fl := cmd.Flags()
			if fl.Changed("name") {
				req.Name = &name
			}
			if fl.Changed("email") {
				req.Email = &email
			}
			if fl.Changed("company") {
				req.Company = &company
			}
			if fl.Changed("status") {
				s := lead.Status(status)
				req.Status = &s
			}
			if fl.Changed("score") {
				req.Score = &score
			}
			l, err := c.client.UpdateLead(cmd.Context(), req)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), l, leadTable([]lead.Lead{*l}))
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&name, "name", "", "full name")
	fl.StringVar(&email, "email", "", "email address")
	fl.StringVar(&company, "company", "", "company")
	fl.StringVar(&status, "status", "", "New, Contacted, Qualified, Lost or Converted")
	fl.IntVar(&score, "score", 0, "score from 1 to 100")
	return cmd
}

func newLeadsConvertCmd(c *cli) *cobra.Command {
	var (
		name, account, stage string
		amount               float64
	)
	cmd := &cobra.Command{
		Use:     "convert <id>",
		Short:   "Convert a lead into an opportunity",
		Example: `  sellerctl leads convert lead_007 --amount 12000 --stage Qualification`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := lead.ConvertRequest{
				LeadID:      args[0],
				Name:        name,
				AccountName: account,
				Stage:       opportunity.Stage(stage),
			}
			if cmd.Flags().Changed("amount") {
				req.Amount = &amount
			}
			res, err := c.client.ConvertLead(cmd.Context(), req)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), res, opportunityTable([]opportunity.Opportunity{*res.Opportunity}))
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&name, "name", "", "opportunity name (default: lead name)")
	fl.StringVar(&account, "account", "", "account name (default: lead company)")
	fl.StringVar(&stage, "stage", "", "initial stage (default: Prospecting)")
	fl.Float64Var(&amount, "amount", 0, "expected value")
	return cmd
}

func newLeadsStatsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count leads per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.client.LeadStats(cmd.Context())
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), s, leadStatsTable(s))
		},
	}
}
