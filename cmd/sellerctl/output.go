package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rpggio/sellerconsole/internal/domain/activity"
	"github.com/rpggio/sellerconsole/internal/domain/lead"
	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
	"github.com/rpggio/sellerconsole/internal/query"
)

// render writes v as indented JSON, or as a table through table when the
// table format is selected.
func (c *cli) render(w io.Writer, v any, table func(*tabwriter.Writer)) error {
	if c.settings.Output == outputJSON || table == nil {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

func row(w io.Writer, cols ...string) {
	fmt.Fprintln(w, strings.Join(cols, "\t"))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func formatAmount(a *float64) string {
	if a == nil {
		return "-"
	}
	return strconv.FormatFloat(*a, 'f', 2, 64)
}

func pageFooter(w io.Writer, p query.Pagination) {
	fmt.Fprintf(w, "\npage %d/%d, %d total\n", p.CurrentPage, p.TotalPages, p.Total)
}

func leadTable(leads []lead.Lead) func(*tabwriter.Writer) {
	return func(w *tabwriter.Writer) {
		row(w, "ID", "NAME", "COMPANY", "EMAIL", "STATUS", "SCORE", "SOURCE", "CREATED")
		for _, l := range leads {
			row(w, l.ID, l.Name, l.Company, l.Email, string(l.Status), strconv.Itoa(l.Score), string(l.Source), formatTime(l.CreatedAt))
		}
	}
}

func opportunityTable(opps []opportunity.Opportunity) func(*tabwriter.Writer) {
	return func(w *tabwriter.Writer) {
		row(w, "ID", "NAME", "ACCOUNT", "STAGE", "AMOUNT", "LEAD", "CREATED")
		for _, o := range opps {
			leadID := o.LeadID
			if leadID == "" {
				leadID = "-"
			}
			row(w, o.ID, o.Name, o.AccountName, string(o.Stage), formatAmount(o.Amount), leadID, formatTime(o.CreatedAt))
		}
	}
}

func activityTable(entries []activity.Entry) func(*tabwriter.Writer) {
	return func(w *tabwriter.Writer) {
		row(w, "WHEN", "TYPE", "ENTITY", "SUMMARY")
		for _, e := range entries {
			entity := "-"
			if e.EntityID != nil {
				entity = *e.EntityID
			}
			row(w, formatTime(e.CreatedAt), string(e.Type), entity, e.Summary)
		}
	}
}

func leadStatsTable(s lead.Stats) func(*tabwriter.Writer) {
	return func(w *tabwriter.Writer) {
		row(w, "STATUS", "COUNT")
		for _, st := range lead.Statuses {
			row(w, string(st), strconv.Itoa(s.ByStatus[st]))
		}
		row(w, "Total", strconv.Itoa(s.Total))
	}
}

func opportunityStatsTable(s opportunity.Stats) func(*tabwriter.Writer) {
	return func(w *tabwriter.Writer) {
		row(w, "STAGE", "COUNT")
		for _, st := range opportunity.Stages {
			row(w, string(st), strconv.Itoa(s.ByStage[st]))
		}
		row(w, "Total", strconv.Itoa(s.Count))
		row(w, "Value", strconv.FormatFloat(s.TotalValue, 'f', 2, 64))
	}
}
