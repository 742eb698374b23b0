package console

import (
	"context"

	"github.com/rpggio/sellerconsole/internal/domain/activity"
	"github.com/rpggio/sellerconsole/internal/domain/lead"
	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
	"golang.org/x/sync/errgroup"
)

// StatsSources supplies the dashboard figures.
type StatsSources struct {
	Leads         func(context.Context) (lead.Stats, error)
	Opportunities func(context.Context) (opportunity.Stats, error)
	Activity      func(context.Context, activity.ListOptions) ([]activity.Entry, error)
}

// Dashboard is the summary shown above the lists.
type Dashboard struct {
	Leads          lead.Stats        `json:"leads"`
	Opportunities  opportunity.Stats `json:"opportunities"`
	RecentActivity []activity.Entry  `json:"recentActivity"`
}

// DashboardActivityLimit is how many activity entries the dashboard shows.
const DashboardActivityLimit = 10

// LoadDashboard fetches all dashboard figures concurrently. The first failure
// cancels the rest.
func LoadDashboard(ctx context.Context, src StatsSources) (Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d.Leads, err = src.Leads(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		d.Opportunities, err = src.Opportunities(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		d.RecentActivity, err = src.Activity(ctx, activity.ListOptions{Limit: DashboardActivityLimit})
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}
