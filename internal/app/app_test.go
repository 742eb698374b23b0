package app_test

import (
	"context"
	"testing"

	"github.com/rpggio/sellerconsole/internal/app"
	"github.com/rpggio/sellerconsole/internal/config"
	"github.com/rpggio/sellerconsole/internal/domain/activity"
	"github.com/rpggio/sellerconsole/internal/domain/lead"
	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
	"github.com/rpggio/sellerconsole/internal/query"
	"github.com/stretchr/testify/require"
)

func testConfig(backend string) config.Config {
	cfg := config.Default()
	cfg.Store.Backend = backend
	cfg.Simulation.ErrorRate = 0
	cfg.Simulation.DelayScale = 0
	cfg.Seed.Count = 30
	return cfg
}

func TestNew_Backends(t *testing.T) {
	for _, backend := range []string{config.BackendMemory, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			a, err := app.New(ctx, testConfig(backend), nil)
			require.NoError(t, err)
			t.Cleanup(func() { a.Close() })

			res, err := a.Leads.List(ctx, query.Query{Limit: 10})
			require.NoError(t, err)
			require.Equal(t, 30, res.Pagination.Total)
			require.Equal(t, 3, res.Pagination.TotalPages)

			open, err := a.Leads.List(ctx, query.Query{Status: string(lead.StatusNew), Limit: 1})
			require.NoError(t, err)
			require.NotEmpty(t, open.Items)
			target := open.Items[0]
			conv, err := a.Leads.Convert(ctx, lead.ConvertRequest{LeadID: target.ID})
			require.NoError(t, err)
			require.Equal(t, target.Company, conv.Opportunity.AccountName)

			opps, err := a.Opportunities.List(ctx, query.Query{})
			require.NoError(t, err)
			require.Len(t, opps.Items, 1)

			d, err := a.Dashboard(ctx)
			require.NoError(t, err)
			require.Equal(t, 30, d.Leads.Total)
			require.Equal(t, 1, d.Opportunities.Count)
			require.NotEmpty(t, d.RecentActivity)
			require.Equal(t, activity.TypeLeadConverted, d.RecentActivity[0].Type)
			require.Equal(t, target.ID, *d.RecentActivity[0].EntityID)
			for _, e := range d.RecentActivity {
				require.False(t, e.CreatedAt.IsZero())
			}

			require.NoError(t, a.Admin.ResetData(ctx))
			stats, err := a.Opportunities.Stats(ctx)
			require.NoError(t, err)
			require.Equal(t, opportunity.Stats{Count: 0, ByStage: stats.ByStage}, stats)
		})
	}
}

func TestNew_ErrorRateApplies(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(config.BackendMemory)
	cfg.Simulation.ErrorRate = 1
	a, err := app.New(ctx, cfg, nil)
	require.NoError(t, err)

	_, err = a.Leads.List(ctx, query.Query{})
	require.Error(t, err)

	_, err = a.Admin.SetErrorRate(ctx, 0)
	require.NoError(t, err)
	_, err = a.Leads.List(ctx, query.Query{})
	require.NoError(t, err)
}
