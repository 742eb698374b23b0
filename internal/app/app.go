// Package app assembles stores, the simulated transport and services from
// configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/sellerconsole/internal/config"
	"github.com/rpggio/sellerconsole/internal/console"
	"github.com/rpggio/sellerconsole/internal/domain/activity"
	"github.com/rpggio/sellerconsole/internal/domain/admin"
	"github.com/rpggio/sellerconsole/internal/domain/lead"
	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
	"github.com/rpggio/sellerconsole/internal/memstore"
	"github.com/rpggio/sellerconsole/internal/seed"
	"github.com/rpggio/sellerconsole/internal/simulate"
	"github.com/rpggio/sellerconsole/internal/sqlite"
)

// App owns every long-lived component of the server.
type App struct {
	Policy        *simulate.RatePolicy
	Transport     *simulate.Transport
	Leads         *lead.Service
	Opportunities *opportunity.Service
	Activity      *activity.Service
	Admin         *admin.Service

	logger *slog.Logger
	close  func() error
}

type leadStore interface {
	lead.Repository
	admin.Resetter
}

type opportunityStore interface {
	opportunity.Repository
	admin.Resetter
}

type activityStore interface {
	activity.Repository
	admin.Resetter
}

// New builds the application and loads the seed data.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	seedLeads := seed.Leads(seed.Options{Count: cfg.Seed.Count, Seed: cfg.Seed.Seed})

	var (
		leads leadStore
		opps  opportunityStore
		acts  activityStore
		close = func() error { return nil }
	)
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.Store.DSN)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		leads = sqlite.NewLeadRepository(db, seedLeads)
		opps = sqlite.NewOpportunityRepository(db)
		acts = sqlite.NewActivityRepository(db)
		close = db.Close
	case config.BackendMemory, "":
		leads = memstore.NewLeadStore(seedLeads)
		opps = memstore.NewOpportunityStore()
		acts = memstore.NewActivityStore()
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	delays := simulate.DefaultDelays()
	for op, d := range cfg.Simulation.Delays {
		delays[op] = d
	}
	delays = delays.Scale(cfg.Simulation.DelayScale)

	policy := simulate.NewRatePolicy(cfg.Simulation.ErrorRate, nil)
	transport := simulate.New(policy, delays, logger.With("component", "simulate"))

	actSvc := activity.NewService(acts, logger)
	oppSvc := opportunity.NewService(simulate.WrapOpportunities(opps, transport), actSvc, logger)
	a := &App{
		Policy:        policy,
		Transport:     transport,
		Opportunities: oppSvc,
		// Compensation deletes go straight to the store so an injected fault
		// cannot leave the opportunity of a failed conversion behind.
		Leads:    lead.NewService(simulate.WrapLeads(leads, transport), oppSvc, opps, actSvc, logger),
		Activity: actSvc,
		Admin:    admin.NewService(policy, actSvc, logger, leads, opps, acts),
		logger:   logger,
		close:    close,
	}

	// Activity is cleared with the stores, so the reset entry is the first one.
	if err := a.Admin.ResetData(ctx); err != nil {
		return nil, errors.Join(err, close())
	}

	logger.Info("application ready",
		"backend", cfg.Store.Backend,
		"leads", len(seedLeads),
		"error_rate", policy.Rate(),
		"delay_scale", cfg.Simulation.DelayScale)
	return a, nil
}

// Dashboard loads the summary figures concurrently.
func (a *App) Dashboard(ctx context.Context) (console.Dashboard, error) {
	return console.LoadDashboard(ctx, console.StatsSources{
		Leads:         a.Leads.Stats,
		Opportunities: a.Opportunities.Stats,
		Activity:      a.Activity.GetRecentActivity,
	})
}

// Close releases the store.
func (a *App) Close() error {
	return a.close()
}
