package simulate

import (
	"context"

	"github.com/rpggio/sellerconsole/internal/domain/lead"
	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
	"github.com/rpggio/sellerconsole/internal/query"
)

// LeadRepository routes lead reads and writes through a Transport. All is
// passed straight through so stats are never delayed or failed.
type LeadRepository struct {
	next lead.Repository
	t    *Transport
}

// WrapLeads decorates next with t.
func WrapLeads(next lead.Repository, t *Transport) *LeadRepository {
	return &LeadRepository{next: next, t: t}
}

func (r *LeadRepository) Query(ctx context.Context, q query.Query) (query.Result[lead.Lead], error) {
	return Call(ctx, r.t, OpListLeads, func() (query.Result[lead.Lead], error) {
		return r.next.Query(ctx, q)
	})
}

func (r *LeadRepository) Get(ctx context.Context, id string) (*lead.Lead, error) {
	return Call(ctx, r.t, OpGetLead, func() (*lead.Lead, error) {
		return r.next.Get(ctx, id)
	})
}

func (r *LeadRepository) Update(ctx context.Context, id string, fn func(*lead.Lead) error) (*lead.Lead, error) {
	return Call(ctx, r.t, OpUpdateLead, func() (*lead.Lead, error) {
		return r.next.Update(ctx, id, fn)
	})
}

func (r *LeadRepository) All(ctx context.Context) ([]lead.Lead, error) {
	return r.next.All(ctx)
}

// OpportunityRepository routes opportunity reads and writes through a Transport.
type OpportunityRepository struct {
	next opportunity.Repository
	t    *Transport
}

// WrapOpportunities decorates next with t.
func WrapOpportunities(next opportunity.Repository, t *Transport) *OpportunityRepository {
	return &OpportunityRepository{next: next, t: t}
}

func (r *OpportunityRepository) Query(ctx context.Context, q query.Query) (query.Result[opportunity.Opportunity], error) {
	return Call(ctx, r.t, OpListOpportunities, func() (query.Result[opportunity.Opportunity], error) {
		return r.next.Query(ctx, q)
	})
}

func (r *OpportunityRepository) Get(ctx context.Context, id string) (*opportunity.Opportunity, error) {
	return Call(ctx, r.t, OpGetOpportunity, func() (*opportunity.Opportunity, error) {
		return r.next.Get(ctx, id)
	})
}

func (r *OpportunityRepository) Create(ctx context.Context, opp *opportunity.Opportunity) error {
	return r.t.Run(ctx, OpCreateOpportunity, func() error {
		return r.next.Create(ctx, opp)
	})
}

func (r *OpportunityRepository) Update(ctx context.Context, id string, fn func(*opportunity.Opportunity) error) (*opportunity.Opportunity, error) {
	return Call(ctx, r.t, OpUpdateOpportunity, func() (*opportunity.Opportunity, error) {
		return r.next.Update(ctx, id, fn)
	})
}

func (r *OpportunityRepository) Delete(ctx context.Context, id string) error {
	return r.t.Run(ctx, OpDeleteOpportunity, func() error {
		return r.next.Delete(ctx, id)
	})
}

func (r *OpportunityRepository) All(ctx context.Context) ([]opportunity.Opportunity, error) {
	return r.next.All(ctx)
}
