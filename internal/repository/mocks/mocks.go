package mocks

import (
	"context"

	"github.com/rpggio/sellerconsole/internal/domain/activity"
	"github.com/rpggio/sellerconsole/internal/domain/lead"
	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
	"github.com/rpggio/sellerconsole/internal/query"
	"github.com/stretchr/testify/mock"
)

// LeadRepository is a mock for lead.Repository.
type LeadRepository struct {
	mock.Mock
}

func (m *LeadRepository) Query(ctx context.Context, q query.Query) (query.Result[lead.Lead], error) {
	args := m.Called(ctx, q)
	if res, ok := args.Get(0).(query.Result[lead.Lead]); ok {
		return res, args.Error(1)
	}
	return query.Result[lead.Lead]{}, args.Error(1)
}

func (m *LeadRepository) Get(ctx context.Context, id string) (*lead.Lead, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*lead.Lead); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update passes a copy of the lead returned for the call to fn, so tests can
// observe the mutation a service applies.
func (m *LeadRepository) Update(ctx context.Context, id string, fn func(*lead.Lead) error) (*lead.Lead, error) {
	args := m.Called(ctx, id, fn)
	l, ok := args.Get(0).(*lead.Lead)
	if !ok || args.Error(1) != nil {
		return nil, args.Error(1)
	}
	updated := *l
	if err := fn(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (m *LeadRepository) All(ctx context.Context) ([]lead.Lead, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]lead.Lead); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// OpportunityRepository is a mock for opportunity.Repository.
type OpportunityRepository struct {
	mock.Mock
}

func (m *OpportunityRepository) Query(ctx context.Context, q query.Query) (query.Result[opportunity.Opportunity], error) {
	args := m.Called(ctx, q)
	if res, ok := args.Get(0).(query.Result[opportunity.Opportunity]); ok {
		return res, args.Error(1)
	}
	return query.Result[opportunity.Opportunity]{}, args.Error(1)
}

func (m *OpportunityRepository) Get(ctx context.Context, id string) (*opportunity.Opportunity, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*opportunity.Opportunity); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OpportunityRepository) Create(ctx context.Context, opp *opportunity.Opportunity) error {
	args := m.Called(ctx, opp)
	return args.Error(0)
}

// Update behaves like LeadRepository.Update.
func (m *OpportunityRepository) Update(ctx context.Context, id string, fn func(*opportunity.Opportunity) error) (*opportunity.Opportunity, error) {
	args := m.Called(ctx, id, fn)
	o, ok := args.Get(0).(*opportunity.Opportunity)
	if !ok || args.Error(1) != nil {
		return nil, args.Error(1)
	}
	updated := *o
	if err := fn(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (m *OpportunityRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *OpportunityRepository) All(ctx context.Context) ([]opportunity.Opportunity, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]opportunity.Opportunity); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// OpportunityCreator is a mock for lead.OpportunityCreator.
type OpportunityCreator struct {
	mock.Mock
}

func (m *OpportunityCreator) Create(ctx context.Context, req opportunity.CreateRequest) (*opportunity.Opportunity, error) {
	args := m.Called(ctx, req)
	if o, ok := args.Get(0).(*opportunity.Opportunity); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

// OpportunityRemover is a mock for lead.OpportunityRemover.
type OpportunityRemover struct {
	mock.Mock
}

func (m *OpportunityRemover) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ActivityLogger is a mock for the ActivityLogger interfaces of the domain services.
type ActivityLogger struct {
	mock.Mock
}

func (m *ActivityLogger) LogActivity(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
