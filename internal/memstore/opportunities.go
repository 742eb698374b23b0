package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
	"github.com/rpggio/sellerconsole/internal/query"
	"github.com/rpggio/sellerconsole/internal/repository"
)

// OpportunityStore is an ordered, in-memory opportunity collection. It starts
// empty and Reset empties it again.
type OpportunityStore struct {
	mu   sync.RWMutex
	opps []opportunity.Opportunity
	opts options
}

// NewOpportunityStore returns an empty store.
func NewOpportunityStore(opts ...Option) *OpportunityStore {
	return &OpportunityStore{opts: buildOptions(opts)}
}

func (s *OpportunityStore) Query(_ context.Context, q query.Query) (query.Result[opportunity.Opportunity], error) {
	s.mu.RLock()
	snapshot := slices.Clone(s.opps)
	s.mu.RUnlock()
	return query.Apply(snapshot, q, opportunity.QueryFields, s.opts.now()), nil
}

func (s *OpportunityStore) Get(_ context.Context, id string) (*opportunity.Opportunity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	o := s.opps[i]
	return &o, nil
}

// Create appends opp. IDs must be unique.
func (s *OpportunityStore) Create(_ context.Context, opp *opportunity.Opportunity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index(opp.ID) >= 0 {
		return repository.ErrDuplicateID
	}
	s.opps = append(s.opps, *opp)
	return nil
}

func (s *OpportunityStore) Update(_ context.Context, id string, fn func(*opportunity.Opportunity) error) (*opportunity.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	updated := s.opps[i]
	if err := fn(&updated); err != nil {
		return nil, err
	}
	updated.ID = id
	updated.CreatedAt = s.opps[i].CreatedAt
	updated.Touch(s.opts.now())
	s.opps[i] = updated
	return &updated, nil
}

func (s *OpportunityStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	s.opps = slices.Delete(s.opps, i, i+1)
	return nil
}

func (s *OpportunityStore) All(_ context.Context) ([]opportunity.Opportunity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.opps), nil
}

// Len returns the number of stored opportunities.
func (s *OpportunityStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.opps)
}

// Reset removes every opportunity.
func (s *OpportunityStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opps = nil
	return nil
}

func (s *OpportunityStore) index(id string) int {
	return slices.IndexFunc(s.opps, func(o opportunity.Opportunity) bool { return o.ID == id })
}
