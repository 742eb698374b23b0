package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/rpggio/sellerconsole/internal/domain/lead"
	"github.com/rpggio/sellerconsole/internal/query"
	"github.com/rpggio/sellerconsole/internal/repository"
)

// LeadStore is an ordered, in-memory lead collection.
type LeadStore struct {
	mu    sync.RWMutex
	leads []lead.Lead
	seed  []lead.Lead
	opts  options
}

// NewLeadStore returns a store holding a copy of seed.
func NewLeadStore(seed []lead.Lead, opts ...Option) *LeadStore {
	return &LeadStore{
		leads: slices.Clone(seed),
		seed:  slices.Clone(seed),
		opts:  buildOptions(opts),
	}
}

// Query runs the query pipeline over a snapshot of the store.
func (s *LeadStore) Query(_ context.Context, q query.Query) (query.Result[lead.Lead], error) {
	s.mu.RLock()
	snapshot := slices.Clone(s.leads)
	s.mu.RUnlock()
	return query.Apply(snapshot, q, lead.QueryFields, s.opts.now()), nil
}

func (s *LeadStore) Get(_ context.Context, id string) (*lead.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	l := s.leads[i]
	return &l, nil
}

// Update replaces the lead in place. fn sees a copy; a failing fn leaves the
// store unchanged.
func (s *LeadStore) Update(_ context.Context, id string, fn func(*lead.Lead) error) (*lead.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	updated := s.leads[i]
	if err := fn(&updated); err != nil {
		return nil, err
	}
	updated.ID = id
	updated.CreatedAt = s.leads[i].CreatedAt
	updated.Touch(s.opts.now())
	s.leads[i] = updated
	return &updated, nil
}

func (s *LeadStore) All(_ context.Context) ([]lead.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.leads), nil
}

// Len returns the number of stored leads.
func (s *LeadStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.leads)
}

// Reset restores the seed leads.
func (s *LeadStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = slices.Clone(s.seed)
	return nil
}

func (s *LeadStore) index(id string) int {
	return slices.IndexFunc(s.leads, func(l lead.Lead) bool { return l.ID == id })
}
