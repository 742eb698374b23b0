package memstore

import (
	"context"
	"sync"

	"github.com/rpggio/sellerconsole/internal/domain/activity"
)

// MaxActivity bounds the in-memory activity log; older entries are dropped.
const MaxActivity = 1000

// ActivityStore is a bounded in-memory activity log.
type ActivityStore struct {
	mu      sync.Mutex
	entries []activity.Entry
	nextID  int64
}

// NewActivityStore returns an empty log.
func NewActivityStore() *ActivityStore {
	return &ActivityStore{nextID: 1}
}

// Log appends entry and assigns its ID.
func (s *ActivityStore) Log(_ context.Context, entry *activity.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = s.nextID
	s.nextID++
	s.entries = append(s.entries, *entry)
	if over := len(s.entries) - MaxActivity; over > 0 {
		s.entries = append(s.entries[:0:0], s.entries[over:]...)
	}
	return nil
}

// List returns matching entries, newest first.
func (s *ActivityStore) List(_ context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	limit := opts.Limit
	if limit <= 0 {
		limit = activity.DefaultLimit
	}
	out := make([]activity.Entry, 0, min(limit, len(s.entries)))
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := s.entries[i]
		if opts.Type != nil && e.Type != *opts.Type {
			continue
		}
		if opts.EntityID != nil && (e.EntityID == nil || *e.EntityID != *opts.EntityID) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Reset clears the log.
func (s *ActivityStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}
