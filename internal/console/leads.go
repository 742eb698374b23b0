// Package console holds the headless state behind the seller console screens:
// filters, the current page and optimistic edits. It renders nothing.
package console

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/rpggio/sellerconsole/internal/domain/lead"
	"github.com/rpggio/sellerconsole/internal/optimistic"
	"github.com/rpggio/sellerconsole/internal/query"
)

// LeadService is the part of the lead service the view needs.
type LeadService interface {
	List(ctx context.Context, q query.Query) (query.Result[lead.Lead], error)
	Update(ctx context.Context, req lead.UpdateRequest) (*lead.Lead, error)
}

// Filters are the user-controlled list settings.
type Filters struct {
	Search    string
	Status    string
	DateRange query.DateRange
	SortBy    query.SortKey
	SortOrder query.SortOrder
}

// DefaultFilters shows every lead, best score first.
var DefaultFilters = Filters{
	Status:    query.StatusAll,
	DateRange: query.RangeAll,
	SortBy:    query.SortScore,
	SortOrder: query.Desc,
}

// Snapshot is a consistent copy of the view state.
type Snapshot struct {
	Filters    Filters
	Leads      []lead.Lead
	Pagination query.Pagination
	Loading    bool
	Err        error
}

// LeadsView is the state of the leads list. It is safe for concurrent use;
// when list requests overlap only the most recently issued one is applied.
type LeadsView struct {
	svc    LeadService
	logger *slog.Logger

	mu         sync.Mutex
	filters    Filters
	page       int
	limit      int
	leads      []lead.Lead
	pagination query.Pagination
	err        error
	inFlight   int
	generation uint64

	tx optimistic.Tx[[]lead.Lead]
}

// NewLeadsView creates a view on page 1 with default filters. Call Refresh to
// load it.
func NewLeadsView(svc LeadService, logger *slog.Logger) *LeadsView {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeadsView{
		svc:        svc,
		logger:     logger,
		filters:    DefaultFilters,
		page:       1,
		limit:      query.DefaultLimit,
		pagination: emptyPagination(),
	}
}

func emptyPagination() query.Pagination {
	return query.Pagination{CurrentPage: 1, TotalPages: 1, Limit: query.DefaultLimit}
}

// Snapshot returns a copy of the current state.
func (v *LeadsView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot{
		Filters:    v.filters,
		Leads:      slices.Clone(v.leads),
		Pagination: v.pagination,
		Loading:    v.inFlight > 0,
		Err:        v.err,
	}
}

// Refresh reloads the current page.
func (v *LeadsView) Refresh(ctx context.Context) error {
	return v.load(ctx, nil)
}

// SetSearch changes the search text and returns to page 1.
func (v *LeadsView) SetSearch(ctx context.Context, search string) error {
	return v.load(ctx, func(f *Filters) { f.Search = search })
}

// SetStatus changes the status filter and returns to page 1.
func (v *LeadsView) SetStatus(ctx context.Context, status string) error {
	return v.load(ctx, func(f *Filters) { f.Status = status })
}

// SetDateRange changes the date filter and returns to page 1.
func (v *LeadsView) SetDateRange(ctx context.Context, r query.DateRange) error {
	return v.load(ctx, func(f *Filters) { f.DateRange = r })
}

// SetSort changes the ordering and returns to page 1.
func (v *LeadsView) SetSort(ctx context.Context, by query.SortKey, order query.SortOrder) error {
	return v.load(ctx, func(f *Filters) {
		f.SortBy = by
		f.SortOrder = order
	})
}

// ResetFilters restores DefaultFilters and returns to page 1.
func (v *LeadsView) ResetFilters(ctx context.Context) error {
	return v.load(ctx, func(f *Filters) { *f = DefaultFilters })
}

// ChangePage loads page. Pages outside [1, totalPages] are ignored.
func (v *LeadsView) ChangePage(ctx context.Context, page int) error {
	v.mu.Lock()
	if page < 1 || page > v.pagination.TotalPages || page == v.page {
		v.mu.Unlock()
		return nil
	}
	v.page = page
	v.mu.Unlock()
	return v.load(ctx, nil)
}

// NextPage moves forward when there is a next page.
func (v *LeadsView) NextPage(ctx context.Context) error {
	v.mu.Lock()
	p := v.pagination
	v.mu.Unlock()
	if !p.HasNext {
		return nil
	}
	return v.ChangePage(ctx, p.CurrentPage+1)
}

// PrevPage moves back when there is a previous page.
func (v *LeadsView) PrevPage(ctx context.Context) error {
	v.mu.Lock()
	p := v.pagination
	v.mu.Unlock()
	if !p.HasPrev {
		return nil
	}
	return v.ChangePage(ctx, p.CurrentPage-1)
}

// load applies change to the filters (resetting to page 1 when non-nil) and
// fetches. Responses to superseded requests are dropped.
func (v *LeadsView) load(ctx context.Context, change func(*Filters)) error {
	v.mu.Lock()
	if change != nil {
		change(&v.filters)
		v.page = 1
	}
	v.generation++
	gen := v.generation
	v.inFlight++
	v.err = nil
	q := query.Query{
		Search:    v.filters.Search,
		Status:    v.filters.Status,
		DateRange: v.filters.DateRange,
		SortBy:    v.filters.SortBy,
		SortOrder: v.filters.SortOrder,
		Page:      v.page,
		Limit:     v.limit,
	}
	v.mu.Unlock()

	res, err := v.svc.List(ctx, q)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.inFlight--
	if gen != v.generation {
		v.logger.Debug("dropping stale leads response", "generation", gen, "latest", v.generation)
		return err
	}
	if err != nil {
		v.err = err
		v.leads = nil
		v.pagination = emptyPagination()
		return err
	}
	v.leads = res.Items
	v.pagination = res.Pagination
	v.page = res.Pagination.CurrentPage
	return nil
}

// UpdateLead shows the change immediately, then saves it. If saving fails
// the list is restored and the error kept in the snapshot.
func (v *LeadsView) UpdateLead(ctx context.Context, req lead.UpdateRequest) error {
	if err := lead.ValidateUpdateInput(req); err != nil {
		return err
	}

	v.mu.Lock()
	current := slices.Clone(v.leads)
	v.mu.Unlock()

	var saved *lead.Lead
	err := optimistic.Do(ctx, &v.tx, current,
		func(leads []lead.Lead) []lead.Lead {
			return replaceLead(leads, req.ID, func(l *lead.Lead) { applyUpdate(l, req) })
		},
		v.setLeads,
		func(ctx context.Context) error {
			var err error
			saved, err = v.svc.Update(ctx, req)
			return err
		})
	if err != nil {
		v.mu.Lock()
		v.err = err
		v.mu.Unlock()
		return err
	}

	v.mu.Lock()
	v.leads = replaceLead(v.leads, saved.ID, func(l *lead.Lead) { *l = *saved })
	v.mu.Unlock()
	return nil
}

// OptimisticState reports the phase of the last optimistic edit.
func (v *LeadsView) OptimisticState() optimistic.State {
	return v.tx.State()
}

func (v *LeadsView) setLeads(leads []lead.Lead) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.leads = leads
}

func replaceLead(leads []lead.Lead, id string, edit func(*lead.Lead)) []lead.Lead {
	out := slices.Clone(leads)
	for i := range out {
		if out[i].ID == id {
			edit(&out[i])
		}
	}
	return out
}

func applyUpdate(l *lead.Lead, req lead.UpdateRequest) {
	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Email != nil {
		l.Email = *req.Email
	}
	if req.Company != nil {
		l.Company = *req.Company
	}
	if req.Status != nil {
		l.Status = *req.Status
	}
	if req.Score != nil {
		l.Score = *req.Score
	}
}
