package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Fields tells the pipeline how to read an entity.
type Fields[T any] struct {
	// Text returns the values matched by the search string.
	Text func(T) []string
	// Status returns the value matched by the status filter.
	Status func(T) string
	// Created returns the instant matched by the date range filter.
	Created func(T) time.Time
	// Statuses lists the accepted status filter values, excluding StatusAll.
	Statuses []string
	// Sorters holds an ascending comparator per supported sort key.
	Sorters  map[SortKey]func(a, b T) int
	Defaults Defaults
}

// Validate reports whether q only uses values this entity understands.
func (f Fields[T]) Validate(q Query) error {
	q = q.Normalize(f.Defaults)
	if q.Status != StatusAll && !slices.Contains(f.Statuses, q.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidQuery, q.Status)
	}
	if _, ok := rangeWindows[q.DateRange]; !ok && q.DateRange != RangeAll {
		return fmt.Errorf("%w: unknown date range %q", ErrInvalidQuery, q.DateRange)
	}
	if _, ok := f.Sorters[q.SortBy]; !ok {
		return fmt.Errorf("%w: unsupported sort key %q", ErrInvalidQuery, q.SortBy)
	}
	if q.SortOrder != Asc && q.SortOrder != Desc {
		return fmt.Errorf("%w: unknown sort order %q", ErrInvalidQuery, q.SortOrder)
	}
	return nil
}

// Pagination describes the page returned together with the filters that
// produced it. CurrentPage is always the clamped page.
type Pagination struct {
	Search      string    `json:"search"`
	Status      string    `json:"status"`
	DateRange   DateRange `json:"dateRange"`
	SortBy      SortKey   `json:"sortBy"`
	SortOrder   SortOrder `json:"sortOrder"`
	CurrentPage int       `json:"currentPage"`
	TotalPages  int       `json:"totalPages"`
	Total       int       `json:"total"`
	Limit       int       `json:"limit"`
	HasNext     bool      `json:"hasNext"`
	HasPrev     bool      `json:"hasPrev"`
}

// Result is one page of records.
type Result[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// Apply runs search, status, date range, sort and pagination over records.
// The input slice is never modified.
func Apply[T any](records []T, q Query, f Fields[T], now time.Time) Result[T] {
	q = q.Normalize(f.Defaults)

	out := MatchSearch(records, q.Search, f.Text)
	out = MatchStatus(out, q.Status, f.Status)
	out = WithinRange(out, q.DateRange, f.Created, now)
	if compare, ok := f.Sorters[q.SortBy]; ok {
		out = SortStable(out, compare, q.SortOrder)
	}

	items, p := Paginate(out, q.Page, q.Limit)
	p.Search = q.Search
	p.Status = q.Status
	p.DateRange = q.DateRange
	p.SortBy = q.SortBy
	p.SortOrder = q.SortOrder

	return Result[T]{Items: items, Pagination: p}
}

// MatchSearch keeps records where any text field contains the trimmed search
// string, ignoring case. A blank search keeps everything.
func MatchSearch[T any](records []T, search string, text func(T) []string) []T {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" || text == nil {
		return slices.Clone(records)
	}

	out := make([]T, 0, len(records))
	for _, rec := range records {
		for _, field := range text(rec) {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// MatchStatus keeps records whose status equals status exactly.
func MatchStatus[T any](records []T, status string, statusOf func(T) string) []T {
	if status == "" || status == StatusAll || statusOf == nil {
		return slices.Clone(records)
	}

	out := make([]T, 0, len(records))
	for _, rec := range records {
		if statusOf(rec) == status {
			out = append(out, rec)
		}
	}
	return out
}

// WithinRange keeps records created at or after the range cutoff.
func WithinRange[T any](records []T, r DateRange, created func(T) time.Time, now time.Time) []T {
	cutoff, ok := r.Cutoff(now)
	if !ok || created == nil {
		return slices.Clone(records)
	}

	out := make([]T, 0, len(records))
	for _, rec := range records {
		if !created(rec).Before(cutoff) {
			out = append(out, rec)
		}
	}
	return out
}

// SortStable returns a sorted copy. Records comparing equal keep their
// relative order in both directions.
func SortStable[T any](records []T, compare func(a, b T) int, order SortOrder) []T {
	out := slices.Clone(records)
	if order == Desc {
		slices.SortStableFunc(out, func(a, b T) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(out, compare)
	}
	return out
}

// Paginate clamps page into [1, totalPages] and returns that page's slice.
func Paginate[T any](records []T, page, limit int) ([]T, Pagination) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	total := len(records)
	totalPages := max(1, (total+limit-1)/limit)
	page = min(max(page, 1), totalPages)

	start := (page - 1) * limit
	end := min(start+limit, total)
	items := slices.Clone(records[start:end])
	if items == nil {
		items = []T{}
	}

	return items, Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		Limit:       limit,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// CompareFold orders strings case-insensitively.
func CompareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// CompareTime orders instants.
func CompareTime(a, b time.Time) int {
	return a.Compare(b)
}

// CompareNumber orders numbers.
func CompareNumber[N cmp.Ordered](a, b N) int {
	return cmp.Compare(a, b)
}
