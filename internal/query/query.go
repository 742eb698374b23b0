package query

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidQuery is returned when a query carries an unknown enum value.
var ErrInvalidQuery = errors.New("invalid query")

// StatusAll disables the status filter.
const StatusAll = "All"

// DefaultLimit is the page size used when neither the query nor the entity
// names one.
const DefaultLimit = 20

// SortKey names the field a result set is ordered by.
type SortKey string

const (
	SortScore     SortKey = "score"
	SortName      SortKey = "name"
	SortCreatedAt SortKey = "createdAt"
	SortUpdatedAt SortKey = "updatedAt"
	SortAmount    SortKey = "amount"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// DateRange restricts results to records created within a trailing window.
type DateRange string

const (
	RangeDay   DateRange = "1d"
	RangeWeek  DateRange = "7d"
	RangeMonth DateRange = "30d"
	RangeYear  DateRange = "1y"
	RangeAll   DateRange = "All"
)

var rangeWindows = map[DateRange]time.Duration{
	RangeDay:   24 * time.Hour,
	RangeWeek:  7 * 24 * time.Hour,
	RangeMonth: 30 * 24 * time.Hour,
	RangeYear:  365 * 24 * time.Hour,
}

// Cutoff returns the earliest creation instant admitted by the range.
// The second result is false for RangeAll.
func (r DateRange) Cutoff(now time.Time) (time.Time, bool) {
	window, ok := rangeWindows[r]
	if !ok {
		return time.Time{}, false
	}
	return now.Add(-window), true
}

// Query describes one list request: filters, ordering and the page wanted.
// Zero values take the entity defaults (see Defaults).
type Query struct {
	Search    string    `json:"search"`
	Status    string    `json:"status"`
	DateRange DateRange `json:"dateRange"`
	SortBy    SortKey   `json:"sortBy"`
	SortOrder SortOrder `json:"sortOrder"`
	Page      int       `json:"page"`
	Limit     int       `json:"limit"`
}

// Defaults are the per-entity values substituted for zero query fields.
type Defaults struct {
	SortBy    SortKey
	SortOrder SortOrder
	Limit     int
}

// Normalize fills zero fields from d and bounds page and limit.
func (q Query) Normalize(d Defaults) Query {
	if q.Status == "" {
		q.Status = StatusAll
	}
	if q.DateRange == "" {
		q.DateRange = RangeAll
	}
	if q.SortBy == "" {
		q.SortBy = d.SortBy
	}
	if q.SortOrder == "" {
		q.SortOrder = d.SortOrder
		if q.SortOrder == "" {
			q.SortOrder = Desc
		}
	}
	if q.Limit <= 0 {
		q.Limit = d.Limit
		if q.Limit <= 0 {
			q.Limit = DefaultLimit
		}
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

// ParseDateRange parses an external date range value. Empty means RangeAll.
func ParseDateRange(s string) (DateRange, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(RangeAll)) {
		return RangeAll, nil
	}
	r := DateRange(strings.ToLower(s))
	if _, ok := rangeWindows[r]; !ok {
		return "", fmt.Errorf("%w: unknown date range %q", ErrInvalidQuery, s)
	}
	return r, nil
}

// ParseSortOrder parses "asc" or "desc". Empty is returned unchanged.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	default:
		return "", fmt.Errorf("%w: unknown sort order %q", ErrInvalidQuery, s)
	}
}

// ParseSortKey parses an external sort key. Matching ignores case; empty is
// returned unchanged so the entity default applies.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, k := range []SortKey{SortScore, SortName, SortCreatedAt, SortUpdatedAt, SortAmount} {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown sort key %q", ErrInvalidQuery, s)
}
