package query_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/rpggio/sellerconsole/internal/query"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID      string
	Name    string
	Email   string
	Company string
	Status  string
	Score   int
	Created time.Time
}

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

var itemFields = query.Fields[item]{
	Text:     func(i item) []string { return []string{i.Name, i.Email, i.Company} },
	Status:   func(i item) string { return i.Status },
	Created:  func(i item) time.Time { return i.Created },
	Statuses: []string{"New", "Contacted", "Qualified", "Lost", "Converted"},
	Sorters: map[query.SortKey]func(a, b item) int{
		query.SortScore:     func(a, b item) int { return query.CompareNumber(a.Score, b.Score) },
		query.SortName:      func(a, b item) int { return query.CompareFold(a.Name, b.Name) },
		query.SortCreatedAt: func(a, b item) int { return query.CompareTime(a.Created, b.Created) },
	},
	Defaults: query.Defaults{SortBy: query.SortScore, SortOrder: query.Desc, Limit: 20},
}

func makeItems(n int) []item {
	items := make([]item, n)
	for i := range items {
		items[i] = item{
			ID:      fmt.Sprintf("i%03d", i+1),
			Name:    fmt.Sprintf("Name %03d", i+1),
			Email:   fmt.Sprintf("n%03d@example.com", i+1),
			Company: "Globex",
			Status:  "New",
			Score:   i + 1,
			Created: now.Add(-time.Duration(i) * time.Hour),
		}
	}
	return items
}

func ids(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestApply_PaginationExample(t *testing.T) {
	items := makeItems(45)

	first := query.Apply(items, query.Query{Limit: 20, Page: 1}, itemFields, now)
	require.Len(t, first.Items, 20)
	require.Equal(t, 3, first.Pagination.TotalPages)
	require.Equal(t, 45, first.Pagination.Total)
	require.False(t, first.Pagination.HasPrev)
	require.True(t, first.Pagination.HasNext)

	last := query.Apply(items, query.Query{Limit: 20, Page: 3}, itemFields, now)
	require.Len(t, last.Items, 5)
	require.False(t, last.Pagination.HasNext)
	require.True(t, last.Pagination.HasPrev)
}

func TestApply_LargeLimit(t *testing.T) {
	res := query.Apply(makeItems(250), query.Query{Limit: 150}, itemFields, now)
	require.Len(t, res.Items, 150)
	require.Equal(t, 2, res.Pagination.TotalPages)
	require.Equal(t, 150, res.Pagination.Limit)
	require.True(t, res.Pagination.HasNext)

	second := query.Apply(makeItems(250), query.Query{Limit: 150, Page: 2}, itemFields, now)
	require.Len(t, second.Items, 100)
	require.False(t, second.Pagination.HasNext)
}

func TestApply_ClampsPage(t *testing.T) {
	items := makeItems(45)

	high := query.Apply(items, query.Query{Limit: 20, Page: 99}, itemFields, now)
	third := query.Apply(items, query.Query{Limit: 20, Page: 3}, itemFields, now)
	require.Equal(t, 3, high.Pagination.CurrentPage)
	require.Equal(t, ids(third.Items), ids(high.Items))

	low := query.Apply(items, query.Query{Limit: 20, Page: -4}, itemFields, now)
	require.Equal(t, 1, low.Pagination.CurrentPage)
	require.False(t, low.Pagination.HasPrev)
}

func TestApply_EmptyInput(t *testing.T) {
	res := query.Apply(nil, query.Query{}, itemFields, now)
	require.NotNil(t, res.Items)
	require.Empty(t, res.Items)
	require.Equal(t, 1, res.Pagination.TotalPages)
	require.Equal(t, 1, res.Pagination.CurrentPage)
	require.False(t, res.Pagination.HasNext)
	require.False(t, res.Pagination.HasPrev)
}

func TestApply_DefaultsEchoed(t *testing.T) {
	res := query.Apply(makeItems(3), query.Query{}, itemFields, now)
	p := res.Pagination
	require.Equal(t, query.StatusAll, p.Status)
	require.Equal(t, query.RangeAll, p.DateRange)
	require.Equal(t, query.SortScore, p.SortBy)
	require.Equal(t, query.Desc, p.SortOrder)
	require.Equal(t, 20, p.Limit)
	require.Equal(t, []string{"i003", "i002", "i001"}, ids(res.Items))
}

func TestMatchSearch(t *testing.T) {
	items := []item{
		{ID: "a", Name: "Ana Silva", Email: "ana@techflow.com", Company: "Acme Corp"},
		{ID: "b", Name: "Carlos Mendoza", Email: "carlos@acmecorp.com", Company: "Globex"},
		{ID: "c", Name: "Maria Santos", Email: "maria@initech.com", Company: "Initech"},
	}

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "company case insensitive", search: "acme", want: []string{"a", "b"}},
		{name: "name substring", search: "SANTOS", want: []string{"c"}},
		{name: "trimmed", search: "  initech  ", want: []string{"c"}},
		{name: "blank is no-op", search: "   ", want: []string{"a", "b", "c"}},
		{name: "no match", search: "umbrella", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.MatchSearch(items, tt.search, itemFields.Text)
			require.Equal(t, tt.want, ids(got))
		})
	}
}

func TestMatchStatus_Converted(t *testing.T) {
	items := makeItems(50)
	for _, i := range []int{4, 17, 33} {
		items[i].Status = "Converted"
	}

	res := query.Apply(items, query.Query{Status: "Converted"}, itemFields, now)
	require.Len(t, res.Items, 3)
	require.Equal(t, 3, res.Pagination.Total)
	for _, it := range res.Items {
		require.Equal(t, "Converted", it.Status)
	}
}

func TestWithinRange_Boundary(t *testing.T) {
	cutoff := now.Add(-24 * time.Hour)
	items := []item{
		{ID: "exact", Created: cutoff},
		{ID: "before", Created: cutoff.Add(-time.Nanosecond)},
		{ID: "after", Created: cutoff.Add(time.Nanosecond)},
	}

	got := query.WithinRange(items, query.RangeDay, itemFields.Created, now)
	require.Equal(t, []string{"exact", "after"}, ids(got))
}

func TestWithinRange_IgnoresZone(t *testing.T) {
	zone := time.FixedZone("UTC-5", -5*60*60)
	items := []item{
		{ID: "local", Created: now.Add(-23 * time.Hour).In(zone)},
		{ID: "old", Created: now.Add(-25 * time.Hour).In(zone)},
	}

	got := query.WithinRange(items, query.RangeDay, itemFields.Created, now)
	require.Equal(t, []string{"local"}, ids(got))
}

func TestWithinRange_Windows(t *testing.T) {
	items := []item{
		{ID: "h12", Created: now.Add(-12 * time.Hour)},
		{ID: "d5", Created: now.Add(-5 * 24 * time.Hour)},
		{ID: "d20", Created: now.Add(-20 * 24 * time.Hour)},
		{ID: "d200", Created: now.Add(-200 * 24 * time.Hour)},
		{ID: "d400", Created: now.Add(-400 * 24 * time.Hour)},
	}

	require.Equal(t, []string{"h12"}, ids(query.WithinRange(items, query.RangeDay, itemFields.Created, now)))
	require.Equal(t, []string{"h12", "d5"}, ids(query.WithinRange(items, query.RangeWeek, itemFields.Created, now)))
	require.Equal(t, []string{"h12", "d5", "d20"}, ids(query.WithinRange(items, query.RangeMonth, itemFields.Created, now)))
	require.Equal(t, []string{"h12", "d5", "d20", "d200"}, ids(query.WithinRange(items, query.RangeYear, itemFields.Created, now)))
	require.Len(t, query.WithinRange(items, query.RangeAll, itemFields.Created, now), 5)
}

func TestSortStable_KeepsTies(t *testing.T) {
	items := []item{
		{ID: "a", Score: 50},
		{ID: "b", Score: 10},
		{ID: "c", Score: 50},
		{ID: "d", Score: 10},
		{ID: "e", Score: 50},
	}
	byScore := itemFields.Sorters[query.SortScore]

	require.Equal(t, []string{"b", "d", "a", "c", "e"}, ids(query.SortStable(items, byScore, query.Asc)))
	require.Equal(t, []string{"a", "c", "e", "b", "d"}, ids(query.SortStable(items, byScore, query.Desc)))
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(items), "input must not be reordered")
}

func TestSortStable_NameIgnoresCase(t *testing.T) {
	items := []item{
		{ID: "1", Name: "bravo"},
		{ID: "2", Name: "Alpha"},
		{ID: "3", Name: "charlie"},
		{ID: "4", Name: "alpha"},
	}

	got := query.SortStable(items, itemFields.Sorters[query.SortName], query.Asc)
	require.Equal(t, []string{"2", "4", "1", "3"}, ids(got))
}

func TestFields_Validate(t *testing.T) {
	require.NoError(t, itemFields.Validate(query.Query{}))
	require.NoError(t, itemFields.Validate(query.Query{Status: "Lost", SortBy: query.SortName, SortOrder: query.Asc}))
	require.ErrorIs(t, itemFields.Validate(query.Query{Status: "Archived"}), query.ErrInvalidQuery)
	require.ErrorIs(t, itemFields.Validate(query.Query{SortBy: query.SortAmount}), query.ErrInvalidQuery)
	require.ErrorIs(t, itemFields.Validate(query.Query{DateRange: "2w"}), query.ErrInvalidQuery)
	require.ErrorIs(t, itemFields.Validate(query.Query{SortOrder: "up"}), query.ErrInvalidQuery)
}

func TestNormalize_LimitBounds(t *testing.T) {
	d := query.Defaults{SortBy: query.SortScore, Limit: 20}
	require.Equal(t, 20, query.Query{Limit: 0}.Normalize(d).Limit)
	require.Equal(t, 20, query.Query{Limit: -3}.Normalize(d).Limit)
	require.Equal(t, 5000, query.Query{Limit: 5000}.Normalize(d).Limit)
	require.Equal(t, 7, query.Query{Limit: 7}.Normalize(d).Limit)
}

func TestParseDateRange(t *testing.T) {
	r, err := query.ParseDateRange("")
	require.NoError(t, err)
	require.Equal(t, query.RangeAll, r)

	r, err = query.ParseDateRange("all")
	require.NoError(t, err)
	require.Equal(t, query.RangeAll, r)

	r, err = query.ParseDateRange("30D")
	require.NoError(t, err)
	require.Equal(t, query.RangeMonth, r)

	_, err = query.ParseDateRange("90d")
	require.ErrorIs(t, err, query.ErrInvalidQuery)
}

func TestParseSortOrder(t *testing.T) {
	o, err := query.ParseSortOrder("ASC")
	require.NoError(t, err)
	require.Equal(t, query.Asc, o)

	o, err = query.ParseSortOrder("")
	require.NoError(t, err)
	require.Equal(t, query.SortOrder(""), o)

	_, err = query.ParseSortOrder("sideways")
	require.ErrorIs(t, err, query.ErrInvalidQuery)
}

func TestParseSortKey(t *testing.T) {
	k, err := query.ParseSortKey("CreatedAt")
	require.NoError(t, err)
	require.Equal(t, query.SortCreatedAt, k)

	k, err = query.ParseSortKey(" ")
	require.NoError(t, err)
	require.Equal(t, query.SortKey(""), k)

	_, err = query.ParseSortKey("email")
	require.ErrorIs(t, err, query.ErrInvalidQuery)
}
