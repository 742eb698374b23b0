package transport

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rpggio/sellerconsole/internal/query"
)

// parseListQuery reads the list filters from URL parameters. Missing values
// are left zero so the entity defaults apply.
func parseListQuery(values url.Values) (query.Query, error) {
	q := query.Query{
		Search: values.Get("search"),
		Status: strings.TrimSpace(values.Get("status")),
	}

	var err error
	if q.DateRange, err = query.ParseDateRange(values.Get("dateRange")); err != nil {
		return query.Query{}, err
	}
	if q.SortBy, err = query.ParseSortKey(values.Get("sortBy")); err != nil {
		return query.Query{}, err
	}
	if q.SortOrder, err = query.ParseSortOrder(values.Get("sortOrder")); err != nil {
		return query.Query{}, err
	}
	if q.Page, err = intParam(values, "page"); err != nil {
		return query.Query{}, err
	}
	if q.Limit, err = intParam(values, "limit"); err != nil {
		return query.Query{}, err
	}
	return q, nil
}

func intParam(values url.Values, name string) (int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest(name, name+" must be an integer")
	}
	return n, nil
}

func listQuery(r *http.Request) (query.Query, error) {
	return parseListQuery(r.URL.Query())
}
