// Package client is a typed client for the seller console HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rpggio/sellerconsole/internal/console"
	"github.com/rpggio/sellerconsole/internal/domain/activity"
	"github.com/rpggio/sellerconsole/internal/domain/lead"
	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
	"github.com/rpggio/sellerconsole/internal/query"
)

// Error is a failure reported by the API.
type Error struct {
	Status    int    `json:"-"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
	Field     string `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsRetryable reports whether err is an API error the server marked retryable.
func IsRetryable(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Retryable
}

// CodeOf returns the API error code of err, or "".
func CodeOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

// Options configures a Client.
type Options struct {
	HTTPClient *http.Client
	// Retries is how many times a retryable failure is repeated.
	Retries int
	// Backoff is the pause before the first retry. It doubles per attempt.
	Backoff time.Duration
}

// Client calls the API.
type Client struct {
	baseURL string
	http    *http.Client
	retries int
	backoff time.Duration
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		retries: max(opts.Retries, 0),
		backoff: backoff,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *Error          `json:"error"`
}

// do sends one request and decodes the envelope data into out. Retryable
// failures are repeated up to the configured count.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}

	wait := c.backoff
	for attempt := 0; ; attempt++ {
		err := c.once(ctx, method, path, payload, out)
		if err == nil || attempt >= c.retries || !IsRetryable(err) {
			return err
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Join(err, ctx.Err())
		case <-timer.C:
		}
		wait *= 2
	}
}

func (c *Client) once(ctx context.Context, method, path string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: decoding response (status %d): %w", method, path, resp.StatusCode, err)
	}
	if !env.Success {
		if env.Error == nil {
			return &Error{Status: resp.StatusCode, Code: "INTERNAL_ERROR", Message: resp.Status}
		}
		env.Error.Status = resp.StatusCode
		return env.Error
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s %s: decoding data: %w", method, path, err)
	}
	return nil
}

func listValues(q query.Query) url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("search", q.Search)
	set("status", q.Status)
	set("dateRange", string(q.DateRange))
	set("sortBy", string(q.SortBy))
	set("sortOrder", string(q.SortOrder))
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func withQuery(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

// ListLeads returns one page of leads.
func (c *Client) ListLeads(ctx context.Context, q query.Query) (query.Result[lead.Lead], error) {
	var res query.Result[lead.Lead]
	err := c.do(ctx, http.MethodGet, withQuery("/api/leads", listValues(q)), nil, &res)
	return res, err
}

// GetLead fetches one lead.
func (c *Client) GetLead(ctx context.Context, id string) (*lead.Lead, error) {
	var l lead.Lead
	if err := c.do(ctx, http.MethodGet, "/api/leads/"+url.PathEscape(id), nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateLead applies the non-nil fields of req.
func (c *Client) UpdateLead(ctx context.Context, req lead.UpdateRequest) (*lead.Lead, error) {
	var l lead.Lead
	if err := c.do(ctx, http.MethodPatch, "/api/leads/"+url.PathEscape(req.ID), req, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// ConvertLead converts a lead to an opportunity.
func (c *Client) ConvertLead(ctx context.Context, req lead.ConvertRequest) (*lead.ConvertResult, error) {
	var res lead.ConvertResult
	if err := c.do(ctx, http.MethodPost, "/api/leads/"+url.PathEscape(req.LeadID)+"/convert", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// LeadStats counts leads per status.
func (c *Client) LeadStats(ctx context.Context) (lead.Stats, error) {
	var s lead.Stats
	err := c.do(ctx, http.MethodGet, "/api/leads/stats", nil, &s)
	return s, err
}

// ListOpportunities returns one page of opportunities.
func (c *Client) ListOpportunities(ctx context.Context, q query.Query) (query.Result[opportunity.Opportunity], error) {
	var res query.Result[opportunity.Opportunity]
	err := c.do(ctx, http.MethodGet, withQuery("/api/opportunities", listValues(q)), nil, &res)
	return res, err
}

// GetOpportunity fetches one opportunity.
func (c *Client) GetOpportunity(ctx context.Context, id string) (*opportunity.Opportunity, error) {
	var o opportunity.Opportunity
	if err := c.do(ctx, http.MethodGet, "/api/opportunities/"+url.PathEscape(id), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOpportunity creates an opportunity.
func (c *Client) CreateOpportunity(ctx context.Context, req opportunity.CreateRequest) (*opportunity.Opportunity, error) {
	var o opportunity.Opportunity
	if err := c.do(ctx, http.MethodPost, "/api/opportunities", req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateOpportunity applies the non-nil fields of req.
func (c *Client) UpdateOpportunity(ctx context.Context, req opportunity.UpdateRequest) (*opportunity.Opportunity, error) {
	var o opportunity.Opportunity
	if err := c.do(ctx, http.MethodPatch, "/api/opportunities/"+url.PathEscape(req.ID), req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// DeleteOpportunity deletes an opportunity.
func (c *Client) DeleteOpportunity(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/opportunities/"+url.PathEscape(id), nil, nil)
}

// OpportunityStats summarizes the pipeline.
func (c *Client) OpportunityStats(ctx context.Context) (opportunity.Stats, error) {
	var s opportunity.Stats
	err := c.do(ctx, http.MethodGet, "/api/opportunities/stats", nil, &s)
	return s, err
}

// RecentActivity lists the newest activity entries.
func (c *Client) RecentActivity(ctx context.Context, limit int) ([]activity.Entry, error) {
	v := url.Values{}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var entries []activity.Entry
	err := c.do(ctx, http.MethodGet, withQuery("/api/activity", v), nil, &entries)
	return entries, err
}

// Dashboard loads the dashboard summary.
func (c *Client) Dashboard(ctx context.Context) (console.Dashboard, error) {
	var d console.Dashboard
	err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, &d)
	return d, err
}

type errorRate struct {
	ErrorRate *float64 `json:"errorRate"`
}

// ErrorRate reads the simulated failure rate.
func (c *Client) ErrorRate(ctx context.Context) (float64, error) {
	var r errorRate
	if err := c.do(ctx, http.MethodGet, "/api/settings/error-rate", nil, &r); err != nil {
		return 0, err
	}
	if r.ErrorRate == nil {
		return 0, errors.New("error rate missing from response")
	}
	return *r.ErrorRate, nil
}

// SetErrorRate stores a new failure rate and returns the clamped value.
func (c *Client) SetErrorRate(ctx context.Context, rate float64) (float64, error) {
	var r errorRate
	if err := c.do(ctx, http.MethodPut, "/api/settings/error-rate", errorRate{ErrorRate: &rate}, &r); err != nil {
		return 0, err
	}
	if r.ErrorRate == nil {
		return 0, errors.New("error rate missing from response")
	}
	return *r.ErrorRate, nil
}

// Reset restores the server data to the seed.
func (c *Client) Reset(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/admin/reset", nil, nil)
}

// Health reports whether the server answers its liveness probe.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check: %s", resp.Status)
	}
	return nil
}
