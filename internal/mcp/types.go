package mcp

import (
	"github.com/rpggio/sellerconsole/internal/domain/lead"
	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
	"github.com/rpggio/sellerconsole/internal/query"
)

type ListParams struct {
	Search    string `json:"search,omitempty" jsonschema:"case-insensitive substring matched against names, emails and companies"`
	Status    string `json:"status,omitempty" jsonschema:"exact status or stage filter; All disables it"`
	DateRange string `json:"date_range,omitempty" jsonschema:"creation window: 1d, 7d, 30d, 1y or All"`
	SortBy    string `json:"sort_by,omitempty" jsonschema:"sort key: score, name, createdAt, updatedAt or amount"`
	SortOrder string `json:"sort_order,omitempty" jsonschema:"asc or desc"`
	Page      int    `json:"page,omitempty" jsonschema:"1-based page; out of range pages are clamped"`
	Limit     int    `json:"limit,omitempty" jsonschema:"page size, any positive number; defaults to 20"`
}

// Query converts the parameters into a list query.
func (p ListParams) Query() (query.Query, error) {
	q := query.Query{Search: p.Search, Status: p.Status, Page: p.Page, Limit: p.Limit}
	var err error
	if q.DateRange, err = query.ParseDateRange(p.DateRange); err != nil {
		return query.Query{}, err
	}
	if q.SortBy, err = query.ParseSortKey(p.SortBy); err != nil {
		return query.Query{}, err
	}
	if q.SortOrder, err = query.ParseSortOrder(p.SortOrder); err != nil {
		return query.Query{}, err
	}
	return q, nil
}

type IDParams struct {
	ID string `json:"id" jsonschema:"record id"`
}

type UpdateLeadParams struct {
	ID      string  `json:"id" jsonschema:"lead id, e.g. lead_001"`
	Name    *string `json:"name,omitempty" jsonschema:"full name, at least 2 characters"`
	Email   *string `json:"email,omitempty" jsonschema:"email address"`
	Company *string `json:"company,omitempty" jsonschema:"company name, at least 2 characters"`
	Status  *string `json:"status,omitempty" jsonschema:"New, Contacted, Qualified, Lost or Converted"`
	Score   *int    `json:"score,omitempty" jsonschema:"lead score from 1 to 100"`
}

func (p UpdateLeadParams) request() lead.UpdateRequest {
	req := lead.UpdateRequest{ID: p.ID, Name: p.Name, Email: p.Email, Company: p.Company, Score: p.Score}
	if p.Status != nil {
		s := lead.Status(*p.Status)
		req.Status = &s
	}
	return req
}

type ConvertLeadParams struct {
	LeadID      string   `json:"lead_id" jsonschema:"lead to convert"`
	Name        string   `json:"name,omitempty" jsonschema:"opportunity name; defaults to the lead name"`
	AccountName string   `json:"account_name,omitempty" jsonschema:"account name; defaults to the lead company"`
	Stage       string   `json:"stage,omitempty" jsonschema:"initial stage; defaults to Prospecting"`
	Amount      *float64 `json:"amount,omitempty" jsonschema:"expected deal value, not negative"`
}

func (p ConvertLeadParams) request() lead.ConvertRequest {
	return lead.ConvertRequest{
		LeadID:      p.LeadID,
		Name:        p.Name,
		AccountName: p.AccountName,
		Stage:       opportunity.Stage(p.Stage),
		Amount:      p.Amount,
	}
}

type CreateOpportunityParams struct {
	Name        string   `json:"name" jsonschema:"opportunity name, at least 2 characters"`
	AccountName string   `json:"account_name" jsonschema:"account name, at least 2 characters"`
	Stage       string   `json:"stage,omitempty" jsonschema:"Prospecting, Qualification, Proposal, Negotiation, Closed Won or Closed Lost"`
	Amount      *float64 `json:"amount,omitempty" jsonschema:"expected deal value, not negative"`
	LeadID      string   `json:"lead_id,omitempty" jsonschema:"originating lead, if any"`
}

func (p CreateOpportunityParams) request() opportunity.CreateRequest {
	return opportunity.CreateRequest{
		Name:        p.Name,
		AccountName: p.AccountName,
		Stage:       opportunity.Stage(p.Stage),
		Amount:      p.Amount,
		LeadID:      p.LeadID,
	}
}

type UpdateOpportunityParams struct {
	ID          string   `json:"id" jsonschema:"opportunity id"`
	Name        *string  `json:"name,omitempty" jsonschema:"new name"`
	AccountName *string  `json:"account_name,omitempty" jsonschema:"new account name"`
	Stage       *string  `json:"stage,omitempty" jsonschema:"new stage"`
	Amount      *float64 `json:"amount,omitempty" jsonschema:"new amount"`
	ClearAmount bool     `json:"clear_amount,omitempty" jsonschema:"remove the amount; cannot be combined with amount"`
}

func (p UpdateOpportunityParams) request() opportunity.UpdateRequest {
	req := opportunity.UpdateRequest{
		ID:          p.ID,
		Name:        p.Name,
		AccountName: p.AccountName,
		Amount:      p.Amount,
		ClearAmount: p.ClearAmount,
	}
	if p.Stage != nil {
		s := opportunity.Stage(*p.Stage)
		req.Stage = &s
	}
	return req
}

type RecentActivityParams struct {
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of entries, newest first"`
	EntityID string `json:"entity_id,omitempty" jsonschema:"only entries about this lead or opportunity"`
	Type     string `json:"type,omitempty" jsonschema:"only entries of this type"`
}

type SetErrorRateParams struct {
	ErrorRate float64 `json:"error_rate" jsonschema:"probability from 0 to 1 that a simulated call fails; clamped"`
}

type NoParams struct{}

type ErrorRateResult struct {
	ErrorRate float64 `json:"error_rate"`
}
