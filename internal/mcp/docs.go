package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/sellerconsole/internal/console"
)

const serverInstructions = `seller-console manages a seller's Leads and Opportunities against a simulated backend.

Core concepts:
- Lead: a prospect with a status (New, Contacted, Qualified, Lost, Converted) and a score from 1 to 100.
- Opportunity: a potential deal with a stage, an account and an optional amount.
- Conversion: convert_lead creates an opportunity from a lead and marks the lead Converted. It happens once per lead.
- Simulated backend: every list, get and write has latency and may fail with a retryable error. get_error_rate / set_error_rate control how often.

Workflow:
1) Orient: call dashboard (or lead_stats / opportunity_stats).
2) Find: list_leads with search, status, date_range, sort_by, sort_order, page and limit. Pages past the end are clamped.
3) Act: update_lead, convert_lead, create_opportunity, update_opportunity, delete_opportunity.
4) On an error result read error.code. If error.retryable is true, repeat the same call. Otherwise fix the input.

Docs:
- seller://docs/index
- seller://docs/errors
- seller://dashboard (live summary)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "seller://docs/index",
		Name:        "docs_index",
		Title:       "Seller console guide",
		Description: "Entities, filters and defaults of the seller console tools.",
		Content: `# Seller console guide

## Leads

| Field | Notes |
|---|---|
| status | New, Contacted, Qualified, Lost, Converted |
| score | 1 to 100 |
| source | Website, LinkedIn, Email Campaign, Cold Call, Referral, Trade Show, Social Media, Advertisement |

list_leads defaults to score descending, 20 per page.

## Opportunities

Stages: Prospecting, Qualification, Proposal, Negotiation, Closed Won, Closed Lost.
Amount is optional and never negative. list_opportunities defaults to newest first
and accepts sort_by amount, name, createdAt or updatedAt.

## Filters

- search: case-insensitive substring over name, email and company (leads) or name and account (opportunities).
- status: exact match; All disables the filter.
- date_range: 1d, 7d, 30d, 1y or All, measured back from now and inclusive of the boundary.
- page: clamped into range, so page 99 of a 3 page result returns page 3.

## Conversion

convert_lead takes an optional name, account_name, stage and amount. Name and account
default to the lead's name and company. A converted lead cannot be converted again.
`,
	},
	{
		URI:         "seller://docs/errors",
		Name:        "docs_errors",
		Title:       "Error codes",
		Description: "Codes returned in error results and how to recover.",
		Content: `# Error codes

| Code | Retryable | Meaning |
|---|---|---|
| VALIDATION_FAILED | no | An input was rejected; error.field names it. |
| LEAD_NOT_FOUND | no | No lead has that id. |
| OPPORTUNITY_NOT_FOUND | no | No opportunity has that id. |
| ALREADY_CONVERTED | no | The lead was converted before. |
| SERVER_ERROR | yes | Listing or reading leads failed. |
| UPDATE_FAILED | yes | Updating a lead failed. Nothing changed. |
| CONVERT_FAILED | only when transient | Conversion failed and no opportunity was left behind. Retry when retryable is true (HTTP 503); otherwise (HTTP 500) the failure is permanent. |
| FETCH_OPPORTUNITIES_FAILED | yes | Listing or reading opportunities failed. |
| CREATE_OPPORTUNITY_FAILED | yes | Creating an opportunity failed. |
| UPDATE_OPPORTUNITY_FAILED | yes | Updating an opportunity failed. |
| DELETE_OPPORTUNITY_FAILED | yes | Deleting an opportunity failed. |
| INTERNAL_ERROR | no | Unexpected failure. |
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}

const dashboardURI = "seller://dashboard"

func registerDashboardResource(server *sdkmcp.Server, load func(context.Context) (console.Dashboard, error)) {
	if load == nil {
		return
	}
	server.AddResource(&sdkmcp.Resource{
		URI:         dashboardURI,
		Name:        "dashboard",
		Title:       "Dashboard",
		Description: "Lead and opportunity stats with the latest activity.",
		MIMEType:    "application/json",
	}, func(ctx context.Context, _ *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
		d, err := load(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading dashboard: %w", err)
		}
		data, err := json.Marshal(d)
		if err != nil {
			return nil, err
		}
		return &sdkmcp.ReadResourceResult{
			Contents: []*sdkmcp.ResourceContents{{
				URI:      dashboardURI,
				MIMEType: "application/json",
				Text:     string(data),
			}},
		}, nil
	})
}
