package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/sellerconsole/internal/domain/activity"
)

type toolset struct {
	svc    Services
	logger *slog.Logger
}

// tool adapts a service call to the SDK handler signature. Service errors
// become error results so the model can read the code and recover.
func tool[In any](ts *toolset, name string, fn func(context.Context, In) (any, error)) sdkmcp.ToolHandlerFor[In, any] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		out, err := fn(ctx, in)
		if err != nil {
			toolErr := MapError(err)
			if toolErr.Retryable {
				ts.logger.Warn("tool call failed", "tool", name, "code", toolErr.Code, "error", err)
			} else {
				ts.logger.Debug("tool call rejected", "tool", name, "code", toolErr.Code, "error", err)
			}
			return errorResult(toolErr), nil, nil
		}
		res, err := jsonResult(out)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: encoding result: %w", name, err)
		}
		return res, nil, nil
	}
}

func jsonResult(v any) (*sdkmcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}

func errorResult(toolErr *ToolError) *sdkmcp.CallToolResult {
	data, _ := json.Marshal(map[string]*ToolError{"error": toolErr})
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}

var errMissingDashboard = errors.New("dashboard is not configured")

func registerTools(server *sdkmcp.Server, ts *toolset) {
	// Leads
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_leads",
		Description: "List leads with search, status and date filters, sorting and pagination. Defaults: score desc, 20 per page.",
	}, tool(ts, "list_leads", func(ctx context.Context, p ListParams) (any, error) {
		q, err := p.Query()
		if err != nil {
			return nil, err
		}
		return ts.svc.Leads.List(ctx, q)
	}))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_lead",
		Description: "Get a lead by id",
	}, tool(ts, "get_lead", func(ctx context.Context, p IDParams) (any, error) {
		return ts.svc.Leads.Get(ctx, p.ID)
	}))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_lead",
		Description: "Update a lead's name, email, company, status or score. Omitted fields are unchanged.",
	}, tool(ts, "update_lead", func(ctx context.Context, p UpdateLeadParams) (any, error) {
		return ts.svc.Leads.Update(ctx, p.request())
	}))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "convert_lead",
		Description: "Create an opportunity from a lead and mark the lead Converted. A lead converts once.",
	}, tool(ts, "convert_lead", func(ctx context.Context, p ConvertLeadParams) (any, error) {
		return ts.svc.Leads.Convert(ctx, p.request())
	}))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "lead_stats",
		Description: "Count leads in total and per status",
	}, tool(ts, "lead_stats", func(ctx context.Context, _ NoParams) (any, error) {
		return ts.svc.Leads.Stats(ctx)
	}))

	// Opportunities
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_opportunities",
		Description: "List opportunities with search, stage and date filters, sorting and pagination. Defaults: newest first. The status parameter filters by stage.",
	}, tool(ts, "list_opportunities", func(ctx context.Context, p ListParams) (any, error) {
		q, err := p.Query()
		if err != nil {
			return nil, err
		}
		return ts.svc.Opportunities.List(ctx, q)
	}))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_opportunity",
		Description: "Get an opportunity by id",
	}, tool(ts, "get_opportunity", func(ctx context.Context, p IDParams) (any, error) {
		return ts.svc.Opportunities.Get(ctx, p.ID)
	}))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_opportunity",
		Description: "Create an opportunity. Stage defaults to Prospecting.",
	}, tool(ts, "create_opportunity", func(ctx context.Context, p CreateOpportunityParams) (any, error) {
		return ts.svc.Opportunities.Create(ctx, p.request())
	}))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_opportunity",
		Description: "Update an opportunity's name, account, stage or amount",
	}, tool(ts, "update_opportunity", func(ctx context.Context, p UpdateOpportunityParams) (any, error) {
		return ts.svc.Opportunities.Update(ctx, p.request())
	}))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_opportunity",
		Description: "Delete an opportunity",
	}, tool(ts, "delete_opportunity", func(ctx context.Context, p IDParams) (any, error) {
		if err := ts.svc.Opportunities.Delete(ctx, p.ID); err != nil {
			return nil, err
		}
		return map[string]string{"id": p.ID}, nil
	}))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "opportunity_stats",
		Description: "Count opportunities in total and per stage, and sum their amounts",
	}, tool(ts, "opportunity_stats", func(ctx context.Context, _ NoParams) (any, error) {
		return ts.svc.Opportunities.Stats(ctx)
	}))

	// Activity and dashboard
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_activity",
		Description: "List recent changes, newest first",
	}, tool(ts, "recent_activity", func(ctx context.Context, p RecentActivityParams) (any, error) {
		opts := activity.ListOptions{Limit: p.Limit}
		if p.EntityID != "" {
			opts.EntityID = &p.EntityID
		}
		if p.Type != "" {
			typ := activity.Type(p.Type)
			opts.Type = &typ
		}
		return ts.svc.Activity.GetRecentActivity(ctx, opts)
	}))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "dashboard",
		Description: "Lead stats, opportunity stats and the latest activity in one call",
	}, tool(ts, "dashboard", func(ctx context.Context, _ NoParams) (any, error) {
		if ts.svc.Dashboard == nil {
			return nil, errMissingDashboard
		}
		return ts.svc.Dashboard(ctx)
	}))

	// Simulation controls
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_error_rate",
		Description: "Read the probability that a simulated backend call fails",
	}, tool(ts, "get_error_rate", func(_ context.Context, _ NoParams) (any, error) {
		return ErrorRateResult{ErrorRate: ts.svc.Admin.ErrorRate()}, nil
	}))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_error_rate",
		Description: "Set the probability that a simulated backend call fails. Values are clamped to [0, 1].",
	}, tool(ts, "set_error_rate", func(ctx context.Context, p SetErrorRateParams) (any, error) {
		stored, err := ts.svc.Admin.SetErrorRate(ctx, p.ErrorRate)
		if err != nil {
			return nil, err
		}
		return ErrorRateResult{ErrorRate: stored}, nil
	}))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reset_data",
		Description: "Restore leads to the seed data and remove all opportunities and activity",
	}, tool(ts, "reset_data", func(ctx context.Context, _ NoParams) (any, error) {
		if err := ts.svc.Admin.ResetData(ctx); err != nil {
			return nil, err
		}
		return map[string]bool{"reset": true}, nil
	}))
}
