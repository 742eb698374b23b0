package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/sellerconsole/internal/app"
	"github.com/rpggio/sellerconsole/internal/config"
	"github.com/rpggio/sellerconsole/internal/mcp"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T) (*sdkmcp.ClientSession, *app.App) {
	t.Helper()
	ctx := context.Background()

	cfg := config.Default()
	cfg.Simulation.ErrorRate = 0
	cfg.Simulation.DelayScale = 0
	cfg.Seed.Count = 40
	a, err := app.New(ctx, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	server := mcp.NewServer(mcp.Config{Services: mcp.Services{
		Leads:         a.Leads,
		Opportunities: a.Opportunities,
		Activity:      a.Activity,
		Admin:         a.Admin,
		Dashboard:     a.Dashboard,
	}})

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })

	return cs, a
}

func call(t *testing.T, cs *sdkmcp.ClientSession, name string, args map[string]any, out any) *sdkmcp.CallToolResult {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(text.Text), out))
	}
	return res
}

type toolError struct {
	Error mcp.ToolError `json:"error"`
}

func TestServer_ListsTools(t *testing.T) {
	cs, _ := connect(t)

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	for _, want := range []string{
		"list_leads", "get_lead", "update_lead", "convert_lead", "lead_stats",
		"list_opportunities", "create_opportunity", "update_opportunity", "delete_opportunity",
		"opportunity_stats", "recent_activity", "get_error_rate", "set_error_rate", "reset_data",
	} {
		require.Contains(t, names, want)
	}
}

func TestServer_LeadTools(t *testing.T) {
	cs, _ := connect(t)

	var page struct {
		Items []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"items"`
		Pagination struct {
			Total       int `json:"total"`
			CurrentPage int `json:"currentPage"`
			TotalPages  int `json:"totalPages"`
		} `json:"pagination"`
	}
	res := call(t, cs, "list_leads", map[string]any{"status": "New", "limit": 5, "page": 50}, &page)
	require.False(t, res.IsError)
	require.NotEmpty(t, page.Items)
	require.Equal(t, page.Pagination.TotalPages, page.Pagination.CurrentPage)
	id := page.Items[0].ID

	var updated struct {
		Score int `json:"score"`
	}
	res = call(t, cs, "update_lead", map[string]any{"id": id, "score": 42}, &updated)
	require.False(t, res.IsError)
	require.Equal(t, 42, updated.Score)

	var conv struct {
		Opportunity struct {
			ID     string `json:"id"`
			LeadID string `json:"leadId"`
			Stage  string `json:"stage"`
		} `json:"opportunity"`
	}
	res = call(t, cs, "convert_lead", map[string]any{"lead_id": id, "stage": "Qualification"}, &conv)
	require.False(t, res.IsError)
	require.Equal(t, id, conv.Opportunity.LeadID)
	require.Equal(t, "Qualification", conv.Opportunity.Stage)

	var failed toolError
	res = call(t, cs, "convert_lead", map[string]any{"lead_id": id}, &failed)
	require.True(t, res.IsError)
	require.Equal(t, "ALREADY_CONVERTED", failed.Error.Code)
	require.False(t, failed.Error.Retryable)
}

func TestServer_ValidationErrors(t *testing.T) {
	cs, _ := connect(t)

	var failed toolError
	res := call(t, cs, "list_leads", map[string]any{"date_range": "2w"}, &failed)
	require.True(t, res.IsError)
	require.Equal(t, "VALIDATION_FAILED", failed.Error.Code)

	failed = toolError{}
	res = call(t, cs, "create_opportunity", map[string]any{"name": "Deal", "account_name": "Acme", "amount": -5}, &failed)
	require.True(t, res.IsError)
	require.Equal(t, "VALIDATION_FAILED", failed.Error.Code)
	require.Equal(t, "amount", failed.Error.Field)

	failed = toolError{}
	res = call(t, cs, "get_lead", map[string]any{"id": "lead_missing"}, &failed)
	require.True(t, res.IsError)
	require.Equal(t, "LEAD_NOT_FOUND", failed.Error.Code)
}

func TestServer_OpportunityTools(t *testing.T) {
	cs, _ := connect(t)

	var opp struct {
		ID     string   `json:"id"`
		Amount *float64 `json:"amount"`
	}
	res := call(t, cs, "create_opportunity", map[string]any{"name": "Expansion", "account_name": "Globex", "amount": 900}, &opp)
	require.False(t, res.IsError)
	require.NotNil(t, opp.Amount)

	var cleared map[string]any
	res = call(t, cs, "update_opportunity", map[string]any{"id": opp.ID, "clear_amount": true}, &cleared)
	require.False(t, res.IsError)
	require.Nil(t, cleared["amount"])

	var stats struct {
		Count int `json:"count"`
	}
	call(t, cs, "opportunity_stats", nil, &stats)
	require.Equal(t, 1, stats.Count)

	res = call(t, cs, "delete_opportunity", map[string]any{"id": opp.ID}, nil)
	require.False(t, res.IsError)

	var failed toolError
	res = call(t, cs, "delete_opportunity", map[string]any{"id": opp.ID}, &failed)
	require.True(t, res.IsError)
	require.Equal(t, "OPPORTUNITY_NOT_FOUND", failed.Error.Code)
}

func TestServer_SimulationControls(t *testing.T) {
	cs, a := connect(t)

	var rate mcp.ErrorRateResult
	call(t, cs, "set_error_rate", map[string]any{"error_rate": 2.5}, &rate)
	require.Equal(t, 1.0, rate.ErrorRate)
	require.Equal(t, 1.0, a.Policy.Rate())

	var failed toolError
	res := call(t, cs, "list_opportunities", nil, &failed)
	require.True(t, res.IsError)
	require.Equal(t, "FETCH_OPPORTUNITIES_FAILED", failed.Error.Code)
	require.True(t, failed.Error.Retryable)

	call(t, cs, "set_error_rate", map[string]any{"error_rate": 0}, &rate)
	call(t, cs, "get_error_rate", nil, &rate)
	require.Equal(t, 0.0, rate.ErrorRate)

	res = call(t, cs, "reset_data", nil, nil)
	require.False(t, res.IsError)

	var entries []struct {
		Type string `json:"type"`
	}
	call(t, cs, "recent_activity", map[string]any{"limit": 5}, &entries)
	require.Len(t, entries, 1)
	require.Equal(t, "data_reset", entries[0].Type)
}

func TestServer_Resources(t *testing.T) {
	cs, _ := connect(t)

	res, err := cs.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "seller://docs/errors"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "ALREADY_CONVERTED")

	res, err = cs.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "seller://dashboard"})
	require.NoError(t, err)
	var d struct {
		Leads struct {
			Total int `json:"total"`
		} `json:"leads"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &d))
	require.Equal(t, 40, d.Leads.Total)
}
