package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/sellerconsole/internal/console"
	"github.com/rpggio/sellerconsole/internal/domain/activity"
	"github.com/rpggio/sellerconsole/internal/domain/lead"
	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
	"github.com/rpggio/sellerconsole/internal/query"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// LeadService defines lead operations needed by MCP.
type LeadService interface {
	List(ctx context.Context, q query.Query) (query.Result[lead.Lead], error)
	Get(ctx context.Context, id string) (*lead.Lead, error)
	Update(ctx context.Context, req lead.UpdateRequest) (*lead.Lead, error)
	Convert(ctx context.Context, req lead.ConvertRequest) (*lead.ConvertResult, error)
	Stats(ctx context.Context) (lead.Stats, error)
}

// OpportunityService defines opportunity operations needed by MCP.
type OpportunityService interface {
	List(ctx context.Context, q query.Query) (query.Result[opportunity.Opportunity], error)
	Get(ctx context.Context, id string) (*opportunity.Opportunity, error)
	Create(ctx context.Context, req opportunity.CreateRequest) (*opportunity.Opportunity, error)
	Update(ctx context.Context, req opportunity.UpdateRequest) (*opportunity.Opportunity, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (opportunity.Stats, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}

// AdminService defines simulation controls needed by MCP.
type AdminService interface {
	ResetData(ctx context.Context) error
	ErrorRate() float64
	SetErrorRate(ctx context.Context, rate float64) (float64, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Leads         LeadService
	Opportunities OpportunityService
	Activity      ActivityService
	Admin         AdminService
	Dashboard     func(ctx context.Context) (console.Dashboard, error)
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "seller-console",
		Version: Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server)
	registerDashboardResource(server, cfg.Services.Dashboard)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, &toolset{svc: cfg.Services, logger: logger})

	return server
}

// NewHTTPHandler serves server over the streamable HTTP transport.
func NewHTTPHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
	)
}
