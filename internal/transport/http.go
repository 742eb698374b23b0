// Package transport exposes the seller console services as a JSON HTTP API.
package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/sellerconsole/internal/console"
	"github.com/rpggio/sellerconsole/internal/domain/activity"
	"github.com/rpggio/sellerconsole/internal/domain/lead"
	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
	"github.com/rpggio/sellerconsole/internal/query"
)

// LeadService is the lead API surface.
type LeadService interface {
	List(ctx context.Context, q query.Query) (query.Result[lead.Lead], error)
	Get(ctx context.Context, id string) (*lead.Lead, error)
	Update(ctx context.Context, req lead.UpdateRequest) (*lead.Lead, error)
	Convert(ctx context.Context, req lead.ConvertRequest) (*lead.ConvertResult, error)
	Stats(ctx context.Context) (lead.Stats, error)
}

// OpportunityService is the opportunity API surface.
type OpportunityService interface {
	List(ctx context.Context, q query.Query) (query.Result[opportunity.Opportunity], error)
	Get(ctx context.Context, id string) (*opportunity.Opportunity, error)
	Create(ctx context.Context, req opportunity.CreateRequest) (*opportunity.Opportunity, error)
	Update(ctx context.Context, req opportunity.UpdateRequest) (*opportunity.Opportunity, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (opportunity.Stats, error)
}

// ActivityService lists recent activity.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}

// AdminService controls the simulation.
type AdminService interface {
	ResetData(ctx context.Context) error
	ErrorRate() float64
	SetErrorRate(ctx context.Context, rate float64) (float64, error)
}

// Services groups the API dependencies.
type Services struct {
	Leads         LeadService
	Opportunities OpportunityService
	Activity      ActivityService
	Admin         AdminService
	Dashboard     func(ctx context.Context) (console.Dashboard, error)
}

// Options tunes the router.
type Options struct {
	Logger *slog.Logger
	// MCP, when set, is mounted at MCPPath.
	MCP     http.Handler
	MCPPath string
}

// Server wires HTTP handlers.
type Server struct {
	svc    Services
	logger *slog.Logger
}

// NewServer creates an HTTP router with middleware.
func NewServer(svc Services, opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/leads", func(r chi.Router) {
			r.Get("/", srv.handleListLeads)
			r.Get("/stats", srv.handleLeadStats)
			r.Get("/{id}", srv.handleGetLead)
			r.Patch("/{id}", srv.handleUpdateLead)
			r.Post("/{id}/convert", srv.handleConvertLead)
		})
		r.Route("/opportunities", func(r chi.Router) {
			r.Get("/", srv.handleListOpportunities)
			r.Post("/", srv.handleCreateOpportunity)
			r.Get("/stats", srv.handleOpportunityStats)
			r.Get("/{id}", srv.handleGetOpportunity)
			r.Patch("/{id}", srv.handleUpdateOpportunity)
			r.Delete("/{id}", srv.handleDeleteOpportunity)
		})
		r.Get("/activity", srv.handleActivity)
		r.Get("/dashboard", srv.handleDashboard)
		r.Get("/settings/error-rate", srv.handleGetErrorRate)
		r.Put("/settings/error-rate", srv.handleSetErrorRate)
		r.Post("/admin/reset", srv.handleReset)
	})

	if opts.MCP != nil {
		path := opts.MCPPath
		if path == "" {
			path = "/mcp"
		}
		r.Handle(path, opts.MCP)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, Envelope{Error: &ErrorBody{Message: "Route not found", Code: CodeNotFound}})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// fail writes err and logs it at a level matching its class.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := MapError(err)
	attrs := []any{"path", r.URL.Path, "code", apiErr.Code, "request_id", middleware.GetReqID(r.Context())}
	switch {
	case apiErr.Status >= 500 && !apiErr.Retryable:
		s.logger.Error("request failed", append(attrs, "error", err)...)
	case apiErr.Retryable:
		s.logger.Warn("request failed", append(attrs, "error", err)...)
	default:
		s.logger.Debug("request rejected", append(attrs, "error", err)...)
	}
	WriteError(w, apiErr)
}

// RequestLogger logs one line per request.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}
