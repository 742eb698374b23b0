package transport

import (
	"net/http"

	"github.com/rpggio/sellerconsole/internal/domain/activity"
)

// ErrorRate is the body of the error-rate setting.
type ErrorRate struct {
	ErrorRate *float64 `json:"errorRate"`
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query(), "limit")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	entries, err := s.svc.Activity.GetRecentActivity(r.Context(), activity.ListOptions{Limit: limit})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, entries)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.svc.Dashboard(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, d)
}

func (s *Server) handleGetErrorRate(w http.ResponseWriter, _ *http.Request) {
	rate := s.svc.Admin.ErrorRate()
	WriteData(w, http.StatusOK, ErrorRate{ErrorRate: &rate})
}

func (s *Server) handleSetErrorRate(w http.ResponseWriter, r *http.Request) {
	var req ErrorRate
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.ErrorRate == nil {
		s.fail(w, r, badRequest("errorRate", "errorRate is required"))
		return
	}
	stored, err := s.svc.Admin.SetErrorRate(r.Context(), *req.ErrorRate)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, ErrorRate{ErrorRate: &stored})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Admin.ResetData(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, map[string]bool{"reset": true})
}
