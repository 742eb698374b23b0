package transport

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/sellerconsole/internal/domain/lead"
)

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.svc.Leads.List(r.Context(), q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, res)
}

func (s *Server) handleGetLead(w http.ResponseWriter, r *http.Request) {
	l, err := s.svc.Leads.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, l)
}

func (s *Server) handleUpdateLead(w http.ResponseWriter, r *http.Request) {
	var req lead.UpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	req.ID = chi.URLParam(r, "id")

	l, err := s.svc.Leads.Update(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, l)
}

func (s *Server) handleConvertLead(w http.ResponseWriter, r *http.Request) {
	var req lead.ConvertRequest
	// An empty body converts with the defaults taken from the lead.
	if err := decodeOptionalJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		s.fail(w, r, err)
		return
	}
	req.LeadID = chi.URLParam(r, "id")

	res, err := s.svc.Leads.Convert(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteData(w, http.StatusCreated, res)
}

func (s *Server) handleLeadStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Leads.Stats(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, stats)
}
