package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/sellerconsole/internal/domain/opportunity"
)

func (s *Server) handleListOpportunities(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.svc.Opportunities.List(r.Context(), q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, res)
}

func (s *Server) handleGetOpportunity(w http.ResponseWriter, r *http.Request) {
	opp, err := s.svc.Opportunities.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, opp)
}

func (s *Server) handleCreateOpportunity(w http.ResponseWriter, r *http.Request) {
	var req opportunity.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	opp, err := s.svc.Opportunities.Create(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteData(w, http.StatusCreated, opp)
}

func (s *Server) handleUpdateOpportunity(w http.ResponseWriter, r *http.Request) {
	var req opportunity.UpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	req.ID = chi.URLParam(r, "id")

	opp, err := s.svc.Opportunities.Update(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, opp)
}

func (s *Server) handleDeleteOpportunity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.svc.Opportunities.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) handleOpportunityStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Opportunities.Stats(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteData(w, http.StatusOK, stats)
}
