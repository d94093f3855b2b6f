package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
)

// SaveItinerary handles POST /itinerary/save.
// It upserts the current itinerary into the saved collection.
func (s *Server) SaveItinerary(w http.ResponseWriter, r *http.Request) {
	it, err := s.itineraries.Save(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// ListItineraries handles GET /itineraries.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListItineraries(w http.ResponseWriter, r *http.Request) {
	page, ok := optionalIntQuery(w, r, "page")
	if !ok {
		return
	}
	limit, ok := optionalIntQuery(w, r, "limit")
	if !ok {
		return
	}

	params := domain.NewPaginationParams(page, limit)
	summaries, total, err := s.itineraries.ListSaved(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := make([]Summary, len(summaries))
	for i, sum := range summaries {
		data[i] = summaryToResponse(sum)
	}
	writeJSON(w, http.StatusOK, SummaryList{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// LoadItinerary handles POST /itineraries/{id}/load.
// The saved itinerary becomes the current one.
func (s *Server) LoadItinerary(w http.ResponseWriter, r *http.Request) {
	it, err := s.itineraries.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// DeleteItinerary handles DELETE /itineraries/{id}.
func (s *Server) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	if err := s.itineraries.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// optionalIntQuery returns nil when the parameter is absent.
func optionalIntQuery(w http.ResponseWriter, r *http.Request, name string) (*int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		requestError(w, name+" must be an integer")
		return nil, false
	}
	return &n, true
}
