package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// GetItinerary handles GET /itinerary.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, itineraryToResponse(s.itineraries.Current(r.Context())))
}

// CreateItinerary handles POST /itinerary. It discards the current
// itinerary and starts a fresh one for the given range.
func (s *Server) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	var body CreateItineraryRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.StartDate.IsZero() || body.EndDate.IsZero() {
		requestError(w, "start_date and end_date are required")
		return
	}

	it, err := s.itineraries.New(r.Context(), body.Title, body.StartDate.Time, body.EndDate.Time)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, itineraryToResponse(it))
}

// UpdateTitle handles PUT /itinerary/title.
func (s *Server) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	var body UpdateTitleRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	it, err := s.itineraries.SetTitle(r.Context(), body.Title)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// UpdateDates handles PUT /itinerary/dates.
// Places on days that fall outside the new range are dropped.
func (s *Server) UpdateDates(w http.ResponseWriter, r *http.Request) {
	var body UpdateDatesRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.StartDate.IsZero() || body.EndDate.IsZero() {
		requestError(w, "start_date and end_date are required")
		return
	}

	it, err := s.itineraries.SetDateRange(r.Context(), body.StartDate.Time, body.EndDate.Time)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// AddPlace handles POST /itinerary/days/{day}/places.
func (s *Server) AddPlace(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}
	var body AddPlaceRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	p, err := s.itineraries.AddPlace(r.Context(), day, requestToNewPlace(body))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, placeToResponse(p))
}

// ReorderPlace handles POST /itinerary/days/{day}/reorder.
// Only adjacent swaps take effect; other index pairs leave the day unchanged.
func (s *Server) ReorderPlace(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}
	var body ReorderRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	it, err := s.itineraries.ReorderPlace(r.Context(), day, body.From, body.To)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// ReplacePlacesOrder handles PUT /itinerary/days/{day}/order.
func (s *Server) ReplacePlacesOrder(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}
	var body ReplaceOrderRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	it, err := s.itineraries.ReplacePlacesOrder(r.Context(), day, body.PlaceIds)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// RemovePlace handles DELETE /itinerary/places/{placeID}.
func (s *Server) RemovePlace(w http.ResponseWriter, r *http.Request) {
	if err := s.itineraries.RemovePlace(r.Context(), chi.URLParam(r, "placeID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdatePlaceTime handles PUT /itinerary/places/{placeID}/time.
// An unknown place id is not an error; the itinerary comes back unchanged.
func (s *Server) UpdatePlaceTime(w http.ResponseWriter, r *http.Request) {
	var body UpdateTimeRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	it := s.itineraries.SetPlaceTime(r.Context(), chi.URLParam(r, "placeID"), body.Time)
	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// MovePlace handles POST /itinerary/places/{placeID}/move.
func (s *Server) MovePlace(w http.ResponseWriter, r *http.Request) {
	var body MoveRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	var up bool
	switch body.Direction {
	case "up":
		up = true
	case "down":
	default:
		requestError(w, `direction must be "up" or "down"`)
		return
	}

	it, err := s.itineraries.MovePlace(r.Context(), chi.URLParam(r, "placeID"), up)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// dayParam parses the {day} path parameter. It writes a 422 and reports
// false when the value is not an integer.
func dayParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		requestError(w, "day must be an integer")
		return 0, false
	}
	return day, true
}
