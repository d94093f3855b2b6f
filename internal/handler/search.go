package handler

import "net/http"

// SearchPlaces handles GET /places/search?q=.
func (s *Server) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	results, err := s.itineraries.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]SearchResult, len(results))
	for i, res := range results {
		out[i] = searchResultToResponse(res)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetMarkers handles GET /itinerary/markers.
// The client drops its old pins, draws these, and fits the viewport to bounds.
func (s *Server) GetMarkers(w http.ResponseWriter, r *http.Request) {
	markers, bounds, ok := s.itineraries.Markers(r.Context())

	resp := MarkerSet{Markers: make([]Marker, len(markers))}
	for i, m := range markers {
		resp.Markers[i] = Marker{
			PlaceId:  m.PlaceID,
			Name:     m.Name,
			Location: LatLng{Lat: m.Location.Lat, Lng: m.Location.Lng},
		}
	}
	if ok {
		resp.Bounds = &Bounds{
			Northeast: LatLng{Lat: bounds.Northeast.Lat, Lng: bounds.Northeast.Lng},
			Southwest: LatLng{Lat: bounds.Southwest.Lat, Lng: bounds.Southwest.Lng},
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
