package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
)

// Search asks the map provider for places matching query.
// The service lock is not held while the provider is called: results do not
// touch the current itinerary until the caller adds one with AddPlace.
// Returns domain.ErrValidation for a blank query and
// domain.ErrProviderUnavailable when no provider is configured.
func (s *ItineraryService) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}
	if s.places == nil {
		return nil, fmt.Errorf("service.ItineraryService.Search: %w", domain.ErrProviderUnavailable)
	}

	results, err := s.places.SearchPlaces(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Search: %w", err)
	}
	if results == nil {
		return []domain.SearchResult{}, nil
	}
	return results, nil
}

// Markers returns one marker per place in the current itinerary, in day
// then place order, and the bounds to fit them. ok is false when there are
// no places.
func (s *ItineraryService) Markers(_ context.Context) (markers []domain.Marker, bounds domain.Bounds, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := s.store.Itinerary()
	markers = make([]domain.Marker, 0, it.PlaceCount())
	locs := make([]domain.LatLng, 0, it.PlaceCount())
	for _, d := range it.Days {
		for _, p := range d.Places {
			markers = append(markers, domain.Marker{PlaceID: p.ID, Name: p.Name, Location: p.Location})
			locs = append(locs, p.Location)
		}
	}
	bounds, ok = domain.BoundsOf(locs)
	return markers, bounds, ok
}

// Export flattens the current itinerary into export rows.
func (s *ItineraryService) Export(_ context.Context) []domain.ExportRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.BuildExport(s.store.Itinerary())
}
