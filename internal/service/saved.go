package service

import (
	"context"
	"fmt"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
)

// Save persists the current itinerary, replacing an earlier save of it.
func (s *ItineraryService) Save(ctx context.Context) (domain.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := s.store.Itinerary()
	if err := s.repo.Save(ctx, it); err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Save: %w", err)
	}
	s.log.InfoContext(ctx, "itinerary saved", "itinerary_id", it.ID, "places", it.PlaceCount())
	return it, nil
}

// ListSaved returns one page of saved itinerary summaries in stored order,
// plus the total number saved. Always returns a non-nil slice.
func (s *ItineraryService) ListSaved(ctx context.Context, page domain.PaginationParams) ([]domain.Summary, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ItineraryService.ListSaved: %w", err)
	}

	lo, hi := page.Window(len(all))
	out := make([]domain.Summary, 0, hi-lo)
	for _, it := range all[lo:hi] {
		out = append(out, domain.Summarize(it))
	}
	return out, len(all), nil
}

// Load makes a saved itinerary the current one. Unsaved edits to the
// previous current itinerary are discarded. The days are rebuilt from the
// saved date range, so a record whose days disagree with it is repaired.
// Returns domain.ErrNotFound if nothing is saved under id, and
// domain.ErrInvalidRange if the saved range is unusable.
func (s *ItineraryService) Load(ctx context.Context, id string) (domain.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.repo.LoadByID(ctx, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Load: %w", err)
	}
	dropped, err := s.store.Replace(it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Load: %w", err)
	}
	if dropped > 0 {
		s.log.WarnContext(ctx, "loaded itinerary had places past its date range",
			"itinerary_id", it.ID, "dropped", dropped)
	}
	return s.store.Itinerary(), nil
}

// Delete removes a saved itinerary. Unknown ids are a no-op. The current
// itinerary is left alone even if it is the one deleted; saving it again
// brings it back.
func (s *ItineraryService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	return nil
}
