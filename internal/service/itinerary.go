// Package service contains the business logic for the itinerary planner.
// Services validate inputs, enforce business rules, and orchestrate the
// planner store, repos, and the map provider.
// No storage code lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
	"github.com/pkordes/itinerary-planner/backend/internal/places"
	"github.com/pkordes/itinerary-planner/backend/internal/planner"
	"github.com/pkordes/itinerary-planner/backend/internal/repo"
)

// ItineraryService owns the itinerary currently being edited and the
// collection of saved ones.
//
// The planner is single-user: there is exactly one current itinerary per
// service. Every method holds the service lock for its whole duration, so
// concurrent HTTP requests are applied one at a time, each to completion.
type ItineraryService struct {
	mu     sync.Mutex
	store  *planner.Store
	repo   repo.ItineraryRepo
	places places.Provider
	log    *slog.Logger
	now    func() time.Time
}

// NewItineraryService constructs an ItineraryService whose current itinerary
// is a fresh default one (today plus one week). provider may be nil, in which
// case Search returns domain.ErrProviderUnavailable.
func NewItineraryService(r repo.ItineraryRepo, provider places.Provider, log *slog.Logger) *ItineraryService {
	if log == nil {
		log = slog.Default()
	}
	s := &ItineraryService{
		repo:   r,
		places: provider,
		log:    log,
		now:    time.Now,
	}
	start := domain.Date(s.now())
	// A default range is never inverted, so New cannot fail here.
	s.store, _ = planner.New(domain.DefaultTitle, start, start.AddDate(0, 0, domain.DefaultTripLength))
	return s
}

// Current returns a copy of the itinerary being edited.
func (s *ItineraryService) Current(_ context.Context) domain.Itinerary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Itinerary()
}

// New discards the current itinerary and starts an empty one with a new id.
// A blank title falls back to domain.DefaultTitle.
// Returns domain.ErrInvalidRange if start is after end or the range is too long.
func (s *ItineraryService) New(ctx context.Context, title string, start, end time.Time) (domain.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(title) == "" {
		title = domain.DefaultTitle
	}
	if err := s.store.Reset(strings.TrimSpace(title), start, end); err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.New: %w", err)
	}
	it := s.store.Itinerary()
	s.log.InfoContext(ctx, "itinerary created", "itinerary_id", it.ID, "days", len(it.Days))
	return it, nil
}

// SetTitle renames the current itinerary.
// Returns domain.ErrValidation if title is blank.
func (s *ItineraryService) SetTitle(_ context.Context, title string) (domain.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Itinerary{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	s.store.SetTitle(title)
	return s.store.Itinerary(), nil
}

// SetDateRange moves the current itinerary to [start, end]. Places on days
// past the new end are dropped; the count is logged.
// Returns domain.ErrInvalidRange if start is after end or the range is too long.
func (s *ItineraryService) SetDateRange(ctx context.Context, start, end time.Time) (domain.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped, err := s.store.SetDateRange(start, end)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.SetDateRange: %w", err)
	}
	it := s.store.Itinerary()
	if dropped > 0 {
		s.log.InfoContext(ctx, "date range shrank; places dropped",
			"itinerary_id", it.ID, "dropped", dropped, "days", len(it.Days))
	}
	return it, nil
}

// AddPlace attaches a place to a day of the current itinerary.
// Returns domain.ErrValidation if the place has no name and
// domain.ErrDayNotFound if the day does not exist.
func (s *ItineraryService) AddPlace(_ context.Context, dayNumber int, np domain.NewPlace) (domain.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(np.Name) == "" {
		return domain.Place{}, fmt.Errorf("%w: place name is required", domain.ErrValidation)
	}
	p, err := s.store.AddPlace(dayNumber, np)
	if err != nil {
		return domain.Place{}, fmt.Errorf("service.ItineraryService.AddPlace: %w", err)
	}
	return p, nil
}

// RemovePlace deletes a place from the current itinerary.
// Returns domain.ErrPlaceNotFound if it is not there.
func (s *ItineraryService) RemovePlace(_ context.Context, placeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.RemovePlace(placeID); err != nil {
		return fmt.Errorf("service.ItineraryService.RemovePlace: %w", err)
	}
	return nil
}

// ReorderPlace swaps two adjacent places of a day; see planner.Store.ReorderPlace.
func (s *ItineraryService) ReorderPlace(_ context.Context, dayNumber, from, to int) (domain.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ReorderPlace(dayNumber, from, to); err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.ReorderPlace: %w", err)
	}
	return s.store.Itinerary(), nil
}

// MovePlace moves a place one step up or down within its day.
func (s *ItineraryService) MovePlace(_ context.Context, placeID string, up bool) (domain.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	move := s.store.MovePlaceDown
	if up {
		move = s.store.MovePlaceUp
	}
	if err := move(placeID); err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.MovePlace: %w", err)
	}
	return s.store.Itinerary(), nil
}

// SetPlaceTime sets the visit time of a place. Unknown places are ignored.
func (s *ItineraryService) SetPlaceTime(_ context.Context, placeID, t string) domain.Itinerary {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.SetPlaceTime(placeID, t)
	return s.store.Itinerary()
}

// ReplacePlacesOrder reorders a day to match a UI list; see planner.Store.ReplacePlacesOrder.
func (s *ItineraryService) ReplacePlacesOrder(_ context.Context, dayNumber int, ids []string) (domain.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ReplacePlacesOrder(dayNumber, ids); err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.ReplacePlacesOrder: %w", err)
	}
	return s.store.Itinerary(), nil
}
