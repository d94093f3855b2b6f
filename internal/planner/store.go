// Package planner owns the in-memory itinerary being edited and enforces its
// invariants: days always match the date range, day numbers match positions,
// and every place belongs to exactly one day.
//
// A Store is not safe for concurrent use. Callers that share one across
// goroutines must serialize access (see service.ItineraryService).
package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
)

// Store holds one itinerary and the operations that edit it.
type Store struct {
	it    domain.Itinerary
	newID func() string
}

// New creates a Store holding a fresh itinerary with a new id and the days
// for [start, end]. Returns domain.ErrInvalidRange if start is after end or
// the range is longer than domain.MaxTripDays.
func New(title string, start, end time.Time) (*Store, error) {
	s := &Store{newID: uuid.NewString}
	if err := s.Reset(title, start, end); err != nil {
		return nil, err
	}
	return s, nil
}

// FromItinerary creates a Store holding a copy of it, e.g. one just loaded
// from storage. See Replace for how the days are rebuilt.
func FromItinerary(it domain.Itinerary) (*Store, error) {
	s := &Store{newID: uuid.NewString}
	if _, err := s.Replace(it); err != nil {
		return nil, err
	}
	return s, nil
}

// Itinerary returns a deep copy of the current itinerary.
func (s *Store) Itinerary() domain.Itinerary {
	return s.it.Clone()
}

// Reset discards the current itinerary and starts a new one with a fresh id.
func (s *Store) Reset(title string, start, end time.Time) error {
	start, end = domain.Date(start), domain.Date(end)
	if err := domain.ValidateRange(start, end); err != nil {
		return err
	}
	s.it = domain.Itinerary{
		ID:        s.newID(),
		Title:     title,
		StartDate: start,
		EndDate:   end,
		Days:      domain.ComputeDays(start, end),
	}
	return nil
}

// Replace swaps in a copy of it as the current itinerary, keeping its id and
// title. The days are rebuilt from the date range, so a stored record whose
// days disagree with its range cannot break the store's invariants: day i
// keeps the places of the record's day i and places beyond the range are
// dropped. It returns the number of dropped places.
// Returns domain.ErrInvalidRange, leaving the store untouched, if the range
// is inverted or too long.
func (s *Store) Replace(it domain.Itinerary) (dropped int, err error) {
	start, end := domain.Date(it.StartDate), domain.Date(it.EndDate)
	if err := domain.ValidateRange(start, end); err != nil {
		return 0, err
	}

	c := it.Clone()
	c.StartDate, c.EndDate = start, end
	c.Days, dropped = rebuildDays(c.Days, start, end)
	s.it = c
	return dropped, nil
}

// SetTitle renames the itinerary.
func (s *Store) SetTitle(title string) {
	s.it.Title = title
}

// SetDateRange moves the itinerary to [start, end] and rebuilds its days.
// Day i of the new range keeps the places of the old day i; places on days
// beyond the new range are dropped. It returns the number of dropped places.
// Returns domain.ErrInvalidRange if start is after end or the range is longer
// than domain.MaxTripDays.
func (s *Store) SetDateRange(start, end time.Time) (dropped int, err error) {
	start, end = domain.Date(start), domain.Date(end)
	if err := domain.ValidateRange(start, end); err != nil {
		return 0, err
	}

	s.it.StartDate = start
	s.it.EndDate = end
	s.it.Days, dropped = rebuildDays(s.it.Days, start, end)
	return dropped, nil
}

// rebuildDays computes the days of [start, end] and carries the places of
// old over by position. Places on old days past the end are counted as
// dropped. Nil place lists become empty ones.
func rebuildDays(old []domain.Day, start, end time.Time) ([]domain.Day, int) {
	days := domain.ComputeDays(start, end)
	dropped := 0
	for i, d := range old {
		if i >= len(days) {
			dropped += len(d.Places)
			continue
		}
		if d.Places != nil {
			days[i].Places = d.Places
		}
	}
	return days, dropped
}

// AddPlace appends a place with a fresh id to the given day and returns it.
// Returns domain.ErrDayNotFound if dayNumber is outside [1, len(days)].
func (s *Store) AddPlace(dayNumber int, np domain.NewPlace) (domain.Place, error) {
	d, err := s.day(dayNumber)
	if err != nil {
		return domain.Place{}, err
	}
	p := domain.Place{
		ID:       s.newID(),
		PlaceID:  np.PlaceID,
		Name:     np.Name,
		Address:  np.Address,
		Location: np.Location,
		Time:     np.Time,
	}
	d.Places = append(d.Places, p)
	return p, nil
}

// RemovePlace deletes the place with the given id from whichever day holds it.
// Returns domain.ErrPlaceNotFound if no day holds it.
func (s *Store) RemovePlace(placeID string) error {
	di, pi, ok := s.find(placeID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPlaceNotFound, placeID)
	}
	places := s.it.Days[di].Places
	s.it.Days[di].Places = append(places[:pi], places[pi+1:]...)
	return nil
}

// ReorderPlace moves the place at index from to index to within one day.
// Only one-step moves are performed: the two adjacent places swap. Indices
// outside the list or more than one step apart leave the day unchanged.
// Returns domain.ErrDayNotFound for an unknown day.
func (s *Store) ReorderPlace(dayNumber, from, to int) error {
	d, err := s.day(dayNumber)
	if err != nil {
		return err
	}
	n := len(d.Places)
	if from < 0 || to < 0 || from >= n || to >= n {
		return nil
	}
	if from-to != 1 && to-from != 1 {
		return nil
	}
	d.Places[from], d.Places[to] = d.Places[to], d.Places[from]
	return nil
}

// MovePlaceUp swaps the place with its predecessor in the same day.
// The first place of a day stays where it is.
func (s *Store) MovePlaceUp(placeID string) error {
	di, pi, ok := s.find(placeID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPlaceNotFound, placeID)
	}
	return s.ReorderPlace(di+1, pi, pi-1)
}

// MovePlaceDown swaps the place with its successor in the same day.
// The last place of a day stays where it is.
func (s *Store) MovePlaceDown(placeID string) error {
	di, pi, ok := s.find(placeID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPlaceNotFound, placeID)
	}
	return s.ReorderPlace(di+1, pi, pi+1)
}

// SetPlaceTime sets the visit time of the first place with the given id,
// scanning days in order. Unknown ids are ignored.
func (s *Store) SetPlaceTime(placeID, t string) {
	if di, pi, ok := s.find(placeID); ok {
		s.it.Days[di].Places[pi].Time = strings.TrimSpace(t)
	}
}

// ReplacePlacesOrder reorders a day's places to follow ids, as reported by a
// drag-and-drop list. Ids that are not on the day are ignored and repeated
// ids count once. Places missing from ids keep their relative order after
// the named ones, so a stale UI list never deletes data.
// Returns domain.ErrDayNotFound for an unknown day.
func (s *Store) ReplacePlacesOrder(dayNumber int, ids []string) error {
	d, err := s.day(dayNumber)
	if err != nil {
		return err
	}

	byID := make(map[string]int, len(d.Places))
	for i, p := range d.Places {
		byID[p.ID] = i
	}

	taken := make([]bool, len(d.Places))
	ordered := make([]domain.Place, 0, len(d.Places))
	for _, id := range ids {
		i, ok := byID[id]
		if !ok || taken[i] {
			continue
		}
		taken[i] = true
		ordered = append(ordered, d.Places[i])
	}
	for i, p := range d.Places {
		if !taken[i] {
			ordered = append(ordered, p)
		}
	}

	d.Places = ordered
	return nil
}

// day returns a pointer to the day with the given 1-based number.
func (s *Store) day(number int) (*domain.Day, error) {
	if number < 1 || number > len(s.it.Days) {
		return nil, fmt.Errorf("%w: day %d of %d", domain.ErrDayNotFound, number, len(s.it.Days))
	}
	return &s.it.Days[number-1], nil
}

// find locates a place by id, returning its day and place indexes.
func (s *Store) find(placeID string) (dayIdx, placeIdx int, ok bool) {
	for di, d := range s.it.Days {
		for pi, p := range d.Places {
			if p.ID == placeID {
				return di, pi, true
			}
		}
	}
	return 0, 0, false
}
