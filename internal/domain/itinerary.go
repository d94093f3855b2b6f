// Package domain contains the core data types for the itinerary planner.
// This package has zero external dependencies and is imported by every other
// internal package (planner, repo, service, handler).
package domain

import "time"

// DefaultTitle is the title given to a freshly created itinerary.
const DefaultTitle = "My Awesome Trip"

// DefaultTripLength is the number of days between the start and end date of
// a freshly created itinerary (a week, inclusive of both ends gives 8 days).
const DefaultTripLength = 7

// Itinerary is a day-by-day trip plan. It is the top-level aggregate:
// the itinerary owns its days and each day owns its places.
//
// Invariant: len(Days) equals the inclusive number of calendar days between
// StartDate and EndDate, and Days[i].Number == i+1.
type Itinerary struct {
	ID        string
	Title     string
	StartDate time.Time
	EndDate   time.Time
	Days      []Day
}

// Day is a single calendar day within an itinerary.
type Day struct {
	// Number is 1-based and always equals the day's position in Itinerary.Days plus one.
	Number int
	Date   time.Time
	Places []Place
}

// PlaceCount returns the total number of places across all days.
func (it Itinerary) PlaceCount() int {
	n := 0
	for _, d := range it.Days {
		n += len(d.Places)
	}
	return n
}

// Clone returns a deep copy of the itinerary so callers can hand it out
// without exposing the owner's slices.
func (it Itinerary) Clone() Itinerary {
	out := it
	out.Days = make([]Day, len(it.Days))
	for i, d := range it.Days {
		out.Days[i] = Day{
			Number: d.Number,
			Date:   d.Date,
			Places: append(make([]Place, 0, len(d.Places)), d.Places...),
		}
	}
	return out
}

// Summary is the list view of a saved itinerary.
type Summary struct {
	ID         string
	Title      string
	StartDate  time.Time
	EndDate    time.Time
	PlaceCount int
}

// Summarize builds the list view of it.
func Summarize(it Itinerary) Summary {
	return Summary{
		ID:         it.ID,
		Title:      it.Title,
		StartDate:  it.StartDate,
		EndDate:    it.EndDate,
		PlaceCount: it.PlaceCount(),
	}
}
