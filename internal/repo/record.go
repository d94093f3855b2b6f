package repo

import (
	"fmt"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
)

// itineraryRecord is the persisted layout of an itinerary. Field names follow
// the camelCase keys of the browser client's localStorage format so blobs written
// by either side stay readable. There is no version field.
type itineraryRecord struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	StartDate string      `json:"startDate"`
	EndDate   string      `json:"endDate"`
	Days      []dayRecord `json:"days"`
}

type dayRecord struct {
	Day    int           `json:"day"`
	Date   string        `json:"date"`
	Places []placeRecord `json:"places"`
}

type placeRecord struct {
	ID       string         `json:"id"`
	PlaceID  string         `json:"placeId"`
	Name     string         `json:"name"`
	Address  string         `json:"address"`
	Location locationRecord `json:"location"`
	Time     string         `json:"time"`
}

type locationRecord struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// toRecord maps a domain.Itinerary into its persisted layout.
func toRecord(it domain.Itinerary) itineraryRecord {
	rec := itineraryRecord{
		ID:        it.ID,
		Title:     it.Title,
		StartDate: it.StartDate.Format(domain.DateLayout),
		EndDate:   it.EndDate.Format(domain.DateLayout),
		Days:      make([]dayRecord, len(it.Days)),
	}
	for i, d := range it.Days {
		dr := dayRecord{
			Day:    d.Number,
			Date:   d.Date.Format(domain.DateLayout),
			Places: make([]placeRecord, len(d.Places)),
		}
		for j, p := range d.Places {
			dr.Places[j] = placeRecord{
				ID:       p.ID,
				PlaceID:  p.PlaceID,
				Name:     p.Name,
				Address:  p.Address,
				Location: locationRecord{Lat: p.Location.Lat, Lng: p.Location.Lng},
				Time:     p.Time,
			}
		}
		rec.Days[i] = dr
	}
	return rec
}

// validate checks that every date in the record parses and that the range
// is one an itinerary can hold. Records are only mapped to the domain after
// validate succeeds.
func (rec itineraryRecord) validate() error {
	start, err := domain.ParseDate(rec.StartDate)
	if err != nil {
		return fmt.Errorf("startDate: %w", err)
	}
	end, err := domain.ParseDate(rec.EndDate)
	if err != nil {
		return fmt.Errorf("endDate: %w", err)
	}
	if err := domain.ValidateRange(start, end); err != nil {
		return err
	}
	for _, d := range rec.Days {
		if _, err := domain.ParseDate(d.Date); err != nil {
			return fmt.Errorf("day %d date: %w", d.Day, err)
		}
	}
	return nil
}

// toDomain maps a validated record into a domain.Itinerary.
// Place slices are always non-nil.
func (rec itineraryRecord) toDomain() domain.Itinerary {
	start, _ := domain.ParseDate(rec.StartDate)
	end, _ := domain.ParseDate(rec.EndDate)
	it := domain.Itinerary{
		ID:        rec.ID,
		Title:     rec.Title,
		StartDate: start,
		EndDate:   end,
		Days:      make([]domain.Day, len(rec.Days)),
	}
	for i, dr := range rec.Days {
		date, _ := domain.ParseDate(dr.Date)
		d := domain.Day{
			Number: dr.Day,
			Date:   date,
			Places: make([]domain.Place, len(dr.Places)),
		}
		for j, pr := range dr.Places {
			d.Places[j] = domain.Place{
				ID:       pr.ID,
				PlaceID:  pr.PlaceID,
				Name:     pr.Name,
				Address:  pr.Address,
				Location: domain.LatLng{Lat: pr.Location.Lat, Lng: pr.Location.Lng},
				Time:     pr.Time,
			}
		}
		it.Days[i] = d
	}
	return it
}
