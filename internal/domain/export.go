package domain

import (
	"encoding/csv"
	"io"
	"strconv"
)

// ExportRow is a single row in the flat itinerary export.
// It is a denormalized view: one row per place, with itinerary and day fields
// repeated for every place. Days with no places yield one row with zero
// values for all place fields, so every day shows up in a spreadsheet.
type ExportRow struct {
	// Itinerary fields, repeated for every row.
	ItineraryID    string
	ItineraryTitle string

	// Day fields.
	DayNumber int
	DayDate   string // "2006-01-02" formatted date

	// Place fields, zero when the day has no places.
	Position     int // 1-based position within the day, 0 when empty
	PlaceName    string
	PlaceAddress string
	PlaceTime    string
	Lat          float64
	Lng          float64
	PlaceID      string
}

// BuildExport flattens it into export rows in day order, then place order.
func BuildExport(it Itinerary) []ExportRow {
	rows := make([]ExportRow, 0, max(it.PlaceCount(), len(it.Days)))
	for _, d := range it.Days {
		base := ExportRow{
			ItineraryID:    it.ID,
			ItineraryTitle: it.Title,
			DayNumber:      d.Number,
			DayDate:        d.Date.Format(DateLayout),
		}
		if len(d.Places) == 0 {
			rows = append(rows, base)
			continue
		}
		for i, p := range d.Places {
			r := base
			r.Position = i + 1
			r.PlaceName = p.Name
			r.PlaceAddress = p.Address
			r.PlaceTime = p.Time
			r.Lat = p.Location.Lat
			r.Lng = p.Location.Lng
			r.PlaceID = p.PlaceID
			rows = append(rows, r)
		}
	}
	return rows
}

// ExportCSVHeaders are the column names written as the first CSV row.
var ExportCSVHeaders = []string{
	"itinerary_id", "itinerary_title", "day", "date", "position",
	"place_name", "place_address", "place_time", "lat", "lng", "place_id",
}

// WriteExportCSV writes a header row followed by one record per row.
// Rows for empty days leave every place column blank.
func WriteExportCSV(w io.Writer, rows []ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportCSVHeaders); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.csvRecord()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r ExportRow) csvRecord() []string {
	rec := []string{
		r.ItineraryID,
		r.ItineraryTitle,
		strconv.Itoa(r.DayNumber),
		r.DayDate,
		"", "", "", "", "", "", "",
	}
	if r.Position == 0 {
		return rec
	}
	rec[4] = strconv.Itoa(r.Position)
	rec[5] = r.PlaceName
	rec[6] = r.PlaceAddress
	rec[7] = r.PlaceTime
	rec[8] = strconv.FormatFloat(r.Lat, 'f', -1, 64)
	rec[9] = strconv.FormatFloat(r.Lng, 'f', -1, 64)
	rec[10] = r.PlaceID
	return rec
}
