// export.go implements GET /itinerary/export: the current itinerary as a flat
// table, one row per place. ?format=csv selects CSV; JSON is the default.
package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
)

// GetExport implements GET /itinerary/export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	rows := s.itineraries.Export(r.Context())

	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, buildJSONResponse(rows))
	case "csv":
		s.writeCSV(w, r, rows)
	default:
		requestError(w, `format must be "json" or "csv"`)
	}
}

// buildJSONResponse converts domain rows to the wire type.
func buildJSONResponse(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domainRowToResponse(r))
	}
	return out
}

// writeCSV encodes domain rows as CSV and writes them as an attachment.
func (s *Server) writeCSV(w http.ResponseWriter, r *http.Request, rows []domain.ExportRow) {
	var buf bytes.Buffer
	if err := domain.WriteExportCSV(&buf, rows); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// domainRowToResponse maps a domain.ExportRow to the wire type.
// Place fields of an empty day become nil pointers (omitted in JSON).
func domainRowToResponse(r domain.ExportRow) ExportRow {
	row := ExportRow{
		ItineraryId:    r.ItineraryID,
		ItineraryTitle: r.ItineraryTitle,
		Day:            r.DayNumber,
		Date:           r.DayDate,
	}
	if r.Position == 0 {
		return row
	}
	row.Position = r.Position
	row.PlaceName = &r.PlaceName
	row.PlaceAddress = &r.PlaceAddress
	row.PlaceTime = &r.PlaceTime
	row.PlaceId = &r.PlaceID
	row.Lat = &r.Lat
	row.Lng = &r.Lng
	return row
}
