package handler

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
)

// Wire types. Dates travel as "2006-01-02" via openapi_types.Date.

// Itinerary is the JSON form of domain.Itinerary.
type Itinerary struct {
	Id        string             `json:"id"`
	Title     string             `json:"title"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
	Days      []Day              `json:"days"`
}

// Day is the JSON form of domain.Day.
type Day struct {
	Day    int                `json:"day"`
	Date   openapi_types.Date `json:"date"`
	Places []Place            `json:"places"`
}

// Place is the JSON form of domain.Place.
type Place struct {
	Id       string `json:"id"`
	PlaceId  string `json:"place_id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Location LatLng `json:"location"`
	Time     string `json:"time"`
}

// LatLng is a coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Summary is one row of the saved itinerary list.
type Summary struct {
	Id         string             `json:"id"`
	Title      string             `json:"title"`
	StartDate  openapi_types.Date `json:"start_date"`
	EndDate    openapi_types.Date `json:"end_date"`
	PlaceCount int                `json:"place_count"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// SummaryList is the body of GET /itineraries.
type SummaryList struct {
	Data       []Summary  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// SearchResult is one candidate from the map provider.
type SearchResult struct {
	PlaceId          string  `json:"place_id"`
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	Location         LatLng  `json:"location"`
	Rating           float64 `json:"rating,omitempty"`
	UserRatingsTotal int     `json:"user_ratings_total,omitempty"`
}

// Marker is one pin to draw on the map.
type Marker struct {
	PlaceId  string `json:"place_id"`
	Name     string `json:"name"`
	Location LatLng `json:"location"`
}

// Bounds is the viewport to fit.
type Bounds struct {
	Northeast LatLng `json:"northeast"`
	Southwest LatLng `json:"southwest"`
}

// MarkerSet is the body of GET /itinerary/markers. Bounds is omitted when
// there are no markers.
type MarkerSet struct {
	Markers []Marker `json:"markers"`
	Bounds  *Bounds  `json:"bounds,omitempty"`
}

// ExportRow is one row of GET /itinerary/export. The place fields are nil on
// the row standing in for an empty day, so a 0.0 coordinate is still sent.
type ExportRow struct {
	ItineraryId    string   `json:"itinerary_id"`
	ItineraryTitle string   `json:"itinerary_title"`
	Day            int      `json:"day"`
	Date           string   `json:"date"`
	Position       int      `json:"position,omitempty"`
	PlaceName      *string  `json:"place_name,omitempty"`
	PlaceAddress   *string  `json:"place_address,omitempty"`
	PlaceTime      *string  `json:"place_time,omitempty"`
	Lat            *float64 `json:"lat,omitempty"`
	Lng            *float64 `json:"lng,omitempty"`
	PlaceId        *string  `json:"place_id,omitempty"`
}

// ---- requests --------------------------------------------------------------

// CreateItineraryRequest is the body of POST /itinerary.
type CreateItineraryRequest struct {
	Title     string             `json:"title"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
}

// UpdateTitleRequest is the body of PUT /itinerary/title.
type UpdateTitleRequest struct {
	Title string `json:"title"`
}

// UpdateDatesRequest is the body of PUT /itinerary/dates.
type UpdateDatesRequest struct {
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
}

// AddPlaceRequest is the body of POST /itinerary/days/{day}/places,
// usually copied from a SearchResult.
type AddPlaceRequest struct {
	PlaceId  string `json:"place_id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Location LatLng `json:"location"`
	Time     string `json:"time"`
}

// ReorderRequest is the body of POST /itinerary/days/{day}/reorder.
type ReorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// ReplaceOrderRequest is the body of PUT /itinerary/days/{day}/order.
type ReplaceOrderRequest struct {
	PlaceIds []string `json:"place_ids"`
}

// UpdateTimeRequest is the body of PUT /itinerary/places/{placeID}/time.
type UpdateTimeRequest struct {
	Time string `json:"time"`
}

// MoveRequest is the body of POST /itinerary/places/{placeID}/move.
// Direction is "up" or "down".
type MoveRequest struct {
	Direction string `json:"direction"`
}

// ---- mapping helpers -------------------------------------------------------

// itineraryToResponse converts a domain.Itinerary into its wire type.
// Slices are always non-nil so clients see [] rather than null.
func itineraryToResponse(it domain.Itinerary) Itinerary {
	resp := Itinerary{
		Id:        it.ID,
		Title:     it.Title,
		StartDate: openapi_types.Date{Time: it.StartDate},
		EndDate:   openapi_types.Date{Time: it.EndDate},
		Days:      make([]Day, len(it.Days)),
	}
	for i, d := range it.Days {
		day := Day{
			Day:    d.Number,
			Date:   openapi_types.Date{Time: d.Date},
			Places: make([]Place, len(d.Places)),
		}
		for j, p := range d.Places {
			day.Places[j] = placeToResponse(p)
		}
		resp.Days[i] = day
	}
	return resp
}

func placeToResponse(p domain.Place) Place {
	return Place{
		Id:       p.ID,
		PlaceId:  p.PlaceID,
		Name:     p.Name,
		Address:  p.Address,
		Location: LatLng{Lat: p.Location.Lat, Lng: p.Location.Lng},
		Time:     p.Time,
	}
}

func summaryToResponse(s domain.Summary) Summary {
	return Summary{
		Id:         s.ID,
		Title:      s.Title,
		StartDate:  openapi_types.Date{Time: s.StartDate},
		EndDate:    openapi_types.Date{Time: s.EndDate},
		PlaceCount: s.PlaceCount,
	}
}

func searchResultToResponse(r domain.SearchResult) SearchResult {
	return SearchResult{
		PlaceId:          r.PlaceID,
		Name:             r.Name,
		Address:          r.Address,
		Location:         LatLng{Lat: r.Location.Lat, Lng: r.Location.Lng},
		Rating:           r.Rating,
		UserRatingsTotal: r.UserRatingsTotal,
	}
}

// requestToNewPlace converts an AddPlaceRequest into a domain.NewPlace.
func requestToNewPlace(body AddPlaceRequest) domain.NewPlace {
	return domain.NewPlace{
		PlaceID:  body.PlaceId,
		Name:     body.Name,
		Address:  body.Address,
		Location: domain.LatLng{Lat: body.Location.Lat, Lng: body.Location.Lng},
		Time:     body.Time,
	}
}
