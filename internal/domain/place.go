package domain

// LatLng is a geographic coordinate in decimal degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// Place is a point of interest attached to a specific day.
// PlaceID is the map provider's reference; ID is our own identifier and is
// unique across the whole itinerary.
type Place struct {
	ID       string
	PlaceID  string
	Name     string
	Address  string
	Location LatLng
	// Time is free-form ("09:30") and empty when the user has not set one.
	Time string
}

// NewPlace carries the caller-supplied fields of a place about to be added.
// The store assigns the ID.
type NewPlace struct {
	PlaceID  string
	Name     string
	Address  string
	Location LatLng
	Time     string
}

// SearchResult is a single candidate returned by the map provider.
// Rating and UserRatingsTotal are zero when the provider has no reviews.
type SearchResult struct {
	PlaceID          string
	Name             string
	Address          string
	Location         LatLng
	Rating           float64
	UserRatingsTotal int
}

// Marker is what the UI needs to draw a pin for a place in the itinerary.
type Marker struct {
	PlaceID  string
	Name     string
	Location LatLng
}
