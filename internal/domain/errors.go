package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// saved itinerary does not exist in storage.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. blank title, blank search query).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidRange is returned when an itinerary's start date is after its end
// date, or its range is longer than MaxTripDays.
var ErrInvalidRange = errors.New("invalid date range")

// ErrDayNotFound is returned when a day number is outside [1, len(days)].
var ErrDayNotFound = errors.New("day not found")

// ErrPlaceNotFound is returned when no day holds a place with the given id.
var ErrPlaceNotFound = errors.New("place not found")

// ErrProviderUnavailable is returned by search when no map provider is configured.
// Handlers should map this to HTTP 503.
var ErrProviderUnavailable = errors.New("map provider unavailable")
