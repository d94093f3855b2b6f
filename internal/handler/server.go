// Package handler implements the HTTP handlers for the itinerary planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, itinerary.go, saved.go, ...) but all share the same
// Server struct so they can access its dependencies.
//
// The UI re-renders from the response of every mutating call; nothing is
// pushed to it.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
	"github.com/pkordes/itinerary-planner/backend/spec"
)

// ItineraryServicer defines the business operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching storage or the map provider.
type ItineraryServicer interface {
	Current(ctx context.Context) domain.Itinerary
	New(ctx context.Context, title string, start, end time.Time) (domain.Itinerary, error)
	SetTitle(ctx context.Context, title string) (domain.Itinerary, error)
	SetDateRange(ctx context.Context, start, end time.Time) (domain.Itinerary, error)
	AddPlace(ctx context.Context, dayNumber int, np domain.NewPlace) (domain.Place, error)
	RemovePlace(ctx context.Context, placeID string) error
	ReorderPlace(ctx context.Context, dayNumber, from, to int) (domain.Itinerary, error)
	MovePlace(ctx context.Context, placeID string, up bool) (domain.Itinerary, error)
	SetPlaceTime(ctx context.Context, placeID, t string) domain.Itinerary
	ReplacePlacesOrder(ctx context.Context, dayNumber int, ids []string) (domain.Itinerary, error)

	Save(ctx context.Context) (domain.Itinerary, error)
	ListSaved(ctx context.Context, page domain.PaginationParams) ([]domain.Summary, int, error)
	Load(ctx context.Context, id string) (domain.Itinerary, error)
	Delete(ctx context.Context, id string) error

	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
	Markers(ctx context.Context) ([]domain.Marker, domain.Bounds, bool)
	Export(ctx context.Context) []domain.ExportRow
}

// Server serves every API endpoint.
// Wire it in main.go via r.Mount("/", server.Routes()).
type Server struct {
	itineraries ItineraryServicer
	log         *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger means slog.Default().
func NewServer(itineraries ItineraryServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{itineraries: itineraries, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil)
}

// Routes returns the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/itinerary", func(r chi.Router) {
		r.Get("/", s.GetItinerary)
		r.Post("/", s.CreateItinerary)
		r.Put("/title", s.UpdateTitle)
		r.Put("/dates", s.UpdateDates)
		r.Post("/save", s.SaveItinerary)
		r.Get("/markers", s.GetMarkers)
		r.Get("/export", s.GetExport)

		r.Post("/days/{day}/places", s.AddPlace)
		r.Post("/days/{day}/reorder", s.ReorderPlace)
		r.Put("/days/{day}/order", s.ReplacePlacesOrder)

		r.Delete("/places/{placeID}", s.RemovePlace)
		r.Put("/places/{placeID}/time", s.UpdatePlaceTime)
		r.Post("/places/{placeID}/move", s.MovePlace)
	})

	r.Route("/itineraries", func(r chi.Router) {
		r.Get("/", s.ListItineraries)
		r.Post("/{id}/load", s.LoadItinerary)
		r.Delete("/{id}", s.DeleteItinerary)
	})

	r.Get("/places/search", s.SearchPlaces)

	return r
}

// serveOpenAPI handles GET /openapi.yaml.
func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
