package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
	"github.com/pkordes/itinerary-planner/backend/internal/handler"
	"github.com/pkordes/itinerary-planner/backend/internal/places"
	"github.com/pkordes/itinerary-planner/backend/internal/repo"
	"github.com/pkordes/itinerary-planner/backend/internal/service"
)

// compile-time check: the service satisfies what the HTTP layer consumes.
var _ handler.ItineraryServicer = (*service.ItineraryService)(nil)

// mockItineraryRepo is a hand-written test double for repo.ItineraryRepo.
// Each method is a function field; set only the ones your test needs.
type mockItineraryRepo struct {
	save       func(ctx context.Context, it domain.Itinerary) error
	loadAll    func(ctx context.Context) ([]domain.Itinerary, error)
	loadByID   func(ctx context.Context, id string) (domain.Itinerary, error)
	deleteByID func(ctx context.Context, id string) error
}

func (m *mockItineraryRepo) Save(ctx context.Context, it domain.Itinerary) error {
	return m.save(ctx, it)
}
func (m *mockItineraryRepo) LoadAll(ctx context.Context) ([]domain.Itinerary, error) {
	return m.loadAll(ctx)
}
func (m *mockItineraryRepo) LoadByID(ctx context.Context, id string) (domain.Itinerary, error) {
	return m.loadByID(ctx, id)
}
func (m *mockItineraryRepo) DeleteByID(ctx context.Context, id string) error {
	return m.deleteByID(ctx, id)
}

// compile-time check: mockItineraryRepo must satisfy repo.ItineraryRepo.
var _ repo.ItineraryRepo = (*mockItineraryRepo)(nil)

// mockProvider is a test double for places.Provider.
type mockProvider struct {
	search func(ctx context.Context, query string) ([]domain.SearchResult, error)
}

func (m *mockProvider) SearchPlaces(ctx context.Context, query string) ([]domain.SearchResult, error) {
	return m.search(ctx, query)
}

var _ places.Provider = (*mockProvider)(nil)

// ---- helpers ---------------------------------------------------------------

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// newService returns a service whose current itinerary is 2024-06-01..03.
func newService(t *testing.T, r repo.ItineraryRepo, p places.Provider) *service.ItineraryService {
	t.Helper()
	svc := service.NewItineraryService(r, p, quiet)
	_, err := svc.New(context.Background(), "June Trip", date(2024, 6, 1), date(2024, 6, 3))
	require.NoError(t, err)
	return svc
}

func museum() domain.NewPlace {
	return domain.NewPlace{PlaceID: "gp-1", Name: "Museum", Location: domain.LatLng{Lat: 1, Lng: 2}}
}

// ---- construction / New ----------------------------------------------------

func TestNewItineraryService_DefaultItinerary(t *testing.T) {
	svc := service.NewItineraryService(&mockItineraryRepo{}, nil, quiet)

	it := svc.Current(context.Background())

	assert.Equal(t, domain.DefaultTitle, it.Title)
	assert.Len(t, it.Days, domain.DefaultTripLength+1)
	assert.True(t, it.StartDate.Equal(domain.Date(time.Now())))
}

func TestItineraryService_New_BlankTitleUsesDefault(t *testing.T) {
	svc := newService(t, &mockItineraryRepo{}, nil)
	before := svc.Current(context.Background()).ID

	it, err := svc.New(context.Background(), "  ", date(2024, 7, 1), date(2024, 7, 1))

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTitle, it.Title)
	assert.NotEqual(t, before, it.ID)
}

func TestItineraryService_New_InvalidRange(t *testing.T) {
	svc := newService(t, &mockItineraryRepo{}, nil)

	_, err := svc.New(context.Background(), "x", date(2024, 7, 2), date(2024, 7, 1))

	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

// ---- editing ---------------------------------------------------------------

func TestItineraryService_SetTitle(t *testing.T) {
	svc := newService(t, &mockItineraryRepo{}, nil)

	it, err := svc.SetTitle(context.Background(), "  Paris  ")
	require.NoError(t, err)
	assert.Equal(t, "Paris", it.Title)

	_, err = svc.SetTitle(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestItineraryService_Scenario_ShrinkDropsDayTwo(t *testing.T) {
	svc := newService(t, &mockItineraryRepo{}, nil)
	ctx := context.Background()

	it := svc.Current(ctx)
	require.Len(t, it.Days, 3)
	assert.Equal(t, "2024-06-02", it.Days[1].Date.Format(domain.DateLayout))

	_, err := svc.AddPlace(ctx, 2, domain.NewPlace{Name: "P1"})
	require.NoError(t, err)

	it, err = svc.SetDateRange(ctx, date(2024, 6, 1), date(2024, 6, 1))

	require.NoError(t, err)
	require.Len(t, it.Days, 1)
	assert.Empty(t, it.Days[0].Places)
}

func TestItineraryService_SetDateRange_Invalid(t *testing.T) {
	svc := newService(t, &mockItineraryRepo{}, nil)

	_, err := svc.SetDateRange(context.Background(), date(2024, 6, 3), date(2024, 6, 1))

	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestItineraryService_AddPlace_Errors(t *testing.T) {
	svc := newService(t, &mockItineraryRepo{}, nil)
	ctx := context.Background()

	_, err := svc.AddPlace(ctx, 1, domain.NewPlace{Name: " "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.AddPlace(ctx, 4, museum())
	assert.ErrorIs(t, err, domain.ErrDayNotFound)
}

func TestItineraryService_RemovePlace(t *testing.T) {
	svc := newService(t, &mockItineraryRepo{}, nil)
	ctx := context.Background()
	p, err := svc.AddPlace(ctx, 1, museum())
	require.NoError(t, err)

	require.NoError(t, svc.RemovePlace(ctx, p.ID))
	assert.Zero(t, svc.Current(ctx).PlaceCount())

	assert.ErrorIs(t, svc.RemovePlace(ctx, p.ID), domain.ErrPlaceNotFound)
}

func TestItineraryService_MoveAndReorder(t *testing.T) {
	svc := newService(t, &mockItineraryRepo{}, nil)
	ctx := context.Background()
	a, _ := svc.AddPlace(ctx, 1, domain.NewPlace{Name: "A"})
	b, _ := svc.AddPlace(ctx, 1, domain.NewPlace{Name: "B"})
	c, _ := svc.AddPlace(ctx, 1, domain.NewPlace{Name: "C"})

	it, err := svc.MovePlace(ctx, c.ID, true)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, c.ID, b.ID}, ids(it.Days[0]))

	it, err = svc.ReorderPlace(ctx, 1, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID, a.ID, b.ID}, ids(it.Days[0]))

	it, err = svc.ReplacePlacesOrder(ctx, 1, []string{b.ID, a.ID, c.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, a.ID, c.ID}, ids(it.Days[0]))

	_, err = svc.MovePlace(ctx, "ghost", false)
	assert.ErrorIs(t, err, domain.ErrPlaceNotFound)
}

func TestItineraryService_SetPlaceTime(t *testing.T) {
	svc := newService(t, &mockItineraryRepo{}, nil)
	ctx := context.Background()
	p, _ := svc.AddPlace(ctx, 3, museum())

	it := svc.SetPlaceTime(ctx, p.ID, "14:00")

	assert.Equal(t, "14:00", it.Days[2].Places[0].Time)
}

func ids(d domain.Day) []string {
	out := make([]string, 0, len(d.Places))
	for _, p := range d.Places {
		out = append(out, p.ID)
	}
	return out
}

// ---- persistence -----------------------------------------------------------

func TestItineraryService_Save(t *testing.T) {
	var saved domain.Itinerary
	r := &mockItineraryRepo{
		save: func(_ context.Context, it domain.Itinerary) error { saved = it; return nil },
	}
	svc := newService(t, r, nil)
	ctx := context.Background()
	_, _ = svc.AddPlace(ctx, 1, museum())

	got, err := svc.Save(ctx)

	require.NoError(t, err)
	assert.Equal(t, svc.Current(ctx), saved)
	assert.Equal(t, saved, got)
}

func TestItineraryService_Save_RepoError(t *testing.T) {
	repoErr := errors.New("kv exploded")
	r := &mockItineraryRepo{
		save: func(context.Context, domain.Itinerary) error { return repoErr },
	}
	svc := newService(t, r, nil)

	_, err := svc.Save(context.Background())

	// The service should propagate repo errors unchanged.
	assert.ErrorIs(t, err, repoErr)
}

func TestItineraryService_ListSaved_Pages(t *testing.T) {
	all := make([]domain.Itinerary, 5)
	for i := range all {
		all[i] = domain.Itinerary{ID: string(rune('a' + i)), Title: "T", Days: []domain.Day{
			{Number: 1, Places: []domain.Place{{ID: "p"}}},
		}}
	}
	r := &mockItineraryRepo{
		loadAll: func(context.Context) ([]domain.Itinerary, error) { return all, nil },
	}
	svc := newService(t, r, nil)
	page, limit := 2, 2

	got, total, err := svc.ListSaved(context.Background(), domain.NewPaginationParams(&page, &limit))

	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, 1, got[0].PlaceCount)
}

func TestItineraryService_ListSaved_Empty(t *testing.T) {
	r := &mockItineraryRepo{
		loadAll: func(context.Context) ([]domain.Itinerary, error) { return nil, nil },
	}
	svc := newService(t, r, nil)

	got, total, err := svc.ListSaved(context.Background(), domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestItineraryService_Load_ReplacesCurrent(t *testing.T) {
	stored := domain.Itinerary{
		ID:        "saved",
		Title:     "Saved Trip",
		StartDate: date(2023, 1, 1),
		EndDate:   date(2023, 1, 1),
		Days:      []domain.Day{{Number: 1, Date: date(2023, 1, 1), Places: []domain.Place{{ID: "x", Name: "Cafe"}}}},
	}
	r := &mockItineraryRepo{
		loadByID: func(_ context.Context, id string) (domain.Itinerary, error) {
			if id != "saved" {
				return domain.Itinerary{}, domain.ErrNotFound
			}
			return stored, nil
		},
	}
	svc := newService(t, r, nil)
	ctx := context.Background()

	got, err := svc.Load(ctx, "saved")
	require.NoError(t, err)
	assert.Equal(t, stored, got)
	assert.Equal(t, "Saved Trip", svc.Current(ctx).Title)

	_, err = svc.Load(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "saved", svc.Current(ctx).ID, "failed load keeps the current itinerary")
}

// TestItineraryService_Load_RebuildsDays loads a stored record whose days
// disagree with its date range and checks the current itinerary is usable.
func TestItineraryService_Load_RebuildsDays(t *testing.T) {
	kv := repo.NewMemoryKV()
	blob := `[{"id":"short","title":"t","startDate":"2024-06-01","endDate":"2024-06-03","days":[]},
		{"id":"long","title":"t","startDate":"2024-06-01","endDate":"2024-06-01","days":[
			{"day":1,"date":"2024-06-01","places":[{"id":"a","name":"A"}]},
			{"day":2,"date":"2024-06-02","places":[{"id":"b","name":"B"}]}]}]`
	require.NoError(t, kv.Put(context.Background(), repo.DefaultKey, []byte(blob)))
	svc := newService(t, repo.NewItineraryRepo(kv, "", quiet), nil)
	ctx := context.Background()

	got, err := svc.Load(ctx, "short")
	require.NoError(t, err)
	require.Len(t, got.Days, 3)
	assert.True(t, got.Days[2].Date.Equal(date(2024, 6, 3)))
	_, err = svc.AddPlace(ctx, 1, museum())
	require.NoError(t, err)

	got, err = svc.Load(ctx, "long")
	require.NoError(t, err)
	require.Len(t, got.Days, 1)
	assert.Equal(t, "a", got.Days[0].Places[0].ID)
}

func TestItineraryService_Load_InvalidRange(t *testing.T) {
	r := &mockItineraryRepo{
		loadByID: func(context.Context, string) (domain.Itinerary, error) {
			return domain.Itinerary{ID: "bad", StartDate: date(2024, 6, 5), EndDate: date(2024, 6, 1)}, nil
		},
	}
	svc := newService(t, r, nil)
	ctx := context.Background()
	before := svc.Current(ctx)

	_, err := svc.Load(ctx, "bad")

	assert.ErrorIs(t, err, domain.ErrInvalidRange)
	assert.Equal(t, before, svc.Current(ctx))
}

func TestItineraryService_ListSaved_HugePage(t *testing.T) {
	r := &mockItineraryRepo{
		loadAll: func(context.Context) ([]domain.Itinerary, error) {
			return []domain.Itinerary{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
		},
	}
	svc := newService(t, r, nil)
	page := 922337203685477581

	got, total, err := svc.ListSaved(context.Background(), domain.NewPaginationParams(&page, nil))

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, got)
}

func TestItineraryService_Delete(t *testing.T) {
	var deleted string
	r := &mockItineraryRepo{
		deleteByID: func(_ context.Context, id string) error { deleted = id; return nil },
	}
	svc := newService(t, r, nil)

	require.NoError(t, svc.Delete(context.Background(), "abc"))
	assert.Equal(t, "abc", deleted)
}

// TestItineraryService_SaveLoadRoundTrip wires the service to the real
// KV-backed repo to check a saved itinerary comes back deep-equal.
func TestItineraryService_SaveLoadRoundTrip(t *testing.T) {
	r := repo.NewItineraryRepo(repo.NewMemoryKV(), "", quiet)
	svc := newService(t, r, nil)
	ctx := context.Background()
	p, err := svc.AddPlace(ctx, 2, museum())
	require.NoError(t, err)
	svc.SetPlaceTime(ctx, p.ID, "08:15")

	saved, err := svc.Save(ctx)
	require.NoError(t, err)
	_, err = svc.New(ctx, "Other", date(2025, 1, 1), date(2025, 1, 2))
	require.NoError(t, err)

	loaded, err := svc.Load(ctx, saved.ID)

	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

// ---- search / markers / export ---------------------------------------------

func TestItineraryService_Search(t *testing.T) {
	want := []domain.SearchResult{{PlaceID: "g1", Name: "Louvre"}}
	p := &mockProvider{
		search: func(_ context.Context, q string) ([]domain.SearchResult, error) {
			assert.Equal(t, "louvre", q)
			return want, nil
		},
	}
	svc := newService(t, &mockItineraryRepo{}, p)

	got, err := svc.Search(context.Background(), "  louvre ")

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestItineraryService_Search_Errors(t *testing.T) {
	svc := newService(t, &mockItineraryRepo{}, nil)

	_, err := svc.Search(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Search(context.Background(), "louvre")
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)

	providerErr := errors.New("quota exceeded")
	svc = newService(t, &mockItineraryRepo{}, &mockProvider{
		search: func(context.Context, string) ([]domain.SearchResult, error) { return nil, providerErr },
	})
	_, err = svc.Search(context.Background(), "louvre")
	assert.ErrorIs(t, err, providerErr)
}

func TestItineraryService_Markers(t *testing.T) {
	svc := newService(t, &mockItineraryRepo{}, nil)
	ctx := context.Background()

	markers, _, ok := svc.Markers(ctx)
	assert.False(t, ok)
	assert.Empty(t, markers)

	_, _ = svc.AddPlace(ctx, 1, domain.NewPlace{Name: "A", Location: domain.LatLng{Lat: 10, Lng: 20}})
	_, _ = svc.AddPlace(ctx, 3, domain.NewPlace{Name: "B", Location: domain.LatLng{Lat: -5, Lng: 30}})

	markers, bounds, ok := svc.Markers(ctx)

	require.True(t, ok)
	require.Len(t, markers, 2)
	assert.Equal(t, "A", markers[0].Name)
	assert.Equal(t, domain.LatLng{Lat: 10, Lng: 30}, bounds.Northeast)
	assert.Equal(t, domain.LatLng{Lat: -5, Lng: 20}, bounds.Southwest)
}

func TestItineraryService_Export(t *testing.T) {
	svc := newService(t, &mockItineraryRepo{}, nil)
	ctx := context.Background()
	_, _ = svc.AddPlace(ctx, 2, museum())

	rows := svc.Export(ctx)

	require.Len(t, rows, 3)
	assert.Equal(t, "Museum", rows[1].PlaceName)
	assert.Equal(t, "June Trip", rows[0].ItineraryTitle)
}

// TestItineraryService_ConcurrentAdds checks that the service lock keeps the
// store consistent when many requests arrive at once. Run with -race.
func TestItineraryService_ConcurrentAdds(t *testing.T) {
	svc := newService(t, &mockItineraryRepo{}, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			_, err := svc.AddPlace(ctx, day, museum())
			assert.NoError(t, err)
		}(i%3 + 1)
	}
	wg.Wait()

	assert.Equal(t, 50, svc.Current(ctx).PlaceCount())
}
