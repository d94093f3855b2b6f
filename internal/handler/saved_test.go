package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
	"github.com/pkordes/itinerary-planner/backend/internal/handler"
)

func TestSaveItinerary_200(t *testing.T) {
	svc := &mockItineraryServicer{
		save: func(_ context.Context) (domain.Itinerary, error) { return itineraryFixture(), nil },
	}

	rec := do(t, newHTTPHandler(svc), http.MethodPost, "/itinerary/save", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.Itinerary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "it-1", resp.Id)
}

func TestListItineraries_200_DefaultPagination(t *testing.T) {
	var gotParams domain.PaginationParams
	svc := &mockItineraryServicer{
		listSaved: func(_ context.Context, p domain.PaginationParams) ([]domain.Summary, int, error) {
			gotParams = p
			return []domain.Summary{domain.Summarize(itineraryFixture())}, 1, nil
		},
	}

	rec := do(t, newHTTPHandler(svc), http.MethodGet, "/itineraries", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, gotParams)

	var resp handler.SummaryList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Lisbon", resp.Data[0].Title)
	assert.Equal(t, 1, resp.Data[0].PlaceCount)
	assert.Equal(t, handler.Pagination{Page: 1, Limit: 20, Total: 1}, resp.Pagination)
}

func TestListItineraries_200_CustomPagination(t *testing.T) {
	var gotParams domain.PaginationParams
	svc := &mockItineraryServicer{
		listSaved: func(_ context.Context, p domain.PaginationParams) ([]domain.Summary, int, error) {
			gotParams = p
			return []domain.Summary{}, 7, nil
		},
	}

	rec := do(t, newHTTPHandler(svc), http.MethodGet, "/itineraries?page=3&limit=500", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 3, Limit: 100}, gotParams)

	var resp handler.SummaryList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotNil(t, resp.Data)
	assert.Equal(t, 7, resp.Pagination.Total)
}

func TestListItineraries_422_BadPage(t *testing.T) {
	svc := &mockItineraryServicer{}

	rec := do(t, newHTTPHandler(svc), http.MethodGet, "/itineraries?page=two", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "page must be an integer", decodeError(t, rec).Error.Message)
}

func TestLoadItinerary_200(t *testing.T) {
	var gotID string
	svc := &mockItineraryServicer{
		load: func(_ context.Context, id string) (domain.Itinerary, error) {
			gotID = id
			return itineraryFixture(), nil
		},
	}

	rec := do(t, newHTTPHandler(svc), http.MethodPost, "/itineraries/it-1/load", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "it-1", gotID)
}

func TestLoadItinerary_404(t *testing.T) {
	svc := &mockItineraryServicer{
		load: func(_ context.Context, _ string) (domain.Itinerary, error) {
			return domain.Itinerary{}, fmt.Errorf("repo.itineraryRepo.LoadByID: %w", domain.ErrNotFound)
		},
	}

	rec := do(t, newHTTPHandler(svc), http.MethodPost, "/itineraries/missing/load", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Error.Code)
}

func TestDeleteItinerary_204(t *testing.T) {
	var gotID string
	svc := &mockItineraryServicer{
		deleteSaved: func(_ context.Context, id string) error {
			gotID = id
			return nil
		},
	}

	rec := do(t, newHTTPHandler(svc), http.MethodDelete, "/itineraries/it-1", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "it-1", gotID)
}
