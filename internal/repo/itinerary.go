package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
)

// DefaultKey is the KV key the itinerary collection is stored under.
const DefaultKey = "itineraries"

// ItineraryRepo defines the persistence operations for saved itineraries.
// The service layer depends on this interface, not the KV-backed implementation,
// which allows the service to be unit-tested with a mock.
//
// The whole collection is read and written as one blob: there are no partial
// writes, the last writer wins, and nothing is locked.
type ItineraryRepo interface {
	// Save replaces the stored itinerary with the same ID, or appends it.
	Save(ctx context.Context, it domain.Itinerary) error

	// LoadAll returns every saved itinerary in stored order. A missing or
	// malformed blob yields an empty slice rather than an error.
	LoadAll(ctx context.Context) ([]domain.Itinerary, error)

	// LoadByID returns a single saved itinerary.
	// Returns domain.ErrNotFound if no itinerary with that ID is stored.
	LoadByID(ctx context.Context, id string) (domain.Itinerary, error)

	// DeleteByID removes a saved itinerary. Deleting an unknown ID is a no-op.
	DeleteByID(ctx context.Context, id string) error
}

// kvItineraryRepo is the KV implementation of ItineraryRepo.
type kvItineraryRepo struct {
	kv  KV
	key string
	log *slog.Logger
}

// NewItineraryRepo constructs an ItineraryRepo storing its collection under key.
// An empty key means DefaultKey; a nil logger means slog.Default().
func NewItineraryRepo(kv KV, key string, log *slog.Logger) ItineraryRepo {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = slog.Default()
	}
	return &kvItineraryRepo{kv: kv, key: key, log: log}
}

// Save loads the collection, upserts it by ID, and writes the collection back.
func (r *kvItineraryRepo) Save(ctx context.Context, it domain.Itinerary) error {
	records, err := r.load(ctx)
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Save: %w", err)
	}

	rec := toRecord(it)
	replaced := false
	for i := range records {
		if records[i].ID == it.ID {
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}

	if err := r.store(ctx, records); err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Save: %w", err)
	}
	return nil
}

// LoadAll returns all saved itineraries.
func (r *kvItineraryRepo) LoadAll(ctx context.Context) ([]domain.Itinerary, error) {
	records, err := r.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.LoadAll: %w", err)
	}
	out := make([]domain.Itinerary, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

// LoadByID returns the saved itinerary with the given ID.
func (r *kvItineraryRepo) LoadByID(ctx context.Context, id string) (domain.Itinerary, error) {
	records, err := r.load(ctx)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.LoadByID: %w", err)
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec.toDomain(), nil
		}
	}
	return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.LoadByID: %w", domain.ErrNotFound)
}

// DeleteByID removes the saved itinerary with the given ID. When nothing
// matches, the stored blob is not rewritten.
func (r *kvItineraryRepo) DeleteByID(ctx context.Context, id string) error {
	records, err := r.load(ctx)
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.DeleteByID: %w", err)
	}

	kept := records[:0]
	for _, rec := range records {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return nil
	}

	if err := r.store(ctx, kept); err != nil {
		return fmt.Errorf("repo.ItineraryRepo.DeleteByID: %w", err)
	}
	return nil
}

// load reads and decodes the collection. A missing key or an undecodable
// blob is treated as an empty collection; only KV failures are returned.
func (r *kvItineraryRepo) load(ctx context.Context) ([]itineraryRecord, error) {
	data, err := r.kv.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []itineraryRecord{}, nil
		}
		return nil, err
	}

	var records []itineraryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		r.log.WarnContext(ctx, "stored itineraries are malformed; treating as empty",
			"key", r.key, "error", err)
		return []itineraryRecord{}, nil
	}
	for _, rec := range records {
		if err := rec.validate(); err != nil {
			r.log.WarnContext(ctx, "stored itineraries are malformed; treating as empty",
				"key", r.key, "id", rec.ID, "error", err)
			return []itineraryRecord{}, nil
		}
	}
	return records, nil
}

// store encodes and writes the whole collection.
func (r *kvItineraryRepo) store(ctx context.Context, records []itineraryRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return r.kv.Put(ctx, r.key, data)
}
