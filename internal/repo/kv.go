// Package repo contains all storage access logic for the itinerary planner.
// Itineraries are persisted as one serialized collection under a single key
// of a KV store; each KV backend has its own file.
// No business logic lives here, only storage and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
)

// KV is a minimal key-value store holding opaque blobs.
type KV interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value in full.
	Put(ctx context.Context, key string, value []byte) error
}

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgKV is the Postgres implementation of KV, backed by the kv_store table.
type pgKV struct {
	db db
}

// NewPostgresKV constructs a KV backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresKV(db db) KV {
	return &pgKV{db: db}
}

// Get reads a single value by key.
func (k *pgKV) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM kv_store WHERE key = @key`

	var value string
	err := k.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repo.pgKV.Get: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.pgKV.Get: %w", err)
	}
	return []byte(value), nil
}

// Put upserts a value by key.
func (k *pgKV) Put(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO kv_store (key, value)
		VALUES (@key, @value)
		ON CONFLICT (key) DO UPDATE
		SET value      = EXCLUDED.value,
		    updated_at = now()`

	args := pgx.NamedArgs{
		"key":   key,
		"value": string(value),
	}
	if _, err := k.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.pgKV.Put: %w", err)
	}
	return nil
}

// memoryKV is an in-process KV. Values are copied on the way in and out.
type memoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKV returns an empty in-memory KV. Contents are lost when the
// process exits.
func NewMemoryKV() KV {
	return &memoryKV{data: make(map[string][]byte)}
}

func (k *memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	v, ok := k.data[key]
	if !ok {
		return nil, fmt.Errorf("repo.memoryKV.Get: %w", domain.ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (k *memoryKV) Put(_ context.Context, key string, value []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.data[key] = append([]byte(nil), value...)
	return nil
}
