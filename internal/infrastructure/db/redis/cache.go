package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jpsm83/notes2025back/internal/core/domain"
)

const (
	notesCacheKey   = "notes:all"
	defaultCacheTTL = time.Minute
)

// NotesCache is a read-through cache for the full notes listing. Entries are
// never invalidated on write; they simply age out after the TTL, so reads may
// trail writes by up to one TTL window.
type NotesCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewNotesCache creates a NotesCache wrapping the given Redis client.
func NewNotesCache(client *redis.Client, ttl time.Duration) *NotesCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &NotesCache{client: client, ttl: ttl}
}

// Get returns the cached listing and whether the key was present.
func (c *NotesCache) Get(ctx context.Context) ([]domain.NoteWithOwner, bool, error) {
	payload, err := c.client.Get(ctx, notesCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("notes cache get: %w", err)
	}

	var notes []domain.NoteWithOwner
	if err := json.Unmarshal(payload, &notes); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, false, nil
	}
	return notes, true, nil
}

// Set stores the listing with the fixed TTL.
func (c *NotesCache) Set(ctx context.Context, notes []domain.NoteWithOwner) error {
	payload, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("notes cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, notesCacheKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("notes cache set: %w", err)
	}
	return nil
}
