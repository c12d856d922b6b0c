package cache

import (
	"encoding/json"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is the volatile cache tier. It lives for the process lifetime
// and is safe for concurrent readers and writers.
//
// The backing store is a go-cache instance with its own expiration and
// janitor disabled: expiry stays lazy and entry-owned, so a read past the
// TTL deletes the slot and misses, and no background sweep ever runs.
type MemoryStore struct {
	backing *gocache.Cache
}

// NewMemoryStore creates an empty volatile tier.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		backing: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get retrieves an entry by key, deleting it first when expired.
func (s *MemoryStore) Get(key string) (*Entry, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	v, ok := s.backing.Get(key)
	if !ok {
		return nil, ErrNotFound
	}

	entry, ok := v.(*Entry)
	if !ok {
		// Foreign value in the slot; drop it and miss.
		s.backing.Delete(key)
		return nil, ErrNotFound
	}

	if entry.IsExpired() {
		s.backing.Delete(key)
		return nil, ErrExpired
	}

	return entry, nil
}

// Set stores data under key with the given TTL, replacing any prior entry.
func (s *MemoryStore) Set(key string, data json.RawMessage, ttlSeconds int) error {
	if key == "" {
		return ErrInvalidKey
	}

	s.backing.Set(key, NewEntry(key, data, ttlSeconds), gocache.NoExpiration)
	return nil
}

// Delete removes an entry. Deleting a missing key is not an error.
func (s *MemoryStore) Delete(key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	s.backing.Delete(key)
	return nil
}

// Clear drops every entry.
func (s *MemoryStore) Clear() error {
	s.backing.Flush()
	return nil
}

// Count returns the number of entries currently held, including entries
// that have expired but not yet been read.
func (s *MemoryStore) Count() int {
	return s.backing.ItemCount()
}
