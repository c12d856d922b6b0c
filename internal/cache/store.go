package cache

import (
	"encoding/json"
	"errors"
)

// Common cache errors.
var (
	ErrNotFound   = errors.New("cache entry not found")
	ErrExpired    = errors.New("cache entry expired")
	ErrInvalidKey = errors.New("cache key cannot be empty")
	ErrDisabled   = errors.New("cache is disabled")
)

// Store is the contract shared by both cache tiers.
//
// Get returns ErrNotFound for a missing key and ErrExpired for a key whose
// entry is past its TTL; an expired read removes the entry from the backing
// store before returning. Set overwrites any existing entry for the key.
type Store interface {
	Get(key string) (*Entry, error)
	Set(key string, data json.RawMessage, ttlSeconds int) error
	Delete(key string) error
	Clear() error
}

// Disabled is a Store that always misses and drops writes. It stands in for
// either tier when caching is turned off.
type Disabled struct{}

// Get always reports a disabled cache.
func (Disabled) Get(string) (*Entry, error) { return nil, ErrDisabled }

// Set drops the write.
func (Disabled) Set(string, json.RawMessage, int) error { return ErrDisabled }

// Delete is a no-op.
func (Disabled) Delete(string) error { return ErrDisabled }

// Clear is a no-op.
func (Disabled) Clear() error { return ErrDisabled }
