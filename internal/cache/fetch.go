package cache

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/logging"
)

// Supplier produces the value for a cache miss.
type Supplier[T any] func(ctx context.Context) (T, error)

// Fetch is the cache-aside helper wrapping an expensive operation.
//
// On a hit the cached value is returned and the supplier is never invoked.
// On a miss the supplier runs, its result is stored with the given TTL, and
// the result is returned. Every cache failure (read, decode, write) is
// logged and treated as a miss, so caching can never break the wrapped
// operation.
func Fetch[T any](ctx context.Context, store Store, key string, ttlSeconds int, supply Supplier[T]) (T, error) {
	log := logging.FromContext(ctx)

	var zero T

	entry, err := store.Get(key)
	switch {
	case err == nil:
		var value T
		if decodeErr := json.Unmarshal(entry.Data, &value); decodeErr == nil {
			log.Debug().
				Str("component", "cache").
				Str("key", key).
				Dur("age", entry.Age()).
				Msg("cache hit")
			return value, nil
		}
		// Undecodable entry: drop it and fall through to the supplier.
		log.Warn().
			Str("component", "cache").
			Str("key", key).
			Msg("cache entry undecodable, refetching")
		_ = store.Delete(key)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrExpired), errors.Is(err, ErrDisabled):
		// Plain miss.
	default:
		log.Warn().
			Err(err).
			Str("component", "cache").
			Str("key", key).
			Msg("cache read failed, treating as miss")
	}

	value, err := supply(ctx)
	if err != nil {
		return zero, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().
			Err(err).
			Str("component", "cache").
			Str("key", key).
			Msg("result not cacheable")
		return value, nil
	}

	if setErr := store.Set(key, data, ttlSeconds); setErr != nil && !errors.Is(setErr, ErrDisabled) {
		log.Warn().
			Err(setErr).
			Str("component", "cache").
			Str("key", key).
			Msg("cache write failed")
	}

	return value, nil
}
