package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// KeyParams identifies one cached operation and its argument values. Keys
// are derived from the canonical JSON encoding of this struct, so an
// argument whose text contains any separator can never collide with
// another key.
type KeyParams struct {
	// Operation names the cached call, e.g. "search" or "details".
	Operation string `json:"operation"`

	// Source is the adapter name the call is bound to.
	Source string `json:"source"`

	Location     string `json:"location,omitempty"`
	PropertyType string `json:"property_type,omitempty"`
	MinPrice     int    `json:"min_price,omitempty"`
	MaxPrice     int    `json:"max_price,omitempty"`
	MaxResults   int    `json:"max_results,omitempty"`

	// Extra carries operation-specific values, e.g. a property ID for
	// detail fetches. Map keys are sorted by the JSON encoder.
	Extra map[string]string `json:"extra,omitempty"`
}

// ErrEmptyOperation is returned when key params have no operation name.
var ErrEmptyOperation = errors.New("cache key operation cannot be empty")

// GenerateKey produces a deterministic SHA256 hex key for the given
// parameters. Identical params always produce identical keys.
func GenerateKey(params KeyParams) (string, error) {
	if params.Operation == "" {
		return "", ErrEmptyOperation
	}

	data, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("failed to marshal key params: %w", err)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
