package cache

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry(t *testing.T) {
	key := "test-key"
	data := json.RawMessage(`{"foo":"bar"}`)
	entry := NewEntry(key, data, 60)

	assert.Equal(t, key, entry.Key)
	assert.Equal(t, data, entry.Data)
	assert.False(t, entry.IsExpired())
	assert.LessOrEqual(t, entry.Age(), time.Second)

	t.Run("Expiration", func(t *testing.T) {
		entry.ExpiresAt = time.Now().Add(-1 * time.Second)
		assert.True(t, entry.IsExpired())
	})

	t.Run("JSON", func(t *testing.T) {
		entry := NewEntry(key, data, 60)
		encoded, err := json.Marshal(entry)
		require.NoError(t, err)

		var decoded Entry
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.Equal(t, entry.Key, decoded.Key)
		assert.Equal(t, entry.TTLSeconds, decoded.TTLSeconds)
		assert.Equal(t, entry.ExpiresAt.Format(time.RFC3339), decoded.ExpiresAt.Format(time.RFC3339))
	})
}

func TestGenerateKey(t *testing.T) {
	params := KeyParams{
		Operation:  "search",
		Source:     "HomeScout",
		Location:   "Austin, TX",
		MinPrice:   100000,
		MaxPrice:   500000,
		MaxResults: 20,
	}

	key1, err := GenerateKey(params)
	require.NoError(t, err)
	key2, err := GenerateKey(params)
	require.NoError(t, err)

	assert.Equal(t, key1, key2, "identical params must produce identical keys")
	assert.Len(t, key1, 64, "key should be a SHA256 hex digest")

	t.Run("DifferentParams", func(t *testing.T) {
		other := params
		other.Location = "Dallas, TX"
		otherKey, err := GenerateKey(other)
		require.NoError(t, err)
		assert.NotEqual(t, key1, otherKey)
	})

	t.Run("SeparatorInArgument", func(t *testing.T) {
		// Argument text that would alias under naive string joining.
		a, err := GenerateKey(KeyParams{Operation: "search", Source: "x", Location: "a:b"})
		require.NoError(t, err)
		b, err := GenerateKey(KeyParams{Operation: "search", Source: "x:a", Location: "b"})
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("EmptyOperation", func(t *testing.T) {
		_, err := GenerateKey(KeyParams{Source: "x"})
		assert.ErrorIs(t, err, ErrEmptyOperation)
	})
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	data := json.RawMessage(`"cached"`)

	require.NoError(t, store.Set("k", data, 60))

	entry, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, data, entry.Data)

	t.Run("Miss", func(t *testing.T) {
		_, err := store.Get("absent")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("EmptyKey", func(t *testing.T) {
		_, err := store.Get("")
		assert.ErrorIs(t, err, ErrInvalidKey)
		assert.ErrorIs(t, store.Set("", data, 60), ErrInvalidKey)
	})

	t.Run("LazyExpiry", func(t *testing.T) {
		require.NoError(t, store.Set("expiring", data, 60))

		// Force expiry rather than sleeping.
		v, ok := store.backing.Get("expiring")
		require.True(t, ok)
		v.(*Entry).ExpiresAt = time.Now().Add(-time.Second)

		_, err := store.Get("expiring")
		assert.ErrorIs(t, err, ErrExpired)

		// The expired read must have removed the backing slot.
		_, ok = store.backing.Get("expiring")
		assert.False(t, ok)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Set("a", data, 60))
		require.NoError(t, store.Clear())
		assert.Zero(t, store.Count())
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					_ = store.Set("shared", data, 60)
					_, _ = store.Get("shared")
				}
			}()
		}
		wg.Wait()
	})
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	data := json.RawMessage(`{"price":300000}`)

	require.NoError(t, store.Set("k", data, 60))

	entry, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, data, entry.Data)

	t.Run("EmptyDirectory", func(t *testing.T) {
		_, err := NewFileStore("")
		assert.Error(t, err)
	})

	t.Run("Miss", func(t *testing.T) {
		_, err := store.Get("absent")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("NoTempFilesLeftBehind", func(t *testing.T) {
		matches, globErr := filepath.Glob(filepath.Join(dir, "*.tmp"))
		require.NoError(t, globErr)
		assert.Empty(t, matches)
	})

	t.Run("LazyExpiryDeletesFile", func(t *testing.T) {
		require.NoError(t, store.Set("expiring", data, 1))

		path := store.keyToFilePath("expiring")
		_, statErr := os.Stat(path)
		require.NoError(t, statErr)

		time.Sleep(1100 * time.Millisecond)

		_, err := store.Get("expiring")
		assert.ErrorIs(t, err, ErrExpired)

		_, statErr = os.Stat(path)
		assert.True(t, os.IsNotExist(statErr), "expired read must delete the entry file")
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Set("k", json.RawMessage(`1`), 60))
		require.NoError(t, store.Set("k", json.RawMessage(`2`), 60))
		entry, err := store.Get("k")
		require.NoError(t, err)
		assert.Equal(t, json.RawMessage(`2`), entry.Data)
	})

	t.Run("CleanupExpired", func(t *testing.T) {
		require.NoError(t, store.Set("stale", data, 1))
		require.NoError(t, store.Set("fresh", data, 600))
		time.Sleep(1100 * time.Millisecond)

		require.NoError(t, store.CleanupExpired())

		_, err := store.Get("stale")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = store.Get("fresh")
		assert.NoError(t, err)
	})

	t.Run("ClearAndCount", func(t *testing.T) {
		require.NoError(t, store.Set("a", data, 60))
		count, err := store.Count()
		require.NoError(t, err)
		assert.Positive(t, count)

		require.NoError(t, store.Clear())
		count, err = store.Count()
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	calls := 0
	supplier := func(context.Context) (string, error) {
		calls++
		return "fresh", nil
	}

	value, err := Fetch(ctx, store, "k", 60, supplier)
	require.NoError(t, err)
	assert.Equal(t, "fresh", value)
	assert.Equal(t, 1, calls)

	t.Run("HitSkipsSupplier", func(t *testing.T) {
		value, err := Fetch(ctx, store, "k", 60, supplier)
		require.NoError(t, err)
		assert.Equal(t, "fresh", value)
		assert.Equal(t, 1, calls, "cached call must not reach the supplier")
	})

	t.Run("SupplierError", func(t *testing.T) {
		wantErr := errors.New("boom")
		_, err := Fetch(ctx, store, "other", 60, func(context.Context) (string, error) {
			return "", wantErr
		})
		assert.ErrorIs(t, err, wantErr)

		// A failed supply must not be cached.
		_, err = store.Get("other")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("DisabledStoreFallsThrough", func(t *testing.T) {
		before := calls
		value, err := Fetch(ctx, Disabled{}, "k", 60, supplier)
		require.NoError(t, err)
		assert.Equal(t, "fresh", value)
		assert.Equal(t, before+1, calls)
	})

	t.Run("UndecodableEntryRefetches", func(t *testing.T) {
		require.NoError(t, store.Set("bad", json.RawMessage(`{"not":"an int"}`), 60))
		value, err := Fetch(ctx, store, "bad", 60, func(context.Context) (int, error) {
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, value)
	})
}
