package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// entryFileExtension is the file extension used for persisted entries.
const entryFileExtension = ".json"

// FileStore is the persistent cache tier. Each key maps to one
// content-addressed JSON file under the store directory; the value and its
// expiry are serialized together. Safe for concurrent access within a
// process: writes go through a temp file plus rename so readers never see
// a partially written entry.
type FileStore struct {
	directory string

	// mu serializes file operations for the same store.
	mu sync.RWMutex
}

// NewFileStore creates a persistent tier rooted at directory, creating the
// directory if needed.
func NewFileStore(directory string) (*FileStore, error) {
	if directory == "" {
		return nil, errors.New("cache directory cannot be empty")
	}

	if err := os.MkdirAll(directory, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &FileStore{directory: directory}, nil
}

// Get retrieves an entry by key. An expired entry is removed from disk
// before ErrExpired is returned.
func (s *FileStore) Get(key string) (*Entry, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	s.mu.RLock()
	filePath := s.keyToFilePath(key)
	data, err := os.ReadFile(filePath) //nolint:gosec // path is derived from a hash under our directory
	s.mu.RUnlock()

	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var entry Entry
	if unmarshalErr := json.Unmarshal(data, &entry); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", unmarshalErr)
	}

	if entry.IsExpired() {
		s.mu.Lock()
		_ = os.Remove(filePath)
		s.mu.Unlock()
		return nil, ErrExpired
	}

	return &entry, nil
}

// Set persists data under key with the given TTL, overwriting any existing
// entry. The write is atomic: temp file first, then rename.
func (s *FileStore) Set(key string, data json.RawMessage, ttlSeconds int) error {
	if key == "" {
		return ErrInvalidKey
	}

	entry := NewEntry(key, data, ttlSeconds)
	entryData, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := s.keyToFilePath(key)
	tempPath := filePath + ".tmp"
	if writeErr := os.WriteFile(tempPath, entryData, 0600); writeErr != nil {
		return fmt.Errorf("failed to write cache file: %w", writeErr)
	}

	if renameErr := os.Rename(tempPath, filePath); renameErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache file: %w", renameErr)
	}

	return nil
}

// Delete removes an entry by key. Deleting a missing key is not an error.
func (s *FileStore) Delete(key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.keyToFilePath(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}

	return nil
}

// Clear removes every cache entry file from the store directory.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, dirEntry := range entries {
		if dirEntry.IsDir() || filepath.Ext(dirEntry.Name()) != entryFileExtension {
			continue
		}
		filePath := filepath.Join(s.directory, dirEntry.Name())
		if removeErr := os.Remove(filePath); removeErr != nil {
			return fmt.Errorf("failed to remove cache file %s: %w", dirEntry.Name(), removeErr)
		}
	}

	return nil
}

// CleanupExpired removes every expired entry file. There is no background
// sweep; call this as an explicit maintenance pass when disk growth matters.
func (s *FileStore) CleanupExpired() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, dirEntry := range entries {
		if dirEntry.IsDir() || filepath.Ext(dirEntry.Name()) != entryFileExtension {
			continue
		}

		filePath := filepath.Join(s.directory, dirEntry.Name())
		data, readErr := os.ReadFile(filePath) //nolint:gosec // paths come from our own directory listing
		if readErr != nil {
			continue
		}

		var entry Entry
		if unmarshalErr := json.Unmarshal(data, &entry); unmarshalErr != nil {
			continue
		}

		if entry.IsExpired() {
			_ = os.Remove(filePath)
		}
	}

	return nil
}

// Count returns the number of entry files, including expired ones.
func (s *FileStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	count := 0
	for _, dirEntry := range entries {
		if !dirEntry.IsDir() && filepath.Ext(dirEntry.Name()) == entryFileExtension {
			count++
		}
	}

	return count, nil
}

// Size returns the total size of all entry files in bytes.
func (s *FileStore) Size() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var totalSize int64
	for _, dirEntry := range entries {
		if dirEntry.IsDir() || filepath.Ext(dirEntry.Name()) != entryFileExtension {
			continue
		}
		info, infoErr := dirEntry.Info()
		if infoErr != nil {
			continue
		}
		totalSize += info.Size()
	}

	return totalSize, nil
}

// Directory returns the store's root directory.
func (s *FileStore) Directory() string {
	return s.directory
}

// keyToFilePath maps a key to its content-addressed file. Keys are hashed
// so arbitrary key text stays filesystem safe.
func (s *FileStore) keyToFilePath(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.directory, hex.EncodeToString(sum[:])+entryFileExtension)
}
