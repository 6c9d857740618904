package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mmcdole/stacks/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketPreferences = []byte("preferences")
)

const keyTheme = "theme"

// PreferenceStore implements domain.PreferenceStore using BoltDB.
// It holds nothing but client-side preferences; entity data is never cached.
type PreferenceStore struct {
	db       *bolt.DB
	mu       sync.RWMutex // Protects memory cache
	fallback domain.Theme

	// In-memory cache, the only storage in memory-only mode
	cache map[string][]byte
}

// NewPreferenceStore opens (or creates) the preference file at path.
// fallback is returned by Theme until a theme has been saved.
func NewPreferenceStore(path string, fallback domain.Theme) (*PreferenceStore, error) {
	if path == "" {
		// Memory-only mode (no persistence)
		return &PreferenceStore{fallback: fallback, cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPreferences)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &PreferenceStore{db: db, fallback: fallback, cache: make(map[string][]byte)}, nil
}

func (s *PreferenceStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PreferenceStore) get(key string) ([]byte, bool) {
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return data, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketPreferences).Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if data == nil {
		return nil, false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return data, true
}

func (s *PreferenceStore) set(key string, value []byte) error {
	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPreferences).Put([]byte(key), value)
	})
}

// Theme returns the saved theme, or the fallback when none was saved
func (s *PreferenceStore) Theme() domain.Theme {
	data, ok := s.get(keyTheme)
	if !ok {
		return s.fallback
	}
	return domain.ParseTheme(string(data))
}

// SaveTheme persists the theme
func (s *PreferenceStore) SaveTheme(theme domain.Theme) error {
	return s.set(keyTheme, []byte(theme))
}

var _ domain.PreferenceStore = (*PreferenceStore)(nil)
