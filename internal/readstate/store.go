// Package readstate persists which notification ids have been read. The
// notification feed is rebuilt from scratch on every poll cycle, so read
// state only survives because ids are deterministic and this store remembers
// them across cycles and process runs.
package readstate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gestloc/gestloc/internal/log"
)

// maxAge is how long a read mark is kept. Source records older than this no
// longer generate notifications, so their marks are dead weight.
const maxAge = 30 * 24 * time.Hour

// Store manages persistence of read notification ids.
type Store struct {
	path    string
	entries map[string]time.Time
	mu      sync.RWMutex
}

// NewStore creates the store at ~/.cache/gestloc/read.json.
func NewStore() (*Store, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(cacheDir, "gestloc")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return NewStoreWithPath(filepath.Join(dir, "read.json")), nil
}

// NewStoreWithPath creates a store at the given path (for testing).
func NewStoreWithPath(path string) *Store {
	s := &Store{
		path:    path,
		entries: make(map[string]time.Time),
	}

	if err := s.load(); err != nil {
		log.Debug("could not load read state, starting fresh", "error", err)
	}
	s.prune()

	return s
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &s.entries)
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *Store) prune() {
	cutoff := time.Now().Add(-maxAge)
	for id, readAt := range s.entries {
		if readAt.Before(cutoff) {
			delete(s.entries, id)
		}
	}
}

// MarkRead records a notification id as read.
func (s *Store) MarkRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = time.Now()
	return s.save()
}

// MarkManyRead records several ids as read in one write.
func (s *Store) MarkManyRead(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for _, id := range ids {
		s.entries[id] = now
	}
	return s.save()
}

// IsRead reports whether the id has been marked read.
func (s *Store) IsRead(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[id]
	return ok
}

// Forget removes a read mark, making the id unread again.
func (s *Store) Forget(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return s.save()
}

// Clear removes all read marks.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]time.Time)
	return s.save()
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Count returns the number of read marks held.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
