// Package cache persists the last observed local version between runs.
package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DefaultPath is the cache file location relative to the repo root.
const DefaultPath = "./lib-version-check/prev.txt"

// Store holds a single version string. Read reports ok=false when nothing has
// been recorded yet.
type Store interface {
	Read() (value string, ok bool, err error)
	Write(value string) error
}

// FileStore keeps the value in a plain text file. The file content is
// returned verbatim; callers decide whether surrounding whitespace matters.
type FileStore struct {
	Path string
}

func (s FileStore) Read() (string, bool, error) {
	data, err := os.ReadFile(s.Path) // #nosec G304 -- cache path is operator supplied
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read cache %s: %w", s.Path, err)
	}
	return string(data), true, nil
}

// Write replaces the file content with value, without a trailing newline.
func (s FileStore) Write(value string) error {
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.Path, []byte(value), 0o644); err != nil { // #nosec G306 -- cache is not sensitive
		return fmt.Errorf("write cache %s: %w", s.Path, err)
	}
	return nil
}

func (s FileStore) String() string { return s.Path }

// MemStore is an in-memory Store.
type MemStore struct {
	mu     sync.Mutex
	value  string
	ok     bool
	writes int
}

// NewMemStore returns a MemStore seeded with value.
func NewMemStore(value string) *MemStore {
	return &MemStore{value: value, ok: true}
}

func (s *MemStore) Read() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.ok, nil
}

func (s *MemStore) Write(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value, s.ok = value, true
	s.writes++
	return nil
}

// Writes reports how many times Write was called.
func (s *MemStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *MemStore) String() string { return "memory" }
