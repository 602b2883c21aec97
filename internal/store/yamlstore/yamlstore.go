// Package yamlstore keeps settings as a flat YAML document on disk.
// Writes are buffered in memory until Flush replaces the file atomically.
package yamlstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/renameio/v2"
	"github.com/maloquacious/mapedcfg/internal/store"
	"gopkg.in/yaml.v3"
)

// Ext is the file extension used for YAML settings stores.
const Ext = ".yaml"

// Store implements store.Backend on a YAML file.
type Store struct {
	path string

	mu      sync.Mutex
	values  map[string]any
	changed bool
	closed  bool
}

var _ store.Backend = (*Store)(nil)

// Open loads path if it exists; a missing file yields an empty store that
// is created on the first Flush.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: map[string]any{}}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	if s.values == nil {
		s.values = map[string]any{}
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string { return s.path }

func (s *Store) Get(key string) (any, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false, store.ErrClosed
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	s.values[key] = value
	s.changed = true
	return nil
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	if _, ok := s.values[key]; ok {
		delete(s.values, key)
		s.changed = true
	}
	return nil
}

func (s *Store) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, store.ErrClosed
	}
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Flush writes the document if anything changed since the last flush.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	if !s.changed {
		return nil
	}
	if err := s.write(); err != nil {
		return err
	}
	s.changed = false
	return nil
}

// write replaces the file with fsync + rename so a crash never leaves a
// half-written document behind.
func (s *Store) write() error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	pending, err := renameio.NewPendingFile(s.path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending settings file: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("write settings data: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace settings file: %w", err)
	}
	return nil
}

// Close discards unflushed writes; callers flush first.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
