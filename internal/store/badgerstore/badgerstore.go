// Package badgerstore keeps settings in an embedded Badger database.
// Keys are namespaced by profile so several profiles can share one
// database directory.
package badgerstore

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/maloquacious/mapedcfg/internal/store"
)

// Store implements store.Backend on Badger.
type Store struct {
	db     *badger.DB
	prefix string

	closeOnce sync.Once
	closeErr  error
}

var _ store.Backend = (*Store)(nil)

// Open opens (or creates) the Badger database in dir. The profile must
// pass store.CheckProfile.
func Open(dir, profile string) (*Store, error) {
	return open(badger.DefaultOptions(dir).WithLogger(nil), profile)
}

// OpenInMemory opens a throwaway in-memory Badger database.
func OpenInMemory(profile string) (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil), profile)
}

func open(opts badger.Options, profile string) (*Store, error) {
	prefix, err := profilePrefix(profile)
	if err != nil {
		return nil, err
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store: %w", err)
	}
	return newStore(db, prefix), nil
}

// profilePrefix namespaces a profile's keys. Profile names cannot contain
// ':', so no prefix is a prefix of another.
func profilePrefix(profile string) (string, error) {
	if profile == "" {
		profile = store.DefaultProfile
	}
	if err := store.CheckProfile(profile); err != nil {
		return "", err
	}
	return "settings:" + profile + ":", nil
}

func newStore(db *badger.DB, prefix string) *Store {
	return &Store{db: db, prefix: prefix}
}

func (s *Store) key(k string) []byte { return []byte(s.prefix + k) }

func (s *Store) Get(key string) (any, bool, error) {
	var out any
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			v, err := store.DecodeValue(val)
			if err != nil {
				return err
			}
			out = v
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return out, true, nil
}

func (s *Store) Set(key string, value any) error {
	buf, err := store.EncodeValue(value)
	if err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key(key), buf)
	})
}

func (s *Store) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key(key))
	})
}

func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(s.prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, strings.TrimPrefix(string(it.Item().Key()), s.prefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}

// Flush syncs the value log to disk. In-memory databases have nothing to sync.
func (s *Store) Flush() error {
	if s.db.Opts().InMemory {
		return nil
	}
	if err := s.db.Sync(); err != nil {
		return fmt.Errorf("failed to sync badger store: %w", err)
	}
	return nil
}

// Close closes the database. Repeated calls return the first result.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}
