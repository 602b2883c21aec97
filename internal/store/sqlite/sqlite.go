package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/maloquacious/mapedcfg/internal/store"
	_ "modernc.org/sqlite"
)

var errNotOpened = errors.New("database not opened")

// Store implements store.Backend using modernc.org/sqlite.
type Store struct {
	dbPath string
	db     *sql.DB
}

var _ store.Backend = (*Store)(nil)

// New creates a new Store. Call Open before use.
func New(dbPath string) *Store {
	return &Store{dbPath: dbPath}
}

// Open opens the SQLite database with safe defaults and creates the
// settings table if needed.
func (s *Store) Open() error {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Apply safe defaults
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(initialSchema); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	s.db = db
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) Get(key string) (any, bool, error) {
	if s.db == nil {
		return nil, false, errNotOpened
	}

	var data string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query %q: %w", key, err)
	}

	v, err := store.DecodeValue([]byte(data))
	if err != nil {
		return nil, false, fmt.Errorf("key %q: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) Set(key string, value any) error {
	if s.db == nil {
		return errNotOpened
	}

	data, err := store.EncodeValue(value)
	if err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}

	_, err = s.db.Exec(`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, strftime('%s', 'now'))
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`, key, string(data))
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	if s.db == nil {
		return errNotOpened
	}
	if _, err := s.db.Exec(`DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) Keys() ([]string, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	rows, err := s.db.Query(`SELECT key FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Flush checkpoints the write-ahead log into the main database file.
func (s *Store) Flush() error {
	if s.db == nil {
		return errNotOpened
	}
	if _, err := s.db.Exec(`PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("failed to checkpoint database: %w", err)
	}
	return nil
}
