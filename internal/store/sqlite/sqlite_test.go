package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/maloquacious/mapedcfg/internal/store"
	"github.com/maloquacious/mapedcfg/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAt(t *testing.T, path string) *Store {
	t.Helper()
	s := New(path)
	require.NoError(t, s.Open())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBackend(t *testing.T) {
	storetest.Run(t, storetest.Opener{
		Open: func(t *testing.T) store.Backend {
			return openAt(t, filepath.Join(t.TempDir(), "default.db"))
		},
		Reopen: func(t *testing.T, b store.Backend) store.Backend {
			path := b.(*Store).dbPath
			require.NoError(t, b.Close())
			return openAt(t, path)
		},
	})
}

func TestNotOpened(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "default.db"))

	_, _, err := s.Get("version")
	assert.ErrorIs(t, err, errNotOpened)
	assert.ErrorIs(t, s.Set("version", 1), errNotOpened)
	assert.ErrorIs(t, s.Flush(), errNotOpened)
	assert.NoError(t, s.Close())
}

func TestCorruptRow(t *testing.T) {
	s := openAt(t, filepath.Join(t.TempDir(), "default.db"))
	_, err := s.db.Exec(`INSERT INTO settings (key, value, updated_at) VALUES ('ui.theme', 'not json', 0)`)
	require.NoError(t, err)

	_, _, err = s.Get("ui.theme")
	assert.Error(t, err)
}
