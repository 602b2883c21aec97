package factory_test

import (
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/maloquacious/mapedcfg/internal/store"
	"github.com/maloquacious/mapedcfg/internal/store/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range factory.Kinds {
		got, err := factory.ParseKind(" " + string(k) + " ")
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := factory.ParseKind("SQLite")
	require.NoError(t, err)
	assert.Equal(t, factory.KindSQLite, got)

	_, err = factory.ParseKind("etcd")
	assert.Error(t, err)
}

func TestLocation(t *testing.T) {
	explicit := filepath.Join(t.TempDir(), "s.db")
	assert.Equal(t, explicit, factory.Location(factory.Options{Kind: factory.KindSQLite, Path: explicit}))

	loc := factory.Location(factory.Options{Kind: factory.KindYAML, Profile: "iso"})
	assert.Equal(t, "iso.yaml", filepath.Base(loc))

	loc = factory.Location(factory.Options{Kind: factory.KindBadger})
	assert.Equal(t, store.DefaultProfile+".badger", filepath.Base(loc))

	assert.Equal(t, "localhost:6379/mapedcfg:default",
		factory.Location(factory.Options{Kind: factory.KindRedis, RedisAddr: "localhost:6379"}))
	assert.Empty(t, factory.Location(factory.Options{Kind: factory.KindMemory}))
}

func TestOpenEachKind(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		opts factory.Options
	}{
		{"memory", factory.Options{Kind: factory.KindMemory}},
		{"sqlite", factory.Options{Kind: factory.KindSQLite, Path: filepath.Join(dir, "nested", "settings.db")}},
		{"yaml", factory.Options{Kind: factory.KindYAML, Path: filepath.Join(dir, "settings.yaml")}},
		{"badger", factory.Options{Kind: factory.KindBadger, Path: filepath.Join(dir, "badger")}},
		{"redis", factory.Options{Kind: factory.KindRedis, RedisAddr: mr.Addr(), Profile: "test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := factory.Open(tt.opts)
			require.NoError(t, err)

			require.NoError(t, b.Set("ui.theme", "dark"))
			require.NoError(t, b.Flush())
			v, ok, err := b.Get("ui.theme")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "dark", v)
			require.NoError(t, b.Close())
		})
	}
}

func TestOpenRejectsInvalidProfile(t *testing.T) {
	for _, kind := range factory.Kinds {
		_, err := factory.Open(factory.Options{Kind: kind, Path: filepath.Join(t.TempDir(), "s"), Profile: "work:iso"})
		assert.ErrorIs(t, err, store.ErrInvalidProfile, kind)
	}
}

func TestOpenUnknownKind(t *testing.T) {
	_, err := factory.Open(factory.Options{Kind: "etcd"})
	assert.Error(t, err)
}

func TestFileBacked(t *testing.T) {
	assert.True(t, factory.FileBacked(factory.KindSQLite))
	assert.True(t, factory.FileBacked(factory.KindYAML))
	assert.False(t, factory.FileBacked(factory.KindBadger))
	assert.False(t, factory.FileBacked(factory.KindRedis))
}
