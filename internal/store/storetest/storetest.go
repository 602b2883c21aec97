// Package storetest holds conformance tests shared by every store.Backend
// implementation.
package storetest

import (
	"testing"

	"github.com/maloquacious/mapedcfg/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Opener returns a fresh, empty backend. Reopen, when not nil, closes b and
// opens the same underlying storage again so persistence can be checked.
type Opener struct {
	Open   func(t *testing.T) store.Backend
	Reopen func(t *testing.T, b store.Backend) store.Backend
}

// Run exercises the Backend contract.
func Run(t *testing.T, o Opener) {
	t.Run("missing key", func(t *testing.T) {
		b := o.Open(t)
		v, ok, err := b.Get("paths.cdda_root")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("set get overwrite", func(t *testing.T) {
		b := o.Open(t)
		require.NoError(t, b.Set("ui.theme", "dark"))
		require.NoError(t, b.Set("ui.theme", "light"))
		v, ok, err := b.Get("ui.theme")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "light", v)
	})

	t.Run("value shapes", func(t *testing.T) {
		b := o.Open(t)
		require.NoError(t, b.Set("editor.grid_visible", false))
		require.NoError(t, b.Set("editor.zoom_level", 150))
		require.NoError(t, b.Set("paths.recent_files", []string{"/a.json", "/b.json"}))
		require.NoError(t, b.Set("multi_z_level.brightness_step", 12.5))
		require.NoError(t, b.Set("type_slot_mapping", map[string]string{"terrain": "TERRAIN", "ITEM": "ITEMS"}))

		v, _, err := b.Get("editor.grid_visible")
		require.NoError(t, err)
		assert.Equal(t, false, v)

		v, _, err = b.Get("editor.zoom_level")
		require.NoError(t, err)
		assert.EqualValues(t, 150, toFloat(t, v))

		v, _, err = b.Get("paths.recent_files")
		require.NoError(t, err)
		assert.Equal(t, []string{"/a.json", "/b.json"}, toStrings(t, v))

		v, _, err = b.Get("multi_z_level.brightness_step")
		require.NoError(t, err)
		assert.Equal(t, 12.5, toFloat(t, v))

		v, _, err = b.Get("type_slot_mapping")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"terrain": "TERRAIN", "ITEM": "ITEMS"}, toStringMap(t, v))
	})

	t.Run("delete and keys", func(t *testing.T) {
		b := o.Open(t)
		require.NoError(t, b.Set("version", 1))
		require.NoError(t, b.Set("ui.theme", "dark"))
		require.NoError(t, b.Delete("ui.theme"))
		require.NoError(t, b.Delete("never.set"))

		keys, err := b.Keys()
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"version"}, keys)
	})

	t.Run("flush persists", func(t *testing.T) {
		if o.Reopen == nil {
			t.Skip("backend is not persistent")
		}
		b := o.Open(t)
		require.NoError(t, b.Set("logging.level", "DEBUG"))
		require.NoError(t, b.Flush())
		require.NoError(t, b.Flush())

		b = o.Reopen(t, b)
		v, ok, err := b.Get("logging.level")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "DEBUG", v)
	})

	t.Run("snapshot", func(t *testing.T) {
		b := o.Open(t)
		require.NoError(t, b.Set("version", 1))
		require.NoError(t, b.Set("editor.default_tileset", "MshockXotto+"))
		raw, err := store.Snapshot(b)
		require.NoError(t, err)
		assert.Len(t, raw, 2)
		assert.Equal(t, "MshockXotto+", raw["editor.default_tileset"])
	})
}

func toFloat(t *testing.T, v any) float64 {
	t.Helper()
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	}
	t.Fatalf("unexpected numeric type %T", v)
	return 0
}

func toStrings(t *testing.T, v any) []string {
	t.Helper()
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			require.True(t, ok, "list item %T", item)
			out = append(out, s)
		}
		return out
	}
	t.Fatalf("unexpected list type %T", v)
	return nil
}

func toStringMap(t *testing.T, v any) map[string]string {
	t.Helper()
	switch m := v.(type) {
	case map[string]string:
		return m
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, item := range m {
			s, ok := item.(string)
			require.True(t, ok, "map value %T", item)
			out[k] = s
		}
		return out
	}
	t.Fatalf("unexpected map type %T", v)
	return nil
}
