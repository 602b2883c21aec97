package settings

import (
	"testing"

	"github.com/maloquacious/mapedcfg/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStringLookup(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  any
	}{
		{KeyRoot, "/games/cdda", "/games/cdda"},
		{KeyTheme, "dark", "dark"},
		{KeyDefaultTileset, "Chibi_Ultica", "Chibi_Ultica"},
		{KeyDefaultTilesetIso, "Ultica_iso", "Ultica_iso"},
		{KeyLogLevel, "debug", "DEBUG"},
		{KeyZoomLevel, "250", 250},
		{KeyZoomLevel, "5", MinZoom},
		{KeyAnimationTimeout, " 20 ", 20},
		{KeyGridVisible, "no", false},
		{KeyExplorerStayAboveMain, "true", true},
		{KeyConsoleEnabled, "1", true},
		{KeyConsoleColors, "false", false},
		{KeyFileEnabled, "yes", true},
		{KeyAlwaysIncludeCore, "0", false},
		{KeyGUILevel, "warning", "WARNING"},
		{KeyGUIShowOnStartup, "false", false},
		{KeyGUIShowOnError, "no", false},
		{KeyGUIFocusOnError, "0", false},
		{KeyGUIMaxLines, "200", 200},
		{KeyMultiZEnabled, "true", true},
		{KeyMultiZLevelsAbove, "4", 4},
		{KeyMultiZLevelsBelow, "99", MaxLevelsAround},
		{KeyBrightnessMethod, "Magnify", "Magnify"},
		{KeyBrightnessStep, "12.5", 12.5},
		{KeyBrightnessAbove, "Lighten", "Lighten"},
		{KeyBrightnessBelow, "None", "None"},
		{KeyTransparencyMethod, "None", "None"},
		{KeyTransparencyStep, "250", 100.0},
		{KeyTypeSlotMapping + ".vehicle", "VEHICLES", "VEHICLES"},
		{KeyTypeSlotMapping + ".terrain", "FIELDS", "FIELDS"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			s, err := Open(store.NewMemory(nil))
			require.NoError(t, err)

			require.NoError(t, s.SetString(tt.key, tt.value))
			assert.True(t, s.Dirty())
			got, err := s.Lookup(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetStringRejects(t *testing.T) {
	s, err := Open(store.NewMemory(nil))
	require.NoError(t, err)

	tests := []struct {
		key, value string
		wantErr    error
	}{
		{"editor.nope", "x", ErrUnknownKey},
		{KeyVersion, "2", ErrReadOnlyKey},
		{KeyRecentFiles, "a", ErrReadOnlyKey},
		{KeyActiveMods, "dda", ErrReadOnlyKey},
		{KeyFirstRun, "false", ErrReadOnlyKey},
		{GeometryKey("main"), "AQID", ErrReadOnlyKey},
		{KeyLogLevel, "TRACE", ErrInvalidLevel},
		{KeyGUILevel, "TRACE", ErrInvalidLevel},
		{KeyGUIMaxLines, "0", ErrInvalidValue},
		{KeyBrightnessMethod, "add", ErrInvalidValue},
		{KeyBrightnessBelow, "Dim", ErrInvalidValue},
		{KeyTypeSlotMapping, "terrain=TERRAIN", ErrReadOnlyKey},
	}
	for _, tt := range tests {
		require.ErrorIs(t, s.SetString(tt.key, tt.value), tt.wantErr, tt.key)
	}

	assert.Error(t, s.SetString(KeyZoomLevel, "big"))
	assert.Error(t, s.SetString(KeyGridVisible, "maybe"))
	assert.Error(t, s.SetString(KeyBrightnessStep, "bright"))
	assert.False(t, s.Dirty())
}

func TestLookup(t *testing.T) {
	s, err := Open(store.NewMemory(map[string]any{
		KeyVersion:          1,
		KeyRecentFiles:      []any{"/maps/a.json"},
		GeometryKey("main"): "AQID",
	}))
	require.NoError(t, err)

	got, err := s.Lookup(KeyVersion)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = s.Lookup(KeyRecentFiles)
	require.NoError(t, err)
	assert.Equal(t, []string{"/maps/a.json"}, got)

	got, err = s.Lookup(GeometryKey("main"))
	require.NoError(t, err)
	assert.Equal(t, "AQID", got)

	got, err = s.Lookup(GeometryKey("missing"))
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.Lookup(KeyMigratedFrom)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.Lookup(KeyTypeSlotMapping)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"terrain":   "TERRAIN",
		"furniture": "FURNITURE",
		"ITEM":      "ITEMS",
		"MONSTER":   "CREATURES",
	}, got)

	got, err = s.Lookup(KeyTypeSlotMapping + ".MONSTER")
	require.NoError(t, err)
	assert.Equal(t, "CREATURES", got)

	require.NoError(t, s.SetString(KeyTypeSlotMapping+".MONSTER", ""))
	got, err = s.Lookup(KeyTypeSlotMapping + ".MONSTER")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = s.Lookup("ui.colour")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestInspect(t *testing.T) {
	tests := []struct {
		name        string
		data        map[string]any
		wantState   store.State
		wantVersion SchemaVersion
		wantErr     error
	}{
		{"empty", nil, store.StateEmpty, V0, nil},
		{"legacy", map[string]any{legacyKeyDataPath: "/games/cdda/data"}, store.StateLegacy, V0, nil},
		{"ready", map[string]any{KeyVersion: 1}, store.StateReady, V1, nil},
		{"ready json", map[string]any{KeyVersion: float64(1)}, store.StateReady, V1, nil},
		{"future", map[string]any{KeyVersion: 5}, store.StateFuture, 5, nil},
		{"unreadable", map[string]any{KeyVersion: true}, store.StateMissing, V0, ErrMigrationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := store.NewMemory(tt.data)
			state, version, err := Inspect(b, nil)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantState, state)
			assert.Equal(t, tt.wantVersion, version)

			keys, err := b.Keys()
			require.NoError(t, err)
			assert.Len(t, keys, len(tt.data), "Inspect must not write")
		})
	}
}

func TestInspectOutdated(t *testing.T) {
	m := NewMigrator(2)
	m.Register(0, "zero", func(raw Raw) (Raw, error) { return raw, nil })
	m.Register(1, "one", func(raw Raw) (Raw, error) { return raw, nil })

	state, version, err := Inspect(store.NewMemory(map[string]any{KeyVersion: 1}), m)
	require.NoError(t, err)
	assert.Equal(t, store.StateOutdated, state)
	assert.Equal(t, V1, version)
}
