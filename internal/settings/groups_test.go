package settings

import (
	"fmt"
	"math"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRecentMovesToFront(t *testing.T) {
	var p PathSettings
	p.AddRecent("A")
	p.AddRecent("B")
	p.AddRecent("A")
	assert.Equal(t, []string{"A", "B"}, p.Recent)
}

func TestAddRecentCapacity(t *testing.T) {
	var p PathSettings
	for i := range 12 {
		p.AddRecent(fmt.Sprintf("map%02d.json", i))
	}
	require.Len(t, p.Recent, MaxRecentFiles)
	assert.Equal(t, "map11.json", p.Recent[0])
	assert.Equal(t, "map02.json", p.Recent[MaxRecentFiles-1])
}

func TestAddRecentRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		var p PathSettings
		for range rng.IntN(40) {
			path := fmt.Sprintf("/maps/%d.json", rng.IntN(15))
			p.AddRecent(path)

			require.LessOrEqual(t, len(p.Recent), MaxRecentFiles)
			require.Equal(t, path, p.Recent[0])
			seen := make(map[string]bool)
			for _, f := range p.Recent {
				require.False(t, seen[f], "duplicate %s in %v", f, p.Recent)
				seen[f] = true
			}
		}
	}
}

func TestRemoveAndClearRecent(t *testing.T) {
	p := PathSettings{Recent: []string{"A", "B", "C"}}
	handedOut := p.clone()

	assert.False(t, p.RemoveRecent("Z"))
	assert.Equal(t, []string{"A", "B", "C"}, p.Recent)

	assert.True(t, p.RemoveRecent("B"))
	assert.Equal(t, []string{"A", "C"}, p.Recent)
	assert.Equal(t, []string{"A", "B", "C"}, handedOut.Recent)

	p.ClearRecent()
	assert.Empty(t, p.Recent)
}

func TestNormalizeRecent(t *testing.T) {
	list := []string{"A", "B", "A", "C"}
	for i := range 12 {
		list = append(list, fmt.Sprint(i))
	}
	got := normalizeRecent(list)
	assert.Len(t, got, MaxRecentFiles)
	assert.Equal(t, []string{"A", "B", "C"}, got[:3])
}

func TestDerivedPaths(t *testing.T) {
	var p PathSettings
	assert.False(t, p.HasRoot())
	assert.Empty(t, p.DataPath())
	assert.Empty(t, p.TilesetPath())

	root := filepath.Join("games", "cdda")
	p.SetRoot(root)
	assert.Equal(t, filepath.Join(root, "data"), p.DataPath())
	assert.Equal(t, filepath.Join(root, "gfx"), p.TilesetPath())

	p.SetRoot("other")
	assert.Equal(t, filepath.Join("other", "data"), p.DataPath())
}

func TestSetZoomClamps(t *testing.T) {
	values := []int{math.MinInt, -1, 0, MinZoom - 1, MinZoom, DefaultZoom, MaxZoom, MaxZoom + 1, math.MaxInt}
	rng := rand.New(rand.NewPCG(3, 4))
	for range 500 {
		values = append(values, rng.IntN(2000)-1000)
	}

	var e EditorSettings
	for _, z := range values {
		e.SetZoom(z)
		want := z
		if want < MinZoom {
			want = MinZoom
		}
		if want > MaxZoom {
			want = MaxZoom
		}
		require.Equal(t, want, e.Zoom, "SetZoom(%d)", z)
	}
}

func TestSetAnimationTimeoutClamps(t *testing.T) {
	var e EditorSettings
	e.SetAnimationTimeout(0)
	assert.Equal(t, MinAnimationTimeout, e.AnimationTimeout)
	e.SetAnimationTimeout(5000)
	assert.Equal(t, MaxAnimationTimeout, e.AnimationTimeout)
	e.SetAnimationTimeout(40)
	assert.Equal(t, 40, e.AnimationTimeout)
}

func TestGeometry(t *testing.T) {
	var u UISettings

	_, ok := u.RestoreGeometry("main")
	assert.False(t, ok)

	blob := []byte{1, 2, 3}
	u.SaveGeometry("main", blob)
	blob[0] = 9

	got, ok := u.RestoreGeometry("main")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, got)

	got[1] = 9
	again, _ := u.RestoreGeometry("main")
	assert.Equal(t, []byte{1, 2, 3}, again)

	u.SaveGeometry("main", []byte{4})
	got, _ = u.RestoreGeometry("main")
	assert.Equal(t, []byte{4}, got)

	assert.True(t, u.ClearGeometry("main"))
	assert.False(t, u.ClearGeometry("main"))
}

func TestThemeAcceptsAnyValue(t *testing.T) {
	var u UISettings
	u.SetTheme("neon")
	assert.Equal(t, Theme("neon"), u.Theme)
	assert.False(t, u.Theme.Valid())
	for _, th := range Themes {
		assert.True(t, th.Valid(), th)
	}
}

func TestSetLevel(t *testing.T) {
	l := LoggingSettings{Level: LevelInfo}

	require.NoError(t, l.SetLevel("debug"))
	assert.Equal(t, LevelDebug, l.Level)
	require.NoError(t, l.SetLevel(" Warning "))
	assert.Equal(t, LevelWarning, l.Level)

	err := l.SetLevel("verbose")
	require.ErrorIs(t, err, ErrInvalidLevel)
	var levelErr *InvalidLevelError
	require.ErrorAs(t, err, &levelErr)
	assert.Equal(t, "verbose", levelErr.Value)
	assert.Equal(t, LevelWarning, l.Level, "rejected level must not be stored")
}

func TestLoggerConfig(t *testing.T) {
	cfg := LoggingSettings{Level: LevelDebug, ConsoleEnabled: true, FileEnabled: true}.LoggerConfig()
	assert.Equal(t, "DEBUG", cfg.Level)
	assert.True(t, cfg.Console)
	assert.False(t, cfg.ConsoleColors)
	assert.Equal(t, LogFile, cfg.File)

	cfg = LoggingSettings{Level: "TRACE"}.LoggerConfig()
	assert.Equal(t, "INFO", cfg.Level)
	assert.Empty(t, cfg.File)
}

func TestMods(t *testing.T) {
	var m ModSettings
	assert.True(t, m.AddMod("aftershock"))
	assert.True(t, m.AddMod("magiclysm"))
	assert.True(t, m.AddMod("no_fungal_growth"))
	assert.False(t, m.AddMod("magiclysm"))
	assert.Equal(t, []string{"aftershock", "magiclysm", "no_fungal_growth"}, m.Active)

	tests := []struct {
		name  string
		op    func(m *ModSettings) bool
		moved bool
		want  []string
	}{
		{"up from top", func(m *ModSettings) bool { return m.MoveModUp("aftershock") }, false, []string{"aftershock", "magiclysm", "no_fungal_growth"}},
		{"up", func(m *ModSettings) bool { return m.MoveModUp("magiclysm") }, true, []string{"magiclysm", "aftershock", "no_fungal_growth"}},
		{"down from bottom", func(m *ModSettings) bool { return m.MoveModDown("no_fungal_growth") }, false, []string{"aftershock", "magiclysm", "no_fungal_growth"}},
		{"down", func(m *ModSettings) bool { return m.MoveModDown("aftershock") }, true, []string{"magiclysm", "aftershock", "no_fungal_growth"}},
		{"unknown", func(m *ModSettings) bool { return m.MoveModUp("dda") }, false, []string{"aftershock", "magiclysm", "no_fungal_growth"}},
		{"priority", func(m *ModSettings) bool { return m.SetModPriority("no_fungal_growth", 0) }, true, []string{"no_fungal_growth", "aftershock", "magiclysm"}},
		{"priority out of range", func(m *ModSettings) bool { return m.SetModPriority("aftershock", 3) }, false, []string{"aftershock", "magiclysm", "no_fungal_growth"}},
		{"priority same", func(m *ModSettings) bool { return m.SetModPriority("magiclysm", 1) }, false, []string{"aftershock", "magiclysm", "no_fungal_growth"}},
		{"remove", func(m *ModSettings) bool { return m.RemoveMod("magiclysm") }, true, []string{"aftershock", "no_fungal_growth"}},
		{"remove unknown", func(m *ModSettings) bool { return m.RemoveMod("dda") }, false, []string{"aftershock", "magiclysm", "no_fungal_growth"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mods := m.clone()
			assert.Equal(t, tt.moved, tt.op(&mods))
			assert.Equal(t, tt.want, mods.Active)
			assert.Equal(t, []string{"aftershock", "magiclysm", "no_fungal_growth"}, m.Active, "original must be untouched")
		})
	}

	assert.Equal(t, 1, m.ModPriority("magiclysm"))
	assert.Equal(t, -1, m.ModPriority("dda"))
	assert.True(t, m.IsModActive("aftershock"))

	m.ClearMods()
	assert.Empty(t, m.Active)
	assert.False(t, slices.Contains(m.Active, "aftershock"))
}

func TestTypeSlots(t *testing.T) {
	ts := TypeSlotSettings{Mapping: DefaultTypeSlots()}
	slot, ok := ts.SlotForType("terrain")
	require.True(t, ok)
	assert.Equal(t, SlotTerrain, slot)
	_, ok = ts.SlotForType("vehicle")
	assert.False(t, ok)

	ts.SetSlotForType("vehicle", SlotVehicles)
	ts.SetSlotForType("f_tree", SlotFurniture)
	assert.Equal(t, []string{"f_tree", "furniture"}, ts.TypesForSlot(SlotFurniture))
	assert.Empty(t, ts.TypesForSlot(SlotGraffiti))

	ts.SetSlotForType("MONSTER", "")
	assert.Equal(t, []string{"ITEM", "f_tree", "furniture", "terrain", "vehicle"}, ts.MappedTypes())

	ts.SetMapping(map[string]Slot{"terrain": SlotTerrain, "ITEM": ""})
	assert.Equal(t, []string{"terrain"}, ts.MappedTypes())

	ts.ResetToDefaults()
	assert.Equal(t, DefaultTypeSlots(), ts.Mapping)

	var empty TypeSlotSettings
	empty.SetSlotForType("terrain", SlotTerrain)
	assert.Equal(t, map[string]Slot{"terrain": SlotTerrain}, empty.Mapping)
}

func TestDefaultTypeSlotsAreFresh(t *testing.T) {
	m := DefaultTypeSlots()
	m["terrain"] = SlotUnknown
	assert.Equal(t, SlotTerrain, DefaultTypeSlots()["terrain"])
	for _, slot := range DefaultTypeSlots() {
		assert.True(t, slot.Valid(), slot)
	}
}

func TestMultiZLevelClamps(t *testing.T) {
	var z MultiZLevelSettings
	z.SetLevelsAbove(-3)
	assert.Equal(t, 0, z.LevelsAbove)
	z.SetLevelsBelow(math.MaxInt)
	assert.Equal(t, MaxLevelsAround, z.LevelsBelow)
	z.SetBrightnessStep(150)
	assert.Equal(t, 100.0, z.BrightnessStep)
	z.SetTransparencyStep(math.NaN())
	assert.Equal(t, 0.0, z.TransparencyStep)
	z.SetTransparencyStep(-1)
	assert.Equal(t, 0.0, z.TransparencyStep)

	z.BrightnessMethod = MethodAdd
	err := z.SetBrightnessMethod("Multiply")
	require.ErrorIs(t, err, ErrInvalidValue)
	var valueErr *InvalidValueError
	require.ErrorAs(t, err, &valueErr)
	assert.Equal(t, KeyBrightnessMethod, valueErr.Key)
	assert.Equal(t, []string{"Add", "Magnify", "None"}, valueErr.Allowed)
	assert.Equal(t, MethodAdd, z.BrightnessMethod)

	require.ErrorIs(t, z.SetBrightnessBelow("darken"), ErrInvalidValue)
	require.NoError(t, z.SetBrightnessBelow(OpLighten))
	assert.Equal(t, OpLighten, z.BrightnessBelow)
}

func TestBrightnessFactor(t *testing.T) {
	z := MultiZLevelSettings{
		BrightnessMethod: MethodAdd,
		BrightnessStep:   20,
		BrightnessAbove:  OpLighten,
		BrightnessBelow:  OpDarken,
	}
	tests := []struct {
		name   string
		method StepMethod
		offset int
		want   float64
	}{
		{"current level", MethodAdd, 0, 1},
		{"one below", MethodAdd, -1, 0.8},
		{"three below", MethodAdd, -3, 0.4},
		{"far below floors at zero", MethodAdd, -6, 0},
		{"two above", MethodAdd, 2, 1.4},
		{"magnify below", MethodMagnify, -2, 0.64},
		{"magnify above", MethodMagnify, 2, 1.36},
		{"no method", MethodNone, -2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := z
			z.BrightnessMethod = tt.method
			assert.InDelta(t, tt.want, z.BrightnessFactor(tt.offset), 1e-9)
		})
	}

	z.BrightnessBelow = OpNone
	assert.Equal(t, 1.0, z.BrightnessFactor(-4))
}

func TestTransparencyFactor(t *testing.T) {
	z := MultiZLevelSettings{TransparencyMethod: MethodAdd, TransparencyStep: 30}
	assert.Equal(t, 1.0, z.TransparencyFactor(0))
	assert.InDelta(t, 0.4, z.TransparencyFactor(2), 1e-9)
	assert.InDelta(t, 0.4, z.TransparencyFactor(-2), 1e-9)
	assert.Equal(t, 0.0, z.TransparencyFactor(5))

	z.TransparencyMethod = MethodMagnify
	assert.InDelta(t, 0.49, z.TransparencyFactor(-2), 1e-9)

	z.TransparencyMethod = MethodNone
	assert.Equal(t, 1.0, z.TransparencyFactor(3))
}

func TestLogWindowSettings(t *testing.T) {
	l := LoggingSettings{GUILevel: LevelInfo, GUIMaxLines: DefaultGUIMaxLines}

	require.NoError(t, l.SetGUILevel("error"))
	assert.Equal(t, LevelError, l.GUILevel)
	require.ErrorIs(t, l.SetGUILevel("CRITICAL"), ErrInvalidLevel)
	assert.Equal(t, LevelError, l.GUILevel)

	require.NoError(t, l.SetGUIMaxLines(50))
	assert.Equal(t, 50, l.GUIMaxLines)
	for _, n := range []int{0, -1, math.MinInt} {
		require.ErrorIs(t, l.SetGUIMaxLines(n), ErrInvalidValue, "SetGUIMaxLines(%d)", n)
	}
	assert.Equal(t, 50, l.GUIMaxLines)

	l.SetGUIShowOnStartup(false)
	l.SetGUIShowOnError(false)
	l.SetGUIFocusOnError(true)
	assert.False(t, l.GUIShowOnStartup)
	assert.False(t, l.GUIShowOnError)
	assert.True(t, l.GUIFocusOnError)

	assert.Equal(t, "DEBUG", LoggingSettings{Level: LevelDebug, GUILevel: LevelError}.LoggerConfig().Level)
}
