package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gameRoot creates a directory laid out like a game install.
func gameRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "data"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "gfx"), 0o755))
	return root
}

func validSnapshot(t *testing.T) Snapshot {
	t.Helper()
	return Snapshot{
		Version:   CurrentVersion,
		Paths:     PathSettings{Root: gameRoot(t)},
		UI:        UISettings{Theme: ThemeSystem},
		Editor:    EditorSettings{Zoom: DefaultZoom, AnimationTimeout: DefaultAnimationTimeout},
		Logging:   LoggingSettings{Level: LevelInfo, GUILevel: LevelInfo, GUIMaxLines: DefaultGUIMaxLines},
		TypeSlots: TypeSlotSettings{Mapping: DefaultTypeSlots()},
		MultiZ: MultiZLevelSettings{
			LevelsAbove:        DefaultLevelsAround,
			LevelsBelow:        DefaultLevelsAround,
			BrightnessMethod:   MethodAdd,
			BrightnessStep:     DefaultStepPercent,
			BrightnessAbove:    OpDarken,
			BrightnessBelow:    OpDarken,
			TransparencyMethod: MethodAdd,
			TransparencyStep:   DefaultStepPercent,
		},
	}
}

func TestValidateValid(t *testing.T) {
	s := validSnapshot(t)
	existing := filepath.Join(t.TempDir(), "map.json")
	require.NoError(t, os.WriteFile(existing, []byte("{}"), 0o644))
	s.Paths.Recent = []string{existing}

	r := Validate(s)
	assert.True(t, r.IsValid(), r.Errors)
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		modify       func(t *testing.T, s *Snapshot)
		wantErrors   int
		wantWarnings int
	}{
		{
			name:       "root unset",
			modify:     func(t *testing.T, s *Snapshot) { s.Paths.Root = "" },
			wantErrors: 1,
		},
		{
			name: "root missing",
			modify: func(t *testing.T, s *Snapshot) {
				s.Paths.Root = filepath.Join(t.TempDir(), "nope")
			},
			wantErrors: 1,
		},
		{
			name: "root is a file",
			modify: func(t *testing.T, s *Snapshot) {
				f := filepath.Join(t.TempDir(), "cdda")
				require.NoError(t, os.WriteFile(f, nil, 0o644))
				s.Paths.Root = f
			},
			wantErrors: 1,
		},
		{
			name:       "derived directories missing",
			modify:     func(t *testing.T, s *Snapshot) { s.Paths.Root = t.TempDir() },
			wantErrors: 2,
		},
		{
			name: "tileset directory missing",
			modify: func(t *testing.T, s *Snapshot) {
				require.NoError(t, os.Remove(s.Paths.TilesetPath()))
			},
			wantErrors: 1,
		},
		{
			name: "stale recent file",
			modify: func(t *testing.T, s *Snapshot) {
				s.Paths.Recent = []string{filepath.Join(t.TempDir(), "gone.json")}
			},
			wantWarnings: 1,
		},
		{
			name:       "zoom below range",
			modify:     func(t *testing.T, s *Snapshot) { s.Editor.Zoom = MinZoom - 1 },
			wantErrors: 1,
		},
		{
			name:       "zoom above range",
			modify:     func(t *testing.T, s *Snapshot) { s.Editor.Zoom = MaxZoom + 1 },
			wantErrors: 1,
		},
		{
			name:       "unknown level",
			modify:     func(t *testing.T, s *Snapshot) { s.Logging.Level = "TRACE" },
			wantErrors: 1,
		},
		{
			name:       "unknown theme",
			modify:     func(t *testing.T, s *Snapshot) { s.UI.Theme = "neon" },
			wantErrors: 1,
		},
		{
			name:       "animation timeout zero",
			modify:     func(t *testing.T, s *Snapshot) { s.Editor.AnimationTimeout = 0 },
			wantErrors: 1,
		},
		{
			name:         "duplicate mod",
			modify:       func(t *testing.T, s *Snapshot) { s.Mods.Active = []string{"dda", "aftershock", "dda"} },
			wantWarnings: 1,
		},
		{
			name:       "unknown log window level",
			modify:     func(t *testing.T, s *Snapshot) { s.Logging.GUILevel = "CRITICAL" },
			wantErrors: 1,
		},
		{
			name:       "log window line limit zero",
			modify:     func(t *testing.T, s *Snapshot) { s.Logging.GUIMaxLines = 0 },
			wantErrors: 1,
		},
		{
			name: "unknown slots",
			modify: func(t *testing.T, s *Snapshot) {
				s.TypeSlots.Mapping["vehicle"] = "CARS"
				s.TypeSlots.Mapping["terrain"] = "terrain"
			},
			wantErrors: 2,
		},
		{
			name:   "empty slot mapping",
			modify: func(t *testing.T, s *Snapshot) { s.TypeSlots.Mapping = nil },
		},
		{
			name: "z-levels out of range",
			modify: func(t *testing.T, s *Snapshot) {
				s.MultiZ.LevelsAbove = -1
				s.MultiZ.LevelsBelow = MaxLevelsAround + 1
			},
			wantErrors: 2,
		},
		{
			name: "z-level steps out of range",
			modify: func(t *testing.T, s *Snapshot) {
				s.MultiZ.BrightnessStep = 120
				s.MultiZ.TransparencyStep = -5
			},
			wantErrors: 2,
		},
		{
			name: "unknown z-level methods",
			modify: func(t *testing.T, s *Snapshot) {
				s.MultiZ.BrightnessMethod = "add"
				s.MultiZ.TransparencyMethod = ""
				s.MultiZ.BrightnessAbove = "Dim"
				s.MultiZ.BrightnessBelow = "darken"
			},
			wantErrors: 4,
		},
		{
			name: "checks are independent",
			modify: func(t *testing.T, s *Snapshot) {
				s.Paths.Root = ""
				s.Paths.Recent = []string{filepath.Join(t.TempDir(), "gone.json")}
				s.Editor.Zoom = 0
				s.Logging.Level = "loud"
				s.UI.Theme = ""
			},
			wantErrors:   4,
			wantWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSnapshot(t)
			tt.modify(t, &s)

			r := Validate(s)
			assert.Len(t, r.Errors, tt.wantErrors, "errors: %v", r.Errors)
			assert.Len(t, r.Warnings, tt.wantWarnings, "warnings: %v", r.Warnings)
			assert.Equal(t, tt.wantErrors == 0, r.IsValid())
		})
	}
}

func TestValidateDoesNotPruneRecent(t *testing.T) {
	s := validSnapshot(t)
	stale := filepath.Join(t.TempDir(), "gone.json")
	s.Paths.Recent = []string{stale}

	r := Validate(s)
	assert.True(t, r.IsValid())
	assert.NotEmpty(t, r.Warnings)
	assert.Equal(t, []string{stale}, s.Paths.Recent)
}
