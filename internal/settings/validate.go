package settings

import (
	"os"
	"strings"
)

// Snapshot is a point-in-time copy of every settings group.
type Snapshot struct {
	Version      SchemaVersion       `yaml:"version"`
	Paths        PathSettings        `yaml:"paths"`
	UI           UISettings          `yaml:"ui"`
	Editor       EditorSettings      `yaml:"editor"`
	Logging      LoggingSettings     `yaml:"logging"`
	Mods         ModSettings         `yaml:"mods"`
	TypeSlots    TypeSlotSettings    `yaml:"type_slot_mapping"`
	MultiZ       MultiZLevelSettings `yaml:"multi_z_level"`
	FirstRun     bool                `yaml:"first_run"`
	MigratedFrom *SchemaVersion      `yaml:"migrated_from,omitempty"`
}

type check func(s Snapshot, r *Result)

// checks run in order; none depends on another's outcome.
var checks = []check{
	checkRoot,
	checkDerivedPaths,
	checkRecentFiles,
	checkZoom,
	checkLevel,
	checkTheme,
	checkAnimationTimeout,
	checkMods,
	checkLogWindow,
	checkTypeSlots,
	checkMultiZ,
}

// Validate inspects s and reports every problem found. It never modifies
// s or touches anything but the filesystem paths it names.
func Validate(s Snapshot) Result {
	var r Result
	for _, c := range checks {
		c(s, &r)
	}
	return r
}

func checkRoot(s Snapshot, r *Result) {
	if !s.Paths.HasRoot() {
		r.addError("CDDA path not set")
		return
	}
	if !isDir(s.Paths.Root) {
		r.addError("CDDA path does not exist: %s", s.Paths.Root)
	}
}

func checkDerivedPaths(s Snapshot, r *Result) {
	if !s.Paths.HasRoot() || !isDir(s.Paths.Root) {
		return
	}
	if p := s.Paths.DataPath(); !isDir(p) {
		r.addError("CDDA data directory is missing: %s", p)
	}
	if p := s.Paths.TilesetPath(); !isDir(p) {
		r.addError("CDDA tileset directory is missing: %s", p)
	}
}

func checkRecentFiles(s Snapshot, r *Result) {
	for _, f := range s.Paths.Recent {
		if _, err := os.Stat(f); err != nil {
			r.addWarning("recent file no longer exists: %s", f)
		}
	}
}

func checkZoom(s Snapshot, r *Result) {
	if z := s.Editor.Zoom; z < MinZoom || z > MaxZoom {
		r.addError("zoom level %d outside [%d, %d]", z, MinZoom, MaxZoom)
	}
}

func checkLevel(s Snapshot, r *Result) {
	if !s.Logging.Level.Valid() {
		r.addError("invalid log level %q (want one of %s)", s.Logging.Level, joinLevels())
	}
}

func checkTheme(s Snapshot, r *Result) {
	if !s.UI.Theme.Valid() {
		r.addError("unknown theme %q", s.UI.Theme)
	}
}

func checkAnimationTimeout(s Snapshot, r *Result) {
	if t := s.Editor.AnimationTimeout; t < MinAnimationTimeout || t > MaxAnimationTimeout {
		r.addError("animation timeout %dms outside [%d, %d]", t, MinAnimationTimeout, MaxAnimationTimeout)
	}
}

func checkMods(s Snapshot, r *Result) {
	seen := make(map[string]bool, len(s.Mods.Active))
	for _, id := range s.Mods.Active {
		if seen[id] {
			r.addWarning("mod %q is listed more than once", id)
		}
		seen[id] = true
	}
}

func checkLogWindow(s Snapshot, r *Result) {
	if !s.Logging.GUILevel.Valid() {
		r.addError("invalid log window level %q (want one of %s)", s.Logging.GUILevel, joinLevels())
	}
	if s.Logging.GUIMaxLines < 1 {
		r.addError("log window line limit %d must be positive", s.Logging.GUIMaxLines)
	}
}

func checkTypeSlots(s Snapshot, r *Result) {
	for _, objType := range s.TypeSlots.MappedTypes() {
		if slot := s.TypeSlots.Mapping[objType]; !slot.Valid() {
			r.addError("type %q is mapped to unknown slot %q", objType, slot)
		}
	}
}

func checkMultiZ(s Snapshot, r *Result) {
	z := s.MultiZ
	for _, n := range []struct {
		name  string
		value int
	}{{"above", z.LevelsAbove}, {"below", z.LevelsBelow}} {
		if n.value < 0 || n.value > MaxLevelsAround {
			r.addError("levels %s %d outside [0, %d]", n.name, n.value, MaxLevelsAround)
		}
	}
	for _, step := range []struct {
		name  string
		value float64
	}{{"brightness", z.BrightnessStep}, {"transparency", z.TransparencyStep}} {
		if step.value < 0 || step.value > 100 {
			r.addError("%s step %g%% outside [0, 100]", step.name, step.value)
		}
	}
	if !z.BrightnessMethod.Valid() {
		r.addError("unknown brightness method %q", z.BrightnessMethod)
	}
	if !z.TransparencyMethod.Valid() {
		r.addError("unknown transparency method %q", z.TransparencyMethod)
	}
	if !z.BrightnessAbove.Valid() {
		r.addError("unknown brightness operation above %q", z.BrightnessAbove)
	}
	if !z.BrightnessBelow.Valid() {
		r.addError("unknown brightness operation below %q", z.BrightnessBelow)
	}
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func joinLevels() string {
	names := make([]string, len(Levels))
	for i, l := range Levels {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}
