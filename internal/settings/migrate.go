package settings

import (
	"fmt"
	"path/filepath"
)

// Raw is the untyped key/value view of a settings store.
type Raw map[string]any

// Clone returns a copy of r. List values are copied so a step may edit
// them without touching the input.
func (r Raw) Clone() Raw {
	out := make(Raw, len(r))
	for k, v := range r {
		switch list := v.(type) {
		case []any:
			v = append([]any(nil), list...)
		case []string:
			v = append([]string(nil), list...)
		}
		out[k] = v
	}
	return out
}

// Step transforms raw data of one schema version into the next. A step
// must be pure and must leave its own output unchanged when applied again.
type Step func(raw Raw) (Raw, error)

// Migration is a registered Step.
type Migration struct {
	From        SchemaVersion
	Description string
	Apply       Step
}

// To is the version a migration produces.
func (m Migration) To() SchemaVersion { return m.From + 1 }

// Migrator chains registered steps to bring raw data to the current schema.
type Migrator struct {
	current SchemaVersion
	steps   map[SchemaVersion]Migration
}

// NewMigrator creates a Migrator targeting current with no steps.
func NewMigrator(current SchemaVersion) *Migrator {
	return &Migrator{current: current, steps: make(map[SchemaVersion]Migration)}
}

// DefaultMigrator returns a migrator with this build's steps registered.
func DefaultMigrator() *Migrator {
	m := NewMigrator(CurrentVersion)
	m.Register(V0, "consolidate game paths into cdda_root", consolidatePaths)
	return m
}

// Current returns the version the migrator produces.
func (m *Migrator) Current() SchemaVersion { return m.current }

// Register adds the step from → from+1. Registering the same source
// version twice panics.
func (m *Migrator) Register(from SchemaVersion, description string, step Step) {
	if _, dup := m.steps[from]; dup {
		panic(fmt.Sprintf("settings: migration from %s registered twice", from))
	}
	m.steps[from] = Migration{From: from, Description: description, Apply: step}
}

// StoredVersion reads the version key. A missing key means V0.
func (m *Migrator) StoredVersion(raw Raw) (SchemaVersion, error) {
	v, ok := raw[KeyVersion]
	if !ok || v == nil {
		return V0, nil
	}
	version, err := parseVersion(v)
	if err != nil {
		return 0, migrationFailed(V0, "unreadable version", err)
	}
	return version, nil
}

// Plan lists the steps Migrate would apply to raw.
func (m *Migrator) Plan(raw Raw) ([]Migration, error) {
	stored, err := m.StoredVersion(raw)
	if err != nil {
		return nil, err
	}
	if stored > m.current {
		return nil, unsupported(stored)
	}
	var plan []Migration
	for v := stored; v < m.current; v++ {
		step, ok := m.steps[v]
		if !ok {
			return nil, migrationFailed(v, "no migration registered", nil)
		}
		plan = append(plan, step)
	}
	return plan, nil
}

// Migrate returns raw transformed to the current schema. The input is not
// modified. Data already at the current version comes back unchanged apart
// from the version key's representation.
func (m *Migrator) Migrate(raw Raw) (Raw, error) {
	plan, err := m.Plan(raw)
	if err != nil {
		return nil, err
	}

	out := raw.Clone()
	for _, step := range plan {
		next, err := step.Apply(out)
		if err != nil {
			return nil, migrationFailed(step.From, step.Description, err)
		}
		if next == nil {
			next = Raw{}
		}
		next[KeyVersion] = int(step.To())
		out = next
	}
	out[KeyVersion] = int(m.current)
	return out, nil
}

// consolidatePaths replaces the stored data directory with the game root
// and drops the stored tileset directory; both are derived from the root
// from V1 on.
func consolidatePaths(raw Raw) (Raw, error) {
	if legacy, ok := raw[legacyKeyDataPath].(string); ok && legacy != "" {
		if root, _ := raw[KeyRoot].(string); root == "" {
			raw[KeyRoot] = rootFromDataPath(legacy)
		}
	}
	delete(raw, legacyKeyDataPath)
	delete(raw, legacyKeyTilesetsPath)
	return raw, nil
}

// rootFromDataPath maps ".../cdda/data" to ".../cdda". Anything else is
// assumed to already be the root.
func rootFromDataPath(p string) string {
	clean := filepath.Clean(p)
	if filepath.Base(clean) == "data" {
		return filepath.Dir(clean)
	}
	return clean
}
