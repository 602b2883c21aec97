package settings

import (
	"encoding/base64"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/maloquacious/mapedcfg/internal/logger"
	"github.com/maloquacious/mapedcfg/internal/store"
)

// Settings is the single owner of a settings backend. It migrates the
// stored data on Open, exposes typed groups, and buffers writes until
// Flush. All methods are safe for concurrent use.
type Settings struct {
	mu       sync.Mutex
	backend  store.Backend
	log      logger.Logger
	migrator *Migrator

	version      SchemaVersion
	paths        PathSettings
	ui           UISettings
	editor       EditorSettings
	logging      LoggingSettings
	mods         ModSettings
	typeSlots    TypeSlotSettings
	multiZ       MultiZLevelSettings
	firstRun     bool
	migratedFrom *SchemaVersion

	pending  map[string]pendingWrite
	dirty    bool
	warnings []*ConfigError
	closed   bool
}

type pendingWrite struct {
	value  any
	delete bool
}

// Option configures Open.
type Option func(*Settings)

// WithLogger routes load and migration messages to l.
func WithLogger(l logger.Logger) Option {
	return func(s *Settings) { s.log = l }
}

// WithMigrator replaces the default migration chain.
func WithMigrator(m *Migrator) Option {
	return func(s *Settings) { s.migrator = m }
}

// Open loads settings from backend, migrating and persisting them first
// when they were written by an older schema. MigrationFailed, Unsupported
// and backend errors are fatal. Keys that cannot be decoded fall back to
// defaults and are reported by LoadWarnings.
func Open(backend store.Backend, opts ...Option) (*Settings, error) {
	s := &Settings{
		backend:  backend,
		log:      logger.Nop(),
		migrator: DefaultMigrator(),
		pending:  make(map[string]pendingWrite),
	}
	for _, opt := range opts {
		opt(s)
	}

	stored, err := store.Snapshot(backend)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	raw := Raw(stored)

	from, err := s.migrator.StoredVersion(raw)
	if err != nil {
		return nil, err
	}
	migrated, err := s.migrator.Migrate(raw)
	if err != nil {
		return nil, err
	}

	if from < s.migrator.Current() {
		if len(raw) == 0 {
			migrated[KeyFirstRun] = true
		} else {
			migrated[KeyMigratedFrom] = int(from)
			s.log.Info("settings: migrated schema %s to %s", from, s.migrator.Current())
		}
		if err := persist(backend, raw, migrated); err != nil {
			return nil, fmt.Errorf("failed to persist migrated settings: %w", err)
		}
	}

	s.decode(migrated)
	for _, w := range s.warnings {
		s.log.Warn("settings: %v", w)
	}
	return s, nil
}

// persist writes the difference between before and after to b: new values
// first, then deletes, then the version key. An interrupted write leaves
// the old version stored, so the migration runs again on the next Open
// with the legacy values still present.
func persist(b store.Backend, before, after Raw) error {
	keys := make([]string, 0, len(after))
	for k := range after {
		if k != KeyVersion {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := persistKey(b, before, after, k); err != nil {
			return err
		}
	}
	for k := range before {
		if _, ok := after[k]; ok {
			continue
		}
		if err := b.Delete(k); err != nil {
			return fmt.Errorf("delete %s: %w", k, err)
		}
	}
	if _, ok := after[KeyVersion]; ok {
		if err := persistKey(b, before, after, KeyVersion); err != nil {
			return err
		}
	}
	return b.Flush()
}

func persistKey(b store.Backend, before, after Raw, k string) error {
	if old, ok := before[k]; ok && reflect.DeepEqual(old, after[k]) {
		return nil
	}
	if err := b.Set(k, after[k]); err != nil {
		return fmt.Errorf("set %s: %w", k, err)
	}
	return nil
}

func (s *Settings) decode(raw Raw) {
	d := &decoder{raw: raw}

	s.version = s.migrator.Current()

	recent := d.stringList(KeyRecentFiles)
	if normalized := normalizeRecent(recent); len(normalized) != len(recent) {
		d.corrupt(KeyRecentFiles, fmt.Sprintf("list of at most %d distinct paths", MaxRecentFiles))
		recent = normalized
	}
	s.paths = PathSettings{
		Root:   d.string(KeyRoot, ""),
		Recent: recent,
	}

	s.ui = UISettings{
		Theme:                 Theme(d.string(KeyTheme, string(ThemeSystem))),
		ExplorerStayAboveMain: d.bool(KeyExplorerStayAboveMain, false),
	}
	geometryKeys := make([]string, 0)
	for k := range raw {
		if strings.HasPrefix(k, KeyGeometryPrefix) && len(k) > len(KeyGeometryPrefix) {
			geometryKeys = append(geometryKeys, k)
		}
	}
	slices.Sort(geometryKeys)
	for _, k := range geometryKeys {
		if blob, ok := d.blob(k); ok {
			s.ui.SaveGeometry(strings.TrimPrefix(k, KeyGeometryPrefix), blob)
		}
	}

	s.editor = EditorSettings{
		DefaultTileset:    d.string(KeyDefaultTileset, DefaultTileset),
		DefaultTilesetIso: d.string(KeyDefaultTilesetIso, DefaultTilesetIso),
		GridVisible:       d.bool(KeyGridVisible, true),
		Zoom:              d.int(KeyZoomLevel, DefaultZoom),
		AnimationTimeout:  d.int(KeyAnimationTimeout, DefaultAnimationTimeout),
	}

	s.logging = LoggingSettings{
		Level:            d.level(KeyLogLevel, LevelInfo),
		ConsoleEnabled:   d.bool(KeyConsoleEnabled, false),
		ConsoleColors:    d.bool(KeyConsoleColors, true),
		FileEnabled:      d.bool(KeyFileEnabled, false),
		GUILevel:         d.level(KeyGUILevel, LevelInfo),
		GUIShowOnStartup: d.bool(KeyGUIShowOnStartup, true),
		GUIShowOnError:   d.bool(KeyGUIShowOnError, true),
		GUIFocusOnError:  d.bool(KeyGUIFocusOnError, true),
		GUIMaxLines:      d.int(KeyGUIMaxLines, DefaultGUIMaxLines),
	}

	s.typeSlots = TypeSlotSettings{Mapping: DefaultTypeSlots()}
	if m, ok := d.stringMap(KeyTypeSlotMapping); ok {
		s.typeSlots.SetMapping(slotMapping(m))
	}

	s.multiZ = MultiZLevelSettings{
		Enabled:            d.bool(KeyMultiZEnabled, false),
		LevelsAbove:        d.int(KeyMultiZLevelsAbove, DefaultLevelsAround),
		LevelsBelow:        d.int(KeyMultiZLevelsBelow, DefaultLevelsAround),
		BrightnessMethod:   StepMethod(d.string(KeyBrightnessMethod, string(MethodAdd))),
		BrightnessStep:     d.float(KeyBrightnessStep, DefaultStepPercent),
		BrightnessAbove:    BrightnessOp(d.string(KeyBrightnessAbove, string(OpDarken))),
		BrightnessBelow:    BrightnessOp(d.string(KeyBrightnessBelow, string(OpDarken))),
		TransparencyMethod: StepMethod(d.string(KeyTransparencyMethod, string(MethodAdd))),
		TransparencyStep:   d.float(KeyTransparencyStep, DefaultStepPercent),
	}

	s.mods = ModSettings{
		Active:            d.stringList(KeyActiveMods),
		AlwaysIncludeCore: d.bool(KeyAlwaysIncludeCore, true),
	}

	s.firstRun = d.bool(KeyFirstRun, true)
	if v, ok := raw[KeyMigratedFrom]; ok && v != nil {
		if from, err := parseVersion(v); err == nil {
			s.migratedFrom = &from
		} else {
			d.corrupt(KeyMigratedFrom, "schema version")
		}
	}

	s.warnings = d.warnings
}

// stage and stageDelete drop writes made after Close.
func (s *Settings) stage(key string, value any) {
	if s.closed {
		return
	}
	s.pending[key] = pendingWrite{value: value}
	s.dirty = true
}

func (s *Settings) stageDelete(key string) {
	if s.closed {
		return
	}
	s.pending[key] = pendingWrite{delete: true}
	s.dirty = true
}

// stageString deletes key for an empty value.
func (s *Settings) stageString(key, value string) {
	if value == "" {
		s.stageDelete(key)
		return
	}
	s.stage(key, value)
}

// stageList stores a copy of list; nil is stored as an empty list.
func (s *Settings) stageList(key string, list []string) {
	s.stage(key, append([]string{}, list...))
}

// Version is the schema version of the loaded data.
func (s *Settings) Version() SchemaVersion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Dirty reports whether there are writes not yet flushed.
func (s *Settings) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// LoadWarnings returns the keys that were replaced by defaults on load.
func (s *Settings) LoadWarnings() []*ConfigError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.warnings)
}

func (s *Settings) Paths() PathSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paths.clone()
}

func (s *Settings) UI() UISettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui.clone()
}

func (s *Settings) Editor() EditorSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor
}

func (s *Settings) Logging() LoggingSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logging
}

func (s *Settings) Mods() ModSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mods.clone()
}

func (s *Settings) TypeSlots() TypeSlotSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typeSlots.clone()
}

func (s *Settings) MultiZLevel() MultiZLevelSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.multiZ
}

// Snapshot copies every group.
func (s *Settings) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Settings) snapshotLocked() Snapshot {
	snap := Snapshot{
		Version:   s.version,
		Paths:     s.paths.clone(),
		UI:        s.ui.clone(),
		Editor:    s.editor,
		Logging:   s.logging,
		Mods:      s.mods.clone(),
		TypeSlots: s.typeSlots.clone(),
		MultiZ:    s.multiZ,
		FirstRun:  s.firstRun,
	}
	if s.migratedFrom != nil {
		from := *s.migratedFrom
		snap.MigratedFrom = &from
	}
	return snap
}

// Validate checks the current settings. Load warnings are appended to
// the result's warnings.
func (s *Settings) Validate() Result {
	s.mu.Lock()
	snap := s.snapshotLocked()
	warnings := slices.Clone(s.warnings)
	s.mu.Unlock()

	r := Validate(snap)
	for _, w := range warnings {
		r.addWarning("%s", w.Error())
	}
	return r
}

// Flush writes pending changes to the backend. It does nothing when there
// is nothing pending. Keys that failed to write stay pending. After Close
// it returns store.ErrClosed.
func (s *Settings) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	return s.flushLocked()
}

func (s *Settings) flushLocked() error {
	if !s.dirty {
		return nil
	}
	keys := make([]string, 0, len(s.pending))
	for k := range s.pending {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		w := s.pending[k]
		var err error
		if w.delete {
			err = s.backend.Delete(k)
		} else {
			err = s.backend.Set(k, w.value)
		}
		if err != nil {
			return fmt.Errorf("failed to write setting %s: %w", k, err)
		}
		delete(s.pending, k)
	}
	if err := s.backend.Flush(); err != nil {
		return fmt.Errorf("failed to flush settings: %w", err)
	}
	s.dirty = false
	s.log.Debug("settings: flushed %d keys", len(keys))
	return nil
}

// Close flushes pending changes and closes the backend. Calling Close
// again returns nil. After Close the setters still update the in-memory
// groups but nothing is staged: Dirty stays false and the change is never
// written.
func (s *Settings) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return errors.Join(s.flushLocked(), s.backend.Close())
}

// Paths

func (s *Settings) SetRoot(root string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths.SetRoot(root)
	s.stageString(KeyRoot, root)
}

func (s *Settings) AddRecent(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths.AddRecent(path)
	s.stageList(KeyRecentFiles, s.paths.Recent)
}

func (s *Settings) RemoveRecent(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := s.paths.RemoveRecent(path)
	s.stageList(KeyRecentFiles, s.paths.Recent)
	return removed
}

func (s *Settings) ClearRecent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths.ClearRecent()
	s.stageList(KeyRecentFiles, nil)
}

// UI

func (s *Settings) SetTheme(t Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.SetTheme(t)
	s.stage(KeyTheme, string(t))
}

func (s *Settings) SaveGeometry(windowID string, blob []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.SaveGeometry(windowID, blob)
	s.stage(GeometryKey(windowID), base64.StdEncoding.EncodeToString(blob))
}

func (s *Settings) RestoreGeometry(windowID string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui.RestoreGeometry(windowID)
}

func (s *Settings) ClearGeometry(windowID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cleared := s.ui.ClearGeometry(windowID)
	s.stageDelete(GeometryKey(windowID))
	return cleared
}

func (s *Settings) SetExplorerStayAboveMain(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.SetExplorerStayAboveMain(v)
	s.stage(KeyExplorerStayAboveMain, v)
}

// Editor

func (s *Settings) SetZoom(z int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.SetZoom(z)
	s.stage(KeyZoomLevel, s.editor.Zoom)
}

func (s *Settings) SetGridVisible(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.SetGridVisible(v)
	s.stage(KeyGridVisible, v)
}

func (s *Settings) SetDefaultTileset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.SetDefaultTileset(id)
	s.stage(KeyDefaultTileset, id)
}

func (s *Settings) SetDefaultTilesetIso(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.SetDefaultTilesetIso(id)
	s.stage(KeyDefaultTilesetIso, id)
}

func (s *Settings) SetAnimationTimeout(ms int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.SetAnimationTimeout(ms)
	s.stage(KeyAnimationTimeout, s.editor.AnimationTimeout)
}

// Logging

// SetLevel stores a log level. Unknown names are rejected and nothing is
// staged.
func (s *Settings) SetLevel(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	if err := s.logging.SetLevel(name); err != nil {
		return err
	}
	s.stage(KeyLogLevel, string(s.logging.Level))
	return nil
}

func (s *Settings) SetConsoleEnabled(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logging.SetConsoleEnabled(v)
	s.stage(KeyConsoleEnabled, v)
}

func (s *Settings) SetConsoleColors(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logging.SetConsoleColors(v)
	s.stage(KeyConsoleColors, v)
}

func (s *Settings) SetFileEnabled(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logging.SetFileEnabled(v)
	s.stage(KeyFileEnabled, v)
}

// SetGUILevel stores the log window's level. Unknown names are rejected
// and nothing is staged.
func (s *Settings) SetGUILevel(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	if err := s.logging.SetGUILevel(name); err != nil {
		return err
	}
	s.stage(KeyGUILevel, string(s.logging.GUILevel))
	return nil
}

func (s *Settings) SetGUIShowOnStartup(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logging.SetGUIShowOnStartup(v)
	s.stage(KeyGUIShowOnStartup, v)
}

func (s *Settings) SetGUIShowOnError(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logging.SetGUIShowOnError(v)
	s.stage(KeyGUIShowOnError, v)
}

func (s *Settings) SetGUIFocusOnError(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logging.SetGUIFocusOnError(v)
	s.stage(KeyGUIFocusOnError, v)
}

// SetGUIMaxLines rejects a limit below one.
func (s *Settings) SetGUIMaxLines(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	if err := s.logging.SetGUIMaxLines(n); err != nil {
		return err
	}
	s.stage(KeyGUIMaxLines, n)
	return nil
}

// Mods

func (s *Settings) AddMod(id string) bool {
	return s.updateMods(func(m *ModSettings) bool { return m.AddMod(id) })
}

func (s *Settings) RemoveMod(id string) bool {
	return s.updateMods(func(m *ModSettings) bool { return m.RemoveMod(id) })
}

func (s *Settings) MoveModUp(id string) bool {
	return s.updateMods(func(m *ModSettings) bool { return m.MoveModUp(id) })
}

func (s *Settings) MoveModDown(id string) bool {
	return s.updateMods(func(m *ModSettings) bool { return m.MoveModDown(id) })
}

func (s *Settings) SetModPriority(id string, index int) bool {
	return s.updateMods(func(m *ModSettings) bool { return m.SetModPriority(id, index) })
}

func (s *Settings) ClearMods() {
	s.updateMods(func(m *ModSettings) bool { m.ClearMods(); return true })
}

func (s *Settings) SetAlwaysIncludeCore(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mods.SetAlwaysIncludeCore(v)
	s.stage(KeyAlwaysIncludeCore, v)
}

func (s *Settings) updateMods(fn func(m *ModSettings) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := fn(&s.mods)
	s.stageList(KeyActiveMods, s.mods.Active)
	return changed
}

// Type slots

func (s *Settings) SetSlotForType(objType string, slot Slot) {
	s.updateTypeSlots(func(t *TypeSlotSettings) { t.SetSlotForType(objType, slot) })
}

func (s *Settings) SetTypeSlotMapping(m map[string]Slot) {
	s.updateTypeSlots(func(t *TypeSlotSettings) { t.SetMapping(m) })
}

// ResetTypeSlots restores the default mapping by deleting the stored one.
func (s *Settings) ResetTypeSlots() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typeSlots.ResetToDefaults()
	s.stageDelete(KeyTypeSlotMapping)
}

func (s *Settings) updateTypeSlots(fn func(t *TypeSlotSettings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.typeSlots)
	s.stage(KeyTypeSlotMapping, s.typeSlots.stored())
}

// Multi-z-level

func (s *Settings) SetMultiZEnabled(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.multiZ.SetEnabled(v)
	s.stage(KeyMultiZEnabled, v)
}

func (s *Settings) SetLevelsAbove(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.multiZ.SetLevelsAbove(n)
	s.stage(KeyMultiZLevelsAbove, s.multiZ.LevelsAbove)
}

func (s *Settings) SetLevelsBelow(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.multiZ.SetLevelsBelow(n)
	s.stage(KeyMultiZLevelsBelow, s.multiZ.LevelsBelow)
}

func (s *Settings) SetBrightnessStep(percent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.multiZ.SetBrightnessStep(percent)
	s.stage(KeyBrightnessStep, s.multiZ.BrightnessStep)
}

func (s *Settings) SetTransparencyStep(percent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.multiZ.SetTransparencyStep(percent)
	s.stage(KeyTransparencyStep, s.multiZ.TransparencyStep)
}

func (s *Settings) SetBrightnessMethod(m StepMethod) error {
	return s.updateMultiZ(KeyBrightnessMethod, func(z *MultiZLevelSettings) (string, error) {
		return string(m), z.SetBrightnessMethod(m)
	})
}

func (s *Settings) SetBrightnessAbove(op BrightnessOp) error {
	return s.updateMultiZ(KeyBrightnessAbove, func(z *MultiZLevelSettings) (string, error) {
		return string(op), z.SetBrightnessAbove(op)
	})
}

func (s *Settings) SetBrightnessBelow(op BrightnessOp) error {
	return s.updateMultiZ(KeyBrightnessBelow, func(z *MultiZLevelSettings) (string, error) {
		return string(op), z.SetBrightnessBelow(op)
	})
}

func (s *Settings) SetTransparencyMethod(m StepMethod) error {
	return s.updateMultiZ(KeyTransparencyMethod, func(z *MultiZLevelSettings) (string, error) {
		return string(m), z.SetTransparencyMethod(m)
	})
}

// updateMultiZ stages key only when fn accepts the value.
func (s *Settings) updateMultiZ(key string, fn func(z *MultiZLevelSettings) (string, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	v, err := fn(&s.multiZ)
	if err != nil {
		return err
	}
	s.stage(key, v)
	return nil
}
