package settings

// Persisted keys.
const (
	KeyVersion = "version"

	KeyRoot        = "paths.cdda_root"
	KeyRecentFiles = "paths.recent_files"

	KeyTheme                 = "ui.theme"
	KeyGeometryPrefix        = "ui.geometry."
	KeyExplorerStayAboveMain = "ui.explorer_stay_above_main"

	KeyDefaultTileset    = "editor.default_tileset"
	KeyDefaultTilesetIso = "editor.default_tileset_iso"
	KeyGridVisible       = "editor.grid_visible"
	KeyZoomLevel         = "editor.zoom_level"
	KeyAnimationTimeout  = "editor.animation_timeout"

	KeyLogLevel       = "logging.level"
	KeyConsoleEnabled = "logging.console_enabled"
	KeyConsoleColors  = "logging.console_colors"
	KeyFileEnabled    = "logging.file_enabled"

	KeyGUILevel         = "logging.gui_level"
	KeyGUIShowOnStartup = "logging.gui_show_on_startup"
	KeyGUIShowOnError   = "logging.gui_show_on_error"
	KeyGUIFocusOnError  = "logging.gui_focus_on_error"
	KeyGUIMaxLines      = "logging.gui_max_lines"

	KeyActiveMods        = "mods.active"
	KeyAlwaysIncludeCore = "mods.always_include_core"

	// KeyTypeSlotMapping holds a mapping of object type to Slot. Absent
	// means DefaultTypeSlots.
	KeyTypeSlotMapping = "type_slot_mapping"

	KeyMultiZEnabled      = "multi_z_level.enabled"
	KeyMultiZLevelsAbove  = "multi_z_level.levels_above"
	KeyMultiZLevelsBelow  = "multi_z_level.levels_below"
	KeyBrightnessMethod   = "multi_z_level.brightness_method"
	KeyBrightnessStep     = "multi_z_level.brightness_step"
	KeyBrightnessAbove    = "multi_z_level.brightness_operation_above"
	KeyBrightnessBelow    = "multi_z_level.brightness_operation_below"
	KeyTransparencyMethod = "multi_z_level.transparency_method"
	KeyTransparencyStep   = "multi_z_level.transparency_step"

	KeyFirstRun     = "app.first_run"
	KeyMigratedFrom = "app.migrated_from"
)

// Keys of the V0 layout, consumed by the V0 to V1 migration.
const (
	legacyKeyDataPath     = "paths.cdda_data"
	legacyKeyTilesetsPath = "paths.tilesets"
)

// GeometryKey returns the key holding a window's saved layout.
func GeometryKey(windowID string) string {
	return KeyGeometryPrefix + windowID
}
