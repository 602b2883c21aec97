package settings

// Zoom is a percentage of the tileset's native size.
const (
	MinZoom     = 25
	MaxZoom     = 400
	DefaultZoom = 100
)

// Animation frame timeout bounds, in milliseconds.
const (
	MinAnimationTimeout     = 1
	MaxAnimationTimeout     = 1000
	DefaultAnimationTimeout = 10
)

const (
	DefaultTileset    = "UltimateCataclysm"
	DefaultTilesetIso = "Ultica_iso"
)

// EditorSettings holds map editor preferences.
type EditorSettings struct {
	DefaultTileset    string `yaml:"default_tileset"`
	DefaultTilesetIso string `yaml:"default_tileset_iso"`
	GridVisible       bool   `yaml:"grid_visible"`
	Zoom              int    `yaml:"zoom_level"`
	AnimationTimeout  int    `yaml:"animation_timeout"`
}

// SetZoom stores z clamped to [MinZoom, MaxZoom].
func (e *EditorSettings) SetZoom(z int) {
	e.Zoom = clamp(z, MinZoom, MaxZoom)
}

func (e *EditorSettings) SetGridVisible(v bool) {
	e.GridVisible = v
}

func (e *EditorSettings) SetDefaultTileset(id string) {
	e.DefaultTileset = id
}

func (e *EditorSettings) SetDefaultTilesetIso(id string) {
	e.DefaultTilesetIso = id
}

// SetAnimationTimeout stores ms clamped to the allowed range.
func (e *EditorSettings) SetAnimationTimeout(ms int) {
	e.AnimationTimeout = clamp(ms, MinAnimationTimeout, MaxAnimationTimeout)
}

func clamp[T int | float64](v, lo, hi T) T {
	return max(lo, min(v, hi))
}
