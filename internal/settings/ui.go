package settings

import "slices"

// Theme names a UI color scheme.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

// Themes lists the accepted themes in display order.
var Themes = []Theme{ThemeSystem, ThemeLight, ThemeDark}

// Valid reports whether t is one of Themes.
func (t Theme) Valid() bool {
	return slices.Contains(Themes, t)
}

// UISettings holds window state and appearance.
type UISettings struct {
	Theme Theme `yaml:"theme"`
	// Geometries maps a window id to an opaque saved layout.
	Geometries map[string][]byte `yaml:"-"`
	// ExplorerStayAboveMain keeps the explorer window above the main window.
	ExplorerStayAboveMain bool `yaml:"explorer_stay_above_main"`
}

// SetTheme stores t as given. Unknown themes are reported by Validate.
func (u *UISettings) SetTheme(t Theme) {
	u.Theme = t
}

// SaveGeometry replaces the saved layout of windowID.
func (u *UISettings) SaveGeometry(windowID string, blob []byte) {
	if u.Geometries == nil {
		u.Geometries = make(map[string][]byte)
	}
	u.Geometries[windowID] = slices.Clone(blob)
}

// RestoreGeometry returns the saved layout of windowID. ok is false when
// the window should use its default layout.
func (u UISettings) RestoreGeometry(windowID string) (blob []byte, ok bool) {
	blob, ok = u.Geometries[windowID]
	return slices.Clone(blob), ok
}

// ClearGeometry forgets the saved layout of windowID.
func (u *UISettings) ClearGeometry(windowID string) bool {
	if _, ok := u.Geometries[windowID]; !ok {
		return false
	}
	delete(u.Geometries, windowID)
	return true
}

func (u *UISettings) SetExplorerStayAboveMain(v bool) {
	u.ExplorerStayAboveMain = v
}

func (u UISettings) clone() UISettings {
	if u.Geometries != nil {
		geometries := make(map[string][]byte, len(u.Geometries))
		for id, blob := range u.Geometries {
			geometries[id] = slices.Clone(blob)
		}
		u.Geometries = geometries
	}
	return u
}
