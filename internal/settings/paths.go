package settings

import (
	"path/filepath"
	"slices"
)

// MaxRecentFiles bounds the recent-files history.
const MaxRecentFiles = 10

// PathSettings locates the game install and tracks recently opened maps.
type PathSettings struct {
	// Root is the game install directory; empty when unset.
	Root string `yaml:"cdda_root"`
	// Recent holds map files, most recent first.
	Recent []string `yaml:"recent_files"`
}

// HasRoot reports whether a game root is configured.
func (p PathSettings) HasRoot() bool {
	return p.Root != ""
}

// DataPath is the game's data directory, derived from Root.
func (p PathSettings) DataPath() string {
	if !p.HasRoot() {
		return ""
	}
	return filepath.Join(p.Root, "data")
}

// TilesetPath is the game's tileset directory, derived from Root.
func (p PathSettings) TilesetPath() string {
	if !p.HasRoot() {
		return ""
	}
	return filepath.Join(p.Root, "gfx")
}

func (p *PathSettings) SetRoot(root string) {
	p.Root = root
}

// AddRecent moves path to the front of the history, dropping the oldest
// entries past MaxRecentFiles.
func (p *PathSettings) AddRecent(path string) {
	recent := make([]string, 0, len(p.Recent)+1)
	recent = append(recent, path)
	for _, f := range p.Recent {
		if f != path {
			recent = append(recent, f)
		}
	}
	p.Recent = truncateRecent(recent)
}

// RemoveRecent drops path from the history. It reports whether the path
// was present.
func (p *PathSettings) RemoveRecent(path string) bool {
	i := slices.Index(p.Recent, path)
	if i < 0 {
		return false
	}
	p.Recent = slices.Delete(slices.Clone(p.Recent), i, i+1)
	return true
}

func (p *PathSettings) ClearRecent() {
	p.Recent = nil
}

func (p PathSettings) clone() PathSettings {
	p.Recent = slices.Clone(p.Recent)
	return p
}

// normalizeRecent removes duplicates, keeping the first occurrence, and
// applies the capacity bound.
func normalizeRecent(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, f := range list {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return truncateRecent(out)
}

func truncateRecent(list []string) []string {
	if len(list) > MaxRecentFiles {
		return list[:MaxRecentFiles:MaxRecentFiles]
	}
	return list
}
