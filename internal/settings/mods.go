package settings

import "slices"

// ModSettings holds the active mod list in priority order, index 0 first.
type ModSettings struct {
	Active            []string `yaml:"active"`
	AlwaysIncludeCore bool     `yaml:"always_include_core"`
}

// AddMod appends id unless it is already active.
func (m *ModSettings) AddMod(id string) bool {
	if slices.Contains(m.Active, id) {
		return false
	}
	m.Active = append(slices.Clone(m.Active), id)
	return true
}

func (m *ModSettings) RemoveMod(id string) bool {
	i := slices.Index(m.Active, id)
	if i < 0 {
		return false
	}
	m.Active = slices.Delete(slices.Clone(m.Active), i, i+1)
	return true
}

// MoveModUp raises id one step in priority. It reports false when id is
// inactive or already first.
func (m *ModSettings) MoveModUp(id string) bool {
	i := slices.Index(m.Active, id)
	if i <= 0 {
		return false
	}
	m.swap(i, i-1)
	return true
}

// MoveModDown lowers id one step in priority. It reports false when id is
// inactive or already last.
func (m *ModSettings) MoveModDown(id string) bool {
	i := slices.Index(m.Active, id)
	if i < 0 || i == len(m.Active)-1 {
		return false
	}
	m.swap(i, i+1)
	return true
}

// SetModPriority moves id to index. It reports false when id is inactive,
// index is out of range or id is already there.
func (m *ModSettings) SetModPriority(id string, index int) bool {
	from := slices.Index(m.Active, id)
	if from < 0 || index < 0 || index >= len(m.Active) || from == index {
		return false
	}
	active := slices.Delete(slices.Clone(m.Active), from, from+1)
	m.Active = slices.Insert(active, index, id)
	return true
}

func (m *ModSettings) ClearMods() {
	m.Active = nil
}

func (m ModSettings) IsModActive(id string) bool {
	return slices.Contains(m.Active, id)
}

// ModPriority returns the index of id, or -1 when it is inactive.
func (m ModSettings) ModPriority(id string) int {
	return slices.Index(m.Active, id)
}

func (m *ModSettings) SetAlwaysIncludeCore(v bool) {
	m.AlwaysIncludeCore = v
}

func (m *ModSettings) swap(i, j int) {
	active := slices.Clone(m.Active)
	active[i], active[j] = active[j], active[i]
	m.Active = active
}

func (m ModSettings) clone() ModSettings {
	m.Active = slices.Clone(m.Active)
	return m
}
