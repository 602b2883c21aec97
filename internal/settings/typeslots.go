package settings

import (
	"maps"
	"slices"
)

// Slot names the cell layer an object type is placed into.
type Slot string

const (
	SlotTerrain       Slot = "TERRAIN"
	SlotGraffiti      Slot = "GRAFFITI"
	SlotFields        Slot = "FIELDS"
	SlotFurniture     Slot = "FURNITURE"
	SlotWallFurniture Slot = "WALLFURNITURE"
	SlotItems         Slot = "ITEMS"
	SlotCreatures     Slot = "CREATURES"
	SlotVehicles      Slot = "VEHICLES"
	SlotUnknown       Slot = "UNKNOWN"
)

// Slots lists every cell layer from the ground up.
var Slots = []Slot{
	SlotTerrain, SlotGraffiti, SlotFields, SlotFurniture, SlotWallFurniture,
	SlotItems, SlotCreatures, SlotVehicles, SlotUnknown,
}

func (s Slot) Valid() bool {
	return slices.Contains(Slots, s)
}

// DefaultTypeSlots returns the mapping used when none is stored. Object
// type names are case-sensitive and follow the game data files.
func DefaultTypeSlots() map[string]Slot {
	return map[string]Slot{
		"terrain":   SlotTerrain,
		"furniture": SlotFurniture,
		"ITEM":      SlotItems,
		"MONSTER":   SlotCreatures,
	}
}

// TypeSlotSettings maps object types to the slot they are placed into.
// Unmapped types have no slot.
type TypeSlotSettings struct {
	Mapping map[string]Slot `yaml:"mapping"`
}

// SlotForType returns the slot of objType.
func (t TypeSlotSettings) SlotForType(objType string) (Slot, bool) {
	slot, ok := t.Mapping[objType]
	return slot, ok
}

// SetSlotForType maps objType to slot. An empty slot unmaps the type.
// Unknown slots are stored as given and reported by Validate.
func (t *TypeSlotSettings) SetSlotForType(objType string, slot Slot) {
	if slot == "" {
		delete(t.Mapping, objType)
		return
	}
	if t.Mapping == nil {
		t.Mapping = make(map[string]Slot)
	}
	t.Mapping[objType] = slot
}

// SetMapping replaces the whole mapping. Entries with an empty slot are
// dropped.
func (t *TypeSlotSettings) SetMapping(m map[string]Slot) {
	t.Mapping = make(map[string]Slot, len(m))
	for objType, slot := range m {
		t.SetSlotForType(objType, slot)
	}
}

func (t *TypeSlotSettings) ResetToDefaults() {
	t.Mapping = DefaultTypeSlots()
}

// MappedTypes returns the mapped object types in sorted order.
func (t TypeSlotSettings) MappedTypes() []string {
	return slices.Sorted(maps.Keys(t.Mapping))
}

// TypesForSlot returns the object types mapped to slot in sorted order.
func (t TypeSlotSettings) TypesForSlot(slot Slot) []string {
	var types []string
	for objType, s := range t.Mapping {
		if s == slot {
			types = append(types, objType)
		}
	}
	slices.Sort(types)
	return types
}

func (t TypeSlotSettings) clone() TypeSlotSettings {
	return TypeSlotSettings{Mapping: maps.Clone(t.Mapping)}
}

// stored is the mapping in its persisted shape.
func (t TypeSlotSettings) stored() map[string]string {
	out := make(map[string]string, len(t.Mapping))
	for objType, slot := range t.Mapping {
		out[objType] = string(slot)
	}
	return out
}

func slotMapping(m map[string]string) map[string]Slot {
	out := make(map[string]Slot, len(m))
	for objType, slot := range m {
		out[objType] = Slot(slot)
	}
	return out
}
