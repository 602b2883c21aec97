// Package settings implements the versioned settings model of the map
// editor.
//
// Stored data is a flat key/value mapping held by a store.Backend. Open
// reads it, brings it forward to CurrentVersion through a chain of
// registered migration steps, and decodes it into typed groups (paths,
// UI, editor, logging, mods, type slots, multi-z-level). Values that fail to decode fall back to
// their defaults and are reported as load warnings instead of failing the
// load. Writes made through Settings are buffered until Flush.
//
// Validate reports problems as data; it never changes the settings.
package settings
