package settings

import (
	"errors"
	"fmt"

	"github.com/maloquacious/mapedcfg/internal/store"
)

// Inspect classifies the data in b without migrating or changing it. The
// returned version is the stored schema; it is V0 for missing, empty and
// legacy stores. A nil m uses DefaultMigrator.
func Inspect(b store.Backend, m *Migrator) (store.State, SchemaVersion, error) {
	if m == nil {
		m = DefaultMigrator()
	}
	raw, err := store.Snapshot(b)
	if err != nil {
		return store.StateMissing, V0, fmt.Errorf("failed to read settings: %w", err)
	}
	if len(raw) == 0 {
		return store.StateEmpty, V0, nil
	}
	version, err := m.StoredVersion(Raw(raw))
	if err != nil {
		return store.StateMissing, V0, err
	}
	_, err = m.Plan(Raw(raw))
	switch {
	case errors.Is(err, ErrUnsupported):
		return store.StateFuture, version, nil
	case err != nil:
		return store.StateMissing, version, err
	case version == V0:
		return store.StateLegacy, version, nil
	case version < m.Current():
		return store.StateOutdated, version, nil
	}
	return store.StateReady, version, nil
}
