package store

// State represents the schema state of a settings store.
type State int

const (
	StateMissing  State = iota // Backing file doesn't exist
	StateEmpty                 // Opened but holds no keys
	StateLegacy                // Keys present but no version key
	StateOutdated              // Version older than this build's schema
	StateReady                 // Version matches this build's schema
	StateFuture                // Version newer than this build understands
)

func (s State) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateEmpty:
		return "empty"
	case StateLegacy:
		return "legacy"
	case StateOutdated:
		return "outdated"
	case StateReady:
		return "ready"
	case StateFuture:
		return "future"
	}
	return "unknown"
}

// Backend defines the settings key/value store contract.
// Values are JSON-compatible: string, bool, numbers, []any and nil.
// Implementations must be safe for concurrent use.
type Backend interface {
	// Get returns the raw value stored under key and whether it exists
	Get(key string) (any, bool, error)

	// Set stores value under key, replacing any previous value
	Set(key string, value any) error

	// Delete removes key; deleting a missing key is not an error
	Delete(key string) error

	// Keys returns every stored key in no particular order
	Keys() ([]string, error)

	// Flush forces pending writes to durable storage
	Flush() error

	// Close releases the backend
	Close() error
}
