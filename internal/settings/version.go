package settings

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SchemaVersion identifies the shape of persisted settings.
type SchemaVersion int

const (
	// V0 is the unversioned legacy layout: data and tileset paths were
	// stored next to the game root.
	V0 SchemaVersion = iota
	// V1 stores only the game root; data and tileset paths are derived.
	V1
)

// CurrentVersion is the schema this build reads and writes.
const CurrentVersion = V1

func (v SchemaVersion) String() string {
	return "v" + strconv.Itoa(int(v))
}

// parseVersion reads a stored version value. Integers may arrive as Go
// ints, JSON floats or numeric strings depending on the backend.
func parseVersion(raw any) (SchemaVersion, error) {
	var n int64
	switch v := raw.(type) {
	case int:
		n = int64(v)
	case int64:
		n = v
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("version %v is not an integer", v)
		}
		n = int64(v)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("version %q is not an integer", v)
		}
		n = parsed
	default:
		return 0, fmt.Errorf("version has type %T", raw)
	}
	if n < 0 || n > math.MaxInt32 {
		return 0, fmt.Errorf("version %d out of range", n)
	}
	return SchemaVersion(n), nil
}
