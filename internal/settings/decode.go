package settings

import (
	"encoding/base64"
	"math"
	"strconv"
	"strings"
)

// decoder turns raw store values into typed fields. It never fails: a value
// of the wrong shape yields the default and a recorded CorruptValue warning.
type decoder struct {
	raw      Raw
	warnings []*ConfigError
}

func (d *decoder) corrupt(key, expected string) {
	d.warnings = append(d.warnings, corruptValue(key, expected))
}

func (d *decoder) string(key, def string) string {
	v, ok := d.raw[key]
	if !ok || v == nil {
		return def
	}
	s, ok := v.(string)
	if !ok {
		d.corrupt(key, "string")
		return def
	}
	return s
}

func (d *decoder) bool(key string, def bool) bool {
	v, ok := d.raw[key]
	if !ok || v == nil {
		return def
	}
	b, ok := asBool(v)
	if !ok {
		d.corrupt(key, "boolean")
		return def
	}
	return b
}

func (d *decoder) int(key string, def int) int {
	v, ok := d.raw[key]
	if !ok || v == nil {
		return def
	}
	n, ok := asInt(v)
	if !ok {
		d.corrupt(key, "integer")
		return def
	}
	return n
}

func (d *decoder) float(key string, def float64) float64 {
	v, ok := d.raw[key]
	if !ok || v == nil {
		return def
	}
	f, ok := asFloat(v)
	if !ok {
		d.corrupt(key, "number")
		return def
	}
	return f
}

// level reads a log level. A valid level stored in another case is
// upper-cased and reported; an unknown name is kept for Validate.
func (d *decoder) level(key string, def Level) Level {
	stored := d.string(key, string(def))
	canonical := Level(strings.ToUpper(strings.TrimSpace(stored)))
	if canonical.Valid() && string(canonical) != stored {
		w := corruptValue(key, "upper-case log level")
		w.Reason = "using " + string(canonical)
		d.warnings = append(d.warnings, w)
		return canonical
	}
	return Level(stored)
}

func (d *decoder) stringMap(key string) (map[string]string, bool) {
	v, ok := d.raw[key]
	if !ok || v == nil {
		return nil, false
	}
	m, ok := asStringMap(v)
	if !ok {
		d.corrupt(key, "mapping of strings")
		return nil, false
	}
	return m, true
}

func (d *decoder) stringList(key string) []string {
	v, ok := d.raw[key]
	if !ok || v == nil {
		return nil
	}
	list, ok := asStringList(v)
	if !ok {
		d.corrupt(key, "list of strings")
		return nil
	}
	return list
}

func (d *decoder) blob(key string) ([]byte, bool) {
	v, ok := d.raw[key]
	if !ok || v == nil {
		return nil, false
	}
	switch b := v.(type) {
	case []byte:
		return append([]byte(nil), b...), true
	case string:
		data, err := base64.StdEncoding.DecodeString(b)
		if err == nil {
			return data, true
		}
	}
	d.corrupt(key, "base64 blob")
	return nil, false
}

func asBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "yes":
			return true, true
		case "false", "0", "no":
			return false, true
		}
	case int:
		if b == 0 || b == 1 {
			return b == 1, true
		}
	case float64:
		if b == 0 || b == 1 {
			return b == 1, true
		}
	}
	return false, false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

func asStringMap(v any) (map[string]string, bool) {
	switch m := v.(type) {
	case map[string]string:
		out := make(map[string]string, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, item := range m {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

func asStringList(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...), true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
