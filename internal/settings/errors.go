package settings

import (
	"errors"
	"fmt"
	"strings"
)

// Errors matched with errors.Is.
var (
	// ErrMigrationFailed indicates a stored schema could not be brought forward.
	ErrMigrationFailed = errors.New("settings migration failed")

	// ErrCorruptValue indicates a stored key could not be decoded.
	ErrCorruptValue = errors.New("corrupt settings value")

	// ErrUnsupported indicates the store was written by a newer build.
	ErrUnsupported = errors.New("unsupported settings version")

	// ErrInvalidLevel indicates a log level outside the defined set.
	ErrInvalidLevel = errors.New("invalid log level")

	// ErrInvalidValue indicates a setter was given a value outside its
	// allowed set or range.
	ErrInvalidValue = errors.New("invalid settings value")

	// ErrUnknownKey indicates a settings key this build does not define.
	ErrUnknownKey = errors.New("unknown settings key")
)

// Kind classifies a ConfigError.
type Kind uint8

const (
	KindMigrationFailed Kind = iota + 1
	KindCorruptValue
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindMigrationFailed:
		return "migration_failed"
	case KindCorruptValue:
		return "corrupt_value"
	case KindUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// ConfigError reports a configuration problem with enough context to show
// the user without re-deriving it. Which fields are set depends on Kind.
type ConfigError struct {
	Kind Kind

	// KindMigrationFailed; for KindCorruptValue, what was used instead
	// of the default
	FromVersion SchemaVersion
	Reason      string

	// KindCorruptValue
	Key          string
	ExpectedKind string

	// KindUnsupported
	StoredVersion SchemaVersion

	// Err is the underlying cause, if any.
	Err error
}

func (e *ConfigError) Error() string {
	switch e.Kind {
	case KindMigrationFailed:
		if e.Err != nil {
			return fmt.Sprintf("cannot migrate settings from schema %s: %s: %v", e.FromVersion, e.Reason, e.Err)
		}
		return fmt.Sprintf("cannot migrate settings from schema %s: %s", e.FromVersion, e.Reason)
	case KindCorruptValue:
		if e.Reason != "" {
			return fmt.Sprintf("setting %q is not a valid %s; %s", e.Key, e.ExpectedKind, e.Reason)
		}
		return fmt.Sprintf("setting %q is not a valid %s; using default", e.Key, e.ExpectedKind)
	case KindUnsupported:
		return fmt.Sprintf("settings schema %s is newer than this build supports (%s)", e.StoredVersion, CurrentVersion)
	}
	return "settings error"
}

// Is matches the sentinel for the error's kind.
func (e *ConfigError) Is(target error) bool {
	switch e.Kind {
	case KindMigrationFailed:
		return target == ErrMigrationFailed
	case KindCorruptValue:
		return target == ErrCorruptValue
	case KindUnsupported:
		return target == ErrUnsupported
	}
	return false
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

func migrationFailed(from SchemaVersion, reason string, err error) *ConfigError {
	return &ConfigError{Kind: KindMigrationFailed, FromVersion: from, Reason: reason, Err: err}
}

func corruptValue(key, expected string) *ConfigError {
	return &ConfigError{Kind: KindCorruptValue, Key: key, ExpectedKind: expected}
}

func unsupported(stored SchemaVersion) *ConfigError {
	return &ConfigError{Kind: KindUnsupported, StoredVersion: stored}
}

// InvalidLevelError is returned when a log level outside the defined set
// is passed to a setter.
type InvalidLevelError struct {
	Value string
}

func (e *InvalidLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (want one of DEBUG, INFO, WARNING, ERROR)", e.Value)
}

// Is implements error matching for InvalidLevelError.
func (e *InvalidLevelError) Is(target error) bool {
	return target == ErrInvalidLevel
}

// InvalidValueError is returned when a setter is given a value it cannot
// store. Allowed lists the accepted values when the set is closed.
type InvalidValueError struct {
	Key     string
	Value   string
	Allowed []string
}

func (e *InvalidValueError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("invalid value %q for %s", e.Value, e.Key)
	}
	return fmt.Sprintf("invalid value %q for %s (want one of %s)", e.Value, e.Key, strings.Join(e.Allowed, ", "))
}

// Is implements error matching for InvalidValueError.
func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}
