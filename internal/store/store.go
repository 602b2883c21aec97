package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

const (
	AppDirName     = "cdda_maped"
	DefaultProfile = "default"
)

// ErrInvalidProfile is returned for a profile name that cannot be used as
// a file name or key namespace.
var ErrInvalidProfile = errors.New("invalid profile name")

var profileName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// CheckProfile accepts letters, digits, '.', '_' and '-', starting with a
// letter or digit. An empty name means DefaultProfile and is accepted.
func CheckProfile(profile string) error {
	if profile == "" || profileName.MatchString(profile) {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidProfile, profile)
}

// CheckExists verifies if a file-backed store exists at the given path.
// Returns true if the store exists, false otherwise.
func CheckExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check store existence: %w", err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("store path is a directory, expected file: %s", path)
	}
	return true, nil
}

// GetStoreDir returns the directory holding settings stores.
// It is <user config dir>/cdda_maped, or the working directory when the
// platform reports no config dir.
func GetStoreDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, AppDirName)
}

// GetStorePath returns the path of a profile's store file or directory.
func GetStorePath(dir, profile, ext string) string {
	if profile == "" {
		profile = DefaultProfile
	}
	return filepath.Join(dir, profile+ext)
}

// Snapshot reads every key of b into a map.
func Snapshot(b Backend) (map[string]any, error) {
	keys, err := b.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	raw := make(map[string]any, len(keys))
	for _, key := range keys {
		v, ok, err := b.Get(key)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", key, err)
		}
		if ok {
			raw[key] = v
		}
	}
	return raw, nil
}
