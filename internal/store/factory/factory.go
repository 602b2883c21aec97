// Package factory opens a settings backend selected by name.
package factory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/maloquacious/mapedcfg/internal/store"
	"github.com/maloquacious/mapedcfg/internal/store/badgerstore"
	"github.com/maloquacious/mapedcfg/internal/store/redisstore"
	"github.com/maloquacious/mapedcfg/internal/store/sqlite"
	"github.com/maloquacious/mapedcfg/internal/store/yamlstore"
)

// Kind names a backend implementation.
type Kind string

const (
	KindMemory Kind = "memory"
	KindSQLite Kind = "sqlite"
	KindBadger Kind = "badger"
	KindRedis  Kind = "redis"
	KindYAML   Kind = "yaml"
)

// Kinds lists every supported backend.
var Kinds = []Kind{KindMemory, KindSQLite, KindBadger, KindRedis, KindYAML}

// ParseKind accepts a backend name in any case.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown backend %q", name)
}

// Options selects and locates a backend.
type Options struct {
	Kind    Kind
	Path    string // file or directory; empty means the profile default
	Profile string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Location returns where the backend keeps its data: a file for sqlite
// and yaml, a directory for badger, the hash name for redis and "" for
// memory.
func Location(opts Options) string {
	profile := opts.Profile
	if profile == "" {
		profile = store.DefaultProfile
	}
	switch opts.Kind {
	case KindSQLite:
		return pathOr(opts.Path, profile, ".db")
	case KindYAML:
		return pathOr(opts.Path, profile, yamlstore.Ext)
	case KindBadger:
		return pathOr(opts.Path, profile, ".badger")
	case KindRedis:
		return opts.RedisAddr + "/mapedcfg:" + profile
	}
	return ""
}

// FileBacked reports whether the backend keeps a single file whose absence
// can be detected before opening.
func FileBacked(k Kind) bool {
	return k == KindSQLite || k == KindYAML
}

// Open opens the backend described by opts.
func Open(opts Options) (store.Backend, error) {
	if err := store.CheckProfile(opts.Profile); err != nil {
		return nil, err
	}
	loc := Location(opts)
	switch opts.Kind {
	case KindMemory:
		return store.NewMemory(nil), nil
	case KindSQLite:
		if err := ensureParent(loc); err != nil {
			return nil, err
		}
		s := sqlite.New(loc)
		if err := s.Open(); err != nil {
			return nil, err
		}
		return s, nil
	case KindYAML:
		s, err := yamlstore.Open(loc)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindBadger:
		s, err := badgerstore.Open(loc, opts.Profile)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindRedis:
		s, err := redisstore.Open(redisstore.Config{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			Profile:  opts.Profile,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown backend %q", opts.Kind)
}

func pathOr(path, profile, ext string) string {
	if path != "" {
		return path
	}
	return store.GetStorePath(store.GetStoreDir(), profile, ext)
}

func ensureParent(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}
