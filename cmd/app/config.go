package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/maloquacious/mapedcfg/internal/logger"
	"github.com/maloquacious/mapedcfg/internal/settings"
	"github.com/maloquacious/mapedcfg/internal/store/factory"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "MAPEDCFG"

// globalFlags are resolved through cfg: flag, then MAPEDCFG_* environment
// variable, then flag default.
var globalFlags = []string{"backend", "path", "profile", "redis-addr", "redis-password", "redis-db", "log-level"}

var cfg = viper.New()

// log is replaced by initLogger once flags are parsed.
var log logger.Logger = logger.Default

func bindConfig(flags *pflag.FlagSet) error {
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()
	for _, name := range globalFlags {
		if err := cfg.BindPFlag(name, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

func initLogger() error {
	l, err := logger.New(logger.Config{
		Level:         cfg.GetString("log-level"),
		Console:       true,
		ConsoleColors: !color.NoColor,
		Out:           os.Stderr,
	})
	if err != nil {
		return err
	}
	log = l.With("cli")
	return nil
}

func backendOptions() (factory.Options, error) {
	kind, err := factory.ParseKind(cfg.GetString("backend"))
	if err != nil {
		return factory.Options{}, err
	}
	return factory.Options{
		Kind:          kind,
		Path:          cfg.GetString("path"),
		Profile:       cfg.GetString("profile"),
		RedisAddr:     cfg.GetString("redis-addr"),
		RedisPassword: cfg.GetString("redis-password"),
		RedisDB:       cfg.GetInt("redis-db"),
	}, nil
}

func openSettings() (*settings.Settings, error) {
	opts, err := backendOptions()
	if err != nil {
		return nil, err
	}
	log.Debug("opening %s store at %s", opts.Kind, factory.Location(opts))
	b, err := factory.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", opts.Kind, err)
	}
	s, err := settings.Open(b, settings.WithLogger(log))
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	return s, nil
}

// withSettings opens the configured store around fn and closes it after,
// flushing anything fn changed.
func withSettings(fn func(cmd *cobra.Command, args []string, s *settings.Settings) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSettings()
		if err != nil {
			return err
		}
		runErr := fn(cmd, args, s)
		if err := s.Close(); err != nil {
			return errors.Join(runErr, fmt.Errorf("failed to save settings: %w", err))
		}
		return runErr
	}
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
}
