package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/maloquacious/mapedcfg/internal/logger"
	"github.com/maloquacious/mapedcfg/internal/settings"
	"github.com/maloquacious/mapedcfg/internal/store/factory"
	"github.com/maloquacious/mapedcfg/internal/store/yamlstore"
	"github.com/spf13/cobra"
)

// runWatch validates the YAML store once and again after every change to
// the file, until interrupted. Logging follows the stored logging group.
func runWatch(cmd *cobra.Command, args []string) error {
	opts, err := backendOptions()
	if err != nil {
		return err
	}
	if opts.Kind != factory.KindYAML {
		return fmt.Errorf("watch needs the yaml backend, not %s", opts.Kind)
	}
	path := factory.Location(opts)

	check := func() (settings.LoggingSettings, bool) {
		b, err := yamlstore.Open(path)
		if err != nil {
			log.Error("watch: %v", err)
			return settings.LoggingSettings{}, false
		}
		s, err := settings.Open(b, settings.WithLogger(log))
		if err != nil {
			_ = b.Close()
			log.Error("watch: %v", err)
			return settings.LoggingSettings{}, false
		}
		defer s.Close()
		printResult(cmd, s.Validate())
		return s.Logging(), true
	}

	stored, ok := check()
	if ok {
		lc := stored.LoggerConfig()
		lc.Console = true
		lc.Out = os.Stderr
		if l, err := logger.New(lc); err == nil {
			defer l.Close()
			log = l.With("watch")
		} else {
			log.Warn("watch: keeping console logger: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return yamlstore.Watch(ctx, path, yamlstore.DefaultDebounce, log, func() {
		log.Info("%s changed", path)
		check()
	})
}
