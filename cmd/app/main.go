package main

import (
	"os"

	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"
)

var (
	version = semver.Version{Minor: 1, PreRelease: "alpha", Build: semver.Commit()}
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "app",
		Short:         "CDDA map editor settings admin CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogger()
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.String("backend", "yaml", "settings backend: memory, sqlite, badger, redis or yaml")
	flags.String("path", "", "store file (sqlite, yaml) or directory (badger); defaults to the profile's file in the user config dir")
	flags.String("profile", "default", "settings profile")
	flags.String("redis-addr", "localhost:6379", "redis server address")
	flags.String("redis-password", "", "redis password")
	flags.Int("redis-db", 0, "redis database number")
	flags.String("log-level", "WARNING", "log level: DEBUG, INFO, WARNING or ERROR")
	if err := bindConfig(flags); err != nil {
		printError(err)
		os.Exit(1)
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the build and settings schema versions",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Report the schema state of the store without changing it",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the store to the current schema",
		Args:  cobra.NoArgs,
		RunE:  withSettings(runMigrate),
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print every setting as YAML",
		Args:  cobra.NoArgs,
		RunE:  withSettings(runShow),
	}

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE:  withSettings(runGet),
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		RunE:  withSettings(runSet),
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the settings and report errors and warnings",
		Args:  cobra.NoArgs,
		RunE:  withSettings(runValidate),
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-validate a YAML store whenever the file changes",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}

	rootCmd.AddCommand(versionCmd, statusCmd, migrateCmd, showCmd, getCmd, setCmd,
		validateCmd, recentCommand(), modsCommand(), firstRunCommand(), watchCmd)

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}
