package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/fatih/color"
	"github.com/maloquacious/mapedcfg/internal/settings"
	"github.com/maloquacious/mapedcfg/internal/store"
	"github.com/maloquacious/mapedcfg/internal/store/factory"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errInvalid = errors.New("settings are invalid")

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "app %s\n", version.String())
	fmt.Fprintf(out, "settings schema %s\n", settings.CurrentVersion)
	return nil
}

// runStatus classifies the store without migrating it.
func runStatus(cmd *cobra.Command, args []string) error {
	opts, err := backendOptions()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	loc := factory.Location(opts)
	fmt.Fprintf(out, "backend:  %s\n", opts.Kind)
	if loc != "" {
		fmt.Fprintf(out, "location: %s\n", loc)
	}

	if factory.FileBacked(opts.Kind) {
		exists, err := store.CheckExists(loc)
		if err != nil {
			return err
		}
		if !exists {
			fmt.Fprintf(out, "state:    %s\n", store.StateMissing)
			return nil
		}
	}

	b, err := factory.Open(opts)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", opts.Kind, err)
	}
	defer b.Close()

	m := settings.DefaultMigrator()
	state, stored, err := settings.Inspect(b, m)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "state:    %s\n", state)
	fmt.Fprintf(out, "schema:   %s (current %s)\n", stored, m.Current())

	if state == store.StateLegacy || state == store.StateOutdated {
		raw, err := store.Snapshot(b)
		if err != nil {
			return err
		}
		plan, err := m.Plan(settings.Raw(raw))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "pending migrations:")
		for _, step := range plan {
			fmt.Fprintf(out, "  %s -> %s  %s\n", step.From, step.To(), step.Description)
		}
	}
	return nil
}

func runMigrate(cmd *cobra.Command, args []string, s *settings.Settings) error {
	out := cmd.OutOrStdout()
	if from, ok := s.MigratedFrom(); ok {
		fmt.Fprintf(out, "settings at schema %s (migrated from %s)\n", s.Version(), from)
		return nil
	}
	fmt.Fprintf(out, "settings at schema %s\n", s.Version())
	return nil
}

func runShow(cmd *cobra.Command, args []string, s *settings.Settings) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(s.Snapshot()); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return enc.Close()
}

func runGet(cmd *cobra.Command, args []string, s *settings.Settings) error {
	v, err := s.Lookup(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch v := v.(type) {
	case nil:
	case []string:
		for _, item := range v {
			fmt.Fprintln(out, item)
		}
	case map[string]string:
		for _, k := range slices.Sorted(maps.Keys(v)) {
			fmt.Fprintf(out, "%s=%s\n", k, v[k])
		}
	default:
		fmt.Fprintln(out, v)
	}
	return nil
}

func runSet(cmd *cobra.Command, args []string, s *settings.Settings) error {
	if err := s.SetString(args[0], args[1]); err != nil {
		return err
	}
	log.Info("set %s", args[0])
	return nil
}

func runValidate(cmd *cobra.Command, args []string, s *settings.Settings) error {
	if r := printResult(cmd, s.Validate()); !r.IsValid() {
		return errInvalid
	}
	return nil
}

func printResult(cmd *cobra.Command, r settings.Result) settings.Result {
	out := cmd.OutOrStdout()
	for _, e := range r.Errors {
		fmt.Fprintln(out, color.RedString("error:   %s", e))
	}
	for _, w := range r.Warnings {
		fmt.Fprintln(out, color.YellowString("warning: %s", w))
	}
	if r.IsValid() {
		fmt.Fprintln(out, color.GreenString("settings are valid (%d warnings)", len(r.Warnings)))
	}
	return r
}

func recentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Manage the recent files list",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List recent files, most recent first",
			Args:  cobra.NoArgs,
			RunE: withSettings(func(cmd *cobra.Command, args []string, s *settings.Settings) error {
				for _, f := range s.Paths().Recent {
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "add <path>",
			Short: "Move a file to the front of the list",
			Args:  cobra.ExactArgs(1),
			RunE: withSettings(func(cmd *cobra.Command, args []string, s *settings.Settings) error {
				s.AddRecent(args[0])
				return nil
			}),
		},
		&cobra.Command{
			Use:   "remove <path>",
			Short: "Remove a file from the list",
			Args:  cobra.ExactArgs(1),
			RunE: withSettings(func(cmd *cobra.Command, args []string, s *settings.Settings) error {
				if !s.RemoveRecent(args[0]) {
					log.Warn("%s is not in the recent list", args[0])
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the list",
			Args:  cobra.NoArgs,
			RunE: withSettings(func(cmd *cobra.Command, args []string, s *settings.Settings) error {
				s.ClearRecent()
				return nil
			}),
		},
	)
	return cmd
}

func modsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mods",
		Short: "Manage active mods and their priority",
	}

	// modOp adapts a reordering operation; reporting when nothing moved.
	modOp := func(use, short string, op func(s *settings.Settings, id string) bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <mod>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: withSettings(func(cmd *cobra.Command, args []string, s *settings.Settings) error {
				if !op(s, args[0]) {
					log.Warn("mods %s %s: nothing changed", use, args[0])
				}
				return nil
			}),
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List active mods in priority order",
			Args:  cobra.NoArgs,
			RunE: withSettings(func(cmd *cobra.Command, args []string, s *settings.Settings) error {
				mods := s.Mods()
				for i, id := range mods.Active {
					fmt.Fprintf(cmd.OutOrStdout(), "%2d  %s\n", i, id)
				}
				if mods.AlwaysIncludeCore {
					fmt.Fprintln(cmd.OutOrStdout(), "core data is always included")
				}
				return nil
			}),
		},
		modOp("add", "Activate a mod at the lowest priority", (*settings.Settings).AddMod),
		modOp("remove", "Deactivate a mod", (*settings.Settings).RemoveMod),
		modOp("up", "Raise a mod's priority by one", (*settings.Settings).MoveModUp),
		modOp("down", "Lower a mod's priority by one", (*settings.Settings).MoveModDown),
		&cobra.Command{
			Use:   "priority <mod> <index>",
			Short: "Move a mod to a priority index (0 is highest)",
			Args:  cobra.ExactArgs(2),
			RunE: withSettings(func(cmd *cobra.Command, args []string, s *settings.Settings) error {
				index, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("index %q is not an integer", args[1])
				}
				if !s.SetModPriority(args[0], index) {
					log.Warn("mods priority %s %d: nothing changed", args[0], index)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Deactivate every mod",
			Args:  cobra.NoArgs,
			RunE: withSettings(func(cmd *cobra.Command, args []string, s *settings.Settings) error {
				s.ClearMods()
				return nil
			}),
		},
	)
	return cmd
}

func firstRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "first-run",
		Short: "Show whether first-run setup is pending",
		Args:  cobra.NoArgs,
		RunE: withSettings(func(cmd *cobra.Command, args []string, s *settings.Settings) error {
			fmt.Fprintln(cmd.OutOrStdout(), s.IsFirstRun())
			return nil
		}),
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "complete",
		Short: "Mark first-run setup as done",
		Args:  cobra.NoArgs,
		RunE: withSettings(func(cmd *cobra.Command, args []string, s *settings.Settings) error {
			s.CompleteFirstRun()
			return nil
		}),
	})
	return cmd
}
