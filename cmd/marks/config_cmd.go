package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/marks/internal/config"
	"github.com/gorewood/marks/internal/output"
)

// newConfigCmd creates the config command and its subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and edit marks settings",
		Long: `Show and edit the settings file.

Settings are read from the file given by --config, or from
config.yaml in the marks config directory ($MARKS_CONFIG_HOME,
$XDG_CONFIG_HOME/marks or ~/.config/marks). MARKS_STAR, MARKS_ACTION,
MARKS_QUESTION, MARKS_DELIM_PATHS and MARKS_DELIM_FORMAT override the file.`,
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigSetCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active settings, including environment overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			settings, err := loadSettings(cmd)
			if err != nil {
				printer.Error(err)
				return err
			}
			if printer.IsJSON() {
				return printer.WriteJSON(settings)
			}
			printSettings(printer, settings)
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			path := settingsPath(cmd)
			if path == "" {
				err := output.NewSystemError("cannot determine the config directory")
				printer.Error(err)
				return err
			}
			_, statErr := os.Stat(path)
			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"path": path, "exists": statErr == nil})
			}
			printer.Println(path)
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			path := settingsPath(cmd)
			if path == "" {
				err := output.NewSystemError("cannot determine the config directory")
				printer.Error(err)
				return err
			}

			if _, err := os.Stat(path); err == nil && !force {
				err := output.NewConflictError("settings file already exists: " + path + " (use --force to overwrite)")
				printer.Error(err)
				return err
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				err = output.NewSystemErrorWithCause("failed to check settings file: "+path, err)
				printer.Error(err)
				return err
			}

			if err := config.Save(path, config.Default()); err != nil {
				printer.Error(err)
				return err
			}
			return printer.Success(map[string]any{
				"message": "Wrote default settings to " + path,
				"path":    path,
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing settings file")
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one setting in the settings file",
		Long: `Change one setting and save the file. Keys: ` + strings.Join(config.Keys, ", ") + `.

delim_paths takes a comma separated list of folder prefixes.

Examples:
  marks config set action '#todo'
  marks config set delim_paths 'Daily/,Journal/'
  marks config set delim_format YYYY-MM-DD`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)
			path := settingsPath(cmd)

			// Environment overrides are not written back to the file.
			settings, err := config.Load(path)
			if err != nil {
				printer.Error(err)
				return err
			}
			settings, err = settings.Set(args[0], args[1])
			if err != nil {
				printer.Error(err)
				return err
			}
			if err := config.Save(path, settings); err != nil {
				printer.Error(err)
				return err
			}

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"path": path, "settings": settings})
			}
			printer.Println(printer.Styles().Success.Render(fmt.Sprintf("Set %s in %s", args[0], path)))
			return nil
		},
	}
}

func printSettings(printer *output.Printer, settings config.Settings) {
	printer.Section("Markers")
	rows := make([][]string, 0, len(config.MarkerNames))
	for _, name := range config.MarkerNames {
		token, _ := settings.Marker(name)
		rows = append(rows, []string{name, token, "marks " + name})
	}
	printer.Table([]string{"MARKER", "TOKEN", "COMMAND"}, rows)

	printer.Section("Week dividers")
	printer.KeyValue("delim_paths", strings.Join(settings.DelimPaths, ", "))
	printer.KeyValue("delim_format", settings.DelimFormat)
}
