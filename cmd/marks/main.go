// Package main provides the entry point for the marks CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/marks/internal/config"
	"github.com/gorewood/marks/internal/envfile"
	"github.com/gorewood/marks/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves --color against TTY detection on the command's stdout.
func useColor(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter returns a printer for cmd that sends human errors to stderr.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the marks CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marks",
		Short: "Toggle note markers and group daily notes by week",
		Long: `Marks - quick markers for markdown notes.

Marks toggles short marker tokens (#key, #action, #question) at the front of
lines, stepping over bullets, checkboxes and numbered-list prefixes, and lists
dated daily notes with a divider at every ISO week boundary.

Settings live in ~/.config/marks/config.yaml (see 'marks config').
All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'marks --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Load MARKS_* overrides from .env.local, .env and the config dir.
	// Environment variables always take precedence over file values.
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		mode, _ := cmd.Flags().GetString("color")
		if !output.ValidColorMode(mode) {
			return output.NewUserErrorf("invalid --color %q (want auto, always or never)", mode)
		}
		loadEnvFiles()
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always or never")
	cmd.PersistentFlags().String("config", "", "Settings file (default: "+displayConfigPath()+")")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose logging for watch and serve")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local
//  2. $CWD/.env
//  3. ~/.config/marks/env
func loadEnvFiles() {
	_, _ = envfile.Load(".env.local", "MARKS_")
	_, _ = envfile.Load(".env", "MARKS_")

	if dir := config.Dir(); dir != "" {
		_, _ = envfile.Load(filepath.Join(dir, "env"), "MARKS_")
	}
}

func displayConfigPath() string {
	if path := config.Path(); path != "" {
		return path
	}
	return "<config dir>/" + config.FileName
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "toggle", Title: "Toggle Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "notes", Title: "Note Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newMarkerCmd(config.MarkerStar), "toggle")
	addGroupedCommand(cmd, newMarkerCmd(config.MarkerAction), "toggle")
	addGroupedCommand(cmd, newMarkerCmd(config.MarkerQuestion), "toggle")
	addGroupedCommand(cmd, newToggleCmd(), "toggle")

	addGroupedCommand(cmd, newWeeksCmd(), "notes")

	addGroupedCommand(cmd, newConfigCmd(), "admin")
	addGroupedCommand(cmd, newServeCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
