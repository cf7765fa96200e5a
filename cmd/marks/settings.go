package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/marks/internal/config"
)

// settingsPath returns --config or the default settings file.
func settingsPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return config.Path()
}

// loadSettings reads the settings file and applies MARKS_* overrides.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	settings, err := config.Load(settingsPath(cmd))
	if err != nil {
		return config.Settings{}, err
	}
	return settings.ApplyEnv()
}
