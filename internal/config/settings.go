package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/marks/internal/output"
	"github.com/gorewood/marks/internal/vault"
	"github.com/gorewood/marks/internal/week"
)

// Marker names accepted by Settings.Marker.
const (
	MarkerStar     = "star"
	MarkerAction   = "action"
	MarkerQuestion = "question"
)

// MarkerNames lists the configurable markers in display order.
var MarkerNames = []string{MarkerStar, MarkerAction, MarkerQuestion}

// Settings is the user configuration. It is passed by value; callers never
// share a mutable copy.
type Settings struct {
	Star     string `yaml:"star"     json:"star"`
	Action   string `yaml:"action"   json:"action"`
	Question string `yaml:"question" json:"question"`

	// DelimPaths are folder prefixes whose notes get week dividers.
	DelimPaths []string `yaml:"delim_paths"  json:"delim_paths"`
	// DelimFormat is the moment-style date format at the start of filenames.
	DelimFormat string `yaml:"delim_format" json:"delim_format"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Star:        "#key",
		Action:      "#action",
		Question:    "#question",
		DelimPaths:  []string{"Daily/"},
		DelimFormat: "DD-MM-YYYY",
	}
}

// Load reads settings from path. Keys present in the file replace the
// defaults; missing keys keep them. A missing file yields Default().
func Load(path string) (Settings, error) {
	settings := Default()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return Settings{}, output.NewSystemErrorWithCause("failed to read settings: "+path, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, output.NewUserErrorf("invalid settings file %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, output.NewUserErrorf("invalid settings file %s: %w", path, err)
	}
	return settings, nil
}

// Save validates s and writes it to path, creating the directory if needed.
func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return output.AsUserError(err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return output.NewSystemErrorWithCause("failed to encode settings", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return output.NewSystemErrorWithCause("failed to create config directory", err)
	}
	if err := vault.WriteFileAtomic(path, data); err != nil {
		return output.NewSystemErrorWithCause("failed to write settings", err)
	}
	return nil
}

// Validate checks the markers and the date format.
func (s Settings) Validate() error {
	seen := make(map[string]string, len(MarkerNames))
	for _, name := range MarkerNames {
		token := s.token(name)
		if token == "" {
			return fmt.Errorf("%s marker is empty", name)
		}
		if strings.TrimSpace(token) != token {
			return fmt.Errorf("%s marker %q has surrounding whitespace", name, token)
		}
		if other, ok := seen[token]; ok {
			return fmt.Errorf("%s and %s markers are both %q", other, name, token)
		}
		seen[token] = name
	}

	if _, err := week.Layout(s.DelimFormat); err != nil {
		return err
	}
	return nil
}

// Marker returns the token configured for a marker name.
func (s Settings) Marker(name string) (string, error) {
	if !slices.Contains(MarkerNames, name) {
		return "", output.NewUserErrorf("unknown marker %q (want one of %s)",
			name, strings.Join(MarkerNames, ", "))
	}
	return s.token(name), nil
}

func (s Settings) token(name string) string {
	switch name {
	case MarkerStar:
		return s.Star
	case MarkerAction:
		return s.Action
	case MarkerQuestion:
		return s.Question
	default:
		return ""
	}
}

// Parser returns a week parser for the configured date format.
func (s Settings) Parser() (*week.Parser, error) {
	parser, err := week.NewParser(s.DelimFormat)
	if err != nil {
		return nil, output.AsUserError(err)
	}
	return parser, nil
}

// Keys lists the settings keys accepted by Set, in file order.
var Keys = []string{"star", "action", "question", "delim_paths", "delim_format"}

// Set returns a copy of s with one key changed. delim_paths accepts a comma
// or newline separated list.
func (s Settings) Set(key, value string) (Settings, error) {
	out := s
	out.DelimPaths = slices.Clone(s.DelimPaths)

	switch key {
	case "star":
		out.Star = value
	case "action":
		out.Action = value
	case "question":
		out.Question = value
	case "delim_paths":
		out.DelimPaths = SplitPaths(value)
	case "delim_format":
		out.DelimFormat = value
	default:
		return s, output.NewUserErrorf("unknown settings key %q (want one of %s)",
			key, strings.Join(Keys, ", "))
	}

	if err := out.Validate(); err != nil {
		return s, output.AsUserError(err)
	}
	return out, nil
}

// SplitPaths splits a comma or newline separated prefix list, dropping blanks.
func SplitPaths(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	paths := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			paths = append(paths, f)
		}
	}
	return paths
}

// ApplyEnv returns a copy of s with MARKS_* environment overrides applied.
func (s Settings) ApplyEnv() (Settings, error) {
	out := s
	for _, key := range Keys {
		value := os.Getenv("MARKS_" + strings.ToUpper(key))
		if value == "" {
			continue
		}
		next, err := out.Set(key, value)
		if err != nil {
			return s, output.NewUserErrorf("MARKS_%s: %w", strings.ToUpper(key), err)
		}
		out = next
	}
	return out, nil
}
