package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/gorewood/marks/internal/output"
)

func TestDefault(t *testing.T) {
	s := Default()
	if s.Star != "#key" || s.Action != "#action" || s.Question != "#question" {
		t.Errorf("markers = %q %q %q", s.Star, s.Action, s.Question)
	}
	if !slices.Equal(s.DelimPaths, []string{"Daily/"}) {
		t.Errorf("DelimPaths = %v", s.DelimPaths)
	}
	if s.DelimFormat != "DD-MM-YYYY" {
		t.Errorf("DelimFormat = %q", s.DelimFormat)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Action != "#action" {
		t.Errorf("Action = %q, want default", s.Action)
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "action: \"#todo\"\ndelim_paths:\n  - Journal/\n  - Work/Daily/\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Action != "#todo" {
		t.Errorf("Action = %q, want #todo", s.Action)
	}
	if s.Star != "#key" {
		t.Errorf("Star = %q, want default #key", s.Star)
	}
	if !slices.Equal(s.DelimPaths, []string{"Journal/", "Work/Daily/"}) {
		t.Errorf("DelimPaths = %v", s.DelimPaths)
	}
	if s.DelimFormat != "DD-MM-YYYY" {
		t.Errorf("DelimFormat = %q, want default", s.DelimFormat)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "star: [unclosed"},
		{"empty marker", "star: \"\""},
		{"bad format", "delim_format: \"Daily YYYY\""},
		{"format that never parses", "delim_format: \"M_D_YYYY\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if code := output.GetExitCode(err); code != output.ExitUserError {
				t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	s := Default()
	s.Question = "#ask"
	s.DelimPaths = []string{"Daily/", "Log/"}

	if err := Save(path, s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Question != "#ask" || !slices.Equal(got.DelimPaths, s.DelimPaths) {
		t.Errorf("Load() = %+v, want %+v", got, s)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "delim_format: DD-MM-YYYY") {
		t.Errorf("saved file missing delim_format:\n%s", data)
	}
}

func TestSave_RejectsInvalid(t *testing.T) {
	s := Default()
	s.Star = s.Action
	if err := Save(filepath.Join(t.TempDir(), "config.yaml"), s); err == nil {
		t.Error("Save() should reject duplicate markers")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
		ok     bool
	}{
		{"defaults", func(*Settings) {}, true},
		{"empty star", func(s *Settings) { s.Star = "" }, false},
		{"trailing space", func(s *Settings) { s.Action = "#action " }, false},
		{"duplicate", func(s *Settings) { s.Question = "#key" }, false},
		{"bad format", func(s *Settings) { s.DelimFormat = "WW" }, false},
		{"no delim paths", func(s *Settings) { s.DelimPaths = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.modify(&s)
			err := s.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestMarker(t *testing.T) {
	s := Default()
	for name, want := range map[string]string{"star": "#key", "action": "#action", "question": "#question"} {
		got, err := s.Marker(name)
		if err != nil || got != want {
			t.Errorf("Marker(%q) = %q, %v; want %q", name, got, err, want)
		}
	}
	if _, err := s.Marker("bogus"); err == nil {
		t.Error("Marker(bogus) should fail")
	}
}

func TestSet(t *testing.T) {
	s := Default()

	next, err := s.Set("delim_paths", "Daily/, Work/\n\nLog/")
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !slices.Equal(next.DelimPaths, []string{"Daily/", "Work/", "Log/"}) {
		t.Errorf("DelimPaths = %v", next.DelimPaths)
	}
	if !slices.Equal(s.DelimPaths, []string{"Daily/"}) {
		t.Error("Set() must not modify the receiver")
	}

	if _, err := s.Set("colour", "red"); err == nil {
		t.Error("Set() should reject unknown keys")
	}
	if _, err := s.Set("star", ""); err == nil {
		t.Error("Set() should reject an empty marker")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MARKS_STAR", "#important")
	t.Setenv("MARKS_DELIM_PATHS", "Journal/")
	t.Setenv("MARKS_ACTION", "")

	s, err := Default().ApplyEnv()
	if err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if s.Star != "#important" {
		t.Errorf("Star = %q", s.Star)
	}
	if s.Action != "#action" {
		t.Errorf("Action = %q, want default", s.Action)
	}
	if !slices.Equal(s.DelimPaths, []string{"Journal/"}) {
		t.Errorf("DelimPaths = %v", s.DelimPaths)
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	t.Setenv("MARKS_DELIM_FORMAT", "nonsense")
	_, err := Default().ApplyEnv()
	if err == nil {
		t.Fatal("ApplyEnv() should reject an invalid format")
	}
	if !strings.HasPrefix(err.Error(), "MARKS_DELIM_FORMAT: ") {
		t.Errorf("error = %q, want the variable name first", err)
	}
	if code := output.GetExitCode(err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
}
