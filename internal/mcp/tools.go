package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/gorewood/marks/internal/config"
	"github.com/gorewood/marks/internal/marker"
	"github.com/gorewood/marks/internal/vault"
)

// --- toggle_line ---

// ToggleLineInput is the input for the toggle_line tool.
type ToggleLineInput struct {
	Line   string `json:"line"             jsonschema:"the line of text to toggle"`
	Marker string `json:"marker,omitempty" jsonschema:"configured marker name: star, action or question"`
	Token  string `json:"token,omitempty"  jsonschema:"explicit marker token, overrides marker"`
}

// ToggleLineOutput is the output for the toggle_line tool.
type ToggleLineOutput struct {
	Line    string `json:"line"    jsonschema:"the toggled line"`
	Token   string `json:"token"   jsonschema:"the token that was toggled"`
	Changed bool   `json:"changed" jsonschema:"whether the line changed"`
	Present bool   `json:"present" jsonschema:"whether the token is on the line afterwards"`
	Shape   string `json:"shape"   jsonschema:"line shape: plain, bullet, checkbox or numbered"`
}

func (t *toolset) handleToggleLine(
	_ context.Context, _ *mcp.CallToolRequest, input ToggleLineInput,
) (*mcp.CallToolResult, ToggleLineOutput, error) {
	token, err := t.resolveToken(input.Marker, input.Token)
	if err != nil {
		return nil, ToggleLineOutput{}, err
	}

	line := marker.Toggle(input.Line, token)
	return nil, ToggleLineOutput{
		Line:    line,
		Token:   token,
		Changed: line != input.Line,
		Present: marker.Contains(line, token),
		Shape:   marker.Classify(input.Line).Shape.String(),
	}, nil
}

// --- toggle_file ---

// ToggleFileInput is the input for the toggle_file tool.
type ToggleFileInput struct {
	Path   string `json:"path"             jsonschema:"note path relative to the vault root"`
	Marker string `json:"marker,omitempty" jsonschema:"configured marker name: star, action or question"`
	Token  string `json:"token,omitempty"  jsonschema:"explicit marker token, overrides marker"`
	Start  int    `json:"start"            jsonschema:"first line, 1-based"`
	End    int    `json:"end,omitempty"    jsonschema:"last line, 1-based and inclusive (default start); may be before start"`
}

// ChangedLine is a line rewritten by toggle_file.
type ChangedLine struct {
	Number int    `json:"number" jsonschema:"1-based line number"`
	Text   string `json:"text"   jsonschema:"new line text"`
}

// ToggleFileOutput is the output for the toggle_file tool.
type ToggleFileOutput struct {
	Path    string        `json:"path"            jsonschema:"note path relative to the vault root"`
	Token   string        `json:"token"           jsonschema:"the token that was toggled"`
	Changed int           `json:"changed"         jsonschema:"number of lines rewritten"`
	Lines   []ChangedLine `json:"lines,omitempty" jsonschema:"the rewritten lines"`
}

func (t *toolset) handleToggleFile(
	_ context.Context, _ *mcp.CallToolRequest, input ToggleFileInput,
) (*mcp.CallToolResult, ToggleFileOutput, error) {
	token, err := t.resolveToken(input.Marker, input.Token)
	if err != nil {
		return nil, ToggleFileOutput{}, err
	}
	full, err := t.resolvePath(input.Path)
	if err != nil {
		return nil, ToggleFileOutput{}, err
	}
	if input.Start < 1 {
		return nil, ToggleFileOutput{}, fmt.Errorf("start must be 1 or more, got %d", input.Start)
	}
	end := input.End
	if end == 0 {
		end = input.Start
	}

	file, err := vault.Open(full)
	if err != nil {
		return nil, ToggleFileOutput{}, err
	}
	before := make([]string, file.LineCount())
	for i := range before {
		before[i] = file.Line(i)
	}

	sel := marker.Selection{Anchor: input.Start - 1, Head: end - 1}
	changed := marker.ToggleRange(file, sel, token)
	if _, err := file.Save(); err != nil {
		return nil, ToggleFileOutput{}, err
	}

	out := ToggleFileOutput{Path: input.Path, Token: token, Changed: changed}
	for i, old := range before {
		if now := file.Line(i); now != old {
			out.Lines = append(out.Lines, ChangedLine{Number: i + 1, Text: now})
		}
	}

	t.log.Info("toggled file",
		zap.String("path", input.Path),
		zap.String("token", token),
		zap.Int("changed", changed))
	return nil, out, nil
}

// --- settings ---

// SettingsInput is the input for the settings tool (no parameters needed).
type SettingsInput struct{}

// SettingsOutput is the output for the settings tool.
type SettingsOutput struct {
	Settings config.Settings `json:"settings" jsonschema:"active settings"`
	Root     string          `json:"root"     jsonschema:"vault root directory"`
}

func (t *toolset) handleSettings(
	_ context.Context, _ *mcp.CallToolRequest, _ SettingsInput,
) (*mcp.CallToolResult, SettingsOutput, error) {
	return nil, SettingsOutput{Settings: t.settings, Root: t.root}, nil
}
