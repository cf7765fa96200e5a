package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/marks/internal/export"
	"github.com/gorewood/marks/internal/vault"
	"github.com/gorewood/marks/internal/week"
)

// WeeksInput is the input for the weeks tool.
type WeeksInput struct {
	Prefix   string `json:"prefix,omitempty"   jsonschema:"only this folder prefix (default: all configured prefixes)"`
	Markdown bool   `json:"markdown,omitempty" jsonschema:"also render a markdown index note with wikilinks"`
}

// WeekEntry is a dated note in a weeks listing.
type WeekEntry struct {
	Path    string `json:"path"    jsonschema:"note path relative to the vault root"`
	Date    string `json:"date"    jsonschema:"date parsed from the filename (YYYY-MM-DD)"`
	Year    int    `json:"year"    jsonschema:"ISO year"`
	Week    int    `json:"week"    jsonschema:"ISO week number"`
	Divider bool   `json:"divider" jsonschema:"true when this note starts a new week"`
}

// WeekFolder is one folder prefix in a weeks listing.
type WeekFolder struct {
	Prefix  string      `json:"prefix"            jsonschema:"configured folder prefix"`
	Entries []WeekEntry `json:"entries"           jsonschema:"dated notes, oldest first"`
	Undated []string    `json:"undated,omitempty" jsonschema:"notes whose filename has no date"`
}

// WeeksOutput is the output for the weeks tool.
type WeeksOutput struct {
	Format   string       `json:"format"             jsonschema:"date format used for filenames"`
	Folders  []WeekFolder `json:"folders"            jsonschema:"one group per folder prefix"`
	Markdown string       `json:"markdown,omitempty" jsonschema:"markdown index, when requested"`
}

func (t *toolset) handleWeeks(
	_ context.Context, _ *mcp.CallToolRequest, input WeeksInput,
) (*mcp.CallToolResult, WeeksOutput, error) {
	parser, err := t.settings.Parser()
	if err != nil {
		return nil, WeeksOutput{}, err
	}
	paths, err := vault.List(t.root)
	if err != nil {
		return nil, WeeksOutput{}, err
	}

	prefixes := t.settings.DelimPaths
	if input.Prefix != "" {
		prefixes = []string{input.Prefix}
	}

	folders := week.Group(paths, prefixes, parser)
	out := WeeksOutput{Format: parser.Format(), Folders: make([]WeekFolder, 0, len(folders))}
	for _, folder := range folders {
		out.Folders = append(out.Folders, toWeekFolder(folder))
	}
	if input.Markdown {
		out.Markdown = export.FormatMarkdown(folders, parser.Format())
	}
	return nil, out, nil
}

func toWeekFolder(folder week.Folder) WeekFolder {
	out := WeekFolder{
		Prefix:  folder.Prefix,
		Entries: make([]WeekEntry, 0, len(folder.Entries)),
		Undated: folder.Undated,
	}
	for _, e := range folder.Entries {
		out.Entries = append(out.Entries, WeekEntry{
			Path:    e.Path,
			Date:    e.Date.Format("2006-01-02"),
			Year:    e.Year,
			Week:    e.Week,
			Divider: e.Divider,
		})
	}
	return out
}
