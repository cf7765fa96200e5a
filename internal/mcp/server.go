// Package mcp provides a Model Context Protocol server for marks.
// It exposes marker toggling and week grouping as tools, so editors and
// agents can drive a vault without shelling out to the CLI.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/gorewood/marks/internal/config"
)

// NewServer creates an MCP server with all marks tools registered. Settings
// are captured once; root is the vault directory that file paths resolve
// against.
func NewServer(version string, settings config.Settings, root string, log *zap.Logger) *mcp.Server {
	if log == nil {
		log = zap.NewNop()
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "marks",
		Version: version,
	}, nil)
	registerTools(server, &toolset{settings: settings, root: root, log: log})
	return server
}

// toolset is the state shared by tool handlers.
type toolset struct {
	settings config.Settings
	root     string
	log      *zap.Logger
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that rewrite notes in place.
// A second call undoes the first, so they are neither idempotent nor
// destructive.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all marks tools to the server.
func registerTools(server *mcp.Server, tools *toolset) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "toggle_line",
		Description: "Toggle a marker on a single line of text and return the new line. Does not touch any file. Use marker (star, action, question) or an explicit token.",
		Annotations: readOnlyAnnotations(),
	}, tools.handleToggleLine)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "toggle_file",
		Description: "Toggle a marker on a range of lines (1-based, inclusive) in a note inside the vault and save it. Lines that carry the marker lose it; the others gain it after their list prefix.",
		Annotations: writeAnnotations(),
	}, tools.handleToggleFile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "weeks",
		Description: "List dated notes under the configured folder prefixes, sorted by date, with a divider flag on each note that starts a new ISO week. Set markdown to also get an index note with wikilinks.",
		Annotations: readOnlyAnnotations(),
	}, tools.handleWeeks)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "settings",
		Description: "Show the marker tokens, folder prefixes and date format the server is using.",
		Annotations: readOnlyAnnotations(),
	}, tools.handleSettings)
}
