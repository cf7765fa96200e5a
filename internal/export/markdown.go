package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/marks/internal/output"
	"github.com/gorewood/marks/internal/vault"
	"github.com/gorewood/marks/internal/week"
)

// Schema identifies the index format in the frontmatter.
const Schema = "marks.weeks/v1"

// frontmatter is the YAML header of an index note.
type frontmatter struct {
	Schema  string   `yaml:"schema"`
	Format  string   `yaml:"format"`
	Folders []string `yaml:"folders"`
	Notes   int      `yaml:"notes"`
	Weeks   int      `yaml:"weeks"`
}

// FormatMarkdown renders folders as a markdown index. format is the date
// format the folders were parsed with.
func FormatMarkdown(folders []week.Folder, format string) string {
	var builder strings.Builder

	writeFrontmatter(&builder, folders, format)
	for i, folder := range folders {
		if i > 0 {
			builder.WriteString("\n")
		}
		writeFolder(&builder, folder)
	}

	return builder.String()
}

// writeFrontmatter writes the YAML frontmatter section.
func writeFrontmatter(builder *strings.Builder, folders []week.Folder, format string) {
	meta := frontmatter{Schema: Schema, Format: format, Folders: []string{}}
	for _, folder := range folders {
		meta.Folders = append(meta.Folders, folder.Prefix)
		meta.Notes += len(folder.Entries)
		meta.Weeks += weekCount(folder)
	}

	// Marshalling a flat struct of strings and ints cannot fail.
	data, _ := yaml.Marshal(meta)

	builder.WriteString("---\n")
	builder.Write(data)
	builder.WriteString("---\n\n")
}

// writeFolder writes one heading per folder and one per week. A week heading
// goes before the first entry and before every entry that carries a divider.
func writeFolder(builder *strings.Builder, folder week.Folder) {
	fmt.Fprintf(builder, "# %s\n", folder.Prefix)

	if len(folder.Entries) == 0 && len(folder.Undated) == 0 {
		builder.WriteString("\n_No notes._\n")
		return
	}

	for i, entry := range folder.Entries {
		if i == 0 || entry.Divider {
			fmt.Fprintf(builder, "\n## Week %d, %d\n\n", entry.Week, entry.Year)
		}
		fmt.Fprintf(builder, "- %s\n", wikilink(entry.Path, entry.Date.Format("Mon 2 Jan 2006")))
	}

	if len(folder.Undated) > 0 {
		builder.WriteString("\n## Undated\n\n")
		for _, path := range folder.Undated {
			fmt.Fprintf(builder, "- %s\n", wikilink(path, ""))
		}
	}
}

// weekCount returns the number of distinct weeks in folder.
func weekCount(folder week.Folder) int {
	if len(folder.Entries) == 0 {
		return 0
	}
	return len(folder.Dividers()) + 1
}

// wikilink links to a note by its vault path without the .md extension.
func wikilink(path, alias string) string {
	target := strings.TrimSuffix(path, ".md")
	if alias == "" {
		return "[[" + target + "]]"
	}
	return "[[" + target + "|" + alias + "]]"
}

// WriteMarkdownFile writes content to path unless the file already holds
// exactly that content. It reports whether it wrote.
func WriteMarkdownFile(path, content string) (bool, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, []byte(content)):
		return false, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return false, output.NewSystemErrorWithCause("failed to read index: "+path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, output.NewSystemErrorWithCause("failed to create index directory", err)
	}
	if err := vault.WriteFileAtomic(path, []byte(content)); err != nil {
		return false, output.NewSystemErrorWithCause("failed to write index: "+path, err)
	}
	return true, nil
}
