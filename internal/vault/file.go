// Package vault is the file-system host for marks: it exposes note files as
// line buffers and lists the notes in a vault directory.
package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/marks/internal/marker"
	"github.com/gorewood/marks/internal/output"
)

// File is a note loaded into memory as lines. It implements marker.Buffer.
type File struct {
	path  string
	lines []string
	// ends holds each line's terminator: "\n", "\r\n" or "" for a last
	// line without a newline.
	ends  []string
	mode  os.FileMode
	dirty bool
}

var _ marker.Buffer = (*File)(nil)

// Open reads the file at path. Every line keeps its own ending ("\n",
// "\r\n" or none on the last line), so Save writes back the original bytes
// of untouched lines.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, output.NewUserError("file not found: " + path)
		}
		return nil, output.NewSystemErrorWithCause("failed to read file: "+path, err)
	}

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	f := &File{path: path, mode: mode}
	f.parse(string(data))
	return f, nil
}

// Parse builds an unsaved File from text. Save is not possible without a
// path, but the buffer is usable for toggling.
func Parse(text string) *File {
	f := &File{mode: 0o644}
	f.parse(text)
	return f
}

func (f *File) parse(text string) {
	f.lines = []string{}
	f.ends = []string{}
	for text != "" {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			f.lines = append(f.lines, text)
			f.ends = append(f.ends, "")
			return
		}
		line, end := text[:i], "\n"
		if strings.HasSuffix(line, "\r") {
			line, end = line[:len(line)-1], "\r\n"
		}
		f.lines = append(f.lines, line)
		f.ends = append(f.ends, end)
		text = text[i+1:]
	}
}

// Path returns the file path, or "" for parsed text.
func (f *File) Path() string {
	return f.path
}

// LineCount implements marker.Buffer.
func (f *File) LineCount() int {
	return len(f.lines)
}

// Line implements marker.Buffer.
func (f *File) Line(n int) string {
	return f.lines[n]
}

// SetLine implements marker.Buffer.
func (f *File) SetLine(n int, text string) {
	if f.lines[n] == text {
		return
	}
	f.lines[n] = text
	f.dirty = true
}

// Dirty reports whether any line changed since Open.
func (f *File) Dirty() bool {
	return f.dirty
}

// String returns the full text with the original line endings.
func (f *File) String() string {
	var b strings.Builder
	for i, line := range f.lines {
		b.WriteString(line)
		b.WriteString(f.ends[i])
	}
	return b.String()
}

// Save writes the file back if it changed. It reports whether it wrote.
func (f *File) Save() (bool, error) {
	if !f.dirty {
		return false, nil
	}
	if f.path == "" {
		return false, output.NewUserError("cannot save text without a file path")
	}
	if err := WriteFileAtomic(f.path, []byte(f.String())); err != nil {
		return false, output.NewSystemErrorWithCause("failed to write file: "+f.path, err)
	}
	if err := os.Chmod(f.path, f.mode); err != nil {
		return true, output.NewSystemErrorWithCause("failed to restore file mode: "+f.path, err)
	}
	f.dirty = false
	return true, nil
}

// WriteFileAtomic writes data to path using write-to-temp-then-rename.
// The temp file is created in the same directory as path.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-marks-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
