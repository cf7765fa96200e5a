package vault

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gorewood/marks/internal/output"
)

// List returns every regular file under root as a slash-separated path
// relative to root, sorted. Hidden files and directories (".obsidian",
// ".git", ".trash") are skipped.
func List(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, output.NewUserError("vault not found: " + root)
		}
		return nil, output.NewSystemErrorWithCause("failed to read vault: "+root, err)
	}
	if !info.IsDir() {
		return nil, output.NewUserError("vault is not a directory: " + root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path != root && Hidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to walk vault: "+root, err)
	}

	slices.Sort(paths)
	return paths, nil
}

// Hidden reports whether a file or directory name is hidden.
func Hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
