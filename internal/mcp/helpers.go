package mcp

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// resolveToken picks the token for a request: an explicit token wins over a
// marker name.
func (t *toolset) resolveToken(marker, token string) (string, error) {
	if token != "" {
		if strings.TrimSpace(token) != token {
			return "", fmt.Errorf("token %q has surrounding whitespace", token)
		}
		return token, nil
	}
	if marker == "" {
		return "", errors.New("specify marker (star, action, question) or token")
	}
	return t.settings.Marker(marker)
}

// resolvePath joins a vault-relative path onto the root and refuses paths
// that leave the vault.
func (t *toolset) resolvePath(path string) (string, error) {
	if path == "" {
		return "", errors.New("path is required")
	}
	if filepath.IsAbs(path) {
		return "", fmt.Errorf("path %q must be relative to the vault", path)
	}
	full := filepath.Join(t.root, filepath.FromSlash(path))
	rel, err := filepath.Rel(t.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside the vault", path)
	}
	return full, nil
}
