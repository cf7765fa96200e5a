// Package envfile reads KEY=VALUE files so MARKS_* overrides can live next to
// a vault. Variables already set in the environment take precedence.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Var is one assignment read from an env file.
type Var struct {
	Key   string
	Value string
}

// Parse reads assignments from r in file order. Blank lines, comments and
// lines without "=" are skipped.
func Parse(r io.Reader) ([]Var, error) {
	var vars []Var
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if v, ok := parseLine(line); ok {
			vars = append(vars, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return vars, nil
}

// Load sets the variables from the file at path whose key starts with prefix
// and that are not already set. An empty prefix accepts every key. A missing
// file is not an error. Load returns the keys it set.
func Load(path, prefix string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only

	vars, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}

	var set []string
	for _, v := range vars {
		if !strings.HasPrefix(v.Key, prefix) {
			continue
		}
		if _, exists := os.LookupEnv(v.Key); exists {
			continue
		}
		if err := os.Setenv(v.Key, v.Value); err != nil {
			return set, fmt.Errorf("setting %s: %w", v.Key, err)
		}
		set = append(set, v.Key)
	}
	return set, nil
}

// parseLine splits KEY=VALUE, dropping an "export " prefix and one pair of
// matching quotes around the value.
func parseLine(line string) (Var, bool) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return Var{}, false
	}

	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	value = strings.TrimSpace(value)
	if key == "" {
		return Var{}, false
	}

	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return Var{Key: key, Value: value}, true
}
