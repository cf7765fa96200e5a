package week

import (
	"slices"
	"strings"
	"time"
)

// Entry is a dated note inside a folder group.
type Entry struct {
	Path string    `json:"path"`
	Date time.Time `json:"date"`
	Year int       `json:"year"`
	Week int       `json:"week"`
	// Divider is set when the entry starts a different week than the one
	// before it. The first entry never has a divider.
	Divider bool `json:"divider"`
}

// Folder holds the notes under one configured prefix.
type Folder struct {
	Prefix  string   `json:"prefix"`
	Entries []Entry  `json:"entries"`
	Undated []string `json:"undated,omitempty"`
}

// Dividers returns the paths of entries that carry a divider.
func (f Folder) Dividers() []string {
	var paths []string
	for _, e := range f.Entries {
		if e.Divider {
			paths = append(paths, e.Path)
		}
	}
	return paths
}

// Group builds one Folder per non-empty prefix, in prefix order. Paths under
// a prefix are sorted by date, oldest first; paths with the same date keep
// their input order. A path under several prefixes appears in each Folder.
func Group(paths, prefixes []string, parser *Parser) []Folder {
	folders := make([]Folder, 0, len(prefixes))
	for _, prefix := range prefixes {
		if prefix == "" {
			continue
		}
		folders = append(folders, groupFolder(paths, prefix, parser))
	}
	return folders
}

func groupFolder(paths []string, prefix string, parser *Parser) Folder {
	folder := Folder{Prefix: prefix, Entries: []Entry{}}
	for _, path := range paths {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		date, err := parser.Parse(path)
		if err != nil {
			folder.Undated = append(folder.Undated, path)
			continue
		}
		year, week := Key(date)
		folder.Entries = append(folder.Entries, Entry{Path: path, Date: date, Year: year, Week: week})
	}

	slices.SortStableFunc(folder.Entries, func(a, b Entry) int {
		return a.Date.Compare(b.Date)
	})
	slices.Sort(folder.Undated)

	for i := 1; i < len(folder.Entries); i++ {
		prev, cur := folder.Entries[i-1], folder.Entries[i]
		folder.Entries[i].Divider = prev.Year != cur.Year || prev.Week != cur.Week
	}
	return folder
}
