package marker

import "strings"

// unit is the searchable and insertable form of a token.
func unit(token string) string {
	return token + " "
}

// Contains reports whether line carries token anywhere, not only at the front.
func Contains(line, token string) bool {
	return strings.Contains(line, unit(token))
}

// Toggle removes every occurrence of token from line when present, otherwise inserts it after the
// line's list prefix. Empty lines are returned unchanged.
func Toggle(line, token string) string {
	u := unit(token)
	if strings.Contains(line, u) {
		// Removing one occurrence can join its neighbours into a new one.
		for strings.Contains(line, u) {
			line = strings.ReplaceAll(line, u, "")
		}
		return line
	}
	if line == "" {
		return line
	}
	layout := Classify(line)
	return layout.Prefix + u + layout.Rest
}

// Buffer is a line-addressable text buffer owned by the host. Line indices
// are zero-based.
type Buffer interface {
	LineCount() int
	Line(n int) string
	SetLine(n int, text string)
}

// Selection is a range of lines given by its anchor and head. Either end may
// come first.
type Selection struct {
	Anchor int `json:"anchor"`
	Head   int `json:"head"`
}

// Cursor returns a selection covering the single line n.
func Cursor(n int) Selection {
	return Selection{Anchor: n, Head: n}
}

// Bounds returns the selection's lines in ascending order.
func (s Selection) Bounds() (start, end int) {
	return min(s.Anchor, s.Head), max(s.Anchor, s.Head)
}

// ToggleRange toggles token on every line of sel, inclusive, clamped to the
// buffer. Each line is classified on its own. Only changed lines are written
// back. It returns the number of lines changed.
func ToggleRange(buf Buffer, sel Selection, token string) int {
	start, end, ok := clamp(buf, sel)
	if !ok {
		return 0
	}
	changed := 0
	for n := start; n <= end; n++ {
		if toggleLine(buf, n, token) {
			changed++
		}
	}
	return changed
}

// ToggleSelections toggles token on the union of sels. A line covered by
// several selections is toggled once.
func ToggleSelections(buf Buffer, sels []Selection, token string) int {
	seen := make(map[int]bool)
	changed := 0
	for _, sel := range sels {
		start, end, ok := clamp(buf, sel)
		if !ok {
			continue
		}
		for n := start; n <= end; n++ {
			if seen[n] {
				continue
			}
			seen[n] = true
			if toggleLine(buf, n, token) {
				changed++
			}
		}
	}
	return changed
}

func toggleLine(buf Buffer, n int, token string) bool {
	before := buf.Line(n)
	after := Toggle(before, token)
	if after == before {
		return false
	}
	buf.SetLine(n, after)
	return true
}

func clamp(buf Buffer, sel Selection) (start, end int, ok bool) {
	count := buf.LineCount()
	start, end = sel.Bounds()
	if count == 0 || end < 0 || start >= count {
		return 0, 0, false
	}
	return max(start, 0), min(end, count-1), true
}

// Lines is an in-memory Buffer.
type Lines []string

// LineCount implements Buffer.
func (l Lines) LineCount() int { return len(l) }

// Line implements Buffer.
func (l Lines) Line(n int) string { return l[n] }

// SetLine implements Buffer.
func (l Lines) SetLine(n int, text string) { l[n] = text }
