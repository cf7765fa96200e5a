package marker

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Shape is the leading structure of a line.
type Shape int

// Line shapes, from least to most specific.
const (
	Plain Shape = iota
	Bullet
	Checkbox
	Numbered
)

// String returns the lowercase shape name.
func (s Shape) String() string {
	switch s {
	case Bullet:
		return "bullet"
	case Checkbox:
		return "checkbox"
	case Numbered:
		return "numbered"
	default:
		return "plain"
	}
}

// Layout splits a line at the point where a marker is inserted.
// Prefix+Rest is always the original line.
type Layout struct {
	Shape  Shape
	Prefix string
	Rest   string
}

// Classify determines the shape of line and where its content starts.
//
//   - Checkbox: indent, one of "-+*", a space, "[c]" for any single c, a space
//   - Bullet:   indent, one of "-+*", a space
//   - Numbered: indent, digits, ".", a space
//   - Plain:    anything else; the prefix is the leading whitespace
func Classify(line string) Layout {
	body := strings.TrimLeftFunc(line, unicode.IsSpace)
	indent := len(line) - len(body)

	if n := bulletLen(body); n > 0 {
		if m := checkboxLen(body[n:]); m > 0 {
			return split(line, Checkbox, indent+n+m)
		}
		return split(line, Bullet, indent+n)
	}
	if n := numberLen(body); n > 0 {
		return split(line, Numbered, indent+n)
	}
	return split(line, Plain, indent)
}

func split(line string, shape Shape, at int) Layout {
	return Layout{Shape: shape, Prefix: line[:at], Rest: line[at:]}
}

// bulletLen returns the length of a "- " style list marker at the start of s.
func bulletLen(s string) int {
	if len(s) < 2 || !strings.ContainsRune("-+*", rune(s[0])) || !isBlank(s[1]) {
		return 0
	}
	return 2
}

// checkboxLen returns the length of a "[x] " group at the start of s.
func checkboxLen(s string) int {
	if len(s) < 4 || s[0] != '[' {
		return 0
	}
	r, size := utf8.DecodeRuneInString(s[1:])
	if r == utf8.RuneError || r == '\n' {
		return 0
	}
	end := 1 + size
	if len(s) < end+2 || s[end] != ']' || !isBlank(s[end+1]) {
		return 0
	}
	return end + 2
}

// numberLen returns the length of a "12. " style list marker at the start of s.
func numberLen(s string) int {
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits == 0 || len(s) < digits+2 || s[digits] != '.' || !isBlank(s[digits+1]) {
		return 0
	}
	return digits + 2
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}
