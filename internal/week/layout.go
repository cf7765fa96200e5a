package week

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// layoutTokens maps moment-style tokens to Go reference layout chunks.
// Longer tokens come first so "MMMM" wins over "MM".
var layoutTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"DD", "02"},
	{"D", "2"},
	{"dddd", "Monday"},
	{"ddd", "Mon"},
	{"HH", "15"},
	{"mm", "04"},
	{"ss", "05"},
}

// referenceDate renders layouts during validation. Every field differs from
// Go's reference time and from its neighbours, so a literal that Go would read
// as a layout chunk changes the output.
var referenceDate = time.Date(2024, time.November, 23, 13, 14, 15, 0, time.UTC)

// Layout translates a moment-style date format into a Go time layout.
//
// Supported tokens are YYYY, YY, MMMM, MMM, MM, M, DD, D, dddd, ddd, HH, mm
// and ss. Text inside [brackets] is literal, as are punctuation, spaces and
// digits between tokens. A bare letter that starts no token is an error.
// Literals that Go would read as part of a layout, such as "_" before D or
// "Jan" inside brackets, are rejected.
func Layout(format string) (string, error) {
	if format == "" {
		return "", errors.New("date format is empty")
	}

	var layout, want strings.Builder
	rest := format
	for rest != "" {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return "", fmt.Errorf("date format %q: unclosed [ at %q", format, rest)
			}
			layout.WriteString(rest[1:end])
			want.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}

		if chunk, n := matchToken(rest); n > 0 {
			layout.WriteString(chunk)
			want.WriteString(referenceDate.Format(chunk))
			rest = rest[n:]
			continue
		}

		r, size := utf8.DecodeRuneInString(rest)
		if unicode.IsLetter(r) {
			return "", fmt.Errorf("date format %q: unsupported token at %q", format, rest)
		}
		layout.WriteRune(r)
		want.WriteRune(r)
		rest = rest[size:]
	}

	if err := checkLayout(format, layout.String(), want.String()); err != nil {
		return "", err
	}
	return layout.String(), nil
}

// checkLayout renders the reference date with layout and parses it back.
// The rendering must match the token-by-token rendering in want.
func checkLayout(format, layout, want string) error {
	got := referenceDate.Format(layout)
	if got != want {
		return fmt.Errorf("date format %q: literal text clashes with a date field (renders %q, want %q)",
			format, got, want)
	}
	if _, err := time.ParseInLocation(layout, got, time.UTC); err != nil {
		return fmt.Errorf("date format %q cannot be parsed back: %w", format, err)
	}
	return nil
}

// formatWidth returns the number of characters a filename date takes up for
// format: its length in runes without the escape brackets.
func formatWidth(format string) int {
	n := 0
	rest := format
	for rest != "" {
		if rest[0] == '[' {
			if end := strings.IndexByte(rest, ']'); end >= 0 {
				n += utf8.RuneCountInString(rest[1:end])
				rest = rest[end+1:]
				continue
			}
		}
		_, size := utf8.DecodeRuneInString(rest)
		n++
		rest = rest[size:]
	}
	return n
}

func matchToken(s string) (string, int) {
	for _, t := range layoutTokens {
		if strings.HasPrefix(s, t.token) {
			return t.layout, len(t.token)
		}
	}
	return "", 0
}
