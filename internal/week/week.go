// Package week dates notes by their filenames and groups them by ISO week.
//
// Daily notes such as "Daily/12-03-2024.md" carry their date at the start of
// the filename. Group sorts the notes under each configured folder prefix by
// that date and flags every note that opens a new ISO week, so a listing can
// draw a divider there.
package week

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrUndated is returned when a filename does not start with a date in the
// configured format.
var ErrUndated = errors.New("filename does not start with a date")

// Number returns the ISO-8601 week of t: weeks start on Monday and week 1 is
// the week holding the year's first Thursday.
func Number(t time.Time) int {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	thursday := day.AddDate(0, 0, 4-weekday)
	yearStart := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(thursday.Sub(yearStart).Hours() / 24)
	return (days + 1 + 6) / 7
}

// Key returns the ISO year and week of t. Week 1 of two different years
// yields different keys. The year is the one holding t's Thursday.
func Key(t time.Time) (year, week int) {
	year, _ = t.ISOWeek()
	return year, Number(t)
}

// Parser reads dates from the start of filenames.
type Parser struct {
	format string
	layout string
	width  int
}

// NewParser returns a Parser for a moment-style format such as "DD-MM-YYYY".
func NewParser(format string) (*Parser, error) {
	layout, err := Layout(format)
	if err != nil {
		return nil, err
	}
	return &Parser{
		format: format,
		layout: layout,
		width:  formatWidth(format),
	}, nil
}

// Format returns the format the parser was built from.
func (p *Parser) Format() string {
	return p.format
}

// Parse takes the final segment of path, keeps as many characters as the
// format has (escape brackets not counted) and parses them. Failures wrap ErrUndated.
func (p *Parser) Parse(path string) (time.Time, error) {
	name := path[strings.LastIndex(path, "/")+1:]
	head := name
	if utf8.RuneCountInString(name) > p.width {
		head = string([]rune(name)[:p.width])
	}
	date, err := time.ParseInLocation(p.layout, head, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUndated, name)
	}
	return date, nil
}

// ParseDatedFilename parses the date at the start of path's final segment.
func ParseDatedFilename(path, format string) (time.Time, error) {
	parser, err := NewParser(format)
	if err != nil {
		return time.Time{}, err
	}
	return parser.Parse(path)
}
