package week

import (
	"errors"
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"monday of week 1", date(2024, time.January, 1), 1},
		{"sunday of week 1", date(2024, time.January, 7), 1},
		{"monday of week 2", date(2024, time.January, 8), 2},
		{"mid march", date(2024, time.March, 12), 11},
		{"last day of 2024 is week 1 of 2025", date(2024, time.December, 31), 1},
		{"first day of 2021 is week 53 of 2020", date(2021, time.January, 1), 53},
		{"2020 has 53 weeks", date(2020, time.December, 31), 53},
		{"first sunday of 2023 is week 52", date(2023, time.January, 1), 52},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Number(tt.date); got != tt.want {
				t.Errorf("Number(%s) = %d, want %d", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestNumber_MatchesISOWeek(t *testing.T) {
	day := date(2019, time.December, 1)
	end := date(2027, time.February, 1)
	for ; day.Before(end); day = day.AddDate(0, 0, 1) {
		_, want := day.ISOWeek()
		if got := Number(day); got != want {
			t.Fatalf("Number(%s) = %d, ISOWeek = %d", day.Format("2006-01-02"), got, want)
		}
	}
}

func TestNumber_SameWithinWeekAndStepsAcrossWeeks(t *testing.T) {
	monday := date(2025, time.June, 2)
	base := Number(monday)
	for i := 1; i < 7; i++ {
		if got := Number(monday.AddDate(0, 0, i)); got != base {
			t.Errorf("day %d of week: Number = %d, want %d", i, got, base)
		}
	}
	if got := Number(monday.AddDate(0, 0, 7)); got != base+1 {
		t.Errorf("next monday: Number = %d, want %d", got, base+1)
	}
}

func TestNumber_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, time.January, 7, 23, 59, 0, 0, time.UTC)
	if got := Number(late); got != 1 {
		t.Errorf("Number = %d, want 1", got)
	}
}

func TestKey_DistinguishesYears(t *testing.T) {
	y1, w1 := Key(date(2024, time.January, 3))
	y2, w2 := Key(date(2025, time.January, 1))
	if w1 != w2 {
		t.Fatalf("weeks = %d, %d; want both 1", w1, w2)
	}
	if y1 == y2 {
		t.Errorf("years = %d, %d; want different", y1, y2)
	}
}

func TestKey_MatchesISOWeek(t *testing.T) {
	start := date(1999, time.December, 1)
	for d := start; d.Year() < 2031; d = d.AddDate(0, 0, 1) {
		year, week := Key(d)
		wantYear, wantWeek := d.ISOWeek()
		if year != wantYear || week != wantWeek {
			t.Fatalf("Key(%s) = (%d, %d), want (%d, %d)", d.Format("2006-01-02"), year, week, wantYear, wantWeek)
		}
	}
}

func TestParseDatedFilename(t *testing.T) {
	got, err := ParseDatedFilename("Daily/12-03-2024.md", "DD-MM-YYYY")
	if err != nil {
		t.Fatalf("ParseDatedFilename() error = %v", err)
	}
	if want := date(2024, time.March, 12); !got.Equal(want) {
		t.Errorf("ParseDatedFilename() = %v, want %v", got, want)
	}
}

func TestParseDatedFilename_Formats(t *testing.T) {
	tests := []struct {
		path   string
		format string
		want   time.Time
	}{
		{"Journal/2024-03-12 standup.md", "YYYY-MM-DD", date(2024, time.March, 12)},
		{"20240312.md", "YYYYMMDD", date(2024, time.March, 12)},
		{"a/b/c/12.03.24 notes.md", "DD.MM.YY", date(2024, time.March, 12)},
		{"Daily/2024_03_12.md", "YYYY_MM_DD", date(2024, time.March, 12)},
		{"Log/2024-03-12 note.md", "YYYY-MM-DD [note]", date(2024, time.March, 12)},
		{"Log/Day 12.03.2024.md", "[Day] DD.MM.YYYY", date(2024, time.March, 12)},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ParseDatedFilename(tt.path, tt.format)
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDatedFilename_Undated(t *testing.T) {
	tests := []string{
		"Daily/Weekly review.md",
		"Daily/31-02-2024.md",
		"Daily/1-3-2024.md",
		"Daily/",
		"",
	}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			_, err := ParseDatedFilename(path, "DD-MM-YYYY")
			if !errors.Is(err, ErrUndated) {
				t.Errorf("error = %v, want ErrUndated", err)
			}
		})
	}
}

func TestParseDatedFilename_BadFormat(t *testing.T) {
	_, err := ParseDatedFilename("Daily/12-03-2024.md", "DD-MM-QQQQ")
	if err == nil || errors.Is(err, ErrUndated) {
		t.Errorf("error = %v, want format error", err)
	}
}

func TestLayout(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"DD-MM-YYYY", "02-01-2006"},
		{"YYYY-MM-DD", "2006-01-02"},
		{"D.M.YY", "2.1.06"},
		{"dddd, MMMM D YYYY", "Monday, January 2 2006"},
		{"ddd MMM DD", "Mon Jan 02"},
		{"YYYY-MM-DD HH:mm:ss", "2006-01-02 15:04:05"},
		{"YYYY-MM-DD [note]", "2006-01-02 note"},
		{"[Week of] DD-MM", "Week of 02-01"},
		{"[]YYYY", "2006"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := Layout(tt.format)
			if err != nil {
				t.Fatalf("Layout() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Layout(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestLayout_Rejects(t *testing.T) {
	for _, format := range []string{
		"", "Daily YYYY", "YYYY-W1", "QQ",
		"M_D_YYYY",         // "_2" is Go's space-padded day
		"YYYY-MM-DD [Jan]", // Jan is a month name to Go
		"DD-MM-YYYY [3]",   // a bare 3 is Go's 12-hour clock
		"[unclosed YYYY",
	} {
		t.Run(format, func(t *testing.T) {
			if _, err := Layout(format); err == nil {
				t.Errorf("Layout(%q) should fail", format)
			}
		})
	}
}

func TestParser_Format(t *testing.T) {
	p, err := NewParser("DD-MM-YYYY")
	if err != nil {
		t.Fatal(err)
	}
	if p.Format() != "DD-MM-YYYY" {
		t.Errorf("Format() = %q", p.Format())
	}
}
