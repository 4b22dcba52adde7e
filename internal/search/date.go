package search

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Day is a calendar date without time or zone.
type Day struct {
	time.Time
}

func (d Day) String() string {
	return d.Format("2006-01-02")
}

// titleDateRe matches the date an entry title starts with: 20230401,
// 2023-04-01, 2023/4/1, 2023.4.1 or 2023年4月1日.
var titleDateRe = regexp.MustCompile(`^(\d{4})(?:(\d{2})(\d{2})|[-/.](\d{1,2})[-/.](\d{1,2})|年(\d{1,2})月(\d{1,2})日)`)

func newDay(y, m, d int) (Day, bool) {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return Day{}, false
	}
	return Day{t}, true
}

// EntryDate returns the day an entry title starts with.
func EntryDate(title string) (Day, bool) {
	m := titleDateRe.FindStringSubmatch(strings.TrimSpace(title))
	if m == nil {
		return Day{}, false
	}

	y, _ := strconv.Atoi(m[1])
	for i := 2; i+1 < len(m); i += 2 {
		if m[i] == "" {
			continue
		}
		mo, _ := strconv.Atoi(m[i])
		d, _ := strconv.Atoi(m[i+1])
		return newDay(y, mo, d)
	}
	return Day{}, false
}

// ParseDay reads a day from user input. Title layouts are tried first;
// anything else ("oct 7, 1970", "2014-04") goes through dateparse.
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	if d, ok := EntryDate(s); ok {
		return d, nil
	}

	t, err := dateparse.ParseAny(s)
	if err != nil {
		return Day{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	d, _ := newDay(t.Year(), int(t.Month()), t.Day())
	return d, nil
}
