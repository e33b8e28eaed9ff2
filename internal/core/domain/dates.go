package domain

import (
	"errors"
	"time"
)

// DateLayout is the calendar-day format of every record date. It is fixed
// width, so lexical comparison of two dates matches chronological order.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date (must be YYYY-MM-DD)")

// DateRange is an inclusive [Start, End] range of calendar days.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeekOf returns the Monday–Sunday range containing t, in t's location.
func WeekOf(t time.Time) DateRange {
	day := CalendarDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	monday := day.AddDate(0, 0, -offset)
	return DateRange{
		Start: FormatDate(monday),
		End:   FormatDate(monday.AddDate(0, 0, 6)),
	}
}

// Contains reports whether date falls inside the range, bounds included.
func (r DateRange) Contains(date string) bool {
	return date >= r.Start && date <= r.End
}

// CalendarDay normalises t to noon of the same day so that AddDate never
// lands on the wrong day across DST changes.
func CalendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date into loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ValidDate reports whether s is a real YYYY-MM-DD calendar day.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
