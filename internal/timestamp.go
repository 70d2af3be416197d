package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// maxStampRows bounds how many rows are tried when looking for a start instant
const maxStampRows = 10

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	// ambiguous numeric dates read month first
	"01/02/2006",
	"01-02-2006",
	"01.02.2006",
	"20060102",
	"020106", // DDMMYY as written by the GPS module
}

var clockLayouts = []string{
	"15:04:05",
	"15:04:05.000",
	"15:04",
}

// FindStampColumns locates the date and time-of-day columns of a raw header
// by case-insensitive substring match. The last matching header wins, and a
// header matching both "date" and "time" counts as the date column.
func FindStampColumns(header []string) (dateCol, timeCol string) {
	for _, name := range header {
		lower := strings.ToLower(name)
		switch {
		case strings.Contains(lower, "date"):
			dateCol = name
		case strings.Contains(lower, "heure"), strings.Contains(lower, "time"):
			timeCol = name
		}
	}
	return dateCol, timeCol
}

// RecordingStart determines the start instant of a raw table. The recorder
// writes UTC; the result is converted to loc. The first of the leading rows
// whose date and time both parse wins, otherwise now is used.
func RecordingStart(t *Table, loc *time.Location, now time.Time) (time.Time, bool) {
	dateCol, timeCol := FindStampColumns(t.Header())
	if dateCol != "" && timeCol != "" {
		dates, _ := t.Text(dateCol)
		clocks, _ := t.Text(timeCol)
		for i := 0; i < min(maxStampRows, t.Len(), len(dates), len(clocks)); i++ {
			stamp, err := ParseRecorderStamp(dates[i], clocks[i])
			if err != nil {
				LogDebug("Row %d: unusable timestamp (%s %s): %v", i, dates[i], clocks[i], err)
				continue
			}
			return stamp.In(loc), true
		}
	}
	LogWarn("No usable date/time in the first %d rows, using the current time", maxStampRows)
	return now.In(loc), false
}

// ParseRecorderStamp combines a date cell and a time cell into a UTC instant.
// Time cells are either HH:MM:SS or the GPS module's HHMMSScc digits.
func ParseRecorderStamp(dateCell, timeCell string) (time.Time, error) {
	day, err := parseDate(strings.TrimSpace(dateCell))
	if err != nil {
		return time.Time{}, err
	}
	h, m, s, err := parseClock(strings.TrimSpace(timeCell))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, s, 0, time.UTC), nil
}

func parseDate(cell string) (time.Time, error) {
	if cell == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, nil
		}
	}
	t, err := dateparse.ParseAny(cell)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised date %q: %w", cell, err)
	}
	return t, nil
}

func parseClock(cell string) (int, int, int, error) {
	if cell == "" {
		return 0, 0, 0, fmt.Errorf("empty time")
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t.Hour(), t.Minute(), t.Second(), nil
		}
	}

	digits := cell
	if i := strings.IndexByte(digits, '.'); i >= 0 {
		digits = digits[:i]
	}
	if !isDigits(digits) || len(digits) < 5 {
		return 0, 0, 0, fmt.Errorf("unrecognised time %q", cell)
	}
	// the firmware drops the leading zero before 10:00
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	t, err := time.Parse("150405", digits[:6])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("unrecognised time %q: %w", cell, err)
	}
	return t.Hour(), t.Minute(), t.Second(), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
