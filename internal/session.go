package internal

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	sessionPrefix = "session_"
	sessionExt    = ".csv"
	sessionLayout = "2006-01-02_15-04-05"
)

// Session is one imported recording: a cleaned, derived table plus identity.
// A Session returned by FilterRange shares the parent's ID and records the
// parent row its first row came from in Offset.
type Session struct {
	ID     string    `json:"id"`
	Start  time.Time `json:"start"`
	Offset int       `json:"offset"`
	Table  *Table    `json:"-"`
}

// Len returns the number of samples
func (s *Session) Len() int {
	if s == nil || s.Table == nil {
		return 0
	}
	return s.Table.Len()
}

// LastIndex returns the index of the last sample, -1 when empty
func (s *Session) LastIndex() int {
	return s.Len() - 1
}

// Metrics returns the lifetime metrics of the session content
func (s *Session) Metrics() Metrics {
	return MetricsOf(s.Table)
}

// Summary returns the display metrics of the session content
func (s *Session) Summary(energy EnergyMode) Summary {
	return Summarize(s.Table, energy)
}

// HasGPS reports whether both coordinate columns are present
func (s *Session) HasGPS() bool {
	return s.Table != nil && s.Table.Has(ColLatitude) && s.Table.Has(ColLongitude)
}

// SessionID returns the canonical file name for a recording start instant
func SessionID(start time.Time) string {
	return sessionPrefix + start.Format(sessionLayout) + sessionExt
}

// ParseSessionID recovers the start instant encoded in a session file name
func ParseSessionID(id string, loc *time.Location) (time.Time, error) {
	if !ValidSessionID(id) {
		return time.Time{}, fmt.Errorf("invalid session id %q", id)
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(id, sessionPrefix), sessionExt)
	return time.ParseInLocation(sessionLayout, stamp, loc)
}

// ValidSessionID reports whether id is a bare session file name
func ValidSessionID(id string) bool {
	if id == "" || filepath.Base(id) != id {
		return false
	}
	return strings.HasPrefix(id, sessionPrefix) && strings.HasSuffix(id, sessionExt)
}

// DisplayName formats a session id for humans, falling back to the id itself
func DisplayName(id string, loc *time.Location) string {
	t, err := ParseSessionID(id, loc)
	if err != nil {
		return id
	}
	return t.Format("Trip of 02 January 2006, 15h04")
}
