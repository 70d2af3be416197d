package export

import (
	"time"

	"github.com/styx-analyse/styx-session/internal"
	"github.com/styx-analyse/styx-session/internal/analysis"
)

// Report is the exported view of an analysed range
type Report struct {
	ID         string           `json:"id" yaml:"id"`
	Name       string           `json:"name" yaml:"name"`
	Comment    string           `json:"comment,omitempty" yaml:"comment,omitempty"`
	Start      time.Time        `json:"start" yaml:"start"`
	RangeStart int              `json:"range_start" yaml:"range_start"`
	RangeEnd   int              `json:"range_end" yaml:"range_end"`
	Summary    internal.Summary `json:"summary" yaml:"summary"`
	Cursor     Cursor           `json:"cursor" yaml:"cursor"`
	Charts     []Chart          `json:"charts" yaml:"charts"`

	Slice *internal.Session `json:"-" yaml:"-"`
	Track []analysis.Coord  `json:"-" yaml:"-"`
}

// Cursor is the cursor position and the readout at it
type Cursor struct {
	Index    int                `json:"index" yaml:"index"`
	Locked   bool               `json:"locked" yaml:"locked"`
	Readings []analysis.Reading `json:"readings,omitempty" yaml:"readings,omitempty"`
}

// Chart names one plotted series
type Chart struct {
	Kind  analysis.SeriesKind `json:"kind" yaml:"kind"`
	Label string              `json:"label" yaml:"label"`
	Unit  string              `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// NewReport snapshots the active range of a, its charts and its cursor
func NewReport(a *analysis.Analysis, loc *time.Location, comment string) *Report {
	session := a.Session()
	start, end := a.Range()
	st := a.Cursor()

	r := &Report{
		ID:         session.ID,
		Name:       internal.DisplayName(session.ID, loc),
		Comment:    comment,
		Start:      session.Start,
		RangeStart: start,
		RangeEnd:   end,
		Summary:    a.Summary(),
		Cursor: Cursor{
			Index:    st.Index,
			Locked:   st.Locked,
			Readings: a.CursorReadings(),
		},
		Slice: a.Current(),
	}
	for _, c := range a.Charts() {
		if c.Kind() == analysis.KindNone {
			continue
		}
		r.Charts = append(r.Charts, Chart{Kind: c.Kind(), Label: analysis.Label(c.Kind()), Unit: analysis.Unit(c.Kind())})
	}
	if m := a.Map(); m != nil {
		r.Track = m.Track()
	}
	return r
}
