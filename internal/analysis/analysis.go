// Package analysis drives one open session: the active range, the chart and
// map sinks and the cursor they share.
package analysis

import (
	"errors"
	"fmt"

	"github.com/styx-analyse/styx-session/internal"
	"github.com/styx-analyse/styx-session/internal/cursor"
)

var (
	ErrTooManyCharts = errors.New("chart limit reached")
	ErrLastChart     = errors.New("at least one chart must remain")
)

// Options configures an Analysis
type Options struct {
	MaxCharts   int                 // defaults to internal.DefaultMaxCharts
	Energy      internal.EnergyMode // energy reduction for the range summary
	Advanced    bool                // list advanced series and link viewports
	DefaultKind SeriesKind          // series of the first chart, defaults to speed
}

type chartSlot struct {
	id   int
	view *ChartView
}

// Analysis is one session opened for inspection. It is not safe for
// concurrent use.
type Analysis struct {
	session *internal.Session
	opts    Options
	sync    *cursor.Sync

	start, end int
	current    *internal.Session

	charts []chartSlot
	mapID  int
	mapV   *MapView
}

// Reading is one column value at the cursor
type Reading struct {
	Column internal.Column `json:"-" yaml:"-"`
	Name   string          `json:"name" yaml:"name"`
	Unit   string          `json:"unit,omitempty" yaml:"unit,omitempty"`
	Value  float64         `json:"value" yaml:"value"`
}

// Open publishes the full range of session to a fresh set of views: one
// chart, plus a map when the session carries GPS columns.
func Open(session *internal.Session, opts Options) (*Analysis, error) {
	if session == nil || session.Table == nil {
		return nil, fmt.Errorf("no session to analyse")
	}
	if opts.MaxCharts <= 0 {
		opts.MaxCharts = internal.DefaultMaxCharts
	}
	if opts.DefaultKind == "" {
		opts.DefaultKind = KindSpeed
	}

	a := &Analysis{
		session: session,
		opts:    opts,
		sync:    cursor.NewSync(),
		mapID:   cursor.NoOwner,
	}
	a.sync.SetLinked(opts.Advanced)
	a.ResetRange()

	kind := opts.DefaultKind
	if !IsAvailable(session.Table, kind, opts.Advanced) {
		kind = firstAvailable(session.Table, opts.Advanced)
	}
	if _, err := a.AddChart(kind); err != nil {
		return nil, err
	}
	if session.HasGPS() {
		a.mapV = NewMapView()
		a.mapID = a.sync.Register(a.mapV)
	}

	internal.LogDebug("Opened %s: %d samples, %d charts, map=%t", session.ID, session.Len(), len(a.charts), a.mapV != nil)
	return a, nil
}

// Session returns the whole session
func (a *Analysis) Session() *internal.Session {
	return a.session
}

// Current returns the active range
func (a *Analysis) Current() *internal.Session {
	return a.current
}

// Range returns the inclusive row bounds of the active range
func (a *Analysis) Range() (int, int) {
	return a.start, a.end
}

// SetRange selects rows [start, end] of the session. The bounds are clamped
// and the cursor resets to the first row of the new range.
func (a *Analysis) SetRange(start, end int) {
	a.start, a.end = internal.ClampRange(a.session.Len(), start, end)
	a.current = internal.FilterRange(a.session, a.start, a.end)
	a.sync.Publish(a.current)
}

// SetRangePercent selects a range from slider positions on a 0-100 scale
func (a *Analysis) SetRangePercent(from, to float64) {
	start, end := internal.RangeFromPercent(a.session.Len(), from, to)
	a.SetRange(start, end)
}

// ResetRange selects the whole session
func (a *Analysis) ResetRange() {
	a.SetRange(0, a.session.LastIndex())
}

// Summary returns the display metrics of the active range
func (a *Analysis) Summary() internal.Summary {
	return a.current.Summary(a.opts.Energy)
}

// Instant returns every present column value at row index of the active
// range, in canonical column order
func (a *Analysis) Instant(index int) []Reading {
	if index < 0 || index >= a.current.Len() {
		return nil
	}
	var out []Reading
	for _, c := range a.current.Table.Schema() {
		if v, ok := a.current.Table.Value(c, index); ok {
			out = append(out, Reading{Column: c, Name: c.String(), Unit: c.Unit(), Value: v})
		}
	}
	return out
}

// CursorReadings returns the instant readout at the shared cursor
func (a *Analysis) CursorReadings() []Reading {
	return a.Instant(a.sync.State().Index)
}

// Cursor returns the shared cursor state
func (a *Analysis) Cursor() cursor.State {
	return a.sync.State()
}

// Charts returns the chart sinks in display order
func (a *Analysis) Charts() []*ChartView {
	out := make([]*ChartView, len(a.charts))
	for i, c := range a.charts {
		out[i] = c.view
	}
	return out
}

// Map returns the map sink, nil when the session has no GPS columns
func (a *Analysis) Map() *MapView {
	return a.mapV
}

// Advanced reports whether advanced mode is on
func (a *Analysis) Advanced() bool {
	return a.opts.Advanced
}

// AvailableKinds lists the series the active range can chart
func (a *Analysis) AvailableKinds() []SeriesKind {
	return Available(a.current.Table, a.opts.Advanced)
}

// AddChart appends a chart plotting kind
func (a *Analysis) AddChart(kind SeriesKind) (*ChartView, error) {
	if len(a.charts) >= a.opts.MaxCharts {
		return nil, fmt.Errorf("%w (%d)", ErrTooManyCharts, a.opts.MaxCharts)
	}
	if kind != KindNone && !IsAvailable(a.current.Table, kind, a.opts.Advanced) {
		return nil, fmt.Errorf("%w: %s", ErrKindUnavailable, kind)
	}
	view := NewChartView(kind)
	view.advanced = a.opts.Advanced
	id := a.sync.Register(view)
	a.charts = append(a.charts, chartSlot{id: id, view: view})
	return view, nil
}

// RemoveLastChart drops the most recently added chart
func (a *Analysis) RemoveLastChart() error {
	if len(a.charts) <= 1 {
		return ErrLastChart
	}
	last := a.charts[len(a.charts)-1]
	a.sync.Unregister(last.id)
	a.charts = a.charts[:len(a.charts)-1]
	return nil
}

// SetAdvanced toggles advanced mode. Leaving it unlinks the viewports and
// clears charts of advanced series.
func (a *Analysis) SetAdvanced(on bool) {
	a.opts.Advanced = on
	a.sync.SetLinked(on)
	for _, c := range a.charts {
		c.view.setAdvanced(on)
	}
}

// HoverChart moves the cursor to the row closest to x on chart i
func (a *Analysis) HoverChart(i int, x float64) bool {
	slot, ok := a.chart(i)
	if !ok {
		return false
	}
	return a.sync.Hover(slot.id, slot.view.ClosestIndex(x))
}

// ClickChart toggles the cursor lock from chart i at the row closest to x
func (a *Analysis) ClickChart(i int, x float64) bool {
	slot, ok := a.chart(i)
	if !ok {
		return false
	}
	return a.sync.Click(slot.id, slot.view.ClosestIndex(x))
}

// ClickMap toggles the cursor lock from the map at the fix closest to
// (lat, lon)
func (a *Analysis) ClickMap(lat, lon float64) bool {
	if a.mapV == nil {
		return false
	}
	index, ok := a.mapV.NearestIndex(lat, lon)
	if !ok {
		return false
	}
	return a.sync.Click(a.mapID, index)
}

// LockAt pins the cursor at row index of the active range, as a click on the
// first chart would. It fails while another view holds the lock.
func (a *Analysis) LockAt(index int) bool {
	slot, ok := a.chart(0)
	if !ok {
		return false
	}
	st := a.sync.State()
	if st.OwnedBy(slot.id) {
		return a.sync.Hover(slot.id, index)
	}
	return a.sync.Click(slot.id, index)
}

// ZoomChart sets the visible x range of chart i. In advanced mode the other
// charts follow; it reports whether the change was shared.
func (a *Analysis) ZoomChart(i int, vp cursor.Viewport) bool {
	slot, ok := a.chart(i)
	if !ok {
		return false
	}
	if vp.Min > vp.Max {
		vp.Min, vp.Max = vp.Max, vp.Min
	}
	slot.view.ApplyViewport(vp)
	return a.sync.Viewport(slot.id, vp)
}

func (a *Analysis) chart(i int) (chartSlot, bool) {
	if i < 0 || i >= len(a.charts) {
		return chartSlot{}, false
	}
	return a.charts[i], true
}

func firstAvailable(t *internal.Table, advanced bool) SeriesKind {
	if kinds := Available(t, advanced); len(kinds) > 0 {
		return kinds[0]
	}
	return KindNone
}
