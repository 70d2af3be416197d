package analysis

import (
	"errors"
	"math"

	"github.com/styx-analyse/styx-session/internal"
	"github.com/styx-analyse/styx-session/internal/cursor"
)

// ErrKindUnavailable is returned when a series cannot be charted from the
// active slice
var ErrKindUnavailable = errors.New("series not available for this session")

// Point is one plotted sample
type Point struct {
	X     float64 // elapsed seconds, or the row index when Temps is absent
	Y     float64
	Index int // row index in the active slice
}

// ChartView is a passive chart sink. It holds the prepared points of one
// series over the active slice, the cursor and its visible x range.
type ChartView struct {
	kind     SeriesKind
	advanced bool

	slice  *internal.Session
	xs     []float64
	points []Point

	cursor   cursor.State
	viewport *cursor.Viewport
}

// NewChartView creates a chart that will plot kind
func NewChartView(kind SeriesKind) *ChartView {
	return &ChartView{kind: kind, cursor: cursor.Unlocked(0)}
}

// ShowSlice implements cursor.View. A kind the slice cannot provide falls
// back to KindNone.
func (c *ChartView) ShowSlice(s *internal.Session) {
	c.slice = s
	c.viewport = nil
	c.xs = xAxis(s)
	if c.kind != KindNone && (s == nil || !IsAvailable(s.Table, c.kind, c.advanced)) {
		c.kind = KindNone
	}
	c.rebuild()
}

// UpdateCursor implements cursor.View
func (c *ChartView) UpdateCursor(st cursor.State) {
	c.cursor = st
}

// ApplyViewport implements cursor.ViewportView
func (c *ChartView) ApplyViewport(vp cursor.Viewport) {
	c.viewport = &vp
}

// ResetViewport implements cursor.ViewportView
func (c *ChartView) ResetViewport() {
	c.viewport = nil
}

// Kind returns the plotted series
func (c *ChartView) Kind() SeriesKind {
	return c.kind
}

// SetKind switches the plotted series
func (c *ChartView) SetKind(kind SeriesKind) error {
	if kind != KindNone {
		if c.slice == nil || !IsAvailable(c.slice.Table, kind, c.advanced) {
			return ErrKindUnavailable
		}
	}
	c.kind = kind
	c.rebuild()
	return nil
}

// Points returns the plotted samples. Rows where the series is missing are
// left out.
func (c *ChartView) Points() []Point {
	out := make([]Point, len(c.points))
	copy(out, c.points)
	return out
}

// Cursor returns the last cursor state received
func (c *ChartView) Cursor() cursor.State {
	return c.cursor
}

// CursorPoint returns the plotted point at the cursor, if the series has a
// value there
func (c *ChartView) CursorPoint() (Point, bool) {
	for _, p := range c.points {
		if p.Index == c.cursor.Index {
			return p, true
		}
	}
	return Point{}, false
}

// Viewport returns the visible x range: the applied viewport or, without
// one, the full extent of the slice
func (c *ChartView) Viewport() cursor.Viewport {
	if c.viewport != nil {
		return *c.viewport
	}
	if len(c.xs) == 0 {
		return cursor.Viewport{}
	}
	return cursor.Viewport{Min: c.xs[0], Max: c.xs[len(c.xs)-1]}
}

// ClosestIndex maps an x position to the slice row whose x is nearest.
// Ties resolve to the first such row.
func (c *ChartView) ClosestIndex(x float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, v := range c.xs {
		if d := math.Abs(v - x); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (c *ChartView) setAdvanced(on bool) {
	c.advanced = on
	if c.kind != KindNone && (c.slice == nil || !IsAvailable(c.slice.Table, c.kind, on)) {
		c.kind = KindNone
		c.rebuild()
	}
}

func (c *ChartView) rebuild() {
	c.points = nil
	if c.slice == nil || c.kind == KindNone {
		return
	}
	s := Compute(c.slice.Table, c.kind)
	if s == nil {
		return
	}
	for i := 0; i < s.Len(); i++ {
		if y, ok := s.At(i); ok {
			c.points = append(c.points, Point{X: c.xs[i], Y: y, Index: i})
		}
	}
}

// xAxis returns the x value of every row. Rows without an elapsed time
// reuse the previous one.
func xAxis(s *internal.Session) []float64 {
	n := s.Len()
	xs := make([]float64, n)
	var elapsed *internal.Series
	if n > 0 {
		elapsed = s.Table.Series(internal.ColElapsed)
	}
	for i := range xs {
		if elapsed == nil {
			xs[i] = float64(i)
			continue
		}
		if v, ok := elapsed.At(i); ok {
			xs[i] = v
		} else if i > 0 {
			xs[i] = xs[i-1]
		}
	}
	return xs
}
