package analysis

import (
	"math"

	"github.com/styx-analyse/styx-session/internal"
	"github.com/styx-analyse/styx-session/internal/cursor"
)

// Coord is one valid GPS fix of the track
type Coord struct {
	Lat   float64
	Lon   float64
	Index int // row index in the active slice
}

// MapView is a passive map sink: the polyline of valid coordinates of the
// active slice and a marker at the cursor.
type MapView struct {
	track  []Coord
	cursor cursor.State
	marker *Coord
}

// NewMapView creates an empty map
func NewMapView() *MapView {
	return &MapView{cursor: cursor.Unlocked(0)}
}

// ShowSlice implements cursor.View
func (m *MapView) ShowSlice(s *internal.Session) {
	m.track = nil
	if s != nil && s.HasGPS() {
		lat := s.Table.Series(internal.ColLatitude)
		lon := s.Table.Series(internal.ColLongitude)
		for i := 0; i < s.Len(); i++ {
			la, ok1 := lat.At(i)
			lo, ok2 := lon.At(i)
			if ok1 && ok2 && validFix(la, lo) {
				m.track = append(m.track, Coord{Lat: la, Lon: lo, Index: i})
			}
		}
	}
	m.placeMarker()
}

// UpdateCursor implements cursor.View
func (m *MapView) UpdateCursor(st cursor.State) {
	m.cursor = st
	m.placeMarker()
}

// Track returns the polyline
func (m *MapView) Track() []Coord {
	out := make([]Coord, len(m.track))
	copy(out, m.track)
	return out
}

// Start returns the first valid fix
func (m *MapView) Start() (Coord, bool) {
	if len(m.track) == 0 {
		return Coord{}, false
	}
	return m.track[0], true
}

// End returns the last valid fix
func (m *MapView) End() (Coord, bool) {
	if len(m.track) == 0 {
		return Coord{}, false
	}
	return m.track[len(m.track)-1], true
}

// Marker returns the cursor position on the map. There is no marker when
// the cursor row has no valid fix.
func (m *MapView) Marker() (Coord, bool) {
	if m.marker == nil {
		return Coord{}, false
	}
	return *m.marker, true
}

// Cursor returns the last cursor state received
func (m *MapView) Cursor() cursor.State {
	return m.cursor
}

// NearestIndex returns the slice row of the fix closest to (lat, lon) by
// great-circle distance
func (m *MapView) NearestIndex(lat, lon float64) (int, bool) {
	best, bestDist := -1, math.Inf(1)
	for _, c := range m.track {
		if d := internal.Haversine(lat, lon, c.Lat, c.Lon); d < bestDist {
			best, bestDist = c.Index, d
		}
	}
	return best, best >= 0
}

func (m *MapView) placeMarker() {
	m.marker = nil
	for i := range m.track {
		if m.track[i].Index == m.cursor.Index {
			c := m.track[i]
			m.marker = &c
			return
		}
	}
}

func validFix(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
