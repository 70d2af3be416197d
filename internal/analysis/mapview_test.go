package analysis

import (
	"testing"

	"github.com/styx-analyse/styx-session/internal/cursor"
	"github.com/styx-analyse/styx-session/testutil"
)

func TestMapTrack(t *testing.T) {
	m := NewMapView()
	m.ShowSlice(loadSession(t, "Temps,Lat,Lon\n0,48.0,2.0\n1,,2.1\n2,48.2,2.2\n3,95,2.3\n"))

	track := m.Track()
	if len(track) != 2 {
		t.Fatalf("Track() = %+v, want 2 fixes", track)
	}
	start, _ := m.Start()
	end, _ := m.End()
	if start.Index != 0 || end.Index != 2 || end.Lat != 48.2 {
		t.Errorf("Start() = %+v, End() = %+v", start, end)
	}
}

func TestMapMarkerFollowsCursor(t *testing.T) {
	m := NewMapView()
	m.ShowSlice(loadSession(t, "Temps,Lat,Lon\n0,48.0,2.0\n1,,\n2,48.2,2.2\n"))

	m.UpdateCursor(cursor.Unlocked(2))
	if c, ok := m.Marker(); !ok || c.Lat != 48.2 {
		t.Errorf("Marker() = %+v, %t", c, ok)
	}
	m.UpdateCursor(cursor.LockedBy(1, 0))
	if _, ok := m.Marker(); ok {
		t.Error("Marker() on a row without a fix should report false")
	}
	if !m.Cursor().Locked {
		t.Error("Cursor() lost the lock flag")
	}
}

func TestNearestIndex(t *testing.T) {
	m := NewMapView()
	if _, ok := m.NearestIndex(48, 2); ok {
		t.Error("NearestIndex() on an empty map should report false")
	}

	m.ShowSlice(loadSession(t, testutil.RecorderCSV))
	tests := []struct {
		lat, lon float64
		want     int
	}{
		{48.8566, 2.3522, 0},
		{48.85735, 2.35312, 5},
		{48.9, 2.4, 5},
		{48.0, 2.0, 0},
	}
	for _, tt := range tests {
		if got, _ := m.NearestIndex(tt.lat, tt.lon); got != tt.want {
			t.Errorf("NearestIndex(%v, %v) = %d, want %d", tt.lat, tt.lon, got, tt.want)
		}
	}
}
