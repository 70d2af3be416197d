package internal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClampRange(t *testing.T) {
	tests := []struct {
		name               string
		n, start, end      int
		wantStart, wantEnd int
	}{
		{"valid", 10, 3, 7, 3, 7},
		{"inverted", 10, 7, 3, 3, 7},
		{"out of bounds", 10, -5, 20, 0, 9},
		{"empty widened forward", 10, 4, 4, 4, 5},
		{"empty at the end widened backward", 10, 9, 9, 8, 9},
		{"both past the end", 10, 12, 15, 8, 9},
		{"single sample", 1, 0, 0, 0, 0},
		{"empty session", 0, 0, 5, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ClampRange(tt.n, tt.start, tt.end)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("ClampRange(%d, %d, %d) = %d, %d, want %d, %d",
					tt.n, tt.start, tt.end, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestRangeFromPercent(t *testing.T) {
	tests := []struct {
		name               string
		from, to           float64
		wantStart, wantEnd int
	}{
		{"full", 0, 100, 0, 10},
		{"middle", 20, 50, 2, 5},
		{"collapsed", 50, 50, 5, 6},
		{"collapsed at the end", 100, 100, 9, 10},
		{"out of scale", -10, 150, 0, 10},
		{"inverted", 80, 20, 8, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := RangeFromPercent(11, tt.from, tt.to)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("RangeFromPercent(11, %v, %v) = %d, %d, want %d, %d",
					tt.from, tt.to, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestFilterRange(t *testing.T) {
	tbl := NewTable(6)
	tbl.SetSeries(ColElapsed, SeriesOf(0, 1, 2, 3, 4, 5))
	tbl.SetSeries(ColOdometer, SeriesOf(0, 3, 8, 14, 19, 23))
	s := &Session{ID: "session_2024-05-01_15-52-35.csv", Table: tbl}

	sub := FilterRange(s, 1, 3)
	if sub.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", sub.Len())
	}
	if sub.ID != s.ID || sub.Offset != 1 {
		t.Errorf("sub = %q offset %d, want %q offset 1", sub.ID, sub.Offset, s.ID)
	}
	if diff := cmp.Diff([]float64{3, 8, 14}, sub.Table.Series(ColOdometer).Values); diff != "" {
		t.Errorf("odometer mismatch (-want +got):\n%s", diff)
	}

	sm := sub.Summary(EnergyAuto)
	if sm.Distance != 11 || sm.DistanceSource != DistanceOdometer {
		t.Errorf("range distance = %v from %q, want 11 from odometer", sm.Distance, sm.DistanceSource)
	}
	if sm.Duration != 2 {
		t.Errorf("range duration = %v, want 2", sm.Duration)
	}

	nested := FilterRange(sub, 1, 2)
	if nested.Offset != 2 {
		t.Errorf("nested Offset = %d, want 2", nested.Offset)
	}

	clamped := FilterRange(s, 4, 40)
	if clamped.Offset != 4 || clamped.Len() != 2 {
		t.Errorf("clamped = offset %d len %d, want offset 4 len 2", clamped.Offset, clamped.Len())
	}
}

func TestFilterRange_IdentityPreservesSummary(t *testing.T) {
	s := &Session{ID: "session_2024-05-01_15-52-35.csv", Table: recorderTable(t)}

	full := s.Summary(EnergyAuto)
	sub := FilterRange(s, 0, s.LastIndex())
	if diff := cmp.Diff(full, sub.Summary(EnergyAuto)); diff != "" {
		t.Errorf("identity filter changed the summary (-full +filtered):\n%s", diff)
	}
	if diff := cmp.Diff(s.Metrics(), sub.Metrics()); diff != "" {
		t.Errorf("identity filter changed the metrics (-full +filtered):\n%s", diff)
	}
}

func TestFilterRange_EmptySession(t *testing.T) {
	s := &Session{ID: "x", Table: NewTable(0)}
	sub := FilterRange(s, 0, 10)
	if sub.Len() != 0 || sub.Offset != 0 {
		t.Errorf("FilterRange(empty) = len %d offset %d", sub.Len(), sub.Offset)
	}
}

func TestFilterRange_NestedOffsets(t *testing.T) {
	s := CreateTestSession("session_2024-06-01_08-00-00.csv", 100)

	outer := FilterRange(s, 10, 60)
	inner := FilterRange(outer, 5, 20)

	if inner.Offset != 15 || inner.Len() != 16 {
		t.Errorf("inner = offset %d len %d, want offset 15 len 16", inner.Offset, inner.Len())
	}
	if v, _ := inner.Table.Value(ColElapsed, 0); v != 15 {
		t.Errorf("inner first Temps = %v, want 15", v)
	}
	sm := inner.Summary(EnergyAuto)
	if sm.Duration != 15 || sm.DistanceSource != DistanceGPS {
		t.Errorf("inner summary = %+v", sm)
	}
	if sm.Distance < 74 || sm.Distance > 76 {
		t.Errorf("inner distance = %v, want about 75 m", sm.Distance)
	}
}
