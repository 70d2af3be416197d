package internal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestColumnByName(t *testing.T) {
	tests := []struct {
		name   string
		want   Column
		wantOK bool
	}{
		{"Vitesse", ColSpeed, true},
		{"vitesse", ColSpeed, true},
		{" Lat ", ColLatitude, true},
		{"Distance_GPS", ColGPSDistance, true},
		{"GazFrein", ColThrottle, true},
		{"Heure", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ColumnByName(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("ColumnByName(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ColumnByName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestColumn_StringAndUnit(t *testing.T) {
	if got := ColSpeed.String(); got != "Vitesse" {
		t.Errorf("ColSpeed.String() = %q, want Vitesse", got)
	}
	if got := ColSpeed.Unit(); got != "km/h" {
		t.Errorf("ColSpeed.Unit() = %q, want km/h", got)
	}
	if got := ColSatellites.Unit(); got != "" {
		t.Errorf("ColSatellites.Unit() = %q, want empty", got)
	}
	if got := Column(-1).String(); got != "unknown" {
		t.Errorf("Column(-1).String() = %q, want unknown", got)
	}
	if got := len(AllColumns()); got != int(numColumns) {
		t.Errorf("len(AllColumns()) = %d, want %d", got, numColumns)
	}
}

func TestSeries_FirstLast(t *testing.T) {
	s := NewSeries(4)
	if _, ok := s.First(); ok {
		t.Error("First() on an empty series should report no value")
	}
	s.Set(1, 3)
	s.Set(2, 7)

	if v, ok := s.First(); !ok || v != 3 {
		t.Errorf("First() = %v, %v, want 3, true", v, ok)
	}
	if v, ok := s.Last(); !ok || v != 7 {
		t.Errorf("Last() = %v, %v, want 7, true", v, ok)
	}
	if _, ok := s.At(0); ok {
		t.Error("At(0) should be missing")
	}
	if _, ok := s.At(9); ok {
		t.Error("At(9) out of range should be missing")
	}
	if diff := cmp.Diff([]float64{3, 7}, s.PresentValues()); diff != "" {
		t.Errorf("PresentValues() mismatch (-want +got):\n%s", diff)
	}

	s.Unset(2)
	if v, _ := s.Last(); v != 3 {
		t.Errorf("Last() after Unset = %v, want 3", v)
	}
}

func TestTable_SchemaAndHeader(t *testing.T) {
	tbl := NewTable(2)
	tbl.SetText("Date", []string{"010524", "010524"})
	tbl.SetSeries(ColSpeed, SeriesOf(1, 2))
	tbl.SetSeries(ColElapsed, SeriesOf(0, 1))

	if diff := cmp.Diff([]string{"Date", "Vitesse", "Temps"}, tbl.Header()); diff != "" {
		t.Errorf("Header() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Column{ColElapsed, ColSpeed}, tbl.Schema()); diff != "" {
		t.Errorf("Schema() mismatch (-want +got):\n%s", diff)
	}
	if tbl.Has(ColVoltage) {
		t.Error("Has(ColVoltage) = true for an absent column")
	}
	if tbl.Series(ColVoltage) != nil {
		t.Error("Series(ColVoltage) should be nil for an absent column")
	}

	// replacing a column keeps the header as is
	tbl.SetSeries(ColSpeed, SeriesOf(5, 6))
	if got := len(tbl.Header()); got != 3 {
		t.Errorf("len(Header()) after replace = %d, want 3", got)
	}
}

func TestTable_SetSeriesLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("SetSeries() with a short series should panic")
		}
	}()
	NewTable(3).SetSeries(ColSpeed, SeriesOf(1))
}

func TestTable_SliceIsACopy(t *testing.T) {
	tbl := NewTable(4)
	tbl.SetSeries(ColSpeed, SeriesOf(1, 2, 3, 4))
	tbl.SetText("Note", []string{"a", "b", "c", "d"})

	sub := tbl.Slice(1, 3)
	if sub.Len() != 2 {
		t.Fatalf("Slice(1, 3).Len() = %d, want 2", sub.Len())
	}
	if diff := cmp.Diff([]float64{2, 3}, sub.Series(ColSpeed).Values); diff != "" {
		t.Errorf("Slice values mismatch (-want +got):\n%s", diff)
	}
	notes, _ := sub.Text("Note")
	if diff := cmp.Diff([]string{"b", "c"}, notes); diff != "" {
		t.Errorf("Slice text mismatch (-want +got):\n%s", diff)
	}

	sub.Series(ColSpeed).Set(0, 99)
	if v, _ := tbl.Value(ColSpeed, 1); v != 2 {
		t.Errorf("modifying a slice changed the source table: got %v", v)
	}
}
