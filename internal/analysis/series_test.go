package analysis

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/styx-analyse/styx-session/internal"
	"github.com/styx-analyse/styx-session/testutil"
)

func TestAvailable(t *testing.T) {
	tbl := loadSession(t, testutil.RecorderCSV).Table

	tests := []struct {
		name     string
		advanced bool
		want     []SeriesKind
	}{
		{
			name: "normal",
			want: []SeriesKind{KindVoltage, KindSpeed, KindThrottle, KindEnergyBalance, KindPower, KindAltitude},
		},
		{
			name:     "advanced",
			advanced: true,
			want: []SeriesKind{
				KindVoltage, KindSpeed, KindThrottle, KindEnergyBalance, KindPower, KindAltitude,
				KindCharged, KindDischarged, KindOdometer, KindGPSDistance, KindCurrentIn,
				KindMotorCurrent, KindLatitude, KindLongitude, KindSatellites,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Available(tbl, tt.advanced)); diff != "" {
				t.Errorf("Available() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAvailableNeedsBothEnergyColumns(t *testing.T) {
	tbl := loadSession(t, "Temps,WHCharged\n0,0\n1,0.1\n").Table
	if IsAvailable(tbl, KindEnergyBalance, false) {
		t.Error("energy balance offered without WHDischarged")
	}
	if Compute(tbl, KindEnergyBalance) != nil {
		t.Error("Compute() of a missing series should be nil")
	}
}

func TestComputeDerived(t *testing.T) {
	tbl := loadSession(t, testutil.RecorderCSV).Table

	power := Compute(tbl, KindPower)
	if v, _ := power.At(3); math.Abs(v-40.7*14.8) > 1e-9 {
		t.Errorf("power[3] = %v, want %v", v, 40.7*14.8)
	}

	balance := Compute(tbl, KindEnergyBalance)
	if v, _ := balance.At(1); math.Abs(v-(-0.5)) > 1e-9 {
		t.Errorf("energy_balance[1] = %v, want -0.5", v)
	}

	speed := Compute(tbl, KindSpeed)
	speed.Set(0, 99)
	if v, _ := tbl.Value(internal.ColSpeed, 0); v == 99 {
		t.Error("Compute() returned the table's own series")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want SeriesKind
		ok   bool
	}{
		{"speed", KindSpeed, true},
		{"hdop", KindHDOP, true},
		{"none", KindNone, true},
		{"torque", "torque", false},
	}
	for _, tt := range tests {
		got, ok := ParseKind(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseKind(%q) = %q, %t, want %q, %t", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLabelAndUnit(t *testing.T) {
	if Label(KindPower) != "Electrical power" || Unit(KindPower) != "W" {
		t.Errorf("power = %q %q", Label(KindPower), Unit(KindPower))
	}
	if Unit(KindSpeed) != "km/h" {
		t.Errorf("Unit(speed) = %q", Unit(KindSpeed))
	}
	if Label(KindNone) != "No chart" {
		t.Errorf("Label(none) = %q", Label(KindNone))
	}
	if len(Kinds()) != 18 {
		t.Errorf("Kinds() has %d entries, want 18", len(Kinds()))
	}
}
