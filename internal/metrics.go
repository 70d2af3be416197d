package internal

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Metrics is the contribution of one session to the lifetime totals
type Metrics struct {
	Distance         float64 `json:"distance" yaml:"distance"`                   // m
	Duration         float64 `json:"duration" yaml:"duration"`                   // s
	EnergyCharged    float64 `json:"energy_charged" yaml:"energy_charged"`       // Wh
	EnergyDischarged float64 `json:"energy_discharged" yaml:"energy_discharged"` // Wh
}

// MetricsOf extracts the lifetime metrics of a whole session table.
// Distance is the last GPS-derived value, falling back to the odometer;
// duration is the last elapsed time; energies are column sums.
func MetricsOf(t *Table) Metrics {
	var m Metrics
	if s, _ := distanceSeries(t); s != nil {
		m.Distance, _ = s.Last()
	}
	if s := t.Series(ColElapsed); s != nil {
		m.Duration, _ = s.Last()
	}
	if s := t.Series(ColWhCharged); s != nil {
		m.EnergyCharged = sum(s)
	}
	if s := t.Series(ColWhDischarged); s != nil {
		m.EnergyDischarged = sum(s)
	}
	return m
}

// DistanceSource names the column a distance figure came from
type DistanceSource string

const (
	DistanceNone     DistanceSource = ""
	DistanceGPS      DistanceSource = "GPS"
	DistanceOdometer DistanceSource = "odometer"
)

func distanceSeries(t *Table) (*Series, DistanceSource) {
	if s := t.Series(ColGPSDistance); s != nil {
		return s, DistanceGPS
	}
	if s := t.Series(ColOdometer); s != nil {
		return s, DistanceOdometer
	}
	return nil, DistanceNone
}

// EnergyMode selects how an energy column is reduced over a range
type EnergyMode int

const (
	// EnergyAuto classifies each column with ClassifyEnergy
	EnergyAuto EnergyMode = iota
	// EnergyCumulative treats the column as a running counter (last - first)
	EnergyCumulative
	// EnergyInstantaneous treats each sample as a quantity to sum
	EnergyInstantaneous
)

// MarshalText renders the mode by name
func (m EnergyMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses a mode name
func (m *EnergyMode) UnmarshalText(text []byte) error {
	mode, err := ParseEnergyMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseEnergyMode parses "auto", "cumulative" or "instantaneous". The empty
// string is auto.
func ParseEnergyMode(s string) (EnergyMode, error) {
	switch s {
	case "", "auto":
		return EnergyAuto, nil
	case "cumulative":
		return EnergyCumulative, nil
	case "instantaneous":
		return EnergyInstantaneous, nil
	default:
		return EnergyAuto, fmt.Errorf("unknown energy mode %q", s)
	}
}

func (m EnergyMode) String() string {
	switch m {
	case EnergyCumulative:
		return "cumulative"
	case EnergyInstantaneous:
		return "instantaneous"
	default:
		return "auto"
	}
}

// ClassifyEnergy reports a column as cumulative when its present values never
// decrease and the last exceeds the first. This is a heuristic: short or
// noisy ranges can be misclassified, so callers may force a mode instead.
func ClassifyEnergy(s *Series) EnergyMode {
	vals := s.PresentValues()
	if len(vals) < 2 || vals[len(vals)-1] <= vals[0] {
		return EnergyInstantaneous
	}
	for i := 1; i < len(vals); i++ {
		if vals[i] < vals[i-1] {
			return EnergyInstantaneous
		}
	}
	return EnergyCumulative
}

// ReduceEnergy reduces an energy column with the given mode and returns the
// mode actually applied.
func ReduceEnergy(s *Series, mode EnergyMode) (float64, EnergyMode) {
	if mode == EnergyAuto {
		mode = ClassifyEnergy(s)
	}
	if mode == EnergyCumulative {
		first, ok1 := s.First()
		last, ok2 := s.Last()
		if !ok1 || !ok2 {
			return 0, mode
		}
		return last - first, mode
	}
	return sum(s), mode
}

// Summary holds the display metrics of a session range. Fields whose
// source column is absent stay zero and their Has flag is false.
type Summary struct {
	Samples int `json:"samples" yaml:"samples"`

	Distance       float64        `json:"distance_m" yaml:"distance_m"`
	DistanceSource DistanceSource `json:"distance_source,omitempty" yaml:"distance_source,omitempty"`

	StartTime float64 `json:"start_s" yaml:"start_s"`
	EndTime   float64 `json:"end_s" yaml:"end_s"`
	Duration  float64 `json:"duration_s" yaml:"duration_s"`

	HasSpeed bool    `json:"has_speed" yaml:"has_speed"`
	AvgSpeed float64 `json:"avg_speed_kmh" yaml:"avg_speed_kmh"`
	MaxSpeed float64 `json:"max_speed_kmh" yaml:"max_speed_kmh"`

	HasAltitude   bool    `json:"has_altitude" yaml:"has_altitude"`
	MinAltitude   float64 `json:"min_altitude_m" yaml:"min_altitude_m"`
	MaxAltitude   float64 `json:"max_altitude_m" yaml:"max_altitude_m"`
	ElevationGain float64 `json:"elevation_gain_m" yaml:"elevation_gain_m"`

	HasCharged       bool       `json:"has_charged" yaml:"has_charged"`
	EnergyCharged    float64    `json:"energy_charged_wh" yaml:"energy_charged_wh"`
	ChargedMode      EnergyMode `json:"charged_mode" yaml:"charged_mode"`
	HasDischarged    bool       `json:"has_discharged" yaml:"has_discharged"`
	EnergyDischarged float64    `json:"energy_discharged_wh" yaml:"energy_discharged_wh"`
	DischargedMode   EnergyMode `json:"discharged_mode" yaml:"discharged_mode"`

	AvgVoltage   float64 `json:"avg_voltage_v,omitempty" yaml:"avg_voltage_v,omitempty"`
	MaxCurrentIn float64 `json:"max_current_in_a,omitempty" yaml:"max_current_in_a,omitempty"`
}

// Summarize computes the display metrics of t. Distance and duration are
// end-of-range minus start-of-range values, so t may be any contiguous
// range of a session.
func Summarize(t *Table, energy EnergyMode) Summary {
	sm := Summary{Samples: t.Len()}

	if s, src := distanceSeries(t); s != nil {
		sm.DistanceSource = src
		sm.Distance = delta(s)
	}
	if s := t.Series(ColElapsed); s != nil {
		sm.StartTime, _ = s.First()
		sm.EndTime, _ = s.Last()
		sm.Duration = sm.EndTime - sm.StartTime
	}
	if s := t.Series(ColSpeed); s != nil {
		if avg, ok := mean(s); ok {
			sm.HasSpeed = true
			sm.AvgSpeed = avg
			sm.MaxSpeed, _ = maxOf(s)
		}
	}
	if s := t.Series(ColAltitude); s != nil {
		if lo, ok := minOf(s); ok {
			hi, _ := maxOf(s)
			sm.HasAltitude = true
			sm.MinAltitude, sm.MaxAltitude = lo, hi
			sm.ElevationGain = hi - lo
		}
	}
	if s := t.Series(ColWhCharged); s != nil {
		sm.HasCharged = true
		sm.EnergyCharged, sm.ChargedMode = ReduceEnergy(s, energy)
	}
	if s := t.Series(ColWhDischarged); s != nil {
		sm.HasDischarged = true
		sm.EnergyDischarged, sm.DischargedMode = ReduceEnergy(s, energy)
	}
	if s := t.Series(ColVoltage); s != nil {
		sm.AvgVoltage, _ = mean(s)
	}
	if s := t.Series(ColCurrentIn); s != nil {
		sm.MaxCurrentIn, _ = maxOf(s)
	}
	return sm
}

func delta(s *Series) float64 {
	first, ok1 := s.First()
	last, ok2 := s.Last()
	if !ok1 || !ok2 {
		return 0
	}
	return last - first
}

func sum(s *Series) float64 {
	total := 0.0
	for i, v := range s.Values {
		if s.Present[i] {
			total += v
		}
	}
	return total
}

func mean(s *Series) (float64, bool) {
	values := s.PresentValues()
	if len(values) == 0 {
		return 0, false
	}
	return stat.Mean(values, nil), true
}

func minOf(s *Series) (float64, bool) {
	values := s.PresentValues()
	if len(values) == 0 {
		return 0, false
	}
	return floats.Min(values), true
}

func maxOf(s *Series) (float64, bool) {
	values := s.PresentValues()
	if len(values) == 0 {
		return 0, false
	}
	return floats.Max(values), true
}
