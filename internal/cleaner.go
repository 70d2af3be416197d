package internal

import (
	"math"
	"sort"
)

// CleanRules holds the bounds applied by Clean
type CleanRules struct {
	MaxSpeed        float64 `yaml:"max_speed"`         // km/h
	MaxVoltage      float64 `yaml:"max_voltage"`       // V
	MaxAltitudeJump float64 `yaml:"max_altitude_jump"` // m between consecutive samples
	MaxCurrent      float64 `yaml:"max_current"`       // A, absolute
}

// DefaultCleanRules returns the bounds used for the recorder's sensors
func DefaultCleanRules() CleanRules {
	return CleanRules{
		MaxSpeed:        80,
		MaxVoltage:      50,
		MaxAltitudeJump: 100,
		MaxCurrent:      100,
	}
}

// Clean corrects out-of-range values with the default rules
func Clean(t *Table) *Table {
	return CleanWith(t, DefaultCleanRules())
}

// CleanWith returns a corrected copy of t. Each rule reads only its own
// column, so the order they run in does not matter. The input is untouched.
func CleanWith(t *Table, rules CleanRules) *Table {
	out := t.Clone()

	if s := out.Series(ColSpeed); s != nil {
		clampToMedian(s, rules.MaxSpeed)
	}
	if s := out.Series(ColVoltage); s != nil {
		clampToMedian(s, rules.MaxVoltage)
	}
	if s := out.Series(ColAltitude); s != nil {
		interpolateJumps(s, rules.MaxAltitudeJump)
	}
	if s := out.Series(ColLatitude); s != nil {
		unsetOutside(s, -90, 90)
	}
	if s := out.Series(ColLongitude); s != nil {
		unsetOutside(s, -180, 180)
	}
	if s := out.Series(ColCurrentIn); s != nil {
		zeroAbove(s, rules.MaxCurrent)
	}
	if s := out.Series(ColMotorCurrent); s != nil {
		zeroAbove(s, rules.MaxCurrent)
	}
	return out
}

// clampToMedian zeroes negative values, then replaces values above limit with
// the column median taken once, after the negative pass. A median that is
// itself above limit is capped at limit.
func clampToMedian(s *Series, limit float64) {
	for i, v := range s.Values {
		if s.Present[i] && v < 0 {
			s.Values[i] = 0
		}
	}
	med, ok := Median(s.PresentValues())
	if !ok {
		return
	}
	med = math.Min(med, limit)
	for i, v := range s.Values {
		if s.Present[i] && v > limit {
			s.Values[i] = med
		}
	}
}

// interpolateJumps marks samples whose step from the previous sample exceeds
// maxJump, then rebuilds them linearly from the nearest unmarked neighbours.
// A marked run touching either end of the table takes the single neighbour
// it has. Steps are taken on the original values.
func interpolateJumps(s *Series, maxJump float64) {
	n := s.Len()
	marked := make([]bool, n)
	found := false
	for i := 1; i < n; i++ {
		if !s.Present[i] || !s.Present[i-1] {
			continue
		}
		if math.Abs(s.Values[i]-s.Values[i-1]) > maxJump {
			marked[i] = true
			found = true
		}
	}
	if !found {
		return
	}

	anchor := func(i int) bool { return s.Present[i] && !marked[i] }
	orig := make([]float64, n)
	copy(orig, s.Values)

	for i := 0; i < n; i++ {
		if !marked[i] {
			continue
		}
		left := -1
		for j := i - 1; j >= 0; j-- {
			if anchor(j) {
				left = j
				break
			}
		}
		right := -1
		for j := i + 1; j < n; j++ {
			if anchor(j) {
				right = j
				break
			}
		}

		switch {
		case left >= 0 && right >= 0:
			frac := float64(i-left) / float64(right-left)
			s.Values[i] = orig[left] + frac*(orig[right]-orig[left])
		case left >= 0:
			s.Values[i] = orig[left]
		case right >= 0:
			s.Values[i] = orig[right]
		}
	}
}

func unsetOutside(s *Series, lo, hi float64) {
	for i, v := range s.Values {
		if s.Present[i] && (v < lo || v > hi || math.IsNaN(v)) {
			s.Unset(i)
		}
	}
}

func zeroAbove(s *Series, limit float64) {
	for i, v := range s.Values {
		if s.Present[i] && math.Abs(v) > limit {
			s.Values[i] = 0
		}
	}
}

// Median returns the median of values, averaging the middle pair for even counts
func Median(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}
