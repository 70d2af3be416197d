package internal

import (
	"time"
)

// CreateTestSession creates a cleaned test session of n samples, one per
// second, riding north at a steady 18 km/h
func CreateTestSession(id string, n int) *Session {
	t := NewTable(n)
	elapsed := NewSeries(n)
	speed := NewSeries(n)
	lat := NewSeries(n)
	lon := NewSeries(n)
	for i := 0; i < n; i++ {
		elapsed.Set(i, float64(i))
		speed.Set(i, 18)
		lat.Set(i, 48.0+float64(i)*0.000045)
		lon.Set(i, 2.0)
	}
	t.SetSeries(ColElapsed, elapsed)
	t.SetSeries(ColSpeed, speed)
	t.SetSeries(ColLatitude, lat)
	t.SetSeries(ColLongitude, lon)

	start, err := ParseSessionID(id, time.UTC)
	if err != nil {
		start = time.Time{}
	}
	return &Session{ID: id, Start: start, Table: DeriveDistance(t)}
}

// CreateTestMetrics creates metrics for a ride of the given distance (m)
// and duration (s) with a fixed energy use
func CreateTestMetrics(distance, duration float64) Metrics {
	return Metrics{
		Distance:         distance,
		Duration:         duration,
		EnergyCharged:    0.5,
		EnergyDischarged: distance / 100,
	}
}
