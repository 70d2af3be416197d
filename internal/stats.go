package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"
)

// statsScale is the fixed-point resolution of the running totals (1/1000 of
// a meter, second or watt-hour). Totals are kept on this grid so add and
// remove cancel exactly and summation order does not matter.
const statsScale = 1000

// maxFixed caps the running totals at the largest integer a float64 holds exactly
const maxFixed int64 = 1 << 53

// AggregateStats is the lifetime running total over all retained sessions
type AggregateStats struct {
	TotalDistance         float64   `json:"total_distance"`          // m
	TotalDuration         float64   `json:"total_duration"`          // s
	TotalTrips            int       `json:"total_trips"`
	TotalEnergyCharged    float64   `json:"total_energy_charged"`    // Wh
	TotalEnergyDischarged float64   `json:"total_energy_discharged"` // Wh
	LastUpdated           time.Time `json:"last_updated"`
}

// Add folds one session's metrics into the totals
func (a *AggregateStats) Add(m Metrics) {
	a.TotalDistance = addFixed(a.TotalDistance, m.Distance)
	a.TotalDuration = addFixed(a.TotalDuration, m.Duration)
	a.TotalEnergyCharged = addFixed(a.TotalEnergyCharged, m.EnergyCharged)
	a.TotalEnergyDischarged = addFixed(a.TotalEnergyDischarged, m.EnergyDischarged)
	a.TotalTrips++
}

// Remove takes one session's metrics out of the totals, flooring every field
// at zero to absorb drift left by partial failures.
func (a *AggregateStats) Remove(m Metrics) {
	a.TotalDistance = subFixed(a.TotalDistance, m.Distance)
	a.TotalDuration = subFixed(a.TotalDuration, m.Duration)
	a.TotalEnergyCharged = subFixed(a.TotalEnergyCharged, m.EnergyCharged)
	a.TotalEnergyDischarged = subFixed(a.TotalEnergyDischarged, m.EnergyDischarged)
	a.TotalTrips = max(0, a.TotalTrips-1)
}

// Totals returns the record without its timestamp, for comparisons
func (a AggregateStats) Totals() AggregateStats {
	a.LastUpdated = time.Time{}
	return a
}

// toFixed quantizes a metric; negative contributions count as zero
func toFixed(v float64) int64 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	scaled := math.Round(v * statsScale)
	if scaled >= float64(maxFixed) {
		return maxFixed
	}
	return int64(scaled)
}

// contribution quantizes one session's metric. Infinite values and values
// beyond the totals' range count as zero, so add and remove still cancel.
func contribution(v float64) int64 {
	if math.IsInf(v, 0) || v*statsScale >= float64(maxFixed) {
		return 0
	}
	return toFixed(v)
}

func fromFixed(v int64) float64 {
	return float64(v) / statsScale
}

func addFixed(total, v float64) float64 {
	return fromFixed(min(maxFixed, toFixed(total)+contribution(v)))
}

func subFixed(total, v float64) float64 {
	return fromFixed(max(0, toFixed(total)-contribution(v)))
}

// LoadStats reads the aggregate record. A missing file yields zero totals.
func LoadStats(path string) (*AggregateStats, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &AggregateStats{}, nil
	}
	if err != nil {
		return nil, &StorageError{Path: path, Op: "read", Err: err}
	}

	var stats AggregateStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, &ParseError{Source: "stats", Key: path, Err: err}
	}
	if stats.TotalTrips < 0 {
		stats.TotalTrips = 0
	}
	for _, f := range []*float64{&stats.TotalDistance, &stats.TotalDuration, &stats.TotalEnergyCharged, &stats.TotalEnergyDischarged} {
		*f = fromFixed(toFixed(*f))
	}
	return &stats, nil
}

// SaveStats writes the aggregate record atomically
func SaveStats(path string, stats *AggregateStats) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	return WriteFileAtomic(path, data, 0644)
}
