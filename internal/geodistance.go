package internal

import "math"

// EarthRadius is the mean Earth radius in meters
const EarthRadius = 6371000.0

// Haversine returns the great-circle distance in meters between two fixes
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLatRad := (lat2 - lat1) * math.Pi / 180
	deltaLonRad := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLatRad/2)*math.Sin(deltaLatRad/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLonRad/2)*math.Sin(deltaLonRad/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadius * c
}

// DeriveDistance returns a copy of t with a cumulative GPS distance column.
// Tables without both Lat and Lon are returned unchanged. A step with a
// missing coordinate on either side adds nothing.
func DeriveDistance(t *Table) *Table {
	lat, lon := t.Series(ColLatitude), t.Series(ColLongitude)
	if lat == nil || lon == nil {
		return t
	}

	out := t.Clone()
	dist := NewSeries(t.Len())
	total := 0.0
	for i := 0; i < t.Len(); i++ {
		if i > 0 {
			total += stepDistance(lat, lon, i-1, i)
		}
		dist.Set(i, total)
	}
	out.SetSeries(ColGPSDistance, dist)
	return out
}

func stepDistance(lat, lon *Series, a, b int) float64 {
	lat1, ok1 := lat.At(a)
	lon1, ok2 := lon.At(a)
	lat2, ok3 := lat.At(b)
	lon2, ok4 := lon.At(b)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return 0
	}
	return Haversine(lat1, lon1, lat2, lon2)
}
