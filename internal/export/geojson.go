package export

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/styx-analyse/styx-session/internal"
)

var errNoTrack = errors.New("no GPS track in range")

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string                 `json:"type"`
	Geometry   geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// GeoJSONExporter exports the map track as a LineString with start and end
// points. Coordinates are [lon, lat].
type GeoJSONExporter struct{}

// Export exports a report to GeoJSON format
func (e *GeoJSONExporter) Export(r *Report, w io.Writer) error {
	if len(r.Track) == 0 {
		return &internal.ExportError{Format: "geojson", Err: errNoTrack}
	}

	line := make([][2]float64, len(r.Track))
	for i, c := range r.Track {
		line[i] = [2]float64{c.Lon, c.Lat}
	}
	first, last := r.Track[0], r.Track[len(r.Track)-1]

	fc := featureCollection{
		Type: "FeatureCollection",
		Features: []feature{
			{
				Type:     "Feature",
				Geometry: geometry{Type: "LineString", Coordinates: line},
				Properties: map[string]interface{}{
					"id":         r.ID,
					"name":       r.Name,
					"distance_m": r.Summary.Distance,
				},
			},
			point("start", first.Lon, first.Lat),
			point("end", last.Lon, last.Lat),
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}

func point(role string, lon, lat float64) feature {
	return feature{
		Type:       "Feature",
		Geometry:   geometry{Type: "Point", Coordinates: [2]float64{lon, lat}},
		Properties: map[string]interface{}{"role": role},
	}
}

// Extension returns the file extension for this format
func (e *GeoJSONExporter) Extension() string {
	return "geojson"
}
