package mapdata

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/ColinToft/CourseFinder/internal/util/geo"
)

// MapData is the body returned by the Overpass interpreter for an "out geom" query.
type MapData struct {
	Version   float64 `json:"version"`
	Generator string  `json:"generator"`
	Osm3S     struct {
		TimestampOsmBase time.Time `json:"timestamp_osm_base"`
		Copyright        string    `json:"copyright"`
	} `json:"osm3s"`
	Elements []MapDataElement `json:"elements"`
}

type MapDataElement struct {
	Type     string          `json:"type"`
	ID       int64           `json:"id"`
	Geometry []GeometryPoint `json:"geometry,omitempty"`
	Tags     struct {
		Highway string `json:"highway,omitempty"`
		Name    string `json:"name,omitempty"`
		Surface string `json:"surface,omitempty"`
	} `json:"tags,omitempty"`
}

// GeometryPoint keeps the raw values so that a single bad vertex does not fail the whole body.
type GeometryPoint struct {
	Lat json.RawMessage `json:"lat"`
	Lon json.RawMessage `json:"lon"`
}

// Coordinate returns the point and whether both values are JSON numbers.
func (p GeometryPoint) Coordinate() (geo.Coordinate, bool) {
	lat, ok := number(p.Lat)
	if !ok {
		return geo.Coordinate{}, false
	}
	lon, ok := number(p.Lon)
	if !ok {
		return geo.Coordinate{}, false
	}
	return geo.Coordinate{Lat: lat, Lon: lon}, true
}

func number(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}

// Path builds the way's path, skipping vertices that are not numeric.
func (e MapDataElement) Path() geo.Path {
	path := make(geo.Path, 0, len(e.Geometry))
	for _, point := range e.Geometry {
		if c, ok := point.Coordinate(); ok {
			path = append(path, c)
		}
	}
	return path
}

// Paths returns one path per way carrying inline geometry, in element order.
// Ways left with fewer than two usable vertices are dropped entirely.
func (m *MapData) Paths() []geo.Path {
	paths := make([]geo.Path, 0, len(m.Elements))
	for _, element := range m.Elements {
		if element.Type != "way" || element.Geometry == nil {
			continue
		}
		if path := element.Path(); len(path) >= 2 {
			paths = append(paths, path)
		}
	}
	return paths
}
