package mapdata_test

import (
	"encoding/json"
	"testing"

	"github.com/ColinToft/CourseFinder/internal/util/geo"
	"github.com/ColinToft/CourseFinder/internal/util/mapdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const overpassBody = `{
  "version": 0.6,
  "generator": "Overpass API 0.7.62",
  "osm3s": {"timestamp_osm_base": "2024-05-01T10:00:00Z", "copyright": "ODbL"},
  "elements": [
    {"type": "way", "id": 1, "tags": {"highway": "footway"},
     "geometry": [{"lat": 37.5, "lon": 127.0}, {"lat": 37.501, "lon": 127.001}]},
    {"type": "node", "id": 2, "lat": 37.5, "lon": 127.0},
    {"type": "way", "id": 3, "tags": {"highway": "path"}},
    {"type": "way", "id": 4, "geometry": [{"lat": 37.5, "lon": 127.0}, {"lat": "x", "lon": 127.1}]},
    {"type": "way", "id": 5,
     "geometry": [{"lat": 37.6, "lon": 127.2}, {"lat": null, "lon": 127.3}, {"lon": 1}, {"lat": true, "lon": 1}, {"lat": 37.61, "lon": 127.21}]},
    {"type": "way", "id": 6, "geometry": null},
    {"type": "way", "id": 7, "geometry": []}
  ]
}`

func TestMapDataPaths(t *testing.T) {
	var data mapdata.MapData
	require.NoError(t, json.Unmarshal([]byte(overpassBody), &data))

	paths := data.Paths()

	require.Len(t, paths, 2)
	assert.Equal(t, geo.Path{{Lat: 37.5, Lon: 127.0}, {Lat: 37.501, Lon: 127.001}}, paths[0])
	assert.Equal(t, geo.Path{{Lat: 37.6, Lon: 127.2}, {Lat: 37.61, Lon: 127.21}}, paths[1])
	assert.Equal(t, "Overpass API 0.7.62", data.Generator)
	assert.Equal(t, "footway", data.Elements[0].Tags.Highway)
}

func TestMapDataPathsEmpty(t *testing.T) {
	var data mapdata.MapData
	require.NoError(t, json.Unmarshal([]byte(`{"elements": []}`), &data))
	assert.Empty(t, data.Paths())

	require.NoError(t, json.Unmarshal([]byte(`{}`), &data))
	assert.Empty(t, data.Paths())
}

func TestGeometryPointCoordinate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"numbers", `{"lat": 1.5, "lon": -2}`, true},
		{"integer values", `{"lat": 0, "lon": 0}`, true},
		{"string latitude", `{"lat": "1.5", "lon": 2}`, false},
		{"null longitude", `{"lat": 1.5, "lon": null}`, false},
		{"missing latitude", `{"lon": 2}`, false},
		{"boolean", `{"lat": false, "lon": 2}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p mapdata.GeometryPoint
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &p))
			_, ok := p.Coordinate()
			assert.Equal(t, tt.ok, ok)
		})
	}
}
