package mapdata

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RunnableHighways are the highway tag values a course may follow.
var RunnableHighways = []string{
	"footway", "path", "track", "pedestrian", "living_street", "cycleway", "service",
}

// highwayPattern matches one of the values exactly, never a prefix.
func highwayPattern() string {
	return "^(" + strings.Join(RunnableHighways, "|") + ")$"
}

// BuildQuery returns the Overpass QL selecting runnable ways within radiusM metres
// of the point, with their geometry inlined.
func BuildQuery(lat, lon float64, radiusM int, timeout time.Duration) string {
	return fmt.Sprintf(`[out:json][timeout:%d];(way(around:%d,%s,%s)["highway"~"%s"];);out geom;`,
		int(timeout.Seconds()),
		radiusM,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64),
		highwayPattern(),
	)
}
