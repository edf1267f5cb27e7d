package geo

import (
	"encoding/json"
	"math"
)

// EarthRadiusKM is the mean Earth radius used by every distance computed here.
const EarthRadiusKM = 6371.0

// A Coordinate is a point in degrees. It is encoded as the pair [lat, lon].
type Coordinate struct {
	Lat float64
	Lon float64
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lat, c.Lon})
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	c.Lat, c.Lon = pair[0], pair[1]
	return nil
}

// A Path is an ordered sequence of coordinates along a way.
type Path []Coordinate

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Distance returns the haversine distance between a and b in kilometres.
func Distance(a, b Coordinate) float64 {
	lat1, lon1 := degreesToRadians(a.Lat), degreesToRadians(a.Lon)
	lat2, lon2 := degreesToRadians(b.Lat), degreesToRadians(b.Lon)
	dlat := lat2 - lat1
	dlon := lon2 - lon1

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)

	return 2 * EarthRadiusKM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// PathLength sums the distances between consecutive points, in order.
// Paths with fewer than two points have length 0.
func PathLength(p Path) float64 {
	if len(p) < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < len(p)-1; i++ {
		total += Distance(p[i], p[i+1])
	}
	return total
}

func (p Path) Length() float64 {
	return PathLength(p)
}

// Round rounds val to the given number of decimal places.
func Round(val float64, places uint) float64 {
	ratio := math.Pow(10, float64(places))
	return math.Round(val*ratio) / ratio
}
