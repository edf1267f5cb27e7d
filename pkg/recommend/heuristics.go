package recommend

import "math"

// Defaults for turning a desired distance into a search.
const (
	DefaultRadiusPerKM    = 1500.0 // metres of search radius per desired kilometre
	DefaultMinRadiusM     = 1000.0
	DefaultMaxRadiusM     = 5000.0
	DefaultToleranceRatio = 0.20
)

// Heuristics are tunable product numbers, not mathematical constants.
type Heuristics struct {
	RadiusPerKM    float64
	MinRadiusM     float64
	MaxRadiusM     float64
	ToleranceRatio float64
}

func DefaultHeuristics() Heuristics {
	return Heuristics{
		RadiusPerKM:    DefaultRadiusPerKM,
		MinRadiusM:     DefaultMinRadiusM,
		MaxRadiusM:     DefaultMaxRadiusM,
		ToleranceRatio: DefaultToleranceRatio,
	}
}

// SearchRadius returns the query radius in whole metres, clamped to [MinRadiusM, MaxRadiusM].
func (h Heuristics) SearchRadius(distanceKM float64) int {
	radius := math.Max(h.MinRadiusM, math.Min(distanceKM*h.RadiusPerKM, h.MaxRadiusM))
	return int(radius)
}

// Tolerance returns the accepted deviation from distanceKM, in kilometres.
func (h Heuristics) Tolerance(distanceKM float64) float64 {
	return distanceKM * h.ToleranceRatio
}
