package recommend

import (
	"context"
)

// NoPathsMessage accompanies an empty answer when the map data source had nothing to offer.
const NoPathsMessage = "No raw paths found in the area. Try a different location or broaden search if possible."

// SearchParameters is a validated request for courses.
type SearchParameters struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKM float64 `json:"distance_km" validate:"gt=0"`
}

// Recommendation is the answer to one request. Message is set only when no paths were fetched.
type Recommendation struct {
	Message string
	Courses []Course
}

type Service interface {
	RecommendCourses(ctx context.Context, params SearchParameters) (Recommendation, error)
}
