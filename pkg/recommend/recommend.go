package recommend

// Course recommendation service implementation

import (
	"context"

	"github.com/ColinToft/CourseFinder/internal/util/errors"
	"github.com/ColinToft/CourseFinder/pkg/mapdata"
)

type recommendService struct {
	source     mapdata.Service
	heuristics Heuristics
}

func NewService(source mapdata.Service, heuristics Heuristics) Service {
	return &recommendService{source: source, heuristics: heuristics}
}

func (s *recommendService) RecommendCourses(ctx context.Context, params SearchParameters) (Recommendation, error) {
	if !(params.DistanceKM > 0) {
		return Recommendation{}, errors.InvalidArgument("distance_km must be greater than 0")
	}

	radius := s.heuristics.SearchRadius(params.DistanceKM)
	tolerance := s.heuristics.Tolerance(params.DistanceKM)

	paths := s.source.FetchPaths(ctx, params.Latitude, params.Longitude, radius)
	if len(paths) == 0 {
		return Recommendation{Message: NoPathsMessage, Courses: []Course{}}, nil
	}

	return Recommendation{Courses: Filter(paths, params.DistanceKM, tolerance)}, nil
}
