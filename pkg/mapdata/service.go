package mapdata

import (
	"context"

	"github.com/ColinToft/CourseFinder/internal/util/geo"
)

// Service fetches runnable ways around a point.
// It never reports upstream failures: a failed query and an empty area both yield no paths.
type Service interface {
	FetchPaths(ctx context.Context, lat, lon float64, radiusM int) []geo.Path
}
