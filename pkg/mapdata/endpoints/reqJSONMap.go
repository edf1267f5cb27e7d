package endpoints

import "github.com/ColinToft/CourseFinder/internal/util/geo"

// A request for the raw paths around a point
type PathsRequest struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Radius int     `json:"radius"`
}

type PathsResponse struct {
	Paths []geo.Path `json:"paths"`
	Count int        `json:"count"`
}
