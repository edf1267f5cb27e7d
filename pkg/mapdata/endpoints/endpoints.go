package endpoints

import (
	"context"
	"fmt"

	"github.com/ColinToft/CourseFinder/internal/util/geo"
	"github.com/ColinToft/CourseFinder/pkg/mapdata"
	"github.com/go-kit/kit/endpoint"
)

type Set struct {
	PathsEndpoint endpoint.Endpoint
}

func NewEndpointSet(svc mapdata.Service) Set {
	return Set{
		PathsEndpoint: MakePathsEndpoint(svc),
	}
}

func MakePathsEndpoint(svc mapdata.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(PathsRequest)
		if !ok {
			return nil, fmt.Errorf("unexpected request type %T", request)
		}
		paths := svc.FetchPaths(ctx, req.Lat, req.Lon, req.Radius)
		if paths == nil {
			paths = []geo.Path{}
		}
		return PathsResponse{Paths: paths, Count: len(paths)}, nil
	}
}
