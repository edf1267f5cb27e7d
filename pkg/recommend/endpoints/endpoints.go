package endpoints

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/ColinToft/CourseFinder/internal/util/errors"
	"github.com/ColinToft/CourseFinder/pkg/recommend"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type Set struct {
	RecommendEndpoint endpoint.Endpoint
}

func NewEndpointSet(svc recommend.Service, logger log.Logger) Set {
	return Set{
		RecommendEndpoint: RecoverMiddleware(logger)(MakeRecommendEndpoint(svc)),
	}
}

func MakeRecommendEndpoint(svc recommend.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(RecommendRequest)
		if !ok {
			return nil, fmt.Errorf("unexpected request type %T", request)
		}
		rec, err := svc.RecommendCourses(ctx, req)
		if err != nil {
			return nil, err
		}
		courses := rec.Courses
		if courses == nil {
			courses = []recommend.Course{}
		}
		return RecommendResponse{Message: rec.Message, Courses: courses}, nil
	}
}

// RecoverMiddleware turns a panic below the endpoint into an ErrInternal error,
// so one faulty request cannot take the process down.
func RecoverMiddleware(logger log.Logger) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func() {
				if r := recover(); r != nil {
					level.Error(logger).Log("msg", "recovered from panic", "panic", r, "stack", string(debug.Stack()))
					response = nil
					err = errors.WrapErrorf(nil, errors.ErrInternal, "%v", r)
				}
			}()
			return next(ctx, request)
		}
	}
}
