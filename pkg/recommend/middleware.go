package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/log"
)

// Middleware decorates a Service.
type Middleware func(Service) Service

func LoggingMiddleware(logger log.Logger) Middleware {
	return func(next Service) Service {
		return loggingMiddleware{logger: logger, next: next}
	}
}

type loggingMiddleware struct {
	logger log.Logger
	next   Service
}

func (mw loggingMiddleware) RecommendCourses(ctx context.Context, params SearchParameters) (rec Recommendation, err error) {
	defer func(begin time.Time) {
		mw.logger.Log(
			"method", "RecommendCourses",
			"lat", params.Latitude,
			"lon", params.Longitude,
			"distance_km", params.DistanceKM,
			"courses", len(rec.Courses),
			"err", err,
			"took", time.Since(begin),
		)
	}(time.Now())
	return mw.next.RecommendCourses(ctx, params)
}

// InstrumentingMiddleware counts requests, their latency and the number of courses returned.
func InstrumentingMiddleware(requestCount metrics.Counter, requestLatency, coursesFound metrics.Histogram) Middleware {
	return func(next Service) Service {
		return instrumentingMiddleware{
			requestCount:   requestCount,
			requestLatency: requestLatency,
			coursesFound:   coursesFound,
			next:           next,
		}
	}
}

type instrumentingMiddleware struct {
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
	coursesFound   metrics.Histogram
	next           Service
}

func (mw instrumentingMiddleware) RecommendCourses(ctx context.Context, params SearchParameters) (rec Recommendation, err error) {
	defer func(begin time.Time) {
		lvs := []string{"method", "RecommendCourses", "error", fmt.Sprint(err != nil)}
		mw.requestCount.With(lvs...).Add(1)
		mw.requestLatency.With(lvs...).Observe(time.Since(begin).Seconds())
		if err == nil {
			mw.coursesFound.Observe(float64(len(rec.Courses)))
		}
	}(time.Now())
	return mw.next.RecommendCourses(ctx, params)
}
