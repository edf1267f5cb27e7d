package transport

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/ColinToft/CourseFinder/internal/util/errors"
	"github.com/ColinToft/CourseFinder/pkg/mapdata/endpoints"
	"github.com/go-chi/chi/v5"
	"github.com/go-kit/kit/transport"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/go-kit/log"
)

// MaxRadiusM caps the radius a caller may ask for directly.
const MaxRadiusM = 10000

func NewHTTPHandler(ep endpoints.Set, logger log.Logger) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, ep, logger)
	return r
}

func RegisterRoutes(r chi.Router, ep endpoints.Set, logger log.Logger) {
	options := []httptransport.ServerOption{
		httptransport.ServerErrorHandler(transport.NewLogErrorHandler(log.With(logger, "transport", "HTTP", "route", "mapdata"))),
		httptransport.ServerErrorEncoder(encodeError),
	}

	r.Method(http.MethodGet, "/api/mapdata", httptransport.NewServer(
		ep.PathsEndpoint,
		decodePathsRequest,
		encodePathsResponse,
		options...,
	))
}

func decodePathsRequest(_ context.Context, r *http.Request) (interface{}, error) {
	// Decode the query parameters into a struct
	var req endpoints.PathsRequest
	var err error
	query := r.URL.Query()

	req.Lat, err = parseCoordinate(query.Get("lat"), "lat")
	if err != nil {
		return nil, err
	}
	req.Lon, err = parseCoordinate(query.Get("lon"), "lon")
	if err != nil {
		return nil, err
	}
	req.Radius, err = strconv.Atoi(query.Get("radius"))
	if err != nil || req.Radius <= 0 || req.Radius > MaxRadiusM {
		return nil, errors.WrapErrorf(err, errors.ErrInvalidArgument,
			"radius must be an integer between 1 and %d metres", MaxRadiusM)
	}

	return req, nil
}

func parseCoordinate(value, name string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.WrapErrorf(err, errors.ErrInvalidArgument, "%s must be a number, got %q", name, value)
	}
	return f, nil
}

func encodePathsResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(response)
}

func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	switch errors.Code(err) {
	case errors.ErrUnknown:
		w.WriteHeader(http.StatusNotFound)
	case errors.ErrInvalidArgument:
		w.WriteHeader(http.StatusBadRequest)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}
