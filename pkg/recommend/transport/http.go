package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/ColinToft/CourseFinder/internal/util/errors"
	"github.com/ColinToft/CourseFinder/pkg/recommend/endpoints"
	"github.com/go-chi/chi/v5"
	"github.com/go-kit/kit/transport"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/go-kit/log"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

const (
	maxBodyBytes = 1 << 20

	msgNoInput       = "No input data provided"
	msgMissingFields = "Missing latitude, longitude, or distance_km"
	msgInvalidPrefix = "Invalid data type or value: "
	msgServerPrefix  = "An unexpected error occurred on the server: "
)

func NewHTTPHandler(ep endpoints.Set, logger log.Logger) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, ep, logger)
	return r
}

func RegisterRoutes(r chi.Router, ep endpoints.Set, logger log.Logger) {
	dec := newRequestDecoder()
	options := []httptransport.ServerOption{
		httptransport.ServerErrorHandler(transport.NewLogErrorHandler(log.With(logger, "transport", "HTTP", "route", "recommend_courses"))),
		httptransport.ServerErrorEncoder(encodeError),
	}

	r.Method(http.MethodPost, "/api/recommend_courses", httptransport.NewServer(
		ep.RecommendEndpoint,
		dec.decodeRecommendRequest,
		encodeRecommendResponse,
		options...,
	))
}

type requestDecoder struct {
	validate *validator.Validate
	trans    ut.Translator
}

func newRequestDecoder() *requestDecoder {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &requestDecoder{validate: validate, trans: trans}
}

// decodeRecommendRequest checks, in order: a body is present, every field is present,
// every field is a number or a numeric string, and the result validates.
func (d *requestDecoder) decodeRecommendRequest(_ context.Context, r *http.Request) (interface{}, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.WrapErrorf(err, errors.ErrInvalidArgument, "could not read request body")
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, errors.InvalidArgument(msgNoInput)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, errors.WrapErrorf(err, errors.ErrInvalidArgument, "request body must be a JSON object")
	}
	if len(fields) == 0 {
		return nil, errors.InvalidArgument(msgNoInput)
	}

	lat, latOK := lookup(fields, "latitude")
	lon, lonOK := lookup(fields, "longitude")
	dist, distOK := lookup(fields, "distance_km")
	if !latOK || !lonOK || !distOK {
		return nil, errors.InvalidArgument(msgMissingFields)
	}

	var req endpoints.RecommendRequest
	for _, f := range []struct {
		name string
		raw  json.RawMessage
		dst  *float64
	}{
		{"latitude", lat, &req.Latitude},
		{"longitude", lon, &req.Longitude},
		{"distance_km", dist, &req.DistanceKM},
	} {
		if *f.dst, err = coerceFloat(f.name, f.raw); err != nil {
			return nil, errors.WrapErrorf(err, errors.ErrInvalidArgument, "%s%v", msgInvalidPrefix, err)
		}
	}

	if err := d.validate.Struct(req); err != nil {
		return nil, errors.WrapErrorf(err, errors.ErrInvalidArgument, "%s%s", msgInvalidPrefix, d.translate(err))
	}

	return req, nil
}

func (d *requestDecoder) translate(err error) string {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		msgs = append(msgs, e.Translate(d.trans))
	}
	return strings.Join(msgs, "; ")
}

// lookup treats an explicit null like an absent field.
func lookup(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	raw, ok := fields[name]
	if !ok || len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false
	}
	return raw, true
}

// coerceFloat accepts a JSON number or a string holding one.
func coerceFloat(name string, raw json.RawMessage) (float64, error) {
	var value float64
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("%s must be a number or a numeric string", name)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %q is not a number", name, s)
		}
		value = f
	} else if err := json.Unmarshal(raw, &value); err != nil {
		return 0, fmt.Errorf("%s must be a number or a numeric string", name)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s must be a finite number", name)
	}
	return value, nil
}

func encodeRecommendResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(response)
}

func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	msg := err.Error()
	switch errors.Code(err) {
	case errors.ErrUnknown:
		w.WriteHeader(http.StatusNotFound)
	case errors.ErrInvalidArgument:
		w.WriteHeader(http.StatusBadRequest)
	default:
		w.WriteHeader(http.StatusInternalServerError)
		msg = msgServerPrefix + msg
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": msg,
	})
}
