package mapdata

// Map data service backed by the Overpass API

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ColinToft/CourseFinder/internal/util/geo"
	"github.com/ColinToft/CourseFinder/internal/util/mapdata"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/metrics"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	DefaultURL       = "https://overpass-api.de/api/interpreter"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "CourseFinder/0.1 (+https://github.com/ColinToft/CourseFinder)"

	// maxErrorBody bounds how much of a failed response ends up in the logs.
	maxErrorBody = 2048
)

// Outcome classifies a map data query. Everything but OutcomeOK yields no paths.
type Outcome string

const (
	OutcomeOK         Outcome = "ok"
	OutcomeTimeout    Outcome = "timeout"
	OutcomeStatus     Outcome = "status"
	OutcomeTransport  Outcome = "transport"
	OutcomeParse      Outcome = "parse"
	OutcomeUnexpected Outcome = "unexpected"
)

var ErrMalformedResponse = errors.New("malformed overpass response")

// StatusError is returned for a non-2xx answer from the interpreter.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("overpass returned status %d", e.StatusCode)
}

// Result is the outcome of a single query. Paths is empty unless Outcome is OutcomeOK.
type Result struct {
	Paths   []geo.Path
	Outcome Outcome
	Err     error
}

type Config struct {
	URL       string
	Timeout   time.Duration
	UserAgent string
	// Client defaults to an *http.Client bounded by Timeout.
	Client httptransport.HTTPClient
}

type Option func(*Overpass)

// WithInstruments counts query outcomes and records how many paths each query produced.
func WithInstruments(outcomes metrics.Counter, paths metrics.Histogram) Option {
	return func(o *Overpass) {
		o.outcomes = outcomes
		o.paths = paths
	}
}

// Overpass implements Service against an Overpass interpreter.
type Overpass struct {
	query    endpoint.Endpoint
	timeout  time.Duration
	logger   log.Logger
	outcomes metrics.Counter
	paths    metrics.Histogram
}

func NewOverpass(cfg Config, logger log.Logger, opts ...Option) (*Overpass, error) {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: cfg.Timeout}
	}

	target, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid overpass url %q: %w", cfg.URL, err)
	}

	client := httptransport.NewClient(
		http.MethodPost,
		target,
		encodeQueryRequest,
		decodeQueryResponse,
		httptransport.SetClient(cfg.Client),
		httptransport.ClientBefore(
			httptransport.SetRequestHeader("User-Agent", cfg.UserAgent),
			httptransport.SetRequestHeader("Accept", "application/json"),
		),
	)

	o := &Overpass{
		query:   client.Endpoint(),
		timeout: cfg.Timeout,
		logger:  log.With(logger, "component", "overpass"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// FetchPaths returns the runnable paths within radiusM metres of the point.
// Failures are logged and reported as an empty result.
func (o *Overpass) FetchPaths(ctx context.Context, lat, lon float64, radiusM int) []geo.Path {
	res := o.Query(ctx, lat, lon, radiusM)

	if o.outcomes != nil {
		o.outcomes.With("outcome", string(res.Outcome)).Add(1)
	}

	if res.Outcome != OutcomeOK {
		keyvals := []interface{}{"msg", "map data query failed", "outcome", res.Outcome, "err", res.Err}
		var statusErr *StatusError
		if errors.As(res.Err, &statusErr) {
			keyvals = append(keyvals, "status", statusErr.StatusCode, "body", statusErr.Body)
		}
		level.Warn(o.logger).Log(keyvals...)
		return nil
	}

	if o.paths != nil {
		o.paths.Observe(float64(len(res.Paths)))
	}
	level.Debug(o.logger).Log("msg", "map data query finished", "paths", len(res.Paths))
	return res.Paths
}

// Query sends one query and reports what happened.
func (o *Overpass) Query(ctx context.Context, lat, lon float64, radiusM int) Result {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	q := BuildQuery(lat, lon, radiusM, o.timeout)
	level.Debug(o.logger).Log("msg", "querying map data", "lat", lat, "lon", lon, "radius_m", radiusM)

	response, err := o.query(ctx, q)
	if err != nil {
		return Result{Outcome: classify(err), Err: err}
	}

	data, ok := response.(*mapdata.MapData)
	if !ok {
		return Result{Outcome: OutcomeUnexpected, Err: fmt.Errorf("unexpected response type %T", response)}
	}
	return Result{Paths: data.Paths(), Outcome: OutcomeOK}
}

func classify(err error) Outcome {
	var (
		netErr    net.Error
		statusErr *StatusError
	)
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return OutcomeTimeout
	}
	if errors.As(err, &statusErr) {
		return OutcomeStatus
	}
	if errors.Is(err, ErrMalformedResponse) {
		return OutcomeParse
	}
	if netErr != nil {
		return OutcomeTransport
	}
	return OutcomeUnexpected
}

func encodeQueryRequest(_ context.Context, r *http.Request, request interface{}) error {
	query, ok := request.(string)
	if !ok {
		return fmt.Errorf("unexpected request type %T", request)
	}

	body := url.Values{"data": {query}}.Encode()
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Body = io.NopCloser(strings.NewReader(body))
	r.ContentLength = int64(len(body))
	return nil
}

func decodeQueryResponse(_ context.Context, r *http.Response) (interface{}, error) {
	if r.StatusCode < http.StatusOK || r.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(r.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: r.StatusCode, Body: string(body)}
	}

	var data mapdata.MapData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		// A deadline hit while streaming the body is not a parse failure.
		var netErr net.Error
		if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &data, nil
}
