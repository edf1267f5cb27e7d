package main

// The code to start and stop the HTTP server.

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ColinToft/CourseFinder/internal/config"
	"github.com/ColinToft/CourseFinder/internal/metrics"
	"github.com/ColinToft/CourseFinder/pkg/mapdata"
	mapendpoints "github.com/ColinToft/CourseFinder/pkg/mapdata/endpoints"
	maptransport "github.com/ColinToft/CourseFinder/pkg/mapdata/transport"
	"github.com/ColinToft/CourseFinder/pkg/recommend"
	recendpoints "github.com/ColinToft/CourseFinder/pkg/recommend/endpoints"
	rectransport "github.com/ColinToft/CourseFinder/pkg/recommend/transport"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"

	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	source, err := mapdata.NewOverpass(mapdata.Config{
		URL:     cfg.Overpass.URL,
		Timeout: cfg.Overpass.Timeout,
	}, logger, mapdata.WithInstruments(appMetrics.FetchOutcomes, appMetrics.PathsFetched))
	if err != nil {
		level.Error(logger).Log("during", "NewOverpass", "err", err)
		os.Exit(1)
	}

	var service recommend.Service
	{
		service = recommend.NewService(source, recommend.Heuristics{
			RadiusPerKM:    cfg.Heuristics.RadiusPerKM,
			MinRadiusM:     cfg.Heuristics.MinRadiusM,
			MaxRadiusM:     cfg.Heuristics.MaxRadiusM,
			ToleranceRatio: cfg.Heuristics.ToleranceRatio,
		})
		service = recommend.LoggingMiddleware(log.With(logger, "component", "recommend"))(service)
		service = recommend.InstrumentingMiddleware(appMetrics.RequestCount, appMetrics.RequestLatency, appMetrics.CoursesFound)(service)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	rectransport.RegisterRoutes(r, recendpoints.NewEndpointSet(service, logger), logger)
	maptransport.RegisterRoutes(r, mapendpoints.NewEndpointSet(source), logger)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(r)

	httpAddr := net.JoinHostPort(cfg.Address, cfg.Port)
	httpListener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		level.Error(logger).Log("transport", "HTTP", "during", "Listen", "err", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		// Overpass may take its whole timeout; leave room to write the answer.
		WriteTimeout: cfg.Overpass.Timeout + 10*time.Second,
	}

	go func() {
		level.Info(logger).Log("transport", "HTTP", "addr", httpAddr, "env", cfg.Env)
		if err := httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			level.Error(logger).Log("transport", "HTTP", "during", "Serve", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	level.Info(logger).Log("msg", "shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("transport", "HTTP", "during", "Shutdown", "err", err)
	}

	level.Info(logger).Log("transport", "HTTP", "status", "stopped")
}

// setupLogger picks the log format and level for env.
func setupLogger(env string) log.Logger {
	var logger log.Logger
	switch env {
	case envLocal:
		logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
		logger = level.NewFilter(logger, level.AllowDebug())
	case envDev:
		logger = log.NewJSONLogger(log.NewSyncWriter(os.Stderr))
		logger = level.NewFilter(logger, level.AllowInfo())
	case envProd:
		logger = log.NewJSONLogger(log.NewSyncWriter(os.Stderr))
		logger = level.NewFilter(logger, level.AllowWarn())
	default:
		logger = log.NewJSONLogger(log.NewSyncWriter(os.Stderr))
		logger = level.NewFilter(logger, level.AllowError())
	}
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}
