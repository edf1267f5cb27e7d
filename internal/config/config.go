package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings of the course finder service.
//
// Fields:
// - Env: local, development or production. Selects the log level.
// - Address, Port: where the HTTP server listens.
// - Overpass: the upstream map data endpoint.
// - Heuristics: the numbers that turn a desired distance into a search.
// - AllowedOrigins: origins accepted by the CORS handler.
type Config struct {
	Env            string
	Address        string
	Port           string
	Overpass       OverpassConfig
	Heuristics     HeuristicsConfig
	AllowedOrigins []string
}

type OverpassConfig struct {
	URL     string        // Interpreter endpoint.
	Timeout time.Duration // Bounds the whole request, also sent as the query's [timeout:N].
}

type HeuristicsConfig struct {
	RadiusPerKM    float64 // Search radius in metres per desired kilometre.
	MinRadiusM     float64
	MaxRadiusM     float64
	ToleranceRatio float64 // Accepted deviation as a share of the desired distance.
}

// MustLoad reads an optional .env file and the environment. It panics on malformed values.
func MustLoad() *Config {
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(envString("OVERPASS_TIMEOUT", "30s"))
	if err != nil || timeout <= 0 {
		panic("failed to parse overpass timeout from configuration")
	}

	return &Config{
		Env:     envString("COURSES_ENV", "production"),
		Address: envString("ADDRESS", "127.0.0.1"),
		Port:    envString("PORT", "8080"),
		Overpass: OverpassConfig{
			URL:     envString("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
			Timeout: timeout,
		},
		Heuristics: HeuristicsConfig{
			RadiusPerKM:    mustFloat("COURSES_RADIUS_PER_KM", "1500"),
			MinRadiusM:     mustFloat("COURSES_MIN_RADIUS_M", "1000"),
			MaxRadiusM:     mustFloat("COURSES_MAX_RADIUS_M", "5000"),
			ToleranceRatio: mustFloat("COURSES_TOLERANCE_RATIO", "0.20"),
		},
		AllowedOrigins: splitList(envString("CORS_ALLOWED_ORIGINS", "*")),
	}
}

func mustFloat(key, defaultValue string) float64 {
	value, err := strconv.ParseFloat(envString(key, defaultValue), 64)
	if err != nil || value < 0 {
		panic("failed to parse " + key + " from configuration, must be a non-negative number")
	}
	return value
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func envString(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}
