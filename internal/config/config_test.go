package config_test

import (
	"testing"
	"time"

	"github.com/ColinToft/CourseFinder/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoadDefaults(t *testing.T) {
	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "127.0.0.1", cfg.Address)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://overpass-api.de/api/interpreter", cfg.Overpass.URL)
	assert.Equal(t, 30*time.Second, cfg.Overpass.Timeout)
	assert.InDelta(t, 1500.0, cfg.Heuristics.RadiusPerKM, 1e-9)
	assert.InDelta(t, 1000.0, cfg.Heuristics.MinRadiusM, 1e-9)
	assert.InDelta(t, 5000.0, cfg.Heuristics.MaxRadiusM, 1e-9)
	assert.InDelta(t, 0.2, cfg.Heuristics.ToleranceRatio, 1e-9)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("COURSES_ENV", "local")
	t.Setenv("ADDRESS", "0.0.0.0")
	t.Setenv("PORT", "9090")
	t.Setenv("OVERPASS_URL", "http://localhost:12345/api/interpreter")
	t.Setenv("OVERPASS_TIMEOUT", "5s")
	t.Setenv("COURSES_RADIUS_PER_KM", "1000")
	t.Setenv("COURSES_MIN_RADIUS_M", "500")
	t.Setenv("COURSES_MAX_RADIUS_M", "8000")
	t.Setenv("COURSES_TOLERANCE_RATIO", "0.1")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://run.example.com, http://localhost:3000,")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "0.0.0.0", cfg.Address)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://localhost:12345/api/interpreter", cfg.Overpass.URL)
	assert.Equal(t, 5*time.Second, cfg.Overpass.Timeout)
	assert.InDelta(t, 1000.0, cfg.Heuristics.RadiusPerKM, 1e-9)
	assert.InDelta(t, 500.0, cfg.Heuristics.MinRadiusM, 1e-9)
	assert.InDelta(t, 8000.0, cfg.Heuristics.MaxRadiusM, 1e-9)
	assert.InDelta(t, 0.1, cfg.Heuristics.ToleranceRatio, 1e-9)
	assert.Equal(t, []string{"https://run.example.com", "http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestMustLoad_TimeoutError(t *testing.T) {
	t.Setenv("OVERPASS_TIMEOUT", "error_value")

	assert.PanicsWithValue(t, "failed to parse overpass timeout from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_ToleranceError(t *testing.T) {
	t.Setenv("COURSES_TOLERANCE_RATIO", "twenty percent")

	assert.PanicsWithValue(t,
		"failed to parse COURSES_TOLERANCE_RATIO from configuration, must be a non-negative number",
		func() {
			config.MustLoad()
		})
}
