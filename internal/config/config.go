package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/i474232898/space-data-console/internal/common"
)

// DemoAPIKey is NASA's shared, heavily rate-limited key.
const DemoAPIKey = "DEMO_KEY"

type AppConfig struct {
	// APIKey is sent with every api.nasa.gov request. Read once, never refreshed.
	APIKey string `validate:"required"`

	NASABaseURL  string `validate:"required,url"`
	EONETBaseURL string `validate:"required,url"`
	SSCBaseURL   string `validate:"required,url"`

	// LogDir holds one append-only log per endpoint.
	LogDir string `validate:"required"`

	// HTTPTimeout bounds each upstream call; 0 waits indefinitely.
	HTTPTimeout time.Duration `validate:"gte=0"`

	// CircuitMaxFailures consecutive failures open a host's circuit (0 = never).
	CircuitMaxFailures int `validate:"gte=0"`

	SSCWindow time.Duration `validate:"gt=0"`

	// GeocoderAPIKey enables place-name lookup for Earth imagery when set.
	GeocoderAPIKey string

	LogLevel string `validate:"oneof=trace debug info warn error disabled"`

	Port string `validate:"required,numeric"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
// Notes about the environment go to logger at the configured LOG_LEVEL.
func Load(logger zerolog.Logger) (*AppConfig, error) {
	dotenvErr := godotenv.Load()
	cfg := &AppConfig{}

	cfg.APIKey = getenvDefault("API_KEY", DemoAPIKey)

	cfg.NASABaseURL = getenvDefault("NASA_BASE_URL", "https://api.nasa.gov")
	cfg.EONETBaseURL = getenvDefault("EONET_BASE_URL", "https://eonet.gsfc.nasa.gov/api/v3")
	cfg.SSCBaseURL = getenvDefault("SSC_BASE_URL", "https://sscweb.gsfc.nasa.gov/WS/sscr/2")
	cfg.LogDir = getenvDefault("LOG_DIR", "logs")

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	window, err := time.ParseDuration(getenvDefault("SSC_WINDOW", "2h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SSC_WINDOW: %w", err)
	}
	cfg.SSCWindow = window

	cfg.CircuitMaxFailures = getenvInt("CIRCUIT_MAX_FAILURES", 5)
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.Level(cfg.Level())
	if dotenvErr != nil {
		log.Debug().Err(dotenvErr).Msg("no .env file found or error loading it")
	}
	if cfg.APIKey == DemoAPIKey {
		log.Info().Msg("API_KEY not set; using DEMO_KEY")
	}
	return cfg, nil
}

// Level returns LogLevel as a zerolog level.
func (c *AppConfig) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func getenvDefault(key, def string) string {
	return common.FirstNonEmpty(os.Getenv(key), def)
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
