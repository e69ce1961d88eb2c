package infra

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	PipioAPIKey        string
	PipioGenerateURL   string
	PipioStatusURL     string
	GenerateTimeout    time.Duration
	StatusTimeout      time.Duration
	PollInterval       time.Duration
	PollTimeout        time.Duration
	HistoryCap         int
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
// PIPIO_API_KEY is optional: requests may carry their own credential instead.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		PipioAPIKey:      os.Getenv("PIPIO_API_KEY"),
		PipioGenerateURL: getEnv("PIPIO_GENERATE_URL", "https://generate.pipio.ai/single-clip"),
		PipioStatusURL:   getEnv("PIPIO_STATUS_URL", "https://generate.pipio.ai/jobs/{job_id}"),
		GenerateTimeout:  time.Second * time.Duration(getEnvInt("PIPIO_GENERATE_TIMEOUT_SECONDS", 60)),
		StatusTimeout:    time.Second * time.Duration(getEnvInt("PIPIO_STATUS_TIMEOUT_SECONDS", 30)),
		PollInterval:     time.Second * time.Duration(getEnvInt("POLL_INTERVAL_SECONDS", 5)),
		PollTimeout:      time.Second * time.Duration(getEnvInt("POLL_TIMEOUT_SECONDS", 180)),
		HistoryCap:       getEnvInt("HISTORY_CAP", 20),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		// Generation blocks the handler for up to the polling ceiling, so the
		// write timeout must comfortably exceed POLL_TIMEOUT_SECONDS.
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 300)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, trimmed)
			}
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
