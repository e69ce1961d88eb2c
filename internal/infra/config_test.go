package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PipioGenerateURL != "https://generate.pipio.ai/single-clip" {
		t.Fatalf("generate url = %q, want default", cfg.PipioGenerateURL)
	}
	if cfg.PipioStatusURL != "https://generate.pipio.ai/jobs/{job_id}" {
		t.Fatalf("status url = %q, want default with placeholder", cfg.PipioStatusURL)
	}
	if cfg.PollInterval != 5*time.Second || cfg.PollTimeout != 180*time.Second {
		t.Fatalf("poll knobs = %v/%v, want 5s/180s", cfg.PollInterval, cfg.PollTimeout)
	}
	if cfg.GenerateTimeout != 60*time.Second || cfg.StatusTimeout != 30*time.Second {
		t.Fatalf("client timeouts = %v/%v, want 60s/30s", cfg.GenerateTimeout, cfg.StatusTimeout)
	}
	if cfg.HistoryCap != 20 {
		t.Fatalf("history cap = %d, want 20", cfg.HistoryCap)
	}
	if cfg.HTTPWriteTimeout <= cfg.PollTimeout {
		t.Fatalf("write timeout %v must exceed the polling ceiling %v", cfg.HTTPWriteTimeout, cfg.PollTimeout)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("POLL_INTERVAL_SECONDS", "1")
	t.Setenv("POLL_TIMEOUT_SECONDS", "10")
	t.Setenv("HISTORY_CAP", "50")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.test, https://b.test,")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PollInterval != time.Second || cfg.PollTimeout != 10*time.Second {
		t.Fatalf("poll knobs = %v/%v, want overrides applied", cfg.PollInterval, cfg.PollTimeout)
	}
	if cfg.HistoryCap != 50 {
		t.Fatalf("history cap = %d, want 50", cfg.HistoryCap)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[0] != "https://a.test" {
		t.Fatalf("cors origins = %v, want two trimmed entries", cfg.CORSAllowedOrigins)
	}
}
