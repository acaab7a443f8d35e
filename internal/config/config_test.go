package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8084 {
		t.Errorf("Port = %d, want 8084", cfg.Server.Port)
	}
	if cfg.Dataset.Location != "" {
		t.Errorf("Dataset.Location = %q, want empty", cfg.Dataset.Location)
	}
	if cfg.Dataset.UploadMaxBytes != 32<<20 {
		t.Errorf("UploadMaxBytes = %d, want %d", cfg.Dataset.UploadMaxBytes, 32<<20)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics = %+v, want enabled at /metrics", cfg.Metrics)
	}
	if cfg.Address() != "localhost:8084" {
		t.Errorf("Address() = %q", cfg.Address())
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "3s")
	t.Setenv("CSV_FILE", "s3://store-data/march.csv")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SECURITY_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 || cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Dataset.Location != "s3://store-data/march.csv" || cfg.Dataset.UploadMaxBytes != 1024 {
		t.Errorf("Dataset = %+v", cfg.Dataset)
	}
	if cfg.Logger.Format != "text" {
		t.Errorf("Logger.Format = %q, want text", cfg.Logger.Format)
	}
	if len(cfg.Security.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v", cfg.Security.AllowedOrigins)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics should be disabled")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"port out of range", "SERVER_PORT", "70000", "server port"},
		{"log level", "LOG_LEVEL", "verbose", "invalid log level"},
		{"log format", "LOG_FORMAT", "xml", "invalid log format"},
		{"upload limit", "UPLOAD_MAX_BYTES", "0", "upload max bytes"},
		{"metrics path", "METRICS_PATH", "metrics", "metrics path"},
		{"rate limit", "SECURITY_RATE_LIMIT_RPS", "-1", "rate limit RPS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}
