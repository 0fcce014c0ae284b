package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	vars := map[string]string{
		"QNA_PRIMARY.ENV":                 "local",
		"QNA_SERVER.PORT":                 "8080",
		"QNA_SERVER.READ_TIMEOUT":         "30",
		"QNA_SERVER.WRITE_TIMEOUT":        "30",
		"QNA_SERVER.IDLE_TIMEOUT":         "60",
		"QNA_SERVER.CORS_ALLOWED_ORIGINS": "http://localhost:3000, http://localhost:5173",
		"QNA_DATABASE.HOST":               "localhost",
		"QNA_DATABASE.PORT":               "5432",
		"QNA_DATABASE.USER":               "postgres",
		"QNA_DATABASE.PASSWORD":           "postgres",
		"QNA_DATABASE.NAME":               "qna",
		"QNA_DATABASE.SSL_MODE":           "disable",
		"QNA_DATABASE.MAX_OPEN_CONNS":     "25",
		"QNA_DATABASE.MAX_IDLE_CONNS":     "5",
		"QNA_DATABASE.CONN_MAX_LIFETIME":  "300",
		"QNA_DATABASE.CONN_MAX_IDLE_TIME": "60",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Fatalf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Port != 5432 {
		t.Fatalf("Database.Port = %d, want 5432", cfg.Database.Port)
	}

	wantOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if !reflect.DeepEqual(cfg.Server.CORSAllowedOrigins, wantOrigins) {
		t.Fatalf("CORSAllowedOrigins = %v, want %v", cfg.Server.CORSAllowedOrigins, wantOrigins)
	}

	if cfg.Observability.ServiceName != ServiceName {
		t.Fatalf("ServiceName = %q, want %q", cfg.Observability.ServiceName, ServiceName)
	}
	if cfg.Observability.Environment != "local" {
		t.Fatalf("Environment = %q, want local", cfg.Observability.Environment)
	}
	if cfg.Observability.Logging.Level != "info" {
		t.Fatalf("Logging.Level = %q, want info", cfg.Observability.Logging.Level)
	}
	if cfg.RateLimit.Enabled || cfg.RateLimit.RequestsPerMinute != 120 {
		t.Fatalf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
	if cfg.Redis.Address != "" {
		t.Fatalf("Redis.Address = %q, want empty", cfg.Redis.Address)
	}
	if len(cfg.Server.TrustedProxies) != 0 {
		t.Fatalf("TrustedProxies = %v, want none", cfg.Server.TrustedProxies)
	}
}

func TestLoadConfigTrustedProxies(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("QNA_SERVER.TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.0/24")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	want := []string{"10.0.0.0/8", "192.168.1.0/24"}
	if !reflect.DeepEqual(cfg.Server.TrustedProxies, want) {
		t.Fatalf("TrustedProxies = %v, want %v", cfg.Server.TrustedProxies, want)
	}

	t.Setenv("QNA_SERVER.TRUSTED_PROXIES", "not-a-network")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("an invalid CIDR should fail validation")
	}
}

func TestLoadConfigOverridesOptionalBlocks(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("QNA_REDIS.ADDRESS", "localhost:6379")
	t.Setenv("QNA_RATE_LIMIT.ENABLED", "true")
	t.Setenv("QNA_RATE_LIMIT.REQUESTS_PER_MINUTE", "30")
	t.Setenv("QNA_OBSERVABILITY.LOGGING.LEVEL", "debug")
	t.Setenv("QNA_OBSERVABILITY.LOGGING.SLOW_QUERY_THRESHOLD", "250ms")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Redis.Address != "localhost:6379" {
		t.Fatalf("Redis.Address = %q", cfg.Redis.Address)
	}
	if !cfg.RateLimit.Enabled || cfg.RateLimit.RequestsPerMinute != 30 {
		t.Fatalf("unexpected rate limit config: %+v", cfg.RateLimit)
	}
	if cfg.Observability.Logging.Level != "debug" {
		t.Fatalf("Logging.Level = %q, want debug", cfg.Observability.Logging.Level)
	}
	if cfg.Observability.Logging.SlowQueryThreshold != 250*time.Millisecond {
		t.Fatalf("SlowQueryThreshold = %v", cfg.Observability.Logging.SlowQueryThreshold)
	}
	// Untouched keys keep their defaults.
	if cfg.Observability.Logging.Format != "json" {
		t.Fatalf("Logging.Format = %q, want json", cfg.Observability.Logging.Format)
	}
}

func TestLoadConfigRejectsMissingDatabase(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("QNA_DATABASE.HOST", "")

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("expected validation error for empty database host")
	}
	if !strings.Contains(err.Error(), "Host") {
		t.Fatalf("error %q does not mention Host", err)
	}
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown level")
	}

	cfg = DefaultObservabilityConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestHealthCheckEnabled(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	if !cfg.HealthCheckEnabled("database") || !cfg.HealthCheckEnabled("redis") {
		t.Fatal("database and redis checks should be enabled by default")
	}
	if cfg.HealthCheckEnabled("kafka") {
		t.Fatal("unknown check should not be enabled")
	}

	cfg.HealthChecks.Enabled = false
	if cfg.HealthCheckEnabled("database") {
		t.Fatal("checks disabled globally")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a, b,,c ,")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitList = %v, want %v", got, want)
	}
}
