package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "LOG_DIR", "KML_OUTPUT", "JWT_SECRET", "RATE_LIMIT_PER_MINUTE", "SKIP_CORRUPT_FILES", "CONFIG_FILE"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != ":8080" || cfg.LogDir != "FILES_TO_WORK" || cfg.KMLOutput != "kml_file.kml" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.JWTSecret != "" || cfg.SkipCorruptFiles {
		t.Fatalf("auth and skipping should be off by default: %+v", cfg)
	}
	if cfg.Pipeline != DefaultPipeline() {
		t.Fatalf("unexpected pipeline defaults: %+v", cfg.Pipeline)
	}
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", ":9090")
	t.Setenv("LOG_DIR", "/var/log/gps")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "5")
	t.Setenv("SKIP_CORRUPT_FILES", "yes")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != ":9090" || cfg.LogDir != "/var/log/gps" || cfg.RateLimitPerMin != 5 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if !cfg.SkipCorruptFiles || cfg.JWTSecret != "s3cret" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestLoad_BadRateLimit(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error")
	}

	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoad_PipelineFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "pipeline.yml")
	body := `
junk_distance_km: 2.5
time_threshold_min: 15
weights:
  left_turn: 0.5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p := cfg.Pipeline
	if p.JunkDistanceKm != 2.5 || p.TimeThresholdMin != 15 {
		t.Fatalf("file values not applied: %+v", p)
	}
	if p.Weights.LeftTurn != 0.5 || p.Weights.Time != 0.7 || p.Weights.Stop != 0.1 {
		t.Fatalf("unexpected weights: %+v", p.Weights)
	}
	if p.StopSpeedKnots != 1.0 || p.TurnMinAngleDelta != 25 {
		t.Fatalf("absent keys should keep defaults: %+v", p)
	}
}

func TestLoad_PipelineFileInvalid(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(bad, []byte("junk_distance_km: [1, 2"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONFIG_FILE", bad)
	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}

	negative := filepath.Join(dir, "negative.yml")
	if err := os.WriteFile(negative, []byte("junk_distance_km: -1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONFIG_FILE", negative)
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("expected validation error, got %v", err)
	}

	t.Setenv("CONFIG_FILE", filepath.Join(dir, "missing.yml"))
	if _, err := Load(); err == nil {
		t.Fatalf("expected read error")
	}
}
