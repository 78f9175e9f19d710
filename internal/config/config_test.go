package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"marquee/internal/config"
)

func TestLoadDefaultConfigUsesEnvTMDBKeyAndExpandsPaths(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "test-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "marquee")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.TMDB.APIKey != "test-key" {
		t.Fatalf("expected TMDB key from env, got %q", cfg.TMDB.APIKey)
	}
	if cfg.TMDB.BaseURL != config.Default().TMDB.BaseURL {
		t.Fatalf("unexpected TMDB base url: %q", cfg.TMDB.BaseURL)
	}
	if cfg.TMDB.RateLimitThreshold != 5 || cfg.TMDB.RateLimitCooldownSeconds != 5 {
		t.Fatalf("unexpected rate limit defaults: %+v", cfg.TMDB)
	}
	if !cfg.Discovery.Enabled || cfg.Discovery.BaseURL == "" {
		t.Fatalf("unexpected discovery defaults: %+v", cfg.Discovery)
	}
	if cfg.DatabasePath() != filepath.Join(wantData, "library.db") {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath())
	}
}

func TestLoadParsesFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[tmdb]",
		`api_key = "file-key"`,
		`base_url = "https://tmdb.example/3/"`,
		`language = "DE"`,
		"rate_limit_threshold = 10",
		"",
		"[logging]",
		`format = "json"`,
		`level = "debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	os.Unsetenv("TMDB_API_KEY")

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("expected existing config at %q", path)
	}
	if cfg.TMDB.APIKey != "file-key" {
		t.Fatalf("unexpected api key: %q", cfg.TMDB.APIKey)
	}
	if cfg.TMDB.BaseURL != "https://tmdb.example/3" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.TMDB.BaseURL)
	}
	if cfg.TMDB.Language != "de" {
		t.Fatalf("expected lowercased language, got %q", cfg.TMDB.Language)
	}
	if cfg.TMDB.RateLimitThreshold != 10 {
		t.Fatalf("unexpected threshold: %d", cfg.TMDB.RateLimitThreshold)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadRejectsMissingAPIKey(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	os.Unsetenv("TMDB_API_KEY")

	if _, _, _, err := config.Load(""); err == nil {
		t.Fatal("expected error when tmdb.api_key missing")
	}
}

func TestLoadRejectsBadLogging(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "key")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[tmdb]") {
		t.Fatal("sample config missing tmdb section")
	}
}
