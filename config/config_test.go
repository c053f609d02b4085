package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWithoutFile(t *testing.T) {
	workdir := t.TempDir()

	cfg, err := Load("", workdir)
	if err != nil {
		t.Fatalf("Unexpected error loading default configuration (%v)", err)
	}

	expected := Default(workdir)
	if *cfg != expected {
		t.Errorf("Incorrect configuration\n   expected: %+v\n   got:      %+v", expected, *cfg)
	}
}

func TestLoad(t *testing.T) {
	workdir := t.TempDir()
	path := filepath.Join(workdir, "tracker.toml")

	toml := `
[google]
credentials = "/etc/tracker/credentials.json"

[tracker]
url = "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"
range = "Collections!A2:D"
log_retention = 7

[logging]
level = "DEBUG"
format = "json"
`

	if err := os.WriteFile(path, []byte(toml), 0600); err != nil {
		t.Fatalf("%v", err)
	}

	cfg, err := Load(path, workdir)
	if err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	if cfg.Google.Credentials != "/etc/tracker/credentials.json" {
		t.Errorf("Incorrect credentials - expected %q, got %q", "/etc/tracker/credentials.json", cfg.Google.Credentials)
	}

	if cfg.Google.Tokens != filepath.Join(workdir, ".google") {
		t.Errorf("Incorrect tokens - expected default, got %q", cfg.Google.Tokens)
	}

	if cfg.Tracker.Range != "Collections!A2:D" {
		t.Errorf("Incorrect range - expected %q, got %q", "Collections!A2:D", cfg.Tracker.Range)
	}

	if cfg.Tracker.LogRange != "Log!A1:F" {
		t.Errorf("Incorrect log range - expected default, got %q", cfg.Tracker.LogRange)
	}

	if cfg.Tracker.LogRetention != 7 {
		t.Errorf("Incorrect log retention - expected 7, got %v", cfg.Tracker.LogRetention)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Incorrect logging level - expected 'debug', got %q", cfg.Logging.Level)
	}
}

func TestLoadWithEnvironmentOverrides(t *testing.T) {
	workdir := t.TempDir()

	t.Setenv("WARC_TRACKER_URL", " https://docs.google.com/spreadsheets/d/xyz ")
	t.Setenv("WARC_TRACKER_LOG_RETENTION", "14")
	t.Setenv("WARC_TRACKER_LOG_FORMAT", "console")

	cfg, err := Load("", workdir)
	if err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	if cfg.Tracker.URL != "https://docs.google.com/spreadsheets/d/xyz" {
		t.Errorf("Incorrect URL - got %q", cfg.Tracker.URL)
	}

	if cfg.Tracker.LogRetention != 14 {
		t.Errorf("Incorrect log retention - expected 14, got %v", cfg.Tracker.LogRetention)
	}

	if cfg.Logging.Format != "console" {
		t.Errorf("Incorrect logging format - expected 'console', got %q", cfg.Logging.Format)
	}
}

func TestLoadWithInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.toml")
	if err := os.WriteFile(path, []byte("[tracker\nurl = "), 0600); err != nil {
		t.Fatalf("%v", err)
	}

	if _, err := Load(path, t.TempDir()); err == nil {
		t.Fatalf("Expected error loading invalid configuration file")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default("/tmp")

	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Errorf("Expected error for invalid logging level")
	}

	cfg = Default("/tmp")
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Errorf("Expected error for invalid logging format")
	}

	cfg = Default("/tmp")
	cfg.Tracker.LogRetention = -1
	if err := cfg.Validate(); err == nil {
		t.Errorf("Expected error for negative log retention")
	}
}
