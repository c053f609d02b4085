package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const FILE = "warc-tracker-sheets.toml"

// Google contains the OAuth2 client credentials and token cache locations.
type Google struct {
	Credentials string `toml:"credentials"`
	Tokens      string `toml:"tokens"`
}

// Tracker identifies the tracker worksheet and the log worksheet updated by 'check'.
type Tracker struct {
	URL          string `toml:"url"`
	Range        string `toml:"range"`
	LogRange     string `toml:"log_range"`
	LogRetention int    `toml:"log_retention"`
}

type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the application configuration, loaded once at startup and passed explicitly
// to the commands.
type Config struct {
	Workdir string  `toml:"workdir"`
	Google  Google  `toml:"google"`
	Tracker Tracker `toml:"tracker"`
	Logging Logging `toml:"logging"`
}

// Default returns the built-in configuration for the given working directory.
func Default(workdir string) Config {
	return Config{
		Workdir: workdir,
		Google: Google{
			Credentials: filepath.Join(workdir, ".google", "credentials.json"),
			Tokens:      filepath.Join(workdir, ".google"),
		},
		Tracker: Tracker{
			Range:        "Tracker!A1:C",
			LogRange:     "Log!A1:F",
			LogRetention: 30,
		},
		Logging: Logging{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load reads the TOML configuration file at path (or <workdir>/warc-tracker-sheets.toml if
// path is empty), applies any WARC_TRACKER_* environment overrides and validates the result.
// A missing file is not an error - the defaults are used instead.
func Load(path string, workdir string) (*Config, error) {
	if v := strings.TrimSpace(os.Getenv("WARC_TRACKER_WORKDIR")); v != "" {
		workdir = v
	}

	cfg := Default(workdir)

	if path == "" {
		path = filepath.Join(workdir, FILE)
	}

	if f, err := os.Open(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("open config: %w", err)
	} else if err == nil {
		defer f.Close()

		if err := toml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.overrides(); err != nil {
		return nil, err
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) overrides() error {
	env := map[string]*string{
		"WARC_TRACKER_CREDENTIALS": &c.Google.Credentials,
		"WARC_TRACKER_TOKENS":      &c.Google.Tokens,
		"WARC_TRACKER_URL":         &c.Tracker.URL,
		"WARC_TRACKER_RANGE":       &c.Tracker.Range,
		"WARC_TRACKER_LOG_RANGE":   &c.Tracker.LogRange,
		"WARC_TRACKER_LOG_LEVEL":   &c.Logging.Level,
		"WARC_TRACKER_LOG_FORMAT":  &c.Logging.Format,
	}

	for k, p := range env {
		if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
			*p = strings.TrimSpace(v)
		}
	}

	if v := strings.TrimSpace(os.Getenv("WARC_TRACKER_LOG_RETENTION")); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid WARC_TRACKER_LOG_RETENTION '%s' (%w)", v, err)
		}

		c.Tracker.LogRetention = days
	}

	return nil
}

func (c *Config) normalize() {
	c.Workdir = strings.TrimSpace(c.Workdir)
	c.Google.Credentials = strings.TrimSpace(c.Google.Credentials)
	c.Google.Tokens = strings.TrimSpace(c.Google.Tokens)
	c.Tracker.URL = strings.TrimSpace(c.Tracker.URL)
	c.Tracker.Range = strings.TrimSpace(c.Tracker.Range)
	c.Tracker.LogRange = strings.TrimSpace(c.Tracker.LogRange)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level '%s' - expected one of debug, info, warn or error", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("invalid logging format '%s' - expected one of auto, console or json", c.Logging.Format)
	}

	if c.Tracker.LogRetention < 0 {
		return fmt.Errorf("invalid log retention %d - expected a non-negative number of days", c.Tracker.LogRetention)
	}

	return nil
}
