// Package config loads and validates commutree configuration.
//
// Configuration is resolved in order: built-in defaults, then the YAML file
// at ~/.commutree/config.yaml (or COMMUTREE_CONFIG_DIR), then COMMUTREE_*
// environment variables. Later sources win.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Default endpoint and tuning values.
const (
	// DefaultAPIBaseURL is the emissions estimation service root.
	DefaultAPIBaseURL = "https://api.commutree.app"

	// DefaultShareBaseURL is the page shared result links point at.
	DefaultShareBaseURL = "https://commutree.app/share"

	// DefaultLeadCaptureURL receives newsletter signups.
	DefaultLeadCaptureURL = "https://api.commutree.app/subscribe"

	// DefaultTimeoutSeconds bounds a single estimation call. The upstream
	// service has no SLA, so the client enforces its own deadline.
	DefaultTimeoutSeconds = 15

	configFileName = "config.yaml"
	configDirName  = ".commutree"
	configDirPerm  = 0755
	configFilePerm = 0600
)

// APIConfig holds estimation service settings.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ShareConfig holds shareable-link settings.
type ShareConfig struct {
	BaseURL string `yaml:"base_url"`
}

// LeadCaptureConfig holds newsletter signup settings.
type LeadCaptureConfig struct {
	URL string `yaml:"url"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Config is the full commutree configuration.
type Config struct {
	API         APIConfig         `yaml:"api"`
	Share       ShareConfig       `yaml:"share"`
	LeadCapture LeadCaptureConfig `yaml:"lead_capture"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultAPIBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Share:       ShareConfig{BaseURL: DefaultShareBaseURL},
		LeadCapture: LeadCaptureConfig{URL: DefaultLeadCaptureURL},
		Logging:     LoggingConfig{Level: "info", Format: "console"},
	}
}

// Dir returns the commutree config directory, honoring COMMUTREE_CONFIG_DIR.
func Dir() string {
	if dir := os.Getenv("COMMUTREE_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return configDirName
	}
	return filepath.Join(home, configDirName)
}

// Path returns the config file path inside Dir.
func Path() string {
	return filepath.Join(Dir(), configFileName)
}

// Load resolves the effective configuration from defaults, file, and env.
// A missing config file is not an error; a malformed one is.
func Load() (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path())
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parsing %s: %w", Path(), unmarshalErr)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides layers COMMUTREE_* environment variables over cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("COMMUTREE_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("COMMUTREE_API_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.API.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("COMMUTREE_SHARE_URL"); v != "" {
		cfg.Share.BaseURL = v
	}
	if v := os.Getenv("COMMUTREE_LEAD_CAPTURE_URL"); v != "" {
		cfg.LeadCapture.URL = v
	}
	if v := os.Getenv("COMMUTREE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("COMMUTREE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"api.base_url":     c.API.BaseURL,
		"share.base_url":   c.Share.BaseURL,
		"lead_capture.url": c.LeadCapture.URL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s: invalid URL %q", name, raw)
		}
	}

	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be > 0, got %d", c.API.TimeoutSeconds)
	}
	return nil
}

// WriteDefault writes the default configuration to Path, creating the config
// directory if needed. It refuses to overwrite an existing file.
func WriteDefault() (string, error) {
	path := Path()
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(Dir(), configDirPerm); err != nil {
		return path, fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return path, fmt.Errorf("encoding default config: %w", err)
	}

	if err := os.WriteFile(path, data, configFilePerm); err != nil {
		return path, fmt.Errorf("writing config file: %w", err)
	}
	return path, nil
}
