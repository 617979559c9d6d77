package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultAPIBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultTimeoutSeconds, cfg.API.TimeoutSeconds)
	assert.Equal(t, DefaultShareBaseURL, cfg.Share.BaseURL)
	assert.Equal(t, DefaultLeadCaptureURL, cfg.LeadCapture.URL)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("COMMUTREE_CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIBaseURL, cfg.API.BaseURL)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("COMMUTREE_CONFIG_DIR", dir)

	content := []byte("api:\n  base_url: https://emissions.example.com\n  timeout_seconds: 5\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), content, 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://emissions.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.TimeoutSeconds)
	// Sections absent from the file keep defaults.
	assert.Equal(t, DefaultShareBaseURL, cfg.Share.BaseURL)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("COMMUTREE_CONFIG_DIR", dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("api: [broken"), 0600))

	_, err := Load()
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("COMMUTREE_CONFIG_DIR", t.TempDir())
	t.Setenv("COMMUTREE_API_URL", "https://staging.example.com")
	t.Setenv("COMMUTREE_API_TIMEOUT", "3")
	t.Setenv("COMMUTREE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com", cfg.API.BaseURL)
	assert.Equal(t, 3, cfg.API.TimeoutSeconds)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(_ *Config) {},
		},
		{
			name:    "relative api url rejected",
			mutate:  func(c *Config) { c.API.BaseURL = "/single-journey" },
			wantErr: true,
		},
		{
			name:    "empty share url rejected",
			mutate:  func(c *Config) { c.Share.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "zero timeout rejected",
			mutate:  func(c *Config) { c.API.TimeoutSeconds = 0 },
			wantErr: true,
		},
		{
			name:    "negative timeout rejected",
			mutate:  func(c *Config) { c.API.TimeoutSeconds = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	t.Setenv("COMMUTREE_CONFIG_DIR", t.TempDir())

	path, err := WriteDefault()
	require.NoError(t, err)
	require.FileExists(t, path)

	// A second init must not clobber user edits.
	_, err = WriteDefault()
	assert.Error(t, err)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIBaseURL, cfg.API.BaseURL)
}
