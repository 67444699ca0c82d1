package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewConfigKeepsDefaultsForAbsentDirectives(t *testing.T) {
	path := writeConfigFile(t, `
logger:
  level: debug
analyzer:
  strategy: noop
`)

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, StrategyNoop, cfg.Analyzer.Strategy)

	// untouched directives keep their defaults
	assert.Equal(t, 100, cfg.Logger.MaxSizeMB)
	assert.Equal(t, SourceGops, cfg.Watcher.Source)
	assert.Equal(t, BackendOpenAI, cfg.Analyzer.Backend)
	assert.Equal(t, "gpt-4o", cfg.Analyzer.OpenAI.Model)
	assert.Equal(t, 30*time.Second, time.Duration(cfg.Analyzer.RequestTimeout))
	assert.True(t, cfg.HTTPClient.TLSClientConfig.Verify)
}

func TestNewConfigParsesDurations(t *testing.T) {
	path := writeConfigFile(t, `
http_client:
  timeout: 90s
  retry_wait_time: 500ms
analyzer:
  request_timeout: 2m
`)

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, time.Duration(cfg.HTTPClient.Timeout))
	assert.Equal(t, 500*time.Millisecond, time.Duration(cfg.HTTPClient.RetryWaitTime))
	assert.Equal(t, 2*time.Minute, time.Duration(cfg.Analyzer.RequestTimeout))
}

func TestNewConfigRejectsMalformedDuration(t *testing.T) {
	path := writeConfigFile(t, `
http_client:
  timeout: ninety seconds
`)

	_, err := NewConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "defaults pass",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "unknown watcher source",
			mutate:  func(cfg *Config) { cfg.Watcher.Source = "netlink" },
			wantErr: `invalid source "netlink"`,
		},
		{
			name:    "unknown strategy",
			mutate:  func(cfg *Config) { cfg.Analyzer.Strategy = "guess" },
			wantErr: `invalid strategy "guess"`,
		},
		{
			name:    "unknown backend",
			mutate:  func(cfg *Config) { cfg.Analyzer.Backend = "bard" },
			wantErr: `invalid backend "bard"`,
		},
		{
			name:    "zero workers",
			mutate:  func(cfg *Config) { cfg.Analyzer.Workers = 0 },
			wantErr: "workers must be between 1 and 64",
		},
		{
			name:    "zero request timeout",
			mutate:  func(cfg *Config) { cfg.Analyzer.RequestTimeout = 0 },
			wantErr: "request_timeout must be positive",
		},
		{
			name:    "retry count out of range",
			mutate:  func(cfg *Config) { cfg.HTTPClient.RetryCount = 21 },
			wantErr: "retry_count must be between 0 and 20",
		},
		{
			name:    "bad log level",
			mutate:  func(cfg *Config) { cfg.Logger.Level = "loud" },
			wantErr: `invalid level "loud"`,
		},
		{
			name:    "bad proxy port",
			mutate:  func(cfg *Config) { cfg.HTTPClient.Proxy = Proxy{Host: "proxy.local", Port: 99999} },
			wantErr: "port must be between 1 and 65535",
		},
		{
			name: "bad ollama endpoint",
			mutate: func(cfg *Config) {
				cfg.Analyzer.Backend = BackendOllama
				cfg.Analyzer.Ollama.Endpoint = "not a url"
			},
			wantErr: "invalid ollama endpoint URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateHostAddsScheme(t *testing.T) {
	host := "proxy.local"
	require.NoError(t, validateHost(&host))
	assert.Equal(t, "http://proxy.local", host)
}
