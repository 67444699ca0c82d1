package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/connwatch/connwatch/pkg/shared/errors"
)

// ValidateConfig checks if the global configuration has valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateLoggerConfig(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML global config: logger directive is invalid: %w", err)
	}
	if err := ValidateHTTPConfig(&cfg.HTTPClient); err != nil {
		return fmt.Errorf("YAML global config: http_client directive is invalid: %w", err)
	}
	if err := ValidateWatcherConfig(&cfg.Watcher); err != nil {
		return fmt.Errorf("YAML global config: watcher directive is invalid: %w", err)
	}
	if err := ValidateAnalyzerConfig(&cfg.Analyzer); err != nil {
		return fmt.Errorf("YAML global config: analyzer directive is invalid: %w", err)
	}
	return nil
}

// ValidateLoggerConfig checks if the logger configuration has valid values.
func ValidateLoggerConfig(loggerConfig *Logger) error {
	if loggerConfig == nil {
		return fmt.Errorf("logger configuration is nil")
	}

	switch strings.ToUpper(loggerConfig.Level) {
	case "", "TRACE", "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return errors.NewInvalidOptionError("level", loggerConfig.Level, "trace", "debug", "info", "warn", "error")
	}

	if loggerConfig.MaxSizeMB < 1 {
		return fmt.Errorf("max_size_mb must be positive: %d", loggerConfig.MaxSizeMB)
	}
	if loggerConfig.MaxBackups < 0 {
		return fmt.Errorf("max_backups cannot be negative: %d", loggerConfig.MaxBackups)
	}
	return nil
}

// ValidateHTTPConfig checks if the HTTP configuration has valid values.
func ValidateHTTPConfig(httpConfig *HTTPClient) error {
	if httpConfig == nil {
		return fmt.Errorf("HTTP configuration is nil")
	}
	if httpConfig.RetryCount < 0 || httpConfig.RetryCount > 20 {
		return fmt.Errorf("retry_count must be between 0 and 20: %d", httpConfig.RetryCount)
	}

	durations := map[string]time.Duration{
		"RetryMaxWaitTime": time.Duration(httpConfig.RetryMaxWaitTime),
		"RetryWaitTime":    time.Duration(httpConfig.RetryWaitTime),
		"Timeout":          time.Duration(httpConfig.Timeout),
	}
	for name, duration := range durations {
		if err := validateDuration(duration, name, 10*time.Minute); err != nil {
			return err
		}
	}

	if err := validateProxy(&httpConfig.Proxy); err != nil {
		return err
	}

	return nil
}

// ValidateWatcherConfig checks if the watcher configuration has valid values.
func ValidateWatcherConfig(watcherConfig *Watcher) error {
	if watcherConfig == nil {
		return fmt.Errorf("watcher configuration is nil")
	}

	switch watcherConfig.Source {
	case SourceGops, SourceProcfs:
		return nil
	default:
		return errors.NewInvalidOptionError("source", watcherConfig.Source, SourceGops, SourceProcfs)
	}
}

// ValidateAnalyzerConfig checks if the analyzer configuration has valid values.
func ValidateAnalyzerConfig(analyzerConfig *Analyzer) error {
	if analyzerConfig == nil {
		return fmt.Errorf("analyzer configuration is nil")
	}

	switch analyzerConfig.Strategy {
	case StrategyHeuristic, StrategyNoop:
	default:
		return errors.NewInvalidOptionError("strategy", analyzerConfig.Strategy, StrategyHeuristic, StrategyNoop)
	}

	switch analyzerConfig.Backend {
	case BackendOpenAI, BackendOllama:
	default:
		return errors.NewInvalidOptionError("backend", analyzerConfig.Backend, BackendOpenAI, BackendOllama)
	}

	if analyzerConfig.Workers < 1 || analyzerConfig.Workers > 64 {
		return fmt.Errorf("workers must be between 1 and 64: %d", analyzerConfig.Workers)
	}

	timeout := time.Duration(analyzerConfig.RequestTimeout)
	if timeout <= 0 {
		return fmt.Errorf("request_timeout must be positive: %v", timeout)
	}
	if err := validateDuration(timeout, "RequestTimeout", 10*time.Minute); err != nil {
		return err
	}

	if analyzerConfig.Backend == BackendOllama {
		if _, err := url.ParseRequestURI(analyzerConfig.Ollama.Endpoint); err != nil {
			return fmt.Errorf("invalid ollama endpoint URL %q: %w", analyzerConfig.Ollama.Endpoint, err)
		}
	}

	return nil
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %q: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%q duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}

// validateProxy checks if the given Proxy settings are valid.
func validateProxy(proxy *Proxy) error {
	if proxy == nil {
		return fmt.Errorf("proxy configuration is nil")
	}

	// If host or port is not set, skip further validation
	if proxy.Host == "" || proxy.Port == 0 {
		return nil
	}

	if err := validateHost(&proxy.Host); err != nil {
		return err
	}

	if err := validatePort(proxy.Port); err != nil {
		return err
	}

	return nil
}

// validateHost checks if the host part of the proxy configuration is valid.
// It ensures the host includes a scheme; adds "http" if missing.
func validateHost(host *string) error {
	if host == nil {
		return fmt.Errorf("host string pointer is nil")
	}

	if !strings.Contains(*host, "://") {
		*host = "http://" + *host
	}
	*host = strings.TrimRight(*host, "/")

	if _, err := url.Parse(*host); err != nil {
		return fmt.Errorf("invalid host URL: %w", err)
	}

	return nil
}

// validatePort checks if the port part of the proxy configuration is valid.
func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return nil
}
