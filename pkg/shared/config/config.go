package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	Logger     Logger     `yaml:"logger"`
	HTTPClient HTTPClient `yaml:"http_client"`
	Watcher    Watcher    `yaml:"watcher"`
	Analyzer   Analyzer   `yaml:"analyzer"`
}

type Logger struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

type HTTPClient struct {
	Debug            bool            `yaml:"debug"`
	RetryCount       int             `yaml:"retry_count"`
	RetryWaitTime    Duration        `yaml:"retry_wait_time"`
	RetryMaxWaitTime Duration        `yaml:"retry_max_wait_time"`
	Timeout          Duration        `yaml:"timeout"`
	TLSClientConfig  TLSClientConfig `yaml:"tls_client_config"`
	Proxy            Proxy           `yaml:"proxy"`
}

type TLSClientConfig struct {
	Verify bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type Watcher struct {
	Source string `yaml:"source"`
}

type Analyzer struct {
	Strategy       string   `yaml:"strategy"`
	Backend        string   `yaml:"backend"`
	RequestTimeout Duration `yaml:"request_timeout"`
	Workers        int      `yaml:"workers"`
	LocalNetwork   string   `yaml:"local_network"`
	OpenAI         OpenAI   `yaml:"openai"`
	Ollama         Ollama   `yaml:"ollama"`
}

type OpenAI struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type Ollama struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

// Duration decodes Go duration strings such as "30s" or "1m" from YAML.
type Duration time.Duration

// UnmarshalYAML implements the yaml.v2 Unmarshaler interface.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// NewConfig reads the YAML file at configPath into a Config pre-populated
// with defaults, so absent directives keep their default values.
func NewConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := LoadYAML(configPath, config); err != nil {
		return nil, err
	}

	return config, nil
}
