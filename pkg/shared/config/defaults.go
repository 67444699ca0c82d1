package config

import "time"

// Watcher source identifiers.
const (
	SourceGops   = "gops"
	SourceProcfs = "procfs"
)

// Analyzer strategy identifiers.
const (
	StrategyHeuristic = "heuristic"
	StrategyNoop      = "noop"
)

// Text-analysis backend identifiers.
const (
	BackendOpenAI = "openai"
	BackendOllama = "ollama"
)

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() *Config {
	return &Config{
		Logger: Logger{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 20,
		},
		HTTPClient: HTTPClient{
			RetryCount:       5,
			RetryWaitTime:    Duration(1 * time.Second),
			RetryMaxWaitTime: Duration(2 * time.Second),
			Timeout:          Duration(60 * time.Second),
			TLSClientConfig:  TLSClientConfig{Verify: true},
		},
		Watcher: Watcher{
			Source: SourceGops,
		},
		Analyzer: Analyzer{
			Strategy:       StrategyHeuristic,
			Backend:        BackendOpenAI,
			RequestTimeout: Duration(30 * time.Second),
			Workers:        1,
			LocalNetwork:   "192.168.",
			OpenAI: OpenAI{
				Model: "gpt-4o",
			},
			Ollama: Ollama{
				Endpoint: "http://127.0.0.1:11434",
				Model:    "llama3",
			},
		},
	}
}
