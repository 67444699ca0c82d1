package logger

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/connwatch/connwatch/pkg/shared/config"
)

// NewLogger creates a named hclog.Logger from the YAML configuration.
// Logs go to stderr so stdout stays clean for console reports; setting
// logger.file redirects them to a size-rotated file instead.
func NewLogger(cfg *config.Config, name string) hclog.Logger {
	var logLevel hclog.Level

	if cfg != nil && cfg.Logger.Level != "" {
		logLevel = getLogLevel(strings.ToUpper(cfg.Logger.Level))
	} else {
		// env variables has the second priority
		logLevelEnv := os.Getenv("CONNWATCH_LOG_LEVEL")
		logLevel = getLogLevel(strings.ToUpper(logLevelEnv))
	}

	output, disableTime := newOutput(cfg)

	logger := hclog.New(&hclog.LoggerOptions{
		Name:        name,
		DisableTime: disableTime,
		Output:      output,
		Level:       logLevel,
	})

	return logger
}

// newOutput picks the log sink. File output keeps timestamps; terminal
// output drops them.
func newOutput(cfg *config.Config) (io.Writer, bool) {
	if cfg == nil || cfg.Logger.File == "" {
		return os.Stderr, true
	}
	return &lumberjack.Logger{
		Filename:   cfg.Logger.File,
		MaxSize:    cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
	}, false
}

func getLogLevel(levelStr string) hclog.Level {
	switch levelStr {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		return hclog.Info
	}
}
