package httpclient

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/connwatch/connwatch/pkg/shared/config"
)

// HclogAdapter adapts an hclog.Logger to be compatible with the resty log.Logger interface.
type HclogAdapter struct {
	logger hclog.Logger
}

// NewHclogAdapter creates a new adapter that will forward messages to a hclog.Logger.
func NewHclogAdapter(logger hclog.Logger) resty.Logger {
	return &HclogAdapter{logger: logger}
}

// Errorf logs a message at error level.
func (a *HclogAdapter) Errorf(format string, v ...interface{}) {
	a.logger.Error(fmt.Sprintf(format, v...))
}

// Warnf logs a message at warning level.
func (a *HclogAdapter) Warnf(format string, v ...interface{}) {
	a.logger.Warn(fmt.Sprintf(format, v...))
}

// Infof logs a message at info level.
func (a *HclogAdapter) Infof(format string, v ...interface{}) {
	a.logger.Info(fmt.Sprintf(format, v...))
}

// Debugf logs a message at debug level.
func (a *HclogAdapter) Debugf(format string, v ...interface{}) {
	a.logger.Debug(fmt.Sprintf(format, v...))
}

// SetLoggerForResty sets the adapted hclog.Logger as the logger for Resty.
func SetLoggerForResty(client *resty.Client, logger hclog.Logger) {
	client.SetLogger(NewHclogAdapter(logger))
}

// InitializeRestyClient initializes and configures a resty client based on the provided configuration.
func InitializeRestyClient(logger hclog.Logger, cfg *config.Config) *resty.Client {
	client := resty.New()
	if logger != nil {
		SetLoggerForResty(client, logger)
	}

	httpConfig := cfg.HTTPClient
	client.
		SetDebug(httpConfig.Debug).
		SetRetryCount(httpConfig.RetryCount).
		SetRetryWaitTime(time.Duration(httpConfig.RetryWaitTime)).
		SetRetryMaxWaitTime(time.Duration(httpConfig.RetryMaxWaitTime)).
		SetTimeout(time.Duration(httpConfig.Timeout)).
		SetTLSClientConfig(&tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: !httpConfig.TLSClientConfig.Verify,
		})

	if httpConfig.Proxy.Host != "" && httpConfig.Proxy.Port != 0 {
		client.SetProxy(fmt.Sprintf("%s:%d", httpConfig.Proxy.Host, httpConfig.Proxy.Port))
	}

	return client
}

// StdClient exposes the configured *http.Client for SDKs that issue their own
// requests, so they still honor the timeout, TLS, and proxy settings.
func StdClient(logger hclog.Logger, cfg *config.Config) *http.Client {
	return InitializeRestyClient(logger, cfg).GetClient()
}
