package askai

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/connwatch/connwatch/pkg/shared/config"
	"github.com/connwatch/connwatch/pkg/shared/httpclient"
)

// generateRequest is the Ollama /api/generate payload.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse is the non-streaming Ollama reply.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// OllamaAsker answers questions through a local Ollama server, for hosts
// that must not ship socket data to an external API.
type OllamaAsker struct {
	client   *resty.Client
	endpoint string
	model    string
	logger   hclog.Logger
}

// NewOllamaAsker builds the local backend from the analyzer configuration.
func NewOllamaAsker(cfg *config.Config, logger hclog.Logger) *OllamaAsker {
	return &OllamaAsker{
		client:   httpclient.InitializeRestyClient(logger, cfg),
		endpoint: strings.TrimRight(cfg.Analyzer.Ollama.Endpoint, "/"),
		model:    cfg.Analyzer.Ollama.Model,
		logger:   logger,
	}
}

// Ask posts one prompt and returns the complete response text.
func (a *OllamaAsker) Ask(ctx context.Context, question string) (string, error) {
	a.logger.Debug("asking text-analysis backend", "backend", config.BackendOllama, "model", a.model)

	var result generateResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(generateRequest{Model: a.model, Prompt: question}).
		SetResult(&result).
		Post(a.endpoint + "/api/generate")
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("ollama returned %s: %s", resp.Status(), resp.String())
	}
	return result.Response, nil
}
