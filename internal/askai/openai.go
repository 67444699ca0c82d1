package askai

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/connwatch/connwatch/pkg/shared/config"
	"github.com/connwatch/connwatch/pkg/shared/httpclient"
)

// OpenAIAsker answers questions through the OpenAI chat-completion API.
type OpenAIAsker struct {
	client *openai.Client
	model  string
	logger hclog.Logger
}

// NewOpenAIAsker builds the default backend. The API key comes strictly from
// the OPENAI_API_KEY environment variable; a missing key fails construction
// so a run never starts half-configured.
func NewOpenAIAsker(cfg *config.Config, logger hclog.Logger) (*OpenAIAsker, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.Analyzer.OpenAI.BaseURL != "" {
		clientConfig.BaseURL = cfg.Analyzer.OpenAI.BaseURL
	}
	clientConfig.HTTPClient = httpclient.StdClient(logger, cfg)

	return &OpenAIAsker{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Analyzer.OpenAI.Model,
		logger: logger,
	}, nil
}

// Ask sends one user message and returns the first choice verbatim.
func (a *OpenAIAsker) Ask(ctx context.Context, question string) (string, error) {
	a.logger.Debug("asking text-analysis backend", "backend", config.BackendOpenAI, "model", a.model)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
