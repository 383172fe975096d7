package openai

import (
	"context"
	"log/slog"

	"github.com/alan-mat/reviewscout/internal/llm"
	"github.com/alan-mat/reviewscout/internal/provider"
	"github.com/sashabaranov/go-openai"
)

const (
	Name = "openai"
	// DefaultModel searches the web on every request.
	DefaultModel = "gpt-4o-search-preview"
	APIKeyEnv    = "OPENAI_API_KEY"
)

func init() {
	provider.Register(Name, provider.Provider{
		New: func(ctx context.Context, conf provider.Config) (llm.Generator, error) {
			return New(conf), nil
		},
		APIKeyEnv:    APIKeyEnv,
		DefaultModel: DefaultModel,
	})
}

type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func New(conf provider.Config) *OpenAIProvider {
	clientConf := openai.DefaultConfig(conf.APIKey)
	if conf.BaseURL != "" {
		clientConf.BaseURL = conf.BaseURL
	}

	model := conf.Model
	if model == "" {
		model = DefaultModel
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConf),
		model:  model,
	}
}

func (p OpenAIProvider) Generate(ctx context.Context, req *llm.Request) (llm.Response, error) {
	if len(req.SafetyOverrides) > 0 {
		slog.Debug("openai does not support safety overrides, ignoring", "overrides", req.SafetyOverrides)
	}

	openaiReq := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
	}

	if req.ModelName != "" {
		openaiReq.Model = req.ModelName
	}

	resp, err := p.client.CreateChatCompletion(ctx, openaiReq)
	if err != nil {
		return nil, err
	}

	var msg llm.Message
	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
		msg = llm.TextMessage(resp.Choices[0].Message.Content)
	}
	return msg, nil
}
