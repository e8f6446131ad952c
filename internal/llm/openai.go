package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// openAIClient implements LLMClient with the chat completions API.
type openAIClient struct {
	cfg      LLMConfig
	client   *openai.Client
	observer Observer
}

// NewOpenAIClient creates an LLMClient backed by OpenAI chat completions.
// A non-empty cfg.Endpoint replaces the default base URL.
// A missing API key is not rejected here; the first call fails with the
// provider's own error instead.
func NewOpenAIClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		oc.BaseURL = cfg.Endpoint
	}
	return &openAIClient{
		cfg:      cfg,
		client:   openai.NewClientWithConfig(oc),
		observer: observer,
	}
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	tc := c.cfg.Tasks[req.Task]

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt})

	chatReq := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		MaxTokens:   tc.MaxTokens,
		Temperature: float32(tc.Temperature),
	}

	return generate(ctx, c.cfg, c.observer, req.Task, func(ctx context.Context) (*GenerateResponse, error) {
		resp, err := c.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, ErrEmptyResponse
		}
		return &GenerateResponse{
			Text:  resp.Choices[0].Message.Content,
			Model: resp.Model,
		}, nil
	})
}

// Available reports whether an API key is configured. It does not call out.
func (c *openAIClient) Available(context.Context) bool {
	return c.cfg.APIKey != ""
}
