package tutor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mlahtinen/tutorloop/internal/errors"
	"github.com/sashabaranov/go-openai"
)

// Gateway sends a prompt to one of the supported models and returns the
// generated text. Implementations classify failures as [InvocationError].
type Gateway interface {
	Invoke(ctx context.Context, model Model, prompt string) (string, error)
}

// InvocationError reports a failed model call together with the offending
// model so that callers can map it to a useful response.
type InvocationError struct {
	Model Model
	Err   error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("invoke model %s: %s", e.Model, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

var (
	ErrUnknownModel    = errors.NewSentinel("model is not configured")
	ErrEmptyCompletion = errors.NewSentinel("model returned an empty completion")
)

const maxTokens = 4096

// ProviderConfig points one catalog model at its upstream backend. All
// supported providers expose OpenAI-compatible chat-completion endpoints, so
// one client library covers the whole catalog.
type ProviderConfig struct {
	// BaseURL of the provider API including the version prefix, e.g.
	// "https://router.huggingface.co/v1".
	BaseURL string
	// APIKey authenticates against the provider.
	APIKey string
	// Upstream is the model name the provider expects, e.g.
	// "deepseek-ai/DeepSeek-V3.1".
	Upstream string
}

// Client is the production Gateway. It holds one read-only provider client per
// catalog model, configured once at construction.
type Client struct {
	clients  map[Model]*openai.Client
	upstream map[Model]string
	timeout  time.Duration
	logger   *slog.Logger
}

// NewClient builds a Client from per-model provider configurations. Timeout
// bounds every Invoke call so a stuck provider fails instead of hanging.
func NewClient(providers map[Model]ProviderConfig, timeout time.Duration, logger *slog.Logger) *Client {
	clients := make(map[Model]*openai.Client, len(providers))
	upstream := make(map[Model]string, len(providers))
	for model, provider := range providers {
		config := openai.DefaultConfig(provider.APIKey)
		config.BaseURL = provider.BaseURL
		clients[model] = openai.NewClientWithConfig(config)
		upstream[model] = provider.Upstream
	}
	return &Client{
		clients:  clients,
		upstream: upstream,
		timeout:  timeout,
		logger:   logger.With("source", "tutor.Client"),
	}
}

// Invoke sends prompt to the backend associated with model and returns the
// generated text. Prompts can contain personal topics, so their contents are
// only logged at debug level.
func (c *Client) Invoke(ctx context.Context, model Model, prompt string) (string, error) {
	client, ok := c.clients[model]
	if !ok {
		return "", &InvocationError{Model: model, Err: ErrUnknownModel}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.LogAttrs(ctx, slog.LevelDebug, "invoking model",
		slog.String("model", string(model)), slog.Int("prompt_length", len(prompt)))

	completion, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
		Model:     c.upstream[model],
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt}, //nolint:exhaustruct // only role and content are needed
		},
	})
	if err != nil {
		return "", &InvocationError{Model: model, Err: err}
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", &InvocationError{Model: model, Err: ErrEmptyCompletion}
	}

	return completion.Choices[0].Message.Content, nil
}
