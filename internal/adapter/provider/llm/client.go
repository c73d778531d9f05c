// Package llm is a chat-completion client for OpenAI-compatible APIs
// (DeepSeek by default). It serves both translation and content generation.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/heartmarshall/skillhub-backend/internal/config"
	"github.com/heartmarshall/skillhub-backend/internal/provider"
)

// apiVersionPath is appended to the configured base URL; the client then
// posts to {base}/v1/chat/completions.
const apiVersionPath = "/v1"

// Client sends one system and one user message and returns the reply text.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
	log         *slog.Logger
}

// NewClient creates a Client whose every call is bounded by timeout.
func NewClient(cfg config.LLMConfig, timeout time.Duration, logger *slog.Logger) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/") + apiVersionPath
	apiCfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		api:         openai.NewClientWithConfig(apiCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     timeout,
		log:         logger.With("adapter", "llm"),
	}
}

// Complete runs one chat completion. The returned text is trimmed; a reply
// that is missing, blank or not decodable is a failed Outcome, never an error.
func (c *Client) Complete(ctx context.Context, system, user string) provider.Outcome {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		out := provider.Failed(classify(err), err)
		c.log.WarnContext(ctx, "chat completion failed",
			slog.String("model", c.model),
			slog.String("reason", string(out.Failure)),
			slog.String("error", err.Error()),
		)
		return out
	}

	c.log.DebugContext(ctx, "chat completion",
		slog.String("model", c.model),
		slog.Int("choices", len(resp.Choices)),
		slog.Duration("took", time.Since(started)),
	)

	if len(resp.Choices) == 0 {
		return provider.Failed(provider.FailureMalformed, errors.New("response has no choices"))
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return provider.Failed(provider.FailureEmpty, nil)
	}

	return provider.Success(text)
}

func classify(err error) provider.Failure {
	if errors.Is(err, context.DeadlineExceeded) {
		return provider.FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return provider.FailureTimeout
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return provider.FailureHTTP
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return provider.FailureHTTP
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return provider.FailureMalformed
	}

	return provider.FailureTransport
}
