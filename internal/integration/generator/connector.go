package generator

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Rohang10/saas-copilot/internal/config"
	"github.com/Rohang10/saas-copilot/internal/entity"
	"github.com/Rohang10/saas-copilot/internal/integration/common"
	pkghttp "github.com/Rohang10/saas-copilot/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const systemPrompt = "You are a precise SaaS support assistant."

// TokenCounter is used to log the prompt size before the call
type TokenCounter interface {
	Count(text string) (int, error)
}

// Connector calls an OpenAI-compatible chat completions API (Groq by default)
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	counter   TokenCounter
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	counter TokenCounter,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig),
		config:    cfg,
		counter:   counter,
		logger:    logger,
	}
}

// Generate sends prompt as the user message and returns the trimmed completion
func (c *Connector) Generate(ctx context.Context, prompt string) (string, error) {
	fields := []zap.Field{
		zap.String("model", c.config.Model),
		zap.Int("prompt_length", len(prompt)),
	}
	if c.counter != nil {
		if n, err := c.counter.Count(prompt); err == nil {
			fields = append(fields, zap.Int("prompt_tokens", n))
		} else {
			ctxzap.Warn(ctx, "failed to count prompt tokens", zap.Error(err))
		}
	}
	ctxzap.Info(ctx, "generating answer via LLM service", fields...)

	req := &entity.ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: c.config.Temperature,
		Messages: []entity.ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	var resp entity.ChatCompletionResponse
	err := common.DoWithRetry(ctx, c.config.Retry, "chat_completion", func(ctx context.Context) error {
		resp = entity.ChatCompletionResponse{}
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.ChatEndpoint, req, &resp)
	})
	if err != nil {
		ctxzap.Error(ctx, "failed to generate answer", zap.Error(err))
		return "", fmt.Errorf("generate answer failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", entity.ErrEmptyGeneration
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)

	ctxzap.Info(ctx, "answer generated successfully",
		zap.Int("result_length", len(answer)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return answer, nil
}
