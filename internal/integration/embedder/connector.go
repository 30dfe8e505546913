package embedder

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Rohang10/saas-copilot/internal/config"
	"github.com/Rohang10/saas-copilot/internal/entity"
	"github.com/Rohang10/saas-copilot/internal/integration/common"
	pkghttp "github.com/Rohang10/saas-copilot/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector talks to an Ollama-compatible embedding service
type Connector struct {
	config    config.EmbedderConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.EmbedderConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig),
		config:    cfg,
		logger:    logger,
	}
}

// Embed returns one vector per text, in input order
// POST {endpoint} {"model": ..., "input": [...]}
func (c *Connector) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	ctxzap.Debug(ctx, "embedding texts via embedding service",
		zap.Int("text_count", len(texts)),
		zap.String("model", c.config.Model),
	)

	req := &entity.EmbedRequest{
		Model: c.config.Model,
		Input: texts,
	}

	var resp entity.EmbedResponse
	err := common.DoWithRetry(ctx, c.config.Retry, "embed", func(ctx context.Context) error {
		resp = entity.EmbedResponse{}
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.Endpoint, req, &resp)
	})
	if err != nil {
		ctxzap.Error(ctx, "failed to embed texts", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", entity.ErrEmbedding, err)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d", entity.ErrEmbedding, len(texts), len(resp.Embeddings))
	}

	ctxzap.Debug(ctx, "texts embedded successfully", zap.Int("dimensions", len(resp.Embeddings[0])))

	return resp.Embeddings, nil
}
