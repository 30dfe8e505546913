package builder

import (
	"context"

	"github.com/Rohang10/saas-copilot/internal/config"
	"github.com/Rohang10/saas-copilot/internal/integration/embedder"
	"github.com/Rohang10/saas-copilot/internal/integration/generator"
	"github.com/Rohang10/saas-copilot/internal/loader"
	"github.com/Rohang10/saas-copilot/internal/pkg/chunker"
	"github.com/Rohang10/saas-copilot/internal/pkg/safety"
	"github.com/Rohang10/saas-copilot/internal/pkg/tokens"
	"github.com/Rohang10/saas-copilot/internal/repository"
	ragusecase "github.com/Rohang10/saas-copilot/internal/usecase/rag"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// buildRAG wires the retrieval pipeline shared by the HTTP server and the bot
func buildRAG(cfg *config.Config, db *pgxpool.Pool, logger *zap.Logger) *ragusecase.RAGUsecase {
	chunkRepo := repository.NewChunkPostgres(db, cfg.RAGCfg.EmbeddingDimensions)

	var emb ragusecase.Embedder
	var gen ragusecase.Generator

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		emb = embedder.NewMockConnector(cfg.RAGCfg.EmbeddingDimensions, logger)
		gen = generator.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		emb = embedder.NewConnector(cfg.EmbedderConnectorCfg, logger)

		// A typed nil counter would not compare equal to nil inside the connector
		var counter generator.TokenCounter
		if cfg.LLMConnectorCfg.CountTokens {
			counter = tokens.NewCounter(tokens.DefaultEncoding)
		}
		gen = generator.NewConnector(cfg.LLMConnectorCfg, counter, logger)
	}

	if cfg.EmbedderConnectorCfg.CacheTTL > 0 {
		emb = embedder.NewCachedEmbedder(emb, cfg.EmbedderConnectorCfg.Model, cfg.EmbedderConnectorCfg.CacheTTL)
	}

	return ragusecase.NewUsecase(
		loader.NewJSONLoader(cfg.RAGCfg.DocsDir),
		chunker.New(
			chunker.WithChunkSize(cfg.ChunkerCfg.Size),
			chunker.WithOverlap(cfg.ChunkerCfg.Overlap),
		),
		emb,
		chunkRepo,
		gen,
		safety.NewGuard(cfg.RAGCfg.BlockedPhrases...),
		cfg.RAGCfg,
		logger,
	)
}

// autoIngest indexes the documents directory at startup. Failures are logged only.
func autoIngest(ctx context.Context, rag *ragusecase.RAGUsecase, logger *zap.Logger) {
	ctx = ctxzap.ToContext(ctx, logger.With(zap.String("action", "auto_ingest")))

	result, err := rag.Ingest(ctx)
	if err != nil {
		logger.Warn("Auto ingest failed", zap.Error(err))
		return
	}

	logger.Info("Auto ingest finished",
		zap.String("status", string(result.Status)),
		zap.Int("chunks", result.Chunks),
		zap.Int("documents_indexed", result.DocumentsIndexed),
	)
}
