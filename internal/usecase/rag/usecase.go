package rag

import (
	"context"
	"fmt"
	"sync"

	"github.com/Rohang10/saas-copilot/internal/config"
	"github.com/Rohang10/saas-copilot/internal/entity"
	"github.com/Rohang10/saas-copilot/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RAGUsecase implements knowledge base ingestion and question answering
type RAGUsecase struct {
	documents DocumentSource
	chunker   Chunker
	embedder  Embedder
	store     repository.ChunkRepository
	generator Generator
	guard     SafetyGuard
	cfg       config.RAGConfig

	// ingestion is a single-writer operation
	ingestMu sync.Mutex

	newTraceID func() string
}

// NewUsecase creates a new RAG use case
func NewUsecase(
	documents DocumentSource,
	chunker Chunker,
	embedder Embedder,
	store repository.ChunkRepository,
	generator Generator,
	guard SafetyGuard,
	cfg config.RAGConfig,
	logger *zap.Logger,
) *RAGUsecase {
	logger.Debug("rag pipeline configured",
		zap.Float64("min_similarity_score", cfg.MinSimilarityScore),
		zap.Int("min_chunks_required", cfg.MinChunksRequired),
		zap.Int("top_k_default", cfg.TopKDefault),
		zap.Int("top_k_max", cfg.TopKMax),
	)

	return &RAGUsecase{
		documents:  documents,
		chunker:    chunker,
		embedder:   embedder,
		store:      store,
		generator:  generator,
		guard:      guard,
		cfg:        cfg,
		newTraceID: uuid.NewString,
	}
}

// Readiness reports whether the knowledge base holds any chunks
func (uc *RAGUsecase) Readiness(ctx context.Context) (*entity.ReadyResponse, error) {
	n, err := uc.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count chunks: %w", err)
	}

	status := entity.ReadinessNotReady
	if n > 0 {
		status = entity.ReadinessReady
	}

	return &entity.ReadyResponse{
		Status:           status,
		DocumentsIndexed: n,
	}, nil
}

// Evaluation describes the thresholds the answer pipeline runs with
func (uc *RAGUsecase) Evaluation() *entity.EvaluationResponse {
	return &entity.EvaluationResponse{
		Status:            "not_implemented",
		Description:       "Offline evaluation is not computed by the service. The payload lists the thresholds used to grade answers.",
		MinSimilarity:     uc.cfg.MinSimilarityScore,
		MinChunksRequired: uc.cfg.MinChunksRequired,
		TopKDefault:       uc.cfg.TopKDefault,
		ConfidenceBuckets: map[string]string{
			string(entity.ConfidenceLowBucket):    fmt.Sprintf("average score < %.2f", mediumConfidenceFrom),
			string(entity.ConfidenceMediumBucket): fmt.Sprintf("%.2f <= average score < %.2f", mediumConfidenceFrom, highConfidenceFrom),
			string(entity.ConfidenceHighBucket):   fmt.Sprintf("average score >= %.2f", highConfidenceFrom),
		},
		Statuses: []entity.AnswerStatus{
			entity.StatusOK,
			entity.StatusInvalidInput,
			entity.StatusBlocked,
			entity.StatusNotReady,
			entity.StatusLowContext,
			entity.StatusLowConfidence,
			entity.StatusGenerationFailed,
			entity.StatusServiceUnavailable,
		},
	}
}
