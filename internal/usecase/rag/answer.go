package rag

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Rohang10/saas-copilot/internal/entity"
	"github.com/Rohang10/saas-copilot/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const minQuestionLength = 5

var rejectionAnswers = map[entity.AnswerStatus]string{
	entity.StatusInvalidInput:       "Please ask a clearer question.",
	entity.StatusBlocked:            "I cannot help with this request.",
	entity.StatusNotReady:           "Knowledge base is not initialized yet.",
	entity.StatusLowContext:         "I do not have enough information to answer this question.",
	entity.StatusLowConfidence:      "I do not have enough reliable information to answer this question.",
	entity.StatusGenerationFailed:   "I could not generate an answer right now. Please try again.",
	entity.StatusServiceUnavailable: "The support assistant is temporarily unavailable. Please try again later.",
}

// Ask runs the answer pipeline. Every call gets a fresh trace id. Failures are
// reported through the response status, never as an error.
func (uc *RAGUsecase) Ask(ctx context.Context, req entity.AskRequest) *entity.AnswerResponse {
	traceID := uc.newTraceID()
	ctx = logger.WithTraceID(ctx, traceID)
	ctx = logger.WithAction(ctx, "ask")

	question := strings.TrimSpace(req.Question)
	if utf8.RuneCountInString(question) < minQuestionLength {
		return uc.reject(ctx, traceID, entity.StatusInvalidInput)
	}

	if uc.guard.IsUnsafe(question) {
		return uc.reject(ctx, traceID, entity.StatusBlocked)
	}

	n, err := uc.store.Count(ctx)
	if err != nil {
		ctxzap.Error(ctx, "count chunks", zap.Error(err))
		return uc.reject(ctx, traceID, entity.StatusServiceUnavailable)
	}
	if n == 0 {
		return uc.reject(ctx, traceID, entity.StatusNotReady)
	}

	topK := uc.topK(req.TopK)

	embeddings, err := uc.embedder.Embed(ctx, []string{question})
	if err != nil || len(embeddings) != 1 {
		ctxzap.Error(ctx, "embed question", zap.Error(err), zap.Int("embedding_count", len(embeddings)))
		return uc.reject(ctx, traceID, entity.StatusServiceUnavailable)
	}

	results, err := uc.store.Query(ctx, embeddings[0], topK)
	if err != nil {
		ctxzap.Error(ctx, "query chunks", zap.Error(err))
		return uc.reject(ctx, traceID, entity.StatusServiceUnavailable)
	}
	if len(results) == 0 {
		return uc.reject(ctx, traceID, entity.StatusLowContext)
	}

	sources := filterSources(results, uc.cfg.MinSimilarityScore)
	ctxzap.Debug(ctx, "retrieval finished",
		zap.Int("top_k", topK),
		zap.Int("retrieved", len(results)),
		zap.Int("kept", len(sources)),
	)

	if len(sources) < uc.cfg.MinChunksRequired {
		return uc.reject(ctx, traceID, entity.StatusLowConfidence)
	}

	answer, err := uc.generator.Generate(ctx, buildPrompt(question, sources))
	if err != nil {
		ctxzap.Error(ctx, "generate answer", zap.Error(err))
		return uc.reject(ctx, traceID, entity.StatusGenerationFailed)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		ctxzap.Warn(ctx, "generator returned a blank answer")
		return uc.reject(ctx, traceID, entity.StatusGenerationFailed)
	}

	confidence := confidenceFor(sources)
	ctxzap.Info(ctx, "question answered",
		zap.Int("source_count", len(sources)),
		zap.String("confidence", string(confidence)),
	)

	return answered(traceID, answer, sources, confidence)
}

func (uc *RAGUsecase) topK(requested int) int {
	topK := requested
	if topK <= 0 {
		topK = uc.cfg.TopKDefault
	}
	if uc.cfg.TopKMax > 0 && topK > uc.cfg.TopKMax {
		topK = uc.cfg.TopKMax
	}
	return topK
}

func (uc *RAGUsecase) reject(ctx context.Context, traceID string, status entity.AnswerStatus) *entity.AnswerResponse {
	ctxzap.Info(ctx, "question rejected", zap.String("status", string(status)))
	return rejected(traceID, status)
}

func rejected(traceID string, status entity.AnswerStatus) *entity.AnswerResponse {
	return &entity.AnswerResponse{
		Answer:     rejectionAnswers[status],
		Sources:    []entity.Source{},
		Status:     status,
		Confidence: entity.ConfidenceLow,
		TraceID:    traceID,
	}
}

func answered(traceID, answer string, sources []entity.Source, confidence entity.Confidence) *entity.AnswerResponse {
	return &entity.AnswerResponse{
		Answer:     answer,
		Sources:    sources,
		Status:     entity.StatusOK,
		Confidence: confidence,
		TraceID:    traceID,
	}
}
