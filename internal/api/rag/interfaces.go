package rag

import (
	"context"

	"github.com/Rohang10/saas-copilot/internal/entity"
)

type RAGUsecase interface {
	Ingest(ctx context.Context) (*entity.IngestResult, error)
	Ask(ctx context.Context, req entity.AskRequest) *entity.AnswerResponse
	Readiness(ctx context.Context) (*entity.ReadyResponse, error)
	Evaluation() *entity.EvaluationResponse
}
