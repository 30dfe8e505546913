package rag

import (
	"context"

	"github.com/Rohang10/saas-copilot/internal/entity"
)

type DocumentSource interface {
	Load(ctx context.Context) ([]entity.Document, error)
}

type Chunker interface {
	Chunk(body string) []entity.ChunkText
}

type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type SafetyGuard interface {
	IsUnsafe(question string) bool
}
