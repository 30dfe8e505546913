package rag

import (
	"context"
	"fmt"

	"github.com/Rohang10/saas-copilot/internal/entity"
	"github.com/Rohang10/saas-copilot/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const alreadyIngestedMessage = "Documents already ingested"

// Ingest loads, chunks and embeds every document and writes the chunks to the
// store in one batch. A populated store is left untouched.
func (uc *RAGUsecase) Ingest(ctx context.Context) (*entity.IngestResult, error) {
	uc.ingestMu.Lock()
	defer uc.ingestMu.Unlock()

	ctx = logger.WithAction(ctx, "ingest")

	docs, err := uc.documents.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	if len(docs) == 0 {
		return nil, entity.ErrNoDocumentsFound
	}

	existing, err := uc.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count chunks: %w", err)
	}
	if existing > 0 {
		ctxzap.Info(ctx, "ingestion skipped, store already populated", zap.Int("chunk_count", existing))
		return &entity.IngestResult{
			Status:           entity.IngestStatusSkipped,
			Message:          alreadyIngestedMessage,
			DocumentsIndexed: existing,
		}, nil
	}

	var chunks []entity.Chunk
	for _, doc := range docs {
		docChunks, err := uc.buildChunks(ctx, doc)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, docChunks...)
	}

	if len(chunks) == 0 {
		return nil, entity.ErrNoChunksCreated
	}

	if err := uc.store.Add(ctx, chunks); err != nil {
		return nil, fmt.Errorf("store chunks: %w", err)
	}

	ctxzap.Info(ctx, "ingestion completed",
		zap.Int("document_count", len(docs)),
		zap.Int("chunk_count", len(chunks)),
	)

	return &entity.IngestResult{
		Status: entity.IngestStatusIngested,
		Chunks: len(chunks),
	}, nil
}

func (uc *RAGUsecase) buildChunks(ctx context.Context, doc entity.Document) ([]entity.Chunk, error) {
	pieces := uc.chunker.Chunk(doc.Body)
	if len(pieces) == 0 {
		ctxzap.Debug(ctx, "document produced no chunks", zap.String("doc_id", doc.ID))
		return nil, nil
	}

	texts := make([]string, len(pieces))
	for i, p := range pieces {
		texts[i] = p.Text
	}

	embeddings, err := uc.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed document %s: %w", doc.ID, err)
	}
	if len(embeddings) != len(pieces) {
		return nil, fmt.Errorf("embed document %s: %w: got %d embeddings for %d chunks",
			doc.ID, entity.ErrEmbedding, len(embeddings), len(pieces))
	}

	chunks := make([]entity.Chunk, len(pieces))
	for i, p := range pieces {
		chunks[i] = entity.Chunk{
			ID:        entity.ChunkID(doc.ID, p.Index),
			Text:      p.Text,
			Embedding: embeddings[i],
			Metadata: entity.ChunkMetadata{
				DocID:      doc.ID,
				Title:      doc.Title,
				ChunkIndex: p.Index,
			},
		}
	}

	return chunks, nil
}
