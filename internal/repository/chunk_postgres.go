package repository

import (
	"context"
	"fmt"

	"github.com/Rohang10/saas-copilot/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

const (
	upsertChunkSQL = `
INSERT INTO chunks (id, doc_id, title, chunk_index, text, embedding)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
    doc_id = EXCLUDED.doc_id,
    title = EXCLUDED.title,
    chunk_index = EXCLUDED.chunk_index,
    text = EXCLUDED.text,
    embedding = EXCLUDED.embedding`

	countChunksSQL = `SELECT COUNT(*) FROM chunks`

	queryChunksSQL = `
SELECT id, doc_id, title, chunk_index, text, embedding <=> $1 AS distance
FROM chunks
ORDER BY embedding <=> $1
LIMIT $2`
)

// ChunkRepository is the vector store of embedded knowledge base chunks
type ChunkRepository interface {
	Add(ctx context.Context, chunks []entity.Chunk) error
	Count(ctx context.Context) (int, error)
	Query(ctx context.Context, embedding []float32, topK int) (entity.RetrievalResult, error)
}

var _ ChunkRepository = &ChunkPostgres{}

// ChunkPostgres implements ChunkRepository on PostgreSQL with pgvector.
// Distances are cosine distances, so similarity is 1 - distance.
type ChunkPostgres struct {
	db         *pgxpool.Pool
	dimensions int
}

func NewChunkPostgres(db *pgxpool.Pool, dimensions int) *ChunkPostgres {
	return &ChunkPostgres{
		db:         db,
		dimensions: dimensions,
	}
}

// Add stores all chunks in a single transaction. Either every chunk is
// persisted or none is.
func (r *ChunkPostgres) Add(ctx context.Context, chunks []entity.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	for _, c := range chunks {
		if err := r.checkDimensions(c.Embedding); err != nil {
			return fmt.Errorf("chunk %s: %w", c.ID, err)
		}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", entity.ErrVectorStore, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for _, c := range chunks {
		batch.Queue(upsertChunkSQL,
			c.ID,
			c.Metadata.DocID,
			c.Metadata.Title,
			c.Metadata.ChunkIndex,
			c.Text,
			pgvector.NewVector(c.Embedding),
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%w: insert chunks: %w", entity.ErrVectorStore, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit chunks: %w", entity.ErrVectorStore, err)
	}

	return nil
}

func (r *ChunkPostgres) Count(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.QueryRow(ctx, countChunksSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count chunks: %w", entity.ErrVectorStore, err)
	}
	return int(n), nil
}

// Query returns up to topK chunks ordered by ascending cosine distance.
func (r *ChunkPostgres) Query(ctx context.Context, embedding []float32, topK int) (entity.RetrievalResult, error) {
	if err := r.checkDimensions(embedding); err != nil {
		return nil, err
	}
	if topK <= 0 {
		return entity.RetrievalResult{}, nil
	}

	rows, err := r.db.Query(ctx, queryChunksSQL, pgvector.NewVector(embedding), topK)
	if err != nil {
		return nil, fmt.Errorf("%w: query chunks: %w", entity.ErrVectorStore, err)
	}
	defer rows.Close()

	result := make(entity.RetrievalResult, 0, topK)
	for rows.Next() {
		var row chunkRow
		if err := rows.Scan(&row.ID, &row.DocID, &row.Title, &row.ChunkIndex, &row.Text, &row.Distance); err != nil {
			return nil, fmt.Errorf("%w: scan chunk: %w", entity.ErrVectorStore, err)
		}
		result = append(result, toRetrievedChunk(&row))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate chunks: %w", entity.ErrVectorStore, err)
	}

	return result, nil
}

func (r *ChunkPostgres) checkDimensions(embedding []float32) error {
	if r.dimensions > 0 && len(embedding) != r.dimensions {
		return fmt.Errorf("%w: got %d, want %d", entity.ErrDimensionMismatch, len(embedding), r.dimensions)
	}
	return nil
}
