package embedder

import (
	"context"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
)

type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// CachedEmbedder memoizes single-text embeddings, which is what the answer
// pipeline sends for every question. Multi-text batches go straight through.
type CachedEmbedder struct {
	next  Embedder
	model string
	cache *cache.Cache
}

func NewCachedEmbedder(next Embedder, model string, ttl time.Duration) *CachedEmbedder {
	return &CachedEmbedder{
		next:  next,
		model: model,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (e *CachedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) != 1 {
		return e.next.Embed(ctx, texts)
	}

	key := e.model + "\x00" + texts[0]
	if cached, ok := e.cache.Get(key); ok {
		ctxzap.Debug(ctx, "embedding cache hit")
		return [][]float32{clone(cached.([]float32))}, nil
	}

	vectors, err := e.next.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}

	e.cache.SetDefault(key, clone(vectors[0]))

	return vectors, nil
}

func (e *CachedEmbedder) Len() int {
	return e.cache.ItemCount()
}

func clone(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)
	return out
}
