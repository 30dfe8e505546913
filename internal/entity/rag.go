package entity

import "fmt"

// Document is a raw knowledge base article as loaded from the document source.
type Document struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ChunkText is one window of a document body produced by the chunker.
type ChunkText struct {
	Index int
	Text  string
}

type ChunkMetadata struct {
	DocID      string `json:"doc_id"`
	Title      string `json:"title"`
	ChunkIndex int    `json:"chunk_index"`
}

// Chunk is the unit persisted in the vector store.
type Chunk struct {
	ID        string
	Text      string
	Embedding []float32
	Metadata  ChunkMetadata
}

// ChunkID builds the stable identifier of the chunk at index within a document.
func ChunkID(docID string, index int) string {
	return fmt.Sprintf("%s_chunk_%d", docID, index)
}

// RetrievedChunk is a single nearest-neighbour candidate.
type RetrievedChunk struct {
	ID       string
	Text     string
	Distance float64
	Metadata ChunkMetadata
}

// RetrievalResult is ordered by ascending distance.
type RetrievalResult []RetrievedChunk

// Source is the response-facing view of a chunk that backed an answer.
type Source struct {
	ChunkText string  `json:"chunk_text"`
	Score     float64 `json:"score"`
	DocID     string  `json:"doc_id"`
	Title     string  `json:"title"`
	ChunkID   string  `json:"chunk_id"`
}
