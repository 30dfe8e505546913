package chunker

import (
	"strings"
	"unicode"

	"github.com/Rohang10/saas-copilot/internal/entity"
)

const (
	// DefaultChunkSize is the default window size in runes.
	DefaultChunkSize = 500
	// DefaultChunkOverlap is the default number of runes shared by consecutive windows.
	DefaultChunkOverlap = 50
)

// Chunker splits document bodies into overlapping fixed-size windows.
type Chunker struct {
	chunkSize int
	overlap   int
}

type Option func(*Chunker)

// WithChunkSize sets the window size. Non-positive values keep the default.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between windows. Negative values keep the default.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Chunk splits body into trimmed, non-empty windows indexed from zero.
// The result only depends on body and the chunker settings.
func (c *Chunker) Chunk(body string) []entity.ChunkText {
	if strings.TrimSpace(body) == "" {
		return nil
	}

	runes := []rune(body)
	var chunks []entity.ChunkText

	start := 0
	for start < len(runes) {
		end := start + c.chunkSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = c.breakPoint(runes, start, end)
		}

		if text := strings.TrimSpace(string(runes[start:end])); text != "" {
			chunks = append(chunks, entity.ChunkText{
				Index: len(chunks),
				Text:  text,
			})
		}

		if end == len(runes) {
			break
		}

		next := end - c.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// breakPoint moves end back to the last whitespace within the trailing fifth of the window.
func (c *Chunker) breakPoint(runes []rune, start, end int) int {
	floor := end - c.chunkSize/5
	if floor <= start {
		return end
	}

	for i := end; i > floor; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}

	return end
}
