package rag

import (
	"math"
	"strings"

	"github.com/Rohang10/saas-copilot/internal/entity"
)

const (
	mediumConfidenceFrom = 0.18
	highConfidenceFrom   = 0.35
)

const promptTemplate = `You are a SaaS support assistant.

Answer ONLY using the information below.
If the answer is not present, say:
"I do not have enough information to answer this."

Context:
%CONTEXT%

Question:
%QUESTION%

Answer:`

func buildPrompt(question string, sources []entity.Source) string {
	texts := make([]string, len(sources))
	for i, s := range sources {
		texts[i] = s.ChunkText
	}

	return strings.NewReplacer(
		"%CONTEXT%", strings.Join(texts, "\n\n"),
		"%QUESTION%", question,
	).Replace(promptTemplate)
}

// similarity converts a cosine distance into a score rounded to three decimals
func similarity(distance float64) float64 {
	return math.Round((1-distance)*1000) / 1000
}

// filterSources keeps retrieval order and drops candidates scoring below minScore
func filterSources(results entity.RetrievalResult, minScore float64) []entity.Source {
	sources := make([]entity.Source, 0, len(results))
	for _, r := range results {
		score := similarity(r.Distance)
		if score < minScore {
			continue
		}
		sources = append(sources, entity.Source{
			ChunkText: r.Text,
			Score:     score,
			DocID:     r.Metadata.DocID,
			Title:     r.Metadata.Title,
			ChunkID:   r.ID,
		})
	}
	return sources
}

func confidenceFor(sources []entity.Source) entity.Confidence {
	if len(sources) == 0 {
		return entity.ConfidenceLowBucket
	}

	var sum float64
	for _, s := range sources {
		sum += s.Score
	}

	switch avg := sum / float64(len(sources)); {
	case avg < mediumConfidenceFrom:
		return entity.ConfidenceLowBucket
	case avg < highConfidenceFrom:
		return entity.ConfidenceMediumBucket
	default:
		return entity.ConfidenceHighBucket
	}
}
