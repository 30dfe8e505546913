package safety

import "strings"

// DefaultBlockedPhrases are the topics the support assistant refuses to discuss.
var DefaultBlockedPhrases = []string{
	"medical advice",
	"legal advice",
	"diagnose",
	"prescription",
	"lawsuit",
	"personal data",
	"password",
}

// Guard flags questions that contain a blocked phrase.
// Matching is a case-insensitive substring test, so benign questions that merely
// contain a phrase are blocked too.
type Guard struct {
	phrases []string
}

// NewGuard builds a guard over phrases, falling back to DefaultBlockedPhrases when none are given.
func NewGuard(phrases ...string) *Guard {
	normalized := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			normalized = append(normalized, p)
		}
	}

	if len(normalized) == 0 {
		normalized = append(normalized, DefaultBlockedPhrases...)
	}

	return &Guard{phrases: normalized}
}

func (g *Guard) IsUnsafe(question string) bool {
	q := strings.ToLower(question)
	for _, p := range g.phrases {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}
