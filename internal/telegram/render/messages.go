package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Rohang10/saas-copilot/internal/entity"
)

// Telegram rejects messages longer than this many characters
const maxMessageLength = 4096

const (
	MsgWelcome = `👋 Hi! I am the support assistant.

Ask me anything about the product and I will answer from the knowledge base.`

	MsgHelp = `🤖 Bot commands:

/start - Show the welcome message
/help - Show this help

Just send your question as a text message, for example:
How do I update my billing address?`

	MsgTextOnly = "Please send your question as a text message."

	ErrGeneric        = "❌ Something went wrong. Please try again later."
	ErrUnknownCommand = "❌ Unknown command. Send /help to see what I can do."
)

// Answer formats an answer with up to maxSources distinct source titles
func Answer(resp *entity.AnswerResponse, maxSources int) string {
	var b strings.Builder
	b.WriteString(resp.Answer)

	titles := sourceTitles(resp.Sources, maxSources)
	if resp.Status == entity.StatusOK && len(titles) > 0 {
		b.WriteString("\n\n📚 Sources:")
		for _, title := range titles {
			fmt.Fprintf(&b, "\n• %s", title)
		}
	}

	return truncate(b.String(), maxMessageLength)
}

func sourceTitles(sources []entity.Source, limit int) []string {
	if limit <= 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(sources))
	titles := make([]string, 0, limit)
	for _, s := range sources {
		title := s.Title
		if title == "" {
			title = s.DocID
		}
		if _, dup := seen[title]; dup || title == "" {
			continue
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
		if len(titles) == limit {
			break
		}
	}
	return titles
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
