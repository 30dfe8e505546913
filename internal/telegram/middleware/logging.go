package middleware

import (
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// LoggingMiddleware writes one line per handled update. Message text is never
// logged, only its length.
type LoggingMiddleware struct {
	logger *zap.Logger
}

func NewLoggingMiddleware(logger *zap.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

func (m *LoggingMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	start := time.Now()

	next(update)

	userID, chatID, _ := updateIDs(update)
	fields := []zap.Field{
		zap.Int("update_id", update.UpdateID),
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
		zap.String("kind", updateKind(update)),
		zap.Duration("duration", time.Since(start)),
	}
	if update.Message != nil {
		fields = append(fields, zap.Int("text_runes", utf8.RuneCountInString(update.Message.Text)))
	}

	m.logger.Info("telegram update handled", fields...)
}

func updateKind(update tgbotapi.Update) string {
	switch {
	case update.Message == nil:
		return "ignored"
	case update.Message.IsCommand():
		return "command/" + update.Message.Command()
	case update.Message.Text != "":
		return "question"
	default:
		return "non_text"
	}
}
