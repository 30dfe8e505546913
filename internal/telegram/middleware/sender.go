package middleware

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Sender is the part of the Bot API the middlewares reply through
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// updateIDs extracts the user and chat of a message update. The bot reacts to
// messages only, so other update kinds report ok=false.
func updateIDs(update tgbotapi.Update) (userID, chatID int64, ok bool) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return 0, 0, false
	}
	return msg.From.ID, msg.Chat.ID, true
}
