package handlers

import (
	"context"

	"github.com/Rohang10/saas-copilot/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Message represents a normalized Telegram message
type Message struct {
	ChatID    int64
	UserID    int64
	MessageID int
	Text      string
}

// Handler processes one normalized message
type Handler interface {
	Handle(ctx context.Context, msg *Message) error
}

// Sender is the part of the Bot API handlers talk to
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Answerer interface {
	Ask(ctx context.Context, req entity.AskRequest) *entity.AnswerResponse
}
