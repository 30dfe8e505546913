package handlers

import (
	"context"
	"strings"

	"github.com/Rohang10/saas-copilot/internal/entity"
	"github.com/Rohang10/saas-copilot/internal/pkg/logger"
	"github.com/Rohang10/saas-copilot/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// QuestionHandler answers free text messages through the answer pipeline
type QuestionHandler struct {
	api        Sender
	answerer   Answerer
	maxSources int
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(api Sender, answerer Answerer, maxSources int) *QuestionHandler {
	return &QuestionHandler{
		api:        api,
		answerer:   answerer,
		maxSources: maxSources,
	}
}

// Handle implements Handler
func (h *QuestionHandler) Handle(ctx context.Context, msg *Message) error {
	ctx = logger.AddFields(ctx,
		zap.Int64("user_id", msg.UserID),
		zap.Int64("chat_id", msg.ChatID),
		zap.String("action", "AskQuestion"),
	)

	question := strings.TrimSpace(msg.Text)
	if question == "" {
		return h.reply(ctx, msg, render.MsgTextOnly)
	}

	stopTyping := keepTyping(ctx, h.api, msg.ChatID, typingInterval)
	resp := h.answerer.Ask(ctx, entity.AskRequest{Question: question})
	stopTyping()

	ctxzap.Info(ctx, "question answered",
		zap.String("status", string(resp.Status)),
		zap.String("confidence", string(resp.Confidence)),
		zap.Int("sources", len(resp.Sources)),
		zap.String("trace_id", resp.TraceID),
	)

	return h.reply(ctx, msg, render.Answer(resp, h.maxSources))
}

// reply answers msg in its chat, quoting the original message
func (h *QuestionHandler) reply(ctx context.Context, msg *Message, text string) error {
	out := tgbotapi.NewMessage(msg.ChatID, text)
	out.ReplyToMessageID = msg.MessageID
	out.DisableWebPagePreview = true

	if _, err := h.api.Send(out); err != nil {
		ctxzap.Error(ctx, "failed to send reply", zap.Error(err))
		return err
	}

	return nil
}
