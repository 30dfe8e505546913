package bot

import (
	"context"
	"sync"
	"testing"

	"github.com/Rohang10/saas-copilot/internal/config"
	"github.com/Rohang10/saas-copilot/internal/entity"
	"github.com/Rohang10/saas-copilot/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []tgbotapi.MessageConfig
}

func (s *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		s.sent = append(s.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (s *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (s *fakeSender) texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.sent))
	for i, m := range s.sent {
		out[i] = m.Text
	}
	return out
}

type fakeAnswerer struct {
	mu    sync.Mutex
	asked []string
}

func (a *fakeAnswerer) Ask(ctx context.Context, req entity.AskRequest) *entity.AnswerResponse {
	a.mu.Lock()
	a.asked = append(a.asked, req.Question)
	a.mu.Unlock()

	return &entity.AnswerResponse{
		Answer:     "I cannot help with this request.",
		Sources:    []entity.Source{},
		Status:     entity.StatusBlocked,
		Confidence: entity.ConfidenceLow,
	}
}

func testConfig() *config.TelegramConfig {
	return &config.TelegramConfig{
		UpdateTimeout:      30,
		RateLimitPerMinute: 60,
		RateLimitBurst:     10,
		ShutdownTimeout:    1,
		MaxSources:         3,
	}
}

func commandUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			From:     &tgbotapi.User{ID: 1},
			Chat:     &tgbotapi.Chat{ID: 100},
			Text:     text,
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
		},
	}
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: 1},
			Chat: &tgbotapi.Chat{ID: 100},
			Text: text,
		},
	}
}

func newTestBot(t *testing.T) (*Bot, *fakeSender, *fakeAnswerer) {
	t.Helper()

	sender := &fakeSender{}
	answerer := &fakeAnswerer{}
	b := newBot(sender, testConfig(), answerer, zap.NewNop())
	t.Cleanup(func() { _ = b.Stop() })

	return b, sender, answerer
}

func TestBot_Commands(t *testing.T) {
	b, sender, answerer := newTestBot(t)
	ctx := context.Background()

	b.handleUpdateWithMiddleware(ctx, commandUpdate("/start"))
	b.handleUpdateWithMiddleware(ctx, commandUpdate("/help"))
	b.handleUpdateWithMiddleware(ctx, commandUpdate("/unknown"))

	assert.Equal(t, []string{render.MsgWelcome, render.MsgHelp, render.ErrUnknownCommand}, sender.texts())
	assert.Empty(t, answerer.asked)
}

func TestBot_TextIsAQuestion(t *testing.T) {
	b, sender, answerer := newTestBot(t)

	b.handleUpdateWithMiddleware(context.Background(), textUpdate("What medical advice should I take?"))

	assert.Equal(t, []string{"What medical advice should I take?"}, answerer.asked)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "I cannot help with this request.", sender.sent[0].Text)
}

func TestBot_NonTextMessage(t *testing.T) {
	b, sender, answerer := newTestBot(t)

	b.handleUpdateWithMiddleware(context.Background(), textUpdate(""))

	assert.Empty(t, answerer.asked)
	assert.Equal(t, []string{render.MsgTextOnly}, sender.texts())
}

func TestBot_StartWithoutAPI(t *testing.T) {
	b, _, _ := newTestBot(t)
	assert.Error(t, b.Start(context.Background()))
}

func TestBot_StopWaitsForDispatchedUpdates(t *testing.T) {
	b, sender, answerer := newTestBot(t)

	updates := make(chan tgbotapi.Update)
	b.run(context.Background(), updates)

	updates <- commandUpdate("/start")
	updates <- textUpdate("How do I reset my password?")

	require.NoError(t, b.Stop())
	assert.ElementsMatch(t, []string{render.MsgWelcome, "I cannot help with this request."}, sender.texts())
	assert.Equal(t, []string{"How do I reset my password?"}, answerer.asked)
}
