package telegram

import (
	"context"
	"fmt"

	"github.com/Rohang10/saas-copilot/internal/config"
	"github.com/Rohang10/saas-copilot/internal/telegram/bot"
	"github.com/Rohang10/saas-copilot/internal/telegram/handlers"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes a bot that answers every text message with the answer pipeline
func NewBot(cfg *config.TelegramConfig, answerer handlers.Answerer, logger *zap.Logger) (Bot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid telegram config: %w", err)
	}

	b, err := bot.New(cfg, answerer, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	logger.Info("telegram bot initialized successfully",
		zap.Int("rate_limit_per_minute", cfg.RateLimitPerMinute),
		zap.Int("max_sources", cfg.MaxSources),
	)

	return b, nil
}
