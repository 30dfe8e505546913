package builder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rohang10/saas-copilot/internal/telegram"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// BotApp is the Telegram front end with the resources it owns
type BotApp struct {
	bot    telegram.Bot
	db     *pgxpool.Pool
	logger *zap.Logger
}

// Run polls Telegram until SIGINT/SIGTERM, then stops the bot and closes the pool
func (a *BotApp) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting telegram bot")
	if err := a.bot.Start(ctx); err != nil {
		a.db.Close()
		return fmt.Errorf("start bot: %w", err)
	}

	<-ctx.Done()
	a.logger.Info("received shutdown signal")

	err := a.bot.Stop()
	if err != nil {
		a.logger.Error("error stopping bot", zap.Error(err))
	}

	a.db.Close()
	a.logger.Info("telegram bot stopped")
	_ = a.logger.Sync()

	return err
}
