package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Rohang10/saas-copilot/internal/api"
	authapi "github.com/Rohang10/saas-copilot/internal/api/auth"
	ragapi "github.com/Rohang10/saas-copilot/internal/api/rag"
	"github.com/Rohang10/saas-copilot/internal/config"
	"github.com/Rohang10/saas-copilot/internal/pkg/security"
	"github.com/Rohang10/saas-copilot/internal/pkg/validator"
	"github.com/Rohang10/saas-copilot/internal/repository"
	"github.com/Rohang10/saas-copilot/internal/telegram"
	authusecase "github.com/Rohang10/saas-copilot/internal/usecase/auth"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.ValidateServer(); err != nil {
		return nil, err
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	userRepo := repository.NewUserPostgres(db)
	logger.Info("Repositories initialized")

	// Initialize use cases
	ragUC := buildRAG(cfg, db, logger)

	authUC := authusecase.NewUsecase(
		userRepo,
		security.NewPasswordHasher(cfg.AuthCfg.BcryptCost),
		security.NewTokenManager(cfg.AuthCfg.JWTSecret, cfg.AuthCfg.TokenTTL(), cfg.AuthCfg.TokenLeeway),
		validator.New(),
	)
	logger.Info("Use cases initialized")

	if cfg.RAGCfg.AutoIngest {
		autoIngest(ctx, ragUC, logger)
	}

	// Setup API handlers
	authHandler := authapi.NewHandler(authUC)
	ragHandler := ragapi.NewHandler(ragUC, cfg.RAGCfg.AdminAPIKey)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(authHandler, ragHandler, cfg.CORSCfg, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (*BotApp, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	ragUC := buildRAG(cfg, db, logger)
	logger.Info("Use cases initialized")

	if cfg.RAGCfg.AutoIngest {
		autoIngest(ctx, ragUC, logger)
	}

	bot, err := telegram.NewBot(&cfg.TelegramCfg, ragUC, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &BotApp{
		bot:    bot,
		db:     db,
		logger: logger,
	}, nil
}

// openDatabase connects to postgres and applies pending migrations
func openDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	return db, nil
}
