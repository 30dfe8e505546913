package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	pkgRetry "github.com/Rohang10/saas-copilot/internal/pkg/retry"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// StoreDimensions is the embedding width of the chunks.embedding column
const StoreDimensions = 384

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8000"`

	// Database configuration
	DatabaseURL         string               `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int                  `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int                  `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration        `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration        `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration        `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	DBConnectRetry      pkgRetry.RetryConfig `envPrefix:"DB_CONNECT_RETRY_"`

	// External service configurations
	EmbedderConnectorCfg EmbedderConnectorConfig `envPrefix:"EMBEDDER_"`
	LLMConnectorCfg      LLMConnectorConfig      `envPrefix:"LLM_"`

	// Pipeline configuration
	RAGCfg     RAGConfig
	ChunkerCfg ChunkerConfig `envPrefix:"CHUNKER_"`
	AuthCfg    AuthConfig
	CORSCfg    CORSConfig `envPrefix:"CORS_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// RAGConfig holds thresholds and bootstrap settings of the retrieval pipeline
type RAGConfig struct {
	MinSimilarityScore  float64  `env:"MIN_SIMILARITY_SCORE" envDefault:"0.15"`
	MinChunksRequired   int      `env:"MIN_CHUNKS_REQUIRED" envDefault:"1"`
	TopKDefault         int      `env:"TOP_K_DEFAULT" envDefault:"5"`
	TopKMax             int      `env:"TOP_K_MAX" envDefault:"20"`
	EmbeddingDimensions int      `env:"EMBEDDING_DIMENSIONS" envDefault:"384"`
	DocsDir             string   `env:"DOCS_DIR" envDefault:"data/docs"`
	AutoIngest          bool     `env:"AUTO_INGEST" envDefault:"false"`
	AdminAPIKey         string   `env:"ADMIN_API_KEY"`
	BlockedPhrases      []string `env:"SAFETY_BLOCKED_PHRASES" envSeparator:","`
}

type ChunkerConfig struct {
	Size    int `env:"SIZE" envDefault:"500"`
	Overlap int `env:"OVERLAP" envDefault:"50"`
}

type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET"`
	JWTExpiresMin int           `env:"JWT_EXPIRES_MIN" envDefault:"60"`
	BcryptCost    int           `env:"BCRYPT_COST" envDefault:"12"`
	TokenLeeway   time.Duration `env:"JWT_LEEWAY" envDefault:"0s"`
}

func (c AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresMin) * time.Minute
}

type CORSConfig struct {
	AllowedOrigins     []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://127.0.0.1:5173"`
	AllowedOriginRegex string   `env:"ALLOWED_ORIGIN_REGEX" envDefault:"^https://saas-copilot.*\\.vercel\\.app$"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"30"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"10"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"3"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
	MaxSources         int    `env:"MAX_SOURCES" envDefault:"3"`
}

type EmbedderConnectorConfig struct {
	HTTPClientConfig
	Endpoint string               `env:"ENDPOINT" envDefault:"/api/embed"`
	Model    string               `env:"MODEL" envDefault:"all-minilm"`
	CacheTTL time.Duration        `env:"CACHE_TTL" envDefault:"10m"`
	Retry    pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	ChatEndpoint string               `env:"CHAT_ENDPOINT" envDefault:"/chat/completions"`
	Model        string               `env:"MODEL" envDefault:"llama-3.1-8b-instant"`
	Temperature  float64              `env:"TEMPERATURE" envDefault:"0.2"`
	CountTokens  bool                 `env:"COUNT_TOKENS" envDefault:"false"`
	Retry        pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"5s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads the configuration from the process environment and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	applyServiceDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func applyServiceDefaults(cfg *Config) {
	if cfg.EmbedderConnectorCfg.Url == "" {
		cfg.EmbedderConnectorCfg.Url = "http://localhost:11434"
	}
	if cfg.LLMConnectorCfg.Url == "" {
		cfg.LLMConnectorCfg.Url = "https://api.groq.com/openai/v1"
	}
}

func validateConfig(cfg *Config) error {
	var errors []string

	// Validate retrieval thresholds
	if cfg.RAGCfg.MinSimilarityScore < 0 || cfg.RAGCfg.MinSimilarityScore > 1 {
		errors = append(errors, fmt.Sprintf("MIN_SIMILARITY_SCORE must be between 0 and 1, got %v", cfg.RAGCfg.MinSimilarityScore))
	}

	if cfg.RAGCfg.MinChunksRequired < 1 {
		errors = append(errors, fmt.Sprintf("MIN_CHUNKS_REQUIRED must be at least 1, got %d", cfg.RAGCfg.MinChunksRequired))
	}

	if cfg.RAGCfg.TopKDefault < 1 || cfg.RAGCfg.TopKDefault > cfg.RAGCfg.TopKMax {
		errors = append(errors, fmt.Sprintf("TOP_K_DEFAULT must be between 1 and TOP_K_MAX(%d), got %d", cfg.RAGCfg.TopKMax, cfg.RAGCfg.TopKDefault))
	}

	if cfg.RAGCfg.EmbeddingDimensions != StoreDimensions {
		errors = append(errors, fmt.Sprintf("EMBEDDING_DIMENSIONS must be %d to match the vector store, got %d", StoreDimensions, cfg.RAGCfg.EmbeddingDimensions))
	}

	if cfg.ChunkerCfg.Size < 1 {
		errors = append(errors, fmt.Sprintf("CHUNKER_SIZE must be positive, got %d", cfg.ChunkerCfg.Size))
	}

	// Generator credentials are only needed for the real connector
	if !cfg.EnableMocks && cfg.LLMConnectorCfg.Token == "" {
		errors = append(errors, "LLM_TOKEN is required when ENABLE_MOCKS is false")
	}

	// Validate Database configuration
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	for _, rc := range []struct {
		name string
		cfg  pkgRetry.RetryConfig
	}{
		{"EMBEDDER_RETRY", cfg.EmbedderConnectorCfg.Retry},
		{"LLM_RETRY", cfg.LLMConnectorCfg.Retry},
		{"DB_CONNECT_RETRY", cfg.DBConnectRetry},
	} {
		if rc.cfg.Attempts < 1 {
			errors = append(errors, fmt.Sprintf("%s_ATTEMPTS must be at least 1, got %d", rc.name, rc.cfg.Attempts))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// ValidateServer checks the settings only the HTTP API needs.
func (c *Config) ValidateServer() error {
	var errors []string

	if c.RAGCfg.AdminAPIKey == "" {
		errors = append(errors, "ADMIN_API_KEY is required")
	}

	if len(c.AuthCfg.JWTSecret) < 16 {
		errors = append(errors, "JWT_SECRET must be at least 16 characters")
	}

	if c.AuthCfg.JWTExpiresMin < 1 {
		errors = append(errors, fmt.Sprintf("JWT_EXPIRES_MIN must be positive, got %d", c.AuthCfg.JWTExpiresMin))
	}

	if c.AuthCfg.BcryptCost < 4 || c.AuthCfg.BcryptCost > 31 {
		errors = append(errors, fmt.Sprintf("BCRYPT_COST must be between 4 and 31, got %d", c.AuthCfg.BcryptCost))
	}

	if len(errors) > 0 {
		return fmt.Errorf("server configuration errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// Validate checks the settings only the bot binary needs.
func (c TelegramConfig) Validate() error {
	var errors []string

	if c.BotToken == "" {
		errors = append(errors, "TELEGRAM_BOT_TOKEN is required")
	}

	if c.RateLimitPerMinute < 1 || c.RateLimitPerMinute > 60 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", c.RateLimitPerMinute))
	}

	if c.RateLimitBurst < 1 || c.RateLimitBurst > 20 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", c.RateLimitBurst))
	}

	if c.ShutdownTimeout < 1 || c.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", c.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("telegram configuration errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
