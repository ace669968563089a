package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Source     SourceConfig
	Groq       GroqConfig
	Search     SearchConfig
	Export     ExportConfig
	Processing ProcessingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"meeting_insights"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration for the trigger queue
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"true"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// JWTConfig holds service-token configuration for the API boundary
type JWTConfig struct {
	Secret       string        `envconfig:"JWT_SECRET" default:"change-me-in-production"`
	Issuer       string        `envconfig:"JWT_ISSUER" default:"meeting-insights"`
	AccessExpiry time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"15m"`
	AuthDisabled bool          `envconfig:"JWT_AUTH_DISABLED" default:"false"`
}

// SourceConfig holds collaboration-platform retrieval configuration
type SourceConfig struct {
	BaseURL         string `envconfig:"SOURCE_BASE_URL" default:"https://graph.collab.local/v1"`
	TokenURL        string `envconfig:"SOURCE_TOKEN_URL" default:""`
	ClientID        string `envconfig:"SOURCE_CLIENT_ID" default:""`
	ClientSecret    string `envconfig:"SOURCE_CLIENT_SECRET" default:""`
	AssemblyAPIKey  string `envconfig:"ASSEMBLYAI_API_KEY" default:""`
	PageSize        int    `envconfig:"SOURCE_PAGE_SIZE" default:"50"`
	LookbackHours   int    `envconfig:"SOURCE_LOOKBACK_HOURS" default:"24"`
}

// GroqConfig holds LLM enrichment configuration
type GroqConfig struct {
	APIKey      string  `envconfig:"GROQ_API_KEY" default:""`
	BaseURL     string  `envconfig:"GROQ_API_URL" default:"https://api.groq.com"`
	Model       string  `envconfig:"GROQ_MODEL" default:"llama-3.1-70b-versatile"`
	Temperature float64 `envconfig:"GROQ_TEMPERATURE" default:"0.3"`
	MaxTokens   int     `envconfig:"GROQ_MAX_TOKENS" default:"8000"`
}

// SearchConfig holds the external search-service configuration
type SearchConfig struct {
	Enabled   bool   `envconfig:"SEARCH_ENABLED" default:"false"`
	Endpoint  string `envconfig:"SEARCH_ENDPOINT" default:"http://localhost:7700"`
	APIKey    string `envconfig:"SEARCH_API_KEY" default:""`
	IndexName string `envconfig:"SEARCH_INDEX_NAME" default:"transcripts"`
}

// ExportConfig holds the analytics sink (object storage) configuration
type ExportConfig struct {
	Enabled         bool   `envconfig:"EXPORT_ENABLED" default:"false"`
	Endpoint        string `envconfig:"EXPORT_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"EXPORT_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"EXPORT_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"EXPORT_BUCKET" default:"meeting-insights"`
	UseSSL          bool   `envconfig:"EXPORT_USE_SSL" default:"false"`
}

// ProcessingConfig holds orchestrator scheduling configuration
type ProcessingConfig struct {
	BatchInterval  time.Duration `envconfig:"PROCESSING_BATCH_INTERVAL" default:"6h"`
	WorkerCount    int           `envconfig:"PROCESSING_WORKER_COUNT" default:"2"`
	QueueName      string        `envconfig:"PROCESSING_QUEUE_NAME" default:"transcript-processing"`
	CallTimeout    time.Duration `envconfig:"PROCESSING_CALL_TIMEOUT" default:"2m"`
	RunBatchOnBoot bool          `envconfig:"PROCESSING_RUN_ON_BOOT" default:"false"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Environment == "production" && c.JWT.Secret == "change-me-in-production" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.Search.Enabled && c.Search.Endpoint == "" {
		return fmt.Errorf("SEARCH_ENDPOINT is required when SEARCH_ENABLED is true")
	}
	if c.Export.Enabled && c.Export.BucketName == "" {
		return fmt.Errorf("EXPORT_BUCKET is required when EXPORT_ENABLED is true")
	}
	if c.Processing.WorkerCount < 1 {
		return fmt.Errorf("PROCESSING_WORKER_COUNT must be at least 1")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
