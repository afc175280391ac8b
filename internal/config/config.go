package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// MinPort is the minimum valid port number
	MinPort = 1
	// MaxPort is the maximum valid port number
	MaxPort = 65535
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Logging  LoggingConfig  `yaml:"logging"`
	App      AppConfig      `yaml:"app"`
	Scraper  ScraperConfig  `yaml:"scraper"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Upload   UploadConfig   `yaml:"upload"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL connection configuration
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

// RabbitMQConfig holds RabbitMQ connection and exchange/queue configuration
type RabbitMQConfig struct {
	Host       string           `yaml:"host"`
	Port       int              `yaml:"port"`
	User       string           `yaml:"user"`
	Password   string           `yaml:"password"`
	VHost      string           `yaml:"vhost"`
	Exchange   ExchangeConfig   `yaml:"exchange"`
	Queue      QueueConfig      `yaml:"queue"`
	RoutingKey string           `yaml:"routing_key"`
	Connection ConnectionConfig `yaml:"connection"`
	Publish    PublishConfig    `yaml:"publish"`
}

// ExchangeConfig holds RabbitMQ exchange configuration
type ExchangeConfig struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Durable    bool   `yaml:"durable"`
	AutoDelete bool   `yaml:"auto_delete"`
}

// QueueConfig holds RabbitMQ queue configuration
type QueueConfig struct {
	Name       string `yaml:"name"`
	Durable    bool   `yaml:"durable"`
	AutoDelete bool   `yaml:"auto_delete"`
}

// ConnectionConfig holds RabbitMQ connection settings
type ConnectionConfig struct {
	RetryAttempts int           `yaml:"retry_attempts"`
	RetryInterval time.Duration `yaml:"retry_interval"`
	Heartbeat     time.Duration `yaml:"heartbeat"`
}

// PublishConfig holds RabbitMQ publish retry settings
type PublishConfig struct {
	RetryAttempts int           `yaml:"retry_attempts"`
	RetryInterval time.Duration `yaml:"retry_interval"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"`
	Output       string `yaml:"output"`
	EnableCaller bool   `yaml:"enable_caller"`
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
}

// ScraperConfig holds job-source fetching configuration. API keys are
// secrets and come from the environment, not the config file.
type ScraperConfig struct {
	Limit        int           `yaml:"limit"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	JSearch      JSearchConfig `yaml:"jsearch"`
	Adzuna       AdzunaConfig  `yaml:"adzuna"`
}

// JSearchConfig holds JSearch (RapidAPI) source configuration
type JSearchConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"-"` // from JSEARCH_API_KEY
}

// AdzunaConfig holds Adzuna source configuration
type AdzunaConfig struct {
	Enabled bool   `yaml:"enabled"`
	Country string `yaml:"country"` // "us", "gb", "fr", ...
	AppID   string `yaml:"-"`       // from ADZUNA_APP_ID
	AppKey  string `yaml:"-"`       // from ADZUNA_APP_KEY
}

// ScoringConfig holds AI fit-scoring configuration
type ScoringConfig struct {
	Model     string        `yaml:"model"`
	Timeout   time.Duration `yaml:"timeout"`
	BatchSize int           `yaml:"batch_size"`
	APIKey    string        `yaml:"-"` // from GEMINI_API_KEY
}

// UploadConfig holds resume upload configuration
type UploadConfig struct {
	Endpoint     string `yaml:"endpoint"`
	MaxSizeBytes int64  `yaml:"max_size_bytes"`
}

// Load reads and parses the configuration file, then overlays secrets
// from environment variables.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnv()

	return &config, nil
}

// applyEnv overlays secret values from the environment
func (c *Config) applyEnv() {
	if v := os.Getenv("JSEARCH_API_KEY"); v != "" {
		c.Scraper.JSearch.APIKey = v
	}
	if v := os.Getenv("ADZUNA_APP_ID"); v != "" {
		c.Scraper.Adzuna.AppID = v
	}
	if v := os.Getenv("ADZUNA_APP_KEY"); v != "" {
		c.Scraper.Adzuna.AppKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Scoring.APIKey = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port < MinPort || c.Server.Port > MaxPort {
		return fmt.Errorf("invalid server port: %d (must be between %d and %d)", c.Server.Port, MinPort, MaxPort)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < MinPort || c.Database.Port > MaxPort {
		return fmt.Errorf("invalid database port: %d (must be between %d and %d)", c.Database.Port, MinPort, MaxPort)
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.RabbitMQ.Host == "" {
		return fmt.Errorf("rabbitmq host is required")
	}

	if c.RabbitMQ.Port < MinPort || c.RabbitMQ.Port > MaxPort {
		return fmt.Errorf("invalid rabbitmq port: %d (must be between %d and %d)", c.RabbitMQ.Port, MinPort, MaxPort)
	}

	if c.RabbitMQ.Exchange.Name == "" {
		return fmt.Errorf("rabbitmq exchange name is required")
	}

	if c.RabbitMQ.Queue.Name == "" {
		return fmt.Errorf("rabbitmq queue name is required")
	}

	if c.Scraper.Limit <= 0 {
		return fmt.Errorf("scraper limit must be greater than 0")
	}

	if c.Scraper.FetchTimeout <= 0 {
		return fmt.Errorf("scraper fetch_timeout must be greater than 0")
	}

	if c.Scoring.Timeout <= 0 {
		return fmt.Errorf("scoring timeout must be greater than 0")
	}

	if c.Scoring.BatchSize <= 0 {
		return fmt.Errorf("scoring batch_size must be greater than 0")
	}

	if c.Upload.MaxSizeBytes <= 0 {
		return fmt.Errorf("upload max_size_bytes must be greater than 0")
	}

	return nil
}
