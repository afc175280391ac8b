package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		filePath  string
		wantErr   bool
		errString string
	}{
		{
			name:     "valid config file",
			filePath: "testdata/valid_config.yaml",
			wantErr:  false,
		},
		{
			name:      "non-existent file",
			filePath:  "testdata/nonexistent.yaml",
			wantErr:   true,
			errString: "failed to read config file",
		},
		{
			name:      "malformed yaml",
			filePath:  "testdata/malformed.yaml",
			wantErr:   true,
			errString: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.filePath)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)

				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "jobscout_db", cfg.Database.Database)
				assert.Equal(t, "search_events", cfg.RabbitMQ.Exchange.Name)
				assert.Equal(t, "search.completed", cfg.RabbitMQ.RoutingKey)
				assert.Equal(t, "jobscout-api", cfg.App.Name)
				assert.Equal(t, 20, cfg.Scraper.Limit)
				assert.Equal(t, 30*time.Second, cfg.Scraper.FetchTimeout)
				assert.True(t, cfg.Scraper.Adzuna.Enabled)
				assert.Equal(t, "us", cfg.Scraper.Adzuna.Country)
				assert.Equal(t, "gemini-2.5-flash", cfg.Scoring.Model)
				assert.Equal(t, 2*time.Minute, cfg.Scoring.Timeout)
				assert.Equal(t, 5, cfg.Scoring.BatchSize)
				assert.Equal(t, int64(5242880), cfg.Upload.MaxSizeBytes)
			}
		})
	}
}

func TestLoadAppliesEnvSecrets(t *testing.T) {
	t.Setenv("JSEARCH_API_KEY", "jsearch-secret")
	t.Setenv("ADZUNA_APP_ID", "adzuna-id")
	t.Setenv("ADZUNA_APP_KEY", "adzuna-key")
	t.Setenv("GEMINI_API_KEY", "gemini-secret")
	t.Setenv("DB_PASSWORD", "env-password")

	cfg, err := Load("testdata/valid_config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "jsearch-secret", cfg.Scraper.JSearch.APIKey)
	assert.Equal(t, "adzuna-id", cfg.Scraper.Adzuna.AppID)
	assert.Equal(t, "adzuna-key", cfg.Scraper.Adzuna.AppKey)
	assert.Equal(t, "gemini-secret", cfg.Scoring.APIKey)
	assert.Equal(t, "env-password", cfg.Database.Password)
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "jobscout_db",
		},
		RabbitMQ: RabbitMQConfig{
			Host: "localhost",
			Port: 5672,
			Exchange: ExchangeConfig{
				Name: "search_events",
			},
			Queue: QueueConfig{
				Name: "search_completed",
			},
		},
		Scraper: ScraperConfig{
			Limit:        20,
			FetchTimeout: 30 * time.Second,
		},
		Scoring: ScoringConfig{
			Timeout:   2 * time.Minute,
			BatchSize: 5,
		},
		Upload: UploadConfig{
			MaxSizeBytes: 5 << 20,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantErr   bool
		errString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:      "invalid server port - too low",
			mutate:    func(c *Config) { c.Server.Port = 0 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "invalid server port - too high",
			mutate:    func(c *Config) { c.Server.Port = 70000 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "empty database host",
			mutate:    func(c *Config) { c.Database.Host = "" },
			wantErr:   true,
			errString: "database host is required",
		},
		{
			name:      "empty database name",
			mutate:    func(c *Config) { c.Database.Database = "" },
			wantErr:   true,
			errString: "database name is required",
		},
		{
			name:      "empty rabbitmq host",
			mutate:    func(c *Config) { c.RabbitMQ.Host = "" },
			wantErr:   true,
			errString: "rabbitmq host is required",
		},
		{
			name:      "empty exchange name",
			mutate:    func(c *Config) { c.RabbitMQ.Exchange.Name = "" },
			wantErr:   true,
			errString: "rabbitmq exchange name is required",
		},
		{
			name:      "zero scraper limit",
			mutate:    func(c *Config) { c.Scraper.Limit = 0 },
			wantErr:   true,
			errString: "scraper limit must be greater than 0",
		},
		{
			name:      "zero fetch timeout",
			mutate:    func(c *Config) { c.Scraper.FetchTimeout = 0 },
			wantErr:   true,
			errString: "scraper fetch_timeout must be greater than 0",
		},
		{
			name:      "zero scoring timeout",
			mutate:    func(c *Config) { c.Scoring.Timeout = 0 },
			wantErr:   true,
			errString: "scoring timeout must be greater than 0",
		},
		{
			name:      "zero scoring batch size",
			mutate:    func(c *Config) { c.Scoring.BatchSize = 0 },
			wantErr:   true,
			errString: "scoring batch_size must be greater than 0",
		},
		{
			name:      "zero upload max size",
			mutate:    func(c *Config) { c.Upload.MaxSizeBytes = 0 },
			wantErr:   true,
			errString: "upload max_size_bytes must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
