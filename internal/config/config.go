package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the notification service
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	SES      SESConfig      `yaml:"ses"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Sender   SenderConfig   `yaml:"sender"`
	Confirm  ConfirmConfig  `yaml:"confirm"`
	Dispatch DispatchConfig `yaml:"dispatch"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	// In a container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// DatabaseConfig holds PostgreSQL connection settings for the subscriber store.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig holds Redis settings for send-rate limiting.
type RedisConfig struct {
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

// SESConfig holds AWS SES API configuration
type SESConfig struct {
	Region         string `yaml:"region"`
	AccessKey      string `yaml:"access_key"`
	SecretKey      string `yaml:"secret_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Enabled        bool   `yaml:"enabled"`
}

// Timeout returns the configured timeout as a duration
func (c SESConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SMTPConfig holds SMTP relay configuration, used when SES is disabled.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	TLSMode  string `yaml:"tls_mode"` // "auto" | "starttls" | "ssl" | "none"
	Enabled  bool   `yaml:"enabled"`
}

// SenderConfig holds the envelope identity used on outgoing mail.
type SenderConfig struct {
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
	ReplyTo   string `yaml:"reply_to"`
}

// ConfirmConfig holds the confirmation-link signing settings.
type ConfirmConfig struct {
	Secret   string `yaml:"secret"`
	BaseURL  string `yaml:"base_url"`
	TTLHours int    `yaml:"ttl_hours"`
}

// TTL returns the configured confirmation-link lifetime.
func (c ConfirmConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// DispatchConfig controls the dispatch worker pool and send-rate caps.
type DispatchConfig struct {
	Workers         int `yaml:"workers"`
	RatePerSecond   int `yaml:"rate_per_second"`
	RatePerMinute   int `yaml:"rate_per_minute"`
	SendTimeoutSecs int `yaml:"send_timeout_seconds"`
}

// SendTimeout returns the per-recipient send timeout.
func (c DispatchConfig) SendTimeout() time.Duration {
	return time.Duration(c.SendTimeoutSecs) * time.Second
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.SES.TimeoutSeconds == 0 {
		cfg.SES.TimeoutSeconds = 30
	}
	if cfg.SES.Region == "" {
		cfg.SES.Region = "us-west-2"
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.SMTP.TLSMode == "" {
		cfg.SMTP.TLSMode = "auto"
	}
	if cfg.Confirm.TTLHours == 0 {
		cfg.Confirm.TTLHours = 14 * 24
	}
	if cfg.Dispatch.Workers == 0 {
		cfg.Dispatch.Workers = 8
	}
	if cfg.Dispatch.RatePerSecond == 0 {
		cfg.Dispatch.RatePerSecond = 50
	}
	if cfg.Dispatch.RatePerMinute == 0 {
		cfg.Dispatch.RatePerMinute = 2000
	}
	if cfg.Dispatch.SendTimeoutSecs == 0 {
		cfg.Dispatch.SendTimeoutSecs = 30
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars in production.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
		cfg.Redis.Enabled = true
	}
	if v := os.Getenv("AWS_SES_ACCESS_KEY"); v != "" {
		cfg.SES.AccessKey = v
	}
	if v := os.Getenv("AWS_SES_SECRET_KEY"); v != "" {
		cfg.SES.SecretKey = v
	}
	if v := os.Getenv("AWS_SES_REGION"); v != "" {
		cfg.SES.Region = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = port
		}
	}
	if v := os.Getenv("SMTP_USERNAME"); v != "" {
		cfg.SMTP.Username = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}
	if v := os.Getenv("CONFIRM_SECRET"); v != "" {
		cfg.Confirm.Secret = v
	}
	if v := os.Getenv("CONFIRM_BASE_URL"); v != "" {
		cfg.Confirm.BaseURL = v
	}
	if v := os.Getenv("FROM_EMAIL"); v != "" {
		cfg.Sender.FromEmail = v
	}
	if v := os.Getenv("FROM_NAME"); v != "" {
		cfg.Sender.FromName = v
	}

	return cfg, nil
}
