package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port            int              `json:"port"`
	JWTSecret       string           `json:"jwt_secret" env:"AUTHD_JWT_SECRET"`
	JWTTTLHours     int              `json:"jwt_ttl_hours"`
	ClientURL       string           `json:"client_url" env:"AUTHD_CLIENT_URL"`
	CORSAllowlist   []string         `json:"cors_allowlist"`
	CleanupSchedule string           `json:"cleanup_schedule"`
	LogConfig       logger.LogConfig `json:"log_config"`
	Database        DatabaseConfig   `json:"database"`
	Mail            MailConfig       `json:"mail"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn" env:"AUTHD_DB_DSN"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password" env:"AUTHD_DB_PASSWORD"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type MailConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username" env:"AUTHD_SMTP_USERNAME"`
	Password string `json:"password" env:"AUTHD_SMTP_PASSWORD"`
	From     string `json:"from"`
}

// Load reads the JSON config file, then lets environment variables override
// the secret-bearing fields so credentials can stay out of the file.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.ClientURL == "" {
		return nil, fmt.Errorf("client_url is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 24 * 7
	}
	if cfg.CleanupSchedule == "" {
		cfg.CleanupSchedule = "0 * * * *"
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	return &cfg, nil
}
