package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// DatabaseURL is optional: reconciliation and verification run fully
	// in-process, persistence of run results is opt-in.
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`
	DBMinConns  int32  `envconfig:"VITAE_DB_MIN_CONNS" default:"1"`
	DBMaxConns  int32  `envconfig:"VITAE_DB_MAX_CONNS" default:"8"`

	// EmbeddingEndpoint enables semantic sentence matching when set.
	EmbeddingEndpoint string `envconfig:"EMBEDDING_ENDPOINT" default:""`
	EmbeddingModel    string `envconfig:"EMBEDDING_MODEL" default:""`

	TargetLanguage string `envconfig:"TARGET_LANGUAGE" default:"en"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DBMinConns < 0 {
		return fmt.Errorf("VITAE_DB_MIN_CONNS must be >= 0")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("VITAE_DB_MAX_CONNS must be >= 1")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("VITAE_DB_MIN_CONNS (%d) cannot exceed VITAE_DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if strings.TrimSpace(c.TargetLanguage) == "" {
		return fmt.Errorf("TARGET_LANGUAGE is required")
	}
	return nil
}

// PersistenceEnabled reports whether run results should be stored.
func (c *Config) PersistenceEnabled() bool {
	return c != nil && strings.TrimSpace(c.DatabaseURL) != ""
}

func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, exists := seen[origin]; exists {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}
