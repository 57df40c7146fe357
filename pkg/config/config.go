// Package config loads application configuration from config.yaml with
// environment variable overrides. Secrets (passwords, API keys) must only
// come from environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the SQL assistant.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	BaseURL  string `yaml:"base_url" env:"BASE_URL" env-default:""` // Auto-derived from Port if empty
	Version  string `yaml:"-"`                                      // Set at load time, not from config

	// HashedPassword is the bcrypt hash the login password is checked
	// against. Generate with: htpasswd -bnBC 12 "" <password> | tr -d ':'
	HashedPassword string `yaml:"-" env:"HASHED_PASSWORD"` // Secret - not in YAML

	// SessionSecret signs the browser session cookie. Any passphrase works;
	// it is SHA-256 hashed to derive the signing key.
	SessionSecret string `yaml:"-" env:"SESSION_SECRET"` // Secret - not in YAML

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// LLM provider configuration
	LLM LLMConfig `yaml:"llm"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"POSTGRES_SERVER" env-default:"localhost"`
	Port           int    `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User           string `yaml:"user" env:"POSTGRES_USERNAME" env-default:"postgres"`
	Password       string `yaml:"-" env:"POSTGRES_PASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"POSTGRES_DATABASE" env-default:"postgres"`
	SSLMode        string `yaml:"ssl_mode" env:"POSTGRES_SSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"POSTGRES_MAX_CONNECTIONS" env-default:"5"`
	// QueryTimeoutSeconds bounds a single query execution.
	QueryTimeoutSeconds int `yaml:"query_timeout_seconds" env:"QUERY_TIMEOUT_SECONDS" env-default:"30"`
}

// LLMConfig holds settings for the SQL-generating model.
type LLMConfig struct {
	// Provider selects the client implementation: "openai" or "anthropic".
	Provider string `yaml:"provider" env:"LLM_PROVIDER" env-default:"openai"`
	// Endpoint is the API base URL for OpenAI-compatible providers.
	Endpoint string `yaml:"endpoint" env:"LLM_ENDPOINT" env-default:"https://api.openai.com/v1"`
	Model    string `yaml:"model" env:"LLM_MODEL" env-default:"gpt-4o-mini"`

	OpenAIAPIKey    string `yaml:"-" env:"OPENAI_API_KEY"`    // Secret - not in YAML
	AnthropicAPIKey string `yaml:"-" env:"ANTHROPIC_API_KEY"` // Secret - not in YAML

	// Low temperature keeps the generated SQL close to deterministic;
	// 1000 tokens is plenty for a single statement plus commentary.
	Temperature float64 `yaml:"temperature" env:"LLM_TEMPERATURE" env-default:"0.1"`
	MaxTokens   int     `yaml:"max_tokens" env:"LLM_MAX_TOKENS" env-default:"1000"`
	// RequestTimeoutSeconds bounds a single generation call.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds" env:"LLM_REQUEST_TIMEOUT_SECONDS" env-default:"60"`
}

// Load reads configuration from config.yaml with environment variable
// overrides. If config.yaml does not exist, environment variables alone are
// used. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Auto-derive BaseURL from Port if not explicitly set
	if cfg.BaseURL == "" {
		cfg.BaseURL = (&url.URL{
			Scheme: "http",
			Host:   "localhost:" + cfg.Port,
		}).String()
	}

	return cfg, nil
}

// validate rejects configurations the server cannot start with. Secrets
// that are only needed at request time (API keys, DB password) are not
// validated here; their absence surfaces as an inline error in the page.
func (c *Config) validate() error {
	if c.HashedPassword == "" {
		return fmt.Errorf("HASHED_PASSWORD must be set")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET must be set")
	}
	return nil
}

// URL returns a PostgreSQL connection URL.
func (c *DatabaseConfig) URL() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}
