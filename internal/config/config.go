package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton for packages that cannot take injected config.
var globalConfig *Config

// DefaultSessionSweepMinutes is used when no sweep interval is configured.
const DefaultSessionSweepMinutes = 10

// Config holds all environment backed configuration for movie-api.
type Config struct {
	// HTTP Server
	HTTPPort    int `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int `env:"METRICS_PORT" envDefault:"9091"`

	// AI provider (OpenAI-compatible chat completions)
	AIBaseURL     string        `env:"AI_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	AIAPIKey      string        `env:"AI_API_KEY,notEmpty"`
	AIModel       string        `env:"AI_MODEL" envDefault:"llama-3.3-70b-versatile"`
	AITemperature float32       `env:"AI_TEMPERATURE" envDefault:"0.7"`
	AITimeout     time.Duration `env:"AI_TIMEOUT" envDefault:"30s"`

	// Prompt profiles (optional YAML overrides for the system prompt)
	PromptConfigEnabled bool   `env:"PROMPT_CONFIGS" envDefault:"false"`
	PromptConfigFile    string `env:"PROMPT_CONFIGS_FILE"`
	PromptConfigSet     string `env:"PROMPT_CONFIG_SET" envDefault:"default"`
	PromptBootstrap     *PromptBootstrapConfig `env:"-"`

	// TMDB metadata provider
	TMDBBaseURL      string        `env:"TMDB_BASE_URL" envDefault:"https://api.themoviedb.org/3"`
	TMDBImageBaseURL string        `env:"TMDB_IMAGE_BASE_URL" envDefault:"https://image.tmdb.org/t/p"`
	TMDBAPIKey       string        `env:"TMDB_API_KEY,notEmpty"`
	TMDBTimeout      time.Duration `env:"TMDB_TIMEOUT" envDefault:"10s"`

	// Transactional email provider
	MailerBaseURL     string        `env:"MAILER_BASE_URL" envDefault:"https://api.brevo.com/v3"`
	MailerAPIKey      string        `env:"MAILER_API_KEY"`
	MailerSenderName  string        `env:"MAILER_SENDER_NAME" envDefault:"MovisionAI"`
	MailerSenderEmail string        `env:"MAILER_SENDER_EMAIL"`
	MailerTimeout     time.Duration `env:"MAILER_TIMEOUT" envDefault:"10s"`

	// PostgreSQL (library persistence; routes disabled when empty)
	DatabaseURL string `env:"DATABASE_URL"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	// Identity
	AuthSecret []byte `env:"AUTH_SECRET"`

	// Sessions
	SessionIdleTimeout   time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	SessionSweepInterval int           `env:"SESSION_SWEEP_INTERVAL_MINUTES" envDefault:"10"`

	// Rate limiting
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
	RateLimitMax      int           `env:"RATE_LIMIT_MAX" envDefault:"100"`
	AIRateLimitWindow time.Duration `env:"AI_RATE_LIMIT_WINDOW" envDefault:"24h"`
	AIRateLimitMax    int           `env:"AI_RATE_LIMIT_MAX" envDefault:"50"`

	// Enrichment
	EnrichConcurrency int `env:"ENRICH_CONCURRENCY" envDefault:"6"`

	// Observability / Logging
	ServiceName string `env:"SERVICE_NAME" envDefault:"movie-api"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	for name, raw := range map[string]string{
		"AI_BASE_URL":         cfg.AIBaseURL,
		"TMDB_BASE_URL":       cfg.TMDBBaseURL,
		"TMDB_IMAGE_BASE_URL": cfg.TMDBImageBaseURL,
		"MAILER_BASE_URL":     cfg.MailerBaseURL,
	} {
		if _, err := url.ParseRequestURI(raw); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	cfg.PromptConfigSet = strings.TrimSpace(cfg.PromptConfigSet)
	if cfg.PromptConfigSet == "" {
		cfg.PromptConfigSet = "default"
	}

	if cfg.PromptConfigEnabled {
		configFile := strings.TrimSpace(cfg.PromptConfigFile)
		if configFile == "" {
			configFile = DefaultPromptConfigFile
		}
		bootstrap, err := LoadPromptBootstrapConfig(configFile)
		if err != nil {
			return nil, fmt.Errorf("load prompt configs: %w", err)
		}
		cfg.PromptBootstrap = bootstrap
		if _, ok := bootstrap.ProfileForSet(cfg.PromptConfigSet); !ok {
			return nil, fmt.Errorf("prompt config set %q is missing in %s", cfg.PromptConfigSet, configFile)
		}
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	globalConfig = cfg
	return cfg, nil
}

// GetGlobal returns the global config instance.
// Deprecated: Use dependency injection with Load() instead.
func GetGlobal() *Config {
	return globalConfig
}

// PromptProfile returns the active prompt profile, or nil when no YAML
// override is configured (callers fall back to the built-in prompt).
func (c *Config) PromptProfile() *PromptProfileEntry {
	if c == nil || c.PromptBootstrap == nil {
		return nil
	}
	profile, ok := c.PromptBootstrap.ProfileForSet(c.PromptConfigSet)
	if !ok {
		return nil
	}
	return &profile
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
