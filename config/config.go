package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	DEFAULT_AWS_REGION         = "us-west-1"
	DEFAULT_STAGING_DIR        = "./photos"
	DEFAULT_INVOCATION_TIMEOUT = 60 * time.Second
	DEFAULT_LOG_LEVEL          = "info"
)

// Config is built once at startup and handed to the components that need it.
type Config struct {
	DiscordToken string
	GuildID      string

	AWSAccessKey string
	AWSSecretKey string
	AWSRegion    string
	AWSEndpoint  string

	StagingDir        string
	InvocationTimeout time.Duration
	MetricsAddr       string
	LogLevel          string
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		DiscordToken:      os.Getenv("DISCORD_TOKEN"),
		GuildID:           os.Getenv("DISCORD_GUILD_ID"),
		AWSAccessKey:      os.Getenv("AWS_ACCESS_KEY"),
		AWSSecretKey:      os.Getenv("AWS_SECRET_KEY"),
		AWSRegion:         envOr("AWS_REGION", DEFAULT_AWS_REGION),
		AWSEndpoint:       os.Getenv("AWS_ENDPOINT"),
		StagingDir:        envOr("STAGING_DIR", DEFAULT_STAGING_DIR),
		InvocationTimeout: DEFAULT_INVOCATION_TIMEOUT,
		MetricsAddr:       os.Getenv("METRICS_ADDR"),
		LogLevel:          envOr("LOG_LEVEL", DEFAULT_LOG_LEVEL),
	}

	if raw := os.Getenv("INVOCATION_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid INVOCATION_TIMEOUT %q: %w", raw, err)
		}
		cfg.InvocationTimeout = timeout
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return errors.New("DISCORD_TOKEN is required")
	}
	if (c.AWSAccessKey == "") != (c.AWSSecretKey == "") {
		return errors.New("AWS_ACCESS_KEY and AWS_SECRET_KEY must be set together")
	}
	if c.AWSRegion == "" {
		return errors.New("AWS_REGION cannot be empty")
	}
	if c.StagingDir == "" {
		return errors.New("STAGING_DIR cannot be empty")
	}
	if c.InvocationTimeout <= 0 {
		return fmt.Errorf("INVOCATION_TIMEOUT must be positive, got %s", c.InvocationTimeout)
	}
	return nil
}

// HasStaticCredentials reports whether explicit AWS keys were configured.
// Without them the SDK default credential chain is used.
func (c *Config) HasStaticCredentials() bool {
	return c.AWSAccessKey != "" && c.AWSSecretKey != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
