package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the gateway.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Square    SquareConfig    `yaml:"square"`
	Recaptcha RecaptchaConfig `yaml:"recaptcha"`
	CORS      CORSConfig      `yaml:"cors"`
	Redis     RedisConfig     `yaml:"redis"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        int    `yaml:"port"`
	Host        string `yaml:"host"`
	Environment string `yaml:"environment"` // "sandbox" or "production"
	Development bool   `yaml:"development"`
}

// GetHost returns the listen host, with container detection.
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

// IsProduction reports whether the gateway runs against live credentials.
func (c ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// SquareConfig holds the catalog/payments provider configuration.
type SquareConfig struct {
	AccessToken    string `yaml:"access_token"`
	LocationID     string `yaml:"location_id"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured outbound timeout as a duration.
func (c SquareConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RecaptchaConfig holds the bot-verification provider configuration.
type RecaptchaConfig struct {
	Secret         string  `yaml:"secret"`
	BaseURL        string  `yaml:"base_url"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	MinScore       float64 `yaml:"min_score"`
}

// Timeout returns the configured outbound timeout as a duration.
func (c RecaptchaConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CORSConfig holds the origin allow-list.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// RedisConfig holds the optional shared rate-limit store address.
type RedisConfig struct {
	URL string `yaml:"url"`
}

const (
	squareProductionURL = "https://connect.squareup.com"
	squareSandboxURL    = "https://connect.squareupsandbox.com"
)

// Load reads and parses the configuration file, filling defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}
	if c.Server.Environment == "" {
		c.Server.Environment = "sandbox"
	}
	if c.Square.BaseURL == "" {
		if c.Server.IsProduction() {
			c.Square.BaseURL = squareProductionURL
		} else {
			c.Square.BaseURL = squareSandboxURL
		}
	}
	if c.Square.TimeoutSeconds == 0 {
		c.Square.TimeoutSeconds = 10
	}
	if c.Recaptcha.BaseURL == "" {
		c.Recaptcha.BaseURL = "https://www.google.com"
	}
	if c.Recaptcha.TimeoutSeconds == 0 {
		c.Recaptcha.TimeoutSeconds = 10
	}
	if c.Recaptcha.MinScore == 0 {
		c.Recaptcha.MinScore = 0.5
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"http://localhost:8080"}
	}
}

// LoadFromEnv loads configuration with environment variable overrides.
// It loads a .env file (if present) first, so secrets can live in .env
// locally and in real env vars on the deployment host.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Whether the Square URL was filled by applyDefaults rather than the
	// config file; such a value must track environment overrides below.
	derivedBaseURL := cfg.Square.BaseURL == squareProductionURL ||
		cfg.Square.BaseURL == squareSandboxURL

	if v := os.Getenv("ENVIRONMENT"); v != "" {
		cfg.Server.Environment = v
	}
	if v := os.Getenv("SQUARE_ENVIRONMENT"); v != "" {
		cfg.Server.Environment = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("DEV_MODE"); v != "" {
		cfg.Server.Development = v == "true" || v == "1"
	}
	if v := os.Getenv("SQUARE_ACCESS_TOKEN"); v != "" {
		cfg.Square.AccessToken = v
	}
	if v := os.Getenv("SQUARE_LOCATION_ID"); v != "" {
		cfg.Square.LocationID = v
	}
	if v := os.Getenv("SQUARE_BASE_URL"); v != "" {
		cfg.Square.BaseURL = v
	}
	if v := os.Getenv("RECAPTCHA_SECRET"); v != "" {
		cfg.Recaptcha.Secret = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.CORS.AllowedOrigins = origins
		}
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}

	// Environment may have changed after defaults were applied; re-derive
	// the Square base URL if it was not set explicitly anywhere.
	if os.Getenv("SQUARE_BASE_URL") == "" && derivedBaseURL {
		if cfg.Server.IsProduction() {
			cfg.Square.BaseURL = squareProductionURL
		} else {
			cfg.Square.BaseURL = squareSandboxURL
		}
	}

	return cfg, nil
}

// Validate checks that credentials required for live traffic are present.
// Sandbox mode tolerates missing credentials so the gateway can run
// against cmd/stub-upstream with zero setup.
func (c *Config) Validate() error {
	if !c.Server.IsProduction() {
		return nil
	}
	if c.Square.AccessToken == "" {
		return fmt.Errorf("square.access_token is required in production")
	}
	if c.Square.LocationID == "" {
		return fmt.Errorf("square.location_id is required in production")
	}
	if c.Recaptcha.Secret == "" {
		return fmt.Errorf("recaptcha.secret is required in production")
	}
	return nil
}
