package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultSessionSecret = "default-secret-key-change-me"

type Config struct {
	DBDriver      string `mapstructure:"DB_DRIVER"`
	DBHost        string `mapstructure:"DB_HOST"`
	DBPort        string `mapstructure:"DB_PORT"`
	DBUser        string `mapstructure:"DB_USER"`
	DBPassword    string `mapstructure:"DB_PASSWORD"`
	DBName        string `mapstructure:"DB_NAME"`
	DBPath        string `mapstructure:"DB_PATH"`
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	GinMode       string `mapstructure:"GIN_MODE"`
	Port          string `mapstructure:"PORT"`
	MediaRoot     string `mapstructure:"MEDIA_ROOT"`
	LogFormat     string `mapstructure:"LOG_FORMAT"`
	MailEnabled   bool   `mapstructure:"MAIL_ENABLED"`
	MailHost      string `mapstructure:"MAIL_HOST"`
	MailUser      string `mapstructure:"MAIL_USER"`
}

var defaults = map[string]interface{}{
	"DB_DRIVER":      "sqlite",
	"DB_HOST":        "localhost",
	"DB_PORT":        "5432",
	"DB_USER":        "forum",
	"DB_PASSWORD":    "forum",
	"DB_NAME":        "qa_forum",
	"DB_PATH":        "qa_forum.db",
	"REDIS_HOST":     "",
	"REDIS_PORT":     "6379",
	"REDIS_PASSWORD": "",
	"SESSION_SECRET": defaultSessionSecret,
	"GIN_MODE":       "debug",
	"PORT":           "8080",
	"MEDIA_ROOT":     "media",
	"LOG_FORMAT":     "text",
	"MAIL_ENABLED":   false,
	"MAIL_HOST":      "",
	"MAIL_USER":      "",
}

// Load reads configuration from an optional .env file, an optional config.yml
// and the process environment, in increasing order of precedence.
func Load() (*Config, error) {
	// A missing .env is fine outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate rejects configurations that cannot start or are unsafe in release mode.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if c.IsProduction() {
		if c.SessionSecret == defaultSessionSecret {
			return errors.New("SESSION_SECRET must be changed from the default value in release mode")
		}
		if len(c.SessionSecret) < 32 {
			return errors.New("SESSION_SECRET must be at least 32 characters in release mode")
		}
	}
	return nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// RedisAddr returns host:port of the session redis, or "" when redis is not configured.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}
