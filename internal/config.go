package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	LoginStyleForm = "form"
	LoginStyleJSON = "json"
)

type Config struct {
	API           APIConfig           `mapstructure:"api" yaml:"api"`
	Session       SessionConfig       `mapstructure:"session" yaml:"session"`
	Observability ObservabilityConfig `mapstructure:"observability" yaml:"observability"`
}

type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
	LoginStyle string        `mapstructure:"login_style" yaml:"login_style"`
}

type SessionConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type ObservabilityConfig struct {
	Tracing TracingConfig `mapstructure:"tracing" yaml:"tracing"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled" yaml:"enabled"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	Endpoint    string `mapstructure:"endpoint" yaml:"endpoint"`
	Insecure    bool   `mapstructure:"insecure" yaml:"insecure"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:    "http://localhost:8000/api/v1",
			Timeout:    15 * time.Second,
			LoginStyle: LoginStyleForm,
		},
		Session: SessionConfig{
			Path: defaultSessionPath(),
		},
		Observability: ObservabilityConfig{
			Tracing: TracingConfig{
				ServiceName: "project-console",
				Endpoint:    "localhost:4317",
				Insecure:    true,
			},
			Logging: LoggingConfig{
				Level:  "warn",
				Format: "text",
			},
		},
	}
}

// LoadConfigFromEnv builds the config purely from environment variables, for
// container and CI runs where no config file is mounted.
func LoadConfigFromEnv() *Config {
	cfg := DefaultConfig()

	cfg.API.BaseURL = getEnv("API_BASE_URL", cfg.API.BaseURL)
	cfg.API.Timeout = time.Duration(getEnvAsInt("API_TIMEOUT_SECONDS", int(cfg.API.Timeout/time.Second))) * time.Second
	cfg.API.LoginStyle = getEnv("API_LOGIN_STYLE", cfg.API.LoginStyle)

	cfg.Session.Path = getEnv("SESSION_PATH", cfg.Session.Path)

	cfg.Observability.Logging.Level = getEnv("LOG_LEVEL", cfg.Observability.Logging.Level)
	cfg.Observability.Logging.Format = getEnv("LOG_FORMAT", cfg.Observability.Logging.Format)

	cfg.Observability.Tracing.Enabled = getEnvAsBool("TRACING_ENABLED", false)
	cfg.Observability.Tracing.ServiceName = getEnv("OTEL_SERVICE_NAME", cfg.Observability.Tracing.ServiceName)
	cfg.Observability.Tracing.Endpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Observability.Tracing.Endpoint)
	cfg.Observability.Tracing.Insecure = getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Observability.Tracing.Insecure)

	return cfg
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "session.db"
	}
	return filepath.Join(dir, "project-console", "session.db")
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.API.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("api config: %v", err))
	}

	if err := c.Session.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("session config: %v", err))
	}

	if err := c.Observability.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("observability config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *APIConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %s: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be absolute http(s), got %q", c.BaseURL)
	}
	if c.Timeout < 0 {
		return errors.New("timeout cannot be negative")
	}
	if c.LoginStyle != LoginStyleForm && c.LoginStyle != LoginStyleJSON {
		return fmt.Errorf("login_style must be %q or %q", LoginStyleForm, LoginStyleJSON)
	}
	return nil
}

func (c *SessionConfig) Validate() error {
	if c.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

func (c *ObservabilityConfig) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging level %q must be one of debug info warn error", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("logging format %q must be json or text", c.Logging.Format)
	}
	if c.Tracing.Enabled {
		if c.Tracing.ServiceName == "" {
			return errors.New("tracing service_name is required when tracing is enabled")
		}
		if c.Tracing.Endpoint == "" {
			return errors.New("tracing endpoint is required when tracing is enabled")
		}
	}
	return nil
}
