package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultConfigFile is read from the working directory when Load is given no
// explicit path and the file exists.
const DefaultConfigFile = "config.yaml"

// Delivery targets understood by DeliveryConfig.Targets.
const (
	TargetLog     = "log"
	TargetWebhook = "webhook"
	TargetSQLite  = "sqlite"
)

// Config holds all configuration for the portfolio server.
// Configuration can come from a YAML file or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr        string        `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port            string        `yaml:"port" env:"PORT" env-default:"8080"`
	Env             string        `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	Version         string        `yaml:"-"` // Set at load time, not from config

	// SessionSecret signs the visitor session cookie. Required in production;
	// other environments fall back to a per-process random key.
	SessionSecret string `yaml:"-" env:"SESSION_SECRET"` // Secret - not in YAML
	// SessionDir holds the visitor session files; empty uses os.TempDir.
	SessionDir string `yaml:"session_dir" env:"SESSION_DIR" env-default:""`

	Content  ContentConfig  `yaml:"content"`
	Theme    ThemeConfig    `yaml:"theme"`
	Contact  ContactConfig  `yaml:"contact"`
	Delivery DeliveryConfig `yaml:"delivery"`
	Log      LogConfig      `yaml:"log"`
}

// ContentConfig locates the page content and static files.
type ContentConfig struct {
	// File is a YAML content file; empty uses the built-in content.
	File string `yaml:"file" env:"CONTENT_FILE" env-default:""`
	// StaticDir is served under /renders/ (gallery images).
	StaticDir string `yaml:"static_dir" env:"STATIC_DIR" env-default:""`
	// TemplatesDir overrides individual embedded page templates.
	TemplatesDir string `yaml:"templates_dir" env:"TEMPLATES_DIR" env-default:""`
}

// ThemeConfig selects the default theme.
type ThemeConfig struct {
	Name    string `yaml:"name" env:"THEME_NAME" env-default:"studio"`
	Variant string `yaml:"variant" env:"THEME_VARIANT" env-default:""`
}

// ContactConfig tunes the contact form.
type ContactConfig struct {
	CheckEmailFormat bool   `yaml:"check_email_format" env:"CONTACT_CHECK_EMAIL_FORMAT" env-default:"true"`
	Acknowledgment   string `yaml:"acknowledgment" env:"CONTACT_ACKNOWLEDGMENT" env-default:""`
	// MaxMessageLength caps the message in characters; 0 disables the cap.
	MaxMessageLength int `yaml:"max_message_length" env:"CONTACT_MAX_MESSAGE_LENGTH" env-default:"5000"`
}

// DeliveryConfig selects where accepted messages go. Every listed target
// receives each message.
type DeliveryConfig struct {
	Targets        []string      `yaml:"targets" env:"DELIVERY_TARGETS" env-default:"log"`
	WebhookURL     string        `yaml:"webhook_url" env:"DELIVERY_WEBHOOK_URL" env-default:""`
	WebhookToken   string        `yaml:"-" env:"DELIVERY_WEBHOOK_TOKEN"` // Secret - not in YAML
	WebhookTimeout time.Duration `yaml:"webhook_timeout" env:"DELIVERY_WEBHOOK_TIMEOUT" env-default:"10s"`
	WebhookRetries int           `yaml:"webhook_retries" env:"DELIVERY_WEBHOOK_RETRIES" env-default:"2"`
	SQLitePath     string        `yaml:"sqlite_path" env:"DELIVERY_SQLITE_PATH" env-default:"portfolio-outbox.db"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Load reads configuration from path (or DefaultConfigFile when path is empty
// and the file exists) with environment variable overrides. Without a file
// only the environment and defaults are used.
func Load(path, version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	path = strings.TrimSpace(path)
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config: read environment: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	targets := make([]string, 0, len(c.Delivery.Targets))
	seen := make(map[string]struct{}, len(c.Delivery.Targets))
	for _, target := range c.Delivery.Targets {
		target = strings.ToLower(strings.TrimSpace(target))
		if target == "" {
			continue
		}
		if _, ok := seen[target]; ok {
			continue
		}
		seen[target] = struct{}{}
		targets = append(targets, target)
	}
	c.Delivery.Targets = targets
}

// Validate checks values cleanenv cannot express as tags.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown_timeout must be positive")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if c.Contact.MaxMessageLength < 0 {
		return errors.New("contact.max_message_length must not be negative")
	}
	if c.IsProduction() && len(c.SessionSecret) < 32 {
		return errors.New("SESSION_SECRET must be at least 32 characters in production")
	}
	if len(c.Delivery.Targets) == 0 {
		return errors.New("at least one delivery target is required")
	}
	for _, target := range c.Delivery.Targets {
		switch target {
		case TargetLog:
		case TargetWebhook:
			if strings.TrimSpace(c.Delivery.WebhookURL) == "" {
				return errors.New("delivery.webhook_url is required for the webhook target")
			}
			if c.Delivery.WebhookRetries < 0 {
				return errors.New("delivery.webhook_retries must not be negative")
			}
		case TargetSQLite:
			if strings.TrimSpace(c.Delivery.SQLitePath) == "" {
				return errors.New("delivery.sqlite_path is required for the sqlite target")
			}
		default:
			return fmt.Errorf("unknown delivery target %q", target)
		}
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.BindAddr, c.Port)
}

// IsProduction reports whether the server runs in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// HasTarget reports whether target is among the delivery targets.
func (c *Config) HasTarget(target string) bool {
	for _, t := range c.Delivery.Targets {
		if t == target {
			return true
		}
	}
	return false
}
