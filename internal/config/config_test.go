package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", "v1.2.3")
	require.NoError(t, err)

	assert.Equal(t, "v1.2.3", cfg.Version)
	assert.Equal(t, "127.0.0.1", cfg.BindAddr)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "studio", cfg.Theme.Name)
	assert.True(t, cfg.Contact.CheckEmailFormat)
	assert.Equal(t, 5000, cfg.Contact.MaxMessageLength)
	assert.Empty(t, cfg.SessionDir)
	assert.Equal(t, []string{TargetLog}, cfg.Delivery.Targets)
	assert.Equal(t, 2, cfg.Delivery.WebhookRetries)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	path := writeConfig(t, `
bind_addr: 0.0.0.0
port: "3000"
env: Staging
content:
  file: content.yaml
  static_dir: ./renders
session_dir: /var/lib/portfolio/sessions
theme:
  name: studio
  variant: dark
contact:
  max_message_length: 2000
delivery:
  targets: [log, sqlite]
  sqlite_path: /tmp/outbox.db
log:
  level: debug
  format: Console
`)
	t.Setenv("PORT", "4000")
	t.Setenv("DELIVERY_WEBHOOK_TOKEN", "secret-token")

	cfg, err := Load(path, "dev")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:4000", cfg.Addr())
	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, "content.yaml", cfg.Content.File)
	assert.Equal(t, "./renders", cfg.Content.StaticDir)
	assert.Equal(t, "dark", cfg.Theme.Variant)
	assert.Equal(t, "/var/lib/portfolio/sessions", cfg.SessionDir)
	assert.Equal(t, 2000, cfg.Contact.MaxMessageLength)
	assert.Equal(t, []string{TargetLog, TargetSQLite}, cfg.Delivery.Targets)
	assert.True(t, cfg.HasTarget(TargetSQLite))
	assert.False(t, cfg.HasTarget(TargetWebhook))
	assert.Equal(t, "/tmp/outbox.db", cfg.Delivery.SQLitePath)
	assert.Equal(t, "secret-token", cfg.Delivery.WebhookToken)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_SecretsIgnoredInYAML(t *testing.T) {
	path := writeConfig(t, `
session_secret: from-yaml
`)
	cfg, err := Load(path, "dev")
	require.NoError(t, err)
	assert.Empty(t, cfg.SessionSecret)
}

func TestLoad_TargetsFromEnvAreNormalized(t *testing.T) {
	t.Setenv("DELIVERY_TARGETS", " Log, webhook ,log")
	t.Setenv("DELIVERY_WEBHOOK_URL", "https://hooks.example.com/contact")

	cfg, err := Load("", "dev")
	require.NoError(t, err)
	assert.Equal(t, []string{TargetLog, TargetWebhook}, cfg.Delivery.Targets)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read")
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "invalid port",
			env:  map[string]string{"PORT": "http"},
			want: `invalid port "http"`,
		},
		{
			name: "production without secret",
			env:  map[string]string{"ENVIRONMENT": "production"},
			want: "SESSION_SECRET",
		},
		{
			name: "production with short secret",
			env:  map[string]string{"ENVIRONMENT": "prod", "SESSION_SECRET": "short"},
			want: "SESSION_SECRET",
		},
		{
			name: "webhook without url",
			env:  map[string]string{"DELIVERY_TARGETS": "webhook"},
			want: "delivery.webhook_url is required",
		},
		{
			name: "unknown target",
			env:  map[string]string{"DELIVERY_TARGETS": "smtp"},
			want: `unknown delivery target "smtp"`,
		},
		{
			name: "negative message length",
			env:  map[string]string{"CONTACT_MAX_MESSAGE_LENGTH": "-1"},
			want: "contact.max_message_length must not be negative",
		},
		{
			name: "unknown log format",
			env:  map[string]string{"LOG_FORMAT": "xml"},
			want: `unknown log format "xml"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			_, err := Load("", "dev")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "config: ")
		})
	}
}

func TestLoad_ProductionWithSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := Load("", "dev")
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
