package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-portfolio/internal/config"
	"github.com/goliatone/go-portfolio/pkg/contact"
	"github.com/goliatone/go-portfolio/pkg/delivery"
	"github.com/goliatone/go-portfolio/pkg/site"
	"github.com/goliatone/go-portfolio/pkg/testsupport"
)

func testConfig(targets ...string) *config.Config {
	return &config.Config{
		BindAddr:        "127.0.0.1",
		Port:            "0",
		Env:             "local",
		ShutdownTimeout: time.Second,
		Theme:           config.ThemeConfig{Name: site.DefaultThemeName},
		Contact:         config.ContactConfig{CheckEmailFormat: true},
		Delivery: config.DeliveryConfig{
			Targets:        targets,
			WebhookTimeout: time.Second,
		},
	}
}

func TestNew_DefaultContent(t *testing.T) {
	a, err := New(context.Background(), testConfig(config.TargetLog), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	result, err := a.Site.Compose(context.Background(), site.Request{Renderer: "text"})
	require.NoError(t, err)
	assert.Contains(t, string(result.Body), "RS 3D Renders")

	srv, err := a.Server()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", srv.Addr())
}

func TestNew_ContentFileAndAcknowledgment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
profile:
  title: Studio North
  tagline: Interiors
  contact:
    email: hi@north.example
projects:
  - title: Loft
    image: /renders/loft.jpg
    description: Industrial loft.
`), 0o600))

	cfg := testConfig(config.TargetLog)
	cfg.Content.File = path
	cfg.Contact.Acknowledgment = "Got it."

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.Equal(t, "Studio North", a.Site.Store().Profile().Title)

	controller := a.Site.NewController(testsupport.Submission("x").Values())
	outcome := controller.Submit(context.Background())
	assert.True(t, outcome.Acknowledged())
	assert.Equal(t, "Got it.", outcome.Message)
}

func TestNew_MessageLengthLimit(t *testing.T) {
	cfg := testConfig(config.TargetLog)
	cfg.Contact.MaxMessageLength = 10
	cfg.SessionDir = filepath.Join(t.TempDir(), "sessions")

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	values := testsupport.Submission("x").Values()
	values.Message = "far more than ten characters"
	outcome := a.Site.NewController(values).Submit(context.Background())
	assert.Equal(t, contact.StatusRejected, outcome.Status)
	assert.True(t, outcome.Fields.Has(contact.FieldMessage))

	_, err = a.Server()
	require.NoError(t, err)
	assert.DirExists(t, cfg.SessionDir)
}

func TestNew_UnknownTheme(t *testing.T) {
	cfg := testConfig(config.TargetLog)
	cfg.Theme.Name = "missing"

	_, err := New(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, site.ErrThemeNotFound)
}

func TestDeliverer_SingleTarget(t *testing.T) {
	deliverer, closers, err := Deliverer(context.Background(), testConfig(config.TargetLog), nil)
	require.NoError(t, err)
	assert.Empty(t, closers)
	assert.IsType(t, &delivery.Log{}, deliverer)
}

func TestDeliverer_FansOutToEveryTarget(t *testing.T) {
	type capture struct {
		auth string
		body map[string]any
	}
	captured := make(chan capture, 1)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		captured <- capture{auth: r.Header.Get("Authorization"), body: body}
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(hook.Close)

	cfg := testConfig(config.TargetLog, config.TargetWebhook, config.TargetSQLite)
	cfg.Delivery.WebhookURL = hook.URL
	cfg.Delivery.WebhookToken = "token-1"
	cfg.Delivery.SQLitePath = filepath.Join(t.TempDir(), "outbox.db")

	deliverer, closers, err := Deliverer(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.Len(t, closers, 1)
	t.Cleanup(func() { _ = closers[0]() })
	require.IsType(t, delivery.Multi{}, deliverer)

	require.NoError(t, deliverer.Deliver(context.Background(), testsupport.Submission("sub-1")))
	got := <-captured
	assert.Equal(t, "Bearer token-1", got.auth)
	assert.Equal(t, "sub-1", got.body["id"])

	outbox := deliverer.(delivery.Multi)[2].(*delivery.SQLiteOutbox)
	pending, err := outbox.Pending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "sub-1", pending[0].ID)
}

func TestDeliverer_Errors(t *testing.T) {
	_, _, err := Deliverer(context.Background(), testConfig(), nil)
	assert.Error(t, err)

	_, _, err = Deliverer(context.Background(), testConfig("smtp"), nil)
	assert.ErrorContains(t, err, `unknown delivery target "smtp"`)

	cfg := testConfig(config.TargetWebhook)
	cfg.Delivery.WebhookURL = "ftp://example.com"
	_, _, err = Deliverer(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "invalid webhook url")
}

func TestClose_NilSafe(t *testing.T) {
	var a *App
	assert.NoError(t, a.Close())
}
