// Package app wires configuration into a site, its renderers and the
// delivery targets accepted contact messages are handed to.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/internal/config"
	"github.com/goliatone/go-portfolio/internal/server"
	"github.com/goliatone/go-portfolio/pkg/contact"
	"github.com/goliatone/go-portfolio/pkg/content"
	"github.com/goliatone/go-portfolio/pkg/delivery"
	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/renderers/page"
	"github.com/goliatone/go-portfolio/pkg/renderers/text"
	"github.com/goliatone/go-portfolio/pkg/site"
)

// App holds the wired components for one process.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Site   *site.Site

	closers []func() error
}

// New builds the site described by cfg. Extra site options are applied last.
// Close must be called to release delivery resources.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, extra ...site.Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := Store(cfg.Content.File)
	if err != nil {
		return nil, err
	}
	registry, err := Registry(cfg.Content.TemplatesDir)
	if err != nil {
		return nil, err
	}
	deliverer, closers, err := Deliverer(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Logger: logger, closers: closers}

	contactOptions := []contact.Option{
		contact.WithDeliverer(deliverer),
		contact.WithEmailFormatCheck(cfg.Contact.CheckEmailFormat),
		contact.WithMaxMessageLength(cfg.Contact.MaxMessageLength),
	}
	if ack := strings.TrimSpace(cfg.Contact.Acknowledgment); ack != "" {
		contactOptions = append(contactOptions, contact.WithAcknowledgment(ack))
	}

	options := []site.Option{
		site.WithStore(store),
		site.WithRegistry(registry),
		site.WithTheme(cfg.Theme.Name, cfg.Theme.Variant),
		site.WithContactOptions(contactOptions...),
		site.WithLogger(logger),
	}
	options = append(options, extra...)

	a.Site, err = site.New(options...)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("app: %w", err)
	}
	if _, err := a.Site.ThemeConfig("", ""); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("app: %w", err)
	}
	return a, nil
}

// Server builds the HTTP server for the site. Extra options are applied
// after the configured ones.
func (a *App) Server(extra ...server.Option) (*server.Server, error) {
	cfg := a.Config
	options := []server.Option{
		server.WithLogger(a.Logger),
		server.WithAddr(cfg.Addr()),
		server.WithStaticDir(cfg.Content.StaticDir),
		server.WithVersion(cfg.Version),
		server.WithShutdownTimeout(cfg.ShutdownTimeout),
		server.WithSessionSecret(cfg.SessionSecret),
		server.WithSessionDir(cfg.SessionDir),
		server.WithSecureCookies(cfg.IsProduction()),
	}
	options = append(options, extra...)
	return server.New(a.Site, options...)
}

// Close releases delivery resources in reverse order of creation.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Store loads the content file, or the built-in content when path is empty.
func Store(path string) (*content.Store, error) {
	if strings.TrimSpace(path) == "" {
		return content.Default(), nil
	}
	store, err := content.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return store, nil
}

// Registry registers the html renderer (with optional template overrides
// from templatesDir) followed by the text renderer.
func Registry(templatesDir string) (*render.Registry, error) {
	var pageOptions []page.Option
	if dir := strings.TrimSpace(templatesDir); dir != "" {
		pageOptions = append(pageOptions, page.WithTemplatesDir(dir))
	}
	htmlRenderer, err := page.New(pageOptions...)
	if err != nil {
		return nil, fmt.Errorf("app: html renderer: %w", err)
	}
	textRenderer, err := text.New()
	if err != nil {
		return nil, fmt.Errorf("app: text renderer: %w", err)
	}

	registry := render.NewRegistry()
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	if err := registry.Register(textRenderer); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return registry, nil
}

// Deliverer builds the configured delivery targets. A single target is
// returned as is; several are combined with delivery.Multi. The returned
// closers release resources such as the sqlite outbox.
func Deliverer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (contact.Deliverer, []func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var (
		targets delivery.Multi
		closers []func() error
	)
	release := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}

	for _, target := range cfg.Delivery.Targets {
		switch target {
		case config.TargetLog:
			targets = append(targets, delivery.NewLog(logger))
		case config.TargetWebhook:
			webhook, err := newWebhook(cfg.Delivery, logger)
			if err != nil {
				release()
				return nil, nil, fmt.Errorf("app: %w", err)
			}
			targets = append(targets, webhook)
		case config.TargetSQLite:
			outbox, err := delivery.OpenSQLiteOutbox(ctx, cfg.Delivery.SQLitePath)
			if err != nil {
				release()
				return nil, nil, fmt.Errorf("app: %w", err)
			}
			targets = append(targets, outbox)
			closers = append(closers, outbox.Close)
		default:
			release()
			return nil, nil, fmt.Errorf("app: unknown delivery target %q", target)
		}
	}

	switch len(targets) {
	case 0:
		return nil, nil, errors.New("app: no delivery targets configured")
	case 1:
		return targets[0], closers, nil
	default:
		return targets, closers, nil
	}
}

func newWebhook(cfg config.DeliveryConfig, logger *zap.Logger) (*delivery.Webhook, error) {
	retry := delivery.DefaultRetryConfig()
	retry.MaxRetries = cfg.WebhookRetries

	options := []delivery.WebhookOption{
		delivery.WithRetry(retry),
		delivery.WithWebhookLogger(logger),
	}
	if cfg.WebhookTimeout > 0 {
		options = append(options, delivery.WithHTTPClient(&http.Client{Timeout: cfg.WebhookTimeout}))
	}
	if token := strings.TrimSpace(cfg.WebhookToken); token != "" {
		options = append(options, delivery.WithHeader("Authorization", "Bearer "+token))
	}
	return delivery.NewWebhook(cfg.WebhookURL, options...)
}
