package site

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/pkg/contact"
	"github.com/goliatone/go-portfolio/pkg/content"
	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/renderers/page"
	"github.com/goliatone/go-portfolio/pkg/renderers/text"
)

const defaultRendererName = "html"

// Option customises the site configuration.
type Option func(*Site)

// WithStore supplies the content shown on the page.
func WithStore(store *content.Store) Option {
	return func(s *Site) {
		s.store = store
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(s *Site) {
		s.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field and sends no Accept header.
func WithDefaultRenderer(name string) Option {
	return func(s *Site) {
		s.defaultRenderer = name
	}
}

// WithThemeSelector passes a go-theme selector used to resolve per-request
// theme configuration.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(s *Site) {
		s.selector = selector
	}
}

// WithTheme sets the theme and variant used when a request names neither.
func WithTheme(name, variant string) Option {
	return func(s *Site) {
		s.themeName = name
		s.themeVariant = variant
	}
}

// WithAssetPrefix is the URL prefix theme assets are served under (for
// example "/assets"). Without it renderers inline their embedded assets.
func WithAssetPrefix(prefix string) Option {
	return func(s *Site) {
		s.assetPrefix = prefix
	}
}

// WithContactOptions are applied to every controller NewController creates.
func WithContactOptions(options ...contact.Option) Option {
	return func(s *Site) {
		s.contactOptions = append(s.contactOptions, options...)
	}
}

// WithLogger sets the logger; it is also handed to contact controllers.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Site) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Site arranges the header, gallery, testimonials, contact form and footer
// into one page.
type Site struct {
	store           *content.Store
	registry        *render.Registry
	defaultRenderer string
	selector        theme.ThemeSelector
	themeName       string
	themeVariant    string
	assetPrefix     string
	contactOptions  []contact.Option
	logger          *zap.Logger
}

// New constructs a Site. Missing dependencies get the built-in defaults:
// the original content, the html and text renderers and the studio theme.
func New(options ...Option) (*Site, error) {
	s := &Site{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.store == nil {
		s.store = content.Default()
	}
	if err := content.Validate(s.store); err != nil {
		return nil, fmt.Errorf("site: %w", err)
	}
	if s.registry == nil {
		registry, err := defaultRegistry()
		if err != nil {
			return nil, err
		}
		s.registry = registry
	}
	if s.selector == nil {
		selector, err := NewThemeSelector(DefaultThemeName, "", DefaultTheme())
		if err != nil {
			return nil, fmt.Errorf("site: default theme: %w", err)
		}
		s.selector = selector
	}
	return s, nil
}

func defaultRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()
	htmlRenderer, err := page.New()
	if err != nil {
		return nil, fmt.Errorf("site: html renderer: %w", err)
	}
	textRenderer, err := text.New()
	if err != nil {
		return nil, fmt.Errorf("site: text renderer: %w", err)
	}
	registry.MustRegister(htmlRenderer)
	registry.MustRegister(textRenderer)
	return registry, nil
}

// Store returns the content store.
func (s *Site) Store() *content.Store {
	return s.store
}

// Page returns the static part of the page.
func (s *Site) Page() render.Page {
	return render.Page{
		Profile:      s.store.Profile(),
		Projects:     s.store.Projects(),
		Testimonials: s.store.Testimonials(),
	}
}

// Request describes one page composition.
type Request struct {
	// Renderer names the renderer to use. When empty, Accept is negotiated
	// and, failing that, the default renderer is used.
	Renderer string
	// Accept is the HTTP Accept header of the visitor, if any.
	Accept string
	// ThemeName and ThemeVariant override the site defaults.
	ThemeName    string
	ThemeVariant string
	// Options carries the per-visitor form state and feedback. A nil
	// Options.Theme is filled in from the theme selector.
	Options render.PageOptions
}

// Result is a composed page.
type Result struct {
	Body        []byte
	ContentType string
	Renderer    string
}

// Compose renders the full page for one request.
func (s *Site) Compose(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("site: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	renderer, err := s.Renderer(req.Renderer, req.Accept)
	if err != nil {
		return Result{}, err
	}

	options := req.Options
	if options.Theme == nil {
		cfg, err := s.ThemeConfig(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return Result{}, err
		}
		options.Theme = cfg
	}

	body, err := renderer.Render(ctx, s.Page(), options)
	if err != nil {
		return Result{}, fmt.Errorf("site: render page: %w", err)
	}
	s.logger.Debug("page composed",
		zap.String("renderer", renderer.Name()),
		zap.Int("bytes", len(body)),
	)
	return Result{Body: body, ContentType: renderer.ContentType(), Renderer: renderer.Name()}, nil
}

// Renderer picks a renderer by explicit name, then by Accept header, then
// falls back to the default renderer.
func (s *Site) Renderer(name, accept string) (render.Renderer, error) {
	if s.registry == nil {
		return nil, errors.New("site: renderer registry is nil")
	}
	if name != "" {
		renderer, err := s.registry.Get(name)
		if err != nil {
			return nil, fmt.Errorf("site: %w", err)
		}
		return renderer, nil
	}
	if accept != "" {
		if renderer, ok := s.registry.Negotiate(accept); ok && negotiated(accept, renderer) {
			return renderer, nil
		}
	}
	if s.defaultRenderer != "" {
		if renderer, err := s.registry.Get(s.defaultRenderer); err == nil {
			return renderer, nil
		}
	}
	names := s.registry.List()
	if len(names) == 0 {
		return nil, errors.New("site: no renderers registered")
	}
	return s.registry.Get(names[0])
}

// negotiated reports whether accept names the renderer's media type
// explicitly; wildcards do not count.
func negotiated(accept string, renderer render.Renderer) bool {
	want, _, err := mime.ParseMediaType(renderer.ContentType())
	if err != nil {
		return false
	}
	for _, part := range strings.Split(accept, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == want {
			return true
		}
	}
	return false
}

// ThemeConfig resolves theme tokens and asset URLs for renderers.
func (s *Site) ThemeConfig(name, variant string) (*theme.RendererConfig, error) {
	if s.selector == nil {
		return nil, nil
	}
	if name == "" {
		name = s.themeName
	}
	if variant == "" {
		variant = s.themeVariant
	}
	selection, err := s.selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("site: select theme: %w", err)
	}
	return RendererConfig(selection, s.assetPrefix), nil
}

// NewController creates the contact controller for one visitor session,
// optionally restoring previously entered values.
func (s *Site) NewController(values contact.Values, extra ...contact.Option) *contact.Controller {
	options := make([]contact.Option, 0, len(s.contactOptions)+len(extra)+2)
	options = append(options, contact.WithLogger(s.logger))
	options = append(options, s.contactOptions...)
	options = append(options, extra...)
	if !values.IsZero() {
		options = append(options, contact.WithInitialValues(values))
	}
	return contact.New(options...)
}
