package page

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-portfolio/pkg/render"
	rendertemplate "github.com/goliatone/go-portfolio/pkg/render/template"
	"github.com/goliatone/go-portfolio/pkg/render/template/pongo"
)

const pageTemplate = "templates/page.tmpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	inlineAssets     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Templates missing
// from the directory fall back to the embedded bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithoutInlineAssets stops the renderer from inlining the embedded
// stylesheet and script when the theme does not resolve asset URLs.
func WithoutInlineAssets() Option {
	return func(cfg *config) {
		cfg.inlineAssets = false
	}
}

type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
	script     string
}

// New constructs the page renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), inlineAssets: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithBaseDir(cfg.templatesDir),
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("page renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	r := &Renderer{templates: renderer}
	if cfg.inlineAssets {
		r.stylesheet = defaultStylesheet()
		r.script = defaultScript()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, page render.Page, options render.PageOptions) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("page renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(pageTemplate, map[string]any{
		"profile":      page.Profile,
		"projects":     GalleryItems(page.Projects),
		"testimonials": TestimonialItems(page.Testimonials),
		"form":         buildForm(options),
		"theme":        buildTheme(options.Theme, r.stylesheet, r.script),
	})
	if err != nil {
		return nil, fmt.Errorf("page renderer: render template: %w", err)
	}
	return []byte(result), nil
}
