package text

import (
	"context"
	"embed"
	"fmt"
	"html"
	"io/fs"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-portfolio/pkg/contact"
	"github.com/goliatone/go-portfolio/pkg/content"
	"github.com/goliatone/go-portfolio/pkg/render"
	rendertemplate "github.com/goliatone/go-portfolio/pkg/render/template"
	"github.com/goliatone/go-portfolio/pkg/render/template/pongo"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const pageTemplate = "templates/page.txt.tmpl"

// TemplatesFS exposes the embedded text templates.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

type Option func(*config)

type config struct {
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	strip     *bluemonday.Policy
}

// New constructs the text renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(pongo.WithFS(embeddedTemplates), pongo.WithExtension(".tmpl"))
		if err != nil {
			return nil, fmt.Errorf("text renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return &Renderer{templates: renderer, strip: bluemonday.StrictPolicy()}, nil
}

func (r *Renderer) Name() string {
	return "text"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

type itemView struct {
	Title       string `json:"title,omitempty"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
	Name        string `json:"name,omitempty"`
	Feedback    string `json:"feedback,omitempty"`
}

type fieldView struct {
	Label  string   `json:"label"`
	Value  string   `json:"value"`
	Errors []string `json:"errors,omitempty"`
}

func (r *Renderer) Render(_ context.Context, page render.Page, options render.PageOptions) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("text renderer: template renderer is nil")
	}

	projects := render.List("project", page.Projects, func(p content.Project) itemView {
		return itemView{Title: p.Title, Image: p.Image, Description: r.plain(p.Description)}
	})
	testimonials := render.List("testimonial", page.Testimonials, func(t content.Testimonial) itemView {
		return itemView{Name: t.Name, Feedback: r.plain(t.Feedback)}
	})

	fields := make([]fieldView, 0, len(contact.Fields()))
	for _, field := range contact.Fields() {
		fields = append(fields, fieldView{
			Label:  field.Label(),
			Value:  options.Values[string(field)],
			Errors: options.Errors[string(field)],
		})
	}

	result, err := r.templates.RenderTemplate(pageTemplate, map[string]any{
		"profile":      page.Profile,
		"projects":     projects,
		"testimonials": testimonials,
		"fields":       fields,
		"flash":        strings.TrimSpace(options.Flash),
		"form_errors":  options.FormErrors,
	})
	if err != nil {
		return nil, fmt.Errorf("text renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// plain drops any markup from rich text and decodes entities.
func (r *Renderer) plain(raw string) string {
	return strings.TrimSpace(html.UnescapeString(r.strip.Sanitize(raw)))
}
