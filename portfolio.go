package portfolio

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-portfolio/pkg/contact"
	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/renderers/page"
	"github.com/goliatone/go-portfolio/pkg/site"
)

// PageOptions describes per-request form state and feedback; alias exported
// via the root package for convenience.
type PageOptions = render.PageOptions

// Request aliases site.Request.
type Request = site.Request

// NewSite exposes the site constructor from the top-level module.
func NewSite(options ...site.Option) (*site.Site, error) {
	return site.New(options...)
}

// RenderHTML composes the page with the built-in content and the html
// renderer. It is the simplest entry point for callers that just want the
// page markup.
func RenderHTML(ctx context.Context, options ...site.Option) ([]byte, error) {
	s, err := site.New(options...)
	if err != nil {
		return nil, err
	}
	result, err := s.Compose(ctx, site.Request{Renderer: "html"})
	if err != nil {
		return nil, err
	}
	return result.Body, nil
}

// NewContactController returns a standalone contact form controller.
func NewContactController(options ...contact.Option) *contact.Controller {
	return contact.New(options...)
}

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return page.TemplatesFS()
}

// AssetsFS exposes the page stylesheet and script so Go applications can
// serve them.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(portfolio.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return page.AssetsFS()
}
