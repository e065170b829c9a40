package render

import (
	"context"

	"github.com/goliatone/go-portfolio/pkg/content"
)

// Page is everything a renderer needs to draw the site: the studio profile
// and the two read-only lists.
type Page struct {
	Profile      content.Profile
	Projects     []content.Project
	Testimonials []content.Testimonial
}

// Renderer converts a Page into a byte representation (HTML, text, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page, options PageOptions) ([]byte, error)
}
