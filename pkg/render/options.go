package render

import theme "github.com/goliatone/go-theme"

// FormAction describes where the contact form posts.
type FormAction struct {
	// Action is the no-script POST target (post/redirect/get).
	Action string
	// Endpoint is the JSON endpoint the page script submits to in-page.
	Endpoint string
}

// PageOptions describe per-request data that renderers use without touching
// the static page content.
type PageOptions struct {
	// Values pre-populates the contact inputs keyed by field name. Renderers
	// must display exactly these values (controlled fields).
	Values map[string]string
	// Errors surfaces per-field validation feedback keyed by field name.
	Errors map[string][]string
	// FormErrors are form-level messages (for example, delivery failures).
	FormErrors []string
	// Flash is the acknowledgment shown after a successful submission.
	Flash string
	// Hidden inputs emitted inside the contact form (CSRF token).
	Hidden []HiddenField
	// Form configures the contact form targets.
	Form FormAction
	// Theme carries resolved tokens/asset URLs for the active theme.
	Theme *theme.RendererConfig
}
