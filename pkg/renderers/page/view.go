package page

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-portfolio/pkg/contact"
	"github.com/goliatone/go-portfolio/pkg/content"
	"github.com/goliatone/go-portfolio/pkg/render"
)

// ProjectView is the template shape of one gallery card. Description holds
// sanitised HTML.
type ProjectView struct {
	Title       string `json:"title"`
	Image       string `json:"image"`
	Alt         string `json:"alt"`
	Description string `json:"description"`
}

// TestimonialView is the template shape of one testimonial. Feedback holds
// sanitised HTML.
type TestimonialView struct {
	Name     string `json:"name"`
	Feedback string `json:"feedback"`
}

// GalleryItems maps projects to gallery cards keyed by position.
func GalleryItems(projects []content.Project) []render.Item[ProjectView] {
	return render.List("project", projects, func(p content.Project) ProjectView {
		return ProjectView{
			Title:       p.Title,
			Image:       p.Image,
			Alt:         p.Title,
			Description: sanitizeRichText(p.Description),
		}
	})
}

// TestimonialItems maps testimonials to quotes keyed by position.
func TestimonialItems(testimonials []content.Testimonial) []render.Item[TestimonialView] {
	return render.List("testimonial", testimonials, func(t content.Testimonial) TestimonialView {
		return TestimonialView{
			Name:     t.Name,
			Feedback: sanitizeRichText(t.Feedback),
		}
	})
}

var fieldPlaceholders = map[contact.Field]string{
	contact.FieldName:    "Your Name",
	contact.FieldEmail:   "Your Email",
	contact.FieldMessage: "Your Message",
}

type fieldView struct {
	Name        string   `json:"name"`
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Placeholder string   `json:"placeholder"`
	Rows        string   `json:"rows,omitempty"`
	Value       string   `json:"value"`
	Errors      []string `json:"errors,omitempty"`
}

type formView struct {
	Action      string               `json:"action"`
	Endpoint    string               `json:"endpoint"`
	Fields      []fieldView          `json:"fields"`
	FormErrors  []string             `json:"form_errors,omitempty"`
	Flash       string               `json:"flash,omitempty"`
	Hidden      []render.HiddenField `json:"hidden,omitempty"`
	SubmitLabel string               `json:"submit_label"`
}

type themeView struct {
	Name          string `json:"name,omitempty"`
	Variant       string `json:"variant,omitempty"`
	CSSVarsStyle  string `json:"css_vars_style,omitempty"`
	StylesheetURL string `json:"stylesheet_url,omitempty"`
	ScriptURL     string `json:"script_url,omitempty"`
	Stylesheet    string `json:"stylesheet,omitempty"`
	Script        string `json:"script,omitempty"`
}

func buildForm(options render.PageOptions) formView {
	action := strings.TrimSpace(options.Form.Action)
	if action == "" {
		action = "/contact"
	}

	fields := make([]fieldView, 0, len(contact.Fields()))
	for _, field := range contact.Fields() {
		name := string(field)
		view := fieldView{
			Name:        name,
			ID:          "contact-" + name,
			Label:       field.Label(),
			Type:        "text",
			Placeholder: fieldPlaceholders[field],
			Value:       options.Values[name],
			Errors:      options.Errors[name],
		}
		switch field {
		case contact.FieldEmail:
			view.Type = "email"
		case contact.FieldMessage:
			view.Type = "textarea"
			view.Rows = "4"
		}
		fields = append(fields, view)
	}

	return formView{
		Action:      action,
		Endpoint:    strings.TrimSpace(options.Form.Endpoint),
		Fields:      fields,
		FormErrors:  options.FormErrors,
		Flash:       strings.TrimSpace(options.Flash),
		Hidden:      render.SortedHiddenFields(options.Hidden...),
		SubmitLabel: "Submit",
	}
}

func buildTheme(cfg *theme.RendererConfig, inlineStylesheet, inlineScript string) themeView {
	view := themeView{}
	if cfg != nil {
		view.Name = cfg.Theme
		view.Variant = cfg.Variant
		view.CSSVarsStyle = cssVarsStyle(cfg.CSSVars)
		if cfg.AssetURL != nil {
			view.StylesheetURL = strings.TrimSpace(cfg.AssetURL(StylesheetAssetKey))
			view.ScriptURL = strings.TrimSpace(cfg.AssetURL(ScriptAssetKey))
		}
	}
	if view.StylesheetURL == "" {
		view.Stylesheet = inlineStylesheet
	}
	if view.ScriptURL == "" {
		view.Script = inlineScript
	}
	return view
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
