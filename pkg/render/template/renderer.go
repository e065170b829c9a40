package template

import (
	"io"
)

// TemplateRenderer is the seam between renderers and a template engine.
// RenderTemplate returns the output and also copies it to any writers passed
// in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
