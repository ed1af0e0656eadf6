package template

import (
	"io"
)

// TemplateRenderer is the seam renderers depend on.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	RegisterHTMLFilter(name string, fn func(string) string) error
	GlobalContext(data any) error
}
