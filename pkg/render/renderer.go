package render

import (
	"context"

	"github.com/goliatone/go-regform/pkg/model"
)

// Renderer turns a form description plus its current view into bytes (HTML,
// plain text, JSON). Renderers never mutate form state; input flows back
// through the submission controller.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, view View) ([]byte, error)
}
