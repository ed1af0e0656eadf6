// Package regform exposes the common entry points of the module: building a
// submission controller over a store and rendering its current state.
package regform

import (
	"context"
	"io/fs"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/html"
	"github.com/goliatone/go-regform/pkg/store"
	"github.com/goliatone/go-regform/pkg/submission"
)

// Controller aliases submission.Controller for callers importing only the
// root package.
type Controller = submission.Controller

// NewController builds a controller over s, restoring the last saved draft.
func NewController(ctx context.Context, s store.Store, options ...submission.Option) (*Controller, error) {
	return submission.New(ctx, s, options...)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	return orchestrator.New(options...)
}

// RenderHTML renders the controller's current state as an HTML fragment with
// the built-in templates. Password values are masked.
func RenderHTML(ctx context.Context, ctrl *Controller, options ...orchestrator.Option) ([]byte, error) {
	opts := append([]orchestrator.Option{orchestrator.WithViewOptions(render.WithSecretsHidden())}, options...)
	gen, err := orchestrator.New(opts...)
	if err != nil {
		return nil, err
	}
	return gen.Render(ctx, html.Name, ctrl.Snapshot())
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can copy
// or extend them.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// RecordSchema describes one persisted submission record.
func RecordSchema() *openapi3.Schema {
	return model.RecordSchema()
}

// Registration returns the built-in registration form description.
func Registration() model.FormModel {
	return model.Registration()
}
