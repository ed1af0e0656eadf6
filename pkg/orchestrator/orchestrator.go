package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/html"
	"github.com/goliatone/go-regform/pkg/state"
)

const defaultRendererName = html.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithForm replaces the built-in registration form description.
func WithForm(form model.FormModel) Option {
	return func(o *Orchestrator) {
		o.form = form
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit name.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithDecorators registers decorators that run against the form description
// before rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithViewOptions applies view options to every render.
func WithViewOptions(opts ...render.ViewOption) Option {
	return func(o *Orchestrator) {
		o.viewOptions = append(o.viewOptions, opts...)
	}
}

// Orchestrator renders form snapshots with a named renderer. Without options
// it uses model.Registration() and a registry holding the HTML renderer.
type Orchestrator struct {
	form            model.FormModel
	registry        *render.Registry
	defaultRenderer string
	decorators      []model.Decorator
	viewOptions     []render.ViewOption
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		form:            model.Registration(),
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}

	if o.registry == nil {
		renderer, err := html.New()
		if err != nil {
			return nil, fmt.Errorf("orchestrator: default renderer: %w", err)
		}
		registry, err := render.NewRegistry(renderer)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: registry: %w", err)
		}
		o.registry = registry
	}

	form, err := model.Decorate(o.form, o.decorators...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: decorate form: %w", err)
	}
	o.form = form
	return o, nil
}

// Form returns the decorated form description.
func (o *Orchestrator) Form() model.FormModel {
	return o.form
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Render builds a view from snap and renders it with the named renderer, or
// the default renderer when name is empty.
func (o *Orchestrator) Render(ctx context.Context, name string, snap state.Snapshot) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		name = o.defaultRenderer
	}

	view := render.NewView(o.form, snap, o.viewOptions...)
	out, err := o.registry.Render(ctx, name, o.form, view)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render %q: %w", name, err)
	}
	return out, nil
}
