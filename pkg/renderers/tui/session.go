package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/state"
	"github.com/goliatone/go-regform/pkg/submission"
)

// Controller is the slice of submission.Controller a session drives.
type Controller interface {
	OnFieldChange(field model.FieldName, raw any) error
	OnSubmit(ctx context.Context) error
	Snapshot() state.Snapshot
}

var _ Controller = (*submission.Controller)(nil)

// Run walks the user through every field of form, forwarding each answer to
// ctrl and re-asking while the field reports an error. Once all fields pass
// it asks for confirmation and submits; a failed save can be retried.
func (r *Renderer) Run(ctx context.Context, form model.FormModel, ctrl Controller) error {
	if ctrl == nil {
		return errors.New("tui: controller is required")
	}
	if form.Title != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+form.Title); err != nil {
			return err
		}
	}

	for _, field := range form.Fields {
		if err := r.promptField(ctx, field, ctrl); err != nil {
			return err
		}
	}

	submit, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: submitLabel(form),
		Default: true,
	})
	if err != nil {
		return err
	}
	if !submit {
		return ErrDeclined
	}

	for {
		err := ctrl.OnSubmit(ctx)
		if infoErr := r.showMessage(ctx, ctrl.Snapshot().Message); infoErr != nil {
			return infoErr
		}
		if err == nil {
			return nil
		}
		if !errors.Is(err, submission.ErrPersistence) {
			return err
		}

		retry, promptErr := r.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
		if promptErr != nil {
			return promptErr
		}
		if !retry {
			return fmt.Errorf("%w: %w", ErrDeclined, err)
		}
	}
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, ctrl Controller) error {
	for {
		current, _ := ctrl.Snapshot().Draft.Value(field.Name)
		raw, err := r.ask(ctx, field, current)
		if err != nil {
			return err
		}
		if err := ctrl.OnFieldChange(field.Name, raw); err != nil {
			return err
		}

		msg := ctrl.Snapshot().VisibleErrors[field.Name]
		if msg == "" {
			return nil
		}
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
			return err
		}
	}
}

func (r *Renderer) ask(ctx context.Context, field model.Field, current any) (any, error) {
	label := displayLabel(field)
	help := field.Description

	switch field.Type {
	case model.FieldTypeBoolean:
		checked, _ := current.(bool)
		return r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: checked, Help: help})

	case model.FieldTypeChoice:
		labels := make([]string, len(field.Options))
		defaultIdx := -1
		for i, option := range field.Options {
			labels[i] = option.Label
			if option.Value == current {
				defaultIdx = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         help,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(field.Options) {
			return nil, fmt.Errorf("%w: %s index %d", ErrInvalidChoice, field.Name, idx)
		}
		return field.Options[idx].Value, nil

	default:
		value, _ := current.(string)
		cfg := InputConfig{Message: label, Default: value, Help: help}
		if field.Format == "password" {
			return r.driver.Password(ctx, cfg)
		}
		return r.driver.Input(ctx, cfg)
	}
}

func (r *Renderer) showMessage(ctx context.Context, msg state.Message) error {
	if msg.IsZero() {
		return nil
	}
	prefix := r.theme.InfoPrefix
	switch msg.Kind {
	case state.MessageSuccess:
		prefix = r.theme.SuccessPrefix
	case state.MessageFailure:
		prefix = r.theme.ErrorPrefix
	}
	return r.driver.Info(ctx, prefix+msg.Text)
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return string(field.Name)
}

func submitLabel(form model.FormModel) string {
	if form.SubmitLabel != "" {
		return form.SubmitLabel + "?"
	}
	return "Submit?"
}
