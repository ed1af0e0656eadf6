package html_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/html"
	"github.com/goliatone/go-regform/pkg/state"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

func renderState(t *testing.T, s *state.State, opts ...render.ViewOption) string {
	t.Helper()
	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != html.Name {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
	view := render.NewView(model.Registration(), s.Snapshot(), opts...)
	out, err := renderer.Render(context.Background(), model.Registration(), view)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRenderer_UntouchedFormHidesErrors(t *testing.T) {
	out := renderState(t, state.New(model.Draft{}))

	if strings.Contains(out, "regform__error") {
		t.Fatalf("expected no visible errors on an untouched form:\n%s", out)
	}
	if !strings.Contains(out, `<button type="submit" disabled>`) {
		t.Fatalf("expected disabled submit button:\n%s", out)
	}
	for _, name := range model.Fields() {
		if !strings.Contains(out, `data-field="`+string(name)+`"`) {
			t.Fatalf("missing field %s:\n%s", name, out)
		}
	}
}

func TestRenderer_TouchedFieldShowsError(t *testing.T) {
	s := state.New(model.Draft{})
	if err := s.Apply(model.FieldEmail, "not-an-email"); err != nil {
		t.Fatalf("apply: %v", err)
	}

	out := renderState(t, s)
	if !strings.Contains(out, "Please enter a valid email address") {
		t.Fatalf("expected email error:\n%s", out)
	}
	if strings.Contains(out, "Full name must be at least 3 characters") {
		t.Fatalf("untouched field error leaked:\n%s", out)
	}
}

func TestRenderer_ValidFormEnablesSubmit(t *testing.T) {
	s := state.New(testsupport.ValidDraft())

	out := renderState(t, s, render.WithSecretsHidden())
	if strings.Contains(out, "disabled") {
		t.Fatalf("expected submit enabled:\n%s", out)
	}
	if !strings.Contains(out, `value="us" selected`) {
		t.Fatalf("expected selected country:\n%s", out)
	}
	if !strings.Contains(out, " checked") {
		t.Fatalf("expected checked terms box:\n%s", out)
	}
	if strings.Contains(out, testsupport.ValidDraft().Password) {
		t.Fatalf("password leaked into markup:\n%s", out)
	}
}

func TestRenderer_EscapesValues(t *testing.T) {
	s := state.New(model.Draft{})
	if err := s.Apply(model.FieldFullName, `<script>alert(1)</script>`); err != nil {
		t.Fatalf("apply: %v", err)
	}

	out := renderState(t, s)
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected escaped value:\n%s", out)
	}
}

func TestRenderer_SanitizesHelpText(t *testing.T) {
	form := model.Registration()
	form.Fields[0].Description = `Use <strong>your</strong> name<script>alert(1)</script>`

	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	view := render.NewView(form, state.New(model.Draft{}).Snapshot())
	out, err := renderer.Render(context.Background(), form, view)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "<strong>your</strong>") {
		t.Fatalf("expected allowed markup kept:\n%s", out)
	}
	if strings.Contains(string(out), "<script>") {
		t.Fatalf("expected script stripped:\n%s", out)
	}
}

func TestRenderer_ShowsMessage(t *testing.T) {
	s := state.New(model.Draft{})
	s.SetMessage(state.Message{Kind: state.MessageFailure, Text: "Error saving your information. Please try again."})

	out := renderState(t, s)
	if !strings.Contains(out, "regform__message--failure") {
		t.Fatalf("expected failure message:\n%s", out)
	}
}
