package submission

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/goliatone/go-regform/pkg/state"
	"github.com/goliatone/go-regform/pkg/store"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

func TestPhaseTracker_Lifecycle(t *testing.T) {
	ctx := context.Background()
	tracker := newPhaseTracker(state.PhaseEditingInvalid, slog.New(slog.DiscardHandler))

	steps := []state.Phase{
		state.PhaseEditingInvalid,
		state.PhaseEditingValid,
		state.PhaseEditingInvalid,
		state.PhaseEditingValid,
		state.PhaseSubmitted,
		state.PhaseEditingInvalid,
	}
	for _, next := range steps {
		if err := tracker.follow(ctx, next); err != nil {
			t.Fatalf("follow %s: %v", next, err)
		}
		if tracker.current() != next {
			t.Fatalf("tracker at %s, want %s", tracker.current(), next)
		}
	}
}

func TestPhaseTracker_RejectsSkippingValidity(t *testing.T) {
	tracker := newPhaseTracker(state.PhaseEditingInvalid, slog.New(slog.DiscardHandler))

	err := tracker.follow(context.Background(), state.PhaseSubmitted)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
	if tracker.current() != state.PhaseSubmitted {
		t.Fatalf("tracker should resync to the observed phase, got %s", tracker.current())
	}
}

func TestController_LogsPhaseChanges(t *testing.T) {
	ctx := context.Background()
	logger, buf := testsupport.CaptureLogger()
	ctrl, err := New(ctx, store.NewMemoryStore(nil), WithLogger(logger))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	testsupport.FillValid(t, ctrl)
	if err := ctrl.OnSubmit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := ctrl.OnFieldChange("fullName", "x"); err != nil {
		t.Fatalf("edit: %v", err)
	}

	logs := buf.String()
	for _, want := range []string{
		"from=editing_invalid to=editing_valid",
		"from=editing_valid to=submitted",
		"from=submitted to=editing_invalid",
	} {
		if !strings.Contains(logs, want) {
			t.Fatalf("missing %q in logs:\n%s", want, logs)
		}
	}
	if strings.Contains(logs, "out of step") {
		t.Fatalf("unexpected tracking error:\n%s", logs)
	}
	if ctrl.phases.current() != ctrl.Phase() {
		t.Fatalf("tracker %s, controller %s", ctrl.phases.current(), ctrl.Phase())
	}
}
